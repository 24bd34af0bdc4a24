package models

import "gorm.io/gorm"

// Client bir partnerin müşterisi. URL'lerde dahili ID yerine PublicID
// kullanılır; PublicID tüm client'lar arasında benzersizdir ve asla
// yeniden kullanılmaz.
type Client struct {
	BaseModel
	PartnerID uint   `gorm:"not null;index"` // partners.id FK
	PublicID  int64  `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"type:varchar(255);not null"`

	// GORM İlişkileri
	Partner        Partner          `gorm:"foreignKey:PartnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	SearchCriteria []SearchCriteria `gorm:"foreignKey:ClientID"`
	FoundCars      []FoundCar       `gorm:"foreignKey:ClientID"`
}

// BeforeCreate PublicID atanmadıysa yeni bir tane üretir.
// Çakışma kontrolü aynı transaction üzerinden yapılır.
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.PublicID != 0 {
		return nil
	}
	id, err := generatePublicID(tx, &Client{}, 0)
	if err != nil {
		return err
	}
	c.PublicID = id
	return nil
}
