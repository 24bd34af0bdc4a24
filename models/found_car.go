package models

import "gorm.io/gorm"

// FoundCar bir client için bulunmuş araba. Bir veya birden fazla arama
// kriterine CriterionFoundCar üzerinden bağlanır.
type FoundCar struct {
	BaseModel
	ClientID    uint      `gorm:"not null;index"` // clients.id FK
	PublicID    int64     `gorm:"uniqueIndex;not null"`
	Images      ImageList `gorm:"type:text;column:images_json"`
	Price       int64     `gorm:"not null;default:0"`
	Description string    `gorm:"type:text"`

	// GORM İlişkileri
	Client   Client           `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Criteria []SearchCriteria `gorm:"many2many:criterion_found_cars;"`
}

// BeforeCreate PublicID atanmadıysa yeni bir tane üretir.
func (fc *FoundCar) BeforeCreate(tx *gorm.DB) error {
	if fc.PublicID != 0 {
		return nil
	}
	id, err := generatePublicID(tx, &FoundCar{}, 0)
	if err != nil {
		return err
	}
	fc.PublicID = id
	return nil
}

// CriterionFoundCar kriter ile bulunan araba arasındaki bağ kaydı.
type CriterionFoundCar struct {
	SearchCriteriaID uint `gorm:"primaryKey;autoIncrement:false"`
	FoundCarID       uint `gorm:"primaryKey;autoIncrement:false"`
}

// TableName many2many ilişkisinin kullandığı tablo adıyla eşleşir.
func (CriterionFoundCar) TableName() string {
	return "criterion_found_cars"
}
