package models

import "gorm.io/gorm"

// Kriter durumları. Status serbest bir yaşam döngüsü etiketi; yeni kayıt
// her zaman "review" ile başlar, sonrası admin tarafından belirlenir.
const (
	CriteriaStatusReview = "review"
)

// Desteklenen kaynak ülkeler.
const (
	CountryKorea  = "Korea"
	CountryChina  = "China"
	CountryEurope = "Europe"
)

// SearchCriteria ("seçki") bir client için kaydedilmiş araç arama tanımı.
// Soft delete edilmiş kriter aktif listelerden düşer ama mevcut paylaşılan
// linkler üzerinden public ID ile hâlâ çözülür.
type SearchCriteria struct {
	BaseModel
	ClientID   uint   `gorm:"not null;index"` // clients.id FK
	PublicID   int64  `gorm:"uniqueIndex;not null"`
	Name       string `gorm:"type:varchar(255)"`
	Country    string `gorm:"type:varchar(50);not null"`
	SourceSite string `gorm:"type:varchar(255)"`
	SearchURL  string `gorm:"type:varchar(1000);not null"`
	Status     string `gorm:"type:varchar(50);not null;default:'review'"`

	// GORM İlişkileri
	Client    Client     `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	FoundCars []FoundCar `gorm:"many2many:criterion_found_cars;"`
}

// TableName GORM'un çoğullaştırmasına bırakılmaz; "criteria" zaten çoğul.
func (SearchCriteria) TableName() string {
	return "search_criteria"
}

// BeforeCreate status ve PublicID varsayılanlarını doldurur.
// Kriter ID'leri CriteriaPublicIDPrefix ile başlar.
func (sc *SearchCriteria) BeforeCreate(tx *gorm.DB) error {
	if sc.Status == "" {
		sc.Status = CriteriaStatusReview
	}
	if sc.PublicID != 0 {
		return nil
	}
	id, err := generatePublicID(tx, &SearchCriteria{}, CriteriaPublicIDPrefix)
	if err != nil {
		return err
	}
	sc.PublicID = id
	return nil
}
