package models

// Partner araç ithalatı yapan satıcı; public profil sayfasının sahibi.
// Slug globalde benzersizdir ve yayınlandıktan sonra değiştirilmez:
// paylaşılan tüm linkler slug üzerinden kurulur.
type Partner struct {
	BaseModel
	Slug      string      `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name      string      `gorm:"type:varchar(255);not null"`
	Tagline   string      `gorm:"type:varchar(255)"`
	LogoPath  string      `gorm:"type:varchar(500)"`
	CoverPath string      `gorm:"type:varchar(500)"`
	LogoCrop  CropMeta    `gorm:"type:text"`
	CoverCrop CropMeta    `gorm:"type:text"`
	Contacts  ContactList `gorm:"type:text;column:contacts_json"`

	// GORM İlişkileri
	Clients []Client `gorm:"foreignKey:PartnerID"`
}
