package seeders

import (
	"errors"

	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDemoData yerel geliştirme için örnek bir partner zinciri oluşturur:
// partner → client → kriter → araba. Partner zaten varsa hiçbir şey yapılmaz.
func SeedDemoData(db *gorm.DB) error {
	const demoSlug = "avtoperegon"

	var existing models.Partner
	result := db.Where("slug = ?", demoSlug).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Demo partner '%s' zaten mevcut, seed atlanıyor.", demoSlug)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Demo partner kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	configslog.SLog.Infof("Demo partner '%s' oluşturuluyor...", demoSlug)

	partner := models.Partner{
		Slug:    demoSlug,
		Name:    "Avtoperegon",
		Tagline: "Kore ve Çin'den anahtar teslim araç",
		Contacts: models.ContactList{
			{Kind: "telegram", Value: "avtoperegon_demo"},
			{Kind: "phone", Value: "+7 900 000 00 00"},
		},
	}
	if err := db.Create(&partner).Error; err != nil {
		configslog.Log.Error("Demo partner oluşturulamadı", zap.Error(err))
		return err
	}

	client := models.Client{PartnerID: partner.ID, Name: "Demo Müşteri"}
	if err := db.Create(&client).Error; err != nil {
		configslog.Log.Error("Demo client oluşturulamadı", zap.Error(err))
		return err
	}

	criteria := models.SearchCriteria{
		ClientID:  client.ID,
		Name:      "Kore SUV seçkisi",
		Country:   models.CountryKorea,
		SearchURL: "http://www.encar.com/dc/dc_carsearchlist.do",
	}
	if err := db.Create(&criteria).Error; err != nil {
		configslog.Log.Error("Demo kriter oluşturulamadı", zap.Error(err))
		return err
	}

	car := models.FoundCar{
		ClientID:    client.ID,
		Images:      models.ImageList{"https://example.com/demo-car.jpg"},
		Price:       2_150_000,
		Description: "Hyundai Tucson 2021, 48.000 km",
	}
	if err := db.Create(&car).Error; err != nil {
		configslog.Log.Error("Demo araba oluşturulamadı", zap.Error(err))
		return err
	}
	link := models.CriterionFoundCar{SearchCriteriaID: criteria.ID, FoundCarID: car.ID}
	if err := db.Create(&link).Error; err != nil {
		configslog.Log.Error("Demo araba kriter bağı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Demo verisi oluşturuldu: partner %d, client %d (publicID %d), seçki %d (publicID %d)",
		partner.ID, client.ID, client.PublicID, criteria.ID, criteria.PublicID)
	return nil
}
