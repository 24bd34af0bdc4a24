package models

import (
	"avtoperegon.pro/pkg/publicid"

	"gorm.io/gorm"
)

// CriteriaPublicIDPrefix arama kriteri public ID'lerinin namespace rakamı.
// Kriter ID'leri 2 ile başlar; client ve araba ID'leri prefix'sizdir.
const CriteriaPublicIDPrefix = 2

// generatePublicID BeforeCreate hook'ları için ortak üretim yolu.
// Benzersizlik kontrolü ilgili tabloya, verilen transaction üzerinden yapılır;
// soft-delete edilmiş kayıtlar da sayılır ki ID asla yeniden kullanılmasın.
func generatePublicID(tx *gorm.DB, model interface{}, prefix int) (int64, error) {
	return publicid.Generate(prefix, publicid.DefaultDigits, func(candidate int64) (bool, error) {
		var count int64
		err := tx.Session(&gorm.Session{NewDB: true}).
			Model(model).
			Unscoped().
			Where("public_id = ?", candidate).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		return count > 0, nil
	})
}
