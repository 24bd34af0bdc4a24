package migrations

import (
	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateFoundCarsTables araba tablosunu ve kriter bağ tablosunu migrate eder.
func MigrateFoundCarsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating found_cars tables...")
	err := db.AutoMigrate(&models.FoundCar{}, &models.CriterionFoundCar{})
	if err != nil {
		configslog.Log.Error("Failed to migrate found_cars tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Found cars tables migrated successfully")
	return nil
}
