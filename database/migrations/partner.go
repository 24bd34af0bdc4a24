package migrations

import (
	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigratePartnersTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating partners table...")
	err := db.AutoMigrate(&models.Partner{})
	if err != nil {
		configslog.Log.Error("Failed to migrate partners table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Partners table migrated successfully")
	return nil
}
