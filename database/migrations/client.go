package migrations

import (
	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateClientsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating clients table...")
	err := db.AutoMigrate(&models.Client{})
	if err != nil {
		configslog.Log.Error("Failed to migrate clients table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Clients table migrated successfully")
	return nil
}
