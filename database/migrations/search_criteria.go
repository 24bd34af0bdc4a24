package migrations

import (
	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateSearchCriteriaTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating search_criteria table...")
	err := db.AutoMigrate(&models.SearchCriteria{})
	if err != nil {
		configslog.Log.Error("Failed to migrate search_criteria table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Search criteria table migrated successfully")
	return nil
}
