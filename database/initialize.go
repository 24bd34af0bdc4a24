package database

import (
	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/database/migrations"
	"avtoperegon.pro/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyonları ve seeder'ları tek transaction içinde çalıştırır.
// Herhangi bir adım başarısız olursa tamamı geri alınır.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Veritabanı transaction başlatılamadı", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Veritabanı başlatma işlemi başarısız oldu (panic)", zap.Any("panic_info", r))
		}
	}()

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")

	if migrate {
		configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
			tx.Rollback()
			return
		}
		configslog.SLog.Info("Migrasyonlar tamamlandı.")
	}

	if seed {
		configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
		if err := seeders.SeedDemoData(tx); err != nil {
			configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
			tx.Rollback()
			return
		}
		configslog.SLog.Info("Seeder'lar tamamlandı.")
	}

	if err := tx.Commit().Error; err != nil {
		configslog.Log.Error("Commit başarısız oldu", zap.Error(err))
		return
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
}

// RunMigrationsInOrder tabloları foreign key sırasına göre migrate eder:
// partner → client → kriter → araba → bağ tablosu.
func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info(" -> Partner migrasyonları çalıştırılıyor...")
	if err := migrations.MigratePartnersTable(db); err != nil {
		return err
	}

	configslog.SLog.Info(" -> Client migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateClientsTable(db); err != nil {
		return err
	}

	configslog.SLog.Info(" -> SearchCriteria migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateSearchCriteriaTable(db); err != nil {
		return err
	}

	configslog.SLog.Info(" -> FoundCar migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateFoundCarsTables(db); err != nil {
		return err
	}

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}
