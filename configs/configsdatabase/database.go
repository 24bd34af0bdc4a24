package configsdatabase

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"avtoperegon.pro/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// db tüm uygulama tarafından paylaşılan GORM bağlantısı.
// Dışarıya sadece GetDB üzerinden verilir; repository'ler constructor'da alır.
var db *gorm.DB

// InitDB ortam değişkenlerinden PostgreSQL bağlantısını kurar.
// Zorunlu değişkenler: DB_HOST, DB_USER, DB_PASSWORD, DB_NAME.
func InitDB() {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	name := getEnv("DB_NAME", "avtoperegon")
	sslMode := getEnv("DB_SSLMODE", "disable")
	timeZone := getEnv("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, name, port, sslMode, timeZone)

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	conn, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı",
			zap.String("host", host),
			zap.String("database", name),
			zap.Error(err),
		)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("sql.DB örneği alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(getEnvInt("DB_MAX_OPEN_CONNS", 25))
	sqlDB.SetMaxIdleConns(getEnvInt("DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30)) * time.Minute)

	db = conn
	configslog.SLog.Infof("Veritabanı bağlantısı kuruldu: %s@%s/%s", user, host, name)
}

// GetDB paylaşılan bağlantıyı döndürür. InitDB'den önce çağrılmamalı.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB çağrıldı ama veritabanı henüz başlatılmadı (InitDB eksik)")
	}
	return db
}

// SetDB testlerde bağlantıyı değiştirmek için kullanılır (örn. in-memory sqlite).
func SetDB(conn *gorm.DB) {
	db = conn
}

// CloseDB altta yatan bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Bağlantı kapatılırken sql.DB alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		configslog.SLog.Warnf("Ortam değişkeni %s sayıya çevrilemedi (%q), varsayılan %d kullanılıyor", key, v, fallback)
		return fallback
	}
	return n
}
