package configs

import (
	"os"

	"avtoperegon.pro/configs/configsdatabase"
	"avtoperegon.pro/configs/configslog"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// LoadEnv .env dosyasını yükler. Dosya yoksa sessizce devam edilir
// (production ortamında değişkenler doğrudan ortamdan gelir).
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env dosyası bulunamadı, mevcut ortam değişkenleri kullanılacak")
	}
}

// GetDB paylaşılan GORM bağlantısını döndürür (configsdatabase'e delegasyon).
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// AppPort HTTP sunucusunun dinleyeceği adresi döndürür.
func AppPort() string {
	if port := os.Getenv("APP_PORT"); port != "" {
		return ":" + port
	}
	return ":3000"
}

// AdminAPIKeyHash yönetim API'si için bcrypt hash'lenmiş anahtarı döndürür.
// Boşsa API rotaları kapalı kabul edilir.
func AdminAPIKeyHash() string {
	return os.Getenv("ADMIN_API_KEY_HASH")
}

// ViewsPath template dosyalarının kök dizinini döndürür.
func ViewsPath() string {
	if p := os.Getenv("VIEWS_PATH"); p != "" {
		return p
	}
	return "./views"
}
