package middlewares

import (
	"avtoperegon.pro/configs"
	"avtoperegon.pro/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RequireAPIKey yönetim API'sini X-Api-Key başlığıyla korur. Anahtar,
// ortamdaki bcrypt hash'e (ADMIN_API_KEY_HASH) karşı doğrulanır. Hash
// tanımlı değilse API kapalı sayılır ve her istek reddedilir.
func RequireAPIKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		hash := configs.AdminAPIKeyHash()
		if hash == "" {
			configslog.SLog.Warn("Yönetim API isteği reddedildi: ADMIN_API_KEY_HASH tanımlı değil")
			return unauthorized(c)
		}
		key := c.Get("X-Api-Key")
		if key == "" {
			return unauthorized(c)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			configslog.SLog.Warnf("Yönetim API isteği reddedildi: geçersiz anahtar (ip: %s)", c.IP())
			return unauthorized(c)
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "unauthorized",
		"message": "geçersiz veya eksik API anahtarı",
	})
}
