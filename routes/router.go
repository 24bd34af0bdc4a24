package routes

import (
	public_handlers "avtoperegon.pro/handlers/public"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama

	app.Static("/static", "./static")

	// Statik medya ana sayfası
	homeHandler := public_handlers.NewHomeHandler()
	app.Get("/", homeHandler.HomePage)

	// Rota grupları
	registerPublicRoutes(app) // /p/:slug altındaki public sayfalar
	registerAPIRoutes(app)    // JSON yönetim API'si

	// 404: eşleşmeyen tüm rotaları yakalar, en sonda olmalı.
	app.Use(notFoundHandler)
}

// notFoundHandler içerik tipine göre JSON veya HTML 404 döndürür.
func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("text/html", "application/json")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "kaynak bulunamadı",
		})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title": "Sayfa Bulunamadı",
		}, "layouts/error_layout")
	}
}
