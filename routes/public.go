package routes

import (
	public_handlers "avtoperegon.pro/handlers/public"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes /p/:slug altındaki public partner sayfalarını tanımlar.
// Tüm :xxxPublicId segmentleri handler içinde publicid.Parse'tan geçer;
// dahili sıralı ID'ler bu rotalarda asla kabul edilmez.
func registerPublicRoutes(app *fiber.App) {
	partnerHandler := public_handlers.NewPartnerPageHandler()

	partnerGroup := app.Group("/p/:slug")
	partnerGroup.Get("/", partnerHandler.PartnerProfile)                            // GET /p/:slug
	partnerGroup.Get("/selections", partnerHandler.SelectionsList)                  // GET /p/:slug/selections
	partnerGroup.Get("/c/:clientPublicId", partnerHandler.ClientPage)               // GET /p/:slug/c/{publicId}
	partnerGroup.Get("/selection/:criterionPublicId", partnerHandler.SelectionPage) // GET /p/:slug/selection/{publicId}
	partnerGroup.Get("/cars/:carPublicId", partnerHandler.CarPage)                  // GET /p/:slug/cars/{publicId}
}
