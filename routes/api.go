package routes

import (
	api_handlers "avtoperegon.pro/handlers/api"
	"avtoperegon.pro/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes JSON yönetim API'sini tanımlar. Veri girişi yönetim
// tarafından yapılır; tüm uçlar API anahtarı ister.
func registerAPIRoutes(app *fiber.App) {
	criteriaHandler := api_handlers.NewSearchCriteriaHandler()

	clientGroup := app.Group("/clients/:clientId", middlewares.RequireAPIKey())
	clientGroup.Post("/search-criteria", criteriaHandler.CreateCriteria) // POST /clients/{id}/search-criteria
	clientGroup.Get("/search-criteria", criteriaHandler.ListCriteria)    // GET  /clients/{id}/search-criteria

	criteriaGroup := app.Group("/search-criteria", middlewares.RequireAPIKey())
	criteriaGroup.Put("/:id", criteriaHandler.UpdateCriteria)                       // PUT    /search-criteria/{id}
	criteriaGroup.Delete("/:id", criteriaHandler.DeleteCriteria)                    // DELETE /search-criteria/{id} (soft)
	criteriaGroup.Post("/:id/restore", criteriaHandler.RestoreCriteria)             // POST   /search-criteria/{id}/restore
	criteriaGroup.Delete("/:id/permanent", criteriaHandler.PermanentDeleteCriteria) // DELETE /search-criteria/{id}/permanent
}
