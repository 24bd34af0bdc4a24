package handlers

import (
	"avtoperegon.pro/pkg/renderer"

	"github.com/gofiber/fiber/v2"
)

// HomeHandler statik medya/platform ana sayfasını yönetir.
type HomeHandler struct{}

// NewHomeHandler yeni bir HomeHandler örneği oluşturur.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomePage ana sayfayı render eder. İçerik statiktir, veritabanına inilmez.
func (h *HomeHandler) HomePage(c *fiber.Ctx) error {
	return renderer.Render(c, "public/home", renderer.MainLayout, fiber.Map{
		"Title": "Araç ithalat platformu",
	}, fiber.StatusOK)
}
