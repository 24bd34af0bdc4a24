// Package renderer handler'lar için ortak render yardımcıları.
package renderer

import "github.com/gofiber/fiber/v2"

const (
	MainLayout  = "layouts/main_layout"
	ErrorLayout = "layouts/error_layout"
)

// Render verilen view'ı layout ile birlikte, istenen status koduyla render eder.
func Render(c *fiber.Ctx, view string, layout string, data fiber.Map, status int) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Status(status).Render(view, data, layout)
}

// NotFound public sayfalar için standart 404 çıktısı. Varlık yok ile sahiplik
// uyuşmazlığı aynı gövdeyle döner; ayrım yapılmaz.
func NotFound(c *fiber.Ctx) error {
	return Render(c, "errors/404", ErrorLayout, fiber.Map{
		"Title": "Sayfa Bulunamadı",
	}, fiber.StatusNotFound)
}

// BadRequest bozuk public ID gibi istemci kaynaklı link hataları için 400 sayfası.
func BadRequest(c *fiber.Ctx, message string) error {
	return Render(c, "errors/400", ErrorLayout, fiber.Map{
		"Title":   "Geçersiz İstek",
		"Message": message,
	}, fiber.StatusBadRequest)
}

// InternalError beklenmeyen hatalar için jenerik 500 sayfası. Detay loglanır,
// istemciye sızdırılmaz.
func InternalError(c *fiber.Ctx) error {
	return Render(c, "errors/500", ErrorLayout, fiber.Map{
		"Title": "Sunucu Hatası",
	}, fiber.StatusInternalServerError)
}
