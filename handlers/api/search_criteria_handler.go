package handlers

import (
	"errors"
	"time"

	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"
	"avtoperegon.pro/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SearchCriteriaHandler yönetim API'sinin kriter uçlarını yönetir.
// Tüm cevaplar JSON'dur; hata gövdesi {error, message} şeklindedir.
type SearchCriteriaHandler struct {
	service services.ISearchCriteriaService
}

// NewSearchCriteriaHandler yeni bir SearchCriteriaHandler örneği oluşturur.
func NewSearchCriteriaHandler() *SearchCriteriaHandler {
	return &SearchCriteriaHandler{service: services.NewSearchCriteriaService()}
}

// criteriaResponse API'nin dışarı verdiği kriter gösterimi.
type criteriaResponse struct {
	ID         uint       `json:"id"`
	ClientID   uint       `json:"clientId"`
	PublicID   int64      `json:"publicId"`
	Name       string     `json:"name"`
	Country    string     `json:"country"`
	SourceSite string     `json:"sourceSite"`
	SearchURL  string     `json:"searchUrl"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	DeletedAt  *time.Time `json:"deletedAt"`
}

func toCriteriaResponse(criteria *models.SearchCriteria) criteriaResponse {
	resp := criteriaResponse{
		ID:         criteria.ID,
		ClientID:   criteria.ClientID,
		PublicID:   criteria.PublicID,
		Name:       criteria.Name,
		Country:    criteria.Country,
		SourceSite: criteria.SourceSite,
		SearchURL:  criteria.SearchURL,
		Status:     criteria.Status,
		CreatedAt:  criteria.CreatedAt,
	}
	if criteria.DeletedAt.Valid {
		t := criteria.DeletedAt.Time
		resp.DeletedAt = &t
	}
	return resp
}

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// mapCriteriaError servis hatasını HTTP cevabına çevirir. Bilinmeyen hatalar
// loglanır ve jenerik 500 döner.
func mapCriteriaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrClientNotFound):
		return jsonError(c, fiber.StatusNotFound, "not_found", "client bulunamadı")
	case errors.Is(err, services.ErrCriteriaNotFound):
		return jsonError(c, fiber.StatusNotFound, "not_found", "seçki bulunamadı")
	case errors.Is(err, services.ErrCriteriaInvalidInput):
		return jsonError(c, fiber.StatusBadRequest, "validation_error", err.Error())
	default:
		configslog.Log.Error("SearchCriteriaHandler: beklenmeyen hata", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "beklenmeyen bir hata oluştu")
	}
}

// clientIDParam :clientId segmentini pozitif tam sayı olarak doğrular.
// Bu dahili sıralı ID'dir, public ID değil; sadece yönetim API'sinde görünür.
func clientIDParam(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("clientId")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func criteriaIDParam(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// CreateCriteria POST /clients/:clientId/search-criteria
func (h *SearchCriteriaHandler) CreateCriteria(c *fiber.Ctx) error {
	clientID, ok := clientIDParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "validation_error", "clientId pozitif tam sayı olmalı")
	}

	var input services.CreateCriteriaInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_error", "istek gövdesi çözümlenemedi")
	}

	criteria, err := h.service.Create(c.UserContext(), clientID, input)
	if err != nil {
		return mapCriteriaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCriteriaResponse(criteria))
}

// ListCriteria GET /clients/:clientId/search-criteria
func (h *SearchCriteriaHandler) ListCriteria(c *fiber.Ctx) error {
	clientID, ok := clientIDParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "validation_error", "clientId pozitif tam sayı olmalı")
	}

	criteria, err := h.service.ListForClient(c.UserContext(), clientID)
	if err != nil {
		return mapCriteriaError(c, err)
	}

	responses := make([]criteriaResponse, 0, len(criteria))
	for i := range criteria {
		responses = append(responses, toCriteriaResponse(&criteria[i]))
	}
	return c.JSON(responses)
}

// UpdateCriteria PUT /search-criteria/:id: kısmi güncelleme. Gövdede
// bulunmayan alanlar (özellikle status) mevcut değerini korur.
func (h *SearchCriteriaHandler) UpdateCriteria(c *fiber.Ctx) error {
	id, ok := criteriaIDParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "validation_error", "id pozitif tam sayı olmalı")
	}

	var input services.UpdateCriteriaInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_error", "istek gövdesi çözümlenemedi")
	}

	criteria, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return mapCriteriaError(c, err)
	}
	return c.JSON(toCriteriaResponse(criteria))
}

// DeleteCriteria DELETE /search-criteria/:id: soft delete.
func (h *SearchCriteriaHandler) DeleteCriteria(c *fiber.Ctx) error {
	id, ok := criteriaIDParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "validation_error", "id pozitif tam sayı olmalı")
	}
	if err := h.service.SoftDelete(c.UserContext(), id); err != nil {
		return mapCriteriaError(c, err)
	}
	return c.JSON(fiber.Map{"message": "seçki gizlendi"})
}

// RestoreCriteria POST /search-criteria/:id/restore
func (h *SearchCriteriaHandler) RestoreCriteria(c *fiber.Ctx) error {
	id, ok := criteriaIDParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "validation_error", "id pozitif tam sayı olmalı")
	}
	if err := h.service.Restore(c.UserContext(), id); err != nil {
		return mapCriteriaError(c, err)
	}
	return c.JSON(fiber.Map{"message": "seçki geri alındı"})
}

// PermanentDeleteCriteria DELETE /search-criteria/:id/permanent
func (h *SearchCriteriaHandler) PermanentDeleteCriteria(c *fiber.Ctx) error {
	id, ok := criteriaIDParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "validation_error", "id pozitif tam sayı olmalı")
	}
	if err := h.service.PermanentDelete(c.UserContext(), id); err != nil {
		return mapCriteriaError(c, err)
	}
	return c.JSON(fiber.Map{"message": "seçki kalıcı olarak silindi"})
}
