package handlers

import (
	"errors"

	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"
	"avtoperegon.pro/pkg/publicid"
	"avtoperegon.pro/pkg/queryparams"
	"avtoperegon.pro/pkg/renderer"
	"avtoperegon.pro/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PartnerPageHandler public partner sayfalarını yönetir. Her sayfa aynı
// çözümleme zincirinden geçer: slug → public ID parse → kayıt → sahiplik.
// Zincirin hangi adımda koptuğu dışarıya yansıtılmaz; tek istisna bozuk
// public ID'dir, o istemci tarafı link hatasıdır ve 400 döner.
type PartnerPageHandler struct {
	partnerService  services.IPartnerService
	clientService   services.IClientService
	criteriaService services.ISearchCriteriaService
	carService      services.IFoundCarService
}

// NewPartnerPageHandler yeni bir PartnerPageHandler örneği oluşturur.
func NewPartnerPageHandler() *PartnerPageHandler {
	return &PartnerPageHandler{
		partnerService:  services.NewPartnerService(),
		clientService:   services.NewClientService(),
		criteriaService: services.NewSearchCriteriaService(),
		carService:      services.NewFoundCarService(),
	}
}

// resolvePartner zincirin ilk adımı: slug'dan partner. Hata durumunda
// response yazılmıştır ve nil döner.
func (h *PartnerPageHandler) resolvePartner(c *fiber.Ctx) *models.Partner {
	slug := c.Params("slug")
	partner, err := h.partnerService.GetBySlug(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			_ = renderer.NotFound(c)
			return nil
		}
		configslog.Log.Error("resolvePartner: GetBySlug error", zap.String("slug", slug), zap.Error(err))
		_ = renderer.InternalError(c)
		return nil
	}
	return partner
}

// parsePublicIDParam zincirin ikinci adımı: path segmentinden public ID.
// Geçersiz girdide 400 sayfası yazılır ve ok=false döner.
func (h *PartnerPageHandler) parsePublicIDParam(c *fiber.Ctx, param string) (int64, bool) {
	raw := c.Params(param)
	id, err := publicid.Parse(raw)
	if err != nil {
		configslog.SLog.Warnf("Bozuk public ID denendi: %q", raw)
		_ = renderer.BadRequest(c, "Bağlantıdaki tanımlayıcı hatalı görünüyor.")
		return 0, false
	}
	return id, true
}

// PartnerProfile GET /p/:slug: profil, seçki kartları ve taze araba akışı.
func (h *PartnerPageHandler) PartnerProfile(c *fiber.Ctx) error {
	partner := h.resolvePartner(c)
	if partner == nil {
		return nil
	}

	profile, err := h.partnerService.GetProfile(c.UserContext(), partner)
	if err != nil {
		configslog.Log.Error("PartnerProfile: GetProfile error", zap.String("slug", partner.Slug), zap.Error(err))
		return renderer.InternalError(c)
	}

	return renderer.Render(c, "public/partner_profile", renderer.MainLayout, fiber.Map{
		"Title":   partner.Name,
		"Partner": partner,
		"Profile": profile,
	}, fiber.StatusOK)
}

// SelectionsList GET /p/:slug/selections: dolu seçkilerin tam sayfalı listesi.
func (h *PartnerPageHandler) SelectionsList(c *fiber.Ctx) error {
	partner := h.resolvePartner(c)
	if partner == nil {
		return nil
	}

	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.partnerService.GetSelectionsPaginated(c.UserContext(), partner, params)
	if err != nil {
		configslog.Log.Error("SelectionsList: error", zap.String("slug", partner.Slug), zap.Error(err))
		return renderer.InternalError(c)
	}

	return renderer.Render(c, "public/selections", renderer.MainLayout, fiber.Map{
		"Title":   partner.Name + " seçkileri",
		"Partner": partner,
		"Result":  result,
		"Params":  params,
	}, fiber.StatusOK)
}

// ClientPage GET /p/:slug/c/:clientPublicId: client'ın araba listesi ve
// kriter özeti. Tek adımlı sahiplik: client → partner.
func (h *PartnerPageHandler) ClientPage(c *fiber.Ctx) error {
	partner := h.resolvePartner(c)
	if partner == nil {
		return nil
	}
	pid, ok := h.parsePublicIDParam(c, "clientPublicId")
	if !ok {
		return nil
	}

	client, err := h.clientService.GetForPartner(c.UserContext(), partner.ID, pid)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return renderer.NotFound(c)
		}
		configslog.Log.Error("ClientPage: GetForPartner error", zap.Int64("public_id", pid), zap.Error(err))
		return renderer.InternalError(c)
	}

	view, err := h.clientService.GetView(c.UserContext(), client)
	if err != nil {
		configslog.Log.Error("ClientPage: GetView error", zap.Uint("client_id", client.ID), zap.Error(err))
		return renderer.InternalError(c)
	}

	return renderer.Render(c, "public/client", renderer.MainLayout, fiber.Map{
		"Title":   client.Name,
		"Partner": partner,
		"View":    view,
	}, fiber.StatusOK)
}

// SelectionPage GET /p/:slug/selection/:criterionPublicId: tek seçkinin
// arabaları. İki adımlı sahiplik: kriter → client → partner.
func (h *PartnerPageHandler) SelectionPage(c *fiber.Ctx) error {
	partner := h.resolvePartner(c)
	if partner == nil {
		return nil
	}
	pid, ok := h.parsePublicIDParam(c, "criterionPublicId")
	if !ok {
		return nil
	}

	criteria, err := h.criteriaService.GetSelectionForPartner(c.UserContext(), partner.ID, pid)
	if err != nil {
		if errors.Is(err, services.ErrCriteriaNotFound) {
			return renderer.NotFound(c)
		}
		configslog.Log.Error("SelectionPage: GetSelectionForPartner error", zap.Int64("public_id", pid), zap.Error(err))
		return renderer.InternalError(c)
	}

	cars, err := h.carService.ListForCriterion(c.UserContext(), criteria.ID)
	if err != nil {
		configslog.Log.Error("SelectionPage: ListForCriterion error", zap.Uint("criteria_id", criteria.ID), zap.Error(err))
		return renderer.InternalError(c)
	}

	return renderer.Render(c, "public/selection", renderer.MainLayout, fiber.Map{
		"Title":    criteria.Name,
		"Partner":  partner,
		"Criteria": criteria,
		"Cars":     cars,
	}, fiber.StatusOK)
}

// CarPage GET /p/:slug/cars/:carPublicId: araba detayı ve aynı client'ın
// diğer arabaları. İki adımlı sahiplik: araba → client → partner.
func (h *PartnerPageHandler) CarPage(c *fiber.Ctx) error {
	partner := h.resolvePartner(c)
	if partner == nil {
		return nil
	}
	pid, ok := h.parsePublicIDParam(c, "carPublicId")
	if !ok {
		return nil
	}

	car, err := h.carService.GetCarForPartner(c.UserContext(), partner.ID, pid)
	if err != nil {
		if errors.Is(err, services.ErrCarNotFound) {
			return renderer.NotFound(c)
		}
		configslog.Log.Error("CarPage: GetCarForPartner error", zap.Int64("public_id", pid), zap.Error(err))
		return renderer.InternalError(c)
	}

	siblings, err := h.carService.GetSiblings(c.UserContext(), car)
	if err != nil {
		configslog.Log.Error("CarPage: GetSiblings error", zap.Uint("car_id", car.ID), zap.Error(err))
		return renderer.InternalError(c)
	}

	return renderer.Render(c, "public/car", renderer.MainLayout, fiber.Map{
		"Title":    car.Description,
		"Partner":  partner,
		"Car":      car,
		"Siblings": siblings,
	}, fiber.StatusOK)
}
