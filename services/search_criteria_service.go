package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"
	"avtoperegon.pro/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CriteriaServiceError özel servis hataları
type CriteriaServiceError string

func (e CriteriaServiceError) Error() string { return string(e) }

const (
	ErrCriteriaNotFound       CriteriaServiceError = "seçki bulunamadı"
	ErrCriteriaInvalidInput   CriteriaServiceError = "geçersiz seçki girdisi"
	ErrCriteriaCreationFailed CriteriaServiceError = "seçki oluşturulamadı"
	ErrCriteriaUpdateFailed   CriteriaServiceError = "seçki güncellenemedi"
	ErrCriteriaDeletionFailed CriteriaServiceError = "seçki silinemedi"
)

// CreateCriteriaInput yeni kriter için API gövdesi.
type CreateCriteriaInput struct {
	Name       string `json:"name"`
	Country    string `json:"country" validate:"required,oneof=Korea China Europe"`
	SourceSite string `json:"sourceSite"`
	SearchURL  string `json:"searchUrl" validate:"required"`
}

// UpdateCriteriaInput kısmi güncelleme gövdesi. nil alanlar dokunulmadan
// bırakılır; özellikle gönderilmeyen status mevcut değerini korur. Bu
// COALESCE davranışı bilinçli bir sözleşmedir.
type UpdateCriteriaInput struct {
	Name       *string `json:"name"`
	Country    *string `json:"country" validate:"omitempty,oneof=Korea China Europe"`
	SourceSite *string `json:"sourceSite"`
	SearchURL  *string `json:"searchUrl" validate:"omitempty,min=1"`
	Status     *string `json:"status"`
}

// ISearchCriteriaService kriter yaşam döngüsü işlemleri için arayüz.
type ISearchCriteriaService interface {
	Create(ctx context.Context, clientID uint, input CreateCriteriaInput) (*models.SearchCriteria, error)
	ListForClient(ctx context.Context, clientID uint) ([]models.SearchCriteria, error)
	GetSelectionForPartner(ctx context.Context, partnerID uint, publicID int64) (*models.SearchCriteria, error)
	Update(ctx context.Context, id uint, input UpdateCriteriaInput) (*models.SearchCriteria, error)
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	PermanentDelete(ctx context.Context, id uint) error
}

// SearchCriteriaService ISearchCriteriaService arayüzünü uygular.
type SearchCriteriaService struct {
	repo       repositories.ISearchCriteriaRepository
	clientRepo repositories.IClientRepository
	validate   *validator.Validate
}

// NewSearchCriteriaService yeni bir SearchCriteriaService örneği oluşturur.
func NewSearchCriteriaService() ISearchCriteriaService {
	return &SearchCriteriaService{
		repo:       repositories.NewSearchCriteriaRepository(),
		clientRepo: repositories.NewClientRepository(),
		validate:   validator.New(),
	}
}

// NewSearchCriteriaServiceWithDB testler için repository'leri verilen bağlantıyla kurar.
func NewSearchCriteriaServiceWithDB(db *gorm.DB) ISearchCriteriaService {
	return &SearchCriteriaService{
		repo:       repositories.NewSearchCriteriaRepositoryWithDB(db),
		clientRepo: repositories.NewClientRepositoryWithDB(db),
		validate:   validator.New(),
	}
}

// Create verilen client için yeni bir kriter oluşturur. Status "review"
// ile başlar, public ID taze üretilir.
func (s *SearchCriteriaService) Create(ctx context.Context, clientID uint, input CreateCriteriaInput) (*models.SearchCriteria, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCriteriaInvalidInput, validationMessage(err))
	}

	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	criteria := &models.SearchCriteria{
		ClientID:   clientID,
		Name:       strings.TrimSpace(input.Name),
		Country:    input.Country,
		SourceSite: strings.TrimSpace(input.SourceSite),
		SearchURL:  strings.TrimSpace(input.SearchURL),
	}
	if err := s.repo.Create(ctx, criteria); err != nil {
		configslog.Log.Error("SearchCriteriaService.Create: repository hatası", zap.Uint("client_id", clientID), zap.Error(err))
		return nil, ErrCriteriaCreationFailed
	}
	configslog.SLog.Infof("Seçki oluşturuldu: ID %d, PublicID %d (client %d)", criteria.ID, criteria.PublicID, clientID)
	return criteria, nil
}

// ListForClient client'ın aktif kriterlerini döndürür. Client yoksa
// ErrClientNotFound döner.
func (s *SearchCriteriaService) ListForClient(ctx context.Context, clientID uint) ([]models.SearchCriteria, error) {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return s.repo.FindActiveByClientID(ctx, clientID)
}

// GetSelectionForPartner public ID ile kriteri bulur ve iki adımlı sahiplik
// zincirini (kriter → client → partner) doğrular. Kayıt yokluğu ile sahiplik
// uyuşmazlığı aynı hatayla döner.
func (s *SearchCriteriaService) GetSelectionForPartner(ctx context.Context, partnerID uint, publicID int64) (*models.SearchCriteria, error) {
	criteria, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCriteriaNotFound
		}
		return nil, err
	}
	if criteria.Client.ID == 0 || criteria.Client.PartnerID != partnerID {
		configslog.SLog.Warnf("Sahiplik uyuşmazlığı: seçki %d partner %d altında istendi", criteria.ID, partnerID)
		return nil, ErrCriteriaNotFound
	}
	return criteria, nil
}

// Update kriteri kısmi günceller ve güncel halini döndürür.
func (s *SearchCriteriaService) Update(ctx context.Context, id uint, input UpdateCriteriaInput) (*models.SearchCriteria, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCriteriaInvalidInput, validationMessage(err))
	}

	data := map[string]interface{}{}
	if input.Name != nil {
		data["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Country != nil {
		data["country"] = *input.Country
	}
	if input.SourceSite != nil {
		data["source_site"] = strings.TrimSpace(*input.SourceSite)
	}
	if input.SearchURL != nil {
		data["search_url"] = strings.TrimSpace(*input.SearchURL)
	}
	if input.Status != nil {
		data["status"] = *input.Status
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: güncellenecek alan yok", ErrCriteriaInvalidInput)
	}

	if err := s.repo.Update(ctx, id, data); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCriteriaNotFound
		}
		configslog.Log.Error("SearchCriteriaService.Update: repository hatası", zap.Uint("id", id), zap.Error(err))
		return nil, ErrCriteriaUpdateFailed
	}
	return s.repo.FindByID(ctx, id)
}

// SoftDelete kriteri aktif listelerden gizler; mevcut public link çalışmaya
// devam eder.
func (s *SearchCriteriaService) SoftDelete(ctx context.Context, id uint) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCriteriaNotFound
		}
		configslog.Log.Error("SearchCriteriaService.SoftDelete: repository hatası", zap.Uint("id", id), zap.Error(err))
		return ErrCriteriaDeletionFailed
	}
	configslog.SLog.Infof("Seçki gizlendi: ID %d", id)
	return nil
}

// Restore soft delete işaretini temizler.
func (s *SearchCriteriaService) Restore(ctx context.Context, id uint) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCriteriaNotFound
		}
		configslog.Log.Error("SearchCriteriaService.Restore: repository hatası", zap.Uint("id", id), zap.Error(err))
		return ErrCriteriaUpdateFailed
	}
	configslog.SLog.Infof("Seçki geri alındı: ID %d", id)
	return nil
}

// PermanentDelete kriteri geri dönüşsüz siler.
func (s *SearchCriteriaService) PermanentDelete(ctx context.Context, id uint) error {
	if err := s.repo.PermanentDelete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCriteriaNotFound
		}
		configslog.Log.Error("SearchCriteriaService.PermanentDelete: repository hatası", zap.Uint("id", id), zap.Error(err))
		return ErrCriteriaDeletionFailed
	}
	configslog.SLog.Infof("Seçki kalıcı silindi: ID %d", id)
	return nil
}

// validationMessage validator hatasını alan bazlı tek satırlık mesaja çevirir.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "doğrulama hatası"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s alanı zorunlu", fieldName(fe.Field())))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s alanı şunlardan biri olmalı: %s", fieldName(fe.Field()), strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			parts = append(parts, fmt.Sprintf("%s alanı geçersiz", fieldName(fe.Field())))
		}
	}
	return strings.Join(parts, "; ")
}

// fieldName struct alan adını JSON adına yaklaştırır (ilk harf küçük).
func fieldName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// Arayüz uyumluluğu kontrolü
var _ ISearchCriteriaService = (*SearchCriteriaService)(nil)
