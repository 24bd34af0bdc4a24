package services

import (
	"context"
	"errors"

	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"
	"avtoperegon.pro/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CarServiceError özel servis hataları
type CarServiceError string

func (e CarServiceError) Error() string { return string(e) }

const (
	ErrCarNotFound       CarServiceError = "araba bulunamadı"
	ErrCarCreationFailed CarServiceError = "araba kaydedilemedi"
)

// SiblingCarLimit araba detay sayfasındaki "bu client için bulunan diğer
// arabalar" panelinin boyutu.
const SiblingCarLimit = 8

// IFoundCarService bulunan araba işlemleri için arayüz.
type IFoundCarService interface {
	Create(ctx context.Context, car *models.FoundCar, criteriaIDs []uint) error
	GetCarForPartner(ctx context.Context, partnerID uint, publicID int64) (*models.FoundCar, error)
	GetSiblings(ctx context.Context, car *models.FoundCar) ([]models.FoundCar, error)
	ListForCriterion(ctx context.Context, criterionID uint) ([]models.FoundCar, error)
}

// FoundCarService IFoundCarService arayüzünü uygular.
type FoundCarService struct {
	repo repositories.IFoundCarRepository
}

// NewFoundCarService yeni bir FoundCarService örneği oluşturur.
func NewFoundCarService() IFoundCarService {
	return &FoundCarService{repo: repositories.NewFoundCarRepository()}
}

// NewFoundCarServiceWithDB testler için repository'yi verilen bağlantıyla kurar.
func NewFoundCarServiceWithDB(db *gorm.DB) IFoundCarService {
	return &FoundCarService{repo: repositories.NewFoundCarRepositoryWithDB(db)}
}

// Create arabayı ve kriter bağlarını kaydeder.
func (s *FoundCarService) Create(ctx context.Context, car *models.FoundCar, criteriaIDs []uint) error {
	if car == nil || car.ClientID == 0 {
		return ErrCarCreationFailed
	}
	if err := s.repo.Create(ctx, car, criteriaIDs); err != nil {
		configslog.Log.Error("FoundCarService.Create: repository hatası", zap.Uint("client_id", car.ClientID), zap.Error(err))
		return ErrCarCreationFailed
	}
	configslog.SLog.Infof("Araba kaydedildi: ID %d, PublicID %d (client %d)", car.ID, car.PublicID, car.ClientID)
	return nil
}

// GetCarForPartner public ID ile arabayı bulur ve iki adımlı sahiplik
// zincirini (araba → client → partner) doğrular. Yokluk ve uyuşmazlık
// aynı ErrCarNotFound ile döner.
func (s *FoundCarService) GetCarForPartner(ctx context.Context, partnerID uint, publicID int64) (*models.FoundCar, error) {
	car, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	if car.Client.ID == 0 || car.Client.PartnerID != partnerID {
		configslog.SLog.Warnf("Sahiplik uyuşmazlığı: araba %d partner %d altında istendi", car.ID, partnerID)
		return nil, ErrCarNotFound
	}
	return car, nil
}

// GetSiblings aynı client'ın diğer arabalarını döndürür.
func (s *FoundCarService) GetSiblings(ctx context.Context, car *models.FoundCar) ([]models.FoundCar, error) {
	return s.repo.FindSiblings(ctx, car.ClientID, car.ID, SiblingCarLimit)
}

// ListForCriterion sadece verilen kritere bağlı arabaları döndürür.
func (s *FoundCarService) ListForCriterion(ctx context.Context, criterionID uint) ([]models.FoundCar, error) {
	return s.repo.FindByCriterionID(ctx, criterionID)
}

// Arayüz uyumluluğu kontrolü
var _ IFoundCarService = (*FoundCarService)(nil)
