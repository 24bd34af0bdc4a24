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

// ClientServiceError özel servis hataları
type ClientServiceError string

func (e ClientServiceError) Error() string { return string(e) }

const (
	ErrClientNotFound ClientServiceError = "client bulunamadı"
)

// ClientView client sayfasının tamamı: client, tüm arabaları ve aktif
// kriter özeti.
type ClientView struct {
	Client   *models.Client
	Cars     []models.FoundCar
	Criteria []models.SearchCriteria
}

// IClientService client işlemleri için arayüz.
type IClientService interface {
	GetForPartner(ctx context.Context, partnerID uint, publicID int64) (*models.Client, error)
	GetView(ctx context.Context, client *models.Client) (*ClientView, error)
}

// ClientService IClientService arayüzünü uygular.
type ClientService struct {
	repo         repositories.IClientRepository
	criteriaRepo repositories.ISearchCriteriaRepository
	carRepo      repositories.IFoundCarRepository
}

// NewClientService yeni bir ClientService örneği oluşturur.
func NewClientService() IClientService {
	return &ClientService{
		repo:         repositories.NewClientRepository(),
		criteriaRepo: repositories.NewSearchCriteriaRepository(),
		carRepo:      repositories.NewFoundCarRepository(),
	}
}

// NewClientServiceWithDB testler için repository'leri verilen bağlantıyla kurar.
func NewClientServiceWithDB(db *gorm.DB) IClientService {
	return &ClientService{
		repo:         repositories.NewClientRepositoryWithDB(db),
		criteriaRepo: repositories.NewSearchCriteriaRepositoryWithDB(db),
		carRepo:      repositories.NewFoundCarRepositoryWithDB(db),
	}
}

// GetForPartner public ID ile client'ı bulur ve sahiplik zincirini doğrular.
// Kayıt yoksa da, başka bir partnere aitse de aynı ErrClientNotFound döner;
// iki durum dışarıdan ayırt edilemez.
func (s *ClientService) GetForPartner(ctx context.Context, partnerID uint, publicID int64) (*models.Client, error) {
	client, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.PartnerID != partnerID {
		configslog.SLog.Warnf("Sahiplik uyuşmazlığı: client %d partner %d altında istendi", client.ID, partnerID)
		return nil, ErrClientNotFound
	}
	return client, nil
}

// GetView client sayfası için arabaları ve aktif kriter özetini yükler.
// Kriterler en yeni oluşturulan önce sıralanır.
func (s *ClientService) GetView(ctx context.Context, client *models.Client) (*ClientView, error) {
	cars, err := s.carRepo.FindByClientID(ctx, client.ID)
	if err != nil {
		configslog.Log.Error("ClientService.GetView: arabalar alınamadı", zap.Uint("client_id", client.ID), zap.Error(err))
		return nil, err
	}
	criteria, err := s.criteriaRepo.FindActiveByClientID(ctx, client.ID)
	if err != nil {
		configslog.Log.Error("ClientService.GetView: kriterler alınamadı", zap.Uint("client_id", client.ID), zap.Error(err))
		return nil, err
	}
	return &ClientView{Client: client, Cars: cars, Criteria: criteria}, nil
}

// Arayüz uyumluluğu kontrolü
var _ IClientService = (*ClientService)(nil)
