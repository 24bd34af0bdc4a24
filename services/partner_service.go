package services

import (
	"context"
	"errors"

	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"
	"avtoperegon.pro/pkg/queryparams"
	"avtoperegon.pro/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PartnerServiceError özel servis hataları
type PartnerServiceError string

func (e PartnerServiceError) Error() string { return string(e) }

const (
	ErrPartnerNotFound PartnerServiceError = "partner bulunamadı"
)

// Partner sayfası kart limitleri. İlk SelectionCardLimit seçki kartı inline
// gösterilir, fazlası "tümünü gör" linkine kalır.
const (
	SelectionCardLimit = 6
	FreshCarFeedLimit  = 12
)

// SelectionCard partner sayfasındaki dolu seçki kartı.
type SelectionCard struct {
	Criteria     models.SearchCriteria
	ClientName   string
	DisplayTitle string
	CarCount     int
	CoverImage   string
}

// ClientCard partner sayfasındaki client özeti. DisplayTitle, client adı
// boşsa en güncel aktif kriterin adına düşer.
type ClientCard struct {
	Client       models.Client
	DisplayTitle string
}

// PartnerProfile partner sayfasının tamamı: profil, seçki kartları,
// client kartları ve "taze bulunanlar" akışı.
type PartnerProfile struct {
	Partner           *models.Partner
	SelectionCards    []SelectionCard
	TotalSelections   int64
	HasMoreSelections bool
	ClientCards       []ClientCard
	FreshCars         []models.FoundCar
	TotalCars         int64
}

// IPartnerService partner işlemleri için arayüz.
type IPartnerService interface {
	GetBySlug(ctx context.Context, slug string) (*models.Partner, error)
	GetProfile(ctx context.Context, partner *models.Partner) (*PartnerProfile, error)
	GetSelectionsPaginated(ctx context.Context, partner *models.Partner, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// PartnerService IPartnerService arayüzünü uygular.
type PartnerService struct {
	repo         repositories.IPartnerRepository
	clientRepo   repositories.IClientRepository
	criteriaRepo repositories.ISearchCriteriaRepository
	carRepo      repositories.IFoundCarRepository
}

// NewPartnerService yeni bir PartnerService örneği oluşturur.
func NewPartnerService() IPartnerService {
	return &PartnerService{
		repo:         repositories.NewPartnerRepository(),
		clientRepo:   repositories.NewClientRepository(),
		criteriaRepo: repositories.NewSearchCriteriaRepository(),
		carRepo:      repositories.NewFoundCarRepository(),
	}
}

// NewPartnerServiceWithDB testler için tüm repository'leri verilen bağlantıyla kurar.
func NewPartnerServiceWithDB(db *gorm.DB) IPartnerService {
	return &PartnerService{
		repo:         repositories.NewPartnerRepositoryWithDB(db),
		clientRepo:   repositories.NewClientRepositoryWithDB(db),
		criteriaRepo: repositories.NewSearchCriteriaRepositoryWithDB(db),
		carRepo:      repositories.NewFoundCarRepositoryWithDB(db),
	}
}

// GetBySlug slug ile partneri bulur. Slug yoksa ErrPartnerNotFound döner;
// çözümleme zincirinin ilk adımı budur.
func (s *PartnerService) GetBySlug(ctx context.Context, slug string) (*models.Partner, error) {
	partner, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return partner, nil
}

// GetProfile partner sayfası için tüm özet verileri toplar. Salt okunur
// birleştirmedir; hiçbir adım mutasyon yapmaz.
func (s *PartnerService) GetProfile(ctx context.Context, partner *models.Partner) (*PartnerProfile, error) {
	criteria, totalSelections, err := s.criteriaRepo.FindNonEmptyByPartnerID(ctx, partner.ID, SelectionCardLimit)
	if err != nil {
		configslog.Log.Error("PartnerService.GetProfile: seçki kartları alınamadı", zap.Uint("partner_id", partner.ID), zap.Error(err))
		return nil, err
	}

	clients, err := s.clientRepo.FindAllByPartnerID(ctx, partner.ID)
	if err != nil {
		configslog.Log.Error("PartnerService.GetProfile: client listesi alınamadı", zap.Uint("partner_id", partner.ID), zap.Error(err))
		return nil, err
	}

	freshCars, err := s.carRepo.FindFreshByPartnerID(ctx, partner.ID, FreshCarFeedLimit)
	if err != nil {
		configslog.Log.Error("PartnerService.GetProfile: taze araba akışı alınamadı", zap.Uint("partner_id", partner.ID), zap.Error(err))
		return nil, err
	}

	totalCars, err := s.carRepo.CountByPartnerID(ctx, partner.ID)
	if err != nil {
		return nil, err
	}

	profile := &PartnerProfile{
		Partner:           partner,
		SelectionCards:    buildSelectionCards(criteria),
		TotalSelections:   totalSelections,
		HasMoreSelections: totalSelections > SelectionCardLimit,
		ClientCards:       buildClientCards(clients),
		FreshCars:         freshCars,
		TotalCars:         totalCars,
	}
	return profile, nil
}

// GetSelectionsPaginated "tümünü gör" sayfası için dolu seçkilerin tam
// sayfalı listesini döndürür.
func (s *PartnerService) GetSelectionsPaginated(ctx context.Context, partner *models.Partner, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	criteria, total, err := s.criteriaRepo.FindNonEmptyByPartnerPaginated(ctx, partner.ID, params)
	if err != nil {
		configslog.Log.Error("PartnerService.GetSelectionsPaginated: DB error", zap.Uint("partner_id", partner.ID), zap.Error(err))
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: buildSelectionCards(criteria),
		Meta: queryparams.CalculateMeta(params.Page, params.PerPage, total),
	}, nil
}

// buildSelectionCards kriter kayıtlarını view kartlarına çevirir.
// FoundCars en yeni önce preload edilmiş gelir; kapak görseli en yeni
// görselli arabadan seçilir.
func buildSelectionCards(criteria []models.SearchCriteria) []SelectionCard {
	cards := make([]SelectionCard, 0, len(criteria))
	for _, crit := range criteria {
		card := SelectionCard{
			Criteria:     crit,
			ClientName:   crit.Client.Name,
			DisplayTitle: crit.Name,
			CarCount:     len(crit.FoundCars),
		}
		if card.DisplayTitle == "" {
			card.DisplayTitle = crit.Country + " seçkisi"
		}
		for _, car := range crit.FoundCars {
			if len(car.Images) > 0 {
				card.CoverImage = car.Images[0]
				break
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// buildClientCards client listesine başlık fallback'ini uygular. Kriterler
// repository'den aktif-önce, id azalan sırada gelir; ilk eleman en güncel
// aktif kriterdir.
func buildClientCards(clients []models.Client) []ClientCard {
	cards := make([]ClientCard, 0, len(clients))
	for _, client := range clients {
		card := ClientCard{Client: client, DisplayTitle: client.Name}
		if card.DisplayTitle == "" && len(client.SearchCriteria) > 0 {
			card.DisplayTitle = client.SearchCriteria[0].Name
		}
		cards = append(cards, card)
	}
	return cards
}

// Arayüz uyumluluğu kontrolü
var _ IPartnerService = (*PartnerService)(nil)
