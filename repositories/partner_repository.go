package repositories

import (
	"context"
	"errors"

	"avtoperegon.pro/configs"
	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IPartnerRepository partner veritabanı işlemleri için arayüz.
type IPartnerRepository interface {
	Create(ctx context.Context, partner *models.Partner) error
	FindByID(ctx context.Context, id uint) (*models.Partner, error)
	FindBySlug(ctx context.Context, slug string) (*models.Partner, error)
}

// PartnerRepository IPartnerRepository arayüzünü uygular.
type PartnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository yeni bir PartnerRepository örneği oluşturur.
func NewPartnerRepository() IPartnerRepository {
	return &PartnerRepository{db: configs.GetDB()}
}

// NewPartnerRepositoryWithDB test double'ları için bağlantıyı dışarıdan alır.
func NewPartnerRepositoryWithDB(db *gorm.DB) IPartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create yeni bir partner kaydı oluşturur.
func (r *PartnerRepository) Create(ctx context.Context, partner *models.Partner) error {
	if partner == nil || partner.Slug == "" {
		return errors.New("slug'sız partner oluşturulamaz")
	}
	return r.getDB(ctx).Create(partner).Error
}

// FindByID ID ile bir partner kaydını bulur.
func (r *PartnerRepository) FindByID(ctx context.Context, id uint) (*models.Partner, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Partner ID")
	}
	var partner models.Partner
	err := r.getDB(ctx).First(&partner, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PartnerRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &partner, nil
}

// FindBySlug path'ten gelen slug ile partneri bulur. Slug karşılaştırması
// büyük/küçük harf duyarlıdır; slug yayınlandıktan sonra değişmez.
func (r *PartnerRepository) FindBySlug(ctx context.Context, slug string) (*models.Partner, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	var partner models.Partner
	err := r.getDB(ctx).Where("slug = ?", slug).First(&partner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PartnerRepository.FindBySlug: DB error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &partner, nil
}

// Arayüz uyumluluğu kontrolü
var _ IPartnerRepository = (*PartnerRepository)(nil)
