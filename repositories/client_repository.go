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

// IClientRepository client veritabanı işlemleri için arayüz.
type IClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	FindByPublicID(ctx context.Context, publicID int64) (*models.Client, error)
	FindAllByPartnerID(ctx context.Context, partnerID uint) ([]models.Client, error)
}

// ClientRepository IClientRepository arayüzünü uygular.
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository yeni bir ClientRepository örneği oluşturur.
func NewClientRepository() IClientRepository {
	return &ClientRepository{db: configs.GetDB()}
}

// NewClientRepositoryWithDB test double'ları için bağlantıyı dışarıdan alır.
func NewClientRepositoryWithDB(db *gorm.DB) IClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create yeni bir client kaydı oluşturur. PublicID BeforeCreate hook'unda üretilir.
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	if client == nil || client.PartnerID == 0 {
		return errors.New("partner'sız client oluşturulamaz")
	}
	return r.getDB(ctx).Create(client).Error
}

// FindByID dahili ID ile bir client bulur.
func (r *ClientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Client ID")
	}
	var client models.Client
	err := r.getDB(ctx).First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ClientRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &client, nil
}

// FindByPublicID public ID ile bir client bulur. Sahiplik kontrolü servis
// katmanında yapılır; burada sadece kayıt aranır.
func (r *ClientRepository) FindByPublicID(ctx context.Context, publicID int64) (*models.Client, error) {
	var client models.Client
	err := r.getDB(ctx).Where("public_id = ?", publicID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ClientRepository.FindByPublicID: DB error", zap.Int64("public_id", publicID), zap.Error(err))
		return nil, err
	}
	return &client, nil
}

// FindAllByPartnerID partnerin tüm client'larını, kriterleri aktif-önce ve
// id'ye göre azalan sırada preload ederek döndürür. İlk kriter, client kartı
// için başlık fallback'i olarak kullanılır; silinmişler de listede kalır.
func (r *ClientRepository) FindAllByPartnerID(ctx context.Context, partnerID uint) ([]models.Client, error) {
	if partnerID == 0 {
		return nil, errors.New("geçersiz Partner ID")
	}
	var clients []models.Client
	err := r.getDB(ctx).
		Where("partner_id = ?", partnerID).
		Preload("SearchCriteria", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Order("(deleted_at IS NULL) DESC, id DESC")
		}).
		Order("id DESC").
		Find(&clients).Error
	if err != nil {
		configslog.Log.Error("ClientRepository.FindAllByPartnerID: DB error", zap.Uint("partner_id", partnerID), zap.Error(err))
		return nil, err
	}
	return clients, nil
}

// Arayüz uyumluluğu kontrolü
var _ IClientRepository = (*ClientRepository)(nil)
