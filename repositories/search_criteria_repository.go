package repositories

import (
	"context"
	"errors"

	"avtoperegon.pro/configs"
	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"
	"avtoperegon.pro/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISearchCriteriaRepository arama kriteri veritabanı işlemleri için arayüz.
type ISearchCriteriaRepository interface {
	Create(ctx context.Context, criteria *models.SearchCriteria) error
	FindByID(ctx context.Context, id uint) (*models.SearchCriteria, error)
	FindByPublicID(ctx context.Context, publicID int64) (*models.SearchCriteria, error)
	FindActiveByClientID(ctx context.Context, clientID uint) ([]models.SearchCriteria, error)
	FindNonEmptyByPartnerID(ctx context.Context, partnerID uint, limit int) ([]models.SearchCriteria, int64, error)
	FindNonEmptyByPartnerPaginated(ctx context.Context, partnerID uint, params queryparams.ListParams) ([]models.SearchCriteria, int64, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	PermanentDelete(ctx context.Context, id uint) error
}

// SearchCriteriaRepository ISearchCriteriaRepository arayüzünü uygular.
type SearchCriteriaRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.SearchCriteria]
}

// NewSearchCriteriaRepository yeni bir SearchCriteriaRepository örneği oluşturur.
func NewSearchCriteriaRepository() ISearchCriteriaRepository {
	return NewSearchCriteriaRepositoryWithDB(configs.GetDB())
}

// NewSearchCriteriaRepositoryWithDB test double'ları için bağlantıyı dışarıdan alır.
func NewSearchCriteriaRepositoryWithDB(db *gorm.DB) ISearchCriteriaRepository {
	base := NewBaseRepository[models.SearchCriteria](db)
	base.SetAllowedSortColumns([]string{"created_at", "id", "status"})
	return &SearchCriteriaRepository{db: db, base: base}
}

func (r *SearchCriteriaRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// nonEmptyByPartnerScope partnerin, en az bir arabası olan aktif kriterlerini
// filtreler. Boş seçkiler kartlara hiç çıkmaz.
func nonEmptyByPartnerScope(partnerID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN clients ON clients.id = search_criteria.client_id").
			Where("clients.partner_id = ?", partnerID).
			Where("EXISTS (SELECT 1 FROM criterion_found_cars WHERE criterion_found_cars.search_criteria_id = search_criteria.id)")
	}
}

// Create yeni bir kriter kaydı oluşturur. Status ve PublicID varsayılanları
// BeforeCreate hook'unda doldurulur.
func (r *SearchCriteriaRepository) Create(ctx context.Context, criteria *models.SearchCriteria) error {
	if criteria == nil || criteria.ClientID == 0 {
		return errors.New("client'sız kriter oluşturulamaz")
	}
	return r.getDB(ctx).Create(criteria).Error
}

// FindByID dahili ID ile kriteri bulur. Soft delete edilmiş kayıtlar da
// döner; restore ve kalıcı silme bu yolu kullanır.
func (r *SearchCriteriaRepository) FindByID(ctx context.Context, id uint) (*models.SearchCriteria, error) {
	if id == 0 {
		return nil, errors.New("geçersiz SearchCriteria ID")
	}
	var criteria models.SearchCriteria
	err := r.getDB(ctx).Unscoped().First(&criteria, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SearchCriteriaRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &criteria, nil
}

// FindByPublicID public ID ile kriteri client'ıyla birlikte bulur.
// Soft delete edilmiş kriter de döner: silme "yeni gezinmeden gizle"
// anlamına gelir, paylaşılmış linki iptal etmez.
func (r *SearchCriteriaRepository) FindByPublicID(ctx context.Context, publicID int64) (*models.SearchCriteria, error) {
	var criteria models.SearchCriteria
	err := r.getDB(ctx).Unscoped().Preload("Client").Where("public_id = ?", publicID).First(&criteria).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SearchCriteriaRepository.FindByPublicID: DB error", zap.Int64("public_id", publicID), zap.Error(err))
		return nil, err
	}
	return &criteria, nil
}

// FindActiveByClientID client'ın silinmemiş kriterlerini, en yeni oluşturulan
// önce gelecek şekilde döndürür.
func (r *SearchCriteriaRepository) FindActiveByClientID(ctx context.Context, clientID uint) ([]models.SearchCriteria, error) {
	if clientID == 0 {
		return nil, errors.New("geçersiz Client ID")
	}
	var criteria []models.SearchCriteria
	err := r.getDB(ctx).
		Where("client_id = ?", clientID).
		Order("id DESC").
		Find(&criteria).Error
	if err != nil {
		configslog.Log.Error("SearchCriteriaRepository.FindActiveByClientID: DB error", zap.Uint("client_id", clientID), zap.Error(err))
		return nil, err
	}
	return criteria, nil
}

// FindNonEmptyByPartnerID partner kartları için ilk `limit` dolu seçkiyi ve
// toplam sayıyı döndürür. Arabalar en yeni önce preload edilir.
func (r *SearchCriteriaRepository) FindNonEmptyByPartnerID(ctx context.Context, partnerID uint, limit int) ([]models.SearchCriteria, int64, error) {
	if partnerID == 0 {
		return nil, 0, errors.New("geçersiz Partner ID")
	}
	db := r.getDB(ctx)

	var total int64
	if err := db.Model(&models.SearchCriteria{}).Scopes(nonEmptyByPartnerScope(partnerID)).Count(&total).Error; err != nil {
		configslog.Log.Error("SearchCriteriaRepository.FindNonEmptyByPartnerID: count error", zap.Uint("partner_id", partnerID), zap.Error(err))
		return nil, 0, err
	}

	var criteria []models.SearchCriteria
	err := db.
		Scopes(nonEmptyByPartnerScope(partnerID)).
		Preload("Client").
		Preload("FoundCars", func(db *gorm.DB) *gorm.DB {
			return db.Order("found_cars.created_at DESC")
		}).
		Order("search_criteria.created_at DESC").
		Limit(limit).
		Find(&criteria).Error
	if err != nil {
		configslog.Log.Error("SearchCriteriaRepository.FindNonEmptyByPartnerID: DB error", zap.Uint("partner_id", partnerID), zap.Error(err))
		return nil, 0, err
	}
	return criteria, total, nil
}

// FindNonEmptyByPartnerPaginated /p/:slug/selections sayfası için tam listeyi
// sayfalı döndürür.
func (r *SearchCriteriaRepository) FindNonEmptyByPartnerPaginated(ctx context.Context, partnerID uint, params queryparams.ListParams) ([]models.SearchCriteria, int64, error) {
	if partnerID == 0 {
		return nil, 0, errors.New("geçersiz Partner ID")
	}
	return r.base.FindAllPaginated(ctx, params, nonEmptyByPartnerScope(partnerID), func(db *gorm.DB) *gorm.DB {
		return db.Preload("Client").Preload("FoundCars", func(db *gorm.DB) *gorm.DB {
			return db.Order("found_cars.created_at DESC")
		})
	})
}

// Update kriteri map ile kısmi günceller. Map'e konmayan alanlar (örn.
// gönderilmeyen status) mevcut değerini korur.
func (r *SearchCriteriaRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return errors.New("güncellenecek kriter ID'si geçersiz")
	}
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	db := r.getDB(ctx)
	result := db.Model(&models.SearchCriteria{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		configslog.Log.Error("SearchCriteriaRepository.Update: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		countErr := db.Model(&models.SearchCriteria{}).Where("id = ?", id).Count(&exists).Error
		if countErr == nil && exists == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// SoftDelete deleted_at'ı şimdiye çeker; kayıt aktif listelerden düşer.
func (r *SearchCriteriaRepository) SoftDelete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("silinecek kriter ID'si geçersiz")
	}
	result := r.getDB(ctx).Delete(&models.SearchCriteria{}, id)
	if result.Error != nil {
		configslog.Log.Error("SearchCriteriaRepository.SoftDelete: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore deleted_at'ı temizleyerek kriteri aktif listelere geri alır.
func (r *SearchCriteriaRepository) Restore(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geri alınacak kriter ID'si geçersiz")
	}
	result := r.getDB(ctx).Unscoped().
		Model(&models.SearchCriteria{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		configslog.Log.Error("SearchCriteriaRepository.Restore: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PermanentDelete kriteri ve araba bağlarını geri dönüşsüz siler.
func (r *SearchCriteriaRepository) PermanentDelete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("silinecek kriter ID'si geçersiz")
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("search_criteria_id = ?", id).Delete(&models.CriterionFoundCar{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&models.SearchCriteria{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Arayüz uyumluluğu kontrolü
var _ ISearchCriteriaRepository = (*SearchCriteriaRepository)(nil)
