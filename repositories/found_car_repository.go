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

// IFoundCarRepository bulunan araba veritabanı işlemleri için arayüz.
type IFoundCarRepository interface {
	Create(ctx context.Context, car *models.FoundCar, criteriaIDs []uint) error
	FindByID(ctx context.Context, id uint) (*models.FoundCar, error)
	FindByPublicID(ctx context.Context, publicID int64) (*models.FoundCar, error)
	FindByClientID(ctx context.Context, clientID uint) ([]models.FoundCar, error)
	FindByCriterionID(ctx context.Context, criterionID uint) ([]models.FoundCar, error)
	FindFreshByPartnerID(ctx context.Context, partnerID uint, limit int) ([]models.FoundCar, error)
	FindSiblings(ctx context.Context, clientID uint, excludeCarID uint, limit int) ([]models.FoundCar, error)
	CountByPartnerID(ctx context.Context, partnerID uint) (int64, error)
	AttachToCriterion(ctx context.Context, carID, criterionID uint) error
}

// FoundCarRepository IFoundCarRepository arayüzünü uygular.
type FoundCarRepository struct {
	db *gorm.DB
}

// NewFoundCarRepository yeni bir FoundCarRepository örneği oluşturur.
func NewFoundCarRepository() IFoundCarRepository {
	return &FoundCarRepository{db: configs.GetDB()}
}

// NewFoundCarRepositoryWithDB test double'ları için bağlantıyı dışarıdan alır.
func NewFoundCarRepositoryWithDB(db *gorm.DB) IFoundCarRepository {
	return &FoundCarRepository{db: db}
}

func (r *FoundCarRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create arabayı ve kriter bağlarını tek transaction içinde oluşturur.
func (r *FoundCarRepository) Create(ctx context.Context, car *models.FoundCar, criteriaIDs []uint) error {
	if car == nil || car.ClientID == 0 {
		return errors.New("client'sız araba oluşturulamaz")
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(car).Error; err != nil {
			return err
		}
		for _, criterionID := range criteriaIDs {
			link := models.CriterionFoundCar{SearchCriteriaID: criterionID, FoundCarID: car.ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID dahili ID ile arabayı bulur.
func (r *FoundCarRepository) FindByID(ctx context.Context, id uint) (*models.FoundCar, error) {
	if id == 0 {
		return nil, errors.New("geçersiz FoundCar ID")
	}
	var car models.FoundCar
	err := r.getDB(ctx).First(&car, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FoundCarRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &car, nil
}

// FindByPublicID public ID ile arabayı client'ıyla birlikte bulur.
func (r *FoundCarRepository) FindByPublicID(ctx context.Context, publicID int64) (*models.FoundCar, error) {
	var car models.FoundCar
	err := r.getDB(ctx).Preload("Client").Where("public_id = ?", publicID).First(&car).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FoundCarRepository.FindByPublicID: DB error", zap.Int64("public_id", publicID), zap.Error(err))
		return nil, err
	}
	return &car, nil
}

// FindByClientID client'ın tüm arabalarını en yeni önce döndürür.
func (r *FoundCarRepository) FindByClientID(ctx context.Context, clientID uint) ([]models.FoundCar, error) {
	if clientID == 0 {
		return nil, errors.New("geçersiz Client ID")
	}
	var cars []models.FoundCar
	err := r.getDB(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&cars).Error
	if err != nil {
		configslog.Log.Error("FoundCarRepository.FindByClientID: DB error", zap.Uint("client_id", clientID), zap.Error(err))
		return nil, err
	}
	return cars, nil
}

// FindByCriterionID sadece verilen kritere bağlı arabaları döndürür.
func (r *FoundCarRepository) FindByCriterionID(ctx context.Context, criterionID uint) ([]models.FoundCar, error) {
	if criterionID == 0 {
		return nil, errors.New("geçersiz SearchCriteria ID")
	}
	var cars []models.FoundCar
	err := r.getDB(ctx).
		Joins("JOIN criterion_found_cars ON criterion_found_cars.found_car_id = found_cars.id").
		Where("criterion_found_cars.search_criteria_id = ?", criterionID).
		Order("found_cars.created_at DESC").
		Find(&cars).Error
	if err != nil {
		configslog.Log.Error("FoundCarRepository.FindByCriterionID: DB error", zap.Uint("criterion_id", criterionID), zap.Error(err))
		return nil, err
	}
	return cars, nil
}

// FindFreshByPartnerID partnerin tüm client'ları genelinde en son bulunan
// arabaları döndürür. Sıralama client bazında değil, tek birleşik listede
// created_at'a göre azalandır.
func (r *FoundCarRepository) FindFreshByPartnerID(ctx context.Context, partnerID uint, limit int) ([]models.FoundCar, error) {
	if partnerID == 0 {
		return nil, errors.New("geçersiz Partner ID")
	}
	var cars []models.FoundCar
	query := r.getDB(ctx).
		Joins("JOIN clients ON clients.id = found_cars.client_id").
		Where("clients.partner_id = ?", partnerID).
		Order("found_cars.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&cars).Error; err != nil {
		configslog.Log.Error("FoundCarRepository.FindFreshByPartnerID: DB error", zap.Uint("partner_id", partnerID), zap.Error(err))
		return nil, err
	}
	return cars, nil
}

// FindSiblings aynı client'ın diğer arabalarını döndürür ("bu client için
// bulunan diğer arabalar" paneli).
func (r *FoundCarRepository) FindSiblings(ctx context.Context, clientID uint, excludeCarID uint, limit int) ([]models.FoundCar, error) {
	if clientID == 0 {
		return nil, errors.New("geçersiz Client ID")
	}
	var cars []models.FoundCar
	query := r.getDB(ctx).
		Where("client_id = ? AND id <> ?", clientID, excludeCarID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&cars).Error; err != nil {
		configslog.Log.Error("FoundCarRepository.FindSiblings: DB error", zap.Uint("client_id", clientID), zap.Error(err))
		return nil, err
	}
	return cars, nil
}

// CountByPartnerID partnerin toplam araba sayısını döndürür.
func (r *FoundCarRepository) CountByPartnerID(ctx context.Context, partnerID uint) (int64, error) {
	if partnerID == 0 {
		return 0, errors.New("geçersiz Partner ID")
	}
	var count int64
	err := r.getDB(ctx).
		Model(&models.FoundCar{}).
		Joins("JOIN clients ON clients.id = found_cars.client_id").
		Where("clients.partner_id = ?", partnerID).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("FoundCarRepository.CountByPartnerID: DB error", zap.Uint("partner_id", partnerID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// AttachToCriterion mevcut bir arabayı bir kritere bağlar.
func (r *FoundCarRepository) AttachToCriterion(ctx context.Context, carID, criterionID uint) error {
	if carID == 0 || criterionID == 0 {
		return errors.New("geçersiz araba veya kriter ID'si")
	}
	link := models.CriterionFoundCar{SearchCriteriaID: criterionID, FoundCarID: carID}
	return r.getDB(ctx).Create(&link).Error
}

// Arayüz uyumluluğu kontrolü
var _ IFoundCarRepository = (*FoundCarRepository)(nil)
