package repositories

import (
	"context"
	"errors"
	"fmt"

	"avtoperegon.pro/pkg/queryparams"

	"gorm.io/gorm"
)

// ErrNotFound aranan kayıt yok. Servis katmanı bunu kendi typed hatasına çevirir.
var ErrNotFound = errors.New("kayıt bulunamadı")

// txKey context üzerinden transaction taşımak için anahtar tipi.
type txKey struct{}

// ContextWithTx verilen transaction'ı context'e koyar; repository'ler
// varsa onu kullanır.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFromContext context'te transaction varsa onu, yoksa ana bağlantıyı döndürür.
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// IBaseRepository sayfalı listeleme gibi entity'den bağımsız işlemleri toplar.
type IBaseRepository[T any] interface {
	SetAllowedSortColumns(columns []string)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams, scopes ...func(*gorm.DB) *gorm.DB) ([]T, int64, error)
}

// BaseRepository IBaseRepository'nin GORM implementasyonu.
type BaseRepository[T any] struct {
	db          *gorm.DB
	table       string
	allowedSort map[string]bool
	defaultSort string
}

// NewBaseRepository yeni bir BaseRepository örneği oluşturur. Modelin tablo
// adı burada çözülür; sıralama sütunu her zaman tablo adıyla nitelenir ki
// JOIN içeren scope'larda sütun adı çakışması olmasın.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	var model T
	table := ""
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&model); err == nil {
		table = stmt.Schema.Table
	}
	return &BaseRepository[T]{
		db:          db,
		table:       table,
		allowedSort: map[string]bool{"id": true, "created_at": true},
		defaultSort: "created_at",
	}
}

// SetAllowedSortColumns sıralamaya izin verilen sütunları belirler.
// Liste dışı bir sort_by istenirse varsayılana düşülür (SQL injection koruması).
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSort = make(map[string]bool, len(columns))
	for _, col := range columns {
		r.allowedSort[col] = true
	}
	if len(columns) > 0 {
		r.defaultSort = columns[0]
	}
}

// FindAllPaginated verilen scope'larla filtrelenmiş sayfalı sonuç döndürür.
func (r *BaseRepository[T]) FindAllPaginated(ctx context.Context, params queryparams.ListParams, scopes ...func(*gorm.DB) *gorm.DB) ([]T, int64, error) {
	params.Validate()

	sortBy := params.SortBy
	if !r.allowedSort[sortBy] {
		sortBy = r.defaultSort
	}
	if r.table != "" {
		sortBy = r.table + "." + sortBy
	}

	var model T
	query := dbFromContext(ctx, r.db).Model(&model).Scopes(scopes...)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []T
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, params.OrderBy)).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
