package repositories

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	testDBCounter atomic.Int64
	loggerOnce    sync.Once
)

// newTestDB her test için izole bir in-memory sqlite veritabanı açar ve
// şemayı migrate eder.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loggerOnce.Do(configslog.InitLogger)

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Partner{},
		&models.Client{},
		&models.SearchCriteria{},
		&models.FoundCar{},
		&models.CriterionFoundCar{},
	))
	return db
}

// seedChain partner → client zinciri oluşturur.
func seedChain(t *testing.T, db *gorm.DB, slug string) (*models.Partner, *models.Client) {
	t.Helper()
	partner := &models.Partner{Slug: slug, Name: slug}
	require.NoError(t, db.Create(partner).Error)
	client := &models.Client{PartnerID: partner.ID, Name: slug + " müşterisi"}
	require.NoError(t, db.Create(client).Error)
	return partner, client
}
