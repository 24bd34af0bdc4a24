package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"avtoperegon.pro/configs/configsdatabase"
	"avtoperegon.pro/configs/configslog"
	"avtoperegon.pro/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	testDBCounter atomic.Int64
	loggerOnce    sync.Once
)

// newTestApp uygulamayı in-memory veritabanı ve gerçek template'lerle ayağa
// kaldırır. SetDB, SetupRoutes'tan önce çağrılmalı; handler'lar servislerini
// kuruluş anında paylaşılan bağlantıyla oluşturur.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	loggerOnce.Do(configslog.InitLogger)

	dsn := fmt.Sprintf("file:routetest%d?mode=memory&cache=shared", testDBCounter.Add(1))
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
	configsdatabase.SetDB(db)

	engine := html.New("../views", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	SetupRoutes(app)
	return app, db
}

func seedPartnerChain(t *testing.T, db *gorm.DB, slug string) (*models.Partner, *models.Client, *models.SearchCriteria, *models.FoundCar) {
	t.Helper()
	partner := &models.Partner{Slug: slug, Name: slug}
	require.NoError(t, db.Create(partner).Error)

	client := &models.Client{PartnerID: partner.ID, Name: slug + " müşterisi"}
	require.NoError(t, db.Create(client).Error)

	criteria := &models.SearchCriteria{
		ClientID:  client.ID,
		Name:      "Kore SUV seçkisi",
		Country:   models.CountryKorea,
		SearchURL: "http://www.encar.com/dc/dc_carsearchlist.do",
	}
	require.NoError(t, db.Create(criteria).Error)

	car := &models.FoundCar{
		ClientID:    client.ID,
		Images:      models.ImageList{"https://cdn.example.com/tucson-1.jpg"},
		Price:       2_450_000,
		Description: "Hyundai Tucson 2021",
	}
	require.NoError(t, db.Create(car).Error)
	require.NoError(t, db.Create(&models.CriterionFoundCar{
		SearchCriteriaID: criteria.ID,
		FoundCarID:       car.ID,
	}).Error)

	return partner, client, criteria, car
}

func doGet(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestSelectionPage_ResolvesByPublicID(t *testing.T) {
	app, db := newTestApp(t)
	_, _, criteria, car := seedPartnerChain(t, db, "avtoperegon")

	status, body := doGet(t, app, fmt.Sprintf("/p/avtoperegon/selection/%d", criteria.PublicID))
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, criteria.Name)
	require.Contains(t, body, car.Description)

	// Bir fazlası sadece olmayan bir kayıttır: 404.
	status, _ = doGet(t, app, fmt.Sprintf("/p/avtoperegon/selection/%d", criteria.PublicID+1))
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestCarPage_IdenticalNotFoundForForeignAndMissing(t *testing.T) {
	app, db := newTestApp(t)
	seedPartnerChain(t, db, "partner-a")
	_, _, _, carB := seedPartnerChain(t, db, "partner-b")

	// Başka partnerin arabası ve hiç olmayan araba ayırt edilemez olmalı.
	foreignStatus, foreignBody := doGet(t, app, fmt.Sprintf("/p/partner-a/cars/%d", carB.PublicID))
	missingStatus, missingBody := doGet(t, app, fmt.Sprintf("/p/partner-a/cars/%d", carB.PublicID+7))

	require.Equal(t, fiber.StatusNotFound, foreignStatus)
	require.Equal(t, fiber.StatusNotFound, missingStatus)
	require.Equal(t, foreignBody, missingBody)
}

func TestPublicPages_MalformedIDReturns400(t *testing.T) {
	app, db := newTestApp(t)
	seedPartnerChain(t, db, "avtoperegon")

	for _, path := range []string{
		"/p/avtoperegon/cars/99999999999",   // 11 hane: taban değerin altında
		"/p/avtoperegon/selection/12ab34",   // rakam dışı karakter
		"/p/avtoperegon/c/-100000000000",    // işaret kabul edilmez
		"/p/avtoperegon/cars/0000000000042", // baştaki sıfırlar değeri kurtarmaz
	} {
		status, body := doGet(t, app, path)
		require.Equal(t, fiber.StatusBadRequest, status, path)
		require.Contains(t, body, "hatalı", path)
	}
}

func TestPartnerProfile_FreshCarsNewestFirst(t *testing.T) {
	app, db := newTestApp(t)
	partner, clientA, _, _ := seedPartnerChain(t, db, "avtoperegon")

	clientB := &models.Client{PartnerID: partner.ID, Name: "ikinci müşteri"}
	require.NoError(t, db.Create(clientB).Error)

	base := time.Now().Add(-72 * time.Hour)
	older := &models.FoundCar{ClientID: clientA.ID, Description: "Kia Sorento 2019", Price: 1_800_000}
	older.CreatedAt = base
	require.NoError(t, db.Create(older).Error)

	newer := &models.FoundCar{ClientID: clientB.ID, Description: "Genesis GV70 2022", Price: 3_900_000}
	newer.CreatedAt = base.Add(48 * time.Hour)
	require.NoError(t, db.Create(newer).Error)

	status, body := doGet(t, app, "/p/avtoperegon")
	require.Equal(t, fiber.StatusOK, status)

	// Akış client'lar arası, eklenme tarihine göre yeniden eskiye.
	newerIdx := strings.Index(body, "Genesis GV70 2022")
	olderIdx := strings.Index(body, "Kia Sorento 2019")
	require.GreaterOrEqual(t, newerIdx, 0)
	require.GreaterOrEqual(t, olderIdx, 0)
	require.Less(t, newerIdx, olderIdx)
}

func TestSelectionsPage_PaginatesNonEmptySelections(t *testing.T) {
	app, db := newTestApp(t)
	_, client, _, car := seedPartnerChain(t, db, "avtoperegon")

	// Biri seed'den, ikisi buradan: üç dolu seçki, oluşturulma sırası belli.
	// Seed'deki seçki en eskiye çekilir ki sayfa sınırı deterministik olsun.
	base := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(&models.SearchCriteria{}).
		Where("client_id = ?", client.ID).
		UpdateColumn("created_at", base).Error)
	names := []string{"ikinci seçki", "üçüncü seçki"}
	for i, name := range names {
		criteria := &models.SearchCriteria{
			ClientID:  client.ID,
			Name:      name,
			Country:   models.CountryChina,
			SearchURL: "https://www.che168.com/search",
		}
		criteria.CreatedAt = base.Add(time.Duration(i+1) * time.Hour)
		require.NoError(t, db.Create(criteria).Error)
		require.NoError(t, db.Create(&models.CriterionFoundCar{
			SearchCriteriaID: criteria.ID,
			FoundCarID:       car.ID,
		}).Error)
	}

	// Boş seçki listeye hiç girmemeli.
	empty := &models.SearchCriteria{ClientID: client.ID, Name: "boş seçki", Country: models.CountryEurope, SearchURL: "https://example.com"}
	require.NoError(t, db.Create(empty).Error)

	status, body := doGet(t, app, "/p/avtoperegon/selections?per_page=2")
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, "Sayfa 1 / 2")
	require.Contains(t, body, "üçüncü seçki")
	require.Contains(t, body, "ikinci seçki")
	require.NotContains(t, body, "Kore SUV seçkisi")
	require.NotContains(t, body, "boş seçki")

	status, body = doGet(t, app, "/p/avtoperegon/selections?per_page=2&page=2")
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, "Sayfa 2 / 2")
	require.Contains(t, body, "Kore SUV seçkisi")
	require.NotContains(t, body, "üçüncü seçki")
}

func TestClientPage_CrossPartnerHidden(t *testing.T) {
	app, db := newTestApp(t)
	_, clientA, _, _ := seedPartnerChain(t, db, "partner-a")
	seedPartnerChain(t, db, "partner-b")

	status, _ := doGet(t, app, fmt.Sprintf("/p/partner-a/c/%d", clientA.PublicID))
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doGet(t, app, fmt.Sprintf("/p/partner-b/c/%d", clientA.PublicID))
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestAPI_CriteriaLifecycleOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	_, client, _, _ := seedPartnerChain(t, db, "avtoperegon")

	const apiKey = "gizli-test-anahtari"
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.MinCost)
	require.NoError(t, err)
	t.Setenv("ADMIN_API_KEY_HASH", string(hash))

	doJSON := func(method, path, key, payload string) (int, string) {
		req := httptest.NewRequest(method, path, strings.NewReader(payload))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		if key != "" {
			req.Header.Set("X-Api-Key", key)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	createPath := fmt.Sprintf("/clients/%d/search-criteria", client.ID)

	// Anahtarsız ve yanlış anahtarlı istekler içeri alınmaz.
	status, _ := doJSON("POST", createPath, "", `{}`)
	require.Equal(t, fiber.StatusUnauthorized, status)
	status, _ = doJSON("POST", createPath, "yanlis-anahtar", `{}`)
	require.Equal(t, fiber.StatusUnauthorized, status)

	// Geçersiz ülke doğrulamaya takılır.
	status, body := doJSON("POST", createPath, apiKey, `{"country":"Japan","searchUrl":"http://example.com"}`)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, body, "validation_error")

	// Geçerli oluşturma: 201 ve review durumunda 2xx... public ID.
	status, body = doJSON("POST", createPath, apiKey,
		`{"name":"Çin elektrikli","country":"China","sourceSite":"che168.com","searchUrl":"https://www.che168.com/search"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var created struct {
		ID       uint   `json:"id"`
		PublicID int64  `json:"publicId"`
		Status   string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.Equal(t, "review", created.Status)
	require.GreaterOrEqual(t, created.PublicID, int64(200_000_000_000))
	require.Less(t, created.PublicID, int64(300_000_000_000))

	// Kısmi güncelleme: status gönderilmeyince korunur.
	status, _ = doJSON("PUT", fmt.Sprintf("/search-criteria/%d", created.ID), apiKey, `{"status":"approved"}`)
	require.Equal(t, fiber.StatusOK, status)
	status, body = doJSON("PUT", fmt.Sprintf("/search-criteria/%d", created.ID), apiKey, `{"name":"Çin sedan"}`)
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, `"approved"`)
	require.Contains(t, body, "Çin sedan")

	// Soft delete sonrası listeden düşer ama public sayfası çalışır.
	status, _ = doJSON("DELETE", fmt.Sprintf("/search-criteria/%d", created.ID), apiKey, "")
	require.Equal(t, fiber.StatusOK, status)
	status, body = doJSON("GET", createPath, apiKey, "")
	require.Equal(t, fiber.StatusOK, status)
	require.NotContains(t, body, "Çin sedan")

	pageStatus, _ := doGet(t, app, fmt.Sprintf("/p/avtoperegon/selection/%d", created.PublicID))
	require.Equal(t, fiber.StatusOK, pageStatus)

	// Restore ve kalıcı silme.
	status, _ = doJSON("POST", fmt.Sprintf("/search-criteria/%d/restore", created.ID), apiKey, "")
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON("DELETE", fmt.Sprintf("/search-criteria/%d/permanent", created.ID), apiKey, "")
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON("DELETE", fmt.Sprintf("/search-criteria/%d", created.ID), apiKey, "")
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestNotFoundHandler_ContentNegotiation(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/hic-olmayan-rota", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, fiber.MIMEApplicationJSON, strings.Split(resp.Header.Get("Content-Type"), ";")[0])

	status, body := doGet(t, app, "/hic-olmayan-rota")
	require.Equal(t, fiber.StatusNotFound, status)
	require.Contains(t, body, "Sayfa Bulunamadı")
}
