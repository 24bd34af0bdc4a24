package repositories

import (
	"context"
	"testing"

	"avtoperegon.pro/models"
	"avtoperegon.pro/pkg/queryparams"

	"github.com/stretchr/testify/require"
)

func newCriteria(t *testing.T, repo ISearchCriteriaRepository, clientID uint, name string) *models.SearchCriteria {
	t.Helper()
	criteria := &models.SearchCriteria{
		ClientID:  clientID,
		Name:      name,
		Country:   models.CountryKorea,
		SearchURL: "http://example.com",
	}
	require.NoError(t, repo.Create(context.Background(), criteria))
	return criteria
}

func TestSearchCriteriaRepository_CreateFillsDefaults(t *testing.T) {
	db := newTestDB(t)
	_, client := seedChain(t, db, "avtoperegon")
	repo := NewSearchCriteriaRepositoryWithDB(db)

	criteria := newCriteria(t, repo, client.ID, "Kore SUV")

	require.Equal(t, models.CriteriaStatusReview, criteria.Status)
	require.GreaterOrEqual(t, criteria.PublicID, int64(200_000_000_000))
	require.Less(t, criteria.PublicID, int64(300_000_000_000))
}

func TestSearchCriteriaRepository_SoftDeleteExclusion(t *testing.T) {
	db := newTestDB(t)
	_, client := seedChain(t, db, "avtoperegon")
	repo := NewSearchCriteriaRepositoryWithDB(db)
	ctx := context.Background()

	criteria := newCriteria(t, repo, client.ID, "Kore SUV")
	require.NoError(t, repo.SoftDelete(ctx, criteria.ID))

	// Aktif listeden düşer
	active, err := repo.FindActiveByClientID(ctx, client.ID)
	require.NoError(t, err)
	require.Empty(t, active)

	// Doğrudan ID ve public ID ile hâlâ bulunur
	byID, err := repo.FindByID(ctx, criteria.ID)
	require.NoError(t, err)
	require.True(t, byID.DeletedAt.Valid)

	byPublicID, err := repo.FindByPublicID(ctx, criteria.PublicID)
	require.NoError(t, err)
	require.Equal(t, criteria.ID, byPublicID.ID)
}

func TestSearchCriteriaRepository_RestoreAndPermanentDelete(t *testing.T) {
	db := newTestDB(t)
	_, client := seedChain(t, db, "avtoperegon")
	repo := NewSearchCriteriaRepositoryWithDB(db)
	ctx := context.Background()

	criteria := newCriteria(t, repo, client.ID, "Kore SUV")
	require.NoError(t, repo.SoftDelete(ctx, criteria.ID))

	// Silinmemiş kaydı restore etmek ErrNotFound döner
	other := newCriteria(t, repo, client.ID, "Çin sedan")
	require.ErrorIs(t, repo.Restore(ctx, other.ID), ErrNotFound)

	require.NoError(t, repo.Restore(ctx, criteria.ID))
	active, err := repo.FindActiveByClientID(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)

	require.NoError(t, repo.PermanentDelete(ctx, criteria.ID))
	_, err = repo.FindByID(ctx, criteria.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.PermanentDelete(ctx, criteria.ID), ErrNotFound)
}

func TestSearchCriteriaRepository_ActiveListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	_, client := seedChain(t, db, "avtoperegon")
	repo := NewSearchCriteriaRepositoryWithDB(db)
	ctx := context.Background()

	first := newCriteria(t, repo, client.ID, "ilk")
	second := newCriteria(t, repo, client.ID, "ikinci")

	active, err := repo.FindActiveByClientID(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, second.ID, active[0].ID)
	require.Equal(t, first.ID, active[1].ID)
}

func TestSearchCriteriaRepository_NonEmptyFiltersEmptySelections(t *testing.T) {
	db := newTestDB(t)
	_, client := seedChain(t, db, "avtoperegon")
	criteriaRepo := NewSearchCriteriaRepositoryWithDB(db)
	carRepo := NewFoundCarRepositoryWithDB(db)
	ctx := context.Background()

	full := newCriteria(t, criteriaRepo, client.ID, "dolu")
	_ = newCriteria(t, criteriaRepo, client.ID, "boş")

	car := &models.FoundCar{ClientID: client.ID, Description: "Tucson"}
	require.NoError(t, carRepo.Create(ctx, car, []uint{full.ID}))

	partnerID := client.PartnerID
	criteria, total, err := criteriaRepo.FindNonEmptyByPartnerID(ctx, partnerID, 6)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, criteria, 1)
	require.Equal(t, full.ID, criteria[0].ID)
	require.Equal(t, client.ID, criteria[0].Client.ID)
	require.Len(t, criteria[0].FoundCars, 1)
}

func TestSearchCriteriaRepository_NonEmptyPaginated(t *testing.T) {
	db := newTestDB(t)
	_, client := seedChain(t, db, "avtoperegon")
	criteriaRepo := NewSearchCriteriaRepositoryWithDB(db)
	carRepo := NewFoundCarRepositoryWithDB(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		crit := newCriteria(t, criteriaRepo, client.ID, "seçki")
		car := &models.FoundCar{ClientID: client.ID, Description: "araba"}
		require.NoError(t, carRepo.Create(ctx, car, []uint{crit.ID}))
	}

	params := queryparams.ListParams{Page: 1, PerPage: 2}
	criteria, total, err := criteriaRepo.FindNonEmptyByPartnerPaginated(ctx, client.PartnerID, params)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, criteria, 2)

	params.Page = 2
	criteria, _, err = criteriaRepo.FindNonEmptyByPartnerPaginated(ctx, client.PartnerID, params)
	require.NoError(t, err)
	require.Len(t, criteria, 1)
}

func TestSearchCriteriaRepository_UpdatePartial(t *testing.T) {
	db := newTestDB(t)
	_, client := seedChain(t, db, "avtoperegon")
	repo := NewSearchCriteriaRepositoryWithDB(db)
	ctx := context.Background()

	criteria := newCriteria(t, repo, client.ID, "eski ad")

	require.NoError(t, repo.Update(ctx, criteria.ID, map[string]interface{}{"name": "yeni ad"}))

	updated, err := repo.FindByID(ctx, criteria.ID)
	require.NoError(t, err)
	require.Equal(t, "yeni ad", updated.Name)
	require.Equal(t, models.CriteriaStatusReview, updated.Status)

	require.ErrorIs(t, repo.Update(ctx, 99999, map[string]interface{}{"name": "x"}), ErrNotFound)
}
