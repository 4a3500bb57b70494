package service

import (
	"context"
	"testing"

	"github.com/estately/estately/backend/go-services/internal/listing"
	"github.com/estately/estately/backend/go-services/internal/listing/repository"
	"github.com/estately/estately/backend/go-services/internal/models"
	"github.com/estately/estately/backend/go-services/internal/users"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*Service, *users.MemoryUserRepository, *models.User) {
	t.Helper()
	userRepo := users.NewMemoryUserRepository()
	owner, err := userRepo.UpsertByExternalID(context.Background(), &models.User{
		ExternalID: "ext-owner", Email: "o@example.com", FirstName: "Olive", LastName: "Owner",
	})
	require.NoError(t, err)
	return NewService(repository.NewMemoryRepo(), userRepo), userRepo, owner
}

func validListing() *listing.Listing {
	return &listing.Listing{
		Title:        "A",
		Description:  "two bed house",
		Price:        100000,
		Location:     listing.Location{City: "Austin"},
		PropertyType: listing.TypeHouse,
		Bedrooms:     2,
		Bathrooms:    1,
	}
}

func TestCreatePopulatesOwnerAndDefaults(t *testing.T) {
	svc, _, owner := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validListing(), owner.ID)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, listing.StatusActive, created.Status)
	require.Equal(t, owner.ID, created.CreatedBy)
	require.NotNil(t, created.Owner)
	require.Equal(t, "Olive", created.Owner.FirstName)
	require.Equal(t, "Owner", created.Owner.LastName)
}

func TestCreateValidation(t *testing.T) {
	svc, _, owner := newFixture(t)
	ctx := context.Background()

	bad := validListing()
	bad.Title = ""
	_, err := svc.Create(ctx, bad, owner.ID)
	require.ErrorIs(t, err, ErrValidation)

	bad = validListing()
	bad.Price = -1
	_, err = svc.Create(ctx, bad, owner.ID)
	require.ErrorIs(t, err, ErrValidation)

	bad = validListing()
	bad.PropertyType = "castle"
	_, err = svc.Create(ctx, bad, owner.ID)
	require.ErrorIs(t, err, ErrValidation)
}

func TestListPageShape(t *testing.T) {
	svc, _, owner := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, validListing(), owner.ID)
		require.NoError(t, err)
	}

	page, err := svc.ListPage(ctx, listing.Filter{}, 2, 3)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	require.EqualValues(t, 3, page.TotalPages) // ceil(7/3)
	require.EqualValues(t, 2, page.CurrentPage)

	last, err := svc.ListPage(ctx, listing.Filter{}, 3, 3)
	require.NoError(t, err)
	require.Len(t, last.Items, 1)

	// owner names are populated on every item
	for _, l := range page.Items {
		require.NotNil(t, l.Owner)
		require.Equal(t, "Olive", l.Owner.FirstName)
	}
}

func TestListPageValidation(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.ListPage(ctx, listing.Filter{}, 0, 10)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.ListPage(ctx, listing.Filter{}, 1, 0)
	require.ErrorIs(t, err, ErrValidation)

	bogus := "palace"
	_, err = svc.ListPage(ctx, listing.Filter{PropertyType: &bogus}, 1, 10)
	require.ErrorIs(t, err, ErrValidation)

	// oversized limit is clamped, not rejected
	page, err := svc.ListPage(ctx, listing.Filter{}, 1, 5000)
	require.NoError(t, err)
	require.NotNil(t, page)
}

func TestUpdateOwnership(t *testing.T) {
	svc, _, owner := newFixture(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validListing(), owner.ID)
	require.NoError(t, err)

	price := 90000.0

	// stranger without admin role is rejected
	_, err = svc.Update(ctx, created.ID, "someone-else", models.RoleUser, listing.Patch{Price: &price})
	require.ErrorIs(t, err, ErrForbidden)

	// owner may update
	updated, err := svc.Update(ctx, created.ID, owner.ID, models.RoleUser, listing.Patch{Price: &price})
	require.NoError(t, err)
	require.Equal(t, 90000.0, updated.Price)

	// admin may update someone else's listing
	price2 := 95000.0
	updated, err = svc.Update(ctx, created.ID, "admin-id", models.RoleAdmin, listing.Patch{Price: &price2})
	require.NoError(t, err)
	require.Equal(t, 95000.0, updated.Price)

	// unknown listing is 404 before the ownership check
	_, err = svc.Update(ctx, "missing", "someone-else", models.RoleUser, listing.Patch{Price: &price})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEmptyPatchChangesNothingButUpdatedAt(t *testing.T) {
	svc, _, owner := newFixture(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validListing(), owner.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, owner.ID, models.RoleUser, listing.Patch{})
	require.NoError(t, err)
	require.Equal(t, created.Title, updated.Title)
	require.Equal(t, created.Description, updated.Description)
	require.Equal(t, created.Price, updated.Price)
	require.Equal(t, created.Location, updated.Location)
	require.Equal(t, created.PropertyType, updated.PropertyType)
	require.Equal(t, created.Status, updated.Status)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdatePatchValidation(t *testing.T) {
	svc, _, owner := newFixture(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validListing(), owner.ID)
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(ctx, created.ID, owner.ID, models.RoleUser, listing.Patch{Title: &empty})
	require.ErrorIs(t, err, ErrValidation)

	bogus := "yurt"
	_, err = svc.Update(ctx, created.ID, owner.ID, models.RoleUser, listing.Patch{PropertyType: &bogus})
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteOwnership(t *testing.T) {
	svc, _, owner := newFixture(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validListing(), owner.ID)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, created.ID, "someone-else", models.RoleUser), ErrForbidden)

	// still retrievable after the rejected delete
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, owner.ID, models.RoleUser))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.ID, owner.ID, models.RoleUser), ErrNotFound)
}
