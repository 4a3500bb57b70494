package repository

import (
	"context"
	"errors"

	"github.com/estately/estately/backend/go-services/internal/listing"
)

var ErrNotFound = errors.New("listing not found")

// Repository defines persistence operations for listings.
type Repository interface {
	Create(ctx context.Context, l *listing.Listing) (*listing.Listing, error)
	Get(ctx context.Context, id string) (*listing.Listing, error)
	Find(ctx context.Context, f listing.Filter, skip, limit int64) ([]*listing.Listing, error)
	Count(ctx context.Context, f listing.Filter) (int64, error)
	Update(ctx context.Context, id string, p listing.Patch) (*listing.Listing, error)
	Delete(ctx context.Context, id string) error
}
