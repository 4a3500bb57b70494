package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/estately/estately/backend/go-services/internal/listing"
	"github.com/estately/estately/backend/go-services/internal/listing/repository"
	"github.com/estately/estately/backend/go-services/internal/models"
)

var (
	ErrNotFound   = errors.New("listing not found")
	ErrForbidden  = errors.New("not authorized for this listing")
	ErrValidation = errors.New("invalid listing")
)

const (
	DefaultLimit = 10
	// MaxLimit bounds response size; requests asking for more are clamped.
	MaxLimit = 100
)

// OwnerDirectory resolves a listing's owner to a directory record so
// responses can expose the owner's name.
type OwnerDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Service implements the listing query/mutation contract over a repository.
// Callers pass the resolved caller identity explicitly; the service holds no
// request-scoped state.
type Service struct {
	repo   repository.Repository
	owners OwnerDirectory
}

func NewService(r repository.Repository, owners OwnerDirectory) *Service {
	return &Service{repo: r, owners: owners}
}

// ListPage returns one page of listings matching every supplied filter.
// page and limit must be >= 1; limit is clamped to MaxLimit.
func (s *Service) ListPage(ctx context.Context, f listing.Filter, page, limit int64) (*listing.Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", ErrValidation)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be >= 1", ErrValidation)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if f.PropertyType != nil && !listing.ValidPropertyType(*f.PropertyType) {
		return nil, fmt.Errorf("%w: unknown propertyType %q", ErrValidation, *f.PropertyType)
	}

	items, err := s.repo.Find(ctx, f, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := s.populateOwners(ctx, items); err != nil {
		return nil, err
	}
	return &listing.Page{
		Items:       items,
		TotalPages:  (count + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

// Get returns a single listing with its owner populated.
func (s *Service) Get(ctx context.Context, id string) (*listing.Listing, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.populateOwners(ctx, []*listing.Listing{l}); err != nil {
		return nil, err
	}
	return l, nil
}

// Create validates and persists a new listing owned by ownerID.
func (s *Service) Create(ctx context.Context, l *listing.Listing, ownerID string) (*listing.Listing, error) {
	if err := validateNew(l); err != nil {
		return nil, err
	}
	if l.Status == "" {
		l.Status = listing.StatusActive
	}
	l.CreatedBy = ownerID
	created, err := s.repo.Create(ctx, l)
	if err != nil {
		return nil, err
	}
	if err := s.populateOwners(ctx, []*listing.Listing{created}); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial patch after the ownership check: only the owning
// user or an admin may mutate a listing. Not-Found wins over Forbidden.
func (s *Service) Update(ctx context.Context, id, callerID, callerRole string, p listing.Patch) (*listing.Listing, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if existing.CreatedBy != callerID && callerRole != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := validatePatch(p); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.populateOwners(ctx, []*listing.Listing{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete physically removes the listing after the same ownership check as
// Update.
func (s *Service) Delete(ctx context.Context, id, callerID, callerRole string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if existing.CreatedBy != callerID && callerRole != models.RoleAdmin {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) populateOwners(ctx context.Context, items []*listing.Listing) error {
	cache := map[string]*models.User{}
	for _, l := range items {
		if l.CreatedBy == "" {
			continue
		}
		u, ok := cache[l.CreatedBy]
		if !ok {
			var err error
			u, err = s.owners.GetByID(ctx, l.CreatedBy)
			if err != nil {
				return err
			}
			cache[l.CreatedBy] = u
		}
		if u != nil {
			l.Owner = &listing.OwnerSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
		}
	}
	return nil
}

func validateNew(l *listing.Listing) error {
	if l.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if l.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if l.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}
	if !listing.ValidPropertyType(l.PropertyType) {
		return fmt.Errorf("%w: unknown propertyType %q", ErrValidation, l.PropertyType)
	}
	if l.Bedrooms < 0 || l.Bathrooms < 0 {
		return fmt.Errorf("%w: bedrooms and bathrooms must be non-negative", ErrValidation)
	}
	if l.Status != "" && !listing.ValidStatus(l.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, l.Status)
	}
	return nil
}

func validatePatch(p listing.Patch) error {
	if p.Title != nil && *p.Title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if p.Description != nil && *p.Description == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrValidation)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}
	if p.PropertyType != nil && !listing.ValidPropertyType(*p.PropertyType) {
		return fmt.Errorf("%w: unknown propertyType %q", ErrValidation, *p.PropertyType)
	}
	if p.Bedrooms != nil && *p.Bedrooms < 0 {
		return fmt.Errorf("%w: bedrooms must be non-negative", ErrValidation)
	}
	if p.Bathrooms != nil && *p.Bathrooms < 0 {
		return fmt.Errorf("%w: bathrooms must be non-negative", ErrValidation)
	}
	if p.Status != nil && !listing.ValidStatus(*p.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, *p.Status)
	}
	return nil
}
