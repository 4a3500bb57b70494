package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/estately/estately/backend/go-services/internal/listing"
	"github.com/google/uuid"
)

// MemoryRepo is the in-memory twin of MongoRepo, used by unit tests. It
// applies the same filter and ordering semantics.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*listing.Listing
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*listing.Listing)}
}

func matches(l *listing.Listing, f listing.Filter) bool {
	if f.PropertyType != nil && l.PropertyType != *f.PropertyType {
		return false
	}
	if f.City != nil && !strings.Contains(strings.ToLower(l.Location.City), strings.ToLower(*f.City)) {
		return false
	}
	if f.Bedrooms != nil && l.Bedrooms != *f.Bedrooms {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	return true
}

func (m *MemoryRepo) matching(f listing.Filter) []*listing.Listing {
	out := []*listing.Listing{}
	for _, l := range m.store {
		if matches(l, f) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MemoryRepo) Create(ctx context.Context, l *listing.Listing) (*listing.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	l.ID = uuid.NewString()
	l.CreatedAt = now
	l.UpdatedAt = now
	cp := *l
	m.store[l.ID] = &cp
	return l, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*listing.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.store[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Find(ctx context.Context, f listing.Filter, skip, limit int64) ([]*listing.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.matching(f)
	if skip >= int64(len(all)) {
		return []*listing.Listing{}, nil
	}
	all = all[skip:]
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	out := make([]*listing.Listing, 0, len(all))
	for _, l := range all {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepo) Count(ctx context.Context, f listing.Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.matching(f))), nil
}

func (m *MemoryRepo) Update(ctx context.Context, id string, p listing.Patch) (*listing.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.PropertyType != nil {
		l.PropertyType = *p.PropertyType
	}
	if p.Bedrooms != nil {
		l.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		l.Bathrooms = *p.Bathrooms
	}
	if p.SquareFootage != nil {
		l.SquareFootage = *p.SquareFootage
	}
	if p.Features != nil {
		l.Features = *p.Features
	}
	if p.Images != nil {
		l.Images = *p.Images
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	l.UpdatedAt = time.Now().UTC()
	cp := *l
	return &cp, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
