package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/estately/estately/backend/go-services/internal/models"
	"github.com/google/uuid"
)

// MemoryUserRepository is the in-memory twin of MongoUserRepository, used by
// unit tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.User
	byExt map[string]string // externalId -> id
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byID: make(map[string]*models.User), byExt: make(map[string]string)}
}

func (r *MemoryUserRepository) UpsertByExternalID(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if id, ok := r.byExt[u.ExternalID]; ok {
		existing := r.byID[id]
		existing.Email = u.Email
		existing.FirstName = u.FirstName
		existing.LastName = u.LastName
		existing.UpdatedAt = now
		cp := *existing
		return &cp, nil
	}
	created := &models.User{
		ID:         uuid.NewString(),
		ExternalID: u.ExternalID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       models.RoleUser,
		Status:     models.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.byID[created.ID] = created
	r.byExt[created.ExternalID] = created.ID
	cp := *created
	return &cp, nil
}

func (r *MemoryUserRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byExt[externalID]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.User, 0, len(r.byID))
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryUserRepository) SetStatus(ctx context.Context, id, status string) (*models.User, error) {
	return r.setField(ctx, id, func(u *models.User) { u.Status = status })
}

func (r *MemoryUserRepository) SetRole(ctx context.Context, id, role string) (*models.User, error) {
	return r.setField(ctx, id, func(u *models.User) { u.Role = role })
}

func (r *MemoryUserRepository) setField(ctx context.Context, id string, apply func(*models.User)) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	apply(u)
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}
