package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/estately/estately/backend/go-services/internal/models"
)

var ErrValidation = errors.New("invalid user payload")

// WebhookPayload is the identity provider's user-change notification body.
type WebhookPayload struct {
	Data WebhookUser `json:"data"`
}

type WebhookUser struct {
	ID             string         `json:"id"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
}

type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// Service maintains the directory mapping from external identity to internal
// user record.
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// Sync upserts the directory record for a provider webhook payload. This is
// the only path that creates a user; role and status of an existing record
// are never modified here. The first entry of email_addresses is taken as
// the primary email.
func (s *Service) Sync(ctx context.Context, p WebhookPayload) (*models.User, error) {
	if p.Data.ID == "" {
		return nil, fmt.Errorf("%w: missing data.id", ErrValidation)
	}
	email := ""
	if len(p.Data.EmailAddresses) > 0 {
		email = p.Data.EmailAddresses[0].EmailAddress
	}
	u := &models.User{
		ExternalID: p.Data.ID,
		Email:      email,
		FirstName:  p.Data.FirstName,
		LastName:   p.Data.LastName,
	}
	return s.repo.UpsertByExternalID(ctx, u)
}

// GetByExternalID returns the directory record for a provider subject, or
// (nil, nil) when the subject has never synced.
func (s *Service) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return s.repo.GetByExternalID(ctx, externalID)
}

// GetByID returns the directory record by internal id, or (nil, nil).
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every directory record. Admin-only enforcement is the
// authorization gate's job, not this service's.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.List(ctx)
}

// SetStatus moves a user to a new admission state.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*models.User, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.repo.SetStatus(ctx, id, status)
}

// SetRole assigns a user's role.
func (s *Service) SetRole(ctx context.Context, id, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return s.repo.SetRole(ctx, id, role)
}
