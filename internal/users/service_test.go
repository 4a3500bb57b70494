package users

import (
	"context"
	"errors"
	"testing"

	"github.com/estately/estately/backend/go-services/internal/models"
)

func payload(id, email, first, last string) WebhookPayload {
	return WebhookPayload{Data: WebhookUser{
		ID:             id,
		EmailAddresses: []EmailAddress{{EmailAddress: email}},
		FirstName:      first,
		LastName:       last,
	}}
}

func TestSyncCreatesWithDefaults(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	ctx := context.Background()

	u, err := svc.Sync(ctx, payload("ext1", "a@example.com", "Ada", "Lovelace"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected repository to assign an id")
	}
	if u.ExternalID != "ext1" || u.Email != "a@example.com" {
		t.Fatalf("unexpected synced fields: %+v", u)
	}
	if u.Role != models.RoleUser || u.Status != models.StatusPending {
		t.Fatalf("expected default role/status, got role=%q status=%q", u.Role, u.Status)
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestSyncIsIdempotentForRoleAndStatus(t *testing.T) {
	repo := NewMemoryUserRepository()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Sync(ctx, payload("ext1", "a@example.com", "Ada", "Lovelace"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// admin promotes and approves between syncs
	if _, err := repo.SetRole(ctx, first.ID, models.RoleAdmin); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if _, err := repo.SetStatus(ctx, first.ID, models.StatusApproved); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	second, err := svc.Sync(ctx, payload("ext1", "a@example.com", "Ada", "King"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same record, got %s and %s", first.ID, second.ID)
	}
	if second.LastName != "King" {
		t.Fatalf("expected lastName updated, got %q", second.LastName)
	}
	if second.Role != models.RoleAdmin || second.Status != models.StatusApproved {
		t.Fatalf("sync must not touch role/status, got role=%q status=%q", second.Role, second.Status)
	}
}

func TestSyncMissingIDRejected(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	if _, err := svc.Sync(context.Background(), payload("", "a@example.com", "A", "B")); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSyncWithoutEmailAddresses(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	u, err := svc.Sync(context.Background(), WebhookPayload{Data: WebhookUser{ID: "ext2", FirstName: "No", LastName: "Mail"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "" {
		t.Fatalf("expected empty email, got %q", u.Email)
	}
}

func TestGetByExternalIDUnknownIsNil(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	u, err := svc.GetByExternalID(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil for unknown subject, got %+v", u)
	}
}

func TestSetStatusValidation(t *testing.T) {
	repo := NewMemoryUserRepository()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Sync(ctx, payload("ext1", "a@example.com", "Ada", "Lovelace"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.SetStatus(ctx, u.ID, "halfway"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
	if _, err := svc.SetStatus(ctx, "missing", models.StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}

	updated, err := svc.SetStatus(ctx, u.ID, models.StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.StatusApproved {
		t.Fatalf("expected approved, got %q", updated.Status)
	}
}

func TestSetRoleValidation(t *testing.T) {
	repo := NewMemoryUserRepository()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Sync(ctx, payload("ext1", "a@example.com", "Ada", "Lovelace"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SetRole(ctx, u.ID, "superuser"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
	updated, err := svc.SetRole(ctx, u.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.IsAdmin() {
		t.Fatalf("expected admin role, got %q", updated.Role)
	}
}
