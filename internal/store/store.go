// Package store keeps evaluated scenarios for later comparison. The engine
// never touches it; callers own the repository and pass it around.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/rulescalc/internal/domain"
)

// ErrNotFound is returned when no scenario has the requested id.
var ErrNotFound = errors.New("scenario not found")

// StoredScenario is an evaluated scenario together with its identity.
type StoredScenario struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	UserID    string                   `json:"user_id,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	Input     domain.EvaluationInput   `json:"input"`
	Result    *domain.EvaluationResult `json:"result"`
}

// ScenarioRepository stores scenarios by id.
type ScenarioRepository interface {
	Create(ctx context.Context, s StoredScenario) (StoredScenario, error)
	Get(ctx context.Context, id uuid.UUID) (StoredScenario, error)
	// List returns scenarios in creation order. An empty userID lists all.
	List(ctx context.Context, userID string) ([]StoredScenario, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
