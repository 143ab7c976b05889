package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/vodcomms/vodcomms/internal/domain/entities"
)

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *entities.Session) error

	// FindByID finds a session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Session, error)

	// List returns all sessions, most recently created first
	List(ctx context.Context) ([]*entities.Session, error)

	// Update persists session changes
	Update(ctx context.Context, session *entities.Session) error

	// UpdateStatus updates only the session status
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.SessionStatus) error

	// Delete removes a session and its chunks
	Delete(ctx context.Context, id uuid.UUID) error
}
