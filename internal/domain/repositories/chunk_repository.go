package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/vodcomms/vodcomms/internal/domain/entities"
)

// ChunkRepository defines the interface for transcript chunk data access
type ChunkRepository interface {
	// FindBySessionID returns a session's chunks ordered by start_ms ascending
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.Chunk, error)

	// ReplaceForSession atomically deletes a session's chunks and inserts the
	// given set in one transaction
	ReplaceForSession(ctx context.Context, sessionID uuid.UUID, chunks []*entities.Chunk) error

	// DeleteBySessionID removes all chunks for a session
	DeleteBySessionID(ctx context.Context, sessionID uuid.UUID) error
}
