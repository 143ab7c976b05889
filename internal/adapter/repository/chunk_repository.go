package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vodcomms/vodcomms/internal/domain/entities"
)

// ChunkRepository handles transcript chunk data operations
type ChunkRepository struct {
	db *gorm.DB
}

// NewChunkRepository creates a new chunk repository
func NewChunkRepository(db *gorm.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// FindBySessionID retrieves a session's chunks ordered by start_ms ascending
func (r *ChunkRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.Chunk, error) {
	var chunks []*entities.Chunk
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("start_ms ASC").
		Find(&chunks).Error; err != nil {
		return nil, err
	}
	return chunks, nil
}

// ReplaceForSession atomically replaces a session's chunk set. Each process
// run produces a full new set, so stale chunks never survive a rerun.
func (r *ChunkRepository) ReplaceForSession(ctx context.Context, sessionID uuid.UUID, chunks []*entities.Chunk) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&entities.Chunk{}).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		return tx.Create(chunks).Error
	})
}

// DeleteBySessionID removes all chunks for a session
func (r *ChunkRepository) DeleteBySessionID(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&entities.Chunk{}).Error
}
