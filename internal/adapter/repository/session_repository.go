package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vodcomms/vodcomms/internal/domain/entities"
)

// SessionRepository handles session data operations
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session
func (r *SessionRepository) Create(ctx context.Context, session *entities.Session) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByID retrieves a session by ID
func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	var session entities.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// List retrieves all sessions, most recently created first
func (r *SessionRepository) List(ctx context.Context) ([]*entities.Session, error) {
	var sessions []*entities.Session
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update persists session changes
func (r *SessionRepository) Update(ctx context.Context, session *entities.Session) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	return r.db.WithContext(ctx).Save(session).Error
}

// UpdateStatus updates only the session status
func (r *SessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.SessionStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Session{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes a session and its chunks
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&entities.Chunk{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Session{}, id).Error
	})
}
