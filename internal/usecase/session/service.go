package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/vodcomms/vodcomms/errors"
	"github.com/vodcomms/vodcomms/internal/domain/entities"
	"github.com/vodcomms/vodcomms/internal/domain/repositories"
	"github.com/vodcomms/vodcomms/pkg/config"
)

// Service defines session management methods
type Service interface {
	Create(ctx context.Context, input CreateInput) (*entities.Session, error)
	List(ctx context.Context) ([]*entities.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Session, error)
	Detail(ctx context.Context, id uuid.UUID) (*entities.Session, []*entities.Chunk, error)
	Chunks(ctx context.Context, id uuid.UUID) ([]*entities.Chunk, error)
	AttachMedia(ctx context.Context, id uuid.UUID, upload MediaUpload) (*entities.Session, error)
}

// CreateInput carries the fields accepted when creating a session
type CreateInput struct {
	Title      *string
	YoutubeURL *string
}

// MediaUpload carries one multipart media upload
type MediaUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// ObjectStorage is the slice of the storage client the session service needs
type ObjectStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
}

type sessionService struct {
	sessionRepo repositories.SessionRepository
	chunkRepo   repositories.ChunkRepository
	storage     ObjectStorage
	cfg         *config.Config
	logger      *zap.Logger
}

// NewService constructs a new session service
func NewService(
	sessionRepo repositories.SessionRepository,
	chunkRepo repositories.ChunkRepository,
	storage ObjectStorage,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &sessionService{
		sessionRepo: sessionRepo,
		chunkRepo:   chunkRepo,
		storage:     storage,
		cfg:         cfg,
		logger:      logger,
	}
}

// Create creates a session in the created state
func (s *sessionService) Create(ctx context.Context, input CreateInput) (*entities.Session, error) {
	sess := entities.NewSession(input.Title, input.YoutubeURL)

	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, apperrors.ErrDBQueryFailed("create session", err)
	}

	s.logger.Info("session created",
		zap.String("session_id", sess.ID.String()),
	)

	return sess, nil
}

// List returns all sessions, newest first
func (s *sessionService) List(ctx context.Context) ([]*entities.Session, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list sessions", err)
	}
	return sessions, nil
}

// Get returns one session by id
func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	sess, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound(id.String())
		}
		return nil, apperrors.ErrDBQueryFailed("find session", err)
	}
	return sess, nil
}

// Detail returns a session together with its ordered chunk list
func (s *sessionService) Detail(ctx context.Context, id uuid.UUID) (*entities.Session, []*entities.Chunk, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	chunks, err := s.chunkRepo.FindBySessionID(ctx, id)
	if err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed("find chunks", err)
	}

	return sess, chunks, nil
}

// Chunks returns the ordered chunk list for a session
func (s *sessionService) Chunks(ctx context.Context, id uuid.UUID) ([]*entities.Chunk, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	chunks, err := s.chunkRepo.FindBySessionID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("find chunks", err)
	}
	return chunks, nil
}

// AttachMedia validates and stores an uploaded media file, then moves the
// session to the uploaded state. A re-upload discards previously extracted
// audio so a stale transcript cannot be served for new media.
func (s *sessionService) AttachMedia(ctx context.Context, id uuid.UUID, upload MediaUpload) (*entities.Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}

	filename := path.Base(upload.Filename)
	objectKey := fmt.Sprintf("sessions/%s/%s", sess.ID, filename)

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.UploadFile(ctx, objectKey, upload.Reader, upload.Size, contentType); err != nil {
		s.logger.Error("media upload failed",
			zap.String("session_id", sess.ID.String()),
			zap.String("object_key", objectKey),
			zap.Error(err),
		)
		return nil, apperrors.ErrStorageFailed("upload media", err)
	}

	sess.AttachMedia(objectKey, filename, contentType, upload.Size)
	if err := s.sessionRepo.Update(ctx, sess); err != nil {
		return nil, apperrors.ErrDBQueryFailed("update session", err)
	}

	s.logger.Info("media attached",
		zap.String("session_id", sess.ID.String()),
		zap.String("object_key", objectKey),
		zap.Int64("size", upload.Size),
	)

	return sess, nil
}

func (s *sessionService) validateUpload(upload MediaUpload) error {
	if strings.TrimSpace(upload.Filename) == "" {
		return apperrors.ErrInvalidArgument("Filename is required")
	}

	if upload.Size <= 0 {
		return apperrors.ErrMediaRejected("file is empty")
	}
	if upload.Size > s.cfg.Media.MaxUploadBytes {
		return apperrors.ErrMediaRejected(
			fmt.Sprintf("file exceeds %d bytes", s.cfg.Media.MaxUploadBytes))
	}

	ext := strings.ToLower(path.Ext(upload.Filename))
	for _, allowed := range s.cfg.Media.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return apperrors.ErrMediaRejected(fmt.Sprintf("extension %q is not allowed", ext))
}
