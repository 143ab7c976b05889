package processing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/vodcomms/vodcomms/errors"
	"github.com/vodcomms/vodcomms/internal/domain/entities"
	"github.com/vodcomms/vodcomms/internal/domain/repositories"
	"github.com/vodcomms/vodcomms/internal/infrastructure/cache"
	"github.com/vodcomms/vodcomms/pkg/config"
	"github.com/vodcomms/vodcomms/pkg/jobcontext"
)

// Service runs the media processing pipeline for a session
type Service interface {
	Process(ctx context.Context, sessionID uuid.UUID) (*Result, error)
}

// Result is the outcome of one processing run
type Result struct {
	Session   *entities.Session
	AudioPath string
	Chunks    []*entities.Chunk
	Engine    string
}

// ObjectStorage is the slice of the storage client the pipeline needs
type ObjectStorage interface {
	DownloadToFile(ctx context.Context, objectName, filePath string) error
	UploadLocalFile(ctx context.Context, objectName, filePath, contentType string) error
	ObjectExists(ctx context.Context, objectName string) (bool, error)
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

type processingService struct {
	sessionRepo repositories.SessionRepository
	chunkRepo   repositories.ChunkRepository
	storage     ObjectStorage
	locks       cache.LockStore
	chunker     Chunker
	extractor   *Extractor
	cfg         *config.Config
	logger      *zap.Logger
}

// NewService constructs a new processing service
func NewService(
	sessionRepo repositories.SessionRepository,
	chunkRepo repositories.ChunkRepository,
	storage ObjectStorage,
	locks cache.LockStore,
	chunker Chunker,
	extractor *Extractor,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &processingService{
		sessionRepo: sessionRepo,
		chunkRepo:   chunkRepo,
		storage:     storage,
		locks:       locks,
		chunker:     chunker,
		extractor:   extractor,
		cfg:         cfg,
		logger:      logger,
	}
}

// Process runs the pipeline: fetch the uploaded media, extract audio, chunk
// it, and atomically replace the session's chunk set. Concurrent runs on the
// same session conflict via the lock store. A failed run marks the session
// failed with the reason recorded; the chunk set is left untouched.
func (s *processingService) Process(ctx context.Context, sessionID uuid.UUID) (*Result, error) {
	sess, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound(sessionID.String())
		}
		return nil, apperrors.ErrDBQueryFailed("find session", err)
	}

	if !sess.HasMedia() {
		return nil, apperrors.ErrMediaRequired()
	}

	lockKey := "process:" + sessionID.String()
	acquired, err := s.locks.AcquireLock(ctx, lockKey, s.cfg.Cache.LockTTL)
	if err != nil {
		return nil, apperrors.ErrCacheFailed("acquire lock", err)
	}
	if !acquired {
		return nil, apperrors.ErrProcessConflict(sessionID.String())
	}
	defer func() {
		if err := s.locks.ReleaseLock(context.Background(), lockKey); err != nil {
			s.logger.Warn("failed to release processing lock",
				zap.String("lock_key", lockKey),
				zap.Error(err),
			)
		}
	}()

	ctx, cancel := jobcontext.Begin(ctx, sessionID, s.cfg.Transcriber.ProcessTimeout)
	defer cancel()

	logger := s.logger.With(
		zap.String("job_id", jobcontext.JobID(ctx).String()),
		zap.String("session_id", sessionID.String()),
	)

	sess.MarkAsProcessing()
	if err := s.sessionRepo.Update(ctx, sess); err != nil {
		return nil, apperrors.ErrDBQueryFailed("update session", err)
	}

	result, runErr := s.run(ctx, logger, sess)
	if runErr != nil {
		s.markFailed(sess, runErr, logger)
		return nil, runErr
	}

	logger.Info("processing finished",
		zap.String("engine", result.Engine),
		zap.Int("chunks", len(result.Chunks)),
		zap.Duration("elapsed", jobcontext.Elapsed(ctx)),
	)

	return result, nil
}

func (s *processingService) run(ctx context.Context, logger *zap.Logger, sess *entities.Session) (*Result, error) {
	mediaKey := *sess.MediaPath

	exists, err := s.storage.ObjectExists(ctx, mediaKey)
	if err != nil {
		return nil, apperrors.ErrStorageFailed("stat media", err)
	}
	if !exists {
		return nil, apperrors.ErrMediaMissing(mediaKey)
	}

	audioKey, err := s.prepareAudio(ctx, logger, sess, mediaKey)
	if err != nil {
		return nil, err
	}

	audioURL, err := s.storage.GetFileURL(ctx, audioKey, s.cfg.Storage.PresignExpiry)
	if err != nil {
		return nil, apperrors.ErrStorageFailed("presign audio", err)
	}

	chunks, err := s.chunker.Chunk(ctx, sess.ID, audioURL)
	if err != nil {
		return nil, apperrors.ErrTranscriptionFailed(err)
	}

	if err := s.chunkRepo.ReplaceForSession(ctx, sess.ID, chunks); err != nil {
		return nil, apperrors.ErrDBTransactionFailed(err)
	}

	sess.MarkAsReady(audioKey)
	if err := s.sessionRepo.Update(ctx, sess); err != nil {
		return nil, apperrors.ErrDBQueryFailed("update session", err)
	}

	return &Result{
		Session:   sess,
		AudioPath: audioKey,
		Chunks:    chunks,
		Engine:    s.chunker.Engine(),
	}, nil
}

// prepareAudio produces the audio object for the session. Audio-only
// uploads are used as-is; anything else goes through ffmpeg and the
// extracted wav is stored next to the media object.
func (s *processingService) prepareAudio(ctx context.Context, logger *zap.Logger, sess *entities.Session, mediaKey string) (string, error) {
	if s.extractor.IsAudioOnly(sess.MediaExt()) {
		logger.Info("media is audio-only, skipping extraction")
		return mediaKey, nil
	}

	workDir, err := os.MkdirTemp("", "vodcomms-process-*")
	if err != nil {
		return "", apperrors.ErrProcessingFailed(err)
	}
	defer os.RemoveAll(workDir)

	mediaFile := filepath.Join(workDir, "media"+sess.MediaExt())
	audioFile := filepath.Join(workDir, "audio.wav")

	download := func() error {
		return s.storage.DownloadToFile(ctx, mediaKey, mediaFile)
	}
	if err := backoff.Retry(download, s.storageBackOff(ctx)); err != nil {
		return "", apperrors.ErrStorageFailed("download media", err)
	}

	if err := s.extractor.Extract(ctx, mediaFile, audioFile); err != nil {
		return "", apperrors.ErrExtractionFailed(err)
	}

	audioKey := fmt.Sprintf("sessions/%s/audio.wav", sess.ID)
	upload := func() error {
		return s.storage.UploadLocalFile(ctx, audioKey, audioFile, "audio/wav")
	}
	if err := backoff.Retry(upload, s.storageBackOff(ctx)); err != nil {
		return "", apperrors.ErrStorageFailed("upload audio", err)
	}

	logger.Info("audio extracted",
		zap.String("audio_key", audioKey),
	)

	return audioKey, nil
}

// storageBackOff bounds storage retries so a dead MinIO fails the run
// instead of eating the whole process timeout
func (s *processingService) storageBackOff(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 30 * time.Second
	return backoff.WithContext(bo, ctx)
}

func (s *processingService) markFailed(sess *entities.Session, runErr error, logger *zap.Logger) {
	sess.MarkAsFailed(runErr.Error())

	// Best-effort: the run already failed, keep the original error
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.sessionRepo.Update(ctx, sess); err != nil {
		logger.Error("failed to mark session failed", zap.Error(err))
	}

	logger.Error("processing failed", zap.Error(runErr))
}
