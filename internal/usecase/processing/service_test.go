package processing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/vodcomms/vodcomms/errors"
	"github.com/vodcomms/vodcomms/internal/domain/entities"
	"github.com/vodcomms/vodcomms/internal/infrastructure/cache"
	"github.com/vodcomms/vodcomms/pkg/config"
)

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entities.Session
}

func newFakeSessionRepo(sessions ...*entities.Session) *fakeSessionRepo {
	r := &fakeSessionRepo{sessions: make(map[uuid.UUID]*entities.Session)}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
	return r
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entities.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) List(_ context.Context) ([]*entities.Session, error) {
	out := make([]*entities.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *entities.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entities.SessionStatus) error {
	if s, ok := r.sessions[id]; ok {
		s.Status = status
	}
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sessions, id)
	return nil
}

type fakeChunkRepo struct {
	chunks map[uuid.UUID][]*entities.Chunk
}

func newFakeChunkRepo() *fakeChunkRepo {
	return &fakeChunkRepo{chunks: make(map[uuid.UUID][]*entities.Chunk)}
}

func (r *fakeChunkRepo) FindBySessionID(_ context.Context, sessionID uuid.UUID) ([]*entities.Chunk, error) {
	return r.chunks[sessionID], nil
}

func (r *fakeChunkRepo) ReplaceForSession(_ context.Context, sessionID uuid.UUID, chunks []*entities.Chunk) error {
	r.chunks[sessionID] = chunks
	return nil
}

func (r *fakeChunkRepo) DeleteBySessionID(_ context.Context, sessionID uuid.UUID) error {
	delete(r.chunks, sessionID)
	return nil
}

type fakeStorage struct {
	objects   map[string]bool
	downloads int
	uploads   int
}

func newFakeStorage(keys ...string) *fakeStorage {
	s := &fakeStorage{objects: make(map[string]bool)}
	for _, k := range keys {
		s.objects[k] = true
	}
	return s
}

func (s *fakeStorage) DownloadToFile(_ context.Context, objectName, _ string) error {
	if !s.objects[objectName] {
		return errors.New("object not found")
	}
	s.downloads++
	return nil
}

func (s *fakeStorage) UploadLocalFile(_ context.Context, objectName, _, _ string) error {
	s.objects[objectName] = true
	s.uploads++
	return nil
}

func (s *fakeStorage) ObjectExists(_ context.Context, objectName string) (bool, error) {
	return s.objects[objectName], nil
}

func (s *fakeStorage) GetFileURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return "http://storage.local/" + objectName, nil
}

type failingChunker struct{}

func (failingChunker) Engine() string { return "failing" }
func (failingChunker) Chunk(context.Context, uuid.UUID, string) ([]*entities.Chunk, error) {
	return nil, errors.New("engine exploded")
}

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{Driver: "memory", LockTTL: time.Minute},
		Storage: config.StorageConfig{
			PresignExpiry: time.Hour,
		},
		FFmpeg: config.FFmpegConfig{
			BinaryPath:      "ffmpeg",
			SampleRate:      16000,
			Timeout:         time.Minute,
			AudioExtensions: []string{".wav", ".mp3", ".m4a", ".ogg", ".flac"},
		},
		Transcriber: config.TranscriberConfig{
			Engine:         "dummy",
			ProcessTimeout: time.Minute,
		},
	}
}

func uploadedSession(filename, objectKey string) *entities.Session {
	sess := entities.NewSession(nil, nil)
	sess.AttachMedia(objectKey, filename, "audio/wav", 4096)
	return sess
}

func newTestService(sessRepo *fakeSessionRepo, chunkRepo *fakeChunkRepo, storage *fakeStorage, chunker Chunker) Service {
	cfg := testConfig()
	logger := zap.NewNop()
	return NewService(
		sessRepo,
		chunkRepo,
		storage,
		cache.NewMemoryStore(),
		chunker,
		NewExtractor(&cfg.FFmpeg, logger),
		cfg,
		logger,
	)
}

func TestProcessRequiresMedia(t *testing.T) {
	sess := entities.NewSession(nil, nil)
	svc := newTestService(newFakeSessionRepo(sess), newFakeChunkRepo(), newFakeStorage(), NewDummyChunker())

	_, err := svc.Process(context.Background(), sess.ID)
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_MEDIA_REQUIRED, appErr.Code)
}

func TestProcessUnknownSession(t *testing.T) {
	svc := newTestService(newFakeSessionRepo(), newFakeChunkRepo(), newFakeStorage(), NewDummyChunker())

	_, err := svc.Process(context.Background(), uuid.New())
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_SESSION_NOT_FOUND, appErr.Code)
}

func TestProcessAudioOnlySkipsExtraction(t *testing.T) {
	sess := uploadedSession("comms.wav", "sessions/x/comms.wav")
	storage := newFakeStorage("sessions/x/comms.wav")
	chunkRepo := newFakeChunkRepo()
	svc := newTestService(newFakeSessionRepo(sess), chunkRepo, storage, NewDummyChunker())

	result, err := svc.Process(context.Background(), sess.ID)
	require.NoError(t, err)

	// Audio-only media is used directly, nothing is downloaded or re-encoded
	assert.Equal(t, "sessions/x/comms.wav", result.AudioPath)
	assert.Zero(t, storage.downloads)
	assert.Zero(t, storage.uploads)

	assert.Equal(t, entities.SessionStatusReady, result.Session.Status)
	require.NotNil(t, result.Session.AudioPath)
	assert.Equal(t, "sessions/x/comms.wav", *result.Session.AudioPath)

	require.Len(t, result.Chunks, 3)
	stored, _ := chunkRepo.FindBySessionID(context.Background(), sess.ID)
	assert.Equal(t, result.Chunks, stored)
}

func TestProcessMissingObject(t *testing.T) {
	sess := uploadedSession("comms.wav", "sessions/x/comms.wav")
	svc := newTestService(newFakeSessionRepo(sess), newFakeChunkRepo(), newFakeStorage(), NewDummyChunker())

	_, err := svc.Process(context.Background(), sess.ID)
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_MEDIA_MISSING, appErr.Code)
	assert.Equal(t, entities.SessionStatusFailed, sess.Status)
}

func TestProcessChunkerFailureMarksSessionFailed(t *testing.T) {
	sess := uploadedSession("comms.wav", "sessions/x/comms.wav")
	storage := newFakeStorage("sessions/x/comms.wav")
	chunkRepo := newFakeChunkRepo()
	svc := newTestService(newFakeSessionRepo(sess), chunkRepo, storage, failingChunker{})

	_, err := svc.Process(context.Background(), sess.ID)
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_TRANSCRIPTION_FAILED, appErr.Code)

	assert.Equal(t, entities.SessionStatusFailed, sess.Status)
	require.NotNil(t, sess.ProcessingError)
	assert.Contains(t, *sess.ProcessingError, "engine exploded")

	// A failed run must not touch the existing chunk set
	stored, _ := chunkRepo.FindBySessionID(context.Background(), sess.ID)
	assert.Empty(t, stored)
}

func TestProcessReplacesChunkSet(t *testing.T) {
	sess := uploadedSession("comms.wav", "sessions/x/comms.wav")
	storage := newFakeStorage("sessions/x/comms.wav")
	chunkRepo := newFakeChunkRepo()
	svc := newTestService(newFakeSessionRepo(sess), chunkRepo, storage, NewDummyChunker())

	first, err := svc.Process(context.Background(), sess.ID)
	require.NoError(t, err)
	second, err := svc.Process(context.Background(), sess.ID)
	require.NoError(t, err)

	stored, _ := chunkRepo.FindBySessionID(context.Background(), sess.ID)
	require.Len(t, stored, 3)
	assert.Equal(t, second.Chunks, stored)
	for i := range stored {
		assert.NotEqual(t, first.Chunks[i].ID, stored[i].ID, "rerun must replace, not append")
	}
}

func TestProcessConflictWhileLocked(t *testing.T) {
	sess := uploadedSession("comms.wav", "sessions/x/comms.wav")
	storage := newFakeStorage("sessions/x/comms.wav")

	cfg := testConfig()
	logger := zap.NewNop()
	locks := cache.NewMemoryStore()
	svc := NewService(
		newFakeSessionRepo(sess),
		newFakeChunkRepo(),
		storage,
		locks,
		NewDummyChunker(),
		NewExtractor(&cfg.FFmpeg, logger),
		cfg,
		logger,
	)

	// Simulate an in-flight run holding the lock
	held, err := locks.AcquireLock(context.Background(), "process:"+sess.ID.String(), time.Minute)
	require.NoError(t, err)
	require.True(t, held)

	_, err = svc.Process(context.Background(), sess.ID)
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_PROCESS_CONFLICT, appErr.Code)
}
