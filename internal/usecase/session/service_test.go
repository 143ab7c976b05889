package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/vodcomms/vodcomms/errors"
	"github.com/vodcomms/vodcomms/internal/domain/entities"
	"github.com/vodcomms/vodcomms/pkg/config"
)

type stubSessionRepo struct {
	sessions map[uuid.UUID]*entities.Session
}

func newStubSessionRepo(sessions ...*entities.Session) *stubSessionRepo {
	r := &stubSessionRepo{sessions: make(map[uuid.UUID]*entities.Session)}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
	return r
}

func (r *stubSessionRepo) Create(_ context.Context, s *entities.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return s, nil
}

func (r *stubSessionRepo) List(_ context.Context) ([]*entities.Session, error) {
	out := make([]*entities.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (r *stubSessionRepo) Update(_ context.Context, s *entities.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entities.SessionStatus) error {
	if s, ok := r.sessions[id]; ok {
		s.Status = status
	}
	return nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sessions, id)
	return nil
}

type stubChunkRepo struct {
	chunks map[uuid.UUID][]*entities.Chunk
}

func newStubChunkRepo() *stubChunkRepo {
	return &stubChunkRepo{chunks: make(map[uuid.UUID][]*entities.Chunk)}
}

func (r *stubChunkRepo) FindBySessionID(_ context.Context, sessionID uuid.UUID) ([]*entities.Chunk, error) {
	return r.chunks[sessionID], nil
}

func (r *stubChunkRepo) ReplaceForSession(_ context.Context, sessionID uuid.UUID, chunks []*entities.Chunk) error {
	r.chunks[sessionID] = chunks
	return nil
}

func (r *stubChunkRepo) DeleteBySessionID(_ context.Context, sessionID uuid.UUID) error {
	delete(r.chunks, sessionID)
	return nil
}

type stubStorage struct {
	objects map[string][]byte
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string][]byte)}
}

func (s *stubStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[objectName] = data
	return nil
}

func testMediaConfig() *config.Config {
	return &config.Config{
		Media: config.MediaConfig{
			MaxUploadBytes:    1 << 20,
			AllowedExtensions: []string{".mp4", ".mkv", ".wav", ".mp3"},
		},
	}
}

func upload(filename, content string) MediaUpload {
	return MediaUpload{
		Filename:    filename,
		Size:        int64(len(content)),
		ContentType: "application/octet-stream",
		Reader:      bytes.NewReader([]byte(content)),
	}
}

func assertAppCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateStartsInCreatedState(t *testing.T) {
	repo := newStubSessionRepo()
	svc := NewService(repo, newStubChunkRepo(), newStubStorage(), testMediaConfig(), zap.NewNop())

	title := "scrim vs rivals"
	sess, err := svc.Create(context.Background(), CreateInput{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, entities.SessionStatusCreated, sess.Status)
	assert.False(t, sess.HasMedia())

	stored, err := repo.FindByID(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, stored.ID)
}

func TestAttachMediaUnknownSession(t *testing.T) {
	svc := NewService(newStubSessionRepo(), newStubChunkRepo(), newStubStorage(), testMediaConfig(), zap.NewNop())

	_, err := svc.AttachMedia(context.Background(), uuid.New(), upload("comms.wav", "riff"))
	assertAppCode(t, err, apperrors.ErrorCode_SESSION_NOT_FOUND)
}

func TestAttachMediaValidation(t *testing.T) {
	tests := []struct {
		name   string
		upload MediaUpload
		code   apperrors.ErrorCode
	}{
		{"missing filename", upload("", "data"), apperrors.ErrorCode_INVALID_ARGUMENT},
		{"empty file", upload("vod.mp4", ""), apperrors.ErrorCode_MEDIA_REJECTED},
		{"disallowed extension", upload("notes.txt", "data"), apperrors.ErrorCode_MEDIA_REJECTED},
		{"no extension", upload("vod", "data"), apperrors.ErrorCode_MEDIA_REJECTED},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := entities.NewSession(nil, nil)
			svc := NewService(newStubSessionRepo(sess), newStubChunkRepo(), newStubStorage(), testMediaConfig(), zap.NewNop())

			_, err := svc.AttachMedia(context.Background(), sess.ID, tt.upload)
			assertAppCode(t, err, tt.code)
			assert.Equal(t, entities.SessionStatusCreated, sess.Status, "rejected upload must not advance the session")
		})
	}
}

func TestAttachMediaRejectsOversizedFile(t *testing.T) {
	sess := entities.NewSession(nil, nil)
	cfg := testMediaConfig()
	cfg.Media.MaxUploadBytes = 4
	svc := NewService(newStubSessionRepo(sess), newStubChunkRepo(), newStubStorage(), cfg, zap.NewNop())

	_, err := svc.AttachMedia(context.Background(), sess.ID, upload("vod.mp4", "12345"))
	assertAppCode(t, err, apperrors.ErrorCode_MEDIA_REJECTED)
}

func TestAttachMediaStoresObjectAndAdvancesStatus(t *testing.T) {
	sess := entities.NewSession(nil, nil)
	storage := newStubStorage()
	svc := NewService(newStubSessionRepo(sess), newStubChunkRepo(), storage, testMediaConfig(), zap.NewNop())

	got, err := svc.AttachMedia(context.Background(), sess.ID, upload("vod.mp4", "frames"))
	require.NoError(t, err)

	assert.Equal(t, entities.SessionStatusUploaded, got.Status)
	require.NotNil(t, got.MediaPath)

	wantKey := fmt.Sprintf("sessions/%s/vod.mp4", sess.ID)
	assert.Equal(t, wantKey, *got.MediaPath)
	assert.Equal(t, []byte("frames"), storage.objects[wantKey])
}

func TestAttachMediaStripsDirectoryFromFilename(t *testing.T) {
	sess := entities.NewSession(nil, nil)
	storage := newStubStorage()
	svc := NewService(newStubSessionRepo(sess), newStubChunkRepo(), storage, testMediaConfig(), zap.NewNop())

	got, err := svc.AttachMedia(context.Background(), sess.ID, upload("../../etc/vod.mp4", "frames"))
	require.NoError(t, err)

	wantKey := fmt.Sprintf("sessions/%s/vod.mp4", sess.ID)
	assert.Equal(t, wantKey, *got.MediaPath)
	require.NotNil(t, got.MediaFilename)
	assert.Equal(t, "vod.mp4", *got.MediaFilename)
}

func TestReuploadResetsExtractedAudio(t *testing.T) {
	sess := entities.NewSession(nil, nil)
	svc := NewService(newStubSessionRepo(sess), newStubChunkRepo(), newStubStorage(), testMediaConfig(), zap.NewNop())

	_, err := svc.AttachMedia(context.Background(), sess.ID, upload("vod.mp4", "frames"))
	require.NoError(t, err)

	sess.MarkAsReady("sessions/x/audio.wav")
	require.NotNil(t, sess.AudioPath)

	got, err := svc.AttachMedia(context.Background(), sess.ID, upload("vod2.mp4", "frames2"))
	require.NoError(t, err)

	assert.Nil(t, got.AudioPath, "stale audio must not survive a re-upload")
	assert.Equal(t, entities.SessionStatusUploaded, got.Status)
}
