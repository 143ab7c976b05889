package entities

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionStatus represents the lifecycle state of a review session
type SessionStatus string

const (
	SessionStatusCreated    SessionStatus = "created"
	SessionStatusUploaded   SessionStatus = "uploaded"
	SessionStatusProcessing SessionStatus = "processing"
	SessionStatusReady      SessionStatus = "ready"
	SessionStatusFailed     SessionStatus = "failed"
)

// Session represents one scrim/VOD review unit
type Session struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title           *string        `json:"title,omitempty" gorm:"type:text"`
	Status          SessionStatus  `json:"status" gorm:"type:varchar(20);not null;default:'created';index"`
	YoutubeURL      *string        `json:"youtube_url,omitempty" gorm:"type:text"`
	MediaPath       *string        `json:"media_path,omitempty" gorm:"type:text"`
	AudioPath       *string        `json:"audio_path,omitempty" gorm:"type:text"`
	MediaFilename   *string        `json:"media_filename,omitempty" gorm:"type:text"`
	MediaSize       *int64         `json:"media_size,omitempty"`
	MediaType       *string        `json:"media_type,omitempty" gorm:"type:varchar(255)"`
	ProcessingError *string        `json:"processing_error,omitempty" gorm:"type:text"`
	Metadata        datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb;default:'{}'"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Session) TableName() string {
	return "sessions"
}

// NewSession creates a new session in the created state
func NewSession(title, youtubeURL *string) *Session {
	return &Session{
		ID:         uuid.New(),
		Title:      title,
		Status:     SessionStatusCreated,
		YoutubeURL: youtubeURL,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// HasMedia reports whether a media file has been attached
func (s *Session) HasMedia() bool {
	return s.MediaPath != nil && *s.MediaPath != ""
}

// IsReady checks if processing finished successfully
func (s *Session) IsReady() bool {
	return s.Status == SessionStatusReady
}

// AttachMedia records an uploaded media object and resets any previously
// extracted audio, returning the session to the uploaded state
func (s *Session) AttachMedia(objectKey, filename, contentType string, size int64) {
	s.MediaPath = &objectKey
	s.MediaFilename = &filename
	s.MediaType = &contentType
	s.MediaSize = &size
	s.AudioPath = nil
	s.ProcessingError = nil
	s.Status = SessionStatusUploaded
}

// MarkAsProcessing marks the session as being processed
func (s *Session) MarkAsProcessing() {
	s.Status = SessionStatusProcessing
	s.ProcessingError = nil
}

// MarkAsReady marks processing complete and records the extracted audio object
func (s *Session) MarkAsReady(audioKey string) {
	s.Status = SessionStatusReady
	s.AudioPath = &audioKey
	s.ProcessingError = nil
}

// MarkAsFailed marks processing failed with a reason
func (s *Session) MarkAsFailed(errorMsg string) {
	s.Status = SessionStatusFailed
	s.ProcessingError = &errorMsg
}

// MediaExt returns the lowercase extension of the attached media file, or ""
func (s *Session) MediaExt() string {
	if s.MediaFilename == nil {
		return ""
	}
	return strings.ToLower(path.Ext(*s.MediaFilename))
}
