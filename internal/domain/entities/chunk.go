package entities

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a time-bounded transcript segment belonging to a session.
// Chunks are always listed in ascending start order and are replaced as a
// whole set every time the session is processed.
type Chunk struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID uuid.UUID `json:"session_id" gorm:"type:uuid;not null;index"`
	StartMS   int64     `json:"start_ms" gorm:"column:start_ms;not null"`
	EndMS     int64     `json:"end_ms" gorm:"column:end_ms;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Chunk) TableName() string {
	return "chunks"
}

// NewChunk creates a chunk for a session
func NewChunk(sessionID uuid.UUID, startMS, endMS int64, text string) *Chunk {
	return &Chunk{
		ID:        uuid.New(),
		SessionID: sessionID,
		StartMS:   startMS,
		EndMS:     endMS,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// DurationMS returns the chunk length in milliseconds
func (c *Chunk) DurationMS() int64 {
	return c.EndMS - c.StartMS
}
