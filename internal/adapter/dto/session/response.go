package session

import "time"

// SessionResponse mirrors the session entity on the wire
type SessionResponse struct {
	ID              string    `json:"id"`
	Title           *string   `json:"title"`
	Status          string    `json:"status"`
	YoutubeURL      *string   `json:"youtube_url"`
	MediaPath       *string   `json:"media_path"`
	AudioPath       *string   `json:"audio_path"`
	ProcessingError *string   `json:"processing_error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ChunkResponse is one transcript segment. Start/end labels are the
// human-readable clock forms of the millisecond offsets.
type ChunkResponse struct {
	ID         string `json:"id"`
	SessionID  string `json:"session_id"`
	StartMS    int64  `json:"start_ms"`
	EndMS      int64  `json:"end_ms"`
	Text       string `json:"text"`
	StartLabel string `json:"start_label"`
	EndLabel   string `json:"end_label"`
}

// SessionDetailResponse is the GET /sessions/{id} body
type SessionDetailResponse struct {
	Session SessionResponse `json:"session"`
	Chunks  []ChunkResponse `json:"chunks"`
}

// UploadMediaResponse is the POST /sessions/{id}/media body
type UploadMediaResponse struct {
	Session          string `json:"session"`
	StoredPath       string `json:"stored_path"`
	OriginalFilename string `json:"original_filename"`
}

// ProcessResponse is the POST /sessions/{id}/process body
type ProcessResponse struct {
	Session   string          `json:"session"`
	AudioPath string          `json:"audio_path"`
	Engine    string          `json:"engine"`
	Chunks    []ChunkResponse `json:"chunks"`
}
