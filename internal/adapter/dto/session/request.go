package session

// CreateSessionRequest is the payload for POST /sessions
type CreateSessionRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=200"`
	YoutubeURL *string `json:"youtube_url" validate:"omitempty,youtube_url"`
}
