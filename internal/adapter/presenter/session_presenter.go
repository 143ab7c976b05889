package presenter

import (
	sessiondto "github.com/vodcomms/vodcomms/internal/adapter/dto/session"
	"github.com/vodcomms/vodcomms/internal/domain/entities"
	"github.com/vodcomms/vodcomms/pkg/timefmt"
)

// ToSessionResponse converts a session entity to its wire form
func ToSessionResponse(s *entities.Session) sessiondto.SessionResponse {
	return sessiondto.SessionResponse{
		ID:              s.ID.String(),
		Title:           s.Title,
		Status:          string(s.Status),
		YoutubeURL:      s.YoutubeURL,
		MediaPath:       s.MediaPath,
		AudioPath:       s.AudioPath,
		ProcessingError: s.ProcessingError,
		CreatedAt:       s.CreatedAt,
	}
}

// ToSessionResponses converts a session list
func ToSessionResponses(sessions []*entities.Session) []sessiondto.SessionResponse {
	out := make([]sessiondto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, ToSessionResponse(s))
	}
	return out
}

// ToChunkResponse converts a chunk entity to its wire form
func ToChunkResponse(c *entities.Chunk) sessiondto.ChunkResponse {
	return sessiondto.ChunkResponse{
		ID:         c.ID.String(),
		SessionID:  c.SessionID.String(),
		StartMS:    c.StartMS,
		EndMS:      c.EndMS,
		Text:       c.Text,
		StartLabel: timefmt.Clock(c.StartMS),
		EndLabel:   timefmt.Clock(c.EndMS),
	}
}

// ToChunkResponses converts a chunk list
func ToChunkResponses(chunks []*entities.Chunk) []sessiondto.ChunkResponse {
	out := make([]sessiondto.ChunkResponse, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, ToChunkResponse(c))
	}
	return out
}
