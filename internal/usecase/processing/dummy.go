package processing

import (
	"context"

	"github.com/google/uuid"

	"github.com/vodcomms/vodcomms/internal/domain/entities"
)

// dummySegment is a canned transcript line.
type dummySegment struct {
	startMS int64
	endMS   int64
	text    string
}

var dummySegments = []dummySegment{
	{0, 15000, "Intro and setup for the round."},
	{15000, 30000, "Key play-by-play comms."},
	{30000, 45000, "Post-round recap and callouts."},
}

// DummyChunker is the stand-in transcription step. It ignores the audio and
// returns the same three placeholder segments every run, so the rest of the
// pipeline (storage, replacement semantics, ordering) can be exercised
// before a real transcriber exists.
type DummyChunker struct{}

// NewDummyChunker creates the placeholder chunker
func NewDummyChunker() *DummyChunker {
	return &DummyChunker{}
}

// Engine names the chunker implementation
func (d *DummyChunker) Engine() string {
	return "dummy"
}

// Chunk returns the fixed placeholder segments for the session
func (d *DummyChunker) Chunk(_ context.Context, sessionID uuid.UUID, _ string) ([]*entities.Chunk, error) {
	chunks := make([]*entities.Chunk, 0, len(dummySegments))
	for _, seg := range dummySegments {
		chunks = append(chunks, entities.NewChunk(sessionID, seg.startMS, seg.endMS, seg.text))
	}
	return chunks, nil
}
