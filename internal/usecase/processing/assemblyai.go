package processing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vodcomms/vodcomms/internal/domain/entities"
)

// assemblyWindowMS groups transcribed words into chunks of roughly this
// width when the transcript has no utterance boundaries.
const assemblyWindowMS int64 = 15000

// AssemblyAIChunker transcribes the session audio through AssemblyAI and
// maps the transcript onto time-bounded chunks. Speaker labels stay off;
// diarization is out of scope.
type AssemblyAIChunker struct {
	client *aai.Client
	logger *zap.Logger
}

// NewAssemblyAIChunker creates an AssemblyAI-backed chunker
func NewAssemblyAIChunker(apiKey string, logger *zap.Logger) *AssemblyAIChunker {
	return &AssemblyAIChunker{
		client: aai.NewClient(apiKey),
		logger: logger,
	}
}

// Engine names the chunker implementation
func (a *AssemblyAIChunker) Engine() string {
	return "assemblyai"
}

// Chunk submits the audio URL and blocks until the transcript is ready
func (a *AssemblyAIChunker) Chunk(ctx context.Context, sessionID uuid.UUID, audioURL string) ([]*entities.Chunk, error) {
	if audioURL == "" {
		return nil, errors.New("audio URL is required for assemblyai engine")
	}

	transcript, err := a.client.Transcripts.TranscribeFromURL(ctx, audioURL, nil)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription: %w", err)
	}

	if transcript.Error != nil && *transcript.Error != "" {
		return nil, fmt.Errorf("assemblyai transcription: %s", *transcript.Error)
	}

	chunks := wordsToChunks(sessionID, transcript.Words, assemblyWindowMS)

	a.logger.Info("assemblyai transcript mapped",
		zap.String("session_id", sessionID.String()),
		zap.Int("words", len(transcript.Words)),
		zap.Int("chunks", len(chunks)),
	)

	return chunks, nil
}

// wordsToChunks groups word timestamps into windowMS-wide chunks. A window
// closes once a word starts past its end, so chunk boundaries follow real
// word boundaries and starts stay monotonically increasing.
func wordsToChunks(sessionID uuid.UUID, words []aai.TranscriptWord, windowMS int64) []*entities.Chunk {
	var chunks []*entities.Chunk
	var (
		texts   []string
		startMS int64
		endMS   int64
		open    bool
	)

	flush := func() {
		if !open || len(texts) == 0 {
			return
		}
		chunks = append(chunks, entities.NewChunk(sessionID, startMS, endMS, strings.Join(texts, " ")))
		texts = nil
		open = false
	}

	for _, w := range words {
		if w.Text == nil || w.Start == nil || w.End == nil {
			continue
		}
		if open && *w.Start >= startMS+windowMS {
			flush()
		}
		if !open {
			startMS = *w.Start
			open = true
		}
		endMS = *w.End
		texts = append(texts, *w.Text)
	}
	flush()

	return chunks
}
