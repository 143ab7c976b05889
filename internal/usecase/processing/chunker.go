package processing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vodcomms/vodcomms/internal/domain/entities"
	"github.com/vodcomms/vodcomms/pkg/config"
)

// Chunker turns a session's extracted audio into transcript chunks.
// audioURL is a presigned link to the audio object; engines that work on
// fixed data may ignore it.
type Chunker interface {
	Chunk(ctx context.Context, sessionID uuid.UUID, audioURL string) ([]*entities.Chunk, error)

	// Engine names the chunker implementation for logs and responses.
	Engine() string
}

// NewChunker selects the chunker engine from config
func NewChunker(cfg *config.TranscriberConfig, logger *zap.Logger) (Chunker, error) {
	switch cfg.Engine {
	case "dummy":
		return NewDummyChunker(), nil
	case "assemblyai":
		return NewAssemblyAIChunker(cfg.AssemblyAPIKey, logger), nil
	default:
		return nil, fmt.Errorf("unknown transcriber engine %q", cfg.Engine)
	}
}
