package processing

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vodcomms/vodcomms/pkg/config"
)

// Extractor converts uploaded media into 16-bit PCM wav via ffmpeg so the
// transcriber always sees a single known audio format.
type Extractor struct {
	cfg    *config.FFmpegConfig
	logger *zap.Logger
}

// NewExtractor creates an ffmpeg-backed audio extractor
func NewExtractor(cfg *config.FFmpegConfig, logger *zap.Logger) *Extractor {
	return &Extractor{cfg: cfg, logger: logger}
}

// IsAudioOnly reports whether the extension belongs to an audio container
// that can skip extraction entirely
func (e *Extractor) IsAudioOnly(ext string) bool {
	ext = strings.ToLower(ext)
	for _, audioExt := range e.cfg.AudioExtensions {
		if ext == strings.ToLower(audioExt) {
			return true
		}
	}
	return false
}

// buildArgs assembles the ffmpeg invocation: strip video, encode mono-rate
// 16-bit PCM at the configured sample rate, overwrite the output.
func (e *Extractor) buildArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(e.cfg.SampleRate),
		outputPath,
	}
}

// Extract runs ffmpeg on inputPath and writes wav audio to outputPath
func (e *Extractor) Extract(ctx context.Context, inputPath, outputPath string) error {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	args := e.buildArgs(inputPath, outputPath)
	cmd := exec.CommandContext(ctx, e.cfg.BinaryPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.logger.Debug("running ffmpeg",
		zap.String("binary", e.cfg.BinaryPath),
		zap.Strings("args", args),
	)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg timed out after %s: %w", e.cfg.Timeout, ctx.Err())
		}
		detail := strings.TrimSpace(stderr.String())
		if len(detail) > 512 {
			detail = detail[len(detail)-512:]
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, detail)
	}

	return nil
}
