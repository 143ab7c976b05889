// Package jobcontext carries processing-run metadata through context so
// log lines from the pipeline can be correlated with a single run.
package jobcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

var (
	keyJobID     contextKey = "job_id"
	keySessionID contextKey = "session_id"
	keyStartTime contextKey = "job_start_time"
)

// Begin derives a context for one processing run: a fresh job id, the
// session being processed, and a deadline so a stuck ffmpeg or transcriber
// call cannot hang the run forever.
func Begin(parent context.Context, sessionID uuid.UUID, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	ctx = context.WithValue(ctx, keyJobID, uuid.New())
	ctx = context.WithValue(ctx, keySessionID, sessionID)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx, cancel
}

// JobID returns the run's job id, or uuid.Nil outside a run.
func JobID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(keyJobID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// SessionID returns the session under processing, or uuid.Nil outside a run.
func SessionID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(keySessionID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// Elapsed reports how long the run has been going.
func Elapsed(ctx context.Context) time.Duration {
	if start, ok := ctx.Value(keyStartTime).(time.Time); ok {
		return time.Since(start)
	}
	return 0
}
