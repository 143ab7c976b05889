package entities

import "errors"

// Domain sentinel errors. Repositories return these so usecases can map
// them to transport errors without importing gorm.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrChunkNotFound   = errors.New("chunk not found")
	ErrInvalidChunkSet = errors.New("chunk set is not ordered")
)
