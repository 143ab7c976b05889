package presenter

import (
	"testing"

	"github.com/google/uuid"

	"github.com/vodcomms/vodcomms/internal/domain/entities"
)

func TestToChunkResponseLabels(t *testing.T) {
	c := entities.NewChunk(uuid.New(), 65000, 125000, "mid push")

	resp := ToChunkResponse(c)
	if resp.StartLabel != "1:05" {
		t.Errorf("start label = %q, want 1:05", resp.StartLabel)
	}
	if resp.EndLabel != "2:05" {
		t.Errorf("end label = %q, want 2:05", resp.EndLabel)
	}
	if resp.StartMS != 65000 || resp.EndMS != 125000 {
		t.Errorf("ms offsets not preserved")
	}
}

func TestToChunkResponsesEmpty(t *testing.T) {
	out := ToChunkResponses(nil)
	if out == nil {
		t.Fatalf("expected empty slice, not nil, so JSON encodes [] instead of null")
	}
	if len(out) != 0 {
		t.Fatalf("expected no elements")
	}
}
