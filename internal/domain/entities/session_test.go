package entities

import "testing"

func TestAttachMediaResetsAudio(t *testing.T) {
	s := NewSession(nil, nil)
	audio := "sessions/x/audio.wav"
	s.AudioPath = &audio
	s.Status = SessionStatusReady

	s.AttachMedia("sessions/x/scrim.mp4", "scrim.mp4", "video/mp4", 1024)

	if s.Status != SessionStatusUploaded {
		t.Fatalf("expected status uploaded, got %s", s.Status)
	}
	if s.AudioPath != nil {
		t.Fatalf("expected audio path reset, got %v", *s.AudioPath)
	}
	if !s.HasMedia() {
		t.Fatalf("expected media attached")
	}
}

func TestMarkAsFailedRecordsReason(t *testing.T) {
	s := NewSession(nil, nil)
	s.MarkAsProcessing()
	if s.Status != SessionStatusProcessing {
		t.Fatalf("expected processing, got %s", s.Status)
	}

	s.MarkAsFailed("ffmpeg exited with code 1")
	if s.Status != SessionStatusFailed {
		t.Fatalf("expected failed, got %s", s.Status)
	}
	if s.ProcessingError == nil || *s.ProcessingError == "" {
		t.Fatalf("expected processing error recorded")
	}

	s.MarkAsReady("sessions/x/audio.wav")
	if s.ProcessingError != nil {
		t.Fatalf("expected processing error cleared on success")
	}
}

func TestMediaExt(t *testing.T) {
	s := NewSession(nil, nil)
	if got := s.MediaExt(); got != "" {
		t.Fatalf("expected empty ext, got %q", got)
	}
	name := "round1.MKV"
	s.MediaFilename = &name
	if got := s.MediaExt(); got != ".mkv" {
		t.Fatalf("expected .mkv, got %q", got)
	}
}
