package services

import (
	"context"

	"github.com/yungbote/projectgate-backend/internal/platform/gcp"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

// Transcriber turns recorded audio into text. Kept narrow so handlers and the
// gatekeeper never touch the speech client directly.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

type transcriberService struct {
	log    *logger.Logger
	speech gcp.Speech
}

func NewTranscriber(log *logger.Logger, speech gcp.Speech) Transcriber {
	return &transcriberService{
		log:    log.With("service", "Transcriber"),
		speech: speech,
	}
}

func (t *transcriberService) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return t.speech.TranscribeAudioBytes(ctx, audio, mimeType)
}
