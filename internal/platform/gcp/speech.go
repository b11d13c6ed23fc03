package gcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yungbote/projectgate-backend/internal/pkg/ctxutil"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

// Speech transcribes submission pitch audio to text. Callers treat it as an
// oracle: bytes in, best-effort text out.
type Speech interface {
	TranscribeAudioBytes(ctx context.Context, audio []byte, mimeType string) (string, error)
	Close() error
}

type speechService struct {
	log        *logger.Logger
	client     *speech.Client
	maxRetries int
}

func NewSpeech(log *logger.Logger) (Speech, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := log.With("service", "gcp.Speech")

	ctx := context.Background()
	c, err := speech.NewClient(ctx, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}

	return &speechService{log: slog, client: c, maxRetries: 4}, nil
}

func (s *speechService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *speechService) TranscribeAudioBytes(ctx context.Context, audio []byte, mimeType string) (string, error) {
	ctx = ctxutil.Default(ctx)
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	if len(audio) == 0 {
		return "", nil
	}

	req := &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
			Encoding:                   inferSpeechEncoding(mimeType),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := s.retryLR(ctx, func() (*speechpb.LongRunningRecognizeResponse, error) {
		op, err := s.client.LongRunningRecognize(ctx, req)
		if err != nil {
			return nil, err
		}
		return op.Wait(ctx)
	})
	if err != nil {
		return "", fmt.Errorf("speech longrunningrecognize: %w", err)
	}

	return joinTranscripts(resp), nil
}

func (s *speechService) retryLR(ctx context.Context, fn func() (*speechpb.LongRunningRecognizeResponse, error)) (*speechpb.LongRunningRecognizeResponse, error) {
	backoff := 750 * time.Millisecond
	var last error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, err := fn()
		if err == nil {
			return resp, nil
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted && code != codes.DeadlineExceeded {
			return nil, err
		}
		if attempt == s.maxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}
	}
	return nil, last
}

func joinTranscripts(resp *speechpb.LongRunningRecognizeResponse) string {
	if resp == nil {
		return ""
	}
	var full strings.Builder
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		t := strings.TrimSpace(r.Alternatives[0].Transcript)
		if t == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(t)
	}
	return full.String()
}

func inferSpeechEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	m := strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case strings.Contains(m, "wav"):
		return speechpb.RecognitionConfig_LINEAR16
	case strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(m, "mp3") || strings.Contains(m, "mpeg"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(m, "ogg") || strings.Contains(m, "opus"):
		return speechpb.RecognitionConfig_OGG_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
