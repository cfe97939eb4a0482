package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fagame/backend/internal/gameplay"
	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/utils"
)

// SpeechService transcribes a parent's short voice prompt so it can feed the
// synthesizer. Voice prompts are a few seconds long, so the synchronous
// recognize call is enough; long-form audio is out of scope.
type SpeechService interface {
	TranscribeVoicePrompt(ctx context.Context, audio []byte, mimeType, languageCode string) (string, error)
	Close() error
}

type speechService struct {
	log    *logger.Logger
	client *speech.Client
}

func NewSpeechService(ctx context.Context, log *logger.Logger) (SpeechService, error) {
	serviceLog := log.With("service", "SpeechService")

	creds := strings.TrimSpace(utils.GetEnv("GOOGLE_APPLICATION_CREDENTIALS", "", log))

	var client *speech.Client
	var err error
	if creds != "" {
		client, err = speech.NewClient(ctx, option.WithCredentialsFile(creds))
	} else {
		client, err = speech.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}

	return &speechService{
		log:    serviceLog,
		client: client,
	}, nil
}

func (ss *speechService) TranscribeVoicePrompt(ctx context.Context, audio []byte, mimeType, languageCode string) (string, error) {
	if len(audio) == 0 {
		return "", &gameplay.ValidationError{Field: "audio", Reason: "required"}
	}
	if languageCode == "" {
		languageCode = "en-US"
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               languageCode,
			Encoding:                   inferEncoding(mimeType),
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	start := time.Now()
	resp, err := ss.client.Recognize(ctx, req)
	if err != nil {
		return "", mapRecognizeError(err)
	}

	var full strings.Builder
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 {
			continue
		}
		text := strings.TrimSpace(r.Alternatives[0].Transcript)
		if text == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(text)
	}

	transcript := full.String()
	ss.log.Debug("voice prompt transcribed",
		"duration_ms", time.Since(start).Milliseconds(),
		"chars", len(transcript))
	if transcript == "" {
		return "", &gameplay.ValidationError{Field: "audio", Reason: "no speech recognized"}
	}
	return transcript, nil
}

func (ss *speechService) Close() error {
	if ss == nil || ss.client == nil {
		return nil
	}
	return ss.client.Close()
}

// mapRecognizeError turns a recognizer failure into a caller-facing error.
// Bad audio (wrong encoding, truncated upload) comes back from the API as
// InvalidArgument and is the caller's fault; everything else goes through the
// provider taxonomy.
func mapRecognizeError(err error) error {
	if status.Code(err) == codes.InvalidArgument {
		return &gameplay.ValidationError{Field: "audio", Reason: err.Error()}
	}
	return classifyProviderError(fmt.Errorf("recognize: %w", err))
}

func inferEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.Contains(m, "wav"):
		return speechpb.RecognitionConfig_LINEAR16
	case strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(m, "mp3"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(m, "ogg") || strings.Contains(m, "opus") || strings.Contains(m, "webm"):
		return speechpb.RecognitionConfig_OGG_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
