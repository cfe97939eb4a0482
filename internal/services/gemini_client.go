package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/repos"
	"github.com/fagame/backend/internal/types"
	"github.com/fagame/backend/internal/utils"
)

// GeminiClient is the one place the app talks to the Gemini API. Every call
// is bounded by a single timeout and logged to the ai_call_log table; a
// failed call is classified and returned as a *GenerationError, never
// retried here.
type GeminiClient interface {
	GenerateText(ctx context.Context, userID *uuid.UUID, callType, prompt string) (string, error)
	Close() error
}

type geminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	timeout   time.Duration
	log       *logger.Logger
	callLog   repos.AICallLogRepo
}

func NewGeminiClient(ctx context.Context, log *logger.Logger, callLog repos.AICallLogRepo) (GeminiClient, error) {
	serviceLog := log.With("service", "GeminiClient")

	apiKey := utils.GetEnv("GEMINI_API_KEY", "", log)
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	modelName := utils.GetEnv("GEMINI_MODEL", "gemini-2.5-flash", log)
	timeoutSeconds := utils.GetEnvAsInt("GEMINI_TIMEOUT_SECONDS", 15, log)

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &geminiClient{
		client:    client,
		model:     client.GenerativeModel(modelName),
		modelName: modelName,
		timeout:   time.Duration(timeoutSeconds) * time.Second,
		log:       serviceLog,
		callLog:   callLog,
	}, nil
}

func (gc *geminiClient) GenerateText(ctx context.Context, userID *uuid.UUID, callType, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, gc.timeout)
	defer cancel()

	start := time.Now()
	resp, err := gc.model.GenerateContent(callCtx, genai.Text(prompt))
	duration := time.Since(start)

	if err != nil {
		genErr := classifyProviderError(err)
		gc.record(ctx, userID, callType, duration, false, string(genErr.Kind))
		gc.log.Warn("gemini call failed",
			"call_type", callType,
			"kind", genErr.Kind,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", genErr
	}

	text, err := extractText(resp)
	if err != nil {
		genErr := newGenerationError(KindMalformedResponse, err)
		gc.record(ctx, userID, callType, duration, false, string(genErr.Kind))
		return "", genErr
	}

	gc.record(ctx, userID, callType, duration, true, "")
	gc.log.Debug("gemini call ok",
		"call_type", callType,
		"duration_ms", duration.Milliseconds())
	return text, nil
}

func (gc *geminiClient) Close() error {
	return gc.client.Close()
}

func (gc *geminiClient) record(ctx context.Context, userID *uuid.UUID, callType string, duration time.Duration, success bool, errLabel string) {
	if gc.callLog == nil {
		return
	}
	entry := &types.AICallLog{
		UserID:     userID,
		CallType:   callType,
		Model:      gc.modelName,
		DurationMS: duration.Milliseconds(),
		Success:    success,
		Error:      errLabel,
	}
	if _, err := gc.callLog.Create(ctx, nil, entry); err != nil {
		gc.log.Warn("failed to record ai call", "error", err)
	}
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}
	return trimFences(string(text)), nil
}

// trimFences strips a markdown code fence the model sometimes wraps its
// output in.
func trimFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```yaml")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
