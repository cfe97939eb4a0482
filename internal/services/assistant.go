package services

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/types"
)

//go:embed phrases/assistant_phrases.yaml
var assistantPhrasesYAML string

const defaultPersonality = "encouraging"

// HintRequest carries the play state a hint is asked about.
type HintRequest struct {
	GameTitle string `json:"game_title"`
	Template  string `json:"template"`
	Situation string `json:"situation"`
}

// ProgressSummary is what the adapter sees of a finished session.
type ProgressSummary struct {
	GameTitle    string `json:"game_title"`
	Template     string `json:"template"`
	MoveCount    int    `json:"move_count"`
	MistakeCount int    `json:"mistake_count"`
	Score        int    `json:"score"`
	DurationSec  int    `json:"duration_sec"`
}

// AssistantService is the optional AI learning assistant. Every method takes
// the caller's stored preferences: when the relevant switch is off the method
// returns ("", nil) without touching the model, and when the model fails the
// child still gets a canned line instead of an error.
type AssistantService interface {
	IsAvailable(prefs *types.AssistantPrefs) bool
	RequestHint(ctx context.Context, prefs *types.AssistantPrefs, req HintRequest) (string, error)
	RequestEncouragement(ctx context.Context, prefs *types.AssistantPrefs, gameTitle string) (string, error)
	SuggestDifficultyChange(prefs *types.AssistantPrefs, mistakes, currentLevel int) int
	AnalyzeProgress(ctx context.Context, prefs *types.AssistantPrefs, summary ProgressSummary) (string, error)
}

type assistantPhrases struct {
	Hints          map[string][]string `yaml:"hints"`
	Encouragements map[string][]string `yaml:"encouragements"`
	Analysis       map[string][]string `yaml:"analysis"`
}

type assistantService struct {
	log     *logger.Logger
	gemini  GeminiClient
	phrases assistantPhrases

	mu  sync.Mutex
	rng *rand.Rand
}

func NewAssistantService(log *logger.Logger, gemini GeminiClient) (AssistantService, error) {
	serviceLog := log.With("service", "AssistantService")

	var phrases assistantPhrases
	if err := yaml.Unmarshal([]byte(assistantPhrasesYAML), &phrases); err != nil {
		return nil, fmt.Errorf("parse assistant phrases: %w", err)
	}
	if len(phrases.Hints[defaultPersonality]) == 0 ||
		len(phrases.Encouragements[defaultPersonality]) == 0 ||
		len(phrases.Analysis[defaultPersonality]) == 0 {
		return nil, fmt.Errorf("assistant phrases missing %q entries", defaultPersonality)
	}

	return &assistantService{
		log:     serviceLog,
		gemini:  gemini,
		phrases: phrases,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (as *assistantService) IsAvailable(prefs *types.AssistantPrefs) bool {
	return prefs != nil && prefs.Enabled
}

func (as *assistantService) RequestHint(ctx context.Context, prefs *types.AssistantPrefs, req HintRequest) (string, error) {
	if !as.IsAvailable(prefs) || !prefs.SmartHints {
		return "", nil
	}

	prompt := fmt.Sprintf(
		"You are a %s helper character in a children's game called %q (a %s game). "+
			"The child is stuck: %s. "+
			"Give one short hint, at most two sentences, in simple words a 4 year old understands. "+
			"Never reveal the full answer.",
		personality(prefs), req.GameTitle, req.Template, req.Situation)

	text, err := as.gemini.GenerateText(ctx, userIDOf(prefs), "assistant_hint", prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		as.log.Debug("hint fell back to canned phrase", "error", err)
		return as.canned(as.phrases.Hints, prefs), nil
	}
	return strings.TrimSpace(text), nil
}

func (as *assistantService) RequestEncouragement(ctx context.Context, prefs *types.AssistantPrefs, gameTitle string) (string, error) {
	if !as.IsAvailable(prefs) {
		return "", nil
	}

	prompt := fmt.Sprintf(
		"You are a %s helper character in a children's game called %q. "+
			"The child just did something good. Cheer them on in one short sentence "+
			"a 4 year old understands.",
		personality(prefs), gameTitle)

	text, err := as.gemini.GenerateText(ctx, userIDOf(prefs), "assistant_encouragement", prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		return as.canned(as.phrases.Encouragements, prefs), nil
	}
	return strings.TrimSpace(text), nil
}

// SuggestDifficultyChange is a local rule, not a model call: lots of mistakes
// step the level down, a clean round steps it up, otherwise stay put.
func (as *assistantService) SuggestDifficultyChange(prefs *types.AssistantPrefs, mistakes, currentLevel int) int {
	if !as.IsAvailable(prefs) || !prefs.AdaptiveDifficulty {
		return 0
	}
	if mistakes > 5 && currentLevel > 1 {
		return -1
	}
	if mistakes == 0 && currentLevel < 5 {
		return 1
	}
	return 0
}

func (as *assistantService) AnalyzeProgress(ctx context.Context, prefs *types.AssistantPrefs, summary ProgressSummary) (string, error) {
	if !as.IsAvailable(prefs) || !prefs.ProgressAnalysis {
		return "", nil
	}

	prompt := fmt.Sprintf(
		"You are a %s helper character. A child finished %q (a %s game) with "+
			"%d moves, %d mistakes, score %d, in %d seconds. "+
			"Tell the parent in two or three warm sentences how the session went and "+
			"one thing to practice next. Plain language, no jargon.",
		personality(prefs), summary.GameTitle, summary.Template,
		summary.MoveCount, summary.MistakeCount, summary.Score, summary.DurationSec)

	text, err := as.gemini.GenerateText(ctx, userIDOf(prefs), "assistant_analysis", prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		as.log.Debug("analysis fell back to canned phrase", "error", err)
		return as.canned(as.phrases.Analysis, prefs), nil
	}
	return strings.TrimSpace(text), nil
}

func (as *assistantService) canned(table map[string][]string, prefs *types.AssistantPrefs) string {
	lines := table[personality(prefs)]
	if len(lines) == 0 {
		lines = table[defaultPersonality]
	}
	as.mu.Lock()
	defer as.mu.Unlock()
	return lines[as.rng.Intn(len(lines))]
}

func personality(prefs *types.AssistantPrefs) string {
	if prefs == nil || prefs.Personality == "" {
		return defaultPersonality
	}
	return prefs.Personality
}

func userIDOf(prefs *types.AssistantPrefs) *uuid.UUID {
	if prefs == nil || prefs.UserID == uuid.Nil {
		return nil
	}
	id := prefs.UserID
	return &id
}
