package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fagame/backend/internal/types"
)

func newAssistantForTest(t *testing.T, gemini GeminiClient) AssistantService {
	t.Helper()
	svc, err := NewAssistantService(testLogger(t), gemini)
	if err != nil {
		t.Fatalf("NewAssistantService: %v", err)
	}
	return svc
}

func enabledPrefs() *types.AssistantPrefs {
	return &types.AssistantPrefs{
		Enabled:            true,
		SmartHints:         true,
		AdaptiveDifficulty: true,
		ProgressAnalysis:   true,
		Personality:        "encouraging",
	}
}

func TestAssistantDisabledMakesNoCalls(t *testing.T) {
	fake := &fakeGemini{response: "should never be used"}
	svc := newAssistantForTest(t, fake)

	prefsList := []*types.AssistantPrefs{
		nil,
		{Enabled: false, SmartHints: true, ProgressAnalysis: true},
	}
	for _, prefs := range prefsList {
		if svc.IsAvailable(prefs) {
			t.Error("IsAvailable = true for disabled prefs")
		}

		hint, err := svc.RequestHint(context.Background(), prefs, HintRequest{GameTitle: "g"})
		if err != nil || hint != "" {
			t.Errorf("RequestHint = %q, %v; want empty, nil", hint, err)
		}
		enc, err := svc.RequestEncouragement(context.Background(), prefs, "g")
		if err != nil || enc != "" {
			t.Errorf("RequestEncouragement = %q, %v; want empty, nil", enc, err)
		}
		analysis, err := svc.AnalyzeProgress(context.Background(), prefs, ProgressSummary{})
		if err != nil || analysis != "" {
			t.Errorf("AnalyzeProgress = %q, %v; want empty, nil", analysis, err)
		}
		if got := svc.SuggestDifficultyChange(prefs, 10, 3); got != 0 {
			t.Errorf("SuggestDifficultyChange = %d for disabled prefs", got)
		}
	}

	if fake.calls != 0 {
		t.Fatalf("disabled assistant made %d model calls", fake.calls)
	}
}

func TestAssistantUsesModelWhenEnabled(t *testing.T) {
	fake := &fakeGemini{response: "Try looking at the sparkly one!"}
	svc := newAssistantForTest(t, fake)

	hint, err := svc.RequestHint(context.Background(), enabledPrefs(), HintRequest{
		GameTitle: "Star Catch",
		Template:  "catch",
		Situation: "missed five stars in a row",
	})
	if err != nil {
		t.Fatalf("RequestHint: %v", err)
	}
	if hint != "Try looking at the sparkly one!" {
		t.Errorf("hint = %q", hint)
	}
	if fake.calls != 1 {
		t.Errorf("model calls = %d, want 1", fake.calls)
	}
}

func TestAssistantFallsBackOnModelFailure(t *testing.T) {
	fake := &fakeGemini{err: classifyProviderError(errors.New("connection refused"))}
	svc := newAssistantForTest(t, fake)

	hint, err := svc.RequestHint(context.Background(), enabledPrefs(), HintRequest{GameTitle: "g"})
	if err != nil {
		t.Fatalf("fallback must not surface the model error, got %v", err)
	}
	if hint == "" {
		t.Fatal("fallback hint is empty")
	}

	enc, err := svc.RequestEncouragement(context.Background(), enabledPrefs(), "g")
	if err != nil || enc == "" {
		t.Fatalf("RequestEncouragement fallback = %q, %v", enc, err)
	}

	analysis, err := svc.AnalyzeProgress(context.Background(), enabledPrefs(), ProgressSummary{GameTitle: "g"})
	if err != nil || analysis == "" {
		t.Fatalf("AnalyzeProgress fallback = %q, %v", analysis, err)
	}

	if fake.calls != 3 {
		t.Errorf("model calls = %d, want 3 (one per request, no retries)", fake.calls)
	}
}

func TestAssistantUnknownPersonalityFallsBack(t *testing.T) {
	fake := &fakeGemini{err: errors.New("boom")}
	svc := newAssistantForTest(t, fake)

	prefs := enabledPrefs()
	prefs.Personality = "mysterious"
	hint, err := svc.RequestHint(context.Background(), prefs, HintRequest{GameTitle: "g"})
	if err != nil || hint == "" {
		t.Fatalf("fallback for unknown personality = %q, %v", hint, err)
	}
}

func TestSuggestDifficultyChange(t *testing.T) {
	svc := newAssistantForTest(t, &fakeGemini{})
	prefs := enabledPrefs()

	tests := []struct {
		name     string
		mistakes int
		level    int
		want     int
	}{
		{"struggling steps down", 6, 3, -1},
		{"struggling at floor stays", 6, 1, 0},
		{"perfect steps up", 0, 3, 1},
		{"perfect at ceiling stays", 0, 5, 0},
		{"middling stays", 2, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.SuggestDifficultyChange(prefs, tt.mistakes, tt.level); got != tt.want {
				t.Errorf("SuggestDifficultyChange(%d, %d) = %d, want %d", tt.mistakes, tt.level, got, tt.want)
			}
		})
	}

	offPrefs := enabledPrefs()
	offPrefs.AdaptiveDifficulty = false
	if got := svc.SuggestDifficultyChange(offPrefs, 6, 3); got != 0 {
		t.Errorf("switch off but suggested %d", got)
	}
}
