package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/fagame/backend/internal/creative"
	"github.com/fagame/backend/internal/gameplay"
	"github.com/fagame/backend/internal/logger"
)

// fakeGemini scripts the model's answer and counts calls.
type fakeGemini struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeGemini) GenerateText(ctx context.Context, userID *uuid.UUID, callType, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGemini) Close() error { return nil }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newSynthForTest(t *testing.T, gemini GeminiClient) SynthesizerService {
	t.Helper()
	svc, err := NewSynthesizerService(testLogger(t), gemini)
	if err != nil {
		t.Fatalf("NewSynthesizerService: %v", err)
	}
	return svc
}

const validDraftJSON = `{
  "title": "Fruit Pairs",
  "description": "Match the fruit cards.",
  "template": "matching",
  "ageGroup": "4-6",
  "educationalGoals": ["memory"],
  "templateParams": {"pairs": [{"id": "a", "content": "🍎"}, {"id": "b", "content": "🍌"}]},
  "tags": ["fruit"]
}`

func TestFromPromptParsesModelAnswer(t *testing.T) {
	fake := &fakeGemini{response: "Here is your game!\n" + validDraftJSON + "\nEnjoy!"}
	svc := newSynthForTest(t, fake)

	draft, err := svc.FromPrompt(context.Background(), nil, "a memory game about fruit")
	if err != nil {
		t.Fatalf("FromPrompt: %v", err)
	}
	if draft.Title != "Fruit Pairs" || draft.Template != gameplay.TemplateMatching {
		t.Errorf("draft = %+v", draft)
	}
	if fake.calls != 1 {
		t.Errorf("model called %d times, want exactly 1", fake.calls)
	}
	if !strings.Contains(fake.prompts[0], "a memory game about fruit") {
		t.Error("prompt does not carry the parent's description")
	}
}

func TestFromPromptNeverRetries(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		response string
		wantKind GenerationErrorKind
	}{
		{
			name:     "invalid key",
			err:      errors.New("googleapi: Error 400: API key expired. [reason: API_KEY_INVALID]"),
			wantKind: KindInvalidCredentials,
		},
		{
			name:     "quota",
			err:      errors.New("googleapi: Error 429: quota exceeded for quota metric"),
			wantKind: KindQuotaExceeded,
		},
		{
			name:     "network",
			err:      errors.New("dial tcp: connection refused"),
			wantKind: KindTransientNetwork,
		},
		{
			name:     "prose only",
			response: "Sorry, I cannot make a game out of that.",
			wantKind: KindMalformedResponse,
		},
		{
			name:     "wrong shape",
			response: `{"title": "x", "template": "matching", "templateParams": {"items": []}}`,
			wantKind: KindMalformedResponse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.err != nil {
				err = classifyProviderError(tt.err)
			}
			fake := &fakeGemini{response: tt.response, err: err}
			svc := newSynthForTest(t, fake)

			_, gotErr := svc.FromPrompt(context.Background(), nil, "anything")
			if gotErr == nil {
				t.Fatal("expected an error")
			}
			var genErr *GenerationError
			if !errors.As(gotErr, &genErr) {
				t.Fatalf("error type = %T", gotErr)
			}
			if genErr.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", genErr.Kind, tt.wantKind)
			}
			if fake.calls > 1 {
				t.Errorf("model called %d times, a failed generation must not retry", fake.calls)
			}
		})
	}
}

func TestFromTemplateValidates(t *testing.T) {
	svc := newSynthForTest(t, &fakeGemini{})

	_, err := svc.FromTemplate(context.Background(), TemplateRequest{
		Title:          "Count Up",
		Template:       "sorting",
		TemplateParams: []byte(`{"items":[{"id":"a","value":1,"display":"1"},{"id":"b","value":2,"display":"2"}]}`),
	})
	if err != nil {
		t.Fatalf("FromTemplate: %v", err)
	}

	_, err = svc.FromTemplate(context.Background(), TemplateRequest{
		Title:          "Broken",
		Template:       "sorting",
		TemplateParams: []byte(`{"pairs":[{"id":"a","content":"x"}]}`),
	})
	var verr *gameplay.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("cross-template params: error = %v, want ValidationError", err)
	}
}

func TestFromSelectionBuildsCatchGame(t *testing.T) {
	svc := newSynthForTest(t, &fakeGemini{})

	draft, err := svc.FromSelection(creative.Selection{
		ObjectKey:  "star",
		CatcherKey: "basket",
		ColorKey:   "gold",
		SpeedHint:  creative.SpeedFast,
	})
	if err != nil {
		t.Fatalf("FromSelection: %v", err)
	}
	if draft.Template != gameplay.TemplateCatch {
		t.Fatalf("template = %q", draft.Template)
	}
	if err := gameplay.ValidateParams(draft.Template, draft.TemplateParams); err != nil {
		t.Fatalf("selection produced invalid params: %v", err)
	}
	if !strings.Contains(string(draft.TemplateParams), `"fallSpeed":"fast"`) {
		t.Errorf("speed hint not applied: %s", draft.TemplateParams)
	}
	if !strings.Contains(string(draft.TemplateParams), `"specialEffect":"star-flash"`) {
		t.Errorf("object effect not applied: %s", draft.TemplateParams)
	}

	if _, err := svc.FromSelection(creative.Selection{ObjectKey: "zebra", CatcherKey: "basket"}); err == nil {
		t.Error("unknown object did not error")
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare", `{"a":1}`, `{"a":1}`, false},
		{"wrapped in prose", "sure thing\n{\"a\":1}\nbye", `{"a":1}`, false},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`, false},
		{"braces in strings", `{"a":"}{"}`, `{"a":"}{"}`, false},
		{"no object", "nothing here", "", true},
		{"unbalanced", `{"a":1`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONObject(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
