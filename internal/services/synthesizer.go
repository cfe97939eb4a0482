package services

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"github.com/fagame/backend/internal/creative"
	"github.com/fagame/backend/internal/gameplay"
	"github.com/fagame/backend/internal/logger"
)

//go:embed prompts/synthesize_game.txt
var synthesizeGamePrompt string

// GameDraft is a fully validated game configuration ready to be persisted.
// Every synthesis path (template form, freeform prompt, creative selection)
// funnels through the same validation before a draft leaves this package.
type GameDraft struct {
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Template         gameplay.Template `json:"template"`
	AgeGroup         string            `json:"ageGroup"`
	EducationalGoals []string          `json:"educationalGoals"`
	TemplateParams   json.RawMessage   `json:"templateParams"`
	Tags             []string          `json:"tags"`
}

// TemplateRequest is the structured form a parent fills in by hand.
type TemplateRequest struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Template         string          `json:"template"`
	AgeGroup         string          `json:"ageGroup"`
	EducationalGoals []string        `json:"educationalGoals"`
	TemplateParams   json.RawMessage `json:"templateParams"`
	Tags             []string        `json:"tags"`
}

type SynthesizerService interface {
	FromTemplate(ctx context.Context, req TemplateRequest) (*GameDraft, error)
	FromPrompt(ctx context.Context, userID *uuid.UUID, description string) (*GameDraft, error)
	FromSelection(sel creative.Selection) (*GameDraft, error)
}

type synthesizerService struct {
	log    *logger.Logger
	gemini GeminiClient
	prompt *template.Template
}

func NewSynthesizerService(log *logger.Logger, gemini GeminiClient) (SynthesizerService, error) {
	serviceLog := log.With("service", "SynthesizerService")
	prompt, err := template.New("synthesize_game").Parse(synthesizeGamePrompt)
	if err != nil {
		return nil, fmt.Errorf("parse synthesis prompt: %w", err)
	}
	return &synthesizerService{
		log:    serviceLog,
		gemini: gemini,
		prompt: prompt,
	}, nil
}

func (ss *synthesizerService) FromTemplate(ctx context.Context, req TemplateRequest) (*GameDraft, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &gameplay.ValidationError{Field: "title", Reason: "required"}
	}
	tmpl, ok := gameplay.ParseTemplate(req.Template)
	if !ok {
		return nil, &gameplay.ValidationError{Field: "template", Reason: fmt.Sprintf("unknown template %q", req.Template)}
	}
	if err := gameplay.ValidateParams(tmpl, req.TemplateParams); err != nil {
		return nil, err
	}

	return &GameDraft{
		Title:            strings.TrimSpace(req.Title),
		Description:      strings.TrimSpace(req.Description),
		Template:         tmpl,
		AgeGroup:         req.AgeGroup,
		EducationalGoals: req.EducationalGoals,
		TemplateParams:   req.TemplateParams,
		Tags:             req.Tags,
	}, nil
}

// FromPrompt synthesizes a game from a parent's freeform description, spoken
// or typed. The model call is bounded and never retried; a malformed model
// answer is surfaced as such rather than papered over.
func (ss *synthesizerService) FromPrompt(ctx context.Context, userID *uuid.UUID, description string) (*GameDraft, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &gameplay.ValidationError{Field: "description", Reason: "required"}
	}

	var buf bytes.Buffer
	if err := ss.prompt.Execute(&buf, struct{ Description string }{Description: description}); err != nil {
		return nil, fmt.Errorf("render synthesis prompt: %w", err)
	}

	raw, err := ss.gemini.GenerateText(ctx, userID, "game_synthesis", buf.String())
	if err != nil {
		return nil, err
	}

	object, err := extractJSONObject(raw)
	if err != nil {
		return nil, newGenerationError(KindMalformedResponse, err)
	}

	var draft GameDraft
	dec := json.NewDecoder(strings.NewReader(object))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&draft); err != nil {
		return nil, newGenerationError(KindMalformedResponse, fmt.Errorf("decode draft: %w", err))
	}

	if _, ok := gameplay.ParseTemplate(string(draft.Template)); !ok {
		return nil, newGenerationError(KindMalformedResponse, fmt.Errorf("model chose unknown template %q", draft.Template))
	}
	if err := gameplay.ValidateParams(draft.Template, draft.TemplateParams); err != nil {
		return nil, newGenerationError(KindMalformedResponse, err)
	}
	if draft.Title == "" {
		return nil, newGenerationError(KindMalformedResponse, fmt.Errorf("draft has no title"))
	}

	ss.log.Info("synthesized game from prompt",
		"template", draft.Template,
		"age_group", draft.AgeGroup)
	return &draft, nil
}

// FromSelection turns a child's interpreted choices into a catch game using
// the curated mapping tables. No model call is involved, so it cannot fail
// with a generation error.
func (ss *synthesizerService) FromSelection(sel creative.Selection) (*GameDraft, error) {
	object, ok := creative.LookupObject(sel.ObjectKey)
	if !ok {
		return nil, &gameplay.ValidationError{Field: "objectKey", Reason: fmt.Sprintf("unknown object %q", sel.ObjectKey)}
	}
	catcher, ok := creative.LookupCatcher(sel.CatcherKey)
	if !ok {
		return nil, &gameplay.ValidationError{Field: "catcherKey", Reason: fmt.Sprintf("unknown catcher %q", sel.CatcherKey)}
	}

	params := gameplay.CatchParams{
		ObjectKey:     object.Key,
		ObjectEmoji:   object.Visual,
		CatcherKey:    catcher.Key,
		CatcherEmoji:  catcher.Visual,
		FallPattern:   gameplay.FallPattern(object.FallPattern),
		FallSpeed:     gameplay.SpeedMedium,
		SpawnRate:     gameplay.SpawnMedium,
		SpecialEffect: object.EffectName,
	}
	switch sel.SpeedHint {
	case creative.SpeedFast:
		params.FallSpeed = gameplay.SpeedFast
	case creative.SpeedSlow:
		params.FallSpeed = gameplay.SpeedSlow
	}
	if sel.ColorKey != "" {
		if _, ok := creative.LookupColorEffect(sel.ColorKey); !ok {
			return nil, &gameplay.ValidationError{Field: "colorKey", Reason: fmt.Sprintf("unknown color %q", sel.ColorKey)}
		}
		params.ObjectColor = sel.ColorKey
	}

	rawParams, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal catch params: %w", err)
	}

	return &GameDraft{
		Title:          fmt.Sprintf("Catch the %s %s", capitalize(object.Key), object.Visual),
		Description:    creative.EffectDescription(object.Key, catcher.Key, sel.ColorKey),
		Template:       gameplay.TemplateCatch,
		AgeGroup:       "3-4",
		TemplateParams: rawParams,
		Tags:           []string{"creative", object.Key, catcher.Key},
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// extractJSONObject returns the first balanced top-level JSON object in s,
// tolerating prose the model wraps around it. Braces inside strings do not
// count toward the balance.
func extractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in response")
}
