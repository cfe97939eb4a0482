// Package gameplay implements the per-template game session runtimes and the
// parameter schemas they run on. Sessions are pure state machines; rendering,
// input capture and animation timing belong to the client.
package gameplay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type Template string

const (
	TemplateMatching Template = "matching"
	TemplateSorting  Template = "sorting"
	TemplateCatch    Template = "catch"
	TemplateStory    Template = "story"
)

func ParseTemplate(s string) (Template, bool) {
	switch Template(s) {
	case TemplateMatching, TemplateSorting, TemplateCatch, TemplateStory:
		return Template(s), true
	default:
		return "", false
	}
}

// ValidationError reports a malformed or missing template field. It fails
// fast and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type Pair struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Match   string `json:"match,omitempty"`
}

type MatchingParams struct {
	Pairs          []Pair   `json:"pairs"`
	Theme          string   `json:"theme,omitempty"`
	Encouragements []string `json:"encouragements,omitempty"`
}

// SortValue accepts either a JSON number or a JSON string, since generated
// configs use numbers for counting games and strings for alphabet games.
type SortValue struct {
	Raw    string
	Number float64
	IsNum  bool
}

func (v *SortValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty sort value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.Raw = s
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			v.Number = n
			v.IsNum = true
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	v.Number = n
	v.IsNum = true
	v.Raw = strconv.FormatFloat(n, 'f', -1, 64)
	return nil
}

func (v SortValue) MarshalJSON() ([]byte, error) {
	if v.IsNum {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Raw)
}

type SortItem struct {
	ID      string    `json:"id"`
	Value   SortValue `json:"value"`
	Display string    `json:"display"`
}

type SortingParams struct {
	Items          []SortItem `json:"items"`
	SortType       string     `json:"sortType,omitempty"`
	Theme          string     `json:"theme,omitempty"`
	Encouragements []string   `json:"encouragements,omitempty"`
}

type FallPattern string

const (
	FallStraight FallPattern = "straight"
	FallZigzag   FallPattern = "zigzag"
	FallFloating FallPattern = "floating"
	FallSpinning FallPattern = "spinning"
)

type FallSpeed string

const (
	SpeedSlow   FallSpeed = "slow"
	SpeedMedium FallSpeed = "medium"
	SpeedFast   FallSpeed = "fast"
)

type SpawnRate string

const (
	SpawnLow    SpawnRate = "low"
	SpawnMedium SpawnRate = "medium"
	SpawnHigh   SpawnRate = "high"
)

type CatchParams struct {
	ObjectKey     string      `json:"objectKey,omitempty"`
	ObjectEmoji   string      `json:"objectEmoji"`
	ObjectColor   string      `json:"objectColor,omitempty"`
	CatcherKey    string      `json:"catcherKey,omitempty"`
	CatcherEmoji  string      `json:"catcherEmoji"`
	FallPattern   FallPattern `json:"fallPattern"`
	FallSpeed     FallSpeed   `json:"fallSpeed"`
	SpawnRate     SpawnRate   `json:"spawnRate"`
	SpecialEffect string      `json:"specialEffect,omitempty"`
	// TargetScore > 0 ends the session as Won at that score; 0 means
	// endless arcade mode.
	TargetScore int `json:"targetScore,omitempty"`
}

type StoryScene struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Visual string `json:"visual,omitempty"`
}

type StoryParams struct {
	Scenes         []StoryScene `json:"scenes"`
	Theme          string       `json:"theme,omitempty"`
	Encouragements []string     `json:"encouragements,omitempty"`
}

// ValidateParams strictly decodes raw into the parameter schema declared by
// template. Unknown fields, missing required fields and cross-template field
// leakage all fail with a ValidationError.
func ValidateParams(template Template, raw []byte) error {
	switch template {
	case TemplateMatching:
		var p MatchingParams
		if err := strictDecode(raw, &p); err != nil {
			return &ValidationError{Field: "templateParams", Reason: err.Error()}
		}
		return p.validate()
	case TemplateSorting:
		var p SortingParams
		if err := strictDecode(raw, &p); err != nil {
			return &ValidationError{Field: "templateParams", Reason: err.Error()}
		}
		return p.validate()
	case TemplateCatch:
		var p CatchParams
		if err := strictDecode(raw, &p); err != nil {
			return &ValidationError{Field: "templateParams", Reason: err.Error()}
		}
		return p.validate()
	case TemplateStory:
		var p StoryParams
		if err := strictDecode(raw, &p); err != nil {
			return &ValidationError{Field: "templateParams", Reason: err.Error()}
		}
		return p.validate()
	default:
		return &ValidationError{Field: "template", Reason: fmt.Sprintf("unknown template %q", template)}
	}
}

func strictDecode(raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func (p MatchingParams) validate() error {
	if len(p.Pairs) == 0 {
		return &ValidationError{Field: "pairs", Reason: "at least one pair is required"}
	}
	seen := make(map[string]bool, len(p.Pairs))
	for i, pair := range p.Pairs {
		if pair.ID == "" {
			return &ValidationError{Field: fmt.Sprintf("pairs[%d].id", i), Reason: "required"}
		}
		if pair.Content == "" {
			return &ValidationError{Field: fmt.Sprintf("pairs[%d].content", i), Reason: "required"}
		}
		if seen[pair.ID] {
			return &ValidationError{Field: fmt.Sprintf("pairs[%d].id", i), Reason: "duplicate pair id"}
		}
		seen[pair.ID] = true
	}
	return nil
}

func (p SortingParams) validate() error {
	if len(p.Items) < 2 {
		return &ValidationError{Field: "items", Reason: "at least two items are required"}
	}
	seen := make(map[string]bool, len(p.Items))
	for i, item := range p.Items {
		if item.ID == "" {
			return &ValidationError{Field: fmt.Sprintf("items[%d].id", i), Reason: "required"}
		}
		if item.Display == "" {
			return &ValidationError{Field: fmt.Sprintf("items[%d].display", i), Reason: "required"}
		}
		if seen[item.ID] {
			return &ValidationError{Field: fmt.Sprintf("items[%d].id", i), Reason: "duplicate item id"}
		}
		seen[item.ID] = true
	}
	switch p.SortType {
	case "", "number", "size", "alphabet":
	default:
		return &ValidationError{Field: "sortType", Reason: fmt.Sprintf("unknown sort type %q", p.SortType)}
	}
	return nil
}

func (p CatchParams) validate() error {
	if p.ObjectEmoji == "" {
		return &ValidationError{Field: "objectEmoji", Reason: "required"}
	}
	if p.CatcherEmoji == "" {
		return &ValidationError{Field: "catcherEmoji", Reason: "required"}
	}
	switch p.FallPattern {
	case FallStraight, FallZigzag, FallFloating, FallSpinning:
	default:
		return &ValidationError{Field: "fallPattern", Reason: fmt.Sprintf("unknown fall pattern %q", p.FallPattern)}
	}
	switch p.FallSpeed {
	case SpeedSlow, SpeedMedium, SpeedFast:
	default:
		return &ValidationError{Field: "fallSpeed", Reason: fmt.Sprintf("unknown fall speed %q", p.FallSpeed)}
	}
	switch p.SpawnRate {
	case SpawnLow, SpawnMedium, SpawnHigh:
	default:
		return &ValidationError{Field: "spawnRate", Reason: fmt.Sprintf("unknown spawn rate %q", p.SpawnRate)}
	}
	if p.TargetScore < 0 {
		return &ValidationError{Field: "targetScore", Reason: "must not be negative"}
	}
	return nil
}

func (p StoryParams) validate() error {
	if len(p.Scenes) == 0 {
		return &ValidationError{Field: "scenes", Reason: "at least one scene is required"}
	}
	for i, scene := range p.Scenes {
		if scene.Text == "" {
			return &ValidationError{Field: fmt.Sprintf("scenes[%d].text", i), Reason: "required"}
		}
	}
	return nil
}
