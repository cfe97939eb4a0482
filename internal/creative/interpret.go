package creative

import "strings"

type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedMedium Speed = "medium"
	SpeedFast   Speed = "fast"
)

// Selection is the incremental result of interpreting a child's freeform
// descriptions. Unset fields are empty strings; it carries no persistence of
// its own and is eventually folded into a catch game's parameters.
type Selection struct {
	ObjectKey  string `json:"object_key,omitempty"`
	CatcherKey string `json:"catcher_key,omitempty"`
	ColorKey   string `json:"color_key,omitempty"`
	SpeedHint  Speed  `json:"speed_hint,omitempty"`
}

func (s Selection) IsEmpty() bool {
	return s.ObjectKey == "" && s.CatcherKey == "" && s.ColorKey == "" && s.SpeedHint == ""
}

// Merge overlays later input on top of an earlier selection. Fields already
// chosen are kept unless the new input chose something for that dimension.
func (s Selection) Merge(next Selection) Selection {
	out := s
	if next.ObjectKey != "" {
		out.ObjectKey = next.ObjectKey
	}
	if next.CatcherKey != "" {
		out.CatcherKey = next.CatcherKey
	}
	if next.ColorKey != "" {
		out.ColorKey = next.ColorKey
	}
	if next.SpeedHint != "" {
		out.SpeedHint = next.SpeedHint
	}
	return out
}

var (
	fastWords = []string{"very fast", "fast", "quickly"}
	slowWords = []string{"slowly", "slow"}
)

// Interpret scans freeform input for known vocabulary. Per dimension the first
// table entry whose key or glyph appears in the input wins; dimensions are
// independent, and a dimension with no match is simply left unset. This is a
// plain substring scan, not language understanding.
func Interpret(input string) Selection {
	var sel Selection
	lowered := strings.ToLower(input)

	for _, m := range objectMappings {
		if strings.Contains(lowered, m.Key) || strings.Contains(input, m.Visual) {
			sel.ObjectKey = m.Key
			break
		}
	}

	for _, m := range catcherMappings {
		if strings.Contains(lowered, m.Key) || strings.Contains(input, m.Visual) {
			sel.CatcherKey = m.Key
			break
		}
	}

	for _, e := range colorEffects {
		if strings.Contains(lowered, e.Key) {
			sel.ColorKey = e.Key
			break
		}
	}

	for _, w := range fastWords {
		if strings.Contains(lowered, w) {
			sel.SpeedHint = SpeedFast
			break
		}
	}
	if sel.SpeedHint == "" {
		for _, w := range slowWords {
			if strings.Contains(lowered, w) {
				sel.SpeedHint = SpeedSlow
				break
			}
		}
	}

	return sel
}
