// Package creative holds the curated mapping from a child's chosen vocabulary
// to concrete game effects, and the interpreter that extracts those choices
// from freeform input. Tables are ordered slices so interpretation is
// deterministic: the first inserted key wins.
package creative

import "fmt"

type ObjectMapping struct {
	Key            string `json:"key"`
	Visual         string `json:"visual"`
	Behavior       string `json:"behavior"`
	SpecialEffect  string `json:"special_effect"`
	EffectName     string `json:"effect_name,omitempty"`
	EmotionalValue string `json:"emotional_value"`
	FallPattern    string `json:"fall_pattern"`
}

type CatcherMapping struct {
	Key            string `json:"key"`
	Visual         string `json:"visual"`
	Size           string `json:"size"`
	SpecialAbility string `json:"special_ability"`
	EmotionalValue string `json:"emotional_value"`
}

type ColorEffect struct {
	Key        string `json:"key"`
	Effect     string `json:"effect"`
	Mood       string `json:"mood"`
	GameImpact string `json:"game_impact"`
}

var objectMappings = []ObjectMapping{
	// Fruit
	{
		Key:            "apple",
		Visual:         "🍎",
		Behavior:       "falls straight down, like a real apple",
		SpecialEffect:  "a crunchy bite sound when caught",
		EffectName:     "",
		EmotionalValue: "healthy, nourishing",
		FallPattern:    "straight",
	},
	{
		Key:            "banana",
		Visual:         "🍌",
		Behavior:       "sways left and right on the way down",
		SpecialEffect:  "a peeling animation when caught",
		EffectName:     "",
		EmotionalValue: "fun, lively",
		FallPattern:    "zigzag",
	},
	{
		Key:            "watermelon",
		Visual:         "🍉",
		Behavior:       "heavier, so it falls a little faster",
		SpecialEffect:  "juice splashes when caught",
		EffectName:     "",
		EmotionalValue: "summer, refreshing",
		FallPattern:    "straight",
	},
	// Sky
	{
		Key:            "star",
		Visual:         "⭐",
		Behavior:       "drifts down lightly in a zigzag",
		SpecialEffect:  "the whole screen sparkles when caught",
		EffectName:     "star-flash",
		EmotionalValue: "dreams, hope",
		FallPattern:    "zigzag",
	},
	{
		Key:            "moon",
		Visual:         "🌙",
		Behavior:       "floats down slowly and gracefully",
		SpecialEffect:  "the background turns into a night sky when caught",
		EffectName:     "star-flash",
		EmotionalValue: "calm, mysterious",
		FallPattern:    "floating",
	},
	{
		Key:            "cloud",
		Visual:         "☁️",
		Behavior:       "drifts gently side to side",
		SpecialEffect:  "a little rain shower when caught",
		EffectName:     "",
		EmotionalValue: "soft, cozy",
		FallPattern:    "floating",
	},
	// Feelings
	{
		Key:            "heart",
		Visual:         "❤️",
		Behavior:       "floats down tenderly",
		SpecialEffect:  "the screen fills with hearts when caught",
		EffectName:     "heart-burst",
		EmotionalValue: "love, warmth",
		FallPattern:    "floating",
	},
	{
		Key:            "hug",
		Visual:         "🤗",
		Behavior:       "pauses for a moment before falling",
		SpecialEffect:  "a warm glow when caught",
		EffectName:     "heart-burst",
		EmotionalValue: "care, safety",
		FallPattern:    "floating",
	},
	{
		Key:            "smile",
		Visual:         "😊",
		Behavior:       "spins as it tumbles down",
		SpecialEffect:  "giggles when caught",
		EffectName:     "",
		EmotionalValue: "joy, positivity",
		FallPattern:    "spinning",
	},
	// Fantasy
	{
		Key:            "magic",
		Visual:         "✨",
		Behavior:       "flutters down in a shower of sparkles",
		SpecialEffect:  "a rainbow appears when caught",
		EffectName:     "rainbow-ripple",
		EmotionalValue: "wonder, imagination",
		FallPattern:    "zigzag",
	},
	{
		Key:            "rainbow",
		Visual:         "🌈",
		Behavior:       "traces a rainbow arc",
		SpecialEffect:  "the screen turns rainbow-colored when caught",
		EffectName:     "rainbow-ripple",
		EmotionalValue: "hope, beauty",
		FallPattern:    "zigzag",
	},
	{
		Key:            "unicorn",
		Visual:         "🦄",
		Behavior:       "descends in graceful hops",
		SpecialEffect:  "magic dust when caught",
		EffectName:     "rainbow-ripple",
		EmotionalValue: "dreamy, special",
		FallPattern:    "spinning",
	},
}

var catcherMappings = []CatcherMapping{
	{
		Key:            "basket",
		Visual:         "🧺",
		Size:           "medium",
		SpecialAbility: "holds things steady",
		EmotionalValue: "practical, reliable",
	},
	{
		Key:            "hands",
		Visual:         "🤲",
		Size:           "medium",
		SpecialAbility: "catches things gently",
		EmotionalValue: "close, direct",
	},
	{
		Key:            "hug",
		Visual:         "🤗",
		Size:           "large",
		SpecialAbility: "pulls things in like a magnet",
		EmotionalValue: "warm, embracing",
	},
	{
		Key:            "wand",
		Visual:         "🪄",
		Size:           "small",
		SpecialAbility: "can blink from place to place",
		EmotionalValue: "magical, powerful",
	},
	{
		Key:            "plate",
		Visual:         "🍽️",
		Size:           "medium",
		SpecialAbility: "double points for catching food",
		EmotionalValue: "elegant, refined",
	},
	{
		Key:            "net",
		Visual:         "🥅",
		Size:           "large",
		SpecialAbility: "hardly ever misses",
		EmotionalValue: "safe, protective",
	},
}

var colorEffects = []ColorEffect{
	{
		Key:        "rainbow",
		Effect:     "objects keep shifting colors",
		Mood:       "joyful, colorful",
		GameImpact: "adds visual fun",
	},
	{
		Key:        "gold",
		Effect:     "objects glow with golden light",
		Mood:       "precious, special",
		GameImpact: "double score on catch",
	},
	{
		Key:        "invisible",
		Effect:     "objects fade in and out",
		Mood:       "mysterious, challenging",
		GameImpact: "makes the game harder",
	},
	{
		Key:        "sparkly",
		Effect:     "objects twinkle on and off",
		Mood:       "lively, eye-catching",
		GameImpact: "easier to spot",
	},
}

var relatedChoices = map[string][]string{
	"star":       {"moon", "cloud", "rainbow"},
	"heart":      {"hug", "smile"},
	"apple":      {"banana", "watermelon"},
	"banana":     {"apple", "watermelon"},
	"watermelon": {"apple", "banana"},
}

// Objects returns the full object table in interpretation order.
func Objects() []ObjectMapping {
	out := make([]ObjectMapping, len(objectMappings))
	copy(out, objectMappings)
	return out
}

func Catchers() []CatcherMapping {
	out := make([]CatcherMapping, len(catcherMappings))
	copy(out, catcherMappings)
	return out
}

func ColorEffects() []ColorEffect {
	out := make([]ColorEffect, len(colorEffects))
	copy(out, colorEffects)
	return out
}

func LookupObject(key string) (ObjectMapping, bool) {
	for _, m := range objectMappings {
		if m.Key == key {
			return m, true
		}
	}
	return ObjectMapping{}, false
}

func LookupCatcher(key string) (CatcherMapping, bool) {
	for _, m := range catcherMappings {
		if m.Key == key {
			return m, true
		}
	}
	return CatcherMapping{}, false
}

func LookupColorEffect(key string) (ColorEffect, bool) {
	for _, e := range colorEffects {
		if e.Key == key {
			return e, true
		}
	}
	return ColorEffect{}, false
}

// SuggestRelated returns curated neighbors for a chosen key, used to nudge the
// child toward the next idea. Unknown keys get no suggestions.
func SuggestRelated(key string) []string {
	return relatedChoices[key]
}

// EffectDescription builds the parent-facing summary of what the child picked.
func EffectDescription(objectKey, catcherKey, colorKey string) string {
	object, okObject := LookupObject(objectKey)
	catcher, okCatcher := LookupCatcher(catcherKey)
	if !okObject || !okCatcher {
		return "Create a fun catching game!"
	}

	description := fmt.Sprintf("Your little one chose to catch %s with %s!\n", object.Visual, catcher.Visual)
	description += fmt.Sprintf("%s, %s.\n", object.Behavior, object.SpecialEffect)
	description += fmt.Sprintf("%s has a special power: %s!", catcher.Visual, catcher.SpecialAbility)

	if colorKey != "" {
		if ce, ok := LookupColorEffect(colorKey); ok {
			description += fmt.Sprintf("\nAnd it is %s, so %s!", colorKey, ce.Effect)
		}
	}

	return description
}
