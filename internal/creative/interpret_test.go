package creative

import "testing"

func TestInterpret(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Selection
	}{
		{
			name:  "object catcher and speed in one breath",
			input: "I want to catch stars with a big basket, really fast!",
			want:  Selection{ObjectKey: "star", CatcherKey: "basket", SpeedHint: SpeedFast},
		},
		{
			name:  "earlier table entry wins",
			input: "banana apple",
			want:  Selection{ObjectKey: "apple"},
		},
		{
			name:  "glyph matches without the word",
			input: "lots of 🌙 please",
			want:  Selection{ObjectKey: "moon"},
		},
		{
			name:  "color and slow speed",
			input: "make them gold and falling slowly",
			want:  Selection{ColorKey: "gold", SpeedHint: SpeedSlow},
		},
		{
			name:  "fast beats slow when both appear",
			input: "not slow, very fast!",
			want:  Selection{SpeedHint: SpeedFast},
		},
		{
			name:  "case insensitive keys",
			input: "A UNICORN caught by HANDS",
			want:  Selection{ObjectKey: "unicorn", CatcherKey: "hands"},
		},
		{
			name:  "nothing recognized",
			input: "zebra trampoline",
			want:  Selection{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpret(tt.input); got != tt.want {
				t.Errorf("Interpret(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInterpretSharedVocabulary(t *testing.T) {
	// "hug" is both an object and a catcher; one mention selects both
	// dimensions since they are scanned independently.
	got := Interpret("catch hugs")
	if got.ObjectKey != "hug" || got.CatcherKey != "hug" {
		t.Errorf("Interpret(catch hugs) = %+v, want hug for both dimensions", got)
	}
}

func TestSelectionMerge(t *testing.T) {
	base := Selection{ObjectKey: "star", SpeedHint: SpeedSlow}
	next := Selection{CatcherKey: "net", SpeedHint: SpeedFast}

	got := base.Merge(next)
	want := Selection{ObjectKey: "star", CatcherKey: "net", SpeedHint: SpeedFast}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
	if base.CatcherKey != "" {
		t.Error("Merge mutated the receiver")
	}
}

func TestSelectionIsEmpty(t *testing.T) {
	if !(Selection{}).IsEmpty() {
		t.Error("zero Selection not empty")
	}
	if (Selection{ColorKey: "gold"}).IsEmpty() {
		t.Error("Selection with a color reported empty")
	}
}
