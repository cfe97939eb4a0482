package gameplay

import (
	"math/rand"
	"testing"
)

func newMatchingForTest(t *testing.T, pairs []Pair) *MatchingSession {
	t.Helper()
	s, err := NewMatchingSession(MatchingParams{Pairs: pairs}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewMatchingSession: %v", err)
	}
	s.Start()
	return s
}

func TestMatchingFullPlaythrough(t *testing.T) {
	s := newMatchingForTest(t, []Pair{
		{ID: "a", Content: "apple"},
		{ID: "b", Content: "banana"},
		{ID: "c", Content: "cherry"},
	})

	// Index the shuffled deck by pair id so the test can play perfectly.
	byPair := map[string][]int{}
	for i, c := range s.Cards() {
		byPair[c.PairID] = append(byPair[c.PairID], i)
	}

	moves := 0
	for _, id := range []string{"a", "b", "c"} {
		idx := byPair[id]
		if len(idx) != 2 {
			t.Fatalf("pair %q has %d cards, want 2", id, len(idx))
		}
		if _, err := s.SelectCard(idx[0]); err != nil {
			t.Fatalf("SelectCard: %v", err)
		}
		res, err := s.SelectCard(idx[1])
		if err != nil {
			t.Fatalf("SelectCard: %v", err)
		}
		moves++
		if !res.Matched {
			t.Fatalf("pair %q: expected a match, got %+v", id, res)
		}
		if res.Encouragement == "" {
			t.Errorf("pair %q: match carried no encouragement", id)
		}
		if res.MoveCount != moves {
			t.Errorf("move count = %d, want %d", res.MoveCount, moves)
		}
	}

	if s.State() != StateWon {
		t.Fatalf("state = %q after all pairs matched, want %q", s.State(), StateWon)
	}
	if got := s.Mistakes(); len(got) != 0 {
		t.Errorf("perfect game recorded mistakes: %v", got)
	}
}

func TestMatchingMismatchRecordedAndResolved(t *testing.T) {
	s := newMatchingForTest(t, []Pair{
		{ID: "a", Content: "apple"},
		{ID: "b", Content: "banana"},
	})

	// Find two cards from different pairs.
	cards := s.Cards()
	first, second := -1, -1
	for i, c := range cards {
		if c.PairID == "a" && first < 0 {
			first = i
		}
		if c.PairID == "b" && second < 0 {
			second = i
		}
	}

	s.SelectCard(first)
	res, _ := s.SelectCard(second)
	if !res.Mismatch {
		t.Fatalf("expected mismatch, got %+v", res)
	}
	if got := s.Mistakes(); len(got) != 1 || got[0] != "apple-banana" {
		t.Fatalf("mistakes = %v, want [apple-banana]", got)
	}

	// Both cards stay face up until the mismatch resolves, and further
	// selections are no-ops in the meantime.
	third := -1
	for i, c := range s.Cards() {
		if i != first && i != second && !c.FaceUp {
			third = i
			break
		}
	}
	res, _ = s.SelectCard(third)
	if res.Flipped {
		t.Error("selection during pending mismatch flipped a card")
	}

	s.ResolveMismatch()
	for _, i := range []int{first, second} {
		if s.Cards()[i].FaceUp {
			t.Errorf("card %d still face up after ResolveMismatch", i)
		}
	}
}

func TestMatchingNoOpSelections(t *testing.T) {
	s := newMatchingForTest(t, []Pair{
		{ID: "a", Content: "apple"},
		{ID: "b", Content: "banana"},
	})

	if _, err := s.SelectCard(99); err == nil {
		t.Error("out-of-range index did not error")
	}

	res, _ := s.SelectCard(0)
	if !res.Flipped {
		t.Fatal("first selection did not flip")
	}
	res, _ = s.SelectCard(0)
	if res.Flipped {
		t.Error("re-selecting a face-up card flipped it again")
	}
	if s.MoveCount() != 0 {
		t.Errorf("move count = %d before a complete turn, want 0", s.MoveCount())
	}
}

func TestMatchingSelectBeforeStart(t *testing.T) {
	s, err := NewMatchingSession(MatchingParams{Pairs: []Pair{{ID: "a", Content: "x"}}}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewMatchingSession: %v", err)
	}
	res, err := s.SelectCard(0)
	if err != nil {
		t.Fatalf("SelectCard: %v", err)
	}
	if res.Flipped {
		t.Error("selection before Start flipped a card")
	}
}
