package gameplay

import (
	"math/rand"
	"sort"
	"testing"
	"time"
)

func numItems(vals ...float64) []SortItem {
	items := make([]SortItem, len(vals))
	for i, v := range vals {
		items[i] = SortItem{
			ID:      string(rune('a' + i)),
			Value:   SortValue{Number: v, IsNum: true},
			Display: "item",
		}
	}
	return items
}

func TestSortingCorrectOrder(t *testing.T) {
	tests := []struct {
		name  string
		items []SortItem
		want  []string
	}{
		{
			name:  "numeric",
			items: numItems(3, 1, 2),
			want:  []string{"b", "c", "a"},
		},
		{
			name: "lexicographic",
			items: []SortItem{
				{ID: "x", Value: SortValue{Raw: "cat"}, Display: "cat"},
				{ID: "y", Value: SortValue{Raw: "ant"}, Display: "ant"},
				{ID: "z", Value: SortValue{Raw: "bee"}, Display: "bee"},
			},
			want: []string{"y", "z", "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSortingSession(SortingParams{Items: tt.items}, rand.New(rand.NewSource(7)), nil)
			if err != nil {
				t.Fatalf("NewSortingSession: %v", err)
			}
			if got := s.CorrectOrder(); !orderEquals(got, tt.want) {
				t.Errorf("CorrectOrder() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortingShuffleIsNontrivial(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s, err := NewSortingSession(SortingParams{Items: numItems(1, 2, 3, 4)}, rand.New(rand.NewSource(seed)), nil)
		if err != nil {
			t.Fatalf("NewSortingSession: %v", err)
		}
		if orderEquals(s.CurrentOrder(), s.CorrectOrder()) {
			t.Errorf("seed %d: board dealt already solved", seed)
		}

		// Shuffling must preserve the item set.
		cur := s.CurrentOrder()
		correct := s.CorrectOrder()
		sort.Strings(cur)
		sort.Strings(correct)
		if !orderEquals(cur, correct) {
			t.Errorf("seed %d: shuffle changed the item set: %v", seed, s.CurrentOrder())
		}
	}
}

func TestSortingDropToWin(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }

	s, err := NewSortingSession(SortingParams{Items: numItems(2, 1, 3)}, rand.New(rand.NewSource(3)), clock)
	if err != nil {
		t.Fatalf("NewSortingSession: %v", err)
	}
	s.Start()

	// Solve by dropping each item onto its target slot center. The win can
	// land before the last drop, once the remaining items are already in
	// place.
	now = now.Add(42 * time.Second)
	correct := s.CorrectOrder()
	var last DropResult
	for slot, id := range correct {
		last, err = s.Drop(id, s.slotCenter(slot))
		if err != nil {
			t.Fatalf("Drop(%q): %v", id, err)
		}
		if last.Won {
			break
		}
	}

	if !last.Won {
		t.Fatal("solved board not reported as won")
	}
	if !orderEquals(last.Order, correct) {
		t.Fatalf("final order = %v, want %v", last.Order, correct)
	}
	if s.State() != StateWon {
		t.Errorf("state = %q, want %q", s.State(), StateWon)
	}
	if last.Elapsed != 42*time.Second {
		t.Errorf("elapsed = %v, want 42s", last.Elapsed)
	}
	if last.MoveCount == 0 || last.MoveCount > len(correct) {
		t.Errorf("move count = %d, want between 1 and %d", last.MoveCount, len(correct))
	}
}

func TestSortingDropNearestSlot(t *testing.T) {
	s, err := NewSortingSession(SortingParams{Items: numItems(1, 2, 3)}, rand.New(rand.NewSource(3)), nil)
	if err != nil {
		t.Fatalf("NewSortingSession: %v", err)
	}
	s.Start()

	id := s.CurrentOrder()[0]
	// A drop far right of the row lands in the last slot.
	res, err := s.Drop(id, sortPlayWidth*2)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if got := res.Order[len(res.Order)-1]; got != id {
		t.Errorf("dropped item landed at %v, want last slot", res.Order)
	}

	if _, err := s.Drop("nope", 0); err == nil {
		t.Error("unknown item id did not error")
	}
}

func TestSortingDropIgnoredAfterWin(t *testing.T) {
	s, err := NewSortingSession(SortingParams{Items: numItems(1, 2)}, rand.New(rand.NewSource(3)), nil)
	if err != nil {
		t.Fatalf("NewSortingSession: %v", err)
	}
	s.Start()

	correct := s.CorrectOrder()
	for slot, id := range correct {
		s.Drop(id, s.slotCenter(slot))
	}
	if s.State() != StateWon {
		t.Fatalf("state = %q, want %q", s.State(), StateWon)
	}

	before := s.MoveCount()
	res, err := s.Drop(correct[0], 0)
	if err != nil {
		t.Fatalf("Drop after win: %v", err)
	}
	if res.MoveCount != before {
		t.Error("drop after win counted as a move")
	}
}
