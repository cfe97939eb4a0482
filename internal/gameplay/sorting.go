package gameplay

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
)

const (
	sortItemWidth   = 100.0
	sortItemPadding = 20.0
	sortPlayWidth   = 800.0

	// A fresh board is reshuffled at most this many times looking for an
	// order that differs from the solved one.
	sortShuffleAttempts = 16
)

// DropResult describes one drag-release.
type DropResult struct {
	Order     []string      `json:"order"`
	MoveCount int           `json:"move_count"`
	Won       bool          `json:"won"`
	Elapsed   time.Duration `json:"elapsed,omitempty"`
}

// SortingSession is the drag-to-sort state machine. Items hold their current
// on-screen order; each drop moves the dragged item to the slot nearest the
// drop x-coordinate and re-checks against the precomputed correct order.
type SortingSession struct {
	items        []SortItem
	correctOrder []string
	moveCount    int
	state        SessionState
	startedAt    time.Time
	elapsed      time.Duration
	clock        func() time.Time
}

func NewSortingSession(params SortingParams, rng *rand.Rand, clock func() time.Time) (*SortingSession, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if clock == nil {
		clock = time.Now
	}

	correct := correctOrderFor(params)

	items := make([]SortItem, len(params.Items))
	copy(items, params.Items)
	for attempt := 0; attempt < sortShuffleAttempts; attempt++ {
		rng.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
		if !orderEquals(ids(items), correct) {
			break
		}
	}

	return &SortingSession{
		items:        items,
		correctOrder: correct,
		state:        StateLoading,
		clock:        clock,
	}, nil
}

func correctOrderFor(params SortingParams) []string {
	sorted := make([]SortItem, len(params.Items))
	copy(sorted, params.Items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Value, sorted[j].Value
		if a.IsNum && b.IsNum {
			return a.Number < b.Number
		}
		return strings.Compare(a.Raw, b.Raw) < 0
	})
	return ids(sorted)
}

func ids(items []SortItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func orderEquals(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *SortingSession) Start() {
	if s.state == StateLoading {
		s.state = StatePlaying
		s.startedAt = s.clock()
	}
}

func (s *SortingSession) State() SessionState   { return s.state }
func (s *SortingSession) MoveCount() int        { return s.moveCount }
func (s *SortingSession) CorrectOrder() []string {
	out := make([]string, len(s.correctOrder))
	copy(out, s.correctOrder)
	return out
}
func (s *SortingSession) CurrentOrder() []string { return ids(s.items) }

// Elapsed is the time from Start to the winning drop; zero before the win.
func (s *SortingSession) Elapsed() time.Duration { return s.elapsed }

// slotCenter mirrors the client layout: items are laid out centered in a row.
func (s *SortingSession) slotCenter(slot int) float64 {
	n := float64(len(s.items))
	startX := (sortPlayWidth - (n*(sortItemWidth+sortItemPadding) - sortItemPadding)) / 2
	return startX + float64(slot)*(sortItemWidth+sortItemPadding)
}

// Drop moves itemID to the slot nearest dropX, counts the move, and checks
// the win condition.
func (s *SortingSession) Drop(itemID string, dropX float64) (DropResult, error) {
	result := DropResult{Order: s.CurrentOrder(), MoveCount: s.moveCount}
	if s.state != StatePlaying {
		return result, nil
	}

	from := -1
	for i, item := range s.items {
		if item.ID == itemID {
			from = i
			break
		}
	}
	if from < 0 {
		return result, fmt.Errorf("unknown item %q", itemID)
	}

	target := 0
	best := math.Inf(1)
	for slot := range s.items {
		d := math.Abs(dropX - s.slotCenter(slot))
		if d < best {
			best = d
			target = slot
		}
	}

	moved := s.items[from]
	s.items = append(s.items[:from], s.items[from+1:]...)
	if target > len(s.items) {
		target = len(s.items)
	}
	s.items = append(s.items[:target], append([]SortItem{moved}, s.items[target:]...)...)

	s.moveCount++
	result.Order = s.CurrentOrder()
	result.MoveCount = s.moveCount

	if orderEquals(result.Order, s.correctOrder) {
		s.state = StateWon
		s.elapsed = s.clock().Sub(s.startedAt)
		result.Won = true
		result.Elapsed = s.elapsed
	}
	return result, nil
}
