package gameplay

import (
	"fmt"
	"math/rand"
	"time"
)

// MatchingCard is one face-down card on the board. Two cards share a PairID.
type MatchingCard struct {
	PairID  string `json:"pair_id"`
	Content string `json:"content"`
	FaceUp  bool   `json:"face_up"`
	Matched bool   `json:"matched"`
}

// SelectResult describes what one card selection did to the session.
type SelectResult struct {
	Flipped       bool   `json:"flipped"`
	Matched       bool   `json:"matched"`
	Mismatch      bool   `json:"mismatch"`
	Won           bool   `json:"won"`
	Encouragement string `json:"encouragement,omitempty"`
	MoveCount     int    `json:"move_count"`
	MatchedPairs  int    `json:"matched_pairs"`
}

// MatchingSession is the memory-pairs state machine. Selecting a matched or
// face-up card is a no-op, as is selecting while a mismatched pair is still
// showing; a mismatch stays face-up until ResolveMismatch (the client's
// flip-back delay) clears it.
type MatchingSession struct {
	cards          []MatchingCard
	selected       []int
	moveCount      int
	matchedPairs   int
	totalPairs     int
	mistakes       []string
	encouragements []string
	state          SessionState
	rng            *rand.Rand
}

func NewMatchingSession(params MatchingParams, rng *rand.Rand) (*MatchingSession, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Duplicate each pair, then shuffle the deck.
	deck := make([]MatchingCard, 0, len(params.Pairs)*2)
	for _, p := range params.Pairs {
		deck = append(deck,
			MatchingCard{PairID: p.ID, Content: p.Content},
			MatchingCard{PairID: p.ID, Content: p.Content},
		)
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	encouragements := params.Encouragements
	if len(encouragements) == 0 {
		encouragements = defaultEncouragements
	}

	return &MatchingSession{
		cards:          deck,
		totalPairs:     len(params.Pairs),
		encouragements: encouragements,
		state:          StateLoading,
		rng:            rng,
	}, nil
}

func (s *MatchingSession) Start() {
	if s.state == StateLoading {
		s.state = StatePlaying
	}
}

func (s *MatchingSession) State() SessionState  { return s.state }
func (s *MatchingSession) Cards() []MatchingCard {
	out := make([]MatchingCard, len(s.cards))
	copy(out, s.cards)
	return out
}
func (s *MatchingSession) MoveCount() int    { return s.moveCount }
func (s *MatchingSession) MatchedPairs() int { return s.matchedPairs }
func (s *MatchingSession) Mistakes() []string {
	out := make([]string, len(s.mistakes))
	copy(out, s.mistakes)
	return out
}

// SelectCard flips the card at index and, on the second selection of a turn,
// resolves the pair comparison.
func (s *MatchingSession) SelectCard(index int) (SelectResult, error) {
	result := SelectResult{MoveCount: s.moveCount, MatchedPairs: s.matchedPairs}
	if index < 0 || index >= len(s.cards) {
		return result, fmt.Errorf("card index %d out of range", index)
	}
	if s.state != StatePlaying {
		return result, nil
	}

	card := &s.cards[index]
	if card.FaceUp || card.Matched {
		return result, nil
	}
	if len(s.selected) >= 2 {
		return result, nil
	}

	card.FaceUp = true
	s.selected = append(s.selected, index)
	result.Flipped = true

	if len(s.selected) < 2 {
		return result, nil
	}

	s.moveCount++
	result.MoveCount = s.moveCount

	first := &s.cards[s.selected[0]]
	second := &s.cards[s.selected[1]]
	if first.PairID == second.PairID {
		first.Matched = true
		second.Matched = true
		s.matchedPairs++
		s.selected = s.selected[:0]
		result.Matched = true
		result.MatchedPairs = s.matchedPairs
		result.Encouragement = s.encouragements[s.rng.Intn(len(s.encouragements))]
		if s.matchedPairs == s.totalPairs {
			s.state = StateWon
			result.Won = true
		}
		return result, nil
	}

	s.mistakes = append(s.mistakes, first.Content+"-"+second.Content)
	result.Mismatch = true
	return result, nil
}

// ResolveMismatch flips a pending mismatched pair back down and clears the
// selection. No-op when there is no pending mismatch.
func (s *MatchingSession) ResolveMismatch() {
	if len(s.selected) != 2 {
		return
	}
	first := &s.cards[s.selected[0]]
	second := &s.cards[s.selected[1]]
	if first.Matched || second.Matched {
		return
	}
	first.FaceUp = false
	second.FaceUp = false
	s.selected = s.selected[:0]
}
