package gameplay

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	catchPlayWidth  = 800.0
	catchPlayHeight = 600.0

	// An object is caught when it is inside this radius of the catcher and
	// below the capture line near the bottom of the play area.
	captureRadius = 60.0
	captureBand   = 100.0

	catchReward = 10

	objectMargin = 40.0
	tickInterval = 50 * time.Millisecond
)

var fallDurations = map[FallSpeed]time.Duration{
	SpeedSlow:   4000 * time.Millisecond,
	SpeedMedium: 2500 * time.Millisecond,
	SpeedFast:   1500 * time.Millisecond,
}

var spawnIntervals = map[SpawnRate]time.Duration{
	SpawnLow:    2500 * time.Millisecond,
	SpawnMedium: 1500 * time.Millisecond,
	SpawnHigh:   800 * time.Millisecond,
}

// FallingObject is one spawned object in flight. X and Y are play-area
// coordinates with the origin at the top left.
type FallingObject struct {
	ID      int     `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	SpawnX  float64 `json:"-"`
	Spawned time.Time
}

// CatchEvent reports one captured object.
type CatchEvent struct {
	ObjectID      int    `json:"object_id"`
	Score         int    `json:"score"`
	Effect        string `json:"effect,omitempty"`
	Encouragement string `json:"encouragement"`
	Won           bool   `json:"won"`
}

// CatchSession is the falling-object arcade runtime. Unlike the turn-based
// sessions it advances on a clock: Step moves every object along its fall
// pattern, captures those near the catcher and drops those past the floor.
// All methods are safe for concurrent use; Run drives Step on a ticker until
// the context is cancelled, the session is won, or Close is called.
type CatchSession struct {
	mu sync.Mutex

	params       CatchParams
	objects      []FallingObject
	nextID       int
	catcherX     float64
	score        int
	state        SessionState
	fallDuration time.Duration
	spawnEvery   time.Duration
	lastSpawn    time.Time

	encouragements []string
	rng            *rand.Rand

	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

func NewCatchSession(params CatchParams, rng *rand.Rand) (*CatchSession, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	fall := fallDurations[params.FallSpeed]
	if params.FallPattern == FallFloating {
		// Floating objects drift and take half again as long to land.
		fall = fall * 3 / 2
	}

	return &CatchSession{
		params:         params,
		catcherX:       catchPlayWidth / 2,
		state:          StateLoading,
		fallDuration:   fall,
		spawnEvery:     spawnIntervals[params.SpawnRate],
		encouragements: defaultEncouragements,
		rng:            rng,
		done:           make(chan struct{}),
	}, nil
}

func (s *CatchSession) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		s.state = StatePlaying
	}
}

func (s *CatchSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CatchSession) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *CatchSession) Objects() []FallingObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FallingObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// MoveCatcher sets the catcher's x position, clamped to the play area.
func (s *CatchSession) MoveCatcher(x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 {
		x = 0
	}
	if x > catchPlayWidth {
		x = catchPlayWidth
	}
	s.catcherX = x
}

// Spawn puts a new object at the top of the play area. Run calls this on the
// configured spawn cadence; tests call it directly.
func (s *CatchSession) Spawn(now time.Time) *FallingObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return nil
	}
	obj := FallingObject{
		ID:      s.nextID,
		X:       objectMargin + s.rng.Float64()*(catchPlayWidth-2*objectMargin),
		Y:       0,
		Spawned: now,
	}
	obj.SpawnX = obj.X
	s.nextID++
	s.lastSpawn = now
	s.objects = append(s.objects, obj)
	return &obj
}

// Step advances every object to its position at now, captures objects within
// reach of the catcher and removes objects that fell past the floor. Missed
// objects never cost points.
func (s *CatchSession) Step(now time.Time) []CatchEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return nil
	}

	var events []CatchEvent
	kept := s.objects[:0]
	for i, obj := range s.objects {
		progress := float64(now.Sub(obj.Spawned)) / float64(s.fallDuration)
		obj.Y = progress * catchPlayHeight
		obj.X = s.objectX(obj, progress)

		if s.caught(obj) {
			s.score += catchReward
			ev := CatchEvent{
				ObjectID:      obj.ID,
				Score:         s.score,
				Effect:        s.params.SpecialEffect,
				Encouragement: s.encouragements[s.rng.Intn(len(s.encouragements))],
			}
			events = append(events, ev)
			if s.params.TargetScore > 0 && s.score >= s.params.TargetScore {
				// Won is terminal: nothing past this point may score,
				// so the remaining objects freeze in place.
				s.state = StateWon
				events[len(events)-1].Won = true
				kept = append(kept, s.objects[i+1:]...)
				break
			}
			continue
		}
		if obj.Y > catchPlayHeight {
			continue
		}
		kept = append(kept, obj)
	}
	s.objects = kept
	return events
}

func (s *CatchSession) objectX(obj FallingObject, progress float64) float64 {
	switch s.params.FallPattern {
	case FallZigzag:
		return clampX(obj.SpawnX + 60*math.Sin(progress*4*math.Pi))
	case FallFloating:
		return clampX(obj.SpawnX + 30*math.Sin(progress*2*math.Pi))
	default:
		// Straight and spinning fall in a vertical line; spin is a
		// client-side visual.
		return obj.SpawnX
	}
}

func clampX(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > catchPlayWidth {
		return catchPlayWidth
	}
	return x
}

func (s *CatchSession) caught(obj FallingObject) bool {
	if obj.Y <= catchPlayHeight-captureBand || obj.Y > catchPlayHeight {
		return false
	}
	return math.Abs(obj.X-s.catcherX) < captureRadius
}

// Run drives the session on a ticker until the context ends, the target score
// is reached, or Close is called. Events are delivered to onEvent in tick
// order; a nil onEvent discards them.
func (s *CatchSession) Run(ctx context.Context, onEvent func(CatchEvent)) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.mu.Lock()
				due := s.lastSpawn.IsZero() || now.Sub(s.lastSpawn) >= s.spawnEvery
				s.mu.Unlock()
				if due {
					s.Spawn(now)
				}
				for _, ev := range s.Step(now) {
					if onEvent != nil {
						onEvent(ev)
					}
					if ev.Won {
						return
					}
				}
			}
		}
	}()
}

// Close stops the run loop and waits for it to exit. It is idempotent and
// safe to call whether or not Run was started.
func (s *CatchSession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-s.done
	}
}
