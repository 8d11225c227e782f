package brackets

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Dosada05/movie-battle/models"
)

// DefaultRoundSize is the number of contenders sampled from the pool for one round.
const DefaultRoundSize = 8

var (
	ErrInsufficientData = errors.New("at least two movies are required to start a battle")
	ErrInvalidState     = errors.New("operation not allowed in the current battle state")
	ErrInvalidSlot      = errors.New("winner slot must be left or right")
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

type Slot string

const (
	SlotLeft  Slot = "left"
	SlotRight Slot = "right"
)

func (s Slot) Valid() bool {
	return s == SlotLeft || s == SlotRight
}

// Match is the pairing currently presented for a vote.
type Match struct {
	Left  models.Movie `json:"left"`
	Right models.Movie `json:"right"`
}

func (m Match) at(slot Slot) models.Movie {
	if slot == SlotLeft {
		return m.Left
	}
	return m.Right
}

func (m *Match) put(slot Slot, movie models.Movie) {
	if slot == SlotLeft {
		m.Left = movie
		return
	}
	m.Right = movie
}

// Outcome describes the result of a single vote.
type Outcome struct {
	Status     Status
	Winner     models.Movie
	Eliminated models.Movie
	Match      *Match        // set while the battle is still in progress
	Champion   *models.Movie // set once the battle is finished
}

// Snapshot is a read-only view of the engine used for rendering.
type Snapshot struct {
	Status    Status
	RoundSize int
	Remaining int
	VotesCast int
	Match     *Match
	Champion  *models.Movie
}

type Option func(*Engine)

// WithRoundSize overrides DefaultRoundSize. Values below two are ignored.
func WithRoundSize(n int) Option {
	return func(e *Engine) {
		if n >= 2 {
			e.roundSize = n
		}
	}
}

// WithRand sets the random source used for sampling contenders.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// Engine runs one elimination battle at a time: the winner of every match stays in its slot
// and faces the next contender popped from the queue until the queue runs dry.
// Engine is not safe for concurrent use.
type Engine struct {
	pool      []models.Movie
	queue     []models.Movie
	match     Match
	champion  *models.Movie
	status    Status
	roundSize int
	sampled   int
	votes     int
	rng       *rand.Rand
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		status:    StatusIdle,
		roundSize: DefaultRoundSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

// LoadPool stores the movies available to every following round and starts the first one.
// A pool with fewer than two movies leaves the engine untouched.
func (e *Engine) LoadPool(movies []models.Movie) (Match, error) {
	if len(movies) < 2 {
		return Match{}, fmt.Errorf("%w: got %d", ErrInsufficientData, len(movies))
	}

	e.pool = make([]models.Movie, len(movies))
	copy(e.pool, movies)

	return e.Start()
}

// Start samples a new round from the pool. Champions and losers of earlier rounds are
// eligible again.
func (e *Engine) Start() (Match, error) {
	if len(e.pool) < 2 {
		return Match{}, ErrInvalidState
	}

	e.queue = sampleContenders(e.rng, e.pool, e.roundSize)
	e.sampled = len(e.queue)
	e.votes = 0
	e.champion = nil

	left := e.pop()
	right := e.pop()
	e.match = Match{Left: left, Right: right}
	e.status = StatusInProgress

	return e.match, nil
}

// Vote eliminates the movie opposite winner. The next contender takes the loser's slot; when
// none is left the winner is crowned and the engine is finished.
func (e *Engine) Vote(winner Slot) (Outcome, error) {
	if e.status != StatusInProgress {
		return Outcome{}, ErrInvalidState
	}
	if !winner.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidSlot, winner)
	}

	loserSlot := SlotRight
	if winner == SlotRight {
		loserSlot = SlotLeft
	}

	out := Outcome{
		Winner:     e.match.at(winner),
		Eliminated: e.match.at(loserSlot),
	}
	e.votes++

	if len(e.queue) == 0 {
		champion := out.Winner
		e.champion = &champion
		e.status = StatusFinished

		out.Status = StatusFinished
		out.Champion = &champion
		return out, nil
	}

	e.match.put(loserSlot, e.pop())

	match := e.match
	out.Status = StatusInProgress
	out.Match = &match
	return out, nil
}

func (e *Engine) Status() Status { return e.status }

func (e *Engine) Finished() bool { return e.status == StatusFinished }

// Pool returns a copy of the loaded pool.
func (e *Engine) Pool() []models.Movie {
	pool := make([]models.Movie, len(e.pool))
	copy(pool, e.pool)
	return pool
}

func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Status:    e.status,
		RoundSize: e.sampled,
		Remaining: len(e.queue),
		VotesCast: e.votes,
	}
	switch e.status {
	case StatusInProgress:
		match := e.match
		snap.Match = &match
	case StatusFinished:
		champion := *e.champion
		snap.Champion = &champion
	}
	return snap
}

// pop removes the contender at the tail of the queue.
func (e *Engine) pop() models.Movie {
	last := len(e.queue) - 1
	movie := e.queue[last]
	e.queue = e.queue[:last]
	return movie
}
