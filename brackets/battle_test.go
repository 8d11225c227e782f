package brackets

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/Dosada05/movie-battle/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMovies(n int) []models.Movie {
	movies := make([]models.Movie, n)
	for i := range movies {
		movies[i] = models.Movie{
			ID:    i + 1,
			Title: fmt.Sprintf("Movie %c", 'A'+i),
			Year:  1990 + i,
		}
	}
	return movies
}

func seededEngine(seed uint64, opts ...Option) *Engine {
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))}, opts...)
	return NewEngine(opts...)
}

func idsOf(movies []models.Movie) map[int]bool {
	ids := make(map[int]bool, len(movies))
	for _, m := range movies {
		ids[m.ID] = true
	}
	return ids
}

func TestLoadPool_InsufficientData(t *testing.T) {
	cases := []struct {
		name   string
		movies []models.Movie
	}{
		{name: "empty pool", movies: []models.Movie{}},
		{name: "nil pool", movies: nil},
		{name: "single movie", movies: makeMovies(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := seededEngine(1)

			_, err := e.LoadPool(tc.movies)

			require.ErrorIs(t, err, ErrInsufficientData)
			assert.Equal(t, StatusIdle, e.Status())
			snap := e.Snapshot()
			assert.Nil(t, snap.Match)
			assert.Nil(t, snap.Champion)
		})
	}
}

func TestStart_RequiresPool(t *testing.T) {
	e := seededEngine(1)

	_, err := e.Start()

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, StatusIdle, e.Status())
}

func TestStart_EightMoviePool(t *testing.T) {
	pool := makeMovies(8)
	e := seededEngine(7)

	match, err := e.LoadPool(pool)
	require.NoError(t, err)

	poolIDs := idsOf(pool)
	assert.NotEqual(t, match.Left.ID, match.Right.ID)
	assert.True(t, poolIDs[match.Left.ID])
	assert.True(t, poolIDs[match.Right.ID])
	assert.Equal(t, StatusInProgress, e.Status())

	snap := e.Snapshot()
	assert.Equal(t, 8, snap.RoundSize)
	assert.Equal(t, 6, snap.Remaining)
	require.Len(t, e.queue, 6)
	for _, m := range e.queue {
		assert.True(t, poolIDs[m.ID])
		assert.NotEqual(t, match.Left.ID, m.ID)
		assert.NotEqual(t, match.Right.ID, m.ID)
	}
}

func TestStart_DistinctContendersFromPool(t *testing.T) {
	for size := 2; size <= 12; size++ {
		pool := makeMovies(size)
		poolIDs := idsOf(pool)

		for seed := uint64(0); seed < 50; seed++ {
			e := seededEngine(seed)
			match, err := e.LoadPool(pool)
			require.NoError(t, err)

			assert.NotEqual(t, match.Left.ID, match.Right.ID, "pool=%d seed=%d", size, seed)
			assert.True(t, poolIDs[match.Left.ID])
			assert.True(t, poolIDs[match.Right.ID])
		}
	}
}

func TestStart_SmallPoolDegradesRoundSize(t *testing.T) {
	for size := 2; size < DefaultRoundSize; size++ {
		t.Run(fmt.Sprintf("pool of %d", size), func(t *testing.T) {
			e := seededEngine(uint64(size))
			_, err := e.LoadPool(makeMovies(size))
			require.NoError(t, err)

			snap := e.Snapshot()
			assert.Equal(t, size, snap.RoundSize)
			assert.Equal(t, size-2, snap.Remaining)

			seen := map[int]bool{snap.Match.Left.ID: true, snap.Match.Right.ID: true}
			for _, m := range e.queue {
				assert.False(t, seen[m.ID], "movie %d drawn twice", m.ID)
				seen[m.ID] = true
			}
			assert.Len(t, seen, size)
		})
	}
}

func TestStart_LargePoolCapsRoundSize(t *testing.T) {
	e := seededEngine(3)
	_, err := e.LoadPool(makeMovies(40))
	require.NoError(t, err)

	assert.Equal(t, DefaultRoundSize, e.Snapshot().RoundSize)

	e = seededEngine(3, WithRoundSize(16))
	_, err = e.LoadPool(makeMovies(40))
	require.NoError(t, err)

	assert.Equal(t, 16, e.Snapshot().RoundSize)
}

func TestVote_FinishesAfterRoundSizeMinusOneVotes(t *testing.T) {
	for size := 2; size <= 10; size++ {
		t.Run(fmt.Sprintf("pool of %d", size), func(t *testing.T) {
			e := seededEngine(uint64(size) * 31)
			_, err := e.LoadPool(makeMovies(size))
			require.NoError(t, err)

			roundSize := e.Snapshot().RoundSize
			for i := 1; i < roundSize; i++ {
				slot := SlotLeft
				if i%2 == 0 {
					slot = SlotRight
				}
				out, err := e.Vote(slot)
				require.NoError(t, err)
				if i < roundSize-1 {
					assert.Equal(t, StatusInProgress, out.Status, "vote %d", i)
				} else {
					assert.Equal(t, StatusFinished, out.Status, "vote %d", i)
				}
			}

			assert.True(t, e.Finished())
			assert.Equal(t, roundSize-1, e.Snapshot().VotesCast)
		})
	}
}

func TestVote_WinnerKeepsSlotAndLoserNeverReturns(t *testing.T) {
	e := seededEngine(99)
	_, err := e.LoadPool(makeMovies(8))
	require.NoError(t, err)

	eliminated := map[int]bool{}
	slots := []Slot{SlotRight, SlotLeft, SlotLeft, SlotRight, SlotRight, SlotLeft}

	for _, slot := range slots {
		before := e.Snapshot().Match
		require.NotNil(t, before)

		out, err := e.Vote(slot)
		require.NoError(t, err)
		require.Equal(t, StatusInProgress, out.Status)

		assert.Equal(t, before.at(slot), out.Winner)
		assert.Equal(t, before.at(slot), out.Match.at(slot))
		eliminated[out.Eliminated.ID] = true

		assert.False(t, eliminated[out.Match.Left.ID])
		assert.False(t, eliminated[out.Match.Right.ID])
		assert.NotEqual(t, out.Match.Left.ID, out.Match.Right.ID)
		for _, m := range e.queue {
			assert.False(t, eliminated[m.ID], "eliminated movie %d back in queue", m.ID)
		}
	}
}

func TestVote_AlwaysLeftScenario(t *testing.T) {
	pool := makeMovies(8)
	e := seededEngine(2024)
	_, err := e.LoadPool(pool)
	require.NoError(t, err)

	finished := 0
	var survivor models.Movie
	for i := 0; i < 7; i++ {
		survivor = e.Snapshot().Match.Left
		out, err := e.Vote(SlotLeft)
		require.NoError(t, err)
		assert.Equal(t, survivor, out.Winner)
		if out.Status == StatusFinished {
			finished++
			require.NotNil(t, out.Champion)
			assert.Equal(t, survivor, *out.Champion)
		}
	}

	assert.Equal(t, 1, finished)
	assert.True(t, e.Finished())
	assert.Equal(t, survivor, *e.Snapshot().Champion)
	assert.Empty(t, e.queue)
}

func TestVote_InvalidState(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		e := seededEngine(1)

		_, err := e.Vote(SlotLeft)

		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, StatusIdle, e.Status())
	})

	t.Run("finished", func(t *testing.T) {
		e := seededEngine(1)
		_, err := e.LoadPool(makeMovies(2))
		require.NoError(t, err)
		_, err = e.Vote(SlotRight)
		require.NoError(t, err)
		before := e.Snapshot()

		_, err = e.Vote(SlotLeft)

		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, before, e.Snapshot())
	})
}

func TestVote_InvalidSlotDoesNotMutate(t *testing.T) {
	e := seededEngine(5)
	_, err := e.LoadPool(makeMovies(8))
	require.NoError(t, err)
	before := e.Snapshot()

	_, err = e.Vote(Slot("middle"))

	assert.ErrorIs(t, err, ErrInvalidSlot)
	assert.Equal(t, before, e.Snapshot())
}

func TestStart_AfterFinishClearsChampionAndResamples(t *testing.T) {
	e := seededEngine(11)
	_, err := e.LoadPool(makeMovies(3))
	require.NoError(t, err)
	for !e.Finished() {
		_, err := e.Vote(SlotLeft)
		require.NoError(t, err)
	}
	require.NotNil(t, e.Snapshot().Champion)

	match, err := e.Start()
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.Equal(t, StatusInProgress, snap.Status)
	assert.Nil(t, snap.Champion)
	assert.Equal(t, 0, snap.VotesCast)
	assert.Equal(t, match, *snap.Match)
	assert.Len(t, e.Pool(), 3)
}

func TestLoadPool_CopiesInput(t *testing.T) {
	pool := makeMovies(4)
	e := seededEngine(8)
	_, err := e.LoadPool(pool)
	require.NoError(t, err)

	pool[0].Title = "changed"

	for _, m := range e.Pool() {
		assert.NotEqual(t, "changed", m.Title)
	}
}

// Every movie of a 20 movie pool should land in an 8 movie round with probability 8/20.
func TestSampleContenders_UniformInclusion(t *testing.T) {
	const (
		poolSize = 20
		trials   = 40000
	)
	pool := makeMovies(poolSize)
	rng := rand.New(rand.NewPCG(42, 4242))
	counts := make(map[int]int, poolSize)

	for i := 0; i < trials; i++ {
		for _, m := range sampleContenders(rng, pool, DefaultRoundSize) {
			counts[m.ID]++
		}
	}

	expected := float64(trials) * DefaultRoundSize / poolSize
	for _, m := range pool {
		got := float64(counts[m.ID])
		assert.InDelta(t, expected, got, expected*0.05, "movie %d", m.ID)
	}
}

func TestShuffleMovies_PositionUniformity(t *testing.T) {
	const trials = 30000
	rng := rand.New(rand.NewPCG(1, 2))
	base := makeMovies(4)
	firstSlot := make(map[int]int)

	for i := 0; i < trials; i++ {
		movies := make([]models.Movie, len(base))
		copy(movies, base)
		shuffleMovies(rng, movies)
		firstSlot[movies[0].ID]++
	}

	expected := float64(trials) / 4
	for _, m := range base {
		assert.InDelta(t, expected, float64(firstSlot[m.ID]), expected*0.05)
	}
}
