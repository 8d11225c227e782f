package brackets

import (
	"math/rand/v2"

	"github.com/Dosada05/movie-battle/models"
)

// shuffleMovies is an in-place Fisher-Yates shuffle. Every permutation is equally likely
// regardless of the input order.
func shuffleMovies(rng *rand.Rand, movies []models.Movie) {
	for i := len(movies) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		movies[i], movies[j] = movies[j], movies[i]
	}
}

// sampleContenders returns a shuffled copy of pool truncated to at most size entries.
func sampleContenders(rng *rand.Rand, pool []models.Movie, size int) []models.Movie {
	shuffled := make([]models.Movie, len(pool))
	copy(shuffled, pool)
	shuffleMovies(rng, shuffled)

	if size > len(shuffled) {
		size = len(shuffled)
	}
	return shuffled[:size]
}
