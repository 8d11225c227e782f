package models

import "time"

// Movie is one contender of a battle. Records are supplied by the movie source and never
// mutated once a battle holds them.
type Movie struct {
	ID     int    `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Poster string `json:"poster" db:"poster"`
	Year   int    `json:"year" db:"year"`
	Plot   string `json:"plot" db:"plot"`

	PosterKey *string `json:"-" db:"poster_key"`
}

// ChampionRecord is written every time a battle crowns a champion.
type ChampionRecord struct {
	ID        int       `json:"id" db:"id"`
	MovieID   int       `json:"movie_id" db:"movie_id"`
	Title     string    `json:"title" db:"title"`
	BattleID  string    `json:"battle_id" db:"battle_id"`
	RoundSize int       `json:"round_size" db:"round_size"`
	CrownedAt time.Time `json:"crowned_at" db:"crowned_at"`
}

// ChampionStanding aggregates champion records per movie.
type ChampionStanding struct {
	MovieID     int       `json:"movie_id" db:"movie_id"`
	Title       string    `json:"title" db:"title"`
	Wins        int       `json:"wins" db:"wins"`
	LastCrowned time.Time `json:"last_crowned" db:"last_crowned"`
}
