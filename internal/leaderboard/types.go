package leaderboard

import (
	"database/sql"
	"sync"

	"github.com/sasgl/league-api/internal/league"
)

// store handles all database operations for leaderboards.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Standing is one row of a club's best-4 leaderboard. Scores holds the
// player's counted rounds, best first; Total is their sum.
type Standing struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Scores []int  `json:"scores"`
	Total  int    `json:"total"`
}

// LeagueDetail pairs a league with its per-player aggregate leaderboard.
type LeagueDetail struct {
	League      league.Event `json:"league"`
	Leaderboard []Row        `json:"leaderboard"`
}

// Row is a league leaderboard entry read from the running aggregates.
type Row struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	GamesPlayed int     `json:"games_played"`
	Points      int     `json:"points"`
	Birdies     int     `json:"birdies"`
	AvgPoints   float64 `json:"avg_points"`
}

// countedRounds is how many of a player's best rounds make up their total.
const countedRounds = 4
