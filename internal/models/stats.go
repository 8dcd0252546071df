package models

import (
	"fmt"
	"time"

	"portalgambit/backend/internal/docstore"
)

// DailyStats aggregates the analytics records of one UTC day.
type DailyStats struct {
	TotalGames      int            `json:"total_games"`
	AverageDuration float64        `json:"average_duration"`
	AverageMoves    float64        `json:"average_moves"`
	WhiteWins       int            `json:"white_wins"`
	BlackWins       int            `json:"black_wins"`
	Draws           int            `json:"draws"`
	Abandoned       int            `json:"abandoned"`
	GameTypes       map[string]int `json:"game_types"`
	TimeControls    map[string]int `json:"time_controls"`
}

func (s DailyStats) ToDocument() docstore.Document {
	return docstore.Document{
		"total_games":      s.TotalGames,
		"average_duration": s.AverageDuration,
		"average_moves":    s.AverageMoves,
		"white_wins":       s.WhiteWins,
		"black_wins":       s.BlackWins,
		"draws":            s.Draws,
		"abandoned":        s.Abandoned,
		"game_types":       intMap(s.GameTypes),
		"time_controls":    intMap(s.TimeControls),
	}
}

func DailyStatsFromDocument(doc docstore.Document) (DailyStats, error) {
	r := doc.Fields()
	s := DailyStats{
		TotalGames:      r.Int("total_games"),
		AverageDuration: r.Float("average_duration"),
		AverageMoves:    r.Float("average_moves"),
		WhiteWins:       r.Int("white_wins"),
		BlackWins:       r.Int("black_wins"),
		Draws:           r.Int("draws"),
		Abandoned:       r.Int("abandoned"),
		GameTypes:       r.IntMap("game_types"),
		TimeControls:    r.IntMap("time_controls"),
	}
	if err := r.Err(); err != nil {
		return DailyStats{}, fmt.Errorf("daily stats: %w", err)
	}
	return s, nil
}

// GlobalStats is the periodically recomputed summary over recent games.
type GlobalStats struct {
	TotalGames          int            `json:"total_games"`
	WhiteWinRate        float64        `json:"white_win_rate"`
	AverageGameDuration float64        `json:"average_game_duration"`
	AverageMovesPerGame float64        `json:"average_moves_per_game"`
	PopularTimeControls map[string]int `json:"popular_time_controls"`
	PopularGameTypes    map[string]int `json:"popular_game_types"`
	LastUpdated         time.Time      `json:"last_updated"`
}

func (s GlobalStats) ToDocument() docstore.Document {
	return docstore.Document{
		"total_games":            s.TotalGames,
		"white_win_rate":         s.WhiteWinRate,
		"average_game_duration":  s.AverageGameDuration,
		"average_moves_per_game": s.AverageMovesPerGame,
		"popular_time_controls":  intMap(s.PopularTimeControls),
		"popular_game_types":     intMap(s.PopularGameTypes),
		"last_updated":           s.LastUpdated,
	}
}

func GlobalStatsFromDocument(doc docstore.Document) (GlobalStats, error) {
	r := doc.Fields()
	s := GlobalStats{
		TotalGames:          r.Int("total_games"),
		WhiteWinRate:        r.Float("white_win_rate"),
		AverageGameDuration: r.Float("average_game_duration"),
		AverageMovesPerGame: r.Float("average_moves_per_game"),
		PopularTimeControls: r.IntMap("popular_time_controls"),
		PopularGameTypes:    r.IntMap("popular_game_types"),
		LastUpdated:         r.Time("last_updated"),
	}
	if err := r.Err(); err != nil {
		return GlobalStats{}, fmt.Errorf("global stats: %w", err)
	}
	return s, nil
}

// RatingPoint is one entry of a player's rating progression.
type RatingPoint struct {
	Timestamp    time.Time `json:"timestamp"`
	RatingChange int       `json:"rating_change"`
}

// ColorPerformance tallies games and wins with one color.
type ColorPerformance struct {
	Games int `json:"games"`
	Wins  int `json:"wins"`
}

// PlayerPerformance summarizes a player's recent analytics records.
type PlayerPerformance struct {
	RatingProgression    []RatingPoint               `json:"rating_progression"`
	AverageGameDuration  float64                     `json:"average_game_duration"`
	PreferredTimeControl *string                     `json:"preferred_time_control"`
	PreferredGameType    *string                     `json:"preferred_game_type"`
	WinRate              float64                     `json:"win_rate"`
	PerformanceByColor   map[string]ColorPerformance `json:"performance_by_color"`
	AverageMovesPerGame  float64                     `json:"average_moves_per_game"`
}

// UserGameStats summarizes a player's archived games over a window.
type UserGameStats struct {
	TotalGames        int     `json:"total_games"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Draws             int     `json:"draws"`
	WhiteGames        int     `json:"white_games"`
	BlackGames        int     `json:"black_games"`
	RatingChange      int     `json:"rating_change"`
	AverageGameLength float64 `json:"average_game_length"`
	TotalMoves        int     `json:"total_moves"`
}

// OpeningStats counts how often an opening sequence was played.
type OpeningStats struct {
	Moves string `json:"moves"`
	Count int    `json:"count"`
	Wins  int    `json:"wins"`
}
