package models

import (
	"errors"
	"fmt"
	"time"

	"portalgambit/backend/internal/docstore"
)

// GameAnalyticsInput is the payload recorded for a finished game.
type GameAnalyticsInput struct {
	GameID        string       `json:"game_id"`
	WhitePlayerID string       `json:"white_player_id" binding:"required"`
	BlackPlayerID string       `json:"black_player_id" binding:"required"`
	StartTime     time.Time    `json:"start_time" binding:"required"`
	EndTime       time.Time    `json:"end_time" binding:"required"`
	Result        GameResult   `json:"result" binding:"required"`
	Moves         []string     `json:"moves" binding:"required"`
	RatingChange  RatingChange `json:"rating_change"`
	GameType      string       `json:"game_type"`
	TimeControl   TimeControl  `json:"time_control"`
}

func (in GameAnalyticsInput) Validate() error {
	switch {
	case in.GameID == "":
		return errors.New("game_id is required")
	case !in.Result.Valid():
		return fmt.Errorf("unknown result %q", in.Result)
	case in.EndTime.Before(in.StartTime):
		return errors.New("end_time is before start_time")
	}
	return nil
}

// GameAnalytics is the stored per-game analytics record.
type GameAnalytics struct {
	GameID        string       `json:"game_id"`
	Timestamp     time.Time    `json:"timestamp"`
	Duration      float64      `json:"duration"`
	TotalMoves    int          `json:"total_moves"`
	Result        GameResult   `json:"result"`
	WhitePlayerID string       `json:"white_player_id"`
	BlackPlayerID string       `json:"black_player_id"`
	RatingChange  RatingChange `json:"rating_change"`
	GameType      string       `json:"game_type"`
	TimeControl   TimeControl  `json:"time_control"`
}

// AnalyticsID is the document id of a game's analytics record.
func AnalyticsID(gameID string) string {
	return "game_" + gameID
}

// NewGameAnalytics derives the record from the input, stamped at now.
func NewGameAnalytics(in GameAnalyticsInput, now time.Time) GameAnalytics {
	gameType := in.GameType
	if gameType == "" {
		gameType = DefaultGameType
	}
	return GameAnalytics{
		GameID:        in.GameID,
		Timestamp:     now,
		Duration:      in.EndTime.Sub(in.StartTime).Seconds(),
		TotalMoves:    len(in.Moves),
		Result:        in.Result,
		WhitePlayerID: in.WhitePlayerID,
		BlackPlayerID: in.BlackPlayerID,
		RatingChange:  in.RatingChange,
		GameType:      gameType,
		TimeControl:   in.TimeControl,
	}
}

func (a GameAnalytics) ToDocument() docstore.Document {
	return docstore.Document{
		"game_id":         a.GameID,
		"timestamp":       a.Timestamp,
		"duration":        a.Duration,
		"total_moves":     a.TotalMoves,
		"result":          string(a.Result),
		"white_player_id": a.WhitePlayerID,
		"black_player_id": a.BlackPlayerID,
		"rating_change":   a.RatingChange.toMap(),
		"game_type":       a.GameType,
		"time_control":    a.TimeControl.toMap(),
	}
}

func GameAnalyticsFromDocument(doc docstore.Document) (GameAnalytics, error) {
	r := doc.Fields()
	a := GameAnalytics{
		GameID:        r.OptString("game_id"),
		Timestamp:     r.Time("timestamp"),
		Duration:      r.Float("duration"),
		TotalMoves:    r.Int("total_moves"),
		Result:        GameResult(r.String("result")),
		WhitePlayerID: r.String("white_player_id"),
		BlackPlayerID: r.String("black_player_id"),
		RatingChange:  readRatingChange(r),
		GameType:      r.String("game_type"),
		TimeControl:   readTimeControl(r),
	}
	if err := r.Err(); err != nil {
		return GameAnalytics{}, fmt.Errorf("analytics %v: %w", doc["game_id"], err)
	}
	return a, nil
}
