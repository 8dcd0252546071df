package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"portalgambit/backend/internal/docstore"
)

// GameResult is the final outcome of a game.
type GameResult string

const (
	ResultWhiteWin  GameResult = "white_win"
	ResultBlackWin  GameResult = "black_win"
	ResultDraw      GameResult = "draw"
	ResultAbandoned GameResult = "abandoned"
)

const (
	DefaultInitialPosition = "standard"
	DefaultGameType        = "portal_gambit"
)

func (r GameResult) Valid() bool {
	switch r {
	case ResultWhiteWin, ResultBlackWin, ResultDraw, ResultAbandoned:
		return true
	}
	return false
}

// Decisive reports whether one side won.
func (r GameResult) Decisive() bool {
	return r == ResultWhiteWin || r == ResultBlackWin
}

// Outcomes maps the result to the white and black player outcomes.
// Abandoned games count as a draw for both sides.
func (r GameResult) Outcomes() (white, black Outcome) {
	switch r {
	case ResultWhiteWin:
		return OutcomeWin, OutcomeLoss
	case ResultBlackWin:
		return OutcomeLoss, OutcomeWin
	}
	return OutcomeDraw, OutcomeDraw
}

// TimeControl is the clock setting in seconds.
type TimeControl struct {
	Initial   int `json:"initial"`
	Increment int `json:"increment"`
}

// String formats the time control as "initial/increment".
func (tc TimeControl) String() string {
	return fmt.Sprintf("%d/%d", tc.Initial, tc.Increment)
}

// RatingChange holds the rating delta applied to each side.
type RatingChange struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// For returns the delta for the given side.
func (rc RatingChange) For(white bool) int {
	if white {
		return rc.White
	}
	return rc.Black
}

// GameHistory is an archived, immutable game record.
type GameHistory struct {
	GameID          string       `json:"game_id" binding:"required"`
	WhitePlayerID   string       `json:"white_player_id" binding:"required"`
	BlackPlayerID   string       `json:"black_player_id" binding:"required"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         time.Time    `json:"end_time" binding:"required"`
	Result          GameResult   `json:"result" binding:"required"`
	WinnerID        *string      `json:"winner_id"`
	Moves           []string     `json:"moves" binding:"required"`
	InitialPosition string       `json:"initial_position"`
	WhiteRating     int          `json:"white_rating"`
	BlackRating     int          `json:"black_rating"`
	RatingChange    RatingChange `json:"rating_change"`
	GameType        string       `json:"game_type"`
	TimeControl     TimeControl  `json:"time_control"`
}

// ApplyDefaults fills the optional fields that have a documented default.
func (g *GameHistory) ApplyDefaults(now time.Time) {
	if g.StartTime.IsZero() {
		g.StartTime = now
	}
	if g.InitialPosition == "" {
		g.InitialPosition = DefaultInitialPosition
	}
	if g.GameType == "" {
		g.GameType = DefaultGameType
	}
	if g.Moves == nil {
		g.Moves = []string{}
	}
}

// Validate checks the fields a stored game must have.
func (g GameHistory) Validate() error {
	var problems []string
	if g.GameID == "" {
		problems = append(problems, "game_id is required")
	}
	if g.WhitePlayerID == "" || g.BlackPlayerID == "" {
		problems = append(problems, "both player ids are required")
	}
	if !g.Result.Valid() {
		problems = append(problems, fmt.Sprintf("unknown result %q", g.Result))
	}
	if g.EndTime.IsZero() {
		problems = append(problems, "end_time is required")
	} else if g.EndTime.Before(g.StartTime) {
		problems = append(problems, "end_time is before start_time")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Duration is the wall-clock length of the game.
func (g GameHistory) Duration() time.Duration {
	return g.EndTime.Sub(g.StartTime)
}

// IsParticipant reports whether uid played either side.
func (g GameHistory) IsParticipant(uid string) bool {
	return uid == g.WhitePlayerID || uid == g.BlackPlayerID
}

func (g GameHistory) ToDocument() docstore.Document {
	return docstore.Document{
		"game_id":          g.GameID,
		"white_player_id":  g.WhitePlayerID,
		"black_player_id":  g.BlackPlayerID,
		"start_time":       g.StartTime,
		"end_time":         g.EndTime,
		"result":           string(g.Result),
		"winner_id":        optString(g.WinnerID),
		"moves":            nonNil(g.Moves),
		"initial_position": g.InitialPosition,
		"white_rating":     g.WhiteRating,
		"black_rating":     g.BlackRating,
		"rating_change":    g.RatingChange.toMap(),
		"game_type":        g.GameType,
		"time_control":     g.TimeControl.toMap(),
	}
}

func GameHistoryFromDocument(doc docstore.Document) (GameHistory, error) {
	r := doc.Fields()
	g := GameHistory{
		GameID:          r.String("game_id"),
		WhitePlayerID:   r.String("white_player_id"),
		BlackPlayerID:   r.String("black_player_id"),
		StartTime:       r.Time("start_time"),
		EndTime:         r.Time("end_time"),
		Result:          GameResult(r.String("result")),
		WinnerID:        ptrString(r.OptString("winner_id")),
		Moves:           r.Strings("moves"),
		InitialPosition: r.OptString("initial_position"),
		WhiteRating:     r.Int("white_rating"),
		BlackRating:     r.Int("black_rating"),
		RatingChange:    readRatingChange(r),
		GameType:        r.OptString("game_type"),
		TimeControl:     readTimeControl(r),
	}
	if err := r.Err(); err != nil {
		return GameHistory{}, fmt.Errorf("game %v: %w", doc["game_id"], err)
	}
	if g.InitialPosition == "" {
		g.InitialPosition = DefaultInitialPosition
	}
	if g.GameType == "" {
		g.GameType = DefaultGameType
	}
	return g, nil
}

func (rc RatingChange) toMap() map[string]any {
	return map[string]any{"white": rc.White, "black": rc.Black}
}

func (tc TimeControl) toMap() map[string]any {
	return map[string]any{"initial": tc.Initial, "increment": tc.Increment}
}

func readRatingChange(r *docstore.FieldReader) RatingChange {
	sub := r.Sub("rating_change", false)
	rc := RatingChange{White: sub.OptInt("white", 0), Black: sub.OptInt("black", 0)}
	r.Merge("rating_change", sub)
	return rc
}

func readTimeControl(r *docstore.FieldReader) TimeControl {
	sub := r.Sub("time_control", true)
	tc := TimeControl{Initial: sub.Int("initial"), Increment: sub.Int("increment")}
	r.Merge("time_control", sub)
	return tc
}
