package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/progress"
)

// RecordResponse is a ProgressRecord enriched with its derived level state.
type RecordResponse struct {
	progress.ProgressRecord
	Level         int     `json:"level"`
	LevelProgress float64 `json:"level_progress"`
	XPToNextLevel int     `json:"xp_to_next_level"`
}

func newRecordResponse(rec progress.ProgressRecord) RecordResponse {
	return RecordResponse{
		ProgressRecord: rec,
		Level:          rec.Level(),
		LevelProgress:  rec.LevelProgress(),
		XPToNextLevel:  progress.XPToNextLevel(rec.TotalXP),
	}
}

type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	TotalXP int    `json:"total_xp"`
	Level   int    `json:"level"`
}

type IncrementRequest struct {
	Amount int `json:"amount" validate:"gte=0"`
}

func (r *IncrementRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

type GrantXPRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name"`
	Email  string `json:"email" validate:"omitempty,email"`
	Amount int    `json:"amount" validate:"gte=0"`
}

func (r *GrantXPRequest) Validate(validate *validator.Validate) error {
	r.UserID = core.CleanString(r.UserID)
	r.Email = core.CleanString(r.Email, true /* lower */)
	return validate.Struct(r)
}

type ScoreQuestionRequest struct {
	Difficulty    string `json:"difficulty" validate:"required"`
	TimeRemaining int    `json:"time_remaining" validate:"gte=0"`
	CurrentStreak int    `json:"current_streak" validate:"gte=0"`
}

func (r *ScoreQuestionRequest) Validate(validate *validator.Validate) error {
	r.Difficulty = core.CleanString(r.Difficulty, true /* lower */)
	return validate.Struct(r)
}

type ScoreQuestionResponse struct {
	XP int `json:"xp"`
}

type FinalizeSessionRequest struct {
	CorrectCount    int `json:"correct_count" validate:"gte=0"`
	TotalQuestions  int `json:"total_questions" validate:"required,gt=0"`
	DurationSeconds int `json:"duration_seconds" validate:"gte=0"`
}

func (r *FinalizeSessionRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}
