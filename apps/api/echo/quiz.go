package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/quiz"
)

type quizApi struct {
	scorer   *quiz.Scorer
	validate *validator.Validate
}

func registerQuizAPI(g *echo.Group, jwt echo.MiddlewareFunc, scorer *quiz.Scorer, validate *validator.Validate) {
	api := quizApi{
		scorer:   scorer,
		validate: validate,
	}

	qg := g.Group("/quiz", jwt)

	qg.POST("/score-question", api.scoreQuestion)
	qg.POST("/finalize", api.finalizeSession)
}

// Handlers

func (api *quizApi) scoreQuestion(ctx echo.Context) error {
	var data ScoreQuestionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScoreQuestionRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	xp, err := api.scorer.ScoreQuestion(data.Difficulty, data.TimeRemaining, data.CurrentStreak)
	if err != nil {
		switch errors.Cause(err) {
		case quiz.ErrUnknownDifficulty:
			return core.NewValidationError(nil, core.FieldError{Field: "difficulty", Error: "must be one of: easy, medium, hard"})
		case quiz.ErrInvalidTimeRemaining:
			return core.NewValidationError(nil, core.FieldError{Field: "time_remaining", Error: "must not be negative"})
		}
		return errors.Wrap(err, "scoring question")
	}
	return ctx.JSON(http.StatusOK, ScoreQuestionResponse{XP: xp})
}

func (api *quizApi) finalizeSession(ctx echo.Context) error {
	var data FinalizeSessionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FinalizeSessionRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	summary, err := api.scorer.FinalizeSession(data.CorrectCount, data.TotalQuestions, data.DurationSeconds)
	if err != nil {
		if errors.Cause(err) == quiz.ErrInvalidSession {
			return core.NewValidationError(errors.New("correct count cannot exceed total questions"))
		}
		return errors.Wrap(err, "finalizing session")
	}
	return ctx.JSON(http.StatusOK, summary)
}
