package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/progress"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type progressApi struct {
	svc      *progress.Service
	validate *validator.Validate
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *progress.Service, validate *validator.Validate) {
	api := progressApi{
		svc:      svc,
		validate: validate,
	}

	pg := g.Group("/progress", jwt)

	pg.GET("", api.retrieve)
	pg.GET("/leaderboard", api.leaderboard)
	pg.POST("/goals", api.createGoal)
	pg.PUT("/goals/:id/activate", api.activateGoal)
	pg.POST("/goals/increment", api.increment)
	pg.POST("/xp", api.grantXP, staffMiddleware())
}

// Handlers

func (api *progressApi) retrieve(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	rec, err := api.svc.GetRecord(ctx.Request().Context(), ident)
	if err != nil {
		return errors.Wrap(err, "getting record")
	}
	return ctx.JSON(http.StatusOK, newRecordResponse(rec))
}

func (api *progressApi) createGoal(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var data progress.NewGoal
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGoal")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	goal, err := api.svc.CreateGoal(ctx.Request().Context(), ident, data)
	if err != nil {
		return errors.Wrap(err, "creating goal")
	}
	return ctx.JSON(http.StatusCreated, goal)
}

func (api *progressApi) activateGoal(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	rec, err := api.svc.SetActiveGoal(ctx.Request().Context(), ident, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == progress.ErrGoalNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "activating goal")
	}
	return ctx.JSON(http.StatusOK, newRecordResponse(rec))
}

func (api *progressApi) increment(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var data IncrementRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IncrementRequest")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.RecordActiveGoalProgress(ctx.Request().Context(), ident, data.Amount)
	if err != nil {
		switch errors.Cause(err) {
		case progress.ErrGoalNotFound:
			return core.NewValidationError(errors.New("no active goal"))
		case progress.ErrNegativeIncrement:
			return core.NewValidationError(nil, core.FieldError{Field: "amount", Error: "must not be negative"})
		}
		return errors.Wrap(err, "recording progress")
	}
	return ctx.JSON(http.StatusOK, newRecordResponse(rec))
}

func (api *progressApi) grantXP(ctx echo.Context) error {
	var data GrantXPRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GrantXPRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ident := progress.Identity{ID: data.UserID, Name: data.Name, Email: data.Email}
	rec, err := api.svc.GrantXP(ctx.Request().Context(), ident, data.Amount)
	if err != nil {
		if errors.Cause(err) == progress.ErrNegativeXP {
			return core.NewValidationError(nil, core.FieldError{Field: "amount", Error: "must not be negative"})
		}
		return errors.Wrap(err, "granting XP")
	}
	return ctx.JSON(http.StatusOK, newRecordResponse(rec))
}

func (api *progressApi) leaderboard(ctx echo.Context) error {
	limit := defaultLeaderboardLimit
	if rawLimit := ctx.QueryParam("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			return core.NewValidationError(nil, core.FieldError{Field: "limit", Error: "must be a positive integer"})
		}
		limit = parsed
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	recs, err := api.svc.TopByXP(ctx.Request().Context(), limit)
	if err != nil {
		return errors.Wrap(err, "querying leaderboard")
	}

	entries := make([]LeaderboardEntry, 0, len(recs))
	for i, rec := range recs {
		entries = append(entries, LeaderboardEntry{
			Rank:    i + 1,
			UserID:  rec.UserID,
			Name:    rec.Name,
			TotalXP: rec.TotalXP,
			Level:   rec.Level(),
		})
	}
	return ctx.JSON(http.StatusOK, entries)
}
