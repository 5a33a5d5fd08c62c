package progress

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/elimu/core"
)

// Goal units
const (
	UnitProblems = "problems"
	UnitMinutes  = "minutes"
	UnitDays     = "days"
)

var (
	AllUnits = []string{UnitProblems, UnitMinutes, UnitDays}

	nowFunc = time.Now // mockable
)

// Date is a calendar date in ISO form (YYYY-MM-DD). Day-boundary
// comparisons are string comparisons; no timezone sneaks in.
type Date string

const dateLayout = "2006-01-02"

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Today returns the current calendar date. Resolve it once per evaluation
// and thread it through; never call twice within one update.
func Today() Date {
	return DateOf(nowFunc())
}

func (d Date) IsZero() bool { return d == "" }

func (d Date) Valid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// Next returns the following calendar date.
func (d Date) Next() Date {
	return DateOf(d.Time().AddDate(0, 0, 1))
}

func (d Date) Before(other Date) bool { return d < other }

// Goal is a user-defined long-running objective with both an overall
// target and a per-day target driving the streak.
type Goal struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Target        int       `json:"target" db:"target"`
	Current       int       `json:"current" db:"current"`
	Unit          string    `json:"unit" db:"unit"`
	DailyTarget   int       `json:"daily_target" db:"daily_target"`
	DailyProgress int       `json:"daily_progress" db:"daily_progress"`
	LastUpdated   Date      `json:"last_updated" db:"last_updated"`
	Streak        int       `json:"streak" db:"streak"`
	Completed     bool      `json:"completed" db:"completed"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"` // UTC
}

// DailyTargetMet reports whether today's target has been reached.
func (g Goal) DailyTargetMet() bool {
	return g.DailyProgress >= g.DailyTarget
}

// ProgressRecord is the per-user progress state. Level is always derived
// from TotalXP, never stored.
type ProgressRecord struct {
	UserID       string    `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`   // display name, from the identity provider
	Email        string    `json:"email" db:"email"` // notification address, from the identity provider
	TotalXP      int       `json:"total_xp" db:"total_xp"`
	StreakCount  int       `json:"streak_count" db:"streak_count"`
	LastActivity Date      `json:"last_activity" db:"last_activity"`
	ActiveGoalID string    `json:"active_goal_id,omitempty" db:"active_goal_id"`
	Goals        []Goal    `json:"goals"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// Level derives the record's level from its total XP.
func (r ProgressRecord) Level() int { return LevelForXP(r.TotalXP) }

// LevelProgress derives the progress-bar fraction towards the next level.
func (r ProgressRecord) LevelProgress() float64 { return ProgressFraction(r.TotalXP) }

// Goal returns the goal with the given id, if any.
func (r ProgressRecord) Goal(id string) (Goal, bool) {
	for _, g := range r.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// ActiveGoal returns the goal selected for external progress increments.
func (r ProgressRecord) ActiveGoal() (Goal, bool) {
	if r.ActiveGoalID == "" {
		return Goal{}, false
	}
	return r.Goal(r.ActiveGoalID)
}

func (r *ProgressRecord) setGoal(g Goal) {
	for i := range r.Goals {
		if r.Goals[i].ID == g.ID {
			r.Goals[i] = g
			return
		}
	}
	r.Goals = append(r.Goals, g)
}

// Identity is the stable subject handed to us by the identity provider.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// NewGoal contains information needed to create a new Goal.
type NewGoal struct {
	Title       string `json:"title" validate:"required"`
	Target      int    `json:"target" validate:"required,gt=0"`
	DailyTarget int    `json:"daily_target" validate:"required,gt=0"`
	Unit        string `json:"unit" validate:"required,goalunit"`
}

func (ng *NewGoal) Validate(validate *validator.Validate) error {
	ng.Title = core.CleanString(ng.Title)
	ng.Unit = core.CleanString(ng.Unit, true /* lower */)
	return validate.Struct(ng)
}

func (ng NewGoal) goal(today Date) Goal {
	return Goal{
		ID:          uuid.New().String(),
		Title:       ng.Title,
		Target:      ng.Target,
		Unit:        ng.Unit,
		DailyTarget: ng.DailyTarget,
		LastUpdated: today,
		CreatedAt:   nowFunc().UTC(),
	}
}
