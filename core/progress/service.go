package progress

import (
	"context"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

// streak lengths worth celebrating
var streakMilestones = []int{7, 30}

type (
	// Repository is the opaque record store: load, save, query top.
	// Writes are read-modify-write, last writer wins.
	Repository interface {
		GetRecord(ctx context.Context, userID string) (ProgressRecord, error)
		SaveRecord(ctx context.Context, rec ProgressRecord) (ProgressRecord, error)
		// TopRecordsByXP returns up to limit records ordered by TotalXP descending.
		TopRecordsByXP(ctx context.Context, limit int) ([]ProgressRecord, error)
	}

	// Watcher is implemented by repositories that can push record changes.
	Watcher interface {
		// Subscribe registers onChange for every save of userID's record.
		// The returned unsubscribe func is idempotent and safe to call
		// after the store has been closed.
		Subscribe(userID string, onChange func(ProgressRecord)) (func(), error)
	}

	Service struct {
		conf    *core.Config
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(conf *core.Config, repo Repository, mailSvc core.EmailService) *Service {
	return &Service{
		conf:    conf,
		repo:    repo,
		mailSvc: mailSvc,
	}
}

// GetRecord returns the user's record, created on first use and rolled
// across any elapsed day boundary.
func (svc *Service) GetRecord(ctx context.Context, ident Identity) (ProgressRecord, error) {
	return svc.freshRecord(ctx, ident, Today())
}

// CreateGoal appends a validated goal to the user's record. The first
// goal ever created becomes the active one.
func (svc *Service) CreateGoal(ctx context.Context, ident Identity, ng NewGoal) (Goal, error) {
	today := Today()
	rec, err := svc.freshRecord(ctx, ident, today)
	if err != nil {
		return Goal{}, err
	}

	goal := ng.goal(today)
	rec.setGoal(goal)
	if rec.ActiveGoalID == "" {
		rec.ActiveGoalID = goal.ID
	}
	if _, err := svc.save(ctx, rec); err != nil {
		return Goal{}, err
	}
	return goal, nil
}

// SetActiveGoal selects the goal targeted by progress increments.
// Other goals are left untouched.
func (svc *Service) SetActiveGoal(ctx context.Context, ident Identity, goalID string) (ProgressRecord, error) {
	rec, err := svc.freshRecord(ctx, ident, Today())
	if err != nil {
		return ProgressRecord{}, err
	}
	goal, ok := rec.Goal(goalID)
	if !ok {
		return ProgressRecord{}, ErrGoalNotFound
	}
	rec.ActiveGoalID = goal.ID
	rec.StreakCount = goal.Streak
	return svc.save(ctx, rec)
}

// RecordActiveGoalProgress applies increment to the active goal against
// the freshest stored record; a stale component-local snapshot must never
// be the base of an increment.
func (svc *Service) RecordActiveGoalProgress(ctx context.Context, ident Identity, increment int) (ProgressRecord, error) {
	if increment < 0 {
		return ProgressRecord{}, ErrNegativeIncrement
	}

	today := Today() // one date per evaluation
	rec, err := svc.freshRecord(ctx, ident, today)
	if err != nil {
		return ProgressRecord{}, err
	}
	goal, ok := rec.ActiveGoal()
	if !ok {
		return ProgressRecord{}, ErrGoalNotFound
	}

	prev := goal
	goal, err = RecordDailyProgress(goal, increment, today)
	if err != nil {
		return ProgressRecord{}, err
	}
	rec.setGoal(goal)
	rec.StreakCount = goal.Streak
	rec.LastActivity = today

	rec, err = svc.save(ctx, rec)
	if err != nil {
		return ProgressRecord{}, err
	}

	if goal.Completed && !prev.Completed {
		svc.sendGoalCompleted(rec, goal)
	}
	if goal.Streak != prev.Streak && isStreakMilestone(goal.Streak) {
		svc.sendStreakMilestone(rec, goal)
	}
	return rec, nil
}

// GrantXP adds earned XP to the user's total. Totals only ever grow here;
// explicit resets are an admin concern.
func (svc *Service) GrantXP(ctx context.Context, ident Identity, amount int) (ProgressRecord, error) {
	if amount < 0 {
		return ProgressRecord{}, ErrNegativeXP
	}

	today := Today()
	rec, err := svc.freshRecord(ctx, ident, today)
	if err != nil {
		return ProgressRecord{}, err
	}
	rec.TotalXP += amount
	rec.LastActivity = today
	return svc.save(ctx, rec)
}

// TopByXP returns the leaderboard.
func (svc *Service) TopByXP(ctx context.Context, limit int) ([]ProgressRecord, error) {
	return svc.repo.TopRecordsByXP(ctx, limit)
}

// Subscribe relays record change notifications when the underlying store
// supports them.
func (svc *Service) Subscribe(userID string, onChange func(ProgressRecord)) (func(), error) {
	watcher, ok := svc.repo.(Watcher)
	if !ok {
		return nil, errors.New("record store does not support subscriptions")
	}
	return watcher.Subscribe(userID, onChange)
}

// freshRecord loads (or creates) the record and rolls every goal across
// elapsed day boundaries so increments never apply to yesterday's state.
func (svc *Service) freshRecord(ctx context.Context, ident Identity, today Date) (ProgressRecord, error) {
	rec, err := svc.repo.GetRecord(ctx, ident.ID)
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			return ProgressRecord{}, errors.Wrap(err, "loading record")
		}
		rec = ProgressRecord{UserID: ident.ID, LastActivity: today}
	}
	if ident.Name != "" {
		rec.Name = ident.Name
	}
	if ident.Email != "" {
		rec.Email = ident.Email
	}
	for i := range rec.Goals {
		rec.Goals[i] = rec.Goals[i].Normalized(today)
	}
	if active, ok := rec.ActiveGoal(); ok {
		rec.StreakCount = active.Streak
	}
	return rec, nil
}

func (svc *Service) save(ctx context.Context, rec ProgressRecord) (ProgressRecord, error) {
	rec.UpdatedAt = nowFunc().UTC()
	rec, err := svc.repo.SaveRecord(ctx, rec)
	return rec, errors.Wrap(err, "saving record")
}

func isStreakMilestone(streak int) bool {
	for _, m := range streakMilestones {
		if streak == m {
			return true
		}
	}
	return false
}

func (svc *Service) sendGoalCompleted(rec ProgressRecord, goal Goal) {
	if rec.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: rec.Name, Address: rec.Email}},
		Subject:      "Goal completed!",
		TemplateName: "goal-completed",
		TemplateData: struct {
			Name  string
			Title string
		}{rec.Name, goal.Title},
	})
}

func (svc *Service) sendStreakMilestone(rec ProgressRecord, goal Goal) {
	if rec.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: rec.Name, Address: rec.Email}},
		Subject:      "Streak milestone!",
		TemplateName: "streak-milestone",
		TemplateData: struct {
			Name   string
			Title  string
			Streak int
		}{rec.Name, goal.Title, goal.Streak},
	})
}
