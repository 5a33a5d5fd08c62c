package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/progress"
)

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

var _ progress.Repository = (*progressRepository)(nil)

func (repo *progressRepository) GetRecord(ctx context.Context, userID string) (progress.ProgressRecord, error) {
	var rec progress.ProgressRecord
	err := repo.db.GetContext(ctx, &rec,
		`SELECT user_id, name, email, total_xp, streak_count, last_activity, active_goal_id, updated_at
		 FROM progress_record WHERE user_id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return progress.ProgressRecord{}, progress.ErrNotFound
		}
		return progress.ProgressRecord{}, errors.Wrap(err, "getting record")
	}
	if err = repo.db.SelectContext(ctx, &rec.Goals,
		`SELECT id, title, target, current, unit, daily_target, daily_progress, last_updated, streak, completed, created_at
		 FROM goal WHERE user_id = $1 ORDER BY created_at`, userID); err != nil {
		return progress.ProgressRecord{}, errors.Wrap(err, "getting goals")
	}
	return rec, nil
}

// SaveRecord upserts the record and all of its goals in one transaction.
func (repo *progressRepository) SaveRecord(ctx context.Context, rec progress.ProgressRecord) (progress.ProgressRecord, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return progress.ProgressRecord{}, errors.Wrap(err, "beginning tx")
	}
	defer tx.Rollback()

	if _, err = tx.NamedExecContext(ctx,
		`INSERT INTO progress_record (user_id, name, email, total_xp, streak_count, last_activity, active_goal_id, updated_at)
		 VALUES (:user_id, :name, :email, :total_xp, :streak_count, :last_activity, :active_goal_id, :updated_at)
		 ON CONFLICT (user_id) DO UPDATE
		 SET name = EXCLUDED.name, email = EXCLUDED.email, total_xp = EXCLUDED.total_xp,
		     streak_count = EXCLUDED.streak_count, last_activity = EXCLUDED.last_activity,
		     active_goal_id = EXCLUDED.active_goal_id, updated_at = EXCLUDED.updated_at`, rec); err != nil {
		return progress.ProgressRecord{}, errors.Wrap(err, "upserting record")
	}

	for _, g := range rec.Goals {
		arg := struct {
			progress.Goal
			UserID string `db:"user_id"`
		}{g, rec.UserID}
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO goal (id, user_id, title, target, current, unit, daily_target, daily_progress, last_updated, streak, completed, created_at)
			 VALUES (:id, :user_id, :title, :target, :current, :unit, :daily_target, :daily_progress, :last_updated, :streak, :completed, :created_at)
			 ON CONFLICT (id) DO UPDATE
			 SET title = EXCLUDED.title, target = EXCLUDED.target, current = EXCLUDED.current,
			     daily_target = EXCLUDED.daily_target, daily_progress = EXCLUDED.daily_progress,
			     last_updated = EXCLUDED.last_updated, streak = EXCLUDED.streak, completed = EXCLUDED.completed`, arg); err != nil {
			return progress.ProgressRecord{}, errors.Wrap(err, "upserting goal")
		}
	}

	if err = tx.Commit(); err != nil {
		return progress.ProgressRecord{}, errors.Wrap(err, "committing tx")
	}
	return rec, nil
}

func (repo *progressRepository) TopRecordsByXP(ctx context.Context, limit int) ([]progress.ProgressRecord, error) {
	recs := []progress.ProgressRecord{}
	err := repo.db.SelectContext(ctx, &recs,
		`SELECT user_id, name, email, total_xp, streak_count, last_activity, active_goal_id, updated_at
		 FROM progress_record ORDER BY total_xp DESC, user_id LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying top records")
	}
	return recs, nil
}
