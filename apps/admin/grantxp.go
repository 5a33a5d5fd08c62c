package main

import (
	"context"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/progress"
)

// grantXP credits earned XP to a user's progress record,
// creating the record if the user has none yet.
func (cli *commandLine) grantXP(userID, name, email string, amount int) error {
	ident := progress.Identity{
		ID:    core.CleanString(userID),
		Name:  core.CleanString(name),
		Email: core.CleanString(email, true /* lower */),
	}
	rec, err := cli.progressSvc.GrantXP(context.Background(), ident, amount)
	if err != nil {
		return err
	}
	logger.Printf("granted %d XP to %s (total: %d, level: %d)\n", amount, rec.UserID, rec.TotalXP, rec.Level())
	return nil
}
