package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/progress"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf        *core.Config
	db          *sql.DB
	progressSvc *progress.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (goose commands)")
	fmt.Println("  grantxp -user USERID -amount N - grant XP to a user")
	fmt.Println("  minttoken -user USERID - mint an access token for a user")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	grantXPCmd := flag.NewFlagSet("grantxp", flag.ExitOnError)
	grantXPUser := grantXPCmd.String("user", "", "The target user's ID.")
	grantXPName := grantXPCmd.String("name", "", "The target user's display name (optional).")
	grantXPEmail := grantXPCmd.String("email", "", "The target user's email (optional).")
	grantXPAmount := grantXPCmd.Int("amount", 0, "The XP amount to grant.")

	mintTokenCmd := flag.NewFlagSet("minttoken", flag.ExitOnError)
	mintTokenUser := mintTokenCmd.String("user", "", "The user's ID.")
	mintTokenName := mintTokenCmd.String("name", "", "The user's display name (optional).")
	mintTokenEmail := mintTokenCmd.String("email", "", "The user's email (optional).")
	mintTokenRoles := mintTokenCmd.String("roles", "student", "Comma-separated roles: student,teacher,admin.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "grantxp":
		if err := grantXPCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *grantXPUser == "" || *grantXPAmount <= 0 {
			grantXPCmd.Usage()
			return errHelp
		}
		return cli.grantXP(*grantXPUser, *grantXPName, *grantXPEmail, *grantXPAmount)
	case "minttoken":
		if err := mintTokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *mintTokenUser == "" {
			mintTokenCmd.Usage()
			return errHelp
		}
		roles := strings.Split(core.CleanString(*mintTokenRoles, true /* lower */), ",")
		return cli.mintToken(*mintTokenUser, *mintTokenName, *mintTokenEmail, roles)
	default:
		cli.printUsage()
		return errHelp
	}
}
