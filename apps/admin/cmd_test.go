package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"testing"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/progress"
	emailsvc "github.com/trezcool/elimu/services/email"
	inmemdb "github.com/trezcool/elimu/storage/database/inmem"
)

var repo progress.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()

	conf := &core.Config{
		TestMode:  true,
		AppName:   "Elimu",
		SecretKey: []byte("secret sauce"),
	}

	db, _ := inmemdb.Open()
	repo = inmemdb.NewProgressRepository(db)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags)

	return &commandLine{
		conf:        conf,
		progressSvc: progress.NewService(conf, repo, emailsvc.NewConsoleServiceMock(conf)),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "achievement", "sql"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_grantXP(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"grantxp"}, wantErr: errHelp},
		{name: "missing amount", args: []string{"grantxp", "-user", "std-001"}, wantErr: errHelp},
		{name: "missing user", args: []string{"grantxp", "-amount", "50"}, wantErr: errHelp},
		{name: "ok", args: []string{"grantxp", "-user", "std-001", "-name", "Asha", "-amount", "150"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("cli.run() unexpected error = %v", err)
			}

			rec, err := repo.GetRecord(context.Background(), "std-001")
			if err != nil {
				t.Fatalf("GetRecord() failed: %v", err)
			}
			if rec.TotalXP != 150 || rec.Level() != 2 {
				t.Errorf("TotalXP = %d, Level = %d; want 150, 2", rec.TotalXP, rec.Level())
			}
		})
	}
}

func Test_commandLine_mintToken(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no args", args: []string{"minttoken"}, wantErr: errHelp},
		{name: "ok", args: []string{"minttoken", "-user", "std-002", "-roles", "student,teacher"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}
