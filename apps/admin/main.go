package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/progress"
	emailsvc "github.com/trezcool/elimu/services/email"
	"github.com/trezcool/elimu/storage/database"
	sqlxrepos "github.com/trezcool/elimu/storage/database/sqlx"
)

var logger *log.Logger // todo: logger service

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig(core.Getwd())
	errAndDie(err)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	progressSvc := progress.NewService(conf, sqlxrepos.NewProgressRepository(sqlx.NewDb(db, "postgres")), emailsvc.NewConsoleService(conf))

	// start CLI
	cli := commandLine{
		conf:        conf,
		db:          db,
		progressSvc: progressSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
