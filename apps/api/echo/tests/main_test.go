package tests

import (
	"os"
	"testing"
	"time"

	. "github.com/trezcool/elimu/apps/api/echo"
	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/progress"
	"github.com/trezcool/elimu/core/quiz"
	emailsvc "github.com/trezcool/elimu/services/email"
	inmemdb "github.com/trezcool/elimu/storage/database/inmem"
)

var (
	conf *core.Config
	app  *Server
	db   *inmemdb.DB
	repo progress.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func TestMain(m *testing.M) {
	conf = &core.Config{
		TestMode:         true,
		AppName:          "Elimu",
		SecretKey:        []byte("secret sauce"),
		DefaultFromEmail: "noreply@elimu.app",
		FrontendBaseURL:  "https://elimu.app",
		Server: core.ServerConfig{
			JWTExpirationDelta: time.Hour,
		},
		Quiz: core.QuizConfig{
			EasyXP:            10,
			MediumXP:          15,
			HardXP:            20,
			TimeBonusDivisor:  3,
			StreakThreshold:   3,
			StreakBonusXP:     5,
			PerfectBonusXP:    25,
			HighScoreBonusXP:  10,
			HighScorePercent:  80,
			QuestionCountdown: 30,
		},
	}

	// set up DB & repos
	db, _ = inmemdb.Open()
	repo = inmemdb.NewProgressRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	progressSvc := progress.NewService(conf, repo, mailSvc)

	validate, translator := core.NewValidator()
	progress.RegisterValidators(validate, translator)

	// set up server
	app = NewServer(
		"", /* addr */
		&Deps{
			Conf:           conf,
			Logger:         nopLogger{},
			ProgressSvc:    progressSvc,
			Scorer:         quiz.NewScorer(conf.Quiz),
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)

	// run tests
	code := m.Run()

	_ = db.Close()
	os.Exit(code)
}
