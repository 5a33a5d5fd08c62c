package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	// Config holds all application settings. It is explicitly constructed
	// once in main and injected into whatever needs it.
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string // DEV (default), TEST, QA, PROD
		Build            string
		AppName          string
		SecretKey        []byte
		FrontendBaseURL  string
		DefaultFromEmail string
		SendgridAPIKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Quiz     QuizConfig
	}

	ServerConfig struct {
		Host               string
		Addr               string
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}

	// QuizConfig fixes the quiz scoring constants. The values here are
	// definitive: widgets must not ship their own copies.
	QuizConfig struct {
		EasyXP            int
		MediumXP          int
		HardXP            int
		TimeBonusDivisor  int
		StreakThreshold   int
		StreakBonusXP     int
		PerfectBonusXP    int
		HighScoreBonusXP  int
		HighScorePercent  int
		QuestionCountdown int // discrete ticks per question
	}
)

// Address returns the database host:port.
func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Elimu")
	v.SetDefault("secretKey", "n0y3-tch)kpa$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "elimu")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("quiz.easyXP", 10)
	v.SetDefault("quiz.mediumXP", 15)
	v.SetDefault("quiz.hardXP", 20)
	v.SetDefault("quiz.timeBonusDivisor", 3)
	v.SetDefault("quiz.streakThreshold", 3)
	v.SetDefault("quiz.streakBonusXP", 5)
	v.SetDefault("quiz.perfectBonusXP", 25)
	v.SetDefault("quiz.highScoreBonusXP", 10)
	v.SetDefault("quiz.highScorePercent", 80)
	v.SetDefault("quiz.questionCountdown", 30)
}

// NewConfig loads settings from defaults, an optional per-env dotenv file
// and environment variables (prefixed with the current ENV).
func NewConfig(rootDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetDefault("testMode", env == "TEST")
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(rootDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "config.godotenv(%s)", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "config.os.Stat(%s)", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        []byte(v.GetString("secretKey")),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridAPIKey:   v.GetString("sendgridAPIKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			Addr:               v.GetString("server.addr"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Quiz: QuizConfig{
			EasyXP:            v.GetInt("quiz.easyXP"),
			MediumXP:          v.GetInt("quiz.mediumXP"),
			HardXP:            v.GetInt("quiz.hardXP"),
			TimeBonusDivisor:  v.GetInt("quiz.timeBonusDivisor"),
			StreakThreshold:   v.GetInt("quiz.streakThreshold"),
			StreakBonusXP:     v.GetInt("quiz.streakBonusXP"),
			PerfectBonusXP:    v.GetInt("quiz.perfectBonusXP"),
			HighScoreBonusXP:  v.GetInt("quiz.highScoreBonusXP"),
			HighScorePercent:  v.GetInt("quiz.highScorePercent"),
			QuestionCountdown: v.GetInt("quiz.questionCountdown"),
		},
	}
	return conf, nil
}
