package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug    bool
	TestMode bool
	AppName  string
	Env      string
	Build    string

	// BackendBaseURL is the campus REST API this console talks to.
	BackendBaseURL string
	RequestTimeout time.Duration

	// SessionFile is where the operator session is persisted across restarts.
	SessionFile string

	// DiscussionPollInterval drives the class-discussion feed refresh.
	DiscussionPollInterval time.Duration

	RollbarToken string

	Server struct {
		Host string
		Port string
	}
}

// NewConfig loads defaults, an optional config/.env.<env> file and
// ENV-prefixed environment variables, in that order of precedence.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("debug", true)
	v.SetDefault("appName", "CampusConsole")
	v.SetDefault("build", "dev")
	v.SetDefault("backendBaseURL", "http://localhost:8080")
	v.SetDefault("requestTimeout", 15*time.Second)
	v.SetDefault("sessionFile", defaultSessionFile())
	v.SetDefault("discussionPollInterval", 10*time.Second)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverPort", "8000")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:                  v.GetBool("debug"),
		TestMode:               v.GetBool("testMode"),
		AppName:                v.GetString("appName"),
		Env:                    env,
		Build:                  v.GetString("build"),
		BackendBaseURL:         strings.TrimRight(v.GetString("backendBaseURL"), "/"),
		RequestTimeout:         v.GetDuration("requestTimeout"),
		SessionFile:            v.GetString("sessionFile"),
		DiscussionPollInterval: v.GetDuration("discussionPollInterval"),
		RollbarToken:           v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Port = v.GetString("serverPort")
	return conf
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "campus-console", "session.json")
}
