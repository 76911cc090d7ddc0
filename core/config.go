package core

import (
	"fmt"
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName          string
		Env              string // DEV (local; default), TEST, QA, PROD
		Build            string
		Debug            bool
		TestMode         bool
		SecretKey        string
		FrontendBaseURL  string
		WorkDir          string
		RollbarToken     string
		SendgridAPIKey   string
		defaultFromEmail string

		Server    ServerConfig
		Database  DatabaseConfig
		AI        AIConfig
		Redis     RedisConfig
		Reminders ReminderConfig
	}

	ServerConfig struct {
		Host                      string
		Port                      string
		DebugHost                 string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		ShutdownTimeout           time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	AIConfig struct {
		Provider          string // ollama | openai | mock
		BaseURL           string
		APIKey            string
		Model             string
		MaxTokens         int
		Temperature       float64
		TopP              float64
		Timeout           time.Duration
		CareerPlanTimeout time.Duration
		MaxRetries        int
		MaxConcurrent     int
	}

	RedisConfig struct {
		URL      string
		CacheTTL time.Duration
	}

	ReminderConfig struct {
		PollInterval time.Duration
		Workers      int
	}
)

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: "noreply@localhost"}
	}
	return *addr
}

func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

// NewConfig loads the configuration from the environment, optionally seeded by `config/.env.<env>`.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("appName", "StudyWise")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("secretKey", "x4k&u9t!2b@r#ovy^0d8f)s1w_qe=gz$hmpjn7l+c5%3ia6")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "StudyWise <noreply@localhost>")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")

	v.SetDefault("serverHost", "")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("debugHost", "localhost:4000")
	v.SetDefault("jwtExpirationDelta", 30*time.Minute)
	v.SetDefault("jwtRefreshExpirationDelta", 7*24*time.Hour)
	v.SetDefault("shutdownTimeout", 5*time.Second)

	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", "5432")
	v.SetDefault("dbName", "studywise")
	v.SetDefault("dbUser", "studywise")
	v.SetDefault("dbPassword", "")
	v.SetDefault("dbAdminUser", "postgres")
	v.SetDefault("dbAdminPassword", "")
	v.SetDefault("dbDisableTLS", true)

	v.SetDefault("aiProvider", "ollama")
	v.SetDefault("aiBaseURL", "http://localhost:11434")
	v.SetDefault("aiApiKey", "")
	v.SetDefault("aiModel", "orca-mini-3b-gguf2-q4_0")
	v.SetDefault("aiMaxTokens", 800)
	v.SetDefault("aiTemperature", 0.7)
	v.SetDefault("aiTopP", 0.9)
	v.SetDefault("aiTimeout", 120*time.Second)
	v.SetDefault("aiCareerPlanTimeout", 60*time.Second)
	v.SetDefault("aiMaxRetries", 2)
	v.SetDefault("aiMaxConcurrent", 2)

	v.SetDefault("redisUrl", "")
	v.SetDefault("redisCacheTtl", 6*time.Hour)

	v.SetDefault("reminderPollInterval", time.Minute)
	v.SetDefault("reminderWorkers", 4)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	wd := Getwd()
	loadDotEnv(filepath.Join(wd, "config", ".env."+strings.ToLower(env)))
	v.AutomaticEnv()

	return &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         env == "TEST",
		SecretKey:        v.GetString("secretKey"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		WorkDir:          wd,
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		defaultFromEmail: v.GetString("defaultFromEmail"),
		Server: ServerConfig{
			Host:                      v.GetString("serverHost"),
			Port:                      v.GetString("serverPort"),
			DebugHost:                 v.GetString("debugHost"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
			ShutdownTimeout:           v.GetDuration("shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("dbEngine"),
			Host:          v.GetString("dbHost"),
			Port:          v.GetString("dbPort"),
			Name:          v.GetString("dbName"),
			User:          v.GetString("dbUser"),
			Password:      v.GetString("dbPassword"),
			AdminUser:     v.GetString("dbAdminUser"),
			AdminPassword: v.GetString("dbAdminPassword"),
			DisableTLS:    v.GetBool("dbDisableTLS"),
		},
		AI: AIConfig{
			Provider:          v.GetString("aiProvider"),
			BaseURL:           v.GetString("aiBaseURL"),
			APIKey:            v.GetString("aiApiKey"),
			Model:             v.GetString("aiModel"),
			MaxTokens:         v.GetInt("aiMaxTokens"),
			Temperature:       v.GetFloat64("aiTemperature"),
			TopP:              v.GetFloat64("aiTopP"),
			Timeout:           v.GetDuration("aiTimeout"),
			CareerPlanTimeout: v.GetDuration("aiCareerPlanTimeout"),
			MaxRetries:        v.GetInt("aiMaxRetries"),
			MaxConcurrent:     v.GetInt("aiMaxConcurrent"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("redisUrl"),
			CacheTTL: v.GetDuration("redisCacheTtl"),
		},
		Reminders: ReminderConfig{
			PollInterval: v.GetDuration("reminderPollInterval"),
			Workers:      v.GetInt("reminderWorkers"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests: no env lookups, mock AI.
func NewTestConfig() *Config {
	return &Config{
		AppName:          "StudyWise",
		Env:              "TEST",
		Build:            "test",
		TestMode:         true,
		SecretKey:        "test-secret-key",
		FrontendBaseURL:  "http://localhost:3000",
		defaultFromEmail: "StudyWise <noreply@localhost>",
		Server: ServerConfig{
			JWTExpirationDelta:        30 * time.Minute,
			JWTRefreshExpirationDelta: 7 * 24 * time.Hour,
			ShutdownTimeout:           time.Second,
		},
		AI: AIConfig{
			Provider:          "mock",
			Model:             "mock",
			MaxTokens:         800,
			Temperature:       0.7,
			TopP:              0.9,
			Timeout:           time.Second,
			CareerPlanTimeout: time.Second,
			MaxRetries:        1,
			MaxConcurrent:     2,
		},
		Reminders: ReminderConfig{
			PollInterval: time.Second,
			Workers:      2,
		},
	}
}

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			log.Fatal(fmt.Sprintf("config.godotenv(%s): %v", path, err))
		}
	} else if !os.IsNotExist(err) {
		log.Fatal(fmt.Sprintf("config.os.Stat(%s): %v", path, err))
	}
}
