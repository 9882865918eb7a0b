package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	SMTP struct {
		Host     string `yaml:"host" env:"SMTPHOST"`
		Port     int    `yaml:"port" env:"SMTPPORT" env-default:"25"`
		Username string `yaml:"username" env:"SMTPUSERNAME"`
		Password string `yaml:"password" env:"SMTPPASSWORD"`
		Sender   string `yaml:"sender" env:"SMTPSENDER"`
	} `yaml:"smtp"`
	Limiter struct {
		Enabled bool    `yaml:"enabled" env:"LIMITER_ENABLED" env-default:"true"`
		RPS     float64 `yaml:"rps" env:"LIMITER_RPS" env-default:"2"`
		Burst   int     `yaml:"burst" env:"LIMITER_BURST" env-default:"4"`
		// Store selects the scoped-throttle counter backend: "memory" or "redis".
		Store     string `yaml:"store" env:"LIMITER_STORE" env-default:"memory"`
		RedisAddr string `yaml:"redis_addr" env:"LIMITER_REDIS_ADDR" env-default:"localhost:6379"`
		// Per-scope quotas: requests per window. A zero request count
		// disables throttling for that scope.
		ReviewCreate   ScopeQuota `yaml:"review_create" env-prefix:"LIMITER_REVIEW_CREATE_"`
		ReviewList     ScopeQuota `yaml:"review_list" env-prefix:"LIMITER_REVIEW_LIST_"`
		ReviewListAnon ScopeQuota `yaml:"review_list_anon" env-prefix:"LIMITER_REVIEW_LIST_ANON_"`
		ReviewDetail   ScopeQuota `yaml:"review_detail" env-prefix:"LIMITER_REVIEW_DETAIL_"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICS_ENABLED"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"BASICAUTH_USERNAME"`
		Password string `yaml:"password" env:"BASICAUTH_PASSWORD"`
	} `yaml:"basic_auth"`
}

// ScopeQuota is a request budget for one throttle scope.
type ScopeQuota struct {
	Requests int    `yaml:"requests" env:"REQUESTS"`
	Window   string `yaml:"window" env:"WINDOW" env-default:"1m"`
}

// Decode reads configuration from config.yml (if present) and overrides it
// with environment variables. A local .env file is loaded first when it
// exists so development settings don't need to be exported by hand.
func Decode() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	err := cleanenv.ReadConfig("config.yml", &cfg)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		err = cleanenv.ReadEnv(&cfg)
		if err != nil {
			return Config{}, err
		}
	}
	cfg.applyQuotaDefaults()
	return cfg, nil
}

// applyQuotaDefaults fills in the stock throttle quotas for any scope the
// configuration leaves unset. Review creation gets the tightest budget.
func (c *Config) applyQuotaDefaults() {
	if c.Limiter.ReviewCreate.Requests == 0 {
		c.Limiter.ReviewCreate = ScopeQuota{Requests: 5, Window: "1h"}
	}
	if c.Limiter.ReviewList.Requests == 0 {
		c.Limiter.ReviewList = ScopeQuota{Requests: 60, Window: "1m"}
	}
	if c.Limiter.ReviewListAnon.Requests == 0 {
		c.Limiter.ReviewListAnon = ScopeQuota{Requests: 20, Window: "1m"}
	}
	if c.Limiter.ReviewDetail.Requests == 0 {
		c.Limiter.ReviewDetail = ScopeQuota{Requests: 30, Window: "1m"}
	}
}
