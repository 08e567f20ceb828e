package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string `mapstructure:"ENV"`
	ServerPort      int    `mapstructure:"SERVER_PORT"`
	DBDSN           string `mapstructure:"DB_DSN"`
	WebhookSecret   string `mapstructure:"WEBHOOK_SECRET"`
	RedisHost       string `mapstructure:"REDIS_HOST"`
	RedisPort       string `mapstructure:"REDIS_PORT"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	SyslogAddr      string `mapstructure:"SYSLOG_ADDR"`
	SyslogAppName   string `mapstructure:"SYSLOG_APP_NAME"`
	RateLimit       int    `mapstructure:"RATE_LIMIT"`
	RateWindowSec   int    `mapstructure:"RATE_WINDOW_SEC"`
	OutboxPollSec   int    `mapstructure:"OUTBOX_POLL_SEC"`
	ReadTimeoutSec  int    `mapstructure:"READ_TIMEOUT_SEC"`
	WriteTimeoutSec int    `mapstructure:"WRITE_TIMEOUT_SEC"`
}

// Load reads .env from path, letting real environment variables override
// file values. A missing file is fine in deployed environments.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "."
	}

	v := viper.New()
	v.AutomaticEnv()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Unmarshal only sees keys viper knows about, and AutomaticEnv alone
	// does not register any. Bind every key so env-only deployments work
	// without a config file.
	for _, key := range []string{
		"ENV", "SERVER_PORT", "DB_DSN", "WEBHOOK_SECRET",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
		"SYSLOG_ADDR", "SYSLOG_APP_NAME",
		"RATE_LIMIT", "RATE_WINDOW_SEC", "OUTBOX_POLL_SEC",
		"READ_TIMEOUT_SEC", "WRITE_TIMEOUT_SEC",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SYSLOG_APP_NAME", "finchpay")
	v.SetDefault("RATE_LIMIT", 300)
	v.SetDefault("RATE_WINDOW_SEC", 60)
	v.SetDefault("OUTBOX_POLL_SEC", 5)
	v.SetDefault("READ_TIMEOUT_SEC", 10)
	v.SetDefault("WRITE_TIMEOUT_SEC", 10)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("config file not read: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate fails fast on the configuration the webhook path cannot run
// without. A service that would accept unsigned webhooks must not start.
func validate(cfg *Config) error {
	if cfg.ServerPort == 0 {
		return fmt.Errorf("server port must be specified")
	}
	if cfg.WebhookSecret == "" {
		return fmt.Errorf("webhook secret must be specified")
	}
	if cfg.DBDSN == "" {
		return fmt.Errorf("database DSN must be specified")
	}
	return nil
}

func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateWindowSec) * time.Second
}

func (c *Config) OutboxPollInterval() time.Duration {
	return time.Duration(c.OutboxPollSec) * time.Second
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSec) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSec) * time.Second
}

// Redact returns a copy safe to log.
func (c *Config) Redact() Config {
	redacted := *c
	redacted.WebhookSecret = "****"
	redacted.DBDSN = "****"
	redacted.RedisPassword = "****"
	return redacted
}
