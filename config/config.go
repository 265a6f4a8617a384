package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Config struct {
	Env            string        `env:"ENVIRONMENT" envDefault:"development"`
	ServerPort     int           `env:"SERVER_PORT" envDefault:"8080"`
	ClientURL      string        `env:"CLIENT_URL" envDefault:"http://localhost:5173"`
	BasicAuthCreds string        `env:"BASIC_AUTH_CREDS"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5m"`

	Database struct {
		Driver    string `env:"DB_DRIVER" envDefault:"sqlite"`
		DSN       string `env:"DB_DSN" envDefault:"urbansetu.sqlite"`
		BatchSize int    `env:"WATCHLIST_BATCH_SIZE" envDefault:"100"`
	}
	Mailgun struct {
		Domain      string `env:"MAILGUN_DOMAIN"`
		APIKey      string `env:"MAILGUN_API_KEY"`
		APIBase     string `env:"MAILGUN_API_BASE"`
		SenderFrom  string `env:"MAILGUN_SENDER_FROM" envDefault:"UrbanSetu <alerts@urbansetu.app>"`
		TimeoutSecs int    `env:"MAILGUN_TIMEOUT_SECS" envDefault:"10"`
	}
	Sweep struct {
		Interval         time.Duration `env:"SWEEP_INTERVAL" envDefault:"0s"`
		Timeout          time.Duration `env:"SWEEP_TIMEOUT" envDefault:"10m"`
		ReportWebhookURL string        `env:"SWEEP_REPORT_WEBHOOK_URL"`
	}

	creds map[string]string
}

func NewConfig(lc fx.Lifecycle, log *zap.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Sugar().Warnw("Failed to load .env file", "err", err)
	}
	return Load(log)
}

// Load parses the process environment. Outside development, basic auth
// credentials are mandatory.
func Load(log *zap.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	creds, err := cfg.parseCreds()
	if err != nil {
		if !cfg.IsDevelopment() {
			return nil, err
		}
		log.Sugar().Infof("%s (auth stays disabled in development)", err)
		creds = map[string]string{}
	}
	cfg.creds = creds

	return cfg, nil
}

func (cfg *Config) IsDevelopment() bool {
	return cfg.Env == "" || cfg.Env == "development"
}

func (cfg *Config) GetCreds() map[string]string {
	return cfg.creds
}

func (cfg *Config) MailgunEnabled() bool {
	return cfg.Mailgun.Domain != "" && cfg.Mailgun.APIKey != ""
}

func (cfg *Config) ListingURL(listingID uint) string {
	return fmt.Sprintf("%s/listing/%d", strings.TrimRight(cfg.ClientURL, "/"), listingID)
}

func (cfg *Config) parseCreds() (map[string]string, error) {
	if cfg.BasicAuthCreds == "" {
		return nil, errors.New("BASIC_AUTH_CREDS envvar must be populated")
	}

	creds := strings.Split(cfg.BasicAuthCreds, ",")

	result := make(map[string]string)
	for _, cred := range creds {
		userPass := strings.Split(cred, ":")
		if len(userPass) != 2 {
			return nil, fmt.Errorf("failed to parse '%s', each credential should be delimited by a colon -- user1:pass1,user2:pass2", cred)
		}

		user, pass := userPass[0], userPass[1]
		result[strings.Trim(user, " ")] = strings.Trim(pass, " ")
	}

	return result, nil
}
