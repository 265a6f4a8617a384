package senders

import (
	"context"
	"net/http"

	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/lib/models"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	PlatformEmail = "email"
	PlatformLog   = "log"
)

type Sender interface {
	SendPriceDropAlert(ctx context.Context, recipient string, alert *models.PriceDropAlert) (string, error)
}

type Registry map[string]Sender

func NewSenderRegistry(lc fx.Lifecycle, log *zap.Logger, cfg *config.Config, transport http.RoundTripper) Registry {
	base := base{log, cfg, transport}

	registry := Registry{PlatformLog: &logSender{base}}
	if cfg.MailgunEnabled() {
		registry[PlatformEmail] = newMailgunSender(base)
	} else {
		log.Sugar().Warn("Mailgun is not configured, price drop emails will only be logged")
		registry[PlatformEmail] = registry[PlatformLog]
	}
	return registry
}

type base struct {
	log       *zap.Logger
	cfg       *config.Config
	transport http.RoundTripper
}
