package senders

import (
	"context"
	"net/http"

	"github.com/carlmjohnson/requests"
	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/lib/models"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// SweepReporter publishes the outcome of a completed sweep.
type SweepReporter interface {
	ReportSweep(ctx context.Context, result *models.AlertResult) error
}

func NewSweepReporter(lc fx.Lifecycle, log *zap.Logger, cfg *config.Config, transport http.RoundTripper) SweepReporter {
	if cfg.Sweep.ReportWebhookURL == "" {
		return nopReporter{}
	}
	return &webhookReporter{base{log, cfg, transport}, cfg.Sweep.ReportWebhookURL}
}

type nopReporter struct{}

func (nopReporter) ReportSweep(ctx context.Context, result *models.AlertResult) error { return nil }

type webhookReporter struct {
	base
	url string
}

func (w *webhookReporter) ReportSweep(ctx context.Context, result *models.AlertResult) error {
	return requests.URL(w.url).
		Transport(w.transport).
		BodyJSON(result).
		Post().
		CheckStatus(http.StatusOK, http.StatusAccepted, http.StatusNoContent).
		Fetch(ctx)
}
