package lib

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/lib/dbtest"
	"github.com/urbansetu/pricewatch/lib/models"
	"github.com/urbansetu/pricewatch/senders"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sentAlert struct {
	recipient string
	alert     *models.PriceDropAlert
}

type fakeSender struct {
	mu       sync.Mutex
	sent     []sentAlert
	failFor  map[string]error
	panicFor string
	// afterSend runs with the number of alerts delivered so far.
	afterSend func(delivered int)
}

func (f *fakeSender) SendPriceDropAlert(ctx context.Context, recipient string, alert *models.PriceDropAlert) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if recipient == f.panicFor {
		panic("template exploded")
	}
	if err := f.failFor[recipient]; err != nil {
		return "", err
	}
	f.sent = append(f.sent, sentAlert{recipient, alert})
	if f.afterSend != nil {
		f.afterSend(len(f.sent))
	}
	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

type fakeReporter struct {
	results []*models.AlertResult
	err     error
}

func (r *fakeReporter) ReportSweep(ctx context.Context, result *models.AlertResult) error {
	r.results = append(r.results, result)
	return r.err
}

type fixture struct {
	svc      *Service
	db       *gorm.DB
	sender   *fakeSender
	reporter *fakeReporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{ClientURL: "https://urbansetu.app"}
	cfg.Database.BatchSize = 2

	db := dbtest.Open(t)
	sender := &fakeSender{failFor: map[string]error{}}
	reporter := &fakeReporter{}
	registry := senders.Registry{senders.PlatformEmail: sender}

	svc := NewService(fxtest.NewLifecycle(t), cfg, zap.NewNop(), db, registry, reporter)
	return &fixture{svc, db, sender, reporter}
}

func assertTotals(t *testing.T, result *models.AlertResult) {
	t.Helper()
	if result.TotalEntries != result.SuccessCount+result.ErrorCount+result.SkippedCount {
		t.Fatalf("totals do not add up: %+v", result)
	}
}

var errMailbox = errors.New("mailbox unavailable")
