package senders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/lib/models"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func testAlert() *models.PriceDropAlert {
	return &models.PriceDropAlert{
		RecipientName:  "Asha",
		PropertyName:   "Sea View Villa",
		ListingID:      42,
		ListingURL:     "https://urbansetu.app/listing/42",
		OriginalPrice:  1_000_000,
		CurrentPrice:   800_000,
		DropAmount:     200_000,
		DropPercentage: 20,
		RunID:          "run-1",
	}
}

func TestNewSenderRegistry_FallsBackToLog(t *testing.T) {
	cfg := &config.Config{}
	registry := NewSenderRegistry(fxtest.NewLifecycle(t), zap.NewNop(), cfg, http.DefaultTransport)

	require.Contains(t, registry, PlatformEmail)
	assert.IsType(t, &logSender{}, registry[PlatformEmail])

	id, err := registry[PlatformEmail].SendPriceDropAlert(context.Background(), "asha@example.com", testAlert())
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestMailgunSender(t *testing.T) {
	var form map[string][]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			assert.ErrorIs(t, err, http.ErrNotMultipart)
		}
		form = r.Form
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"<20261017.1@mg.urbansetu.app>","message":"Queued. Thank you."}`)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Mailgun.Domain = "mg.urbansetu.app"
	cfg.Mailgun.APIKey = "key-123"
	cfg.Mailgun.APIBase = srv.URL + "/v3"
	cfg.Mailgun.SenderFrom = "UrbanSetu <alerts@urbansetu.app>"
	cfg.Mailgun.TimeoutSecs = 5

	registry := NewSenderRegistry(fxtest.NewLifecycle(t), zap.NewNop(), cfg, http.DefaultTransport)
	require.IsType(t, &mailgunSender{}, registry[PlatformEmail])

	id, err := registry[PlatformEmail].SendPriceDropAlert(context.Background(), "asha@example.com", testAlert())
	require.NoError(t, err)

	assert.Equal(t, "<20261017.1@mg.urbansetu.app>", id)
	assert.Equal(t, "/v3/mg.urbansetu.app/messages", path)
	assert.Equal(t, []string{"asha@example.com"}, form["to"])
	assert.Contains(t, form["subject"][0], "Sea View Villa dropped 20%")
	assert.Contains(t, form["html"][0], "Hi Asha,")
	assert.True(t, strings.HasPrefix(form["text"][0], "Hi Asha,"))
	assert.Equal(t, []string{"price-drop"}, form["o:tag"])
	assert.Equal(t, []string{"run-1"}, form["h:X-UrbanSetu-Run"])
}

func TestWebhookReporter(t *testing.T) {
	var got models.AlertResult
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Sweep.ReportWebhookURL = srv.URL
	reporter := NewSweepReporter(fxtest.NewLifecycle(t), zap.NewNop(), cfg, http.DefaultTransport)

	result := &models.AlertResult{Success: true, RunID: "run-1", TotalEntries: 3, SuccessCount: 1, SkippedCount: 2}
	require.NoError(t, reporter.ReportSweep(context.Background(), result))
	assert.Equal(t, *result, got)
}

func TestWebhookReporter_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Sweep.ReportWebhookURL = srv.URL
	reporter := NewSweepReporter(fxtest.NewLifecycle(t), zap.NewNop(), cfg, http.DefaultTransport)

	assert.Error(t, reporter.ReportSweep(context.Background(), &models.AlertResult{}))
}

func TestNewSweepReporter_Disabled(t *testing.T) {
	reporter := NewSweepReporter(fxtest.NewLifecycle(t), zap.NewNop(), &config.Config{}, http.DefaultTransport)
	assert.NoError(t, reporter.ReportSweep(context.Background(), &models.AlertResult{}))
}
