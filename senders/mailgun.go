package senders

import (
	"context"
	"net/http"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/urbansetu/pricewatch/lib/models"
	"github.com/urbansetu/pricewatch/senders/email"
)

type mailgunSender struct {
	base
	mg *mailgun.MailgunImpl
}

func newMailgunSender(b base) *mailgunSender {
	mg := mailgun.NewMailgun(b.cfg.Mailgun.Domain, b.cfg.Mailgun.APIKey)
	if b.cfg.Mailgun.APIBase != "" {
		mg.SetAPIBase(b.cfg.Mailgun.APIBase)
	}
	mg.SetClient(&http.Client{Transport: b.transport})
	return &mailgunSender{b, mg}
}

func (e *mailgunSender) SendPriceDropAlert(ctx context.Context, recipient string, alert *models.PriceDropAlert) (string, error) {
	ef := &email.PriceDropEmailFormat{Alert: alert}

	// Plain text goes in first, SetHtml adds the alternative part.
	message := e.mg.NewMessage(e.cfg.Mailgun.SenderFrom, ef.Subject(), ef.Text(), recipient)
	message.SetHtml(ef.Body())

	tag := "price-drop"
	if alert.Test {
		tag = "test"
	}
	if err := message.AddTag(tag); err != nil {
		return "", err
	}
	if err := message.AddVariable("listing_id", alert.ListingID); err != nil {
		return "", err
	}
	if alert.RunID != "" {
		message.AddHeader("X-UrbanSetu-Run", alert.RunID)
	}

	timeout := time.Duration(e.cfg.Mailgun.TimeoutSecs) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, id, err := e.mg.Send(ctx, message)
	return id, err
}
