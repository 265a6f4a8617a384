package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/urbansetu/pricewatch/lib/models"
)

func sampleAlert() *models.PriceDropAlert {
	return &models.PriceDropAlert{
		RecipientName:  "Asha Rao",
		PropertyName:   "Sea View Villa",
		Description:    "3BHK villa with a private garden",
		ImageURL:       "https://cdn.urbansetu.app/villa.jpg",
		PropertyType:   "sale",
		City:           "Visakhapatnam",
		State:          "Andhra Pradesh",
		ListingID:      42,
		ListingURL:     "https://urbansetu.app/listing/42",
		WatchlistDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		OriginalPrice:  1_000_000,
		CurrentPrice:   800_000,
		DropAmount:     200_000,
		DropPercentage: 20,
	}
}

func TestPriceDropEmailFormat(t *testing.T) {
	ef := &PriceDropEmailFormat{Alert: sampleAlert()}

	assert.Contains(t, ef.Subject(), "Sea View Villa dropped 20%")
	assert.NotContains(t, ef.Subject(), "[Test]")

	body := ef.Body()
	assert.Contains(t, body, "Hi Asha Rao,")
	assert.Contains(t, body, `src="https://cdn.urbansetu.app/villa.jpg"`)
	assert.Contains(t, body, "(20% off)")
	assert.Contains(t, body, "1 Sep 2026")
	assert.Contains(t, body, `href="https://urbansetu.app/listing/42"`)
	assert.NotContains(t, body, "This is a test email")
}

func TestPriceDropEmailFormat_Test(t *testing.T) {
	alert := sampleAlert()
	alert.Test = true
	alert.ImageURL = ""
	ef := &PriceDropEmailFormat{Alert: alert}

	assert.Contains(t, ef.Subject(), "[Test] ")
	assert.Contains(t, ef.Body(), "This is a test email")
	assert.NotContains(t, ef.Body(), "<img")
}

func TestPriceDropEmailFormat_EscapesListingText(t *testing.T) {
	alert := sampleAlert()
	alert.Description = "<script>alert(1)</script>"
	body := (&PriceDropEmailFormat{Alert: alert}).Body()

	assert.NotContains(t, body, "<script>")
}

func TestText(t *testing.T) {
	text := (&PriceDropEmailFormat{Alert: sampleAlert()}).Text()

	assert.Contains(t, text, "Hi Asha Rao, Good news!")
	assert.Contains(t, text, "View listing #42 (https://urbansetu.app/listing/42)")
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "Price drop alert") // head is dropped
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "hello world", PlainText("<html><body><p>hello</p>\n\n  <p>world</p></body></html>"))
	assert.Equal(t, "", PlainText(""))
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹10,00,000", FormatINR(1_000_000))
	assert.Equal(t, "₹1,23,45,678", FormatINR(12_345_678))
	assert.Equal(t, "₹99,999", FormatINR(99_999))
	assert.Equal(t, "₹500", FormatINR(499.6))
}
