package email

import (
	_ "embed"
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"github.com/urbansetu/pricewatch/lib/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

	funcs = template.FuncMap{
		"inr":  FormatINR,
		"date": func(t time.Time) string { return t.Format("2 Jan 2006") },
	}

	//go:embed price_drop.html
	priceDropHTML     string
	priceDropTemplate = template.Must(template.New("price_drop.html").Funcs(funcs).Parse(priceDropHTML))
)

func mustFillTemplate(tmpl *template.Template, values any) string {
	buf := new(strings.Builder)
	err := tmpl.Execute(buf, values)
	if err != nil {
		return ""
	}
	return buf.String()
}

// FormatINR renders a rupee amount with Indian digit grouping, e.g. ₹10,00,000.
func FormatINR(amount float64) string {
	return inrPrinter.Sprintf("₹%d", int64(math.Round(amount)))
}

type PriceDropEmailFormat struct {
	Alert *models.PriceDropAlert
}

func (ef *PriceDropEmailFormat) Subject() string {
	subject := fmt.Sprintf(
		"UrbanSetu: %s dropped %d%% to %s",
		ef.Alert.PropertyName, ef.Alert.DropPercentage, FormatINR(ef.Alert.CurrentPrice),
	)
	if ef.Alert.Test {
		subject = "[Test] " + subject
	}
	return subject
}

func (ef *PriceDropEmailFormat) Body() string {
	return mustFillTemplate(priceDropTemplate, ef)
}

// Text is the plain-text alternative of Body.
func (ef *PriceDropEmailFormat) Text() string {
	return PlainText(ef.Body())
}
