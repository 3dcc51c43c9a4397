// pkg/render/format.go

package render

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencySymbol = "Rs."
	dateLayout     = "2/1/2006"
)

var locale = language.MustParse("en-IN")

// formatter renders amounts and dates. A message.Printer is not shared
// between renders.
type formatter struct {
	p *message.Printer
}

func newFormatter() formatter {
	return formatter{p: message.NewPrinter(locale)}
}

func (f formatter) amount(d decimal.Decimal) string {
	return currencySymbol + " " + f.p.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func (f formatter) negative(d decimal.Decimal) string {
	return "-" + f.amount(d)
}

func (f formatter) percent(d decimal.Decimal) string {
	return d.String() + "%"
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
