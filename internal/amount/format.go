package amount

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotAvailable is shown when a record has no amount.
const NotAvailable = "N/A"

// printer formats numbers with es-ES separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.Spanish)

// FormatEUR formats v as euros in the es-ES style, e.g. "1.234.567,50 €".
func FormatEUR(v float64) string {
	return printer.Sprintf("%v €", number.Decimal(v, number.Scale(2)))
}

// FormatEURWhole formats v as whole euros, the style used for regional totals.
func FormatEURWhole(v float64) string {
	return printer.Sprintf("%v €", number.Decimal(math.Round(v), number.Scale(0)))
}

// FormatOptional formats v, or NotAvailable when v is nil.
func FormatOptional(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return FormatEUR(*v)
}

// FormatCount formats an integer count with es-ES grouping.
func FormatCount(n int64) string {
	return printer.Sprintf("%v", number.Decimal(n))
}

// Display returns the formatted best amount of a record, or NotAvailable.
func Display(v float64, ok bool) string {
	if !ok {
		return NotAvailable
	}
	return FormatEUR(v)
}
