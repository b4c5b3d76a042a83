// Package money renders rupee amounts for customer-facing strings.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter prints integer rupee amounts with locale digit grouping.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter builds a Formatter for a BCP 47 locale; unparsable locales
// fall back to Indian English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("en-IN")
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format renders amount as "₹1,250".
func (f *Formatter) Format(amount int) string {
	return f.printer.Sprintf("₹%d", amount)
}

// Sprintf formats with the locale-aware printer.
func (f *Formatter) Sprintf(format string, args ...interface{}) string {
	return f.printer.Sprintf(format, args...)
}
