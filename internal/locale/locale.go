// Package locale derives page direction and number formatting from the
// catalog's locale tag.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// rtlScripts are the scripts written right to left.
var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Syrc": true,
	"Thaa": true,
	"Nkoo": true,
	"Adlm": true,
}

// Locale formats values for one language.
type Locale struct {
	tag     language.Tag
	printer *message.Printer
}

// Parse builds a Locale from a BCP 47 tag. Unparseable tags fall back to
// Hebrew.
func Parse(tag string) Locale {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.Hebrew
	}
	return Locale{tag: t, printer: message.NewPrinter(t)}
}

// Lang returns the value for the html lang attribute.
func (l Locale) Lang() string {
	base, _ := l.tag.Base()
	return base.String()
}

// Dir returns "rtl" or "ltr" for the html dir attribute.
func (l Locale) Dir() string {
	if l.RTL() {
		return "rtl"
	}
	return "ltr"
}

// RTL reports whether the locale's script runs right to left.
func (l Locale) RTL() bool {
	script, _ := l.tag.Script()
	return rtlScripts[script.String()]
}

// Price formats a whole shekel amount, e.g. "₪1,250".
func (l Locale) Price(shekels int) string {
	return "₪" + l.printer.Sprintf("%d", shekels)
}

// Number formats n with the locale's digit grouping.
func (l Locale) Number(n int) string {
	return l.printer.Sprintf("%d", n)
}
