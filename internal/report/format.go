package report

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jask/taxsheet/internal/taxform"
)

// Options controls value formatting.
type Options struct {
	CurrencySymbol string
	Locale         string
}

func DefaultOptions() Options {
	return Options{CurrencySymbol: "$", Locale: "en-AU"}
}

type formatter struct {
	currency string
	printer  *message.Printer
}

func newFormatter(opts Options) formatter {
	tag, err := language.Parse(opts.Locale)
	if err != nil {
		tag = language.English
	}
	return formatter{currency: opts.CurrencySymbol, printer: message.NewPrinter(tag)}
}

func (f formatter) money(v float64) string {
	return f.currency + f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

func (f formatter) plain(v float64) string {
	return f.printer.Sprint(number.Decimal(v))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// value renders a record value for display.
func (f formatter) value(field taxform.Field, v any) string {
	switch field.Kind {
	case taxform.KindBool:
		b, _ := v.(bool)
		return yesNo(b)
	case taxform.KindInteger:
		n, _ := v.(float64)
		return strconv.FormatInt(int64(n), 10)
	case taxform.KindNumber:
		n, _ := v.(float64)
		switch field.Unit {
		case taxform.UnitMoney:
			return f.money(n)
		case taxform.UnitPercent:
			return f.plain(n) + "%"
		case taxform.UnitKilometres:
			return f.plain(n) + " km"
		}
		return f.plain(n)
	case taxform.KindChoice:
		s, _ := v.(string)
		return blank(field.OptionLabel(s))
	default:
		s, _ := v.(string)
		return blank(s)
	}
}

func blank(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
