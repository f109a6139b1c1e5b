package model

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// German separators give "1.234,56", the catalog's display format
var pricePrinter = message.NewPrinter(language.German)

// FormatPrice renders a price as "1.234,56 €"
func FormatPrice(p decimal.Decimal) string {
	return pricePrinter.Sprintf("%v €", number.Decimal(p.Round(2).InexactFloat64(), number.Scale(2)))
}

// PlainPrice renders a price as "1234.56€", the format used in notification emails
func PlainPrice(p decimal.Decimal) string {
	return p.StringFixed(2) + "€"
}
