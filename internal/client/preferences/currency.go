package preferences

import "slices"

// Currency is the display form of a currency label.
type Currency struct {
	Code   string
	Symbol string
}

// DefaultCurrencyLabel is the profile currency of a fresh user.
const DefaultCurrencyLabel = "USD - US Dollar ($)"

// currencies maps the labels offered by the profile form to their code and
// display symbol. The symbol is not always the one in the label.
var currencies = map[string]Currency{
	"USD - US Dollar ($)":          {Code: "USD", Symbol: "$"},
	"EUR - Euro (€)":               {Code: "EUR", Symbol: "€"},
	"GBP - British Pound (£)":      {Code: "GBP", Symbol: "£"},
	"JPY - Japanese Yen (¥)":       {Code: "JPY", Symbol: "¥"},
	"CNY - Chinese Yuan (¥)":       {Code: "CNY", Symbol: "¥"},
	"INR - Indian Rupee (₹)":       {Code: "INR", Symbol: "₹"},
	"CAD - Canadian Dollar (C$)":   {Code: "CAD", Symbol: "C$"},
	"AUD - Australian Dollar (A$)": {Code: "AUD", Symbol: "A$"},
	"CHF - Swiss Franc (CHF)":      {Code: "CHF", Symbol: "CHF"},
	"ZAR - South African Rand (R)": {Code: "ZAR", Symbol: "R"},
	"NGN - Nigerian Naira (₦)":     {Code: "NGN", Symbol: "₦"},
	"KES - Kenyan Shilling (KSh)":  {Code: "KES", Symbol: "KSh"},
	"GHS - Ghanaian Cedi (₵)":      {Code: "GHS", Symbol: "₵"},
	"ZMW - Zambian Kwacha (ZK)":    {Code: "ZMW", Symbol: "K"},
	"BRL - Brazilian Real (R$)":    {Code: "BRL", Symbol: "R$"},
}

// LookupCurrency resolves a currency label.
func LookupCurrency(label string) (Currency, bool) {
	c, ok := currencies[label]
	return c, ok
}

// CurrencyLabels returns every supported label.
func CurrencyLabels() []string {
	labels := make([]string, 0, len(currencies))
	for l := range currencies {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}
