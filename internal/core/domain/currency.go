package domain

// DomesticCurrency is the currency all invoice totals are ultimately expressed in.
const DomesticCurrency = "RSD"

// ForeignCurrencies is the fixed set of currencies the national bank rate list covers.
var ForeignCurrencies = []string{"EUR", "USD", "GBP", "CHF"}

// IsSupportedCurrency reports whether code is the domestic currency or one of the
// supported foreign ones.
func IsSupportedCurrency(code string) bool {
	if code == DomesticCurrency {
		return true
	}
	return IsForeignCurrency(code)
}

// IsForeignCurrency reports whether code is one of the supported foreign currencies.
func IsForeignCurrency(code string) bool {
	for _, c := range ForeignCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
