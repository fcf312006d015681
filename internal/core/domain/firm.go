package domain

// BankAccount is one entry of a firm's account list, stored denormalised on the
// firm row.
type BankAccount struct {
	Bank          string `json:"bank"`
	AccountNumber string `json:"accountNumber"`
	IBAN          string `json:"iban,omitempty"`
	SWIFT         string `json:"swift,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// Firm is the tenant: a lump-sum taxpayer company whose documents and numbering
// counters are isolated from every other firm.
type Firm struct {
	FirmID  string `json:"firmID"`
	TaxID   string `json:"taxID"` // PIB
	RegNo   string `json:"regNo"` // maticni broj
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Email   string `json:"email"`

	DomesticAccounts []BankAccount `json:"domesticAccounts"`
	ForeignAccounts  []BankAccount `json:"foreignAccounts,omitempty"`

	// Numbering configuration. Counters hold the next number to assign for each
	// kind; they advance only during finalization.
	NumberPrefix    string `json:"numberPrefix"`
	NumberSuffix    string `json:"numberSuffix"`
	CounterStandard int    `json:"counterStandard"`
	CounterProforma int    `json:"counterProforma"`
	CounterAdvance  int    `json:"counterAdvance"`

	IsActive bool `json:"isActive"`
	AuditFields
}

// CounterFor returns the stored counter for the given invoice kind.
func (f *Firm) CounterFor(kind InvoiceKind) int {
	switch kind {
	case KindProforma:
		return f.CounterProforma
	case KindAdvance:
		return f.CounterAdvance
	default:
		return f.CounterStandard
	}
}
