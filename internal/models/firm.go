package models

// Firm is the persistence shape of a domain.Firm. Bank account lists are stored
// as JSONB and unmarshalled by the repository.
type Firm struct {
	FirmID  string `json:"firmID"`
	TaxID   string `json:"taxID"`
	RegNo   string `json:"regNo"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Email   string `json:"email"`

	DomesticAccounts []byte `json:"-"`
	ForeignAccounts  []byte `json:"-"`

	NumberPrefix    string `json:"numberPrefix"`
	NumberSuffix    string `json:"numberSuffix"`
	CounterStandard int    `json:"counterStandard"`
	CounterProforma int    `json:"counterProforma"`
	CounterAdvance  int    `json:"counterAdvance"`

	IsActive bool `json:"isActive"`
	AuditFields
}

// Client is the persistence shape of a domain.Client.
type Client struct {
	ClientID string `json:"clientID"`
	FirmID   string `json:"firmID"`
	TaxID    string `json:"taxID"`
	RegNo    string `json:"regNo"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Email    string `json:"email"`
	IBAN     string `json:"iban,omitempty"`
	SWIFT    string `json:"swift,omitempty"`
	AuditFields
}
