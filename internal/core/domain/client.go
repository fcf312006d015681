package domain

// Client is an invoice recipient registered under a single firm.
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

	// Required before any foreign-currency invoice can be issued to this client.
	IBAN  string `json:"iban,omitempty"`
	SWIFT string `json:"swift,omitempty"`

	AuditFields
}

// HasForeignAccount reports whether the client can receive foreign-currency payments.
func (c *Client) HasForeignAccount() bool {
	return c.IBAN != ""
}
