package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueBookEntry is one row of the statutory revenue book (KPO). Entries are
// created when an invoice is finalized and carry denormalised invoice and client
// data so later edits to reference data never rewrite the book.
type RevenueBookEntry struct {
	EntryID    string `json:"entryID"`
	FirmID     string `json:"firmID"`
	InvoiceID  string `json:"invoiceID"`
	SequenceNo int    `json:"sequenceNo"` // per firm, per year
	Year       int    `json:"year"`

	InvoiceNumber   string          `json:"invoiceNumber"`
	TransactionDate time.Time       `json:"transactionDate"`
	DueDate         time.Time       `json:"dueDate"`
	ClientName      string          `json:"clientName"`
	ClientTaxID     string          `json:"clientTaxID"`
	Description     string          `json:"description"`
	AmountDomestic  decimal.Decimal `json:"amountDomestic"`
	CurrencyCode    string          `json:"currencyCode"`
	InvoiceStatus   InvoiceStatus   `json:"invoiceStatus"`

	CreatedAt time.Time `json:"createdAt"`
}
