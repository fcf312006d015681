package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueBookEntry is the persistence shape of a domain.RevenueBookEntry.
type RevenueBookEntry struct {
	EntryID    string `json:"entryID"`
	FirmID     string `json:"firmID"`
	InvoiceID  string `json:"invoiceID"`
	SequenceNo int    `json:"sequenceNo"`
	Year       int    `json:"year"`

	InvoiceNumber   string          `json:"invoiceNumber"`
	TransactionDate time.Time       `json:"transactionDate"`
	DueDate         time.Time       `json:"dueDate"`
	ClientName      string          `json:"clientName"`
	ClientTaxID     string          `json:"clientTaxID"`
	Description     string          `json:"description"`
	AmountDomestic  decimal.Decimal `json:"amountDomestic"`
	CurrencyCode    string          `json:"currencyCode"`
	InvoiceStatus   string          `json:"invoiceStatus"`

	CreatedAt time.Time `json:"createdAt"`
}
