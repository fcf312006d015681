package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the persistence shape of a domain.Invoice.
type Invoice struct {
	InvoiceID string `json:"invoiceID"`
	FirmID    string `json:"firmID"`
	ClientID  string `json:"clientID"`
	AuthorID  string `json:"authorID"`

	Number string `json:"number"`
	Kind   string `json:"kind"`
	Status string `json:"status"`

	CurrencyCode  string           `json:"currencyCode"`
	MidRate       *decimal.Decimal `json:"midRate,omitempty"`
	TotalOrigin   *decimal.Decimal `json:"totalOrigin,omitempty"`
	TotalDomestic decimal.Decimal  `json:"totalDomestic"`

	TransactionDate time.Time  `json:"transactionDate"`
	PaymentTermDays int        `json:"paymentTermDays"`
	DueDate         time.Time  `json:"dueDate"`
	FinalizedAt     *time.Time `json:"finalizedAt,omitempty"`

	ContractNumber  *string `json:"contractNumber,omitempty"`
	DecisionNumber  *string `json:"decisionNumber,omitempty"`
	OrderNumber     *string `json:"orderNumber,omitempty"`
	ReferenceNumber *string `json:"referenceNumber,omitempty"`
	ReferenceModel  *string `json:"referenceModel,omitempty"`

	AdvanceInvoiceID  *string `json:"advanceInvoiceID,omitempty"`
	ProformaInvoiceID *string `json:"proformaInvoiceID,omitempty"`
	LinkedInvoiceID   *string `json:"linkedInvoiceID,omitempty"`

	CancelReason *string    `json:"cancelReason,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy  *string    `json:"cancelledBy,omitempty"`

	PDFStatus   string `json:"pdfStatus"`
	EmailStatus string `json:"emailStatus"`

	AuditFields
}

// LineItem is the persistence shape of a domain.LineItem.
type LineItem struct {
	LineItemID  string          `json:"lineItemID"`
	InvoiceID   string          `json:"invoiceID"`
	ProductID   *string         `json:"productID,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
	SequenceNo  int             `json:"sequenceNo"`
}
