package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind discriminates the document types that share the invoice table.
type InvoiceKind string

const (
	KindStandard InvoiceKind = "STANDARD"
	KindProforma InvoiceKind = "PROFORMA"
	KindAdvance  InvoiceKind = "ADVANCE"
)

// ParseInvoiceKind validates and normalises a kind received from a caller.
func ParseInvoiceKind(s string) (InvoiceKind, error) {
	switch InvoiceKind(s) {
	case KindStandard, KindProforma, KindAdvance:
		return InvoiceKind(s), nil
	}
	return "", fmt.Errorf("unknown invoice kind %q", s)
}

// InvoiceStatus is the lifecycle state of an invoice. Transitions are one-way:
// draft -> issued -> cancelled, plus issued advances -> closed and issued
// proformas -> converted. Only drafts are mutable.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusIssued    InvoiceStatus = "ISSUED"
	StatusCancelled InvoiceStatus = "CANCELLED"
	StatusClosed    InvoiceStatus = "CLOSED"
	StatusConverted InvoiceStatus = "CONVERTED"
)

// SideEffectStatus tracks the progress of PDF generation and email delivery.
// The values past QUEUED are written by the external worker, not by this engine.
type SideEffectStatus string

const (
	SideEffectNone   SideEffectStatus = "NONE"
	SideEffectQueued SideEffectStatus = "QUEUED"
	SideEffectDone   SideEffectStatus = "DONE"
	SideEffectFailed SideEffectStatus = "FAILED"
)

// Invoice is the central document entity.
type Invoice struct {
	InvoiceID string `json:"invoiceID"`
	FirmID    string `json:"firmID"`
	ClientID  string `json:"clientID"`
	AuthorID  string `json:"authorID"`

	Number string        `json:"number"` // DRAFT-{id} until finalized
	Kind   InvoiceKind   `json:"kind"`
	Status InvoiceStatus `json:"status"`

	CurrencyCode  string           `json:"currencyCode"`
	MidRate       *decimal.Decimal `json:"midRate,omitempty"`       // nil for domestic documents
	TotalOrigin   *decimal.Decimal `json:"totalOrigin,omitempty"`   // nil for domestic documents
	TotalDomestic decimal.Decimal  `json:"totalDomestic"`           // always populated, 2 dp

	TransactionDate time.Time  `json:"transactionDate"`
	PaymentTermDays int        `json:"paymentTermDays"`
	DueDate         time.Time  `json:"dueDate"`
	FinalizedAt     *time.Time `json:"finalizedAt,omitempty"`

	// Optional commercial references carried verbatim onto the rendered document.
	ContractNumber  *string `json:"contractNumber,omitempty"`
	DecisionNumber  *string `json:"decisionNumber,omitempty"`
	OrderNumber     *string `json:"orderNumber,omitempty"`
	ReferenceNumber *string `json:"referenceNumber,omitempty"`
	ReferenceModel  *string `json:"referenceModel,omitempty"`

	// Cross-document links. AdvanceInvoiceID and ProformaInvoiceID point at the
	// documents this invoice closes/originates from; LinkedInvoiceID is the
	// back-link set on the counterparty side only.
	AdvanceInvoiceID  *string `json:"advanceInvoiceID,omitempty"`
	ProformaInvoiceID *string `json:"proformaInvoiceID,omitempty"`
	LinkedInvoiceID   *string `json:"linkedInvoiceID,omitempty"`

	CancelReason *string    `json:"cancelReason,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy  *string    `json:"cancelledBy,omitempty"`

	PDFStatus   SideEffectStatus `json:"pdfStatus"`
	EmailStatus SideEffectStatus `json:"emailStatus"`

	Lines []LineItem `json:"lines,omitempty"`

	AuditFields
}

// IsForeign reports whether the invoice is denominated in a non-domestic currency.
func (i *Invoice) IsForeign() bool {
	return i.CurrencyCode != DomesticCurrency
}

// LineItem is a single position on an invoice. Product values are copied, not
// referenced, so deleting a product never invalidates invoice history. A negative
// unit price is legal exactly once per invoice, for the advance-deduction line.
type LineItem struct {
	LineItemID  string           `json:"lineItemID"`
	InvoiceID   string           `json:"invoiceID"`
	ProductID   *string          `json:"productID,omitempty"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Unit        string           `json:"unit"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	Total       decimal.Decimal  `json:"total"` // quantity x unit price
	SequenceNo  int              `json:"sequenceNo"`
}
