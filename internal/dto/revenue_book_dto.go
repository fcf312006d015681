package dto

import (
	"time"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RevenueBookEntryResponse is one row of a firm's revenue book.
type RevenueBookEntryResponse struct {
	EntryID         string          `json:"entryID"`
	FirmID          string          `json:"firmID"`
	InvoiceID       string          `json:"invoiceID"`
	SequenceNo      int             `json:"sequenceNo"`
	Year            int             `json:"year"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	TransactionDate time.Time       `json:"transactionDate"`
	DueDate         time.Time       `json:"dueDate"`
	ClientName      string          `json:"clientName"`
	ClientTaxID     string          `json:"clientTaxID"`
	Description     string          `json:"description"`
	AmountDomestic  decimal.Decimal `json:"amountDomestic"`
	CurrencyCode    string          `json:"currencyCode"`
	InvoiceStatus   string          `json:"invoiceStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListRevenueBookResponse is a firm's revenue book for one calendar year. Total
// sums the non-cancelled entries only.
type ListRevenueBookResponse struct {
	Entries []RevenueBookEntryResponse `json:"entries"`
	Total   decimal.Decimal            `json:"total"`
}

// ToRevenueBookEntryResponse converts a domain entry to its response DTO.
func ToRevenueBookEntryResponse(e *domain.RevenueBookEntry) RevenueBookEntryResponse {
	return RevenueBookEntryResponse{
		EntryID:         e.EntryID,
		FirmID:          e.FirmID,
		InvoiceID:       e.InvoiceID,
		SequenceNo:      e.SequenceNo,
		Year:            e.Year,
		InvoiceNumber:   e.InvoiceNumber,
		TransactionDate: e.TransactionDate,
		DueDate:         e.DueDate,
		ClientName:      e.ClientName,
		ClientTaxID:     e.ClientTaxID,
		Description:     e.Description,
		AmountDomestic:  e.AmountDomestic,
		CurrencyCode:    e.CurrencyCode,
		InvoiceStatus:   string(e.InvoiceStatus),
		CreatedAt:       e.CreatedAt,
	}
}
