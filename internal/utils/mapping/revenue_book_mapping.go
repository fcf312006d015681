package mapping

import (
	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/obveznik/obveznik_backend/internal/models"
)

// ToModelRevenueBookEntry converts a domain RevenueBookEntry to its model shape.
func ToModelRevenueBookEntry(d domain.RevenueBookEntry) models.RevenueBookEntry {
	return models.RevenueBookEntry{
		EntryID:         d.EntryID,
		FirmID:          d.FirmID,
		InvoiceID:       d.InvoiceID,
		SequenceNo:      d.SequenceNo,
		Year:            d.Year,
		InvoiceNumber:   d.InvoiceNumber,
		TransactionDate: d.TransactionDate,
		DueDate:         d.DueDate,
		ClientName:      d.ClientName,
		ClientTaxID:     d.ClientTaxID,
		Description:     d.Description,
		AmountDomestic:  d.AmountDomestic,
		CurrencyCode:    d.CurrencyCode,
		InvoiceStatus:   string(d.InvoiceStatus),
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainRevenueBookEntry converts a model RevenueBookEntry to its domain shape.
func ToDomainRevenueBookEntry(m models.RevenueBookEntry) domain.RevenueBookEntry {
	return domain.RevenueBookEntry{
		EntryID:         m.EntryID,
		FirmID:          m.FirmID,
		InvoiceID:       m.InvoiceID,
		SequenceNo:      m.SequenceNo,
		Year:            m.Year,
		InvoiceNumber:   m.InvoiceNumber,
		TransactionDate: m.TransactionDate,
		DueDate:         m.DueDate,
		ClientName:      m.ClientName,
		ClientTaxID:     m.ClientTaxID,
		Description:     m.Description,
		AmountDomestic:  m.AmountDomestic,
		CurrencyCode:    m.CurrencyCode,
		InvoiceStatus:   domain.InvoiceStatus(m.InvoiceStatus),
		CreatedAt:       m.CreatedAt,
	}
}
