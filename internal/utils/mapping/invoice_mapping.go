package mapping

import (
	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/obveznik/obveznik_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:         d.InvoiceID,
		FirmID:            d.FirmID,
		ClientID:          d.ClientID,
		AuthorID:          d.AuthorID,
		Number:            d.Number,
		Kind:              string(d.Kind),
		Status:            string(d.Status),
		CurrencyCode:      d.CurrencyCode,
		MidRate:           d.MidRate,
		TotalOrigin:       d.TotalOrigin,
		TotalDomestic:     d.TotalDomestic,
		TransactionDate:   d.TransactionDate,
		PaymentTermDays:   d.PaymentTermDays,
		DueDate:           d.DueDate,
		FinalizedAt:       d.FinalizedAt,
		ContractNumber:    d.ContractNumber,
		DecisionNumber:    d.DecisionNumber,
		OrderNumber:       d.OrderNumber,
		ReferenceNumber:   d.ReferenceNumber,
		ReferenceModel:    d.ReferenceModel,
		AdvanceInvoiceID:  d.AdvanceInvoiceID,
		ProformaInvoiceID: d.ProformaInvoiceID,
		LinkedInvoiceID:   d.LinkedInvoiceID,
		CancelReason:      d.CancelReason,
		CancelledAt:       d.CancelledAt,
		CancelledBy:       d.CancelledBy,
		PDFStatus:         string(d.PDFStatus),
		EmailStatus:       string(d.EmailStatus),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:         m.InvoiceID,
		FirmID:            m.FirmID,
		ClientID:          m.ClientID,
		AuthorID:          m.AuthorID,
		Number:            m.Number,
		Kind:              domain.InvoiceKind(m.Kind),
		Status:            domain.InvoiceStatus(m.Status),
		CurrencyCode:      m.CurrencyCode,
		MidRate:           m.MidRate,
		TotalOrigin:       m.TotalOrigin,
		TotalDomestic:     m.TotalDomestic,
		TransactionDate:   m.TransactionDate,
		PaymentTermDays:   m.PaymentTermDays,
		DueDate:           m.DueDate,
		FinalizedAt:       m.FinalizedAt,
		ContractNumber:    m.ContractNumber,
		DecisionNumber:    m.DecisionNumber,
		OrderNumber:       m.OrderNumber,
		ReferenceNumber:   m.ReferenceNumber,
		ReferenceModel:    m.ReferenceModel,
		AdvanceInvoiceID:  m.AdvanceInvoiceID,
		ProformaInvoiceID: m.ProformaInvoiceID,
		LinkedInvoiceID:   m.LinkedInvoiceID,
		CancelReason:      m.CancelReason,
		CancelledAt:       m.CancelledAt,
		CancelledBy:       m.CancelledBy,
		PDFStatus:         domain.SideEffectStatus(m.PDFStatus),
		EmailStatus:       domain.SideEffectStatus(m.EmailStatus),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem.
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:  d.LineItemID,
		InvoiceID:   d.InvoiceID,
		ProductID:   d.ProductID,
		Description: d.Description,
		Quantity:    d.Quantity,
		Unit:        d.Unit,
		UnitPrice:   d.UnitPrice,
		Total:       d.Total,
		SequenceNo:  d.SequenceNo,
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem.
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:  m.LineItemID,
		InvoiceID:   m.InvoiceID,
		ProductID:   m.ProductID,
		Description: m.Description,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		UnitPrice:   m.UnitPrice,
		Total:       m.Total,
		SequenceNo:  m.SequenceNo,
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems to domain LineItems.
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
