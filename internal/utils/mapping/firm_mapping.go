package mapping

import (
	"encoding/json"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/obveznik/obveznik_backend/internal/models"
)

// ToDomainFirm converts a model Firm to a domain Firm, unmarshalling the JSONB
// bank account lists. Malformed account JSON yields empty lists rather than an
// error; the columns are written by this application only.
func ToDomainFirm(m models.Firm) domain.Firm {
	var domestic, foreign []domain.BankAccount
	if len(m.DomesticAccounts) > 0 {
		_ = json.Unmarshal(m.DomesticAccounts, &domestic)
	}
	if len(m.ForeignAccounts) > 0 {
		_ = json.Unmarshal(m.ForeignAccounts, &foreign)
	}
	return domain.Firm{
		FirmID:           m.FirmID,
		TaxID:            m.TaxID,
		RegNo:            m.RegNo,
		Name:             m.Name,
		Address:          m.Address,
		City:             m.City,
		Country:          m.Country,
		Email:            m.Email,
		DomesticAccounts: domestic,
		ForeignAccounts:  foreign,
		NumberPrefix:     m.NumberPrefix,
		NumberSuffix:     m.NumberSuffix,
		CounterStandard:  m.CounterStandard,
		CounterProforma:  m.CounterProforma,
		CounterAdvance:   m.CounterAdvance,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client.
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		FirmID:      m.FirmID,
		TaxID:       m.TaxID,
		RegNo:       m.RegNo,
		Name:        m.Name,
		Address:     m.Address,
		City:        m.City,
		Country:     m.Country,
		Email:       m.Email,
		IBAN:        m.IBAN,
		SWIFT:       m.SWIFT,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
