package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/obveznik/obveznik_backend/internal/apperrors"
	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/obveznik/obveznik_backend/internal/core/ports"
	portsrepo "github.com/obveznik/obveznik_backend/internal/core/ports/repositories"
	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/dto"
	"github.com/obveznik/obveznik_backend/internal/middleware"
	"github.com/obveznik/obveznik_backend/internal/utils/invoicing"
	"github.com/obveznik/obveznik_backend/internal/utils/numbering"
	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceNotDraft          = errors.New("invoice is not a draft")
	ErrInvoiceNotIssued         = errors.New("invoice is not issued")
	ErrInvoiceNoLines           = errors.New("invoice must have at least one line item")
	ErrFirmInactive             = errors.New("firm is inactive")
	ErrMissingForeignAccount    = errors.New("firm has no foreign currency bank account")
	ErrAdvanceNotClosable       = errors.New("advance invoice cannot be closed")
	ErrAdvanceExceedsTotal      = errors.New("advance deduction exceeds invoice total")
	ErrProformaAlreadyConverted = errors.New("proforma was already converted")
	ErrAdvanceDeclaration       = errors.New("advance invoice requires either line items or contract value with percent")
)

// invoiceService implements the draft/issue/cancel lifecycle on top of the
// invoice repository's atomic transitions.
type invoiceService struct {
	invoiceRepo    portsrepo.InvoiceRepositoryWithTx
	firmRepo       portsrepo.FirmRepositoryFacade
	clientRepo     portsrepo.ClientRepositoryFacade
	rateSvc        portssvc.ExchangeRateSvcFacade
	revenueBookSvc portssvc.RevenueBookSvcFacade
	dispatcher     ports.TaskDispatcher
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	firmRepo portsrepo.FirmRepositoryFacade,
	clientRepo portsrepo.ClientRepositoryFacade,
	rateSvc portssvc.ExchangeRateSvcFacade,
	revenueBookSvc portssvc.RevenueBookSvcFacade,
	dispatcher ports.TaskDispatcher,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:    invoiceRepo,
		firmRepo:       firmRepo,
		clientRepo:     clientRepo,
		rateSvc:        rateSvc,
		revenueBookSvc: revenueBookSvc,
		dispatcher:     dispatcher,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// buildLines converts request line items into domain line items with computed
// totals. Caller-supplied lines must have positive quantities and non-negative
// unit prices; negative amounts are reserved for the advance-deduction line the
// engine appends itself.
func (s *invoiceService) buildLines(invoiceID string, reqLines []dto.LineItemRequest) ([]domain.LineItem, error) {
	lines := make([]domain.LineItem, len(reqLines))
	for i, lr := range reqLines {
		if lr.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if lr.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d unit price must not be negative", apperrors.ErrValidation, i+1)
		}
		lines[i] = domain.LineItem{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoiceID,
			ProductID:   lr.ProductID,
			Description: lr.Description,
			Quantity:    lr.Quantity,
			Unit:        lr.Unit,
			UnitPrice:   lr.UnitPrice,
			Total:       invoicing.LineTotal(lr.Quantity, lr.UnitPrice),
			SequenceNo:  i + 1,
		}
	}
	return lines, nil
}

// resolveRate returns the mid-rate for a foreign-currency document, preferring
// a caller-supplied manual rate over the official daily list.
func (s *invoiceService) resolveRate(ctx context.Context, currencyCode string, manual *decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	if manual != nil {
		if manual.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, fmt.Errorf("%w: manual rate must be positive", apperrors.ErrValidation)
		}
		return *manual, nil
	}
	return s.rateSvc.GetRate(ctx, currencyCode, date)
}

// appendAdvanceDeduction loads the referenced advance, validates it is closable
// against this invoice, and appends the negative deduction line. When the two
// documents carry different currencies the advance's domestic value is
// converted into the closing invoice's currency at its resolved rate.
func (s *invoiceService) appendAdvanceDeduction(ctx context.Context, invoice *domain.Invoice, lines []domain.LineItem, advanceID string, rate *decimal.Decimal) ([]domain.LineItem, error) {
	advance, err := s.invoiceRepo.FindInvoiceByID(ctx, advanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load advance invoice: %w", err)
	}
	if advance.FirmID != invoice.FirmID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("advance invoice %s not found", advanceID))
	}
	if advance.Kind != domain.KindAdvance {
		return nil, fmt.Errorf("%w: %s is not an advance invoice", ErrAdvanceNotClosable, advanceID)
	}
	if advance.Status != domain.StatusIssued {
		return nil, fmt.Errorf("%w: advance %s is %s", ErrAdvanceNotClosable, advanceID, advance.Status)
	}
	if advance.ClientID != invoice.ClientID {
		return nil, fmt.Errorf("%w: advance %s belongs to a different client", ErrAdvanceNotClosable, advanceID)
	}
	deduction := advance.TotalDomestic
	switch {
	case advance.CurrencyCode == invoice.CurrencyCode:
		if advance.TotalOrigin != nil {
			deduction = *advance.TotalOrigin
		}
	case invoice.IsForeign():
		if rate == nil || rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: no exchange rate to convert advance %s", ErrAdvanceNotClosable, advanceID)
		}
		deduction = advance.TotalDomestic.DivRound(*rate, 2)
	default:
		// Closing in the domestic currency: the advance's domestic value
		// already is the deduction.
	}

	gross := decimal.Zero
	for _, l := range lines {
		gross = gross.Add(l.Total)
	}
	if deduction.GreaterThan(gross.Round(2)) {
		return nil, fmt.Errorf("%w: advance %s over %s", ErrAdvanceExceedsTotal, deduction.String(), gross.Round(2).String())
	}

	lines = append(lines, domain.LineItem{
		LineItemID:  uuid.NewString(),
		InvoiceID:   invoice.InvoiceID,
		Description: fmt.Sprintf("Odbitak po avansnom računu %s", advance.Number),
		Quantity:    decimal.NewFromInt(1),
		Unit:        "kom",
		UnitPrice:   deduction.Neg(),
		Total:       deduction.Neg(),
		SequenceNo:  len(lines) + 1,
	})
	return lines, nil
}

// applyTotals fills the currency fields of the invoice from its lines: foreign
// documents carry the origin total and the mid-rate alongside the converted
// domestic total, domestic documents carry only the domestic total. The rate
// must already be resolved for foreign documents.
func (s *invoiceService) applyTotals(invoice *domain.Invoice, lines []domain.LineItem, rate *decimal.Decimal) {
	sum := invoicing.SumLines(lines)
	if invoice.IsForeign() && rate != nil {
		invoice.MidRate = rate
		invoice.TotalOrigin = &sum
		invoice.TotalDomestic = invoicing.DomesticTotal(sum, *rate)
		return
	}
	invoice.MidRate = nil
	invoice.TotalOrigin = nil
	invoice.TotalDomestic = sum
}

// CreateInvoice creates a new draft invoice for the firm.
func (s *invoiceService) CreateInvoice(ctx context.Context, firmID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kind, err := domain.ParseInvoiceKind(req.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if !domain.IsSupportedCurrency(req.CurrencyCode) {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, req.CurrencyCode)
	}

	firm, err := s.firmRepo.FindFirmByID(ctx, firmID)
	if err != nil {
		return nil, fmt.Errorf("failed to load firm: %w", err)
	}
	if !firm.IsActive {
		return nil, ErrFirmInactive
	}
	if domain.IsForeignCurrency(req.CurrencyCode) && len(firm.ForeignAccounts) == 0 {
		return nil, fmt.Errorf("%w: cannot bill in %s", ErrMissingForeignAccount, req.CurrencyCode)
	}
	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client.FirmID != firmID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", req.ClientID))
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	invoice := domain.Invoice{
		InvoiceID:       invoiceID,
		FirmID:          firmID,
		ClientID:        req.ClientID,
		AuthorID:        userID,
		Number:          numbering.DraftNumber(invoiceID),
		Kind:            kind,
		Status:          domain.StatusDraft,
		CurrencyCode:    req.CurrencyCode,
		TransactionDate: req.TransactionDate,
		PaymentTermDays: req.PaymentTermDays,
		DueDate:         invoicing.DueDate(req.TransactionDate, req.PaymentTermDays),
		ContractNumber:  req.ContractNumber,
		DecisionNumber:  req.DecisionNumber,
		OrderNumber:     req.OrderNumber,
		ReferenceNumber: req.ReferenceNumber,
		ReferenceModel:  req.ReferenceModel,
		PDFStatus:       domain.SideEffectNone,
		EmailStatus:     domain.SideEffectNone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var lines []domain.LineItem
	switch {
	case kind == domain.KindAdvance && len(req.Lines) == 0:
		// Percentage mode: a single generated line for a share of the contract value.
		if req.ContractValue == nil || req.AdvancePercent == nil {
			return nil, fmt.Errorf("%w", ErrAdvanceDeclaration)
		}
		if req.ContractValue.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: contract value must be positive", apperrors.ErrValidation)
		}
		if req.AdvancePercent.LessThanOrEqual(decimal.Zero) || req.AdvancePercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: advance percent must be in (0, 100]", apperrors.ErrValidation)
		}
		amount := invoicing.AdvanceAmount(*req.ContractValue, *req.AdvancePercent)
		description := fmt.Sprintf("Avansna uplata %s%% ugovorene vrednosti", req.AdvancePercent.String())
		if req.ProjectName != "" {
			description = fmt.Sprintf("%s, %s", description, req.ProjectName)
		}
		lines = []domain.LineItem{{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: description,
			Quantity:    decimal.NewFromInt(1),
			Unit:        "kom",
			UnitPrice:   amount,
			Total:       amount,
			SequenceNo:  1,
		}}
	case len(req.Lines) == 0:
		return nil, ErrInvoiceNoLines
	default:
		lines, err = s.buildLines(invoiceID, req.Lines)
		if err != nil {
			return nil, err
		}
	}

	var rate *decimal.Decimal
	if invoice.IsForeign() {
		resolved, rerr := s.resolveRate(ctx, invoice.CurrencyCode, req.ManualRate, invoice.TransactionDate)
		if rerr != nil {
			return nil, rerr
		}
		rate = &resolved
	}

	if req.AdvanceInvoiceID != nil {
		if kind != domain.KindStandard {
			return nil, fmt.Errorf("%w: only standard invoices can close an advance", apperrors.ErrValidation)
		}
		invoice.AdvanceInvoiceID = req.AdvanceInvoiceID
		lines, err = s.appendAdvanceDeduction(ctx, &invoice, lines, *req.AdvanceInvoiceID, rate)
		if err != nil {
			return nil, err
		}
	}

	s.applyTotals(&invoice, lines, rate)
	invoice.Lines = lines

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, lines); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("firm_id", firmID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice draft created", slog.String("invoice_id", invoiceID), slog.String("firm_id", firmID), slog.String("kind", string(kind)))
	return &invoice, nil
}

// UpdateInvoice replaces a draft's mutable fields and all of its line items.
func (s *invoiceService) UpdateInvoice(ctx context.Context, firmID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.FirmID != firmID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
	}
	if invoice.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: invoice %s is %s", ErrInvoiceNotDraft, invoiceID, invoice.Status)
	}
	if !domain.IsSupportedCurrency(req.CurrencyCode) {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, req.CurrencyCode)
	}
	if domain.IsForeignCurrency(req.CurrencyCode) && invoice.CurrencyCode != req.CurrencyCode {
		firm, ferr := s.firmRepo.FindFirmByID(ctx, firmID)
		if ferr != nil {
			return nil, fmt.Errorf("failed to load firm: %w", ferr)
		}
		if len(firm.ForeignAccounts) == 0 {
			return nil, fmt.Errorf("%w: cannot bill in %s", ErrMissingForeignAccount, req.CurrencyCode)
		}
	}

	now := time.Now().UTC()
	invoice.CurrencyCode = req.CurrencyCode
	invoice.TransactionDate = req.TransactionDate
	invoice.PaymentTermDays = req.PaymentTermDays
	invoice.DueDate = invoicing.DueDate(req.TransactionDate, req.PaymentTermDays)
	invoice.ContractNumber = req.ContractNumber
	invoice.DecisionNumber = req.DecisionNumber
	invoice.OrderNumber = req.OrderNumber
	invoice.ReferenceNumber = req.ReferenceNumber
	invoice.ReferenceModel = req.ReferenceModel
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	lines, err := s.buildLines(invoiceID, req.Lines)
	if err != nil {
		return nil, err
	}

	var rate *decimal.Decimal
	if invoice.IsForeign() {
		resolved, rerr := s.resolveRate(ctx, invoice.CurrencyCode, req.ManualRate, invoice.TransactionDate)
		if rerr != nil {
			return nil, rerr
		}
		rate = &resolved
	}

	if invoice.AdvanceInvoiceID != nil {
		lines, err = s.appendAdvanceDeduction(ctx, invoice, lines, *invoice.AdvanceInvoiceID, rate)
		if err != nil {
			return nil, err
		}
	}
	s.applyTotals(invoice, lines, rate)
	invoice.Lines = lines

	if err := s.invoiceRepo.ReplaceInvoice(ctx, *invoice, lines); err != nil {
		logger.Error("Failed to update invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	logger.Info("Invoice draft updated", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// FinalizeInvoice assigns the official number and issues the invoice. The
// numbering and status transitions run in one repository transaction; the
// revenue-book entry and the PDF dispatch run after commit and are logged,
// never raised, on failure.
func (s *invoiceService) FinalizeInvoice(ctx context.Context, firmID string, invoiceID string, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.FirmID != firmID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
	}
	if invoice.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: invoice %s is %s", ErrInvoiceNotDraft, invoiceID, invoice.Status)
	}

	now := time.Now().UTC()
	finalized, err := s.invoiceRepo.FinalizeInvoice(ctx, invoiceID, userID, now)
	if err != nil {
		logger.Error("Failed to finalize invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to finalize invoice: %w", err)
	}
	logger.Info("Invoice finalized", slog.String("invoice_id", invoiceID), slog.String("number", finalized.Number))

	// Post-commit side effects. The invoice is issued regardless of what
	// happens below.
	if s.revenueBookSvc != nil && finalized.Kind != domain.KindProforma {
		client, cerr := s.clientRepo.FindClientByID(ctx, finalized.ClientID)
		if cerr != nil {
			logger.Warn("Failed to load client for revenue book entry", slog.String("error", cerr.Error()), slog.String("invoice_id", invoiceID))
		}
		if _, rerr := s.revenueBookSvc.RecordInvoice(ctx, finalized, client); rerr != nil {
			logger.Error("Failed to record revenue book entry", slog.String("error", rerr.Error()), slog.String("invoice_id", invoiceID))
		}
	}
	if s.dispatcher != nil {
		if derr := s.dispatcher.EnqueuePDF(ctx, invoiceID); derr != nil {
			logger.Error("Failed to enqueue PDF generation", slog.String("error", derr.Error()), slog.String("invoice_id", invoiceID))
			if uerr := s.invoiceRepo.UpdatePDFStatus(ctx, invoiceID, domain.SideEffectFailed); uerr != nil {
				logger.Error("Failed to mark PDF status failed", slog.String("error", uerr.Error()), slog.String("invoice_id", invoiceID))
			}
			finalized.PDFStatus = domain.SideEffectFailed
		} else {
			if uerr := s.invoiceRepo.UpdatePDFStatus(ctx, invoiceID, domain.SideEffectQueued); uerr != nil {
				logger.Error("Failed to mark PDF status queued", slog.String("error", uerr.Error()), slog.String("invoice_id", invoiceID))
			}
			finalized.PDFStatus = domain.SideEffectQueued
		}
	}

	return finalized, nil
}

// CancelInvoice cancels an issued invoice. Only the author or an admin may
// cancel; the cancellation is mirrored onto the revenue book.
func (s *invoiceService) CancelInvoice(ctx context.Context, firmID string, invoiceID string, req dto.CancelInvoiceRequest, userID string, isAdmin bool) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.FirmID != firmID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
	}
	if invoice.Status != domain.StatusIssued {
		return nil, fmt.Errorf("%w: invoice %s is %s", ErrInvoiceNotIssued, invoiceID, invoice.Status)
	}
	if invoice.AuthorID != userID && !isAdmin {
		return nil, fmt.Errorf("%w: only the author or an admin may cancel an invoice", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.CancelInvoice(ctx, invoiceID, req.Reason, userID, now); err != nil {
		logger.Error("Failed to cancel invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to cancel invoice: %w", err)
	}
	logger.Info("Invoice cancelled", slog.String("invoice_id", invoiceID), slog.String("cancelled_by", userID))

	if s.revenueBookSvc != nil && invoice.Kind != domain.KindProforma {
		if rerr := s.revenueBookSvc.MarkInvoiceCancelled(ctx, invoiceID); rerr != nil {
			logger.Error("Failed to mirror cancellation onto revenue book", slog.String("error", rerr.Error()), slog.String("invoice_id", invoiceID))
		}
	}

	invoice.Status = domain.StatusCancelled
	invoice.CancelReason = &req.Reason
	invoice.CancelledAt = &now
	invoice.CancelledBy = &userID
	return invoice, nil
}

// ConvertProforma creates a standard draft invoice carrying the proforma's
// commercial content and marks the proforma converted, atomically.
func (s *invoiceService) ConvertProforma(ctx context.Context, firmID string, proformaID string, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	proforma, err := s.invoiceRepo.FindInvoiceByID(ctx, proformaID)
	if err != nil {
		return nil, err
	}
	if proforma.FirmID != firmID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", proformaID))
	}
	if proforma.Kind != domain.KindProforma {
		return nil, fmt.Errorf("%w: invoice %s is not a proforma", apperrors.ErrValidation, proformaID)
	}
	if proforma.Status == domain.StatusConverted {
		return nil, fmt.Errorf("%w: %s", ErrProformaAlreadyConverted, proformaID)
	}
	if proforma.Status != domain.StatusIssued {
		return nil, fmt.Errorf("%w: proforma %s is %s", ErrInvoiceNotIssued, proformaID, proforma.Status)
	}

	sourceLines, err := s.invoiceRepo.FindLineItemsByInvoiceID(ctx, proformaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proforma lines: %w", err)
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	lines := make([]domain.LineItem, len(sourceLines))
	for i, sl := range sourceLines {
		lines[i] = sl
		lines[i].LineItemID = uuid.NewString()
		lines[i].InvoiceID = invoiceID
	}

	invoice := *proforma
	invoice.InvoiceID = invoiceID
	invoice.Number = numbering.DraftNumber(invoiceID)
	invoice.Kind = domain.KindStandard
	invoice.Status = domain.StatusDraft
	invoice.AuthorID = userID
	invoice.TransactionDate = now.Truncate(24 * time.Hour)
	invoice.DueDate = invoicing.DueDate(invoice.TransactionDate, invoice.PaymentTermDays)
	invoice.FinalizedAt = nil
	invoice.ProformaInvoiceID = &proforma.InvoiceID
	invoice.LinkedInvoiceID = nil
	invoice.PDFStatus = domain.SideEffectNone
	invoice.EmailStatus = domain.SideEffectNone
	invoice.Lines = lines
	invoice.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.invoiceRepo.ConvertProforma(ctx, invoice, lines, proformaID, userID, now); err != nil {
		logger.Error("Failed to convert proforma", slog.String("error", err.Error()), slog.String("proforma_id", proformaID))
		return nil, fmt.Errorf("failed to convert proforma: %w", err)
	}

	logger.Info("Proforma converted to draft invoice", slog.String("proforma_id", proformaID), slog.String("invoice_id", invoiceID))
	return &invoice, nil
}

// GetInvoiceByID retrieves a specific invoice with its line items.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, firmID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.FirmID != firmID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
	}
	lines, err := s.invoiceRepo.FindLineItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}
	invoice.Lines = lines
	return invoice, nil
}

// ListInvoices retrieves a paginated list of invoices for a firm.
func (s *invoiceService) ListInvoices(ctx context.Context, firmID string, params dto.ListInvoicesParams) ([]domain.Invoice, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.invoiceRepo.ListInvoicesByFirm(ctx, firmID, limit, params.NextToken)
}

// RetryPDF re-enqueues PDF generation for an issued invoice.
func (s *invoiceService) RetryPDF(ctx context.Context, firmID string, invoiceID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.FirmID != firmID {
		return apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
	}
	if invoice.Status == domain.StatusDraft {
		return fmt.Errorf("%w: invoice %s", ErrInvoiceNotIssued, invoiceID)
	}
	if s.dispatcher == nil {
		return fmt.Errorf("task dispatcher is not configured")
	}
	if err := s.dispatcher.EnqueuePDF(ctx, invoiceID); err != nil {
		logger.Error("Failed to enqueue PDF generation", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to enqueue PDF generation: %w", err)
	}
	return s.invoiceRepo.UpdatePDFStatus(ctx, invoiceID, domain.SideEffectQueued)
}

// SendEmail enqueues email delivery of an issued invoice's PDF.
func (s *invoiceService) SendEmail(ctx context.Context, firmID string, invoiceID string, req dto.SendEmailRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.FirmID != firmID {
		return apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
	}
	if invoice.Status == domain.StatusDraft {
		return fmt.Errorf("%w: invoice %s", ErrInvoiceNotIssued, invoiceID)
	}
	if s.dispatcher == nil {
		return fmt.Errorf("task dispatcher is not configured")
	}
	if err := s.dispatcher.EnqueueEmail(ctx, invoiceID, req.Recipient, req.CC, req.Subject, req.Body); err != nil {
		logger.Error("Failed to enqueue invoice email", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to enqueue invoice email: %w", err)
	}
	return s.invoiceRepo.UpdateEmailStatus(ctx, invoiceID, domain.SideEffectQueued)
}
