// pkg/lifecycle/service.go

// Package lifecycle implements the Quotation -> Invoice -> Receipt flow:
// creating documents, deriving one kind from another and keeping the
// invoice payment status in step with its receipts.
package lifecycle

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/store"
)

// Service creates and derives billing documents.
type Service struct {
	store    store.Store
	seq      store.Sequencer
	ids      document.Generator
	now      func() time.Time
	validate *validator.Validate
	log      zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for dates and for the year/month part of ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.ids.Now = now
	}
}

// WithSequencer replaces the store's own sequencer, e.g. with a Redis one.
func WithSequencer(seq store.Sequencer) Option {
	return func(s *Service) { s.seq = seq }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService returns a Service persisting to st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		seq:      st,
		ids:      document.NewGenerator(),
		now:      time.Now,
		validate: newValidator(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) nextID(ctx context.Context, kind document.Kind) (string, error) {
	n, err := s.seq.Next(ctx, kind)
	if err != nil {
		return "", err
	}
	return s.ids.Generate(kind.Prefix(), n), nil
}

// CreateQuotation validates in and stores a new Pending quotation.
func (s *Service) CreateQuotation(ctx context.Context, in QuotationInput) (*document.Quotation, error) {
	verr := checkStruct(ctx, s.validate, in)
	items := lineItems(in.Services)
	subtotal, total := reconcileTotals(items, in.Subtotal, in.TotalAmount, in.Discount, in.Tax, verr)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	id, err := s.nextID(ctx, document.KindQuotation)
	if err != nil {
		return nil, err
	}

	now := s.now()
	q := &document.Quotation{
		QuotationID:  id,
		Client:       in.client(),
		Services:     items,
		Subtotal:     subtotal,
		Discount:     in.Discount,
		Tax:          in.Tax,
		TotalAmount:  total,
		ValidityDate: in.ValidityDate.ptr(),
		Terms:        strings.TrimSpace(in.Terms),
		Status:       document.QuotationPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateQuotation(ctx, q); err != nil {
		return nil, err
	}

	s.log.Info().Str("quotationId", q.QuotationID).Str("total", q.TotalAmount.StringFixed(2)).Msg("quotation created")
	return q, nil
}

// DeriveInvoiceFromQuotation creates an Unpaid invoice carrying the
// quotation's client, line items and totals. The quotation is left unchanged.
func (s *Service) DeriveInvoiceFromQuotation(ctx context.Context, quotationID string) (*document.Invoice, error) {
	q, err := s.store.GetQuotation(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	id, err := s.nextID(ctx, document.KindInvoice)
	if err != nil {
		return nil, err
	}

	now := s.now()
	inv := &document.Invoice{
		InvoiceID:   id,
		QuotationID: q.QuotationID,
		Client:      q.Client,
		Services:    append(document.LineItems(nil), q.Services...),
		Subtotal:    q.Subtotal,
		Discount:    q.Discount,
		Tax:         q.Tax,
		TotalAmount: q.TotalAmount,
		Status:      document.StatusUnpaid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	s.log.Info().Str("invoiceId", inv.InvoiceID).Str("quotationId", q.QuotationID).Msg("invoice derived from quotation")
	return inv, nil
}

// CreateInvoice validates in and stores a new invoice, Unpaid unless a
// status is supplied.
func (s *Service) CreateInvoice(ctx context.Context, in InvoiceInput) (*document.Invoice, error) {
	verr := checkStruct(ctx, s.validate, in)
	items := lineItems(in.Services)
	subtotal, total := reconcileTotals(items, in.Subtotal, in.TotalAmount, in.Discount, in.Tax, verr)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	status := document.StatusUnpaid
	if in.Status != "" {
		status = document.InvoiceStatus(in.Status)
	}

	id, err := s.nextID(ctx, document.KindInvoice)
	if err != nil {
		return nil, err
	}

	now := s.now()
	inv := &document.Invoice{
		InvoiceID:   id,
		QuotationID: strings.TrimSpace(in.QuotationID),
		Client:      in.client(),
		Services:    items,
		Subtotal:    subtotal,
		Discount:    in.Discount,
		Tax:         in.Tax,
		TotalAmount: total,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	s.log.Info().Str("invoiceId", inv.InvoiceID).Str("total", inv.TotalAmount.StringFixed(2)).Msg("invoice created")
	return inv, nil
}

// DeriveReceiptFromInvoice records full payment of an invoice: the receipt
// pays the invoice total in cash and the invoice becomes Paid. Both writes
// commit together.
func (s *Service) DeriveReceiptFromInvoice(ctx context.Context, invoiceID string) (*document.Receipt, error) {
	if _, err := s.store.GetInvoice(ctx, invoiceID); err != nil {
		return nil, err
	}

	id, err := s.nextID(ctx, document.KindReceipt)
	if err != nil {
		return nil, err
	}

	var r *document.Receipt
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx store.Store) error {
		inv, err := tx.GetInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}

		now := s.now()
		r = &document.Receipt{
			ReceiptID:     id,
			InvoiceID:     inv.InvoiceID,
			Client:        inv.Client,
			AmountPaid:    inv.TotalAmount,
			PaymentMethod: document.DefaultPaymentMethod,
			Date:          now,
			CreatedAt:     now,
		}
		if err := tx.CreateReceipt(ctx, r); err != nil {
			return err
		}
		return tx.UpdateInvoiceStatus(ctx, inv.InvoiceID, document.StatusPaid)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("receiptId", r.ReceiptID).Str("invoiceId", r.InvoiceID).Msg("receipt derived from invoice")
	return r, nil
}

// CreateReceipt stores a receipt against in.InvoiceID. When the invoice
// exists its status is recomputed from the sum of all its receipts; a
// receipt for an unknown invoice is still stored.
func (s *Service) CreateReceipt(ctx context.Context, in ReceiptInput) (*document.Receipt, error) {
	if err := checkStruct(ctx, s.validate, in).orNil(); err != nil {
		return nil, err
	}

	id, err := s.nextID(ctx, document.KindReceipt)
	if err != nil {
		return nil, err
	}

	now := s.now()
	r := &document.Receipt{
		ReceiptID: id,
		InvoiceID: strings.TrimSpace(in.InvoiceID),
		Client: document.Client{
			Name:    strings.TrimSpace(in.ClientName),
			Address: strings.TrimSpace(in.ClientAddress),
			Phone:   strings.TrimSpace(in.ClientPhone),
			Email:   strings.TrimSpace(in.ClientEmail),
		},
		AmountPaid:    in.AmountPaid,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		TransactionID: strings.TrimSpace(in.TransactionID),
		Date:          now,
		CreatedAt:     now,
	}
	if r.PaymentMethod == "" {
		r.PaymentMethod = document.DefaultPaymentMethod
	}
	if t := in.Date.ptr(); t != nil {
		r.Date = *t
	}

	var (
		status      document.InvoiceStatus
		outstanding decimal.Decimal
	)
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx store.Store) error {
		inv, err := tx.GetInvoice(ctx, r.InvoiceID)
		switch {
		case errors.Is(err, document.ErrNotFound):
			inv = nil
		case err != nil:
			return err
		}

		if inv != nil && r.Client == (document.Client{}) {
			r.Client = inv.Client
		}
		if err := tx.CreateReceipt(ctx, r); err != nil {
			return err
		}
		if inv == nil {
			return nil
		}

		receipts, err := tx.ListReceiptsByInvoice(ctx, inv.InvoiceID)
		if err != nil {
			return err
		}
		paid := document.TotalPaid(receipts)
		status = document.StatusFor(paid, inv.TotalAmount)
		outstanding = inv.Outstanding(paid)
		if status == inv.Status {
			return nil
		}
		return tx.UpdateInvoiceStatus(ctx, inv.InvoiceID, status)
	})
	if err != nil {
		return nil, err
	}

	ev := s.log.Info().Str("receiptId", r.ReceiptID).Str("invoiceId", r.InvoiceID).Str("amountPaid", r.AmountPaid.StringFixed(2))
	if status == "" {
		ev.Msg("receipt created for unknown invoice")
	} else {
		ev.Str("invoiceStatus", string(status)).Str("outstanding", outstanding.StringFixed(2)).Msg("receipt created")
	}
	return r, nil
}

// GetQuotation returns the quotation with the given business id.
func (s *Service) GetQuotation(ctx context.Context, quotationID string) (*document.Quotation, error) {
	return s.store.GetQuotation(ctx, quotationID)
}

// GetInvoice returns the invoice with the given business id.
func (s *Service) GetInvoice(ctx context.Context, invoiceID string) (*document.Invoice, error) {
	return s.store.GetInvoice(ctx, invoiceID)
}

// GetReceipt returns the receipt with the given business id.
func (s *Service) GetReceipt(ctx context.Context, receiptID string) (*document.Receipt, error) {
	return s.store.GetReceipt(ctx, receiptID)
}

// ReceiptsForInvoice lists the receipts recorded against an existing invoice.
func (s *Service) ReceiptsForInvoice(ctx context.Context, invoiceID string) ([]document.Receipt, error) {
	if _, err := s.store.GetInvoice(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.store.ListReceiptsByInvoice(ctx, invoiceID)
}
