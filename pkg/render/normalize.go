// pkg/render/normalize.go

package render

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arbeit-tech/billing-service/pkg/document"
)

// Document is the kind-agnostic shape the Renderer lays out.
type Document struct {
	Kind   document.Kind
	ID     string
	Date   time.Time
	Client document.Client

	Items       []document.LineItem
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	TaxPercent  decimal.Decimal
	TotalAmount decimal.Decimal

	// Receipt only.
	AmountPaid    decimal.Decimal
	PaymentMethod string
	TransactionID string
	RelatedID     string

	// Quotation only.
	ValidUntil *time.Time
	Terms      string
}

// FromQuotation normalizes a quotation.
func FromQuotation(q *document.Quotation) Document {
	return Document{
		Kind:        document.KindQuotation,
		ID:          q.QuotationID,
		Date:        q.CreatedAt,
		Client:      q.Client,
		Items:       q.Services,
		Subtotal:    q.Subtotal,
		Discount:    q.Discount,
		TaxPercent:  q.Tax,
		TotalAmount: q.TotalAmount,
		ValidUntil:  q.ValidityDate,
		Terms:       q.Terms,
	}
}

// FromInvoice normalizes an invoice.
func FromInvoice(inv *document.Invoice) Document {
	return Document{
		Kind:        document.KindInvoice,
		ID:          inv.InvoiceID,
		Date:        inv.CreatedAt,
		Client:      inv.Client,
		Items:       inv.Services,
		Subtotal:    inv.Subtotal,
		Discount:    inv.Discount,
		TaxPercent:  inv.Tax,
		TotalAmount: inv.TotalAmount,
	}
}

// FromReceipt normalizes a receipt. Items and totals come from parent, which
// may be nil when the referenced invoice no longer exists.
func FromReceipt(r *document.Receipt, parent *document.Invoice) Document {
	d := Document{
		Kind:          document.KindReceipt,
		ID:            r.ReceiptID,
		Date:          r.Date,
		Client:        r.Client,
		AmountPaid:    r.AmountPaid,
		PaymentMethod: r.PaymentMethod,
		TransactionID: r.TransactionID,
		RelatedID:     r.InvoiceID,
	}
	if d.Date.IsZero() {
		d.Date = r.CreatedAt
	}
	if parent != nil {
		d.Items = parent.Services
		d.Subtotal = parent.Subtotal
		d.Discount = parent.Discount
		d.TaxPercent = parent.Tax
		d.TotalAmount = parent.TotalAmount
	}
	return d
}

// Source loads stored documents by business id.
type Source interface {
	GetQuotation(ctx context.Context, quotationID string) (*document.Quotation, error)
	GetInvoice(ctx context.Context, invoiceID string) (*document.Invoice, error)
	GetReceipt(ctx context.Context, receiptID string) (*document.Receipt, error)
}

// Load fetches a document of kind and normalizes it. For receipts a missing
// parent invoice is tolerated.
func Load(ctx context.Context, src Source, kind document.Kind, id string) (Document, error) {
	switch kind {
	case document.KindQuotation:
		q, err := src.GetQuotation(ctx, id)
		if err != nil {
			return Document{}, err
		}
		return FromQuotation(q), nil

	case document.KindInvoice:
		inv, err := src.GetInvoice(ctx, id)
		if err != nil {
			return Document{}, err
		}
		return FromInvoice(inv), nil

	case document.KindReceipt:
		r, err := src.GetReceipt(ctx, id)
		if err != nil {
			return Document{}, err
		}
		parent, err := src.GetInvoice(ctx, r.InvoiceID)
		if err != nil && !errors.Is(err, document.ErrNotFound) {
			return Document{}, err
		}
		return FromReceipt(r, parent), nil
	}
	return Document{}, ErrUnknownKind
}
