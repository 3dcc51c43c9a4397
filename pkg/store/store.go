// pkg/store/store.go

// Package store persists quotations, invoices and receipts and hands out
// per-kind sequence numbers for their business ids.
//
// All lookups are by business id. Get* methods return an error matching
// document.ErrNotFound when nothing matches; every other failure is a
// *StorageError.
package store

import (
	"context"

	"github.com/arbeit-tech/billing-service/pkg/document"
)

// Sequencer hands out strictly increasing sequence numbers per document kind.
// Two calls never return the same number for the same kind.
type Sequencer interface {
	Next(ctx context.Context, kind document.Kind) (int64, error)
}

// Counter reports how many documents of a kind exist.
type Counter interface {
	Count(ctx context.Context, kind document.Kind) (int64, error)
}

// Store is the persistence contract used by the lifecycle engine.
type Store interface {
	Sequencer
	Counter

	CreateQuotation(ctx context.Context, q *document.Quotation) error
	GetQuotation(ctx context.Context, quotationID string) (*document.Quotation, error)

	CreateInvoice(ctx context.Context, inv *document.Invoice) error
	GetInvoice(ctx context.Context, invoiceID string) (*document.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status document.InvoiceStatus) error

	CreateReceipt(ctx context.Context, r *document.Receipt) error
	GetReceipt(ctx context.Context, receiptID string) (*document.Receipt, error)
	ListReceiptsByInvoice(ctx context.Context, invoiceID string) ([]document.Receipt, error)

	// WithinTx runs fn against a Store whose writes commit together. Invoices
	// read through the transactional Store stay locked until fn returns.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error

	Close() error
}
