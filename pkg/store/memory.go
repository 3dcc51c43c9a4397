// pkg/store/memory.go

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arbeit-tech/billing-service/pkg/document"
)

// Memory is an in-process Store. Transactions are serialized; there is no rollback.
type Memory struct {
	txMu sync.Mutex

	mu         sync.RWMutex
	quotations map[string]document.Quotation
	invoices   map[string]document.Invoice
	receipts   map[string]document.Receipt
	order      []string // receipt ids in insertion order
	counters   map[document.Kind]int64
	now        func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		quotations: make(map[string]document.Quotation),
		invoices:   make(map[string]document.Invoice),
		receipts:   make(map[string]document.Receipt),
		counters:   make(map[document.Kind]int64),
		now:        time.Now,
	}
}

// Next increments the per-kind counter. A fresh counter starts from the
// number of documents already stored.
func (m *Memory) Next(_ context.Context, kind document.Kind) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.counters[kind]; !ok {
		m.counters[kind] = m.countLocked(kind)
	}
	m.counters[kind]++
	return m.counters[kind], nil
}

// Count returns the number of stored documents of kind.
func (m *Memory) Count(_ context.Context, kind document.Kind) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.countLocked(kind), nil
}

func (m *Memory) countLocked(kind document.Kind) int64 {
	switch kind {
	case document.KindQuotation:
		return int64(len(m.quotations))
	case document.KindInvoice:
		return int64(len(m.invoices))
	case document.KindReceipt:
		return int64(len(m.receipts))
	}
	return 0
}

// CreateQuotation stores a copy of q.
func (m *Memory) CreateQuotation(_ context.Context, q *document.Quotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.quotations[q.QuotationID]; ok {
		return wrap("create quotation", ErrDuplicateID)
	}
	stamp(&q.Key, &q.CreatedAt, m.now())
	q.UpdatedAt = q.CreatedAt
	m.quotations[q.QuotationID] = cloneQuotation(*q)
	return nil
}

// GetQuotation returns a copy of the stored quotation.
func (m *Memory) GetQuotation(_ context.Context, quotationID string) (*document.Quotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.quotations[quotationID]
	if !ok {
		return nil, document.NotFound(document.KindQuotation, quotationID)
	}
	q = cloneQuotation(q)
	return &q, nil
}

// CreateInvoice stores a copy of inv.
func (m *Memory) CreateInvoice(_ context.Context, inv *document.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.invoices[inv.InvoiceID]; ok {
		return wrap("create invoice", ErrDuplicateID)
	}
	stamp(&inv.Key, &inv.CreatedAt, m.now())
	inv.UpdatedAt = inv.CreatedAt
	m.invoices[inv.InvoiceID] = cloneInvoice(*inv)
	return nil
}

// GetInvoice returns a copy of the stored invoice.
func (m *Memory) GetInvoice(_ context.Context, invoiceID string) (*document.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inv, ok := m.invoices[invoiceID]
	if !ok {
		return nil, document.NotFound(document.KindInvoice, invoiceID)
	}
	inv = cloneInvoice(inv)
	return &inv, nil
}

// UpdateInvoiceStatus sets the status and bumps UpdatedAt.
func (m *Memory) UpdateInvoiceStatus(_ context.Context, invoiceID string, status document.InvoiceStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.invoices[invoiceID]
	if !ok {
		return document.NotFound(document.KindInvoice, invoiceID)
	}
	inv.Status = status
	inv.UpdatedAt = m.now()
	m.invoices[invoiceID] = inv
	return nil
}

// CreateReceipt stores a copy of r.
func (m *Memory) CreateReceipt(_ context.Context, r *document.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.receipts[r.ReceiptID]; ok {
		return wrap("create receipt", ErrDuplicateID)
	}
	stamp(&r.Key, &r.CreatedAt, m.now())
	m.receipts[r.ReceiptID] = *r
	m.order = append(m.order, r.ReceiptID)
	return nil
}

// GetReceipt returns a copy of the stored receipt.
func (m *Memory) GetReceipt(_ context.Context, receiptID string) (*document.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.receipts[receiptID]
	if !ok {
		return nil, document.NotFound(document.KindReceipt, receiptID)
	}
	return &r, nil
}

// ListReceiptsByInvoice returns the receipts of invoiceID ordered by creation.
func (m *Memory) ListReceiptsByInvoice(_ context.Context, invoiceID string) ([]document.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []document.Receipt
	for _, id := range m.order {
		if r := m.receipts[id]; r.InvoiceID == invoiceID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// WithinTx runs fn while holding the store-wide transaction lock.
func (m *Memory) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m)
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

func stamp(key *uuid.UUID, createdAt *time.Time, now time.Time) {
	if *key == uuid.Nil {
		*key = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
}

func cloneQuotation(q document.Quotation) document.Quotation {
	q.Services = append(document.LineItems(nil), q.Services...)
	return q
}

func cloneInvoice(inv document.Invoice) document.Invoice {
	inv.Services = append(document.LineItems(nil), inv.Services...)
	return inv
}
