// pkg/store/contract_test.go

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/store"
)

// runStoreContract exercises behaviour every Store implementation must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("quotation round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		valid := time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)

		q := fixtureQuotation(t, &valid)
		require.NoError(t, s.CreateQuotation(ctx, q))
		assert.NotEqual(t, uuid.Nil, q.Key)
		assert.False(t, q.CreatedAt.IsZero())

		got, err := s.GetQuotation(ctx, q.QuotationID)
		require.NoError(t, err)
		assert.Equal(t, q.Client, got.Client)
		assert.Len(t, got.Services, 2)
		assert.True(t, got.TotalAmount.Equal(q.TotalAmount))
		require.NotNil(t, got.ValidityDate)
		assert.True(t, got.ValidityDate.Equal(valid))
		assert.Equal(t, document.QuotationPending, got.Status)
	})

	t.Run("missing documents are not found", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.GetQuotation(ctx, "AT-Q-202401001")
		assert.ErrorIs(t, err, document.ErrNotFound)
		_, err = s.GetInvoice(ctx, "AT-I-202401001")
		assert.ErrorIs(t, err, document.ErrNotFound)
		_, err = s.GetReceipt(ctx, "AT-R-202401001")
		assert.ErrorIs(t, err, document.ErrNotFound)
		assert.ErrorIs(t, s.UpdateInvoiceStatus(ctx, "AT-I-202401001", document.StatusPaid), document.ErrNotFound)
	})

	t.Run("duplicate business ids are rejected", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		inv := fixtureInvoice(t)
		require.NoError(t, s.CreateInvoice(ctx, inv))

		dup := fixtureInvoice(t)
		dup.InvoiceID = inv.InvoiceID
		err := s.CreateInvoice(ctx, dup)
		assert.ErrorIs(t, err, store.ErrDuplicateID)

		var storageErr *store.StorageError
		assert.ErrorAs(t, err, &storageErr)
	})

	t.Run("invoice status updates and receipts by invoice", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		inv := fixtureInvoice(t)
		require.NoError(t, s.CreateInvoice(ctx, inv))
		require.NoError(t, s.UpdateInvoiceStatus(ctx, inv.InvoiceID, document.StatusPartiallyPaid))

		got, err := s.GetInvoice(ctx, inv.InvoiceID)
		require.NoError(t, err)
		assert.Equal(t, document.StatusPartiallyPaid, got.Status)

		for i := 0; i < 2; i++ {
			r := &document.Receipt{
				ReceiptID:     uniqueID("AT-R"),
				InvoiceID:     inv.InvoiceID,
				Client:        inv.Client,
				AmountPaid:    decimal.NewFromInt(25),
				PaymentMethod: "Bank Transfer",
				Date:          time.Now().UTC(),
			}
			require.NoError(t, s.CreateReceipt(ctx, r))
		}
		require.NoError(t, s.CreateReceipt(ctx, &document.Receipt{
			ReceiptID: uniqueID("AT-R"), InvoiceID: "someone-else", Date: time.Now().UTC(),
		}))

		receipts, err := s.ListReceiptsByInvoice(ctx, inv.InvoiceID)
		require.NoError(t, err)
		assert.Len(t, receipts, 2)
		assert.True(t, document.TotalPaid(receipts).Equal(decimal.NewFromInt(50)))
	})

	t.Run("sequence numbers are unique under concurrency", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const callers = 20
		var (
			mu   sync.Mutex
			seen = make(map[int64]bool)
			wg   sync.WaitGroup
		)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := s.Next(ctx, document.KindReceipt)
				assert.NoError(t, err)
				mu.Lock()
				seen[n] = true
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, seen, callers)
	})

	t.Run("transaction sees its own writes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		inv := fixtureInvoice(t)
		require.NoError(t, s.CreateInvoice(ctx, inv))

		err := s.WithinTx(ctx, func(ctx context.Context, tx store.Store) error {
			locked, err := tx.GetInvoice(ctx, inv.InvoiceID)
			if err != nil {
				return err
			}
			return tx.UpdateInvoiceStatus(ctx, locked.InvoiceID, document.StatusPaid)
		})
		require.NoError(t, err)

		got, err := s.GetInvoice(ctx, inv.InvoiceID)
		require.NoError(t, err)
		assert.Equal(t, document.StatusPaid, got.Status)
	})
}

func fixtureQuotation(t *testing.T, validity *time.Time) *document.Quotation {
	t.Helper()
	items := document.WithLineTotals([]document.LineItem{
		{Description: "Website redesign", Quantity: 1, Price: decimal.NewFromInt(25000)},
		{Description: "Support hours", Quantity: 10, Price: decimal.NewFromInt(800)},
	})
	subtotal := document.Subtotal(items)
	return &document.Quotation{
		QuotationID:  uniqueID("AT-Q"),
		Client:       document.Client{Name: "Karim Traders", Email: "accounts@karim.example", Address: "Dhaka", Phone: "01700000000"},
		Services:     items,
		Subtotal:     subtotal,
		Tax:          decimal.NewFromInt(5),
		TotalAmount:  document.Total(subtotal, decimal.Zero, decimal.NewFromInt(5)),
		ValidityDate: validity,
		Terms:        "50% advance",
		Status:       document.QuotationPending,
	}
}

func fixtureInvoice(t *testing.T) *document.Invoice {
	t.Helper()
	return &document.Invoice{
		InvoiceID:   uniqueID("AT-I"),
		Client:      document.Client{Name: "Karim Traders", Email: "accounts@karim.example"},
		Services:    document.LineItems{{Description: "Audit", Quantity: 1, Price: decimal.NewFromInt(100), Total: decimal.NewFromInt(100)}},
		Subtotal:    decimal.NewFromInt(100),
		TotalAmount: decimal.NewFromInt(100),
		Status:      document.StatusUnpaid,
	}
}

func uniqueID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
