// pkg/render/normalize_test.go

package render_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/render"
	"github.com/arbeit-tech/billing-service/pkg/store"
)

func storedInvoice() *document.Invoice {
	return &document.Invoice{
		InvoiceID:   "AT-I-202403001",
		Client:      document.Client{Name: "Karim Traders", Email: "accounts@karim.example"},
		Services:    document.LineItems{{Description: "Audit", Quantity: 2, Price: decimal.NewFromInt(500), Total: decimal.NewFromInt(1000)}},
		Subtotal:    decimal.NewFromInt(1000),
		Discount:    decimal.NewFromInt(50),
		Tax:         decimal.NewFromInt(10),
		TotalAmount: decimal.NewFromInt(1050),
		Status:      document.StatusUnpaid,
		CreatedAt:   issued,
	}
}

func Test_FromReceipt_TakesFiguresFromParentInvoice(t *testing.T) {
	inv := storedInvoice()
	r := &document.Receipt{
		ReceiptID:     "AT-R-202403001",
		InvoiceID:     inv.InvoiceID,
		Client:        inv.Client,
		AmountPaid:    decimal.NewFromInt(400),
		PaymentMethod: "Cash",
		CreatedAt:     issued.Add(time.Hour),
	}

	doc := render.FromReceipt(r, inv)

	assert.Equal(t, document.KindReceipt, doc.Kind)
	assert.Equal(t, "AT-R-202403001", doc.ID)
	assert.Equal(t, inv.InvoiceID, doc.RelatedID)
	assert.Equal(t, r.CreatedAt, doc.Date, "date falls back to createdAt")
	assert.Len(t, doc.Items, 1)
	assert.True(t, doc.TotalAmount.Equal(decimal.NewFromInt(1050)))
	assert.True(t, doc.TaxPercent.Equal(decimal.NewFromInt(10)))
}

func Test_FromReceipt_When_ParentMissing_UsesZeroFigures(t *testing.T) {
	r := &document.Receipt{ReceiptID: "AT-R-202403002", InvoiceID: "AT-I-209901001", Date: issued, AmountPaid: decimal.NewFromInt(10)}

	doc := render.FromReceipt(r, nil)

	assert.Empty(t, doc.Items)
	assert.True(t, doc.Subtotal.IsZero())
	assert.True(t, doc.TotalAmount.IsZero())
	assert.Equal(t, issued, doc.Date)
}

func Test_Load_When_ReceiptParentMissing_RendersWithEmptyItems(t *testing.T) {
	// setup
	ctx := context.Background()
	mem := store.NewMemory()

	// arrange
	require.NoError(t, mem.CreateReceipt(ctx, &document.Receipt{
		ReceiptID:     "AT-R-202403003",
		InvoiceID:     "AT-I-209901001",
		Client:        document.Client{Name: "Walk-in"},
		AmountPaid:    decimal.NewFromInt(75),
		PaymentMethod: "Cash",
		Date:          issued,
	}))

	// act
	doc, err := render.Load(ctx, mem, document.KindReceipt, "AT-R-202403003")
	require.NoError(t, err)
	out, err := render.NewRenderer().Render(doc)

	// assert
	require.NoError(t, err)
	assert.Empty(t, doc.Items)
	assert.True(t, doc.Subtotal.IsZero())
	assert.True(t, doc.TotalAmount.IsZero())
	assert.Empty(t, out.Layout.Rows)
	assert.True(t, out.Layout.RunningTotal.IsZero())
}

func Test_Load_QuotationAndInvoice(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	valid := issued.AddDate(0, 0, 30)

	require.NoError(t, mem.CreateInvoice(ctx, storedInvoice()))
	require.NoError(t, mem.CreateQuotation(ctx, &document.Quotation{
		QuotationID:  "AT-Q-202403001",
		Client:       document.Client{Name: "Karim Traders"},
		ValidityDate: &valid,
		Terms:        "Net 30",
		Status:       document.QuotationPending,
		CreatedAt:    issued,
	}))

	q, err := render.Load(ctx, mem, document.KindQuotation, "AT-Q-202403001")
	require.NoError(t, err)
	assert.Equal(t, "Net 30", q.Terms)
	require.NotNil(t, q.ValidUntil)
	assert.True(t, q.ValidUntil.Equal(valid))

	inv, err := render.Load(ctx, mem, document.KindInvoice, "AT-I-202403001")
	require.NoError(t, err)
	assert.Equal(t, issued, inv.Date)
	assert.True(t, inv.Discount.Equal(decimal.NewFromInt(50)))
}

func Test_Load_When_Missing_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	for _, kind := range document.Kinds {
		_, err := render.Load(ctx, mem, kind, "AT-X-000000001")
		assert.ErrorIs(t, err, document.ErrNotFound, kind.String())
	}
}
