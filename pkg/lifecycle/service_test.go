// pkg/lifecycle/service_test.go

package lifecycle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/lifecycle"
	"github.com/arbeit-tech/billing-service/pkg/store"
)

var march = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func newService(t *testing.T) (*lifecycle.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return lifecycle.NewService(mem, lifecycle.WithClock(func() time.Time { return march })), mem
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func quotationInput() lifecycle.QuotationInput {
	return lifecycle.QuotationInput{
		ClientInput: lifecycle.ClientInput{Name: "Karim Traders", Email: "accounts@karim.example", Phone: "01700000000"},
		Services: []lifecycle.LineItemInput{
			{Description: "Web design", Quantity: 2, Price: dec("1500")},
			{Description: "Hosting", Quantity: 1, Price: dec("500")},
		},
		Discount: dec("100"),
		Tax:      dec("5"),
		Terms:    "50% advance",
	}
}

func invoiceInput(total string) lifecycle.InvoiceInput {
	return lifecycle.InvoiceInput{
		ClientInput: lifecycle.ClientInput{Name: "Karim Traders", Email: "accounts@karim.example"},
		Services: []lifecycle.LineItemInput{
			{Description: "Consulting", Quantity: 1, Price: dec(total)},
		},
	}
}

func Test_CreateQuotation_When_TotalsOmitted_ComputesThem(t *testing.T) {
	// setup
	ctx := context.Background()
	svc, _ := newService(t)

	// act
	q, err := svc.CreateQuotation(ctx, quotationInput())

	// assert
	require.NoError(t, err)
	assert.Equal(t, "AT-Q-202403001", q.QuotationID)
	assert.Equal(t, document.QuotationPending, q.Status)
	assert.True(t, q.Subtotal.Equal(dec("3500")), q.Subtotal.String())
	assert.True(t, q.TotalAmount.Equal(dec("3575")), q.TotalAmount.String())
	assert.True(t, q.Services[0].Total.Equal(dec("3000")))
	assert.Equal(t, march, q.CreatedAt)

	stored, err := svc.GetQuotation(ctx, q.QuotationID)
	require.NoError(t, err)
	assert.Equal(t, "Karim Traders", stored.Name)
}

func Test_CreateQuotation_When_TotalsMismatch_RejectsInput(t *testing.T) {
	// setup
	ctx := context.Background()
	svc, mem := newService(t)

	// arrange
	in := quotationInput()
	in.TotalAmount = decimal.NewNullDecimal(dec("9999"))

	// act
	_, err := svc.CreateQuotation(ctx, in)

	// assert
	require.ErrorIs(t, err, lifecycle.ErrValidation)
	var verr *lifecycle.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "totalAmount", verr.Fields[0].Field)

	n, err := mem.Count(ctx, document.KindQuotation)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func Test_CreateInvoice_When_SubtotalDisagreesWithServices_RejectsInput(t *testing.T) {
	// setup
	ctx := context.Background()
	svc, mem := newService(t)

	// arrange
	in := invoiceInput("1200")
	in.Subtotal = decimal.NewNullDecimal(dec("1000"))

	// act
	_, err := svc.CreateInvoice(ctx, in)

	// assert
	require.ErrorIs(t, err, lifecycle.ErrValidation)
	var verr *lifecycle.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "subtotal", verr.Fields[0].Field)

	n, err := mem.Count(ctx, document.KindInvoice)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func Test_CreateQuotation_When_TotalsWithinTolerance_StoresComputedValues(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	in := quotationInput()
	in.Subtotal = decimal.NewNullDecimal(dec("3500.004"))
	in.TotalAmount = decimal.NewNullDecimal(dec("3575.01"))

	q, err := svc.CreateQuotation(ctx, in)

	require.NoError(t, err)
	assert.True(t, q.Subtotal.Equal(dec("3500")))
	assert.True(t, q.TotalAmount.Equal(dec("3575")))
}

func Test_CreateQuotation_When_InputInvalid_ReportsEachField(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	in := quotationInput()
	in.Name = ""
	in.Email = "not-an-email"
	in.Tax = dec("120")
	in.Services[1].Price = dec("-1")

	_, err := svc.CreateQuotation(ctx, in)

	var verr *lifecycle.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "clientName")
	assert.Contains(t, fields, "clientEmail")
	assert.Contains(t, fields, "tax")
	assert.Contains(t, fields, "services[1].price")
}

func Test_CreateQuotation_When_NoServices_TrustsSuppliedTotals(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	in := lifecycle.QuotationInput{
		ClientInput: lifecycle.ClientInput{Name: "Walk-in"},
		Subtotal:    decimal.NewNullDecimal(dec("1000")),
		TotalAmount: decimal.NewNullDecimal(dec("1200")),
	}

	q, err := svc.CreateQuotation(ctx, in)

	require.NoError(t, err)
	assert.Empty(t, q.Services)
	assert.True(t, q.TotalAmount.Equal(dec("1200")))
}

func Test_DeriveInvoiceFromQuotation_CopiesClientItemsAndTotals(t *testing.T) {
	// setup
	ctx := context.Background()
	svc, _ := newService(t)

	// arrange
	q, err := svc.CreateQuotation(ctx, quotationInput())
	require.NoError(t, err)

	// act
	inv, err := svc.DeriveInvoiceFromQuotation(ctx, q.QuotationID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "AT-I-202403001", inv.InvoiceID)
	assert.Equal(t, q.QuotationID, inv.QuotationID)
	assert.Equal(t, q.Client, inv.Client)
	assert.Equal(t, q.Services, inv.Services)
	assert.True(t, inv.Subtotal.Equal(q.Subtotal))
	assert.True(t, inv.Discount.Equal(q.Discount))
	assert.True(t, inv.Tax.Equal(q.Tax))
	assert.True(t, inv.TotalAmount.Equal(q.TotalAmount))
	assert.Equal(t, document.StatusUnpaid, inv.Status)

	again, err := svc.GetQuotation(ctx, q.QuotationID)
	require.NoError(t, err)
	assert.Equal(t, document.QuotationPending, again.Status)
}

func Test_DeriveInvoiceFromQuotation_When_QuotationMissing_ReturnsNotFound(t *testing.T) {
	// setup
	ctx := context.Background()
	svc, mem := newService(t)

	// act
	_, err := svc.DeriveInvoiceFromQuotation(ctx, "AT-Q-202403999")

	// assert
	require.ErrorIs(t, err, document.ErrNotFound)
	assert.EqualError(t, err, "Quotation not found: AT-Q-202403999")
	n, err := mem.Count(ctx, document.KindInvoice)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func Test_DeriveReceiptFromInvoice_PaysInFullAndMarksInvoicePaid(t *testing.T) {
	// setup
	ctx := context.Background()
	svc, _ := newService(t)

	// arrange
	inv, err := svc.CreateInvoice(ctx, invoiceInput("12000"))
	require.NoError(t, err)

	// act
	r, err := svc.DeriveReceiptFromInvoice(ctx, inv.InvoiceID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "AT-R-202403001", r.ReceiptID)
	assert.Equal(t, inv.InvoiceID, r.InvoiceID)
	assert.True(t, r.AmountPaid.Equal(inv.TotalAmount))
	assert.Equal(t, "Cash", r.PaymentMethod)
	assert.Equal(t, inv.Client, r.Client)
	assert.Equal(t, march, r.Date)

	paid, err := svc.GetInvoice(ctx, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, document.StatusPaid, paid.Status)
}

func Test_DeriveReceiptFromInvoice_When_InvoiceMissing_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService(t)

	_, err := svc.DeriveReceiptFromInvoice(ctx, "AT-I-202403404")

	require.ErrorIs(t, err, document.ErrNotFound)
	n, err := mem.Count(ctx, document.KindReceipt)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func Test_CreateReceipt_When_PartialThenRemainder_ProgressesStatus(t *testing.T) {
	// setup
	ctx := context.Background()
	svc, _ := newService(t)

	// arrange
	inv, err := svc.CreateInvoice(ctx, invoiceInput("10000"))
	require.NoError(t, err)

	// act
	first, err := svc.CreateReceipt(ctx, lifecycle.ReceiptInput{InvoiceID: inv.InvoiceID, AmountPaid: dec("5000"), PaymentMethod: "bKash", TransactionID: "TX-1"})
	require.NoError(t, err)
	half, err := svc.GetInvoice(ctx, inv.InvoiceID)
	require.NoError(t, err)

	_, err = svc.CreateReceipt(ctx, lifecycle.ReceiptInput{InvoiceID: inv.InvoiceID, AmountPaid: dec("5000")})
	require.NoError(t, err)
	full, err := svc.GetInvoice(ctx, inv.InvoiceID)
	require.NoError(t, err)

	// assert
	assert.Equal(t, "bKash", first.PaymentMethod)
	assert.Equal(t, inv.Client, first.Client)
	assert.Equal(t, document.StatusPartiallyPaid, half.Status)
	assert.Equal(t, document.StatusPaid, full.Status)

	receipts, err := svc.ReceiptsForInvoice(ctx, inv.InvoiceID)
	require.NoError(t, err)
	assert.Len(t, receipts, 2)
	assert.Equal(t, "Cash", receipts[1].PaymentMethod)
}

func Test_CreateReceipt_When_Overpaid_StaysPaid(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	inv, err := svc.CreateInvoice(ctx, invoiceInput("100"))
	require.NoError(t, err)

	_, err = svc.CreateReceipt(ctx, lifecycle.ReceiptInput{InvoiceID: inv.InvoiceID, AmountPaid: dec("150")})
	require.NoError(t, err)

	got, err := svc.GetInvoice(ctx, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, document.StatusPaid, got.Status)
}

func Test_CreateReceipt_When_AmountZero_LeavesInvoiceUnpaid(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	inv, err := svc.CreateInvoice(ctx, invoiceInput("100"))
	require.NoError(t, err)

	_, err = svc.CreateReceipt(ctx, lifecycle.ReceiptInput{InvoiceID: inv.InvoiceID})
	require.NoError(t, err)

	got, err := svc.GetInvoice(ctx, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, document.StatusUnpaid, got.Status)
}

func Test_CreateReceipt_When_InvoiceUnknown_StoresReceiptOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	r, err := svc.CreateReceipt(ctx, lifecycle.ReceiptInput{InvoiceID: "AT-I-209912001", ClientName: "Walk-in", AmountPaid: dec("10")})

	require.NoError(t, err)
	stored, err := svc.GetReceipt(ctx, r.ReceiptID)
	require.NoError(t, err)
	assert.Equal(t, "Walk-in", stored.Name)
	assert.Equal(t, "AT-I-209912001", stored.InvoiceID)
}

func Test_CreateReceipt_When_InvoiceIDMissing_RejectsInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.CreateReceipt(ctx, lifecycle.ReceiptInput{AmountPaid: dec("10")})

	assert.ErrorIs(t, err, lifecycle.ErrValidation)
}

func Test_ReceiptsForInvoice_When_InvoiceMissing_ReturnsNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.ReceiptsForInvoice(context.Background(), "AT-I-202403001")

	assert.ErrorIs(t, err, document.ErrNotFound)
}

func Test_CreateInvoice_When_Concurrent_AssignsDistinctIDs(t *testing.T) {
	// setup
	ctx := context.Background()
	svc, _ := newService(t)

	// act
	const callers = 25
	var (
		mu  sync.Mutex
		ids = make(map[string]bool)
		wg  sync.WaitGroup
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, err := svc.CreateInvoice(ctx, invoiceInput("10"))
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			ids[inv.InvoiceID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	// assert
	assert.Len(t, ids, callers)
}

func Test_WithSequencer_When_Set_IsUsedForIDs(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := lifecycle.NewService(mem,
		lifecycle.WithClock(func() time.Time { return march }),
		lifecycle.WithSequencer(fixedSequencer(41)),
	)

	inv, err := svc.CreateInvoice(ctx, invoiceInput("10"))

	require.NoError(t, err)
	assert.Equal(t, "AT-I-202403041", inv.InvoiceID)
}

type fixedSequencer int64

func (f fixedSequencer) Next(context.Context, document.Kind) (int64, error) {
	return int64(f), nil
}
