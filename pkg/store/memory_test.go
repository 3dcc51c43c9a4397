// pkg/store/memory_test.go

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/store"
)

func TestMemory_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) store.Store {
		return store.NewMemory()
	})
}

func Test_Next_When_DocumentsExist_ContinuesFromCount(t *testing.T) {
	// setup
	ctx := context.Background()
	s := store.NewMemory()

	// arrange
	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateInvoice(ctx, fixtureInvoice(t)))
	}

	// act
	first, err := s.Next(ctx, document.KindInvoice)
	require.NoError(t, err)
	second, err := s.Next(ctx, document.KindInvoice)
	require.NoError(t, err)
	quotations, err := s.Next(ctx, document.KindQuotation)
	require.NoError(t, err)

	// assert
	assert.EqualValues(t, 4, first)
	assert.EqualValues(t, 5, second)
	assert.EqualValues(t, 1, quotations)
}

func Test_GetInvoice_ReturnsACopy(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	inv := fixtureInvoice(t)
	require.NoError(t, s.CreateInvoice(ctx, inv))

	got, err := s.GetInvoice(ctx, inv.InvoiceID)
	require.NoError(t, err)
	got.Services[0].Description = "mutated"
	got.Status = document.StatusPaid

	again, err := s.GetInvoice(ctx, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, "Audit", again.Services[0].Description)
	assert.Equal(t, document.StatusUnpaid, again.Status)
}
