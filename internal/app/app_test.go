// internal/app/app_test.go

package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbeit-tech/billing-service/internal/app"
	"github.com/arbeit-tech/billing-service/internal/config"
	"github.com/arbeit-tech/billing-service/pkg/document"
)

func memoryConfig(t *testing.T) *config.Config {
	return &config.Config{
		HTTPAddr:        ":0",
		StoreDriver:     config.StoreMemory,
		SequenceBackend: config.SequenceStore,
		PDFDir:          t.TempDir(),
		BrandName:       "Arbeit Tech",
	}
}

func Test_New_WithMemoryStore_ServesRequests(t *testing.T) {
	// setup
	ctx := context.Background()
	a, err := app.New(ctx, memoryConfig(t))
	require.NoError(t, err)
	defer a.Close()

	// act
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", strings.NewReader(`{"clientName": "Karim Traders"}`))
	a.Server().ServeHTTP(rec, req)

	// assert
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var inv document.Invoice
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &inv))

	art, err := a.Publisher.Publish(ctx, document.KindInvoice, inv.InvoiceID)
	require.NoError(t, err)
	assert.FileExists(t, art.Path)
	assert.Equal(t, 1, art.Output.Layout.Pages)
}

func Test_Migrate_When_MemoryStore_Fails(t *testing.T) {
	a, err := app.New(context.Background(), memoryConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.ErrorIs(t, a.Migrate(context.Background()), app.ErrNotPostgres)
}
