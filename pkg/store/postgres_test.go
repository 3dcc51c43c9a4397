// pkg/store/postgres_test.go

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arbeit-tech/billing-service/pkg/store"
)

// Postgres tests run only when POSTGRES_TEST_DSN points at a disposable database.
func postgresForTest(t *testing.T) store.Store {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := store.OpenPostgres(ctx, dsn)
	require.NoError(t, err, "error connecting to DB in test setup")

	pg, err := store.NewPostgres(db)
	require.NoError(t, err)
	require.NoError(t, pg.Migrate(ctx))

	_, err = db.ExecContext(ctx, `TRUNCATE quotations, invoices, receipts, document_counters`)
	require.NoError(t, err, "error cleaning up tables in test setup")

	t.Cleanup(func() { _ = pg.Close() })
	return pg
}

func TestPostgres_Contract(t *testing.T) {
	runStoreContract(t, postgresForTest)
}

func TestNewPostgres_NilDB(t *testing.T) {
	_, err := store.NewPostgres(nil)
	require.ErrorIs(t, err, store.ErrNilDatabase)
}
