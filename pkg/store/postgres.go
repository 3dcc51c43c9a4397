// pkg/store/postgres.go

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/arbeit-tech/billing-service/pkg/document"
)

//go:embed schema.sql
var schemaSQL string

const (
	tableQuotations = "quotations"
	tableInvoices   = "invoices"
	tableReceipts   = "receipts"
	tableCounters   = "document_counters"

	pqUniqueViolation = "23505"
)

var (
	quotationColumns = []any{
		"id", "quotation_id", "client_name", "client_address", "client_phone", "client_email",
		"services", "subtotal", "discount", "tax", "total_amount",
		"validity_date", "terms", "status", "created_at", "updated_at",
	}
	invoiceColumns = []any{
		"id", "invoice_id", "quotation_id", "client_name", "client_address", "client_phone", "client_email",
		"services", "subtotal", "discount", "tax", "total_amount",
		"status", "created_at", "updated_at",
	}
	receiptColumns = []any{
		"id", "receipt_id", "invoice_id", "client_name", "client_address", "client_phone", "client_email",
		"amount_paid", "payment_method", "transaction_id", "date", "created_at",
	}
	kindTables = map[document.Kind]string{
		document.KindQuotation: tableQuotations,
		document.KindInvoice:   tableInvoices,
		document.KindReceipt:   tableReceipts,
	}
)

// Postgres is a Store backed by PostgreSQL. Queries are built with goqu and
// executed through sqlx.
type Postgres struct {
	db      *sqlx.DB
	q       sqlx.ExtContext
	tx      *sqlx.Tx
	dialect goqu.DialectWrapper
	log     zerolog.Logger
	now     func() time.Time
}

// PostgresOption configures a Postgres store.
type PostgresOption func(*Postgres)

// WithLogger sets the logger used for SQL debug output.
func WithLogger(log zerolog.Logger) PostgresOption {
	return func(p *Postgres) { p.log = log }
}

// OpenPostgres connects to dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, wrap("connect", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// NewPostgres wraps an open connection.
func NewPostgres(db *sqlx.DB, opts ...PostgresOption) (*Postgres, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	p := &Postgres{
		db:      db,
		q:       db,
		dialect: goqu.Dialect("postgres"),
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Migrate applies the embedded schema. It is idempotent.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schemaSQL); err != nil {
		return wrap("migrate", err)
	}
	return nil
}

// Next upserts the kind's counter row. A missing row is seeded from the
// table's row count so ids continue where count-based numbering left off.
func (p *Postgres) Next(ctx context.Context, kind document.Kind) (int64, error) {
	table, ok := kindTables[kind]
	if !ok {
		return 0, wrap("next sequence", fmt.Errorf("unknown kind %v", kind))
	}

	query, args, err := p.dialect.Insert(tableCounters).
		Rows(goqu.Record{
			"kind":  kind.String(),
			"value": goqu.L(fmt.Sprintf("(SELECT count(*) FROM %s) + 1", table)),
		}).
		OnConflict(goqu.DoUpdate("kind", goqu.Record{"value": goqu.L(tableCounters + ".value + 1")})).
		Returning("value").
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, wrap("build next sequence", err)
	}
	p.debug(query)

	var value int64
	if err := p.q.QueryRowxContext(ctx, query, args...).Scan(&value); err != nil {
		return 0, wrap("next sequence", err)
	}
	return value, nil
}

// Count returns the number of rows in the kind's table.
func (p *Postgres) Count(ctx context.Context, kind document.Kind) (int64, error) {
	table, ok := kindTables[kind]
	if !ok {
		return 0, wrap("count", fmt.Errorf("unknown kind %v", kind))
	}
	query, args, err := p.dialect.From(table).Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return 0, wrap("build count", err)
	}

	var n int64
	if err := sqlx.GetContext(ctx, p.q, &n, query, args...); err != nil {
		return 0, wrap("count", err)
	}
	return n, nil
}

// CreateQuotation inserts q, assigning its key and timestamps.
func (p *Postgres) CreateQuotation(ctx context.Context, q *document.Quotation) error {
	stamp(&q.Key, &q.CreatedAt, p.now())
	q.UpdatedAt = q.CreatedAt

	var validity any
	if q.ValidityDate != nil {
		validity = *q.ValidityDate
	}
	return p.insert(ctx, "create quotation", tableQuotations, goqu.Record{
		"id":             q.Key.String(),
		"quotation_id":   q.QuotationID,
		"client_name":    q.Name,
		"client_address": q.Address,
		"client_phone":   q.Phone,
		"client_email":   q.Email,
		"services":       lineItemsJSON(q.Services),
		"subtotal":       q.Subtotal.String(),
		"discount":       q.Discount.String(),
		"tax":            q.Tax.String(),
		"total_amount":   q.TotalAmount.String(),
		"validity_date":  validity,
		"terms":          q.Terms,
		"status":         string(q.Status),
		"created_at":     q.CreatedAt,
		"updated_at":     q.UpdatedAt,
	})
}

// GetQuotation loads a quotation by business id.
func (p *Postgres) GetQuotation(ctx context.Context, quotationID string) (*document.Quotation, error) {
	ds := p.dialect.From(tableQuotations).Select(quotationColumns...).
		Where(goqu.C("quotation_id").Eq(quotationID))

	var q document.Quotation
	if err := p.get(ctx, "get quotation", ds, &q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.NotFound(document.KindQuotation, quotationID)
		}
		return nil, err
	}
	return &q, nil
}

// CreateInvoice inserts inv, assigning its key and timestamps.
func (p *Postgres) CreateInvoice(ctx context.Context, inv *document.Invoice) error {
	stamp(&inv.Key, &inv.CreatedAt, p.now())
	inv.UpdatedAt = inv.CreatedAt

	return p.insert(ctx, "create invoice", tableInvoices, goqu.Record{
		"id":             inv.Key.String(),
		"invoice_id":     inv.InvoiceID,
		"quotation_id":   inv.QuotationID,
		"client_name":    inv.Name,
		"client_address": inv.Address,
		"client_phone":   inv.Phone,
		"client_email":   inv.Email,
		"services":       lineItemsJSON(inv.Services),
		"subtotal":       inv.Subtotal.String(),
		"discount":       inv.Discount.String(),
		"tax":            inv.Tax.String(),
		"total_amount":   inv.TotalAmount.String(),
		"status":         string(inv.Status),
		"created_at":     inv.CreatedAt,
		"updated_at":     inv.UpdatedAt,
	})
}

// GetInvoice loads an invoice. Inside WithinTx the row is locked FOR UPDATE.
func (p *Postgres) GetInvoice(ctx context.Context, invoiceID string) (*document.Invoice, error) {
	ds := p.dialect.From(tableInvoices).Select(invoiceColumns...).
		Where(goqu.C("invoice_id").Eq(invoiceID))
	if p.tx != nil {
		ds = ds.ForUpdate(exp.Wait)
	}

	var inv document.Invoice
	if err := p.get(ctx, "get invoice", ds, &inv); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.NotFound(document.KindInvoice, invoiceID)
		}
		return nil, err
	}
	return &inv, nil
}

// UpdateInvoiceStatus sets status and updated_at.
func (p *Postgres) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status document.InvoiceStatus) error {
	query, args, err := p.dialect.Update(tableInvoices).
		Set(goqu.Record{"status": string(status), "updated_at": p.now()}).
		Where(goqu.C("invoice_id").Eq(invoiceID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return wrap("build update invoice status", err)
	}
	p.debug(query)

	res, err := p.q.ExecContext(ctx, query, args...)
	if err != nil {
		return wrap("update invoice status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap("update invoice status", err)
	}
	if n == 0 {
		return document.NotFound(document.KindInvoice, invoiceID)
	}
	return nil
}

// CreateReceipt inserts r.
func (p *Postgres) CreateReceipt(ctx context.Context, r *document.Receipt) error {
	stamp(&r.Key, &r.CreatedAt, p.now())

	return p.insert(ctx, "create receipt", tableReceipts, goqu.Record{
		"id":             r.Key.String(),
		"receipt_id":     r.ReceiptID,
		"invoice_id":     r.InvoiceID,
		"client_name":    r.Name,
		"client_address": r.Address,
		"client_phone":   r.Phone,
		"client_email":   r.Email,
		"amount_paid":    r.AmountPaid.String(),
		"payment_method": r.PaymentMethod,
		"transaction_id": r.TransactionID,
		"date":           r.Date,
		"created_at":     r.CreatedAt,
	})
}

// GetReceipt loads a receipt by business id.
func (p *Postgres) GetReceipt(ctx context.Context, receiptID string) (*document.Receipt, error) {
	ds := p.dialect.From(tableReceipts).Select(receiptColumns...).
		Where(goqu.C("receipt_id").Eq(receiptID))

	var r document.Receipt
	if err := p.get(ctx, "get receipt", ds, &r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.NotFound(document.KindReceipt, receiptID)
		}
		return nil, err
	}
	return &r, nil
}

// ListReceiptsByInvoice returns the receipts of invoiceID ordered by creation.
func (p *Postgres) ListReceiptsByInvoice(ctx context.Context, invoiceID string) ([]document.Receipt, error) {
	query, args, err := p.dialect.From(tableReceipts).Select(receiptColumns...).
		Where(goqu.C("invoice_id").Eq(invoiceID)).
		Order(goqu.C("created_at").Asc(), goqu.C("receipt_id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, wrap("build list receipts", err)
	}
	p.debug(query)

	var receipts []document.Receipt
	if err := sqlx.SelectContext(ctx, p.q, &receipts, query, args...); err != nil {
		return nil, wrap("list receipts", err)
	}
	return receipts, nil
}

// WithinTx runs fn in a database transaction, committing when fn returns nil.
func (p *Postgres) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) (err error) {
	if p.tx != nil {
		return fn(ctx, p)
	}

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrap("begin tx", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				p.log.Warn().Err(rbErr).Msg("rollback failed")
			}
		}
	}()

	child := *p
	child.q = tx
	child.tx = tx
	if err = fn(ctx, &child); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return wrap("commit tx", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (p *Postgres) Close() error {
	if p.tx != nil {
		return nil
	}
	return p.db.Close()
}

func (p *Postgres) insert(ctx context.Context, op, table string, rec goqu.Record) error {
	query, args, err := p.dialect.Insert(table).Rows(rec).Prepared(true).ToSQL()
	if err != nil {
		return wrap("build "+op, err)
	}
	p.debug(query)

	if _, err := p.q.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return wrap(op, fmt.Errorf("%w: %s", ErrDuplicateID, pqErr.Detail))
		}
		return wrap(op, err)
	}
	return nil
}

// get runs ds and scans a single row into dest. sql.ErrNoRows is returned
// unwrapped so callers can map it to document.ErrNotFound.
func (p *Postgres) get(ctx context.Context, op string, ds *goqu.SelectDataset, dest any) error {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return wrap("build "+op, err)
	}
	p.debug(query)

	if err := sqlx.GetContext(ctx, p.q, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return wrap(op, err)
	}
	return nil
}

func lineItemsJSON(items document.LineItems) string {
	v, err := items.Value()
	if err != nil {
		return "[]"
	}
	return v.(string)
}

func (p *Postgres) debug(query string) {
	p.log.Debug().Str("query", query).Msg("executing sql")
}

var (
	_ Store = (*Postgres)(nil)
	_ Store = (*Memory)(nil)
)
