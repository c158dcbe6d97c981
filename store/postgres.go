package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

const pgUniqueViolation = "23505"

const orderColumns = `order_id, wallet_address, requested_amount, status, payment_reference,
	customer_email, customer_phone, checkout_url, submitted_tx_hash,
	mint_tx_hash, mint_block_number, amount_minted, new_balance,
	failure_reason, failure_kind, created_at, updated_at, completed_at, failed_at, last_reconciled_at`

// pgxPool is the part of *pgxpool.Pool the store uses.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresOrderStore keeps orders in PostgreSQL; transitions are UPDATE ... WHERE status = 'PENDING'.
type PostgresOrderStore struct {
	pool pgxPool
}

var _ OrderStore = &PostgresOrderStore{}

func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func NewPostgresOrderStore(pool pgxPool) *PostgresOrderStore {
	return &PostgresOrderStore{pool: pool}
}

// Migrate applies every embedded migration not yet recorded in schema_migrations.
func (x *PostgresOrderStore) Migrate(ctx context.Context) error {
	_, err := x.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (filename TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())`)
	if err != nil {
		return fmt.Errorf("ensure schema table: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		var applied bool
		err := x.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE filename=$1)`, file).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied {
			continue
		}

		data, err := migrations.ReadFile(file)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(data)) != "" {
			if _, err := x.pool.Exec(ctx, string(data)); err != nil {
				return fmt.Errorf("apply migration %s: %w", file, err)
			}
		}
		if _, err := x.pool.Exec(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, file); err != nil {
			return fmt.Errorf("mark migration %s: %w", file, err)
		}
		log.Info("[STORE] Applied migration ", file)
	}
	return nil
}

func (x *PostgresOrderStore) Create(ctx context.Context, wallet string, amount decimal.Decimal, paymentReference string, customer models.Customer) (*models.Order, error) {
	order, err := newOrder(wallet, amount, paymentReference, customer)
	if err != nil {
		return nil, err
	}

	_, err = x.pool.Exec(ctx, `
		INSERT INTO orders (
			order_id, wallet_address, requested_amount, status, payment_reference,
			customer_email, customer_phone, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		order.OrderID,
		order.WalletAddress,
		order.RequestedAmount.String(),
		string(order.Status),
		order.PaymentReference,
		order.Customer.Email,
		order.Customer.Phone,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateOrder
		}
		return nil, err
	}
	return order, nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	var requested, status, failureKind string
	var mintTxHash *string
	var mintBlock *int64
	var amountMinted, newBalance decimal.NullDecimal

	err := row.Scan(
		&order.OrderID,
		&order.WalletAddress,
		&requested,
		&status,
		&order.PaymentReference,
		&order.Customer.Email,
		&order.Customer.Phone,
		&order.CheckoutURL,
		&order.SubmittedTxHash,
		&mintTxHash,
		&mintBlock,
		&amountMinted,
		&newBalance,
		&order.FailureReason,
		&failureKind,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.CompletedAt,
		&order.FailedAt,
		&order.LastReconciledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	order.RequestedAmount, err = decimal.NewFromString(requested)
	if err != nil {
		return nil, fmt.Errorf("order %s has invalid amount %q: %w", order.OrderID, requested, err)
	}
	order.Status = models.OrderStatus(status)
	order.FailureKind = models.FailureKind(failureKind)

	if mintTxHash != nil {
		result := &models.MintResult{TransactionHash: *mintTxHash}
		if mintBlock != nil {
			result.BlockNumber = uint64(*mintBlock)
		}
		if amountMinted.Valid {
			result.AmountMinted = amountMinted.Decimal
		}
		if newBalance.Valid {
			result.NewBalance = newBalance.Decimal
		}
		order.MintResult = result
	}
	return &order, nil
}

func (x *PostgresOrderStore) Get(ctx context.Context, orderID string) (*models.Order, error) {
	return scanOrder(x.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id=$1`, orderID))
}

func (x *PostgresOrderStore) GetByPaymentReference(ctx context.Context, paymentReference string) (*models.Order, error) {
	return scanOrder(x.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE payment_reference=$1`, paymentReference))
}

// transition runs a conditional update and tells a missing order apart from a terminal one.
func (x *PostgresOrderStore) transition(ctx context.Context, orderID string, set string, args ...interface{}) (*models.Order, error) {
	query := `UPDATE orders SET ` + set + `, updated_at=now() WHERE order_id=$1 AND status='PENDING' RETURNING ` + orderColumns
	order, err := scanOrder(x.pool.QueryRow(ctx, query, append([]interface{}{orderID}, args...)...))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if _, getErr := x.Get(ctx, orderID); getErr != nil {
		return nil, getErr
	}
	return nil, ErrInvalidTransition
}

func (x *PostgresOrderStore) SetCheckoutURL(ctx context.Context, orderID string, checkoutURL string) error {
	_, err := x.transition(ctx, orderID, `checkout_url=$2`, checkoutURL)
	return err
}

func (x *PostgresOrderStore) RecordSubmission(ctx context.Context, orderID string, txHash string) error {
	_, err := x.transition(ctx, orderID, `submitted_tx_hash=$2`, txHash)
	return err
}

func (x *PostgresOrderStore) MarkCompleted(ctx context.Context, orderID string, result models.MintResult) (*models.Order, error) {
	return x.transition(ctx, orderID,
		`status='COMPLETED', mint_tx_hash=$2, mint_block_number=$3, amount_minted=$4, new_balance=$5, completed_at=now()`,
		result.TransactionHash,
		int64(result.BlockNumber),
		result.AmountMinted.String(),
		result.NewBalance.String(),
	)
}

func (x *PostgresOrderStore) MarkFailed(ctx context.Context, orderID string, reason string, kind models.FailureKind) (*models.Order, error) {
	return x.transition(ctx, orderID,
		`status='MINT_FAILED', failure_reason=$2, failure_kind=$3, failed_at=now()`,
		truncate(reason, maxFailureReasonLength),
		string(kind),
	)
}

func (x *PostgresOrderStore) MarkReconciled(ctx context.Context, orderID string, at time.Time) error {
	_, err := x.transition(ctx, orderID, `last_reconciled_at=$2`, at.UTC())
	return err
}

func (x *PostgresOrderStore) query(ctx context.Context, sql string, args ...interface{}) ([]models.Order, error) {
	rows, err := x.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func limitClause(limit int64) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

func (x *PostgresOrderStore) ListByWallet(ctx context.Context, wallet string) ([]models.Order, error) {
	normalized, err := normalizeWallet(wallet)
	if err != nil {
		return nil, err
	}
	return x.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE wallet_address=$1 ORDER BY created_at DESC`, normalized)
}

func (x *PostgresOrderStore) ListPending(ctx context.Context, olderThan time.Time, limit int64) ([]models.Order, error) {
	return x.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE status='PENDING' AND created_at < $1 ORDER BY last_reconciled_at ASC NULLS FIRST, created_at ASC`+limitClause(limit), olderThan)
}

func (x *PostgresOrderStore) ListFailed(ctx context.Context, limit int64) ([]models.Order, error) {
	return x.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE status='MINT_FAILED' ORDER BY failed_at DESC`+limitClause(limit))
}

func (x *PostgresOrderStore) Close() {
	x.pool.Close()
}
