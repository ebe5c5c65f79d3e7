package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Dan9191/transactions-service/internal/models"
)

var (
	columnList = strings.Join(models.Columns, ", ")

	selectTransactions = fmt.Sprintf(`
		SELECT %s
		FROM transactions`, columnList)

	insertTransaction = fmt.Sprintf(`
		INSERT INTO transactions (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, columnList, columnList)
)

// Repository provides database operations on the transactions table
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository on top of a connection pool
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListTransactions returns every stored transaction in storage order
func (r *Repository) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	const op = "list transactions"

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, storageError(op, fmt.Errorf("failed to acquire connection: %w", err))
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, selectTransactions)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := models.ScanTransaction(rows)
		if err != nil {
			return nil, storageError(op, fmt.Errorf("failed to scan transaction: %w", err))
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return transactions, nil
}

// AddTransaction inserts t and returns the row as stored
func (r *Repository) AddTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	const op = "add transaction"

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, storageError(op, fmt.Errorf("failed to acquire connection: %w", err))
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, insertTransaction, t.Args()...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, storageError(op, err)
		}
		return nil, &Error{Kind: KindNotFound, Op: op}
	}
	stored, err := models.ScanTransaction(rows)
	if err != nil {
		return nil, storageError(op, fmt.Errorf("failed to scan transaction: %w", err))
	}
	return stored, nil
}

// Ping checks that a pooled connection can reach the database
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return storageError("ping", err)
	}
	return nil
}
