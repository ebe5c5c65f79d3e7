package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Kind classifies repository failures
type Kind int

const (
	// KindStorage covers connection acquisition and SQL execution failures
	KindStorage Kind = iota
	// KindNotFound is reported when an insert succeeds but returns no row
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the only error type returned by Repository methods
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// IsStorage reports whether err is a storage failure
func IsStorage(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindStorage
}

// IsNotFound reports whether err is the insert-returned-nothing anomaly
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err was caused by a duplicate key,
// for either the lib/pq or the pgx driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}
