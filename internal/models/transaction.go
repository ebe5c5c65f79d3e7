package models

import (
	"encoding/json"
	"fmt"
)

// Columns lists the transactions table columns in row order
var Columns = []string{
	"id",
	"datetime",
	"trx_type",
	"trx_subtype",
	"wallet_from",
	"wallet_to",
	"name",
	"amount",
	"fee",
	"description",
}

// Transaction represents one ledger entry stored in the transactions table.
// Optional fields are nil when the column is NULL.
type Transaction struct {
	ID          string  `json:"id"`
	Datetime    string  `json:"datetime"`
	TrxType     string  `json:"trx_type"`
	TrxSubtype  string  `json:"trx_subtype"`
	WalletFrom  *string `json:"wallet_from"`
	WalletTo    *string `json:"wallet_to"`
	Name        string  `json:"name"`
	Amount      int64   `json:"amount"`
	Fee         *int64  `json:"fee"`
	Description *string `json:"description"`
}

// MissingFieldError is returned when a required field is absent or null in a JSON payload
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field `%s`", e.Field)
}

// UnmarshalJSON decodes a transaction and rejects payloads without the required fields
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          *string `json:"id"`
		Datetime    *string `json:"datetime"`
		TrxType     *string `json:"trx_type"`
		TrxSubtype  *string `json:"trx_subtype"`
		WalletFrom  *string `json:"wallet_from"`
		WalletTo    *string `json:"wallet_to"`
		Name        *string `json:"name"`
		Amount      *int64  `json:"amount"`
		Fee         *int64  `json:"fee"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.ID == nil:
		return &MissingFieldError{Field: "id"}
	case raw.Datetime == nil:
		return &MissingFieldError{Field: "datetime"}
	case raw.TrxType == nil:
		return &MissingFieldError{Field: "trx_type"}
	case raw.TrxSubtype == nil:
		return &MissingFieldError{Field: "trx_subtype"}
	case raw.Name == nil:
		return &MissingFieldError{Field: "name"}
	case raw.Amount == nil:
		return &MissingFieldError{Field: "amount"}
	}

	*t = Transaction{
		ID:          *raw.ID,
		Datetime:    *raw.Datetime,
		TrxType:     *raw.TrxType,
		TrxSubtype:  *raw.TrxSubtype,
		WalletFrom:  raw.WalletFrom,
		WalletTo:    raw.WalletTo,
		Name:        *raw.Name,
		Amount:      *raw.Amount,
		Fee:         raw.Fee,
		Description: raw.Description,
	}
	return nil
}

// Scanner is implemented by *sql.Row and *sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// ScanTransaction maps a row selected in Columns order into a Transaction
func ScanTransaction(row Scanner) (*Transaction, error) {
	var t Transaction
	err := row.Scan(
		&t.ID,
		&t.Datetime,
		&t.TrxType,
		&t.TrxSubtype,
		&t.WalletFrom,
		&t.WalletTo,
		&t.Name,
		&t.Amount,
		&t.Fee,
		&t.Description,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Args returns the insert arguments in Columns order. database/sql sends nil
// optional fields as NULL.
func (t *Transaction) Args() []any {
	return []any{
		t.ID,
		t.Datetime,
		t.TrxType,
		t.TrxSubtype,
		t.WalletFrom,
		t.WalletTo,
		t.Name,
		t.Amount,
		t.Fee,
		t.Description,
	}
}
