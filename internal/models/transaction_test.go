package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"
)

func TestTransaction_UnmarshalOptionalFieldsAbsent(t *testing.T) {
	body := `{"id":"t1","datetime":"2024-01-01T00:00:00Z","trx_type":"deposit","trx_subtype":"cash","name":"Alice","amount":1000}`

	var tx Transaction
	if err := json.Unmarshal([]byte(body), &tx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tx.ID != "t1" || tx.Amount != 1000 || tx.Name != "Alice" {
		t.Errorf("Unexpected transaction: %+v", tx)
	}
	if tx.WalletFrom != nil || tx.WalletTo != nil || tx.Fee != nil || tx.Description != nil {
		t.Errorf("Expected optional fields to be nil, got %+v", tx)
	}
}

func TestTransaction_UnmarshalExplicitNulls(t *testing.T) {
	body := `{"id":"t2","datetime":"d","trx_type":"transfer","trx_subtype":"p2p","wallet_from":"w1","wallet_to":null,"name":"Bob","amount":-5,"fee":null,"description":"rent"}`

	var tx Transaction
	if err := json.Unmarshal([]byte(body), &tx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tx.WalletFrom == nil || *tx.WalletFrom != "w1" {
		t.Errorf("Expected wallet_from w1, got %v", tx.WalletFrom)
	}
	if tx.WalletTo != nil {
		t.Errorf("Expected wallet_to nil, got %v", *tx.WalletTo)
	}
	if tx.Fee != nil {
		t.Errorf("Expected fee nil, got %v", *tx.Fee)
	}
	if tx.Description == nil || *tx.Description != "rent" {
		t.Errorf("Expected description rent, got %v", tx.Description)
	}
	if tx.Amount != -5 {
		t.Errorf("Expected amount -5, got %d", tx.Amount)
	}
}

func TestTransaction_UnmarshalMissingRequired(t *testing.T) {
	cases := map[string]string{
		"id":     `{"datetime":"d","trx_type":"a","trx_subtype":"b","name":"n","amount":1}`,
		"name":   `{"id":"x","datetime":"d","trx_type":"a","trx_subtype":"b","amount":1}`,
		"amount": `{"id":"x","datetime":"d","trx_type":"a","trx_subtype":"b","name":"n","amount":null}`,
	}

	for field, body := range cases {
		var tx Transaction
		err := json.Unmarshal([]byte(body), &tx)

		var missing *MissingFieldError
		if !errors.As(err, &missing) {
			t.Fatalf("%s: expected MissingFieldError, got %v", field, err)
		}
		if missing.Field != field {
			t.Errorf("Expected missing field %s, got %s", field, missing.Field)
		}
	}
}

func TestTransaction_UnmarshalWrongType(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"id":"x","datetime":"d","trx_type":"a","trx_subtype":"b","name":"n","amount":"ten"}`), &tx)
	if err == nil {
		t.Fatal("Expected error for string amount")
	}
}

func TestTransaction_MarshalIncludesNulls(t *testing.T) {
	tx := Transaction{
		ID:         "t1",
		Datetime:   "2024-01-01T00:00:00Z",
		TrxType:    "deposit",
		TrxSubtype: "cash",
		Name:       "Alice",
		Amount:     1000,
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(out) != len(Columns) {
		t.Errorf("Expected %d keys, got %d", len(Columns), len(out))
	}
	for _, key := range []string{"wallet_from", "wallet_to", "fee", "description"} {
		v, ok := out[key]
		if !ok {
			t.Errorf("Expected key %s to be present", key)
		}
		if v != nil {
			t.Errorf("Expected %s to be null, got %v", key, v)
		}
	}
}

type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case **string:
			if r.values[i] != nil {
				s := r.values[i].(string)
				*p = &s
			}
		case *int64:
			*p = r.values[i].(int64)
		case **int64:
			if r.values[i] != nil {
				n := r.values[i].(int64)
				*p = &n
			}
		}
	}
	return nil
}

func TestScanTransaction_MapsNullColumns(t *testing.T) {
	row := fakeRow{values: []any{"t1", "d", "withdrawal", "atm", "w1", nil, "Carol", int64(300), int64(2), nil}}

	tx, err := ScanTransaction(row)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tx.WalletFrom == nil || *tx.WalletFrom != "w1" {
		t.Errorf("Expected wallet_from w1, got %v", tx.WalletFrom)
	}
	if tx.WalletTo != nil || tx.Description != nil {
		t.Errorf("Expected nil wallet_to and description, got %+v", tx)
	}
	if tx.Fee == nil || *tx.Fee != 2 {
		t.Errorf("Expected fee 2, got %v", tx.Fee)
	}
}

func TestTransaction_Args(t *testing.T) {
	fee := int64(7)
	tx := Transaction{ID: "t1", Datetime: "d", TrxType: "a", TrxSubtype: "b", WalletTo: strPtr("w2"), Name: "n", Amount: 10, Fee: &fee}

	args := tx.Args()
	if len(args) != len(Columns) {
		t.Fatalf("Expected %d args, got %d", len(Columns), len(args))
	}

	want := []driver.Value{"t1", "d", "a", "b", nil, "w2", "n", int64(10), int64(7), nil}
	for i, arg := range args {
		got, err := driver.DefaultParameterConverter.ConvertValue(arg)
		if err != nil {
			t.Fatalf("Column %s: unexpected error: %v", Columns[i], err)
		}
		if got != want[i] {
			t.Errorf("Column %s: expected %v, got %v", Columns[i], want[i], got)
		}
	}
}

func strPtr(s string) *string { return &s }
