package fintrack

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/fintrack/date"
	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency every stored amount is normalized to.
const BaseCurrency = "EUR"

// Kind is the direction of a transaction.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// ParseKind parses "income" or "expense", ignoring case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Income, Expense:
		return k, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q want %q or %q", s, Income, Expense)
	}
}

// Title returns the kind with a leading capital, as displayed in tables.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Transaction records one money movement.
//
// A Transaction is a value: the ledger stores a normalized copy.
type Transaction struct {
	Amount   Money
	Category string
	Kind     Kind
	Date     date.Date
}

// NewTransaction creates a transaction. An empty currency defaults to
// BaseCurrency and a zero date to today. The currency code is upper-cased.
//
// No validation is performed, the caller is responsible for it.
func NewTransaction(amount decimal.Decimal, category string, kind Kind, currency string, on date.Date) Transaction {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = BaseCurrency
	}
	if on.IsZero() {
		on = date.Today()
	}
	return Transaction{
		Amount:   M(amount, currency),
		Category: category,
		Kind:     kind,
		Date:     on,
	}
}

// Currency returns the currency of the transaction amount.
func (t Transaction) Currency() string { return t.Amount.Currency() }

// Equal reports whether both transactions hold the same five fields.
func (t Transaction) Equal(u Transaction) bool {
	return t.Amount.Equal(u.Amount) && t.Category == u.Category && t.Kind == u.Kind && t.Date == u.Date
}

// transactionRecord is the persisted shape of a Transaction. Field order is
// the key order in the ledger file.
type transactionRecord struct {
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Type     string          `json:"type"`
	Currency string          `json:"currency"`
	Date     date.Date       `json:"date"`
}

// MarshalJSON writes the persisted mapping.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionRecord{
		Amount:   t.Amount.value,
		Category: t.Category,
		Type:     string(t.Kind),
		Currency: t.Amount.cur,
		Date:     t.Date,
	})
}

func (t *Transaction) UnmarshalJSON(b []byte) error {
	var rec transactionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	kind, err := ParseKind(rec.Type)
	if err != nil {
		return err
	}
	if rec.Date.IsZero() {
		return fmt.Errorf("%s transaction %q has no date", kind, rec.Category)
	}
	*t = Transaction{
		Amount:   M(rec.Amount, strings.ToUpper(rec.Currency)),
		Category: rec.Category,
		Kind:     kind,
		Date:     rec.Date,
	}
	return nil
}
