package fintrack

import (
	"encoding/json"
	"testing"

	"github.com/etnz/fintrack/date"
	"github.com/shopspring/decimal"
)

func TestNewTransactionDefaults(t *testing.T) {
	got := NewTransaction(decimal.NewFromInt(5), "Food", Expense, "", date.Date{})
	if got.Currency() != BaseCurrency {
		t.Errorf("Currency() = %q, want %q", got.Currency(), BaseCurrency)
	}
	if got.Date != date.Today() {
		t.Errorf("Date = %v, want today", got.Date)
	}

	got = NewTransaction(decimal.NewFromInt(5), "Food", Expense, " usd", date.MustParse("2024-01-02"))
	if got.Currency() != "USD" {
		t.Errorf("Currency() = %q, want %q", got.Currency(), "USD")
	}
	if got.Date.String() != "2024-01-02" {
		t.Errorf("Date = %v, want 2024-01-02", got.Date)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "income", want: Income},
		{in: "Expense", want: Expense},
		{in: " INCOME ", want: Income},
		{in: "transfer", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Expense.Title(); got != "Expense" {
		t.Errorf("Title() = %q, want %q", got, "Expense")
	}
}

func TestTransactionJSON(t *testing.T) {
	orig := tx("12.5", "Books", Expense, "EUR", "2024-03-04")
	got, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"amount":12.5,"category":"Books","type":"expense","currency":"EUR","date":"2024-03-04"}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	var back Transaction
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(orig) {
		t.Errorf("Unmarshal() = %+v, want %+v", back, orig)
	}

	if err := json.Unmarshal([]byte(`{"amount":1,"category":"x","type":"gift","currency":"EUR","date":"2024-01-01"}`), &back); err == nil {
		t.Error("Unmarshal() of an unknown type should fail")
	}
}
