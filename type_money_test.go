package fintrack

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyArithmetic(t *testing.T) {
	a := M(10.25, "EUR")
	b := M(decimal.RequireFromString("0.75"), "EUR")

	if got := a.Add(b); !got.Equal(M(11, "EUR")) {
		t.Errorf("Add() = %v", got.Decimal())
	}
	if got := a.Sub(b); !got.Equal(M(9.5, "EUR")) {
		t.Errorf("Sub() = %v", got.Decimal())
	}
	if got := (Money{}).Add(a); got.Currency() != "EUR" {
		t.Errorf("zero Money should take the other currency, got %q", got.Currency())
	}
	if !a.Neg().IsNegative() || !a.IsPositive() || a.IsZero() {
		t.Error("sign helpers are inconsistent")
	}
	if got := M(1.005, "EUR").Round(2).Fixed(); got != "1.01" {
		t.Errorf("Round(2).Fixed() = %q, want %q", got, "1.01")
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding EUR and USD should panic")
		}
	}()
	M(1, "EUR").Add(M(1, "USD"))
}

func TestMoneyString(t *testing.T) {
	if got := M(12.3, "XYZ").String(); got != "12.30 XYZ" {
		t.Errorf("String() = %q, want %q", got, "12.30 XYZ")
	}
	if got := M(0, "EUR").SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want %q", got, "-")
	}
	if !KnownCurrency("USD") || KnownCurrency("XYZ") {
		t.Error("KnownCurrency() is wrong")
	}
}
