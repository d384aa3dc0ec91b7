package fintrack

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryStorage is a Storage kept in memory, for tests.
type MemoryStorage struct {
	Transactions []Transaction
	Err          error // returned by Load and Save when set
	Saves        int
}

func (m *MemoryStorage) Load() ([]Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Transactions, nil
}

func (m *MemoryStorage) Save(txs []Transaction) error {
	m.Saves++
	if m.Err != nil {
		return m.Err
	}
	m.Transactions = append([]Transaction(nil), txs...)
	return nil
}

// FixedRates is a RateLookup that multiplies amounts by a fixed rate per
// source currency, for tests. Unknown currencies fail with Err.
type FixedRates struct {
	Rates map[string]decimal.Decimal
	Err   error

	mu    sync.Mutex
	Calls int
}

func (f *FixedRates) Lookup(_ context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	f.mu.Lock()
	f.Calls++
	f.mu.Unlock()
	if f.Err != nil {
		return decimal.Zero, f.Err
	}
	rate, ok := f.Rates[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for %s/%s", from, to)
	}
	return amount.Mul(rate), nil
}
