package fintrack

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

// ErrInsufficientFunds is returned by Affordable for an expense larger than
// the available balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Ledger holds the recorded transactions, in insertion order.
//
// Every stored transaction is in BaseCurrency. The ledger only grows: each
// Add appends one record and rewrites the whole storage.
type Ledger struct {
	transactions []Transaction
	store        Storage
	converter    Converter
	log          logrus.FieldLogger
}

// OpenLedger creates a ledger and loads its transactions from store.
//
// A malformed storage is logged as a warning and the ledger starts empty.
// A nil log uses the logrus standard logger.
func OpenLedger(store Storage, converter Converter, log logrus.FieldLogger) (*Ledger, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	l := &Ledger{store: store, converter: converter, log: log}
	txs, err := store.Load()
	switch {
	case errors.Is(err, ErrMalformedLedger):
		log.WithError(err).Warn("cannot read transactions, starting with an empty ledger")
	case err != nil:
		return nil, err
	default:
		l.transactions = l.rebase(txs)
	}
	return l, nil
}

// rebase tags loaded amounts that are not in BaseCurrency as BaseCurrency,
// unconverted, like a failed conversion in Add. Each one is logged.
func (l *Ledger) rebase(txs []Transaction) []Transaction {
	txs = slices.Clone(txs)
	for i, tx := range txs {
		if tx.Currency() == BaseCurrency {
			continue
		}
		l.log.WithFields(logrus.Fields{
			"date":     tx.Date.String(),
			"category": tx.Category,
			"currency": tx.Currency(),
			"amount":   tx.Amount.Decimal().String(),
		}).Warn("stored amount is not in " + BaseCurrency + ", counting it unconverted")
		txs[i].Amount = tx.Amount.In(BaseCurrency)
	}
	return txs
}

// Transactions returns a copy of the recorded transactions in insertion order.
func (l *Ledger) Transactions() []Transaction { return slices.Clone(l.transactions) }

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Add converts tx into the base currency, appends it and saves the ledger.
//
// If the conversion fails nothing is recorded. If saving fails the
// transaction stays recorded in memory and the error is returned.
func (l *Ledger) Add(ctx context.Context, tx Transaction) error {
	amount, err := l.converter.Convert(ctx, tx.Amount)
	if err != nil {
		return fmt.Errorf("cannot add %s transaction of %s: %w", tx.Kind, tx.Amount, err)
	}
	tx.Amount = amount.In(BaseCurrency)
	l.transactions = append(l.transactions, tx)
	l.log.WithFields(logrus.Fields{
		"category": tx.Category,
		"type":     tx.Kind,
		"amount":   tx.Amount.Decimal().String(),
	}).Debug("transaction recorded")
	return l.store.Save(l.transactions)
}

// Save rewrites the storage with the current transactions.
func (l *Ledger) Save() error { return l.store.Save(l.transactions) }

// sum returns the sum of the amounts of the given kind.
func (l *Ledger) sum(kind Kind) Money {
	total := M(0, BaseCurrency)
	for _, tx := range l.transactions {
		if tx.Kind == kind {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Balance returns the sum of all income minus the sum of all expenses.
func (l *Ledger) Balance() Money { return l.sum(Income).Sub(l.sum(Expense)) }

// TotalIncome returns the sum of all income.
func (l *Ledger) TotalIncome() Money { return l.sum(Income) }

// TotalExpenses returns the sum of all expenses rounded to 2 decimals.
func (l *Ledger) TotalExpenses() Money { return l.sum(Expense).Round(2) }

// ByCategory returns the sum of amounts per category over all transactions,
// income and expense alike.
func (l *Ledger) ByCategory() map[string]Money {
	categories := make(map[string]Money)
	for _, tx := range l.transactions {
		categories[tx.Category] = categories[tx.Category].Add(tx.Amount)
	}
	return categories
}

// ExpensesByCategory returns the sum of expenses per category.
func (l *Ledger) ExpensesByCategory() map[string]Money {
	categories := make(map[string]Money)
	for _, tx := range l.transactions {
		if tx.Kind == Expense {
			categories[tx.Category] = categories[tx.Category].Add(tx.Amount)
		}
	}
	return categories
}

// Affordable returns tx with its amount converted into the base currency,
// and ErrInsufficientFunds if it is an expense exceeding the current balance.
// Income is returned unchanged. Add does not call it; the returned
// transaction can be given to Add without a second rate lookup.
func (l *Ledger) Affordable(ctx context.Context, tx Transaction) (Transaction, error) {
	if tx.Kind != Expense {
		return tx, nil
	}
	amount, err := l.converter.Convert(ctx, tx.Amount)
	if err != nil {
		return tx, err
	}
	tx.Amount = amount.In(BaseCurrency)
	balance := l.Balance()
	if tx.Amount.GreaterThan(balance) {
		return tx, fmt.Errorf("%w: available balance is only %s %s", ErrInsufficientFunds, balance.Fixed(), BaseCurrency)
	}
	return tx, nil
}

// CategoryTotal is the total amount of one category.
type CategoryTotal struct {
	Category string
	Amount   Money
}

// Summary holds the aggregates displayed to the user.
type Summary struct {
	Currency      string
	Count         int
	Balance       Money
	TotalIncome   Money
	TotalExpenses Money
	Expenses      []CategoryTotal // sorted by decreasing amount, then category
}

// Summary computes the aggregates of the ledger.
func (l *Ledger) Summary() *Summary {
	s := &Summary{
		Currency:      BaseCurrency,
		Count:         len(l.transactions),
		Balance:       l.Balance(),
		TotalIncome:   l.TotalIncome(),
		TotalExpenses: l.TotalExpenses(),
	}
	for category, amount := range l.ExpensesByCategory() {
		s.Expenses = append(s.Expenses, CategoryTotal{Category: category, Amount: amount})
	}
	slices.SortFunc(s.Expenses, func(a, b CategoryTotal) int {
		if c := b.Amount.Decimal().Cmp(a.Amount.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return s
}
