// Package fintrack provides the ledger of a single-user personal finance
// tracker. It is local-first: every transaction lives in one human-readable
// JSON file.
//
// The core functionalities include:
//   - Transactions: income and expense records with a category, a date and
//     an amount.
//   - Ledger Management: an append-only list of transactions, normalized to
//     the base currency (EUR) when recorded and saved after each addition.
//   - Currency Conversion: amounts in other currencies are converted through
//     a Frankfurter compatible rate service.
//   - Aggregates: balance, total spending, and per category totals.
//
// This package serves as the foundational logic for the `pft` command-line
// tool.
package fintrack
