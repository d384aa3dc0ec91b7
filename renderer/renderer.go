// Package renderer renders ledger reports as markdown.
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/fintrack"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// barWidth is the width of a full chart bar, in characters.
const barWidth = 30

// NoExpenses is rendered by Chart when there is nothing to draw.
const NoExpenses = "No expense data to display"

// Transactions renders the transactions as a table, in the given order.
func Transactions(txs []fintrack.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("My Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions recorded.")
		return doc.String()
	}
	table := md.TableSet{
		Header: []string{"Date", "Amount", "Currency", "Category", "Type"},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			tx.Amount.Fixed(),
			tx.Currency(),
			tx.Category,
			tx.Kind.Title(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// Summary renders the available balance, the total spending and the
// expenses per category.
func Summary(s *fintrack.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Personal Finance Tracker")
	doc.PlainText(fmt.Sprintf("Available Balance: %s %s  ", s.Balance.Fixed(), s.Currency))
	doc.PlainText(fmt.Sprintf("Total Spending: %s %s", s.TotalExpenses.Fixed(), s.Currency))

	doc.H2("Expenses Summary")
	if len(s.Expenses) == 0 {
		doc.PlainText(NoExpenses)
		return doc.String()
	}
	table := md.TableSet{Header: []string{"Category", "Summary"}}
	for _, e := range s.Expenses {
		table.Rows = append(table.Rows, []string{e.Category, fmt.Sprintf("%s %s", e.Amount.Fixed(), s.Currency)})
	}
	doc.Table(table)
	return doc.String()
}

// Chart renders the share of each expense category with a text bar.
func Chart(s *fintrack.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Spendings Chart")

	total := decimal.Zero
	for _, e := range s.Expenses {
		total = total.Add(e.Amount.Decimal())
	}
	if len(s.Expenses) == 0 || !total.IsPositive() {
		doc.PlainText(NoExpenses)
		return doc.String()
	}

	table := md.TableSet{Header: []string{"Category", "Amount", "Share", ""}}
	for _, e := range s.Expenses {
		share := Share(e.Amount.Decimal(), total)
		table.Rows = append(table.Rows, []string{
			e.Category,
			fmt.Sprintf("%s %s", e.Amount.Fixed(), s.Currency),
			fmt.Sprintf("%.1f%%", share.InexactFloat64()),
			bar(share),
		})
	}
	doc.Table(table)
	return doc.String()
}

// Share returns part as a percentage of total. It is zero when total is zero.
func Share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(decimal.NewFromInt(100))
}

// bar returns a bar proportional to percent, at least one block wide for a
// positive share.
func bar(percent decimal.Decimal) string {
	if !percent.IsPositive() {
		return ""
	}
	n := int(percent.Mul(decimal.NewFromInt(barWidth)).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	n = max(1, min(n, barWidth))
	return strings.Repeat("█", n)
}
