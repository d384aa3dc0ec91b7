package fintrack

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// indent is the indentation of the persisted ledger file.
const indent = "    "

// DecodeLedger decodes a JSON array of transactions from r.
func DecodeLedger(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	if err := json.NewDecoder(r).Decode(&txs); err != nil {
		return nil, fmt.Errorf("cannot decode transactions: %w", err)
	}
	return txs, nil
}

// EncodeLedger writes transactions to w as a pretty-printed JSON array,
// in the given order.
func EncodeLedger(w io.Writer, txs []Transaction) error {
	if txs == nil {
		txs = []Transaction{}
	}
	data, err := json.MarshalIndent(txs, "", indent)
	if err != nil {
		return fmt.Errorf("failed to marshal transactions: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transactions: %w", err)
	}
	return nil
}
