package cmd

import (
	"github.com/etnz/fintrack"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// currencies suggested for the -cur flag.
var currencies = predict.Set{fintrack.BaseCurrency, "USD", "GBP", "CHF", "JPY", "CAD", "AUD", "SEK", "NOK", "DKK", "PLN", "CZK"}

// Completion describes the pft command line for shell completion.
//
// Calling Complete on it from main answers the shell when COMP_LINE is set.
func Completion() *complete.Command {
	txFlags := func(kind fintrack.Kind) map[string]complete.Predictor {
		flags := map[string]complete.Predictor{
			"a":   predict.Something,
			"c":   predict.Something,
			"cur": currencies,
			"d":   predict.Something,
		}
		if kind == fintrack.Expense {
			flags["force"] = predict.Nothing
		}
		return flags
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			string(fintrack.Income):  {Flags: txFlags(fintrack.Income)},
			string(fintrack.Expense): {Flags: txFlags(fintrack.Expense)},
			"tx": {Flags: map[string]complete.Predictor{
				"type": predict.Set{string(fintrack.Income), string(fintrack.Expense)},
				"c":    predict.Something,
				"head": predict.Something,
				"tail": predict.Something,
			}},
			"summary": {},
			"chart":   {},
			"fmt":     {},
		},
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.json"),
			"rates-url":   predict.Something,
			"timeout":     predict.Something,
			"strict":      predict.Nothing,
			"no-cache":    predict.Nothing,
			"v":           predict.Nothing,
			"raw":         predict.Nothing,
		},
	}
}
