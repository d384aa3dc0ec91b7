package fintrack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// FrankfurterURL is the default rate lookup endpoint.
const FrankfurterURL = "https://api.frankfurter.app/latest"

// ErrConversion is returned by a strict CurrencyConverter when an amount
// cannot be converted.
var ErrConversion = errors.New("currency conversion failed")

// Converter normalizes an amount into the base currency.
type Converter interface {
	Convert(ctx context.Context, amount Money) (Money, error)
}

// RateLookup converts amount from one currency to another using an external
// service.
type RateLookup interface {
	Lookup(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// Frankfurter queries a Frankfurter compatible rate service.
//
//	GET <URL>?amount=50&from=USD&to=EUR
//	{"amount":50.0,"base":"USD","date":"2024-01-02","rates":{"EUR":45.71}}
type Frankfurter struct {
	URL    string       // defaults to FrankfurterURL
	Client *http.Client // defaults to http.DefaultClient
}

// Lookup returns the converted amount read from "rates.<to>".
func (f *Frankfurter) Lookup(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	base := f.URL
	if base == "" {
		base = FrankfurterURL
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	q := url.Values{}
	q.Set("amount", amount.String())
	q.Set("from", from)
	q.Set("to", to)
	addr := base + "?" + q.Encode()

	var jobj any
	if err := jwget(ctx, client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error in wget %s/%s: %w", from, to, err)
	}
	path := fmt.Sprintf("$.rates.%s", to)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %s/%s: %q %w", from, to, path, err)
	}
	// jsonpath may return a list of 1 answer, keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	var val decimal.Decimal
	switch v := jval.(type) {
	case json.Number:
		val, err = decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("error parsing %s/%s: %q invalid number %v: %w", from, to, path, v, err)
		}
	case float64:
		val = decimal.NewFromFloat(v)
	default:
		return decimal.Zero, fmt.Errorf("error parsing %s/%s: %q not a number %v", from, to, path, jval)
	}
	if val.IsZero() {
		return decimal.Zero, fmt.Errorf("empty rate for %s/%s", from, to)
	}
	return val, nil
}

// CurrencyConverter converts amounts into Base using Rates.
//
// On failure a non strict converter logs a warning and keeps the original
// amount, tagged as Base. A strict converter returns ErrConversion instead.
type CurrencyConverter struct {
	Rates  RateLookup
	Base   string // defaults to BaseCurrency
	Strict bool
	Log    logrus.FieldLogger // defaults to the logrus standard logger
}

func (c *CurrencyConverter) base() string {
	if c.Base == "" {
		return BaseCurrency
	}
	return c.Base
}

func (c *CurrencyConverter) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// Convert returns amount in the base currency. Amounts already in the base
// currency are returned unchanged, without lookup.
func (c *CurrencyConverter) Convert(ctx context.Context, amount Money) (Money, error) {
	base := c.base()
	if amount.Currency() == base {
		return amount, nil
	}
	converted, err := c.Rates.Lookup(ctx, amount.Decimal(), amount.Currency(), base)
	if err != nil {
		if c.Strict {
			return Money{}, fmt.Errorf("%w: %s to %s: %w", ErrConversion, amount, base, err)
		}
		c.logger().WithFields(logrus.Fields{
			"from":   amount.Currency(),
			"to":     base,
			"amount": amount.Decimal().String(),
		}).WithError(err).Warn("currency conversion failed, keeping the original amount")
		return amount.In(base), nil
	}
	return M(converted, base), nil
}
