package fintrack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rateServer replies like the Frankfurter API with body, and counts requests.
func rateServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFrankfurter_Lookup(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		fmt.Fprint(w, `{"amount":50.0,"base":"USD","date":"2024-01-02","rates":{"EUR":45.71}}`)
	}))
	defer srv.Close()

	f := &Frankfurter{URL: srv.URL, Client: srv.Client()}
	got, err := f.Lookup(context.Background(), decimal.NewFromInt(50), "USD", "EUR")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("45.71")), "Lookup() = %v", got)
	assert.Equal(t, "amount=50&from=USD&to=EUR", query)
}

func TestFrankfurter_LookupErrors(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"message":"boom"}`},
		{name: "not found", status: http.StatusNotFound, body: `{"message":"not found"}`},
		{name: "not json", status: http.StatusOK, body: `<html>`},
		{name: "missing rates", status: http.StatusOK, body: `{"amount":50.0,"base":"USD"}`},
		{name: "missing currency", status: http.StatusOK, body: `{"rates":{"GBP":40.1}}`},
		{name: "zero rate", status: http.StatusOK, body: `{"rates":{"EUR":0}}`},
		{name: "not a number", status: http.StatusOK, body: `{"rates":{"EUR":"45"}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := rateServer(t, tc.status, tc.body)
			f := &Frankfurter{URL: srv.URL, Client: srv.Client()}
			_, err := f.Lookup(context.Background(), decimal.NewFromInt(50), "USD", "EUR")
			assert.Error(t, err)
		})
	}
}

func TestFrankfurter_Unreachable(t *testing.T) {
	srv, _ := rateServer(t, http.StatusOK, `{}`)
	srv.Close()
	f := &Frankfurter{URL: srv.URL, Client: &http.Client{Timeout: time.Second}}
	_, err := f.Lookup(context.Background(), decimal.NewFromInt(50), "USD", "EUR")
	assert.Error(t, err)
}

func TestCurrencyConverter_BaseIsUnchanged(t *testing.T) {
	rates := &FixedRates{}
	c := &CurrencyConverter{Rates: rates}
	got, err := c.Convert(context.Background(), M(42, "EUR"))
	require.NoError(t, err)
	assert.True(t, got.Equal(M(42, "EUR")))
	assert.Equal(t, 0, rates.Calls)
}

func TestCurrencyConverter_Fallback(t *testing.T) {
	srv, _ := rateServer(t, http.StatusBadGateway, ``)
	log, hook := test.NewNullLogger()
	c := &CurrencyConverter{Rates: &Frankfurter{URL: srv.URL, Client: srv.Client()}, Log: log}

	got, err := c.Convert(context.Background(), M(50, "USD"))
	require.NoError(t, err)
	assert.True(t, got.Equal(M(50, "EUR")), "Convert() = %v %s", got.Decimal(), got.Currency())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "USD", hook.LastEntry().Data["from"])
}

func TestCurrencyConverter_Strict(t *testing.T) {
	c := &CurrencyConverter{Rates: &FixedRates{Err: errors.New("timeout")}, Strict: true}
	_, err := c.Convert(context.Background(), M(50, "USD"))
	assert.ErrorIs(t, err, ErrConversion)
}

func TestDaily_CachesResponses(t *testing.T) {
	srv, hits := rateServer(t, http.StatusOK, `{"rates":{"EUR":9.2}}`)
	f := &Frankfurter{URL: srv.URL, Client: Daily(t.TempDir(), time.Second, nil)}

	for range 3 {
		got, err := f.Lookup(context.Background(), decimal.NewFromInt(10), "USD", "EUR")
		require.NoError(t, err)
		assert.Equal(t, "9.2", got.String())
	}
	assert.Equal(t, int32(1), hits.Load())

	_, err := f.Lookup(context.Background(), decimal.NewFromInt(11), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestDaily_DoesNotCacheErrors(t *testing.T) {
	srv, hits := rateServer(t, http.StatusServiceUnavailable, `{}`)
	f := &Frankfurter{URL: srv.URL, Client: Daily(t.TempDir(), time.Second, nil)}

	for range 2 {
		_, err := f.Lookup(context.Background(), decimal.NewFromInt(10), "USD", "EUR")
		assert.Error(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}
