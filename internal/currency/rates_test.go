package currency

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testDate(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse(dateFormat, "2026-03-14")
	if err != nil {
		t.Fatalf("parsing test date: %v", err)
	}
	return d
}

// rateServer serves frankfurter-style responses for a fixed rate table and
// counts how many requests it saw.
func rateServer(t *testing.T, rates map[string]float64, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")
		rate, ok := rates[from+"/"+to]
		if !ok {
			http.NotFound(w, r)
			return
		}
		date := strings.TrimPrefix(r.URL.Path, "/")
		fmt.Fprintf(w, `{"base":%q,"date":%q,"rates":{%q:%g}}`, from, date, to, rate)
	}))
}

func TestClientRate(t *testing.T) {
	var hits atomic.Int64
	server := rateServer(t, map[string]float64{"EUR/USD": 1.08}, &hits)
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()
	date := testDate(t)

	t.Run("resolves rate", func(t *testing.T) {
		rate, err := client.Rate(ctx, date, "EUR", "USD")
		if err != nil {
			t.Fatalf("Rate() error: %v", err)
		}
		if rate != 1.08 {
			t.Errorf("Rate() = %v, want 1.08", rate)
		}
	})

	t.Run("identity pair skips the API", func(t *testing.T) {
		before := hits.Load()
		rate, err := client.Rate(ctx, date, "EUR", "EUR")
		if err != nil {
			t.Fatalf("Rate() error: %v", err)
		}
		if rate != 1 {
			t.Errorf("Rate() = %v, want 1", rate)
		}
		if hits.Load() != before {
			t.Error("identity conversion hit the API")
		}
	})

	t.Run("unknown pair surfaces ErrRateUnavailable", func(t *testing.T) {
		_, err := client.Rate(ctx, date, "EUR", "XXX")
		if !errors.Is(err, ErrRateUnavailable) {
			t.Fatalf("Rate() error = %v, want ErrRateUnavailable", err)
		}
	})

	t.Run("unreachable source surfaces ErrRateUnavailable", func(t *testing.T) {
		dead := NewClient("http://127.0.0.1:1")
		_, err := dead.Rate(ctx, date, "EUR", "USD")
		if !errors.Is(err, ErrRateUnavailable) {
			t.Fatalf("Rate() error = %v, want ErrRateUnavailable", err)
		}
	})
}

func TestCachedSource(t *testing.T) {
	var hits atomic.Int64
	server := rateServer(t, map[string]float64{"EUR/USD": 1.08}, &hits)
	defer server.Close()

	cached := NewCachedSource(NewClient(server.URL))
	ctx := context.Background()
	date := testDate(t)

	for i := 0; i < 5; i++ {
		rate, err := cached.Rate(ctx, date, "EUR", "USD")
		if err != nil {
			t.Fatalf("Rate() error on call %d: %v", i, err)
		}
		if rate != 1.08 {
			t.Errorf("Rate() = %v, want 1.08", rate)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("upstream saw %d requests, want 1", hits.Load())
	}

	t.Run("errors are not cached", func(t *testing.T) {
		before := hits.Load()
		for i := 0; i < 2; i++ {
			if _, err := cached.Rate(ctx, date, "EUR", "XXX"); !errors.Is(err, ErrRateUnavailable) {
				t.Fatalf("Rate() error = %v, want ErrRateUnavailable", err)
			}
		}
		if hits.Load() != before+2 {
			t.Errorf("failed lookups should retry upstream, saw %d extra requests", hits.Load()-before)
		}
	})
}

func TestConverter(t *testing.T) {
	var hits atomic.Int64
	server := rateServer(t, map[string]float64{
		"EUR/USD": 1.08,
		"USD/EUR": 1 / 1.08,
	}, &hits)
	defer server.Close()

	conv := NewConverter(NewCachedSource(NewClient(server.URL)))
	ctx := context.Background()
	date := testDate(t)

	t.Run("round trip restores original amount", func(t *testing.T) {
		const original = 123.45
		inUSD, err := conv.Convert(ctx, original, date, "EUR", "USD")
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		back, err := conv.Convert(ctx, inUSD, date, "USD", "EUR")
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		if math.Abs(back-original) > 0.01 {
			t.Errorf("round trip = %v, want %v", back, original)
		}
	})

	t.Run("same currency is identity", func(t *testing.T) {
		got, err := conv.Convert(ctx, 99.99, date, "EUR", "EUR")
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		if got != 99.99 {
			t.Errorf("Convert() = %v, want 99.99", got)
		}
	})

	t.Run("conversion failure propagates", func(t *testing.T) {
		_, err := conv.Convert(ctx, 10, date, "EUR", "XXX")
		if !errors.Is(err, ErrRateUnavailable) {
			t.Fatalf("Convert() error = %v, want ErrRateUnavailable", err)
		}
	})
}
