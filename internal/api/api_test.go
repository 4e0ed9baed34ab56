package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/splitty/splitty/internal/currency"
	"github.com/splitty/splitty/internal/service"
	"github.com/splitty/splitty/internal/storage/sqlite"
)

type staticRates struct {
	rates map[string]float64
}

func (s staticRates) Rate(_ context.Context, _ time.Time, from, to string) (float64, error) {
	if rate, ok := s.rates[from+"/"+to]; ok {
		return rate, nil
	}
	return 0, fmt.Errorf("%w: %s/%s", currency.ErrRateUnavailable, from, to)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "splitty-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	converter := currency.NewConverter(staticRates{rates: map[string]float64{"USD/EUR": 0.5}})
	svc := service.NewEventService(store, converter)

	mux := http.NewServeMux()
	NewServer(svc, "EUR").Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any, wantStatus int, out any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s status = %d, want %d", method, url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
}

func TestAPIDebtFlow(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	var event eventResponse
	doJSON(t, http.MethodPost, base+"/api/events", map[string]string{"title": "Weekend"}, http.StatusCreated, &event)

	var ids []string
	for _, name := range []string{"P1", "P2", "P3"} {
		var p participantResponse
		doJSON(t, http.MethodPost, base+"/api/events/"+event.ID+"/participants",
			map[string]string{"name": name}, http.StatusCreated, &p)
		ids = append(ids, p.ID)
	}

	expenses := []expenseRequest{
		{PayerID: ids[0], Amount: 100, Currency: "EUR", Beneficiaries: []string{ids[1], ids[2]}},
		{PayerID: ids[1], Amount: 50, Currency: "EUR", Beneficiaries: []string{ids[0], ids[2]}},
		{PayerID: ids[2], Amount: 30, Currency: "EUR", Beneficiaries: []string{ids[0], ids[1]}},
	}
	for _, e := range expenses {
		doJSON(t, http.MethodPost, base+"/api/events/"+event.ID+"/expenses", e, http.StatusCreated, nil)
	}

	var debts []debtResponse
	doJSON(t, http.MethodGet, base+"/api/events/"+event.ID+"/debts", nil, http.StatusOK, &debts)
	if len(debts) != 2 {
		t.Fatalf("debts = %v, want 2 entries", debts)
	}
	if debts[0].DebtorID != ids[2] || debts[0].Amount != 45 {
		t.Errorf("debt[0] = %v, want P3 owes 45", debts[0])
	}
	if debts[1].DebtorID != ids[1] || debts[1].Amount != 15 {
		t.Errorf("debt[1] = %v, want P2 owes 15", debts[1])
	}

	var settled settleResponse
	doJSON(t, http.MethodPost, base+"/api/events/"+event.ID+"/settlements",
		settleRequest{DebtorID: ids[2], CreditorID: ids[0], Amount: 45},
		http.StatusCreated, &settled)
	if settled.Settlement.Category != "debt settlement" {
		t.Errorf("settlement category = %q, want %q", settled.Settlement.Category, "debt settlement")
	}
	if len(settled.Debts) != 1 || settled.Debts[0].DebtorID != ids[1] {
		t.Errorf("debts after settlement = %v, want only P2's", settled.Debts)
	}
}

func TestAPIErrorMapping(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	var event eventResponse
	doJSON(t, http.MethodPost, base+"/api/events", map[string]string{"title": "Errors"}, http.StatusCreated, &event)
	var p participantResponse
	doJSON(t, http.MethodPost, base+"/api/events/"+event.ID+"/participants",
		map[string]string{"name": "Alice"}, http.StatusCreated, &p)

	t.Run("missing event is 404", func(t *testing.T) {
		doJSON(t, http.MethodGet, base+"/api/events/nope", nil, http.StatusNotFound, nil)
	})

	t.Run("invalid expense is 400", func(t *testing.T) {
		doJSON(t, http.MethodPost, base+"/api/events/"+event.ID+"/expenses",
			expenseRequest{PayerID: p.ID, Amount: -1, Currency: "EUR", Beneficiaries: []string{p.ID}},
			http.StatusBadRequest, nil)
	})

	t.Run("unavailable rate is 502", func(t *testing.T) {
		doJSON(t, http.MethodPost, base+"/api/events/"+event.ID+"/expenses",
			expenseRequest{PayerID: p.ID, Amount: 10, Currency: "GBP", Beneficiaries: []string{p.ID}},
			http.StatusCreated, nil)
		doJSON(t, http.MethodGet, base+"/api/events/"+event.ID+"/balances", nil, http.StatusBadGateway, nil)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		resp, err := http.Post(base+"/api/events", "application/json", bytes.NewBufferString("{"))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}
