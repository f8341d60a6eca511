package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func newTestServer(t *testing.T, rates, balance string, status int) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/rates", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(rates))
	})
	mux.HandleFunc("/balance", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(balance))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestGetRates(t *testing.T) {
	srv, _ := newTestServer(t, `{"usd": 0.0052, "eur": 0.0047, "gbp": 0.004}`, `1`, http.StatusOK)
	c := NewBurstAPIClient(srv.URL)

	rates, err := c.GetRates(context.Background())
	if err != nil {
		t.Fatalf("GetRates() unexpected error: %v", err)
	}
	if got, want := rates.Codes(), []string{"usd", "eur", "gbp"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Codes() = %v, want %v", got, want)
	}
	if r, ok := rates.Rate("EUR"); !ok || r != 0.0047 {
		t.Errorf("Rate(EUR) = %v, %v", r, ok)
	}
}

func TestGetBalance(t *testing.T) {
	srv, _ := newTestServer(t, `{}`, `1234.5`, http.StatusOK)
	c := NewBurstAPIClient(srv.URL)

	balance, err := c.GetBalance(context.Background())
	if err != nil {
		t.Fatalf("GetBalance() unexpected error: %v", err)
	}
	if balance != 1234.5 {
		t.Errorf("GetBalance() = %v, want 1234.5", balance)
	}
}

func TestNoCaching(t *testing.T) {
	srv, calls := newTestServer(t, `{"usd": 1}`, `2`, http.StatusOK)
	c := NewBurstAPIClient(srv.URL)

	for i := 0; i < 2; i++ {
		if _, err := c.GetRates(context.Background()); err != nil {
			t.Fatal(err)
		}
		if _, err := c.GetBalance(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if *calls != 4 {
		t.Errorf("expected 4 upstream calls, got %d", *calls)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		rates   string
		balance string
		status  int
	}{
		{"server error", `{}`, `1`, http.StatusInternalServerError},
		{"rates not an object", `[1,2]`, `"x"`, http.StatusOK},
		{"rate not a number", `{"usd":"1"}`, `{}`, http.StatusOK},
		{"broken json", `{"usd":`, `1.`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.rates, tt.balance, tt.status)
			c := NewBurstAPIClient(srv.URL)
			if _, err := c.GetRates(context.Background()); err == nil {
				t.Error("GetRates() expected error")
			}
			if _, err := c.GetBalance(context.Background()); err == nil {
				t.Error("GetBalance() expected error")
			}
		})
	}
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewBurstAPIClient(url)
	if _, err := c.GetRates(context.Background()); err == nil {
		t.Error("GetRates() expected error for closed server")
	}
}
