package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseRateTableKeepsOrder(t *testing.T) {
	rates, err := ParseRateTable([]byte(`{"usd": 0.0052, "EUR": 0.0047, "gbp": 0.004, "aud": 0.008}`))
	if err != nil {
		t.Fatalf("ParseRateTable() unexpected error: %v", err)
	}
	if got, want := rates.Codes(), []string{"usd", "eur", "gbp", "aud"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Codes() = %v, want %v", got, want)
	}
	if r, ok := rates.Rate("eur"); !ok || r != 0.0047 {
		t.Errorf("Rate(eur) = %v, %v", r, ok)
	}
	if _, ok := rates.Rate("jpy"); ok {
		t.Error("Rate(jpy) reported present")
	}
}

func TestParseRateTableErrors(t *testing.T) {
	for _, body := range []string{``, `[]`, `5`, `{"usd": "1"}`, `{"usd": null}`, `{"usd":`} {
		if _, err := ParseRateTable([]byte(body)); err == nil {
			t.Errorf("ParseRateTable(%q) expected error", body)
		}
	}
}

func TestRateTableJSON(t *testing.T) {
	table := NewRateTable([]string{"usd", "eur"}, []float64{0.5, 0.25})
	b, err := json.Marshal(table)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"usd":0.5,"eur":0.25}` {
		t.Errorf("Marshal = %s", b)
	}

	var decoded RateTable
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded.Codes(), table.Codes()) {
		t.Errorf("decoded codes = %v", decoded.Codes())
	}
}

func TestZeroRateTable(t *testing.T) {
	var table RateTable
	if table.Len() != 0 || len(table.Codes()) != 0 {
		t.Error("zero table is not empty")
	}
	if b, _ := json.Marshal(table); string(b) != `{}` {
		t.Errorf("Marshal(zero) = %s", b)
	}
}

func TestParseBalance(t *testing.T) {
	if b, err := ParseBalance([]byte(`1520.75`)); err != nil || b != 1520.75 {
		t.Errorf("ParseBalance() = %v, %v", b, err)
	}
	for _, body := range []string{``, `"10"`, `{"balance": 1}`, `null`} {
		if _, err := ParseBalance([]byte(body)); err == nil {
			t.Errorf("ParseBalance(%q) expected error", body)
		}
	}
}

func TestNewRateTableMismatchedLengths(t *testing.T) {
	table := NewRateTable([]string{"usd", "eur", "gbp"}, []float64{0.5})
	if got := table.Codes(); !reflect.DeepEqual(got, []string{"usd"}) {
		t.Errorf("Codes() = %v, want [usd]", got)
	}

	table = NewRateTable([]string{"usd"}, []float64{0.5, 0.25})
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}
