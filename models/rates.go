package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// RateTable курс одной единицы актива в каждой валюте.
// Порядок кодов совпадает с порядком ключей в ответе сервиса.
type RateTable struct {
	codes []string
	rates map[string]float64
}

// NewRateTable собирает таблицу из пар код/курс в заданном порядке.
// Коды без курса отбрасываются.
func NewRateTable(codes []string, rates []float64) RateTable {
	n := min(len(codes), len(rates))
	t := RateTable{rates: make(map[string]float64, n)}
	for i := 0; i < n; i++ {
		t.add(codes[i], rates[i])
	}
	return t
}

// ParseRateTable разбирает JSON-объект {"usd": 0.01, ...}
func ParseRateTable(body []byte) (RateTable, error) {
	if !gjson.ValidBytes(body) {
		return RateTable{}, errors.New("rates: invalid json")
	}
	res := gjson.ParseBytes(body)
	if !res.IsObject() {
		return RateTable{}, errors.Errorf("rates: expected object, got %s", res.Type)
	}

	t := RateTable{rates: make(map[string]float64)}
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			err = errors.Errorf("rates: value for %q is not a number", key.String())
			return false
		}
		t.add(key.String(), value.Float())
		return true
	})
	if err != nil {
		return RateTable{}, err
	}
	return t, nil
}

func (t *RateTable) add(code string, rate float64) {
	code = strings.ToLower(code)
	if _, ok := t.rates[code]; !ok {
		t.codes = append(t.codes, code)
	}
	t.rates[code] = rate
}

// Codes коды валют в нижнем регистре
func (t RateTable) Codes() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

func (t RateTable) Rate(code string) (float64, bool) {
	rate, ok := t.rates[strings.ToLower(code)]
	return rate, ok
}

func (t RateTable) Len() int {
	return len(t.codes)
}

func (t RateTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, code := range t.codes {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(quote(code))
		buf.WriteByte(':')
		buf.WriteString(formatFloat(t.rates[code]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t *RateTable) UnmarshalJSON(data []byte) error {
	parsed, err := ParseRateTable(data)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
