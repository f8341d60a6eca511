package models

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ParseBalance разбирает тело ответа /balance: одно число
func ParseBalance(body []byte) (float64, error) {
	if !gjson.ValidBytes(body) {
		return 0, errors.New("balance: invalid json")
	}
	res := gjson.ParseBytes(body)
	if res.Type != gjson.Number {
		return 0, errors.Errorf("balance: expected number, got %s", res.Type)
	}
	return res.Float(), nil
}
