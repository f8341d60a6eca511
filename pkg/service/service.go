package service

import (
	"context"
	"time"

	"burst_buy/models"
	"burst_buy/pkg/cache"
)

// BurstAPI источник курсов и баланса
type BurstAPI interface {
	GetRates(ctx context.Context) (models.RateTable, error)
	GetBalance(ctx context.Context) (float64, error)
}

type Purchase interface {
	NewView(ctx context.Context) *PurchaseView
	View(id string) (*PurchaseView, error)
	CloseView(id string) error
	Sweep() int
}

type Config struct {
	DefaultCurrency string
	PaymentLink     string
	AssetSymbol     string
	Debounce        time.Duration
	SuggestLimit    int
}

func DefaultConfig() Config {
	return Config{
		DefaultCurrency: "usd",
		PaymentLink:     "https://paypal.me/foxycrypto",
		AssetSymbol:     "BURST",
		Debounce:        200 * time.Millisecond,
		SuggestLimit:    10,
	}
}

type Service struct {
	Purchase
}

func NewService(api BurstAPI, views *cache.Store[*PurchaseView], cfg Config) *Service {
	return &Service{
		Purchase: NewPurchaseService(api, views, cfg),
	}
}
