package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"burst_buy/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidAmount      = errors.New("fiat amount must be a finite non-negative number")
	ErrNoSuggestionStream = errors.New("suggestion stream is not open")
	ErrEventDropped       = errors.New("suggestion event dropped")
	ErrUnknownEvent       = errors.New("unknown event type")
)

const eventBuffer = 16

// PurchaseView состояние страницы покупки. Курсы и баланс загружаются один
// раз в Init, всё остальное вычисляется из них и ввода пользователя при
// каждом обращении.
type PurchaseView struct {
	id       string
	cfg      Config
	api      BurstAPI
	searcher Searcher

	mu      sync.RWMutex
	rates   models.RateTable
	balance *float64
	loadErr error
	intent  models.PurchaseIntent
	stream  *suggestStream

	popupOpen atomic.Bool
}

func NewPurchaseView(id string, api BurstAPI, cfg Config) *PurchaseView {
	return &PurchaseView{
		id:       id,
		cfg:      cfg,
		api:      api,
		searcher: Searcher{Debounce: cfg.Debounce, Limit: cfg.SuggestLimit},
		intent:   models.PurchaseIntent{Currency: strings.ToLower(cfg.DefaultCurrency)},
	}
}

func (v *PurchaseView) ID() string {
	return v.id
}

// Init запрашивает курсы и баланс параллельно. Если хотя бы один запрос
// упал, оба значения остаются пустыми, а ошибка сохраняется в LoadError.
func (v *PurchaseView) Init(ctx context.Context) {
	var (
		rates   models.RateTable
		balance float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := v.api.GetRates(gctx)
		if err != nil {
			return errors.Wrap(err, "get rates")
		}
		rates = r
		return nil
	})
	g.Go(func() error {
		b, err := v.api.GetBalance(gctx)
		if err != nil {
			return errors.Wrap(err, "get balance")
		}
		balance = b
		return nil
	})

	if err := g.Wait(); err != nil {
		logrus.WithField("view", v.id).Errorf("Не удалось загрузить курсы и баланс: %s", err)
		v.mu.Lock()
		v.loadErr = err
		v.mu.Unlock()
		return
	}

	v.mu.Lock()
	v.rates = rates
	v.balance = &balance
	v.loadErr = nil
	v.mu.Unlock()
	logrus.WithField("view", v.id).Infof("Загружено курсов: %d", rates.Len())
}

func (v *PurchaseView) LoadError() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loadErr
}

func (v *PurchaseView) Rates() models.RateTable {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.rates
}

func (v *PurchaseView) Balance() *float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.balance == nil {
		return nil
	}
	b := *v.balance
	return &b
}

// SetFiatAmount nil сбрасывает введённую сумму
func (v *PurchaseView) SetFiatAmount(amount *float64) error {
	if amount != nil && (*amount < 0 || math.IsNaN(*amount) || math.IsInf(*amount, 0)) {
		return ErrInvalidAmount
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if amount == nil {
		v.intent.FiatAmount = nil
		return nil
	}
	a := *amount
	v.intent.FiatAmount = &a
	return nil
}

func (v *PurchaseView) SetCurrency(currency string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.intent.Currency = strings.ToLower(strings.TrimSpace(currency))
}

func (v *PurchaseView) AssetAmount() decimal.Decimal {
	return v.snapshot().assetAmount()
}

func (v *PurchaseView) AmountTooHigh() bool {
	return v.snapshot().amountTooHigh()
}

func (v *PurchaseView) RedirectLink() string {
	return v.snapshot().redirectLink()
}

func (v *PurchaseView) ButtonLabel() string {
	return v.snapshot().buttonLabel()
}

func (v *PurchaseView) HasBalance() bool {
	return v.snapshot().balance != nil
}

func (v *PurchaseView) BalanceFormatted() string {
	return v.snapshot().balanceFormatted()
}

// Currencies коды валют в верхнем регистре в порядке таблицы курсов
func (v *PurchaseView) Currencies() []string {
	return v.snapshot().currencies()
}

func (v *PurchaseView) SelectedCurrency() string {
	return strings.ToUpper(v.snapshot().intent.Currency)
}

func (v *PurchaseView) CurrentRate() (float64, bool) {
	s := v.snapshot()
	return s.rates.Rate(s.intent.Currency)
}

func (v *PurchaseView) Quote() models.Quote {
	s := v.snapshot()
	q := models.Quote{
		FiatAmount:       s.intent.FiatAmount,
		SelectedCurrency: strings.ToUpper(s.intent.Currency),
		AssetAmount:      s.assetAmount().StringFixed(2),
		AmountTooHigh:    s.amountTooHigh(),
		HasBalance:       s.balance != nil,
		BalanceFormatted: s.balanceFormatted(),
		RedirectLink:     s.redirectLink(),
		ButtonLabel:      s.buttonLabel(),
	}
	if rate, ok := s.rates.Rate(s.intent.Currency); ok {
		q.CurrentRate = &rate
	}
	return q
}

func (v *PurchaseView) Suggest(term string) []string {
	return FilterCurrencies(v.Currencies(), term, v.cfg.SuggestLimit)
}

// OpenSuggestions подключает к виду поток подсказок. Поток живёт до отмены
// ctx, открытия следующего потока или Close.
func (v *PurchaseView) OpenSuggestions(ctx context.Context) <-chan []string {
	ctx, cancel := context.WithCancel(ctx)
	st := newSuggestStream(cancel)

	v.mu.Lock()
	if v.stream != nil {
		v.stream.close()
	}
	v.stream = st
	v.mu.Unlock()

	out := v.searcher.Search(ctx, st.sources(), v.popupOpen.Load, v.Currencies)

	// st.close отменяет ctx, так что горутина выходит и при замене потока
	go func() {
		<-ctx.Done()
		v.mu.Lock()
		if v.stream == st {
			v.stream = nil
			st.close()
		}
		v.mu.Unlock()
	}()

	return out
}

func (v *PurchaseView) Dispatch(ev models.Event) error {
	if ev.Type == models.EventPopup {
		v.popupOpen.Store(ev.PopupOpen)
		return nil
	}

	// Отправка под RLock только неблокирующая: close каналов идёт под Lock
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.stream == nil {
		return ErrNoSuggestionStream
	}

	var ch chan string
	switch ev.Type {
	case models.EventInput:
		ch = v.stream.text
	case models.EventFocus:
		ch = v.stream.focus
	case models.EventClick:
		ch = v.stream.click
	default:
		return errors.Wrap(ErrUnknownEvent, string(ev.Type))
	}

	select {
	case ch <- ev.Text:
		return nil
	default:
		return ErrEventDropped
	}
}

// Close закрывает открытый поток подсказок
func (v *PurchaseView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stream != nil {
		v.stream.close()
		v.stream = nil
	}
}

func (v *PurchaseView) snapshot() viewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return viewState{
		cfg:     v.cfg,
		rates:   v.rates,
		balance: v.balance,
		intent:  v.intent,
	}
}

type viewState struct {
	cfg     Config
	rates   models.RateTable
	balance *float64
	intent  models.PurchaseIntent
}

func (s viewState) hasFiatAmount() bool {
	return s.intent.FiatAmount != nil && *s.intent.FiatAmount != 0
}

func (s viewState) assetAmount() decimal.Decimal {
	rate, ok := s.rates.Rate(s.intent.Currency)
	if !ok || rate == 0 || !s.hasFiatAmount() {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*s.intent.FiatAmount).
		Div(decimal.NewFromFloat(rate)).
		Round(2)
}

func (s viewState) amountTooHigh() bool {
	if s.balance == nil {
		return false
	}
	return s.assetAmount().GreaterThan(decimal.NewFromFloat(*s.balance))
}

func (s viewState) redirectLink() string {
	if !s.hasFiatAmount() {
		return s.cfg.PaymentLink
	}
	return fmt.Sprintf("%s/%s%s",
		strings.TrimRight(s.cfg.PaymentLink, "/"),
		decimal.NewFromFloat(*s.intent.FiatAmount).StringFixed(2),
		strings.ToUpper(s.intent.Currency))
}

func (s viewState) buttonLabel() string {
	amount := s.assetAmount()
	if amount.IsZero() {
		return "Buy " + s.cfg.AssetSymbol
	}
	return fmt.Sprintf("Buy ≈ %s %s", amount.StringFixed(2), s.cfg.AssetSymbol)
}

func (s viewState) balanceFormatted() string {
	if s.balance == nil || *s.balance == 0 {
		return "0"
	}
	return decimal.NewFromFloat(*s.balance).StringFixed(2)
}

func (s viewState) currencies() []string {
	codes := s.rates.Codes()
	for i, code := range codes {
		codes[i] = strings.ToUpper(code)
	}
	return codes
}
