package models

// PurchaseIntent то, что пользователь ввёл на странице покупки.
// Тело PUT /purchase разбирается прямо в него.
type PurchaseIntent struct {
	FiatAmount *float64 `json:"fiat_amount"` // nil, если сумма не введена
	Currency   string   `json:"currency"`    // код валюты, регистр не важен
}

// Quote все производные значения вида на момент запроса
type Quote struct {
	FiatAmount       *float64 `json:"fiat_amount"`
	SelectedCurrency string   `json:"selected_currency"`
	CurrentRate      *float64 `json:"current_rate"`
	AssetAmount      string   `json:"asset_amount"`
	AmountTooHigh    bool     `json:"amount_too_high"`
	HasBalance       bool     `json:"has_balance"`
	BalanceFormatted string   `json:"balance_formatted"`
	RedirectLink     string   `json:"redirect_link"`
	ButtonLabel      string   `json:"button_label"`
}

type ViewResponse struct {
	ID        string    `json:"id"`
	Rates     RateTable `json:"rates"`
	Balance   *float64  `json:"balance"`
	LoadError string    `json:"load_error,omitempty"`
	Quote     Quote     `json:"quote"`
}
