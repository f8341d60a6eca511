package apiclient

import (
	"context"

	"burst_buy/models"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const DefaultBaseURL = "https://api.get-burst.cf"

// BurstAPIClient клиент сервиса курсов и баланса.
// Без повторов, таймаутов и кэша: каждый вызов идёт в сеть.
type BurstAPIClient struct {
	client *resty.Client
}

func NewBurstAPIClient(baseURL string) *BurstAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &BurstAPIClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json"),
	}
}

// GetRates GET /rates
func (c *BurstAPIClient) GetRates(ctx context.Context) (models.RateTable, error) {
	body, err := c.get(ctx, "/rates")
	if err != nil {
		return models.RateTable{}, err
	}
	rates, err := models.ParseRateTable(body)
	if err != nil {
		return models.RateTable{}, errors.Wrap(err, "decode /rates")
	}
	return rates, nil
}

// GetBalance GET /balance
func (c *BurstAPIClient) GetBalance(ctx context.Context) (float64, error) {
	body, err := c.get(ctx, "/balance")
	if err != nil {
		return 0, err
	}
	balance, err := models.ParseBalance(body)
	if err != nil {
		return 0, errors.Wrap(err, "decode /balance")
	}
	return balance, nil
}

func (c *BurstAPIClient) get(ctx context.Context, path string) ([]byte, error) {
	logrus.WithField("path", path).Debug("запрос к burst api")

	resp, err := c.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", path)
	}
	if resp.IsError() {
		return nil, errors.Errorf("GET %s: unexpected status %s", path, resp.Status())
	}
	return resp.Body(), nil
}
