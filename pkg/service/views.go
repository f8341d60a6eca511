package service

import (
	"context"

	"burst_buy/pkg/cache"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrViewNotFound = errors.New("view not found")

type PurchaseService struct {
	api   BurstAPI
	views *cache.Store[*PurchaseView]
	cfg   Config
}

func NewPurchaseService(api BurstAPI, views *cache.Store[*PurchaseView], cfg Config) *PurchaseService {
	return &PurchaseService{
		api:   api,
		views: views,
		cfg:   cfg,
	}
}

// NewView создаёт вид и сразу загружает в него курсы и баланс
func (s *PurchaseService) NewView(ctx context.Context) *PurchaseView {
	view := NewPurchaseView(uuid.NewString(), s.api, s.cfg)
	view.Init(ctx)
	s.views.Set(view.ID(), view)
	return view
}

func (s *PurchaseService) View(id string) (*PurchaseView, error) {
	view, ok := s.views.Get(id)
	if !ok {
		return nil, errors.Wrap(ErrViewNotFound, id)
	}
	return view, nil
}

func (s *PurchaseService) CloseView(id string) error {
	view, ok := s.views.Delete(id)
	if !ok {
		return errors.Wrap(ErrViewNotFound, id)
	}
	view.Close()
	logrus.WithField("view", id).Info("Вид закрыт")
	return nil
}

// Sweep закрывает устаревшие виды
func (s *PurchaseService) Sweep() int {
	expired := s.views.Sweep()
	for _, view := range expired {
		view.Close()
	}
	return len(expired)
}
