package service

import (
	"context"
	"strings"
	"time"
)

// FilterCurrencies пустой term отдаёт все коды, иначе коды, содержащие term
// без учёта регистра. Не больше limit штук, порядок сохраняется.
func FilterCurrencies(currencies []string, term string, limit int) []string {
	term = strings.ToLower(term)
	out := make([]string, 0, min(len(currencies), max(limit, 0)))
	for _, c := range currencies {
		if len(out) >= limit {
			break
		}
		if term == "" || strings.Contains(strings.ToLower(c), term) {
			out = append(out, c)
		}
	}
	return out
}

// Sources три источника событий поля выбора валюты
type Sources struct {
	Text  <-chan string
	Focus <-chan string
	Click <-chan string
}

type Searcher struct {
	Debounce time.Duration
	Limit    int
}

// Search объединяет источники в один поток списков подсказок.
// Текст проходит через debounce и отбрасывается, если совпадает с предыдущим
// отправленным текстом; focus проходит как есть; click только при закрытом
// popup. Список считается заново на каждое событие по текущему currencies().
// Поток закрывается при отмене ctx или когда все источники закрыты.
func (s Searcher) Search(ctx context.Context, src Sources, popupOpen func() bool, currencies func() []string) <-chan []string {
	out := make(chan []string)

	go func() {
		defer close(out)

		var (
			timer   *time.Timer
			timerC  <-chan time.Time
			pending string
			waiting bool
			last    string
			emitted bool
		)
		text, focus, click := src.Text, src.Focus, src.Click
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		emit := func(term string) bool {
			select {
			case out <- FilterCurrencies(currencies(), term, s.Limit):
				return true
			case <-ctx.Done():
				return false
			}
		}
		flush := func() bool {
			waiting = false
			timerC = nil
			if emitted && pending == last {
				return true
			}
			last, emitted = pending, true
			return emit(pending)
		}

		for text != nil || focus != nil || click != nil || waiting {
			select {
			case <-ctx.Done():
				return

			case t, ok := <-text:
				if !ok {
					text = nil
					if waiting {
						if timer != nil {
							timer.Stop()
						}
						if !flush() {
							return
						}
					}
					continue
				}
				pending, waiting = t, true
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(s.Debounce)
				timerC = timer.C

			case <-timerC:
				if !flush() {
					return
				}

			case t, ok := <-focus:
				if !ok {
					focus = nil
					continue
				}
				if !emit(t) {
					return
				}

			case t, ok := <-click:
				if !ok {
					click = nil
					continue
				}
				if popupOpen != nil && popupOpen() {
					continue
				}
				if !emit(t) {
					return
				}
			}
		}
	}()

	return out
}

type suggestStream struct {
	text   chan string
	focus  chan string
	click  chan string
	cancel context.CancelFunc
}

func newSuggestStream(cancel context.CancelFunc) *suggestStream {
	return &suggestStream{
		text:   make(chan string, eventBuffer),
		focus:  make(chan string, eventBuffer),
		click:  make(chan string, eventBuffer),
		cancel: cancel,
	}
}

func (s *suggestStream) sources() Sources {
	return Sources{Text: s.text, Focus: s.focus, Click: s.click}
}

func (s *suggestStream) close() {
	s.cancel()
	close(s.text)
	close(s.focus)
	close(s.click)
}
