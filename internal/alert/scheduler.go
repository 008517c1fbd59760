package alert

import (
	"context"
	"runtime"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// PriceSource resolves a coin's current USD price. The bool is false when the
// price is unavailable for any reason.
type PriceSource interface {
	SimplePrice(ctx context.Context, coinID string) (float64, bool)
}

// Notifier delivers a text message to a chat. Fire and forget: the scheduler
// logs failures and never retries.
type Notifier interface {
	Notify(chatID int64, text string) error
}

// Service runs one notification loop per active subscription. Each loop owns
// its timing, so a slow fetch or a dead upstream for one coin never delays
// another chat's alerts.
type Service struct {
	registry *Registry
	prices   PriceSource
	notifier Notifier

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService wires the scheduler to its registry, price source and notifier.
func NewService(registry *Registry, prices PriceSource, notifier Notifier) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		registry: registry,
		prices:   prices,
		notifier: notifier,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Subscribe installs an alert for (chatID, coinID) and starts its loop. An
// existing subscription for the pair is superseded: the old loop is cancelled
// the moment the new one is installed, though a tick already in flight may
// still deliver one last notification.
func (s *Service) Subscribe(chatID int64, coinID, label string, interval time.Duration) {
	ctx, cancel := context.WithCancel(s.ctx)
	sub := &Subscription{
		ChatID:   chatID,
		CoinID:   coinID,
		Label:    label,
		Interval: interval,
		Created:  time.Now(),
		cancel:   cancel,
	}

	if old := s.registry.Install(sub); old != nil {
		old.stop()
	}

	s.wg.Add(1)
	go s.run(ctx, sub)

	log.Debugf("alert subscribed: chat=%d coin=%s interval=%s", chatID, coinID, interval)
}

// Unsubscribe stops the (chatID, coinID) alert and reports whether one was
// active. Repeated calls are no-ops.
func (s *Service) Unsubscribe(chatID int64, coinID string) bool {
	sub := s.registry.Remove(chatID, coinID)
	if sub == nil {
		return false
	}

	sub.stop()
	log.Debugf("alert unsubscribed: chat=%d coin=%s", chatID, coinID)
	return true
}

// ClearAll stops every alert of a chat and returns how many were active.
func (s *Service) ClearAll(chatID int64) int {
	subs := s.registry.RemoveAll(chatID)
	for _, sub := range subs {
		sub.stop()
	}

	log.Debugf("alerts cleared: chat=%d count=%d", chatID, len(subs))
	return len(subs)
}

// Active lists the chat's current subscriptions.
func (s *Service) Active(chatID int64) []Snapshot {
	return s.registry.Active(chatID)
}

// Stop cancels every loop and waits for them to drain.
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
}

// run is the per-subscription loop. It sends the initial notice, then ticks
// at the subscription interval until cancelled, superseded or removed. A
// panic terminates this loop only; the subscription silently stops notifying.
func (s *Service) run(ctx context.Context, sub *Subscription) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			stackBuf := make([]byte, 2048)
			stackSize := runtime.Stack(stackBuf, false)
			log.Errorf("alert loop died: chat=%d coin=%s: %v\n%s", sub.ChatID, sub.CoinID, r, stackBuf[:stackSize])
			ticksTotal.WithLabelValues("panic").Inc()
		}
	}()

	if price, ok := s.prices.SimplePrice(ctx, sub.CoinID); ok {
		if s.registry.UpdateLastPrice(sub, price) {
			s.notify(sub, enabledMessage(sub.Label, price))
		}
	}

	ticker := time.NewTicker(sub.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugf("alert loop cancelled: chat=%d coin=%s", sub.ChatID, sub.CoinID)
			return
		case <-ticker.C:
			if !s.registry.Live(sub) {
				return
			}
			s.tick(ctx, sub)
		}
	}
}

func (s *Service) tick(ctx context.Context, sub *Subscription) {
	price, ok := s.prices.SimplePrice(ctx, sub.CoinID)
	if !ok {
		ticksTotal.WithLabelValues("price_unavailable").Inc()
		s.notify(sub, unavailableMessage(sub.Label))
		return
	}

	old, hadBaseline := s.registry.LastPrice(sub)
	if !s.registry.UpdateLastPrice(sub, price) {
		// Superseded after the liveness check; the pair belongs to the
		// replacement loop now.
		return
	}
	ticksTotal.WithLabelValues("success").Inc()

	if !hadBaseline || old <= 0 {
		s.notify(sub, priceMessage(sub.Label, price))
		return
	}

	changePct := (price - old) / old * 100
	s.notify(sub, changeMessage(sub.Label, price, changePct))
}

func (s *Service) notify(sub *Subscription, text string) {
	if err := s.notifier.Notify(sub.ChatID, text); err != nil {
		notificationErrors.Inc()
		log.Errorf("could not notify chat=%d coin=%s: %v", sub.ChatID, sub.CoinID, err)
		return
	}
	notificationsSent.Inc()
}
