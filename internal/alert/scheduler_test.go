package alert_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cryptovektor-telegram-bot/internal/alert"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceStep struct {
	value float64
	ok    bool
}

// scriptedPrices replays a fixed price sequence; once exhausted it keeps
// returning the final step.
type scriptedPrices struct {
	mu    sync.Mutex
	steps []priceStep
	next  int
}

func (s *scriptedPrices) SimplePrice(_ context.Context, _ string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.steps[len(s.steps)-1]
	if s.next < len(s.steps) {
		step = s.steps[s.next]
		s.next++
	}
	return step.value, step.ok
}

type notice struct {
	chatID int64
	text   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notice
	ch   chan notice
	err  error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan notice, 64)}
}

func (r *recordingNotifier) Notify(chatID int64, text string) error {
	n := notice{chatID: chatID, text: text}
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
	r.ch <- n
	return r.err
}

func (r *recordingNotifier) next(t *testing.T) notice {
	t.Helper()
	select {
	case n := <-r.ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a notification")
		return notice{}
	}
}

// drainFor consumes anything arriving within d, covering the tolerated
// one-extra-notification window after a teardown.
func (r *recordingNotifier) drainFor(d time.Duration) {
	deadline := time.After(d)
	for {
		select {
		case <-r.ch:
		case <-deadline:
			return
		}
	}
}

func (r *recordingNotifier) expectSilence(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case n := <-r.ch:
		t.Fatalf("expected no notifications, got %q for chat %d", n.text, n.chatID)
	case <-time.After(d):
	}
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func TestSubscribeSendsInitialNoticeThenChange(t *testing.T) {
	prices := &scriptedPrices{steps: []priceStep{{50000.0, true}, {50500.0, true}}}
	notifier := newRecordingNotifier()
	svc := alert.NewService(alert.NewRegistry(), prices, notifier)
	defer svc.Stop()

	svc.Subscribe(42, "bitcoin", "BTC", 20*time.Millisecond)

	initial := notifier.next(t)
	assert.EqualValues(t, 42, initial.chatID)
	assert.Contains(t, initial.text, "BTC")
	assert.Contains(t, initial.text, "50,000.00")
	assert.NotContains(t, initial.text, "%")

	first := notifier.next(t)
	assert.Contains(t, first.text, "50,500.00")
	assert.Contains(t, first.text, "+1.00%")
	assert.Contains(t, first.text, "📈")
}

func TestPercentageSequenceMatchesFetchedPrices(t *testing.T) {
	prices := &scriptedPrices{steps: []priceStep{
		{100.0, true},
		{110.0, true},
		{99.0, true},
		{99.0, true},
	}}
	notifier := newRecordingNotifier()
	svc := alert.NewService(alert.NewRegistry(), prices, notifier)
	defer svc.Stop()

	svc.Subscribe(7, "ethereum", "ETH", 15*time.Millisecond)

	notifier.next(t) // initial notice, no percentage

	up := notifier.next(t)
	assert.Contains(t, up.text, "+10.00%")
	assert.Contains(t, up.text, "📈")

	down := notifier.next(t)
	assert.Contains(t, down.text, "-10.00%")
	assert.Contains(t, down.text, "📉")

	flat := notifier.next(t)
	assert.Contains(t, flat.text, "+0.00%")
	assert.Contains(t, flat.text, "➡️")
}

func TestFailedTickKeepsBaseline(t *testing.T) {
	prices := &scriptedPrices{steps: []priceStep{
		{100.0, true},
		{0, false},
		{121.0, true},
	}}
	notifier := newRecordingNotifier()
	svc := alert.NewService(alert.NewRegistry(), prices, notifier)
	defer svc.Stop()

	svc.Subscribe(7, "solana", "SOL", 15*time.Millisecond)

	notifier.next(t) // initial notice at 100

	unavailable := notifier.next(t)
	assert.Contains(t, unavailable.text, "⚠️")
	assert.Contains(t, unavailable.text, "SOL")

	// The subscription survived the failure and the next success is still
	// measured against the untouched 100 baseline.
	require.Len(t, svc.Active(7), 1)
	recovered := notifier.next(t)
	assert.Contains(t, recovered.text, "+21.00%")
}

func TestFailedStartSkipsInitialNotice(t *testing.T) {
	prices := &scriptedPrices{steps: []priceStep{
		{0, false},
		{50.0, true},
		{55.0, true},
	}}
	notifier := newRecordingNotifier()
	svc := alert.NewService(alert.NewRegistry(), prices, notifier)
	defer svc.Stop()

	svc.Subscribe(7, "cardano", "ADA", 15*time.Millisecond)

	// No "alerts enabled" notice; the baseline is unset, so the first
	// successful tick reports a plain price without a percentage.
	first := notifier.next(t)
	assert.Contains(t, first.text, "$50")
	assert.NotContains(t, first.text, "%")

	second := notifier.next(t)
	assert.Contains(t, second.text, "+10.00%")
}

func TestResubscribeSupersedesOldCadence(t *testing.T) {
	prices := &scriptedPrices{steps: []priceStep{{100.0, true}}}
	notifier := newRecordingNotifier()
	svc := alert.NewService(alert.NewRegistry(), prices, notifier)
	defer svc.Stop()

	svc.Subscribe(9, "bitcoin", "BTC", 30*time.Millisecond)
	notifier.next(t) // initial notice of the first subscription

	// Replace with a far longer interval. Only the new cadence may speak.
	svc.Subscribe(9, "bitcoin", "BTC", 10*time.Second)
	notifier.next(t) // initial notice of the replacement

	notifier.drainFor(60 * time.Millisecond)
	notifier.expectSilence(t, 200*time.Millisecond)

	require.Len(t, svc.Active(9), 1)
	assert.Equal(t, 10*time.Second, svc.Active(9)[0].Interval)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	prices := &scriptedPrices{steps: []priceStep{{100.0, true}}}
	notifier := newRecordingNotifier()
	svc := alert.NewService(alert.NewRegistry(), prices, notifier)
	defer svc.Stop()

	svc.Subscribe(5, "litecoin", "LTC", 20*time.Millisecond)
	notifier.next(t)

	assert.True(t, svc.Unsubscribe(5, "litecoin"))
	assert.False(t, svc.Unsubscribe(5, "litecoin"))

	notifier.drainFor(40 * time.Millisecond)
	notifier.expectSilence(t, 150*time.Millisecond)
	assert.Empty(t, svc.Active(5))
}

func TestClearAllIsIdempotent(t *testing.T) {
	prices := &scriptedPrices{steps: []priceStep{{100.0, true}}}
	notifier := newRecordingNotifier()
	svc := alert.NewService(alert.NewRegistry(), prices, notifier)
	defer svc.Stop()

	svc.Subscribe(3, "bitcoin", "BTC", 20*time.Millisecond)
	svc.Subscribe(3, "ethereum", "ETH", 20*time.Millisecond)
	notifier.next(t)
	notifier.next(t)

	assert.Equal(t, 2, svc.ClearAll(3))
	assert.Equal(t, 0, svc.ClearAll(3))

	notifier.drainFor(40 * time.Millisecond)
	notifier.expectSilence(t, 150*time.Millisecond)
}

func TestNotifierErrorsDoNotKillLoop(t *testing.T) {
	prices := &scriptedPrices{steps: []priceStep{{100.0, true}, {101.0, true}, {102.0, true}}}
	notifier := newRecordingNotifier()
	notifier.err = errors.New("telegram is down")
	svc := alert.NewService(alert.NewRegistry(), prices, notifier)
	defer svc.Stop()

	svc.Subscribe(11, "tron", "TRX", 15*time.Millisecond)

	notifier.next(t)
	notifier.next(t)
	notifier.next(t)
	assert.GreaterOrEqual(t, notifier.count(), 3)
	require.Len(t, svc.Active(11), 1)
}

func TestStopDrainsAllLoops(t *testing.T) {
	prices := &scriptedPrices{steps: []priceStep{{100.0, true}}}
	notifier := newRecordingNotifier()
	svc := alert.NewService(alert.NewRegistry(), prices, notifier)

	svc.Subscribe(1, "bitcoin", "BTC", 20*time.Millisecond)
	svc.Subscribe(2, "ethereum", "ETH", 20*time.Millisecond)
	notifier.next(t)
	notifier.next(t)

	done := make(chan struct{})
	go func() {
		svc.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not drain the loops in time")
	}

	notifier.drainFor(40 * time.Millisecond)
	notifier.expectSilence(t, 150*time.Millisecond)
}
