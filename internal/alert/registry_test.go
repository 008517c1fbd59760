package alert_test

import (
	"testing"
	"time"

	"cryptovektor-telegram-bot/internal/alert"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSub(chatID int64, coinID string) *alert.Subscription {
	return &alert.Subscription{
		ChatID:   chatID,
		CoinID:   coinID,
		Label:    coinID,
		Interval: time.Minute,
		Created:  time.Now(),
	}
}

func TestInstallSupersedesSamePair(t *testing.T) {
	r := alert.NewRegistry()

	first := newSub(1, "bitcoin")
	require.Nil(t, r.Install(first))
	require.True(t, r.Live(first))

	second := newSub(1, "bitcoin")
	replaced := r.Install(second)
	require.Same(t, first, replaced)

	assert.False(t, r.Live(first))
	assert.True(t, r.Live(second))
	assert.Equal(t, 1, r.Count())
}

func TestStaleHandleCannotWriteBaseline(t *testing.T) {
	r := alert.NewRegistry()

	first := newSub(1, "bitcoin")
	r.Install(first)
	second := newSub(1, "bitcoin")
	r.Install(second)

	assert.False(t, r.UpdateLastPrice(first, 100))
	assert.True(t, r.UpdateLastPrice(second, 200))

	price, set := r.LastPrice(second)
	assert.True(t, set)
	assert.Equal(t, 200.0, price)
}

func TestLastPriceUnsetUntilFirstUpdate(t *testing.T) {
	r := alert.NewRegistry()
	sub := newSub(1, "ethereum")
	r.Install(sub)

	_, set := r.LastPrice(sub)
	assert.False(t, set)

	require.True(t, r.UpdateLastPrice(sub, 3200.5))
	price, set := r.LastPrice(sub)
	assert.True(t, set)
	assert.Equal(t, 3200.5, price)
}

func TestRemoveIsIdempotent(t *testing.T) {
	r := alert.NewRegistry()

	assert.Nil(t, r.Remove(1, "bitcoin"))

	sub := newSub(1, "bitcoin")
	r.Install(sub)

	require.Same(t, sub, r.Remove(1, "bitcoin"))
	assert.Nil(t, r.Remove(1, "bitcoin"))
	assert.False(t, r.Live(sub))
	assert.Equal(t, 0, r.Count())
}

func TestRemoveAllClearsOnlyThatChat(t *testing.T) {
	r := alert.NewRegistry()
	r.Install(newSub(1, "bitcoin"))
	r.Install(newSub(1, "ethereum"))
	other := newSub(2, "bitcoin")
	r.Install(other)

	removed := r.RemoveAll(1)
	assert.Len(t, removed, 2)
	assert.Empty(t, r.Active(1))
	assert.True(t, r.Live(other))
	assert.Equal(t, 1, r.Count())

	assert.Empty(t, r.RemoveAll(1))
}

func TestActiveSnapshotsSortedByCoin(t *testing.T) {
	r := alert.NewRegistry()
	r.Install(newSub(1, "ripple"))
	eth := newSub(1, "ethereum")
	r.Install(eth)
	require.True(t, r.UpdateLastPrice(eth, 3000))

	active := r.Active(1)
	require.Len(t, active, 2)
	assert.Equal(t, "ethereum", active[0].CoinID)
	assert.Equal(t, "ripple", active[1].CoinID)

	assert.True(t, active[0].PriceSet)
	assert.Equal(t, 3000.0, active[0].LastPrice)
	assert.False(t, active[1].PriceSet)
}

func TestGetReturnsLiveSubscription(t *testing.T) {
	r := alert.NewRegistry()
	assert.Nil(t, r.Get(1, "bitcoin"))

	sub := newSub(1, "bitcoin")
	r.Install(sub)
	assert.Same(t, sub, r.Get(1, "bitcoin"))
}
