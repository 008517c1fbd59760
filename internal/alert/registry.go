package alert

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Subscription is one live (chat, coin) alert binding. Its exported fields
// are fixed at creation; the price baseline is owned by the Registry and only
// touched under its lock.
type Subscription struct {
	ChatID   int64
	CoinID   string
	Label    string
	Interval time.Duration
	Created  time.Time

	lastPrice float64
	priceSet  bool
	cancel    context.CancelFunc
}

// stop signals the subscription's loop to terminate. Safe on subscriptions
// that never got a loop.
func (s *Subscription) stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Snapshot is a read-only copy of a subscription for listings.
type Snapshot struct {
	CoinID    string
	Label     string
	Interval  time.Duration
	Created   time.Time
	LastPrice float64
	PriceSet  bool
}

// Registry maps chats to their active subscriptions. It is the only mutable
// state shared between the notification loops and the command layer; all
// access goes through one mutex.
type Registry struct {
	mu    sync.Mutex
	subs  map[int64]map[string]*Subscription
	total int
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[int64]map[string]*Subscription)}
}

// Install stores sub as the live subscription for its (chat, coin) pair and
// returns the one it replaced, or nil. At most one subscription per pair is
// live at any time.
func (r *Registry) Install(sub *Subscription) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	chatSubs, ok := r.subs[sub.ChatID]
	if !ok {
		chatSubs = make(map[string]*Subscription)
		r.subs[sub.ChatID] = chatSubs
	}

	old := chatSubs[sub.CoinID]
	chatSubs[sub.CoinID] = sub
	if old == nil {
		r.total++
	}
	activeSubscriptions.Set(float64(r.total))

	return old
}

// Remove deletes the (chat, coin) subscription and returns it, or nil when
// none was installed. Removing an absent entry is a no-op.
func (r *Registry) Remove(chatID int64, coinID string) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[chatID][coinID]
	if !ok {
		return nil
	}

	delete(r.subs[chatID], coinID)
	if len(r.subs[chatID]) == 0 {
		delete(r.subs, chatID)
	}
	r.total--
	activeSubscriptions.Set(float64(r.total))

	return sub
}

// RemoveAll deletes every subscription of a chat and returns them.
func (r *Registry) RemoveAll(chatID int64) []*Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := make([]*Subscription, 0, len(r.subs[chatID]))
	for _, sub := range r.subs[chatID] {
		removed = append(removed, sub)
	}

	delete(r.subs, chatID)
	r.total -= len(removed)
	activeSubscriptions.Set(float64(r.total))

	return removed
}

// Get returns the live subscription for (chat, coin), or nil.
func (r *Registry) Get(chatID int64, coinID string) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs[chatID][coinID]
}

// Live reports whether sub is still the installed subscription for its pair.
// A superseded or removed handle is not live even if an equal pair exists.
func (r *Registry) Live(sub *Subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs[sub.ChatID][sub.CoinID] == sub
}

// LastPrice reads sub's last observed price; the bool is false until the
// first successful fetch is recorded.
func (r *Registry) LastPrice(sub *Subscription) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sub.lastPrice, sub.priceSet
}

// UpdateLastPrice records the most recent successful fetch for sub. It
// refuses the write when sub has been superseded or removed, so a stale loop
// can never clobber its successor's baseline.
func (r *Registry) UpdateLastPrice(sub *Subscription, price float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.subs[sub.ChatID][sub.CoinID] != sub {
		return false
	}

	sub.lastPrice = price
	sub.priceSet = true
	return true
}

// Active lists the chat's subscriptions sorted by coin id.
func (r *Registry) Active(chatID int64) []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshots := make([]Snapshot, 0, len(r.subs[chatID]))
	for _, sub := range r.subs[chatID] {
		snapshots = append(snapshots, Snapshot{
			CoinID:    sub.CoinID,
			Label:     sub.Label,
			Interval:  sub.Interval,
			Created:   sub.Created,
			LastPrice: sub.lastPrice,
			PriceSet:  sub.priceSet,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].CoinID < snapshots[j].CoinID })
	return snapshots
}

// Count returns the number of live subscriptions across all chats.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
