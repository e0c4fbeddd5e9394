// Package events implements the explicit read-model invalidation contract:
// after a mutation M, invalidate read models {R1, R2, ...}. Mutating services
// publish to named read models; cached read paths subscribe and drop state.
// This replaces ad hoc key-string matching with a declared dependency.
package events

import "sync"

// ReadModel names a cached read path that mutations can invalidate.
type ReadModel string

const (
	ReadModelAccounts       ReadModel = "accounts"
	ReadModelCounterparties ReadModel = "counterparties"
	ReadModelSummary        ReadModel = "summary"
)

// InvalidationFunc is called synchronously when its read model is invalidated.
// Implementations must be safe for concurrent use and must not block.
type InvalidationFunc func(model ReadModel)

// InvalidationBus is an in-process publisher for read-model invalidations.
// The zero value is not usable; construct with NewInvalidationBus.
type InvalidationBus struct {
	mu   sync.RWMutex
	subs map[ReadModel][]InvalidationFunc
}

// NewInvalidationBus creates an empty bus.
func NewInvalidationBus() *InvalidationBus {
	return &InvalidationBus{subs: make(map[ReadModel][]InvalidationFunc)}
}

// Subscribe registers fn for every model listed. Registration order is
// preserved per model.
func (b *InvalidationBus) Subscribe(fn InvalidationFunc, models ...ReadModel) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, m := range models {
		b.subs[m] = append(b.subs[m], fn)
	}
}

// Invalidate notifies every subscriber of every listed model. Publishing a
// model with no subscribers is a no-op.
func (b *InvalidationBus) Invalidate(models ...ReadModel) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, m := range models {
		for _, fn := range b.subs[m] {
			fn(m)
		}
	}
}
