package events_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/events"
)

func TestInvalidationBus_DeliversToSubscribedModelsOnly(t *testing.T) {
	bus := events.NewInvalidationBus()

	var got []events.ReadModel
	bus.Subscribe(func(m events.ReadModel) { got = append(got, m) },
		events.ReadModelAccounts, events.ReadModelSummary)

	bus.Invalidate(events.ReadModelAccounts)
	bus.Invalidate(events.ReadModelCounterparties) // no subscriber
	bus.Invalidate(events.ReadModelSummary)

	assert.Equal(t, []events.ReadModel{events.ReadModelAccounts, events.ReadModelSummary}, got)
}

func TestInvalidationBus_MultipleSubscribers(t *testing.T) {
	bus := events.NewInvalidationBus()

	a, b := 0, 0
	bus.Subscribe(func(events.ReadModel) { a++ }, events.ReadModelSummary)
	bus.Subscribe(func(events.ReadModel) { b++ }, events.ReadModelSummary)

	bus.Invalidate(events.ReadModelSummary, events.ReadModelSummary)

	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

func TestInvalidationBus_ConcurrentPublish(t *testing.T) {
	bus := events.NewInvalidationBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(events.ReadModel) {
		mu.Lock()
		count++
		mu.Unlock()
	}, events.ReadModelAccounts)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Invalidate(events.ReadModelAccounts)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, count)
}
