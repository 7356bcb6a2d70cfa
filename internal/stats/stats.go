// Package stats keeps per-session counters fed from the event bus.
package stats

import (
	"sync/atomic"

	"lookout/internal/domain"
	"lookout/internal/eventbus"
)

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	QueriesIssued  int64
	SearchesOK     int64
	SearchesFailed int64
	DialogsOpened  int64
}

// Searches is the number of lookups that settled, successful or not
func (s Snapshot) Searches() int64 {
	return s.SearchesOK + s.SearchesFailed
}

// Session counts what happened since the program started
type Session struct {
	queries     atomic.Int64
	ok          atomic.Int64
	failed      atomic.Int64
	dialogs     atomic.Int64
	unsubscribe []func()
}

// NewSession subscribes a fresh set of counters to bus
func NewSession(bus eventbus.EventBus) *Session {
	s := &Session{}
	s.unsubscribe = append(s.unsubscribe,
		bus.Subscribe(eventbus.EventQueryIssued, func(eventbus.DomainEvent) {
			s.queries.Add(1)
		}),
		bus.Subscribe(eventbus.EventSearchSettled, func(e eventbus.DomainEvent) {
			ev, ok := e.(eventbus.SearchSettledEvent)
			if !ok {
				return
			}
			if ev.Status == domain.StatusError {
				s.failed.Add(1)
			} else {
				s.ok.Add(1)
			}
		}),
		bus.Subscribe(eventbus.EventModalOpened, func(eventbus.DomainEvent) {
			s.dialogs.Add(1)
		}),
	)
	return s
}

// Snapshot returns the current counts
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		QueriesIssued:  s.queries.Load(),
		SearchesOK:     s.ok.Load(),
		SearchesFailed: s.failed.Load(),
		DialogsOpened:  s.dialogs.Load(),
	}
}

// Stop unsubscribes from the bus
func (s *Session) Stop() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
}
