package session

import (
	"sync"

	"github.com/MrSnakeDoc/forge/internal/domain"
)

// Subscription receives the configuration of a session after each edit.
// Only the latest configuration is kept: a slow reader skips intermediate
// revisions.
type Subscription struct {
	svc     *Service
	id      string
	updates chan domain.Configuration
	done    chan struct{}
	once    sync.Once
}

// Subscribe follows the edits of session id until Close is called or the
// session ends.
func (s *Service) Subscribe(id string) *Subscription {
	sub := &Subscription{
		svc:     s,
		id:      id,
		updates: make(chan domain.Configuration, 1),
		done:    make(chan struct{}),
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.subs[id] == nil {
		s.subs[id] = make(map[*Subscription]struct{})
	}
	s.subs[id][sub] = struct{}{}
	return sub
}

// Updates delivers new configurations.
func (sub *Subscription) Updates() <-chan domain.Configuration {
	return sub.updates
}

// Done is closed when the subscription ends.
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

// Close ends the subscription. It is safe to call more than once.
func (sub *Subscription) Close() {
	sub.svc.subMu.Lock()
	if subs, ok := sub.svc.subs[sub.id]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(sub.svc.subs, sub.id)
		}
	}
	sub.svc.subMu.Unlock()

	sub.close()
}

func (sub *Subscription) close() {
	sub.once.Do(func() { close(sub.done) })
}

// offer replaces any undelivered configuration with cfg
func (sub *Subscription) offer(cfg domain.Configuration) {
	select {
	case <-sub.updates:
	default:
	}
	select {
	case sub.updates <- cfg:
	default:
	}
}

func (s *Service) publish(id string, cfg domain.Configuration) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for sub := range s.subs[id] {
		sub.offer(cfg)
	}
}

// Subscribers returns the number of live subscriptions of id.
func (s *Service) Subscribers(id string) int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs[id])
}
