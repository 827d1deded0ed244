// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package session

import (
	"log/slog"
	"sync"
)

// Broadcaster distributes state snapshots to subscribers.
type Broadcaster struct {
	mu   sync.Mutex
	subs []chan State
}

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe creates a channel that receives state snapshots. Each
// channel holds at most one pending snapshot; a subscriber that falls
// behind sees the latest state, never an intermediate one out of order.
func (b *Broadcaster) Subscribe() chan State {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan State, 1)
	b.subs = append(b.subs, ch)
	return ch
}

// Unsubscribe removes a channel and closes it.
func (b *Broadcaster) Unsubscribe(ch chan State) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Publish sends a snapshot to every subscriber. If a subscriber has not
// drained the previous snapshot it is replaced, so a receive always
// yields a state no older than the latest completed transition.
func (b *Broadcaster) Publish(state State) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- state:
			default:
				// Subscriber raced the drain; it already holds a
				// fresher snapshot than the one we evicted.
				slog.Debug("state snapshot dropped: subscriber busy")
			}
		}
	}
}
