// Copyright 2026 The JazzPetri Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package event provides the synchronous notification bus used by the tween
// registry.
//
// Owners that cache a tween.Handle subscribe here to learn when "their" task
// appears, completes or disappears, without the registry knowing about them.
//
// Example usage:
//
//	bus := event.NewBus()
//	id, _ := bus.Subscribe(event.TaskRemoved, func(e event.Event) {
//	    if e.Handle == cached {
//	        cached = tween.None
//	    }
//	})
//	defer bus.Unsubscribe(id)
package event

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jazzpetri/tween/tween"
)

// Kind identifies a registry notification.
type Kind string

const (
	// TaskAdded is published when a task is registered or restored.
	TaskAdded Kind = "task.added"

	// TaskRemoved is published when a task leaves the registry.
	TaskRemoved Kind = "task.removed"

	// TaskCompleted is published each time a task crosses its boundary.
	TaskCompleted Kind = "task.completed"

	// All subscribes to every kind.
	All Kind = "*"
)

// Kinds returns the concrete notification kinds in publish-lifecycle order.
func Kinds() []Kind {
	return []Kind{TaskAdded, TaskCompleted, TaskRemoved}
}

// Event is a single notification.
type Event struct {
	Kind   Kind
	Handle tween.Handle
}

// String returns "task.added tween#3" style text.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Kind, e.Handle)
}

// Handler receives events. Handlers run on the publishing goroutine and
// may subscribe, unsubscribe or publish.
type Handler func(Event)

var (
	// ErrNilHandler is returned by Subscribe for a nil handler.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrEmptyKind is returned by Subscribe for an empty kind.
	ErrEmptyKind = errors.New("event kind cannot be empty")

	// ErrUnknownSubscription is returned by Unsubscribe for an unknown id.
	ErrUnknownSubscription = errors.New("subscription not found")
)

type subscription struct {
	id      string
	kind    Kind
	handler Handler
	removed bool
}

// Bus delivers events synchronously, in subscription order.
// Safe for concurrent use; handlers are never called with the lock held.
type Bus struct {
	mu   sync.RWMutex
	subs []*subscription
	byID map[string]*subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		byID: make(map[string]*subscription),
	}
}

// Subscribe registers handler for kind, or for every kind when kind is All.
// Returns a subscription ID that can be passed to Unsubscribe.
func (b *Bus) Subscribe(kind Kind, handler Handler) (string, error) {
	if handler == nil {
		return "", ErrNilHandler
	}
	if kind == "" {
		return "", ErrEmptyKind
	}

	sub := &subscription{
		id:      uuid.NewString(),
		kind:    kind,
		handler: handler,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, sub)
	b.byID[sub.id] = sub

	return sub.id, nil
}

// Unsubscribe removes a subscription by ID. A handler removed while an
// event is being delivered is not called for the rest of that delivery.
func (b *Bus) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSubscription, id)
	}
	sub.removed = true
	delete(b.byID, id)

	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			break
		}
	}
	return nil
}

// Publish calls every matching handler in subscription order and returns
// once all of them have run. Handlers subscribed during the call do not
// receive this event.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := b.matching(e.Kind)
	b.mu.RUnlock()

	for _, sub := range subs {
		if b.isRemoved(sub) {
			continue
		}
		sub.handler(e)
	}
}

// matching must be called with the read lock held.
func (b *Bus) matching(kind Kind) []*subscription {
	var out []*subscription
	for _, sub := range b.subs {
		if sub.kind == All || sub.kind == kind {
			out = append(out, sub)
		}
	}
	return out
}

func (b *Bus) isRemoved(sub *subscription) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sub.removed
}

// SubscriptionCount returns the number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Clear drops every subscription.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		sub.removed = true
	}
	b.subs = nil
	b.byID = make(map[string]*subscription)
}
