// Package events allows for the registering and receiving of change events
// published when blogs, posts or roles are modified.
package events

import (
	"fmt"
	"sync"
	"time"
)

// Event describes a change to a blog.
type Event struct {
	Type   string    `json:"type"`
	BlogID string    `json:"blogId,omitempty"`
	Wallet string    `json:"wallet,omitempty"`
	Detail string    `json:"detail,omitempty"`
	Time   time.Time `json:"time"`
}

// Filter decides if a receiver wants the event.
type Filter func(Event) bool

// All is the filter that accepts every event.
func All(Event) bool { return true }

type receiver struct {
	ch     chan Event
	filter Filter
}

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	m  map[string]receiver
	mu sync.RWMutex
}

// New constructs an events for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]receiver),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, rcv := range evt.m {
		delete(evt.m, id)
		close(rcv.ch)
	}
}

// Acquire takes a unique id and returns a channel that receives the events
// accepted by the filter. A nil filter accepts everything.
func (evt *Events) Acquire(id string, filter Filter) <-chan Event {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if rcv, exists := evt.m[id]; exists {
		return rcv.ch
	}

	if filter == nil {
		filter = All
	}

	// Since a message will be dropped if the websocket receiver is
	// not ready to receive, this arbitrary buffer should give the receiver
	// enough time to not lose a message. Websocket send could take long.
	const messageBuffer = 100

	rcv := receiver{
		ch:     make(chan Event, messageBuffer),
		filter: filter,
	}
	evt.m[id] = rcv

	return rcv.ch
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	rcv, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(rcv.ch)
	return nil
}

// Send signals the event to every registered receiver whose filter accepts
// it. Send will not block waiting for a receiver on any given channel.
func (evt *Events) Send(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, rcv := range evt.m {
		if !rcv.filter(e) {
			continue
		}

		select {
		case rcv.ch <- e:
		default:
		}
	}
}

// Count returns the number of registered receivers.
func (evt *Events) Count() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.m)
}
