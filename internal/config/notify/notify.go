// Package notify delivers layer change events to subscribers.
//
// The configuration manager publishes an event whenever a layer is
// reloaded, whenever a watched layer file appears, and whenever one is
// removed. Components subscribe globally or per layer and receive a
// callback for each matching event.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// ChangeType identifies what happened to a layer.
type ChangeType int

const (
	// ChangeReload indicates a layer was re-read from its source.
	ChangeReload ChangeType = iota

	// ChangeCreate indicates a watched layer file appeared.
	ChangeCreate

	// ChangeRemove indicates a watched layer file was removed.
	ChangeRemove
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeReload:
		return "reload"
	case ChangeCreate:
		return "create"
	case ChangeRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change is one layer event.
type Change struct {
	// LayerID identifies the layer within its manager.
	LayerID uuid.UUID

	// Layer is the layer's name.
	Layer string

	// Path is the layer's file path, empty for in-memory layers.
	Path string

	// Type is what happened.
	Type ChangeType
}

// Observer is called for each matching change.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uuid.UUID
	layer    string
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages layer change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Observers that receive every change
	global map[uuid.UUID]Observer

	// Observers keyed by layer name
	byLayer map[string]map[uuid.UUID]Observer

	// Whether to deliver synchronously or through the buffer
	async bool

	// Buffer for async delivery
	buffer chan Change

	// Done channel for shutdown
	done chan struct{}

	// Wait group for the async goroutine
	wg sync.WaitGroup

	// Closed flag for idempotent Close
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables buffered asynchronous delivery.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		global:  make(map[uuid.UUID]Observer),
		byLayer: make(map[string]map[uuid.UUID]Observer),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.New()
	n.global[id] = observer

	return &Subscription{
		id:       id,
		notifier: n,
	}
}

// SubscribeLayer registers an observer for changes to one named layer.
func (n *Notifier) SubscribeLayer(layer string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.New()
	if n.byLayer[layer] == nil {
		n.byLayer[layer] = make(map[uuid.UUID]Observer)
	}
	n.byLayer[layer][id] = observer

	return &Subscription{
		id:       id,
		layer:    layer,
		notifier: n,
	}
}

// Notify sends a change to all matching observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}

	n.deliver(change)
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(layerID uuid.UUID, layer, path string) {
	n.Notify(Change{LayerID: layerID, Layer: layer, Path: path, Type: ChangeReload})
}

// NotifyCreate is a convenience method for create events.
func (n *Notifier) NotifyCreate(layerID uuid.UUID, layer, path string) {
	n.Notify(Change{LayerID: layerID, Layer: layer, Path: path, Type: ChangeCreate})
}

// NotifyRemove is a convenience method for remove events.
func (n *Notifier) NotifyRemove(layerID uuid.UUID, layer, path string) {
	n.Notify(Change{LayerID: layerID, Layer: layer, Path: path, Type: ChangeRemove})
}

// Close shuts down the notifier. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.global, id)

	for layer, observers := range n.byLayer {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.byLayer, layer)
		}
	}
}

// deliver sends a change to all matching observers.
func (n *Notifier) deliver(change Change) {
	n.mu.RLock()

	var observers []Observer
	for _, obs := range n.global {
		observers = append(observers, obs)
	}
	if layerObs, ok := n.byLayer[change.Layer]; ok {
		for _, obs := range layerObs {
			observers = append(observers, obs)
		}
	}

	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}

// processAsync drains the buffer until Close.
func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliver(change)
		case <-n.done:
			// Drain remaining buffered changes
			for {
				select {
				case change := <-n.buffer:
					n.deliver(change)
				default:
					return
				}
			}
		}
	}
}
