package events

import (
	"encoding/json"
	"sync"

	"github.com/asianchinaboi/brocord/internal/gateway"
)

type (
	Handler    func(frame gateway.DataFrame)
	AnyHandler func(event string, frame gateway.DataFrame)
)

type entry struct {
	id  uint64
	fn  Handler
	any AnyHandler
}

// Emitter fans dispatches out by event name. Handlers run on the publishing
// goroutine in registration order, so each name sees frames in the order they
// were published.
type Emitter struct {
	mu       sync.RWMutex
	nextId   uint64
	handlers map[string][]entry
	any      []entry
	counts   map[string]int
}

func NewEmitter() *Emitter {
	return &Emitter{
		handlers: make(map[string][]entry),
		counts:   make(map[string]int),
	}
}

// On registers fn for one event name. The returned func removes it.
func (e *Emitter) On(event string, fn Handler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextId++
	id := e.nextId
	e.handlers[event] = append(e.handlers[event], entry{id: id, fn: fn})
	return func() { e.off(event, id) }
}

// OnAny registers fn for every event name.
func (e *Emitter) OnAny(fn AnyHandler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextId++
	id := e.nextId
	e.any = append(e.any, entry{id: id, any: fn})
	return func() { e.offAny(id) }
}

// Subscribe is the channel form of On. Publishing blocks until the frame is
// received or the subscription is cancelled. The channel is never closed.
func (e *Emitter) Subscribe(event string, buffer int) (<-chan gateway.DataFrame, func()) {
	ch := make(chan gateway.DataFrame, buffer)
	done := make(chan struct{})
	var once sync.Once
	off := e.On(event, func(frame gateway.DataFrame) {
		select {
		case ch <- frame:
		case <-done:
		}
	})
	return ch, func() {
		once.Do(func() {
			off()
			close(done)
		})
	}
}

func (e *Emitter) off(event string, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := e.handlers[event]
	for i, h := range list {
		if h.id == id {
			e.handlers[event] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(e.handlers[event]) == 0 {
		delete(e.handlers, event)
	}
}

func (e *Emitter) offAny(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, h := range e.any {
		if h.id == id {
			e.any = append(e.any[:i:i], e.any[i+1:]...)
			return
		}
	}
}

func (e *Emitter) Publish(event string, frame gateway.DataFrame) {
	e.mu.Lock()
	e.counts[event]++
	named := e.handlers[event]
	all := e.any
	e.mu.Unlock()

	for _, h := range named {
		h.fn(frame)
	}
	for _, h := range all {
		h.any(event, frame)
	}
}

// Count is the number of frames published under event so far.
func (e *Emitter) Count(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.counts[event]
}

func (e *Emitter) Listeners(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers[event])
}

// Decode unmarshals the d field of a dispatch into T.
func Decode[T any](frame gateway.DataFrame) (T, error) {
	var v T
	err := json.Unmarshal(frame.Data, &v)
	return v, err
}
