// Package event provides a named-event emitter with synchronous dispatch.
package event

import (
	"slices"
	"sync"
)

type Listener struct {
	Name string
	Func func(args ...any)
	once bool
}

// Emitter dispatches events to listeners in registration order on the emitting goroutine. The zero
// value is ready to use and safe for concurrent use.
type Emitter struct {
	mu        sync.Mutex
	listeners map[string][]*Listener
	names     []string
}

func New() *Emitter {
	return &Emitter{}
}

func (emitter *Emitter) add(listener *Listener, prepend bool) *Listener {
	emitter.mu.Lock()
	defer emitter.mu.Unlock()

	if emitter.listeners == nil {
		emitter.listeners = make(map[string][]*Listener)
	}

	current, ok := emitter.listeners[listener.Name]
	if !ok || len(current) == 0 {
		if !slices.Contains(emitter.names, listener.Name) {
			emitter.names = append(emitter.names, listener.Name)
		}
	}

	if prepend {
		emitter.listeners[listener.Name] = append([]*Listener{listener}, current...)
	} else {
		emitter.listeners[listener.Name] = append(current, listener)
	}

	return listener
}

func (emitter *Emitter) On(name string, f func(args ...any)) *Listener {
	return emitter.add(&Listener{Name: name, Func: f}, false)
}

// Once registers a listener that is removed before its first invocation.
func (emitter *Emitter) Once(name string, f func(args ...any)) *Listener {
	return emitter.add(&Listener{Name: name, Func: f, once: true}, false)
}

func (emitter *Emitter) Prepend(name string, f func(args ...any)) *Listener {
	return emitter.add(&Listener{Name: name, Func: f}, true)
}

func (emitter *Emitter) removeLocked(name string, listener *Listener) {
	current := emitter.listeners[name]
	index := slices.Index(current, listener)
	if index == -1 {
		return
	}

	current = slices.Delete(slices.Clone(current), index, index+1)
	if len(current) == 0 {
		delete(emitter.listeners, name)
		emitter.names = slices.DeleteFunc(emitter.names, func(n string) bool { return n == name })
		return
	}
	emitter.listeners[name] = current
}

// Emit calls every listener of name with args and reports whether there were any.
// Listeners registered during the emission are not called until the next one.
func (emitter *Emitter) Emit(name string, args ...any) bool {
	emitter.mu.Lock()
	listeners := slices.Clone(emitter.listeners[name])
	for _, listener := range listeners {
		if listener.once {
			emitter.removeLocked(name, listener)
		}
	}
	emitter.mu.Unlock()

	for _, listener := range listeners {
		if listener.Func != nil {
			listener.Func(args...)
		}
	}

	return len(listeners) > 0
}

func (emitter *Emitter) RemoveListener(name string, listener *Listener) {
	if listener == nil {
		return
	}

	emitter.mu.Lock()
	defer emitter.mu.Unlock()

	emitter.removeLocked(name, listener)
}

func (emitter *Emitter) Off(name string, listener *Listener) {
	emitter.RemoveListener(name, listener)
}

// RemoveAllListeners removes the listeners of the named events, or of every event when no name is given.
func (emitter *Emitter) RemoveAllListeners(names ...string) {
	emitter.mu.Lock()
	defer emitter.mu.Unlock()

	if len(names) == 0 {
		emitter.listeners = nil
		emitter.names = nil
		return
	}

	for _, name := range names {
		delete(emitter.listeners, name)
		emitter.names = slices.DeleteFunc(emitter.names, func(n string) bool { return n == name })
	}
}

func (emitter *Emitter) ListenerCount(name string) int {
	emitter.mu.Lock()
	defer emitter.mu.Unlock()

	return len(emitter.listeners[name])
}

// EventNames returns the names of events with listeners, in the order they were first registered.
func (emitter *Emitter) EventNames() []string {
	emitter.mu.Lock()
	defer emitter.mu.Unlock()

	return slices.Clone(emitter.names)
}
