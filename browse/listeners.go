package browse

import (
	"slices"
	"sync"
)

// listeners fans state snapshots out to subscribed callbacks in registration order
type listeners[S any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription[S]
}

type subscription[S any] struct {
	id int
	fn func(S)
}

// add registers fn and returns a func that removes it
func (l *listeners[S]) add(fn func(S)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, subscription[S]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.subs = slices.DeleteFunc(l.subs, func(s subscription[S]) bool {
				return s.id == id
			})
		})
	}
}

// notify invokes every listener with state. It must be called without the model lock held.
func (l *listeners[S]) notify(state S) {
	l.mu.Lock()
	subs := slices.Clone(l.subs)
	l.mu.Unlock()

	for _, s := range subs {
		s.fn(state)
	}
}
