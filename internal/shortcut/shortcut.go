// Package shortcut routes key presses from the terminal's input stream to
// actions registered by whichever views are currently on screen.
//
// A view binds its keys when it appears and unbinds them when it goes away.
// Key names are compared case-insensitively, so "Escape", "escape" and "esc"
// all name the same key.
package shortcut

import (
	"strings"
	"sync"
)

var aliases = map[string]string{
	"escape": "esc",
	"return": "enter",
	"space":  " ",
}

// Normalize folds a key name to the form Dispatch compares against.
func Normalize(key string) string {
	k := strings.ToLower(key)
	if alias, ok := aliases[k]; ok {
		return alias
	}
	return k
}

// Binder holds the set of active bindings. The zero value is ready to use.
type Binder struct {
	mu       sync.Mutex
	bindings map[*Binding]struct{}
}

// Binding is one attached key/action pair.
type Binding struct {
	binder *Binder
	key    string
	action func()
}

// Bind attaches action to key until the returned Binding is unbound.
func (b *Binder) Bind(key string, action func()) *Binding {
	binding := &Binding{binder: b}
	binding.attach(key, action)
	return binding
}

// Dispatch runs every action bound to key and reports whether any matched.
// Actions run outside the lock so they may bind or unbind.
func (b *Binder) Dispatch(key string) bool {
	k := Normalize(key)

	b.mu.Lock()
	var matched []func()
	for binding := range b.bindings {
		if binding.key == k {
			matched = append(matched, binding.action)
		}
	}
	b.mu.Unlock()

	for _, action := range matched {
		action()
	}
	return len(matched) > 0
}

// Len returns the number of attached bindings.
func (b *Binder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.bindings)
}

// Key returns the normalized key this binding listens for.
func (bd *Binding) Key() string {
	return bd.key
}

// Unbind detaches the binding. Calling it more than once is harmless.
func (bd *Binding) Unbind() {
	if bd == nil || bd.binder == nil {
		return
	}
	b := bd.binder
	b.mu.Lock()
	delete(b.bindings, bd)
	b.mu.Unlock()
}

// Rebind replaces the key and action, detaching the old pair first so the
// binding is never attached twice.
func (bd *Binding) Rebind(key string, action func()) {
	bd.Unbind()
	bd.attach(key, action)
}

func (bd *Binding) attach(key string, action func()) {
	b := bd.binder
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bindings == nil {
		b.bindings = make(map[*Binding]struct{})
	}
	bd.key = Normalize(key)
	bd.action = action
	b.bindings[bd] = struct{}{}
}
