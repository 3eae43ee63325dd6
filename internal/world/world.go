// Package world holds the entities of one match, one container per kind.
package world

import "github.com/tomz197/katchnrun/internal/object"

// World owns the players, the stars and one collection per falling kind.
// Fallers receive a monotonic ID when added; IDs are never reused within a
// world, so they stay valid as map keys after compaction shuffles indices.
type World struct {
	Screen  object.Screen
	Players []*object.Player
	Stars   []*object.Star

	fallers [object.KindCount][]*object.Faller
	nextID  uint64
}

// New creates an empty world of the given size.
func New(screen object.Screen) *World {
	return &World{Screen: screen}
}

// Context returns the update context for this world.
func (w *World) Context() object.UpdateContext {
	return object.UpdateContext{Screen: w.Screen}
}

// Add assigns the faller an ID and appends it to its kind's collection.
func (w *World) Add(f *object.Faller) {
	w.nextID++
	f.ID = w.nextID
	w.fallers[f.Kind] = append(w.fallers[f.Kind], f)
}

// Fallers returns the live collection for a kind. The slice is owned by the
// world and is only valid until the next Sweep or Compact.
func (w *World) Fallers(kind object.Kind) []*object.Faller {
	return w.fallers[kind]
}

// Count returns the number of fallers across all kinds.
func (w *World) Count() int {
	n := 0
	for _, fs := range w.fallers {
		n += len(fs)
	}
	return n
}

// Sweep calls fn on every faller of a kind in order and keeps the ones for
// which it returns false. Survivors keep their relative order.
func (w *World) Sweep(kind object.Kind, fn func(f *object.Faller) (remove bool)) int {
	fs := w.fallers[kind]
	kept := fs[:0]
	for _, f := range fs {
		if !fn(f) {
			kept = append(kept, f)
		}
	}
	clear(fs[len(kept):])
	w.fallers[kind] = kept
	return len(fs) - len(kept)
}

// Compact drops every faller marked destroyed. Returns how many were removed.
func (w *World) Compact() int {
	removed := 0
	for k := range object.KindCount {
		removed += w.Sweep(k, (*object.Faller).IsDestroyed)
	}
	return removed
}

// Reset removes every entity. IDs keep increasing across resets.
func (w *World) Reset() {
	for k := range w.fallers {
		clear(w.fallers[k])
		w.fallers[k] = w.fallers[k][:0]
	}
	w.Players = nil
	w.Stars = nil
}
