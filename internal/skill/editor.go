package skill

import (
	"fmt"
	"slices"
	"sort"
)

// Library holds skill hierarchies by repository key.
type Library struct {
	repos map[string]*Hierarchy
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{repos: make(map[string]*Hierarchy)}
}

// Add registers h under its key, replacing any previous hierarchy.
func (l *Library) Add(h *Hierarchy) {
	l.repos[h.Key()] = h
}

// Get returns the hierarchy stored under key.
func (l *Library) Get(key string) (*Hierarchy, bool) {
	h, ok := l.repos[key]
	return h, ok
}

// Keys returns all repository keys in sorted order.
func (l *Library) Keys() []string {
	keys := make([]string, 0, len(l.repos))
	for k := range l.repos {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Editor is the state of one skill-editing session: the active hierarchy,
// the selected skill, which nodes are expanded, and the pool of skills that
// can still be placed in the tree.
type Editor struct {
	library   *Library
	hierarchy *Hierarchy
	selected  string
	expanded  map[string]struct{}
	available []string
}

// NewEditor opens the repository key from the library. The root skill starts
// selected and expanded.
func NewEditor(library *Library, key string, available []string) (*Editor, error) {
	e := &Editor{library: library, available: slices.Clone(available)}
	if err := e.SwitchRepository(key); err != nil {
		return nil, err
	}
	return e, nil
}

// SwitchRepository makes another repository active and resets selection and
// expansion. The available pool is kept.
func (e *Editor) SwitchRepository(key string) error {
	h, ok := e.library.Get(key)
	if !ok {
		return fmt.Errorf("skill repository not found: %s", key)
	}
	e.hierarchy = h
	e.selected = h.Root()
	e.expanded = map[string]struct{}{h.Root(): {}}
	return nil
}

// Hierarchy returns the active hierarchy.
func (e *Editor) Hierarchy() *Hierarchy { return e.hierarchy }

// Available returns the skills not yet placed in the tree.
func (e *Editor) Available() []string { return slices.Clone(e.available) }

// Selected returns the currently selected skill.
func (e *Editor) Selected() (Info, bool) {
	return e.hierarchy.Find(e.selected)
}

// Select makes name the selected skill.
func (e *Editor) Select(name string) (Info, error) {
	info, ok := e.hierarchy.Find(name)
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrSkillNotFound, name)
	}
	e.selected = name
	return info, nil
}

// Toggle flips the expanded state of name and returns the new state.
func (e *Editor) Toggle(name string) bool {
	if _, ok := e.expanded[name]; ok {
		delete(e.expanded, name)
		return false
	}
	e.expanded[name] = struct{}{}
	return true
}

// IsExpanded reports whether name is expanded.
func (e *Editor) IsExpanded(name string) bool {
	_, ok := e.expanded[name]
	return ok
}

// AddFromPool moves name from the available pool into the tree under parent.
func (e *Editor) AddFromPool(parent, name string) error {
	i := slices.Index(e.available, name)
	if i < 0 {
		return fmt.Errorf("skill not available: %s", name)
	}
	if err := e.hierarchy.AddChild(parent, name); err != nil {
		return err
	}
	e.available = slices.Delete(e.available, i, i+1)
	return nil
}

// Remove deletes name and its descendants from the tree and returns them to
// the available pool. A removed selection falls back to the root.
func (e *Editor) Remove(name string) ([]string, error) {
	removed, err := e.hierarchy.Remove(name)
	if err != nil {
		return nil, err
	}
	e.release(removed)
	return removed, nil
}

// RemoveChild removes a direct child of the selected skill.
func (e *Editor) RemoveChild(child string) ([]string, error) {
	info, ok := e.Selected()
	if !ok || !slices.Contains(info.Children, child) {
		return nil, fmt.Errorf("%w: %s is not a child of %s", ErrSkillNotFound, child, e.selected)
	}
	return e.Remove(child)
}

func (e *Editor) release(removed []string) {
	for _, name := range removed {
		delete(e.expanded, name)
		if !slices.Contains(e.available, name) {
			e.available = append(e.available, name)
		}
	}
	if !e.hierarchy.Contains(e.selected) {
		e.selected = e.hierarchy.Root()
	}
}
