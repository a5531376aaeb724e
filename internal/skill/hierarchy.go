// Package skill holds skill hierarchies: named competencies arranged as a tree
// under a single root skill.
package skill

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrSkillNotFound  = errors.New("skill not found")
	ErrDuplicateSkill = errors.New("skill already exists")
	ErrProtectedSkill = errors.New("skill cannot be removed")
	ErrEmptyName      = errors.New("skill name is empty")
)

// NodeID addresses a node in a Hierarchy. IDs are never reused.
type NodeID int

const noParent NodeID = -1

type node struct {
	name      string
	parent    NodeID
	children  []NodeID
	protected bool
}

// Info describes a skill and its immediate neighbours.
type Info struct {
	Name     string
	Parents  []string
	Children []string
}

// Hierarchy is a tree of uniquely named skills stored as an arena of nodes.
// It is not safe for concurrent use.
type Hierarchy struct {
	key   string
	nodes []node
	index map[string]NodeID
}

// NewHierarchy creates a hierarchy containing only the root skill. The root is
// always protected.
func NewHierarchy(key, rootName string) (*Hierarchy, error) {
	rootName = strings.TrimSpace(rootName)
	if rootName == "" {
		return nil, ErrEmptyName
	}
	return &Hierarchy{
		key:   key,
		nodes: []node{{name: rootName, parent: noParent, protected: true}},
		index: map[string]NodeID{rootName: 0},
	}, nil
}

// Key returns the repository key the hierarchy was created with.
func (h *Hierarchy) Key() string { return h.key }

// Root returns the name of the root skill.
func (h *Hierarchy) Root() string { return h.nodes[0].name }

// Len returns the number of skills, root included.
func (h *Hierarchy) Len() int { return len(h.index) }

// Contains reports whether a skill with the given name exists.
func (h *Hierarchy) Contains(name string) bool {
	_, ok := h.index[name]
	return ok
}

// Find returns the skill's name, parent and children.
func (h *Hierarchy) Find(name string) (Info, bool) {
	id, ok := h.index[name]
	if !ok {
		return Info{}, false
	}
	n := h.nodes[id]
	info := Info{Name: n.name, Parents: []string{}, Children: h.names(n.children)}
	if n.parent != noParent {
		info.Parents = append(info.Parents, h.nodes[n.parent].name)
	}
	return info, true
}

// Path returns the names from the root down to name, inclusive.
func (h *Hierarchy) Path(name string) ([]string, error) {
	id, ok := h.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSkillNotFound, name)
	}
	var path []string
	for ; id != noParent; id = h.nodes[id].parent {
		path = append(path, h.nodes[id].name)
	}
	slices.Reverse(path)
	return path, nil
}

// AddChild appends a new skill under parent.
func (h *Hierarchy) AddChild(parent, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	pid, ok := h.index[parent]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSkillNotFound, parent)
	}
	if _, exists := h.index[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSkill, name)
	}

	id := NodeID(len(h.nodes))
	h.nodes = append(h.nodes, node{name: name, parent: pid})
	h.nodes[pid].children = append(h.nodes[pid].children, id)
	h.index[name] = id
	return nil
}

// Remove deletes the skill and all of its descendants and returns their names
// in pre-order.
func (h *Hierarchy) Remove(name string) ([]string, error) {
	id, ok := h.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSkillNotFound, name)
	}
	if h.nodes[id].protected {
		return nil, fmt.Errorf("%w: %s", ErrProtectedSkill, name)
	}

	subtree := h.subtree(id)
	parent := &h.nodes[h.nodes[id].parent]
	parent.children = slices.DeleteFunc(parent.children, func(c NodeID) bool { return c == id })

	removed := make([]string, 0, len(subtree))
	for _, sid := range subtree {
		n := &h.nodes[sid]
		removed = append(removed, n.name)
		delete(h.index, n.name)
		n.children = nil
	}
	return removed, nil
}

// Protect marks skills as non-removable. Unknown names are reported.
func (h *Hierarchy) Protect(names ...string) error {
	for _, name := range names {
		id, ok := h.index[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrSkillNotFound, name)
		}
		h.nodes[id].protected = true
	}
	return nil
}

// IsProtected reports whether name exists and cannot be removed.
func (h *Hierarchy) IsProtected(name string) bool {
	id, ok := h.index[name]
	return ok && h.nodes[id].protected
}

// Descendants returns every skill below name in pre-order.
func (h *Hierarchy) Descendants(name string) ([]string, error) {
	id, ok := h.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSkillNotFound, name)
	}
	return h.names(h.subtree(id)[1:]), nil
}

// Leaves returns the skills without children in the subtree rooted at name,
// in pre-order. A leaf skill is its own only leaf.
func (h *Hierarchy) Leaves(name string) ([]string, error) {
	id, ok := h.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSkillNotFound, name)
	}
	var leaves []string
	for _, sid := range h.subtree(id) {
		if len(h.nodes[sid].children) == 0 {
			leaves = append(leaves, h.nodes[sid].name)
		}
	}
	return leaves, nil
}

// Walk visits every skill in pre-order with its depth below the root.
// Returning false from fn skips the skill's children.
func (h *Hierarchy) Walk(fn func(name string, depth int) bool) {
	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{0, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := h.nodes[f.id]
		if !fn(n.name, f.depth) {
			continue
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n.children[i], f.depth + 1})
		}
	}
}

// subtree returns id and its descendants in pre-order.
func (h *Hierarchy) subtree(id NodeID) []NodeID {
	var out []NodeID
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		children := h.nodes[cur].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}

func (h *Hierarchy) names(ids []NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, h.nodes[id].name)
	}
	return out
}
