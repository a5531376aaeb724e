// Package catalog provides the author directory and module list used when
// composing a course.
package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Author is a person who can be credited on a course or module.
type Author struct {
	ID         int    `yaml:"id"`
	Name       string `yaml:"name"`
	Department string `yaml:"department"`
}

// Module is a reusable content module that can be linked to a course.
type Module struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Catalog holds the selectable authors and modules.
type Catalog struct {
	Authors []Author `yaml:"authors"`
	Modules []Module `yaml:"modules"`
}

// SearchAuthors returns authors whose name contains term, ignoring case,
// leaving out names already in exclude.
func (c Catalog) SearchAuthors(term string, exclude []string) []Author {
	m := newMatcher(term)
	out := []Author{}
	for _, a := range c.Authors {
		if m.match(a.Name) && !slices.Contains(exclude, a.Name) {
			out = append(out, a)
		}
	}
	return out
}

// SearchModules returns modules whose name contains term, ignoring case,
// leaving out modules whose ID is in selected.
func (c Catalog) SearchModules(term string, selected []int) []Module {
	m := newMatcher(term)
	out := []Module{}
	for _, mod := range c.Modules {
		if m.match(mod.Name) && !slices.Contains(selected, mod.ID) {
			out = append(out, mod)
		}
	}
	return out
}

// Module returns the module with the given ID.
func (c Catalog) Module(id int) (Module, bool) {
	i := slices.IndexFunc(c.Modules, func(m Module) bool { return m.ID == id })
	if i < 0 {
		return Module{}, false
	}
	return c.Modules[i], true
}

type matcher struct {
	fold cases.Caser
	term string
}

func newMatcher(term string) matcher {
	fold := cases.Fold()
	return matcher{fold: fold, term: fold.String(strings.TrimSpace(term))}
}

func (m matcher) match(s string) bool {
	return strings.Contains(m.fold.String(s), m.term)
}
