// Package curriculum loads course, skill repository and catalog seed files.
package curriculum

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/p-n-ai/pai-authoring/internal/catalog"
	"github.com/p-n-ai/pai-authoring/internal/course"
	"github.com/p-n-ai/pai-authoring/internal/skill"
)

// Loader loads and caches authoring content from the filesystem.
type Loader struct {
	rootDir   string
	courses   map[string]course.Course
	library   *skill.Library
	available map[string][]string
	catalog   catalog.Catalog
	mu        sync.RWMutex

	courseSchema  *gojsonschema.Schema
	skillsSchema  *gojsonschema.Schema
	catalogSchema *gojsonschema.Schema
}

// NewLoader creates a new loader and loads all content under rootDir.
func NewLoader(rootDir string) (*Loader, error) {
	l := &Loader{
		rootDir:   rootDir,
		courses:   make(map[string]course.Course),
		library:   skill.NewLibrary(),
		available: make(map[string][]string),
	}

	var err error
	if l.courseSchema, err = compileSchema(courseSchema); err != nil {
		return nil, fmt.Errorf("compiling course schema: %w", err)
	}
	if l.skillsSchema, err = compileSchema(skillsSchema); err != nil {
		return nil, fmt.Errorf("compiling skills schema: %w", err)
	}
	if l.catalogSchema, err = compileSchema(catalogSchema); err != nil {
		return nil, fmt.Errorf("compiling catalog schema: %w", err)
	}

	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}

	slog.Info("curriculum loaded",
		"courses", len(l.courses),
		"skill_repositories", len(l.library.Keys()),
		"authors", len(l.catalog.Authors),
		"modules", len(l.catalog.Modules),
	)
	return l, nil
}

// Course returns a copy of the course with the given ID.
func (l *Loader) Course(id string) (course.Course, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.courses[id]
	if !ok {
		return course.Course{}, false
	}
	return c.Clone(), true
}

// AllCourses returns copies of all loaded courses sorted by ID.
func (l *Loader) AllCourses() []course.Course {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]course.Course, 0, len(l.courses))
	for _, c := range l.courses {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Library returns the loaded skill repositories.
func (l *Loader) Library() *skill.Library {
	return l.library
}

// AvailableSkills returns the unplaced skills declared for a repository.
func (l *Loader) AvailableSkills(key string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.available[key])
}

// Catalog returns the merged author and module catalog.
func (l *Loader) Catalog() catalog.Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return catalog.Catalog{
		Authors: slices.Clone(l.catalog.Authors),
		Modules: slices.Clone(l.catalog.Modules),
	}
}

func (l *Loader) loadAll() error {
	return filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		switch {
		case hasYAMLSuffix(base, ".course"):
			return l.loadCourse(path)
		case hasYAMLSuffix(base, ".skills"):
			return l.loadSkills(path)
		case base == "catalog.yaml" || base == "catalog.yml":
			return l.loadCatalog(path)
		}
		return nil
	})
}

func (l *Loader) loadCourse(path string) error {
	data, ok, err := l.readValid(path, l.courseSchema)
	if err != nil || !ok {
		return err
	}

	var c course.Course
	if err := yaml.Unmarshal(data, &c); err != nil {
		slog.Warn("skipping invalid course YAML", "path", path, "error", err)
		return nil
	}
	if id, dup := duplicateUnitID(c.Units); dup {
		slog.Warn("skipping course with duplicate unit id", "path", path, "course_id", c.ID, "unit_id", id)
		return nil
	}
	if c.Slug == "" {
		c.Slug = course.Slugify(c.Title)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.courses[c.ID]; exists {
		slog.Warn("skipping course with duplicate id", "path", path, "course_id", c.ID)
		return nil
	}
	l.courses[c.ID] = c
	return nil
}

func duplicateUnitID(units []course.LearningUnit) (int, bool) {
	seen := make(map[int]struct{}, len(units))
	for _, u := range units {
		if _, ok := seen[u.ID]; ok {
			return u.ID, true
		}
		seen[u.ID] = struct{}{}
	}
	return 0, false
}

func (l *Loader) loadSkills(path string) error {
	data, ok, err := l.readValid(path, l.skillsSchema)
	if err != nil || !ok {
		return err
	}

	var doc skillsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		slog.Warn("skipping invalid skills YAML", "path", path, "error", err)
		return nil
	}
	h, err := buildHierarchy(doc)
	if err != nil {
		slog.Warn("skipping invalid skill repository", "path", path, "error", err)
		return nil
	}

	l.mu.Lock()
	l.library.Add(h)
	l.available[doc.Key] = doc.Available
	l.mu.Unlock()
	return nil
}

func (l *Loader) loadCatalog(path string) error {
	data, ok, err := l.readValid(path, l.catalogSchema)
	if err != nil || !ok {
		return err
	}

	var c catalog.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		slog.Warn("skipping invalid catalog YAML", "path", path, "error", err)
		return nil
	}

	l.mu.Lock()
	l.catalog.Authors = append(l.catalog.Authors, c.Authors...)
	l.catalog.Modules = append(l.catalog.Modules, c.Modules...)
	l.mu.Unlock()
	return nil
}

// readValid reads path and checks it against schema. Documents that cannot be
// parsed or do not match the schema are logged and reported as not ok.
func (l *Loader) readValid(path string, schema *gojsonschema.Schema) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		slog.Warn("skipping unparsable YAML", "path", path, "error", err)
		return nil, false, nil
	}
	if doc == nil {
		return nil, false, nil
	}

	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		slog.Warn("skipping document that failed schema validation", "path", path, "error", err)
		return nil, false, nil
	}
	if !res.Valid() {
		problems := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			problems = append(problems, e.String())
		}
		slog.Warn("skipping document that does not match schema",
			"path", path,
			"errors", strings.Join(problems, "; "),
		)
		return nil, false, nil
	}
	return data, true, nil
}

func buildHierarchy(doc skillsDocument) (*skill.Hierarchy, error) {
	h, err := skill.NewHierarchy(doc.Key, doc.Root.Name)
	if err != nil {
		return nil, err
	}
	root := doc.Root
	root.Name = h.Root()
	if err := addChildren(h, root); err != nil {
		return nil, err
	}
	return h, nil
}

func addChildren(h *skill.Hierarchy, parent skillNode) error {
	for _, child := range parent.Children {
		child.Name = strings.TrimSpace(child.Name)
		if err := h.AddChild(parent.Name, child.Name); err != nil {
			return err
		}
		if child.Protected {
			if err := h.Protect(child.Name); err != nil {
				return err
			}
		}
		if err := addChildren(h, child); err != nil {
			return err
		}
	}
	return nil
}

func compileSchema(src string) (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
}

func hasYAMLSuffix(name, kind string) bool {
	return strings.HasSuffix(name, kind+".yaml") || strings.HasSuffix(name, kind+".yml")
}
