package authoring

import (
	"fmt"
	"sort"
	"sync"

	"github.com/p-n-ai/pai-authoring/internal/course"
)

// CourseStore holds the courses being edited.
type CourseStore interface {
	PutCourse(c course.Course) error
	GetCourse(id string) (course.Course, error)
	ListCourses() []course.Course
	ReplaceUnits(id string, units []course.LearningUnit) error
}

// MemoryStore is an in-memory implementation of CourseStore. Courses are
// copied on the way in and out.
type MemoryStore struct {
	courses map[string]course.Course
	mu      sync.RWMutex
}

// NewMemoryStore creates a store seeded with the given courses.
func NewMemoryStore(seed ...course.Course) *MemoryStore {
	s := &MemoryStore{courses: make(map[string]course.Course, len(seed))}
	for _, c := range seed {
		s.courses[c.ID] = c.Clone()
	}
	return s
}

func (s *MemoryStore) PutCourse(c course.Course) error {
	if c.ID == "" {
		return fmt.Errorf("course id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[c.ID] = c.Clone()
	return nil
}

func (s *MemoryStore) GetCourse(id string) (course.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	if !ok {
		return course.Course{}, fmt.Errorf("%w: %s", ErrCourseNotFound, id)
	}
	return c.Clone(), nil
}

func (s *MemoryStore) ListCourses() []course.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]course.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) ReplaceUnits(id string, units []course.LearningUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCourseNotFound, id)
	}
	c.Units = units
	s.courses[id] = c.Clone()
	return nil
}
