package authoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/p-n-ai/pai-authoring/internal/course"
)

// ErrUnknownModule is returned when attaching a module the catalog does not list.
var ErrUnknownModule = errors.New("module not found")

// CourseEdit lists changes to a course's metadata. Empty fields are left alone.
type CourseEdit struct {
	Title         string
	Slug          string
	Description   string
	License       string
	AddAuthors    []string
	RemoveAuthors []string
	AttachModules []int
	DetachModules []int
}

// EditResult is the edited course together with requested changes that had no
// effect, such as adding an author who is already listed.
type EditResult struct {
	Course  course.Course
	Skipped []string
}

// EditCourse applies edit to a course and stores the result. A hand-set slug
// is applied before the title, so it survives the title change. Nothing is
// stored when an error is returned.
func (w *Workspace) EditCourse(courseID string, edit CourseEdit) (EditResult, error) {
	c, err := w.store.GetCourse(courseID)
	if err != nil {
		return EditResult{}, err
	}
	if w.catalog != nil {
		for _, id := range edit.AttachModules {
			if _, ok := w.catalog.Module(id); !ok {
				return EditResult{}, fmt.Errorf("%w: %d", ErrUnknownModule, id)
			}
		}
	}

	var skipped []string
	if edit.Slug != "" {
		slug := course.Slugify(edit.Slug)
		if slug == "" {
			return EditResult{}, fmt.Errorf("invalid slug %q", edit.Slug)
		}
		c.Slug = slug
	}
	if title := strings.TrimSpace(edit.Title); title != "" {
		c.SetTitle(title)
	}
	if edit.Description != "" {
		c.Description = edit.Description
	}
	if edit.License != "" {
		c.License = edit.License
	}
	for _, name := range edit.RemoveAuthors {
		if !c.RemoveAuthor(name) {
			skipped = append(skipped, "author not listed: "+name)
		}
	}
	for _, name := range edit.AddAuthors {
		if !c.AddAuthor(name) {
			skipped = append(skipped, "author already listed or blank: "+name)
		}
	}
	for _, id := range edit.DetachModules {
		if !c.DetachModule(id) {
			skipped = append(skipped, fmt.Sprintf("module not attached: %d", id))
		}
	}
	for _, id := range edit.AttachModules {
		if !c.AttachModule(id) {
			skipped = append(skipped, fmt.Sprintf("module already attached: %d", id))
		}
	}

	if err := w.store.PutCourse(c); err != nil {
		return EditResult{}, fmt.Errorf("store course: %w", err)
	}
	w.logEvent(Event{
		CourseID:  courseID,
		EventType: EventCourseEdited,
		Data:      map[string]any{"slug": c.Slug, "skipped": len(skipped)},
	})
	return EditResult{Course: c, Skipped: skipped}, nil
}
