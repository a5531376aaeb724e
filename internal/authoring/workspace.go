// Package authoring applies editing actions to courses and records their
// transient acknowledgements.
package authoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/p-n-ai/pai-authoring/internal/catalog"
	"github.com/p-n-ai/pai-authoring/internal/course"
	"github.com/p-n-ai/pai-authoring/internal/skill"
)

const (
	defaultHighlightTTL = 2 * time.Second
	defaultErrorTTL     = 3 * time.Second
)

// ErrCourseNotFound is returned for unknown course IDs.
var ErrCourseNotFound = errors.New("course not found")

// WorkspaceConfig holds dependencies for the workspace.
type WorkspaceConfig struct {
	Store        CourseStore
	Skills       *skill.Library
	Catalog      *catalog.Catalog // modules that may be attached; nil skips the check
	Notices      NoticeBoard
	Events       EventLogger
	HighlightTTL time.Duration // how long a moved unit stays highlighted (default 2s)
	ErrorTTL     time.Duration // how long a rejection message stays visible (default 3s)
	Now          func() time.Time
}

// Workspace is the entry point for editing courses.
type Workspace struct {
	store        CourseStore
	skills       *skill.Library
	catalog      *catalog.Catalog
	notices      NoticeBoard
	events       EventLogger
	highlightTTL time.Duration
	errorTTL     time.Duration
	now          func() time.Time
}

// Preview is a course together with the information shown next to it.
type Preview struct {
	Course      course.Course
	Unreachable []course.UnreachableSkill
	Notices     []Notice
}

// NewWorkspace creates a workspace, filling unset dependencies with in-memory
// defaults.
func NewWorkspace(cfg WorkspaceConfig) *Workspace {
	w := &Workspace{
		store:        cfg.Store,
		skills:       cfg.Skills,
		catalog:      cfg.Catalog,
		notices:      cfg.Notices,
		events:       cfg.Events,
		highlightTTL: cfg.HighlightTTL,
		errorTTL:     cfg.ErrorTTL,
		now:          cfg.Now,
	}
	if w.now == nil {
		w.now = time.Now
	}
	if w.store == nil {
		w.store = NewMemoryStore()
	}
	if w.skills == nil {
		w.skills = skill.NewLibrary()
	}
	if w.notices == nil {
		w.notices = NewMemoryNotices(w.now)
	}
	if w.events == nil {
		w.events = NopEventLogger{}
	}
	if w.highlightTTL == 0 {
		w.highlightTTL = defaultHighlightTTL
	}
	if w.errorTTL == 0 {
		w.errorTTL = defaultErrorTTL
	}
	return w
}

// Courses returns all courses in the workspace.
func (w *Workspace) Courses() []course.Course {
	return w.store.ListCourses()
}

// Reorder moves a unit of a course to destination. Accepted moves replace the
// stored ordering and highlight the unit; rejected moves leave the course
// untouched and post the rejection message. Unknown units are ignored.
func (w *Workspace) Reorder(ctx context.Context, courseID string, unitID, destination int) (course.Result, error) {
	c, err := w.store.GetCourse(courseID)
	if err != nil {
		return course.Result{}, err
	}

	res, err := course.AttemptReorder(c.Units, unitID, destination)
	if err != nil {
		return course.Result{}, fmt.Errorf("reorder unit %d in %s: %w", unitID, courseID, err)
	}

	switch res.Outcome {
	case course.Accepted:
		if res.Changed() {
			if err := w.store.ReplaceUnits(courseID, res.Units); err != nil {
				return course.Result{}, fmt.Errorf("store ordering: %w", err)
			}
		}
		w.post(ctx, Notice{
			CourseID:  courseID,
			Kind:      NoticeHighlight,
			UnitID:    unitID,
			ExpiresAt: w.now().Add(w.highlightTTL),
		})
		w.logEvent(Event{
			CourseID:  courseID,
			UnitID:    unitID,
			EventType: EventReorderAccepted,
			Data:      map[string]any{"from": res.From, "to": res.To},
		})
	case course.Rejected:
		w.post(ctx, Notice{
			CourseID:  courseID,
			Kind:      NoticeError,
			UnitID:    unitID,
			Message:   res.Message(),
			ExpiresAt: w.now().Add(w.errorTTL),
		})
		w.logEvent(Event{
			CourseID:  courseID,
			UnitID:    unitID,
			EventType: EventReorderRejected,
			Data:      map[string]any{"to": res.To, "violations": len(res.Violations)},
		})
	case course.Ignored:
		w.logEvent(Event{CourseID: courseID, UnitID: unitID, EventType: EventReorderIgnored})
	}

	return res, nil
}

// Preview returns the course, the skills it cannot teach and its active
// notices.
func (w *Workspace) Preview(ctx context.Context, courseID string) (Preview, error) {
	c, err := w.store.GetCourse(courseID)
	if err != nil {
		return Preview{}, err
	}

	var h *skill.Hierarchy
	if c.SkillRepository != "" {
		h, _ = w.skills.Get(c.SkillRepository)
	}

	notices, err := w.notices.Active(ctx, courseID)
	if err != nil {
		slog.Warn("failed to read notices", "course_id", courseID, "error", err)
		notices = nil
	}

	return Preview{
		Course:      c,
		Unreachable: course.UnreachableSkills(c, h),
		Notices:     notices,
	}, nil
}

// Audit reports every ordering violation in a course's current sequence.
func (w *Workspace) Audit(courseID string) ([]course.Violation, error) {
	c, err := w.store.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	return course.CheckOrdering(c.Units), nil
}

func (w *Workspace) post(ctx context.Context, n Notice) {
	if err := w.notices.Post(ctx, n); err != nil {
		slog.Warn("failed to post notice",
			"course_id", n.CourseID,
			"kind", n.Kind,
			"error", err,
		)
	}
}

func (w *Workspace) logEvent(e Event) {
	if err := w.events.LogEvent(e); err != nil {
		slog.Warn("failed to log event", "type", e.EventType, "error", err)
	}
}
