package authoring_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/p-n-ai/pai-authoring/internal/authoring"
	"github.com/p-n-ai/pai-authoring/internal/course"
	"github.com/p-n-ai/pai-authoring/internal/skill"
)

func readingCourse() course.Course {
	return course.Course{
		ID:              "lesen",
		Title:           "Wissenschaftliches Arbeiten",
		TargetSkill:     "Wissenschaftliches Arbeiten",
		SkillRepository: "wa",
		Authors:         []string{"Michael Ganske"},
		Units: []course.LearningUnit{
			{ID: 1, Title: "Grundlagen des Lesens", TaughtSkill: "Leseprozess"},
			{ID: 2, Title: "Zielgerichtetes Lesen", TaughtSkill: "Zielbestimmung", PrerequisiteSkills: []string{"Leseprozess"}},
			{ID: 3, Title: "Effektive Textdurchsicht", TaughtSkill: "Durchsicht", PrerequisiteSkills: []string{"Zielbestimmung"}},
			{ID: 4, Title: "Nachbereitungstechniken", TaughtSkill: "Nachbereitung", PrerequisiteSkills: []string{"Durchsicht"}},
			{ID: 5, Title: "Wissenschaftliche Recherche", TaughtSkill: "Literatursuche", PrerequisiteSkills: []string{"Leseprozess"}},
		},
	}
}

func readingLibrary(t *testing.T) *skill.Library {
	t.Helper()
	h, err := skill.NewHierarchy("wa", "Wissenschaftliches Arbeiten")
	if err != nil {
		t.Fatalf("NewHierarchy() error = %v", err)
	}
	for _, e := range [][2]string{
		{"Wissenschaftliches Arbeiten", "Lesen"},
		{"Lesen", "Leseprozess"},
		{"Leseprozess", "Zielbestimmung"},
		{"Leseprozess", "Durchsicht"},
		{"Leseprozess", "Nachbereitung"},
		{"Lesen", "Literatursuche"},
		{"Literatursuche", "Wissenschaftliche Suchmasch."},
		{"Literatursuche", "Stichwortsuche"},
	} {
		if err := h.AddChild(e[0], e[1]); err != nil {
			t.Fatalf("AddChild() error = %v", err)
		}
	}
	lib := skill.NewLibrary()
	lib.Add(h)
	return lib
}

type testWorkspace struct {
	*authoring.Workspace
	clock  *fakeClock
	events *authoring.MemoryEventLogger
}

func newTestWorkspace(t *testing.T) testWorkspace {
	t.Helper()
	clock := newClock()
	events := authoring.NewMemoryEventLogger()
	w := authoring.NewWorkspace(authoring.WorkspaceConfig{
		Store:   authoring.NewMemoryStore(readingCourse()),
		Skills:  readingLibrary(t),
		Notices: authoring.NewMemoryNotices(clock.Now),
		Events:  events,
		Now:     clock.Now,
	})
	return testWorkspace{Workspace: w, clock: clock, events: events}
}

func unitIDs(units []course.LearningUnit) []int {
	out := make([]int, len(units))
	for i, u := range units {
		out[i] = u.ID
	}
	return out
}

func TestWorkspace_ReorderAccepted(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkspace(t)

	res, err := w.Reorder(ctx, "lesen", 5, 1)
	if err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	if res.Outcome != course.Accepted {
		t.Fatalf("Outcome = %v, want accepted", res.Outcome)
	}

	p, err := w.Preview(ctx, "lesen")
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if got := unitIDs(p.Course.Units); !reflect.DeepEqual(got, []int{1, 5, 2, 3, 4}) {
		t.Errorf("stored order = %v, want [1 5 2 3 4]", got)
	}
	if len(p.Notices) != 1 || p.Notices[0].Kind != authoring.NoticeHighlight || p.Notices[0].UnitID != 5 {
		t.Errorf("Notices = %+v, want highlight on unit 5", p.Notices)
	}

	events := w.events.Events()
	if len(events) != 1 || events[0].EventType != authoring.EventReorderAccepted {
		t.Fatalf("events = %+v, want one accepted event", events)
	}
	if events[0].Data["from"] != 4 || events[0].Data["to"] != 1 {
		t.Errorf("event data = %v, want from 4 to 1", events[0].Data)
	}

	w.clock.Advance(2 * time.Second)
	p, _ = w.Preview(ctx, "lesen")
	if len(p.Notices) != 0 {
		t.Errorf("Notices after highlight ttl = %+v, want none", p.Notices)
	}
}

func TestWorkspace_ReorderRejected(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkspace(t)

	res, err := w.Reorder(ctx, "lesen", 2, 0)
	if err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	if res.Outcome != course.Rejected {
		t.Fatalf("Outcome = %v, want rejected", res.Outcome)
	}

	p, _ := w.Preview(ctx, "lesen")
	if got := unitIDs(p.Course.Units); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("stored order = %v, want unchanged", got)
	}
	if len(p.Notices) != 1 || p.Notices[0].Kind != authoring.NoticeError {
		t.Fatalf("Notices = %+v, want one error notice", p.Notices)
	}
	if !strings.Contains(p.Notices[0].Message, "Leseprozess") {
		t.Errorf("notice message = %q, want it to name Leseprozess", p.Notices[0].Message)
	}

	// The error stays visible longer than a highlight.
	w.clock.Advance(2 * time.Second)
	if p, _ = w.Preview(ctx, "lesen"); len(p.Notices) != 1 {
		t.Errorf("error notice gone after 2s: %+v", p.Notices)
	}
	w.clock.Advance(time.Second)
	if p, _ = w.Preview(ctx, "lesen"); len(p.Notices) != 0 {
		t.Errorf("error notice still visible after 3s: %+v", p.Notices)
	}

	events := w.events.Events()
	if len(events) != 1 || events[0].EventType != authoring.EventReorderRejected {
		t.Errorf("events = %+v, want one rejected event", events)
	}
}

func TestWorkspace_ReorderIgnored(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkspace(t)

	res, err := w.Reorder(ctx, "lesen", 42, 0)
	if err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	if res.Outcome != course.Ignored {
		t.Errorf("Outcome = %v, want ignored", res.Outcome)
	}
	p, _ := w.Preview(ctx, "lesen")
	if len(p.Notices) != 0 {
		t.Errorf("Notices = %+v, want none for ignored move", p.Notices)
	}
	if events := w.events.Events(); len(events) != 1 || events[0].EventType != authoring.EventReorderIgnored {
		t.Errorf("events = %+v, want one ignored event", events)
	}
}

func TestWorkspace_ReorderErrors(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkspace(t)

	if _, err := w.Reorder(ctx, "missing", 1, 0); !errors.Is(err, authoring.ErrCourseNotFound) {
		t.Errorf("Reorder(missing course) error = %v, want ErrCourseNotFound", err)
	}
	if _, err := w.Reorder(ctx, "lesen", 1, 5); !errors.Is(err, course.ErrDestinationOutOfRange) {
		t.Errorf("Reorder(out of range) error = %v, want ErrDestinationOutOfRange", err)
	}
	if events := w.events.Events(); len(events) != 0 {
		t.Errorf("events = %+v, want none for failed calls", events)
	}
}

func TestWorkspace_SequentialMoves(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkspace(t)

	// After moving literature search forward, reading basics still cannot
	// move behind it.
	if res, _ := w.Reorder(ctx, "lesen", 5, 1); res.Outcome != course.Accepted {
		t.Fatalf("first move outcome = %v", res.Outcome)
	}
	res, err := w.Reorder(ctx, "lesen", 1, 1)
	if err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	if res.Outcome != course.Rejected || !errors.Is(res.Err(), course.ErrBrokenDependency) {
		t.Errorf("second move = %v (%v), want broken dependency", res.Outcome, res.Err())
	}

	p, _ := w.Preview(ctx, "lesen")
	if len(p.Notices) != 2 {
		t.Errorf("Notices = %+v, want highlight and error", p.Notices)
	}
}

func TestWorkspace_PreviewUnreachable(t *testing.T) {
	w := newTestWorkspace(t)

	p, err := w.Preview(context.Background(), "lesen")
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	var names []string
	for _, s := range p.Unreachable {
		names = append(names, s.Name)
	}
	if want := []string{"Wissenschaftliche Suchmasch.", "Stichwortsuche"}; !reflect.DeepEqual(names, want) {
		t.Errorf("Unreachable = %v, want %v", names, want)
	}

	if _, err := w.Preview(context.Background(), "missing"); !errors.Is(err, authoring.ErrCourseNotFound) {
		t.Errorf("Preview(missing) error = %v", err)
	}
}

func TestWorkspace_Audit(t *testing.T) {
	store := authoring.NewMemoryStore(readingCourse())
	c := readingCourse()
	c.ID = "broken"
	c.Units[0], c.Units[1] = c.Units[1], c.Units[0]
	if err := store.PutCourse(c); err != nil {
		t.Fatalf("PutCourse() error = %v", err)
	}
	w := authoring.NewWorkspace(authoring.WorkspaceConfig{Store: store})

	if v, err := w.Audit("lesen"); err != nil || len(v) != 0 {
		t.Errorf("Audit(lesen) = %v, %v, want no violations", v, err)
	}
	v, err := w.Audit("broken")
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if len(v) != 1 || v[0].UnitID != 2 || v[0].Skill != "Leseprozess" {
		t.Errorf("Audit(broken) = %+v, want unit 2 missing Leseprozess", v)
	}

	if got := w.Courses(); len(got) != 2 || got[0].ID != "broken" {
		t.Errorf("Courses() = %d courses, want broken and lesen", len(got))
	}
}

func TestNewWorkspace_Defaults(t *testing.T) {
	w := authoring.NewWorkspace(authoring.WorkspaceConfig{})
	if got := w.Courses(); len(got) != 0 {
		t.Errorf("Courses() = %v, want empty", got)
	}
	if _, err := w.Reorder(context.Background(), "x", 1, 0); !errors.Is(err, authoring.ErrCourseNotFound) {
		t.Errorf("Reorder() error = %v, want ErrCourseNotFound", err)
	}
}
