package course_test

import (
	"reflect"
	"testing"

	"github.com/p-n-ai/pai-authoring/internal/course"
	"github.com/p-n-ai/pai-authoring/internal/skill"
)

func readingHierarchy(t *testing.T) *skill.Hierarchy {
	t.Helper()
	h, err := skill.NewHierarchy("wissenschaftliches-arbeiten", "Wissenschaftliches Arbeiten")
	if err != nil {
		t.Fatalf("NewHierarchy() error = %v", err)
	}
	edges := [][2]string{
		{"Wissenschaftliches Arbeiten", "Lesen"},
		{"Lesen", "Leseprozess"},
		{"Leseprozess", "Zielbestimmung"},
		{"Leseprozess", "Durchsicht"},
		{"Leseprozess", "Nachbereitung"},
		{"Lesen", "Literatursuche"},
		{"Literatursuche", "Wissenschaftliche Suchmasch."},
		{"Literatursuche", "Stichwortsuche"},
	}
	for _, e := range edges {
		if err := h.AddChild(e[0], e[1]); err != nil {
			t.Fatalf("AddChild(%q, %q) error = %v", e[0], e[1], err)
		}
	}
	return h
}

func TestUnreachableSkills(t *testing.T) {
	c := course.Course{TargetSkill: "Wissenschaftliches Arbeiten", Units: readingUnits()}

	got := course.UnreachableSkills(c, readingHierarchy(t))
	want := []course.UnreachableSkill{
		{Name: "Wissenschaftliche Suchmasch.", Reason: course.ReasonNoUnit},
		{Name: "Stichwortsuche", Reason: course.ReasonNoUnit},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnreachableSkills() = %v, want %v", got, want)
	}
}

func TestUnreachableSkills_UntaughtPrerequisite(t *testing.T) {
	units := readingUnits()
	units = append(units[:0:0], units[1:]...) // drop reading basics

	got := course.UnreachableSkills(course.Course{Units: units}, nil)
	want := []course.UnreachableSkill{
		{Name: "Leseprozess", Reason: course.ReasonUntaughtPrerequisite},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnreachableSkills() = %v, want %v", got, want)
	}
}

func TestUnreachableSkills_LeafTargetAndUnknownTarget(t *testing.T) {
	h := readingHierarchy(t)

	taught := course.Course{TargetSkill: "Durchsicht", Units: readingUnits()}
	if got := course.UnreachableSkills(taught, h); len(got) != 0 {
		t.Errorf("UnreachableSkills(leaf target) = %v, want none", got)
	}

	unknown := course.Course{TargetSkill: "Mathematik", Units: readingUnits()}
	if got := course.UnreachableSkills(unknown, h); len(got) != 0 {
		t.Errorf("UnreachableSkills(unknown target) = %v, want none", got)
	}

	empty := course.Course{TargetSkill: "Literatursuche"}
	got := course.UnreachableSkills(empty, h)
	if len(got) != 2 || got[0].Name != "Wissenschaftliche Suchmasch." {
		t.Errorf("UnreachableSkills(no units) = %v, want both search leaves", got)
	}
}
