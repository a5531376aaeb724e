package skill

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newTestHierarchy(t *testing.T) *Hierarchy {
	t.Helper()
	h, err := NewHierarchy("wa", "Wissenschaftliches Arbeiten")
	if err != nil {
		t.Fatalf("NewHierarchy() error = %v", err)
	}
	for _, e := range [][2]string{
		{"Wissenschaftliches Arbeiten", "Lesen"},
		{"Lesen", "Leseprozess"},
		{"Leseprozess", "Zielbestimmung"},
		{"Leseprozess", "Durchsicht"},
		{"Lesen", "Literatursuche"},
		{"Literatursuche", "Stichwortsuche"},
		{"Wissenschaftliches Arbeiten", "Schreiben"},
	} {
		if err := h.AddChild(e[0], e[1]); err != nil {
			t.Fatalf("AddChild(%q, %q) error = %v", e[0], e[1], err)
		}
	}
	return h
}

func TestNewHierarchy(t *testing.T) {
	h, err := NewHierarchy("wa", "  Root  ")
	if err != nil {
		t.Fatalf("NewHierarchy() error = %v", err)
	}
	if h.Root() != "Root" || h.Key() != "wa" || h.Len() != 1 {
		t.Errorf("got root=%q key=%q len=%d", h.Root(), h.Key(), h.Len())
	}
	if !h.IsProtected("Root") {
		t.Error("root should be protected")
	}

	if _, err := NewHierarchy("wa", " "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("NewHierarchy(blank) error = %v, want ErrEmptyName", err)
	}
}

func TestHierarchy_Find(t *testing.T) {
	h := newTestHierarchy(t)

	tests := []struct {
		name     string
		parents  []string
		children []string
	}{
		{"Wissenschaftliches Arbeiten", []string{}, []string{"Lesen", "Schreiben"}},
		{"Leseprozess", []string{"Lesen"}, []string{"Zielbestimmung", "Durchsicht"}},
		{"Stichwortsuche", []string{"Literatursuche"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := h.Find(tt.name)
			if !ok {
				t.Fatalf("Find(%q) not found", tt.name)
			}
			if !reflect.DeepEqual(info.Parents, tt.parents) {
				t.Errorf("Parents = %v, want %v", info.Parents, tt.parents)
			}
			if !reflect.DeepEqual(info.Children, tt.children) {
				t.Errorf("Children = %v, want %v", info.Children, tt.children)
			}
		})
	}

	if _, ok := h.Find("Mathematik"); ok {
		t.Error("Find(unknown) should report not found")
	}
}

func TestHierarchy_AddChildErrors(t *testing.T) {
	h := newTestHierarchy(t)

	tests := []struct {
		parent, name string
		want         error
	}{
		{"Lesen", "Durchsicht", ErrDuplicateSkill},
		{"Mathematik", "Algebra", ErrSkillNotFound},
		{"Lesen", "   ", ErrEmptyName},
	}
	for _, tt := range tests {
		if err := h.AddChild(tt.parent, tt.name); !errors.Is(err, tt.want) {
			t.Errorf("AddChild(%q, %q) error = %v, want %v", tt.parent, tt.name, err, tt.want)
		}
	}
	if h.Len() != 8 {
		t.Errorf("Len() = %d after failed adds, want 8", h.Len())
	}
}

func TestHierarchy_Path(t *testing.T) {
	h := newTestHierarchy(t)

	got, err := h.Path("Durchsicht")
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	want := []string{"Wissenschaftliches Arbeiten", "Lesen", "Leseprozess", "Durchsicht"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Path() = %v, want %v", got, want)
	}

	if _, err := h.Path("Mathematik"); !errors.Is(err, ErrSkillNotFound) {
		t.Errorf("Path(unknown) error = %v, want ErrSkillNotFound", err)
	}
}

func TestHierarchy_Remove(t *testing.T) {
	h := newTestHierarchy(t)

	removed, err := h.Remove("Lesen")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	want := []string{"Lesen", "Leseprozess", "Zielbestimmung", "Durchsicht", "Literatursuche", "Stichwortsuche"}
	if !reflect.DeepEqual(removed, want) {
		t.Errorf("Remove() = %v, want %v", removed, want)
	}
	for _, name := range want {
		if h.Contains(name) {
			t.Errorf("%q still present after removal", name)
		}
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	info, _ := h.Find(h.Root())
	if !reflect.DeepEqual(info.Children, []string{"Schreiben"}) {
		t.Errorf("root children = %v, want [Schreiben]", info.Children)
	}

	// Names become free for reuse.
	if err := h.AddChild("Schreiben", "Lesen"); err != nil {
		t.Errorf("AddChild() after removal error = %v", err)
	}
}

func TestHierarchy_RemoveErrors(t *testing.T) {
	h := newTestHierarchy(t)
	if err := h.Protect("Lesen"); err != nil {
		t.Fatalf("Protect() error = %v", err)
	}

	if _, err := h.Remove(h.Root()); !errors.Is(err, ErrProtectedSkill) {
		t.Errorf("Remove(root) error = %v, want ErrProtectedSkill", err)
	}
	if _, err := h.Remove("Lesen"); !errors.Is(err, ErrProtectedSkill) {
		t.Errorf("Remove(protected) error = %v, want ErrProtectedSkill", err)
	}
	if _, err := h.Remove("Mathematik"); !errors.Is(err, ErrSkillNotFound) {
		t.Errorf("Remove(unknown) error = %v, want ErrSkillNotFound", err)
	}
	if err := h.Protect("Mathematik"); !errors.Is(err, ErrSkillNotFound) {
		t.Errorf("Protect(unknown) error = %v, want ErrSkillNotFound", err)
	}

	// Children of a protected skill stay removable.
	if _, err := h.Remove("Leseprozess"); err != nil {
		t.Errorf("Remove(child of protected) error = %v", err)
	}
}

func TestHierarchy_DescendantsAndLeaves(t *testing.T) {
	h := newTestHierarchy(t)

	desc, err := h.Descendants("Lesen")
	if err != nil {
		t.Fatalf("Descendants() error = %v", err)
	}
	want := []string{"Leseprozess", "Zielbestimmung", "Durchsicht", "Literatursuche", "Stichwortsuche"}
	if !reflect.DeepEqual(desc, want) {
		t.Errorf("Descendants() = %v, want %v", desc, want)
	}

	leaves, err := h.Leaves(h.Root())
	if err != nil {
		t.Fatalf("Leaves() error = %v", err)
	}
	want = []string{"Zielbestimmung", "Durchsicht", "Stichwortsuche", "Schreiben"}
	if !reflect.DeepEqual(leaves, want) {
		t.Errorf("Leaves() = %v, want %v", leaves, want)
	}

	leaves, _ = h.Leaves("Durchsicht")
	if !reflect.DeepEqual(leaves, []string{"Durchsicht"}) {
		t.Errorf("Leaves(leaf) = %v, want itself", leaves)
	}
	if _, err := h.Leaves("Mathematik"); !errors.Is(err, ErrSkillNotFound) {
		t.Errorf("Leaves(unknown) error = %v", err)
	}
}

func TestHierarchy_Walk(t *testing.T) {
	h := newTestHierarchy(t)

	var lines []string
	h.Walk(func(name string, depth int) bool {
		lines = append(lines, strings.Repeat(".", depth)+name)
		return name != "Literatursuche"
	})
	want := []string{
		"Wissenschaftliches Arbeiten",
		".Lesen",
		"..Leseprozess",
		"...Zielbestimmung",
		"...Durchsicht",
		"..Literatursuche",
		".Schreiben",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Walk() visited\n%s\nwant\n%s", strings.Join(lines, "\n"), strings.Join(want, "\n"))
	}
}
