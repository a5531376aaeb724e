package course

import (
	"github.com/p-n-ai/pai-authoring/internal/skill"
)

// UnreachableReason explains why a skill cannot be acquired through a course.
type UnreachableReason string

const (
	ReasonNoUnit               UnreachableReason = "no learning unit assigned"
	ReasonUntaughtPrerequisite UnreachableReason = "required as prerequisite but taught by no unit"
)

// UnreachableSkill is a skill the course cannot teach.
type UnreachableSkill struct {
	Name   string
	Reason UnreachableReason
}

// UnreachableSkills lists the leaf skills under the course's target skill that
// no unit teaches, followed by prerequisites that no unit in the course
// teaches. h may be nil, in which case only prerequisites are checked.
func UnreachableSkills(c Course, h *skill.Hierarchy) []UnreachableSkill {
	taught := make(map[string]struct{}, len(c.Units))
	for _, u := range c.Units {
		taught[u.TaughtSkill] = struct{}{}
	}

	var out []UnreachableSkill
	seen := make(map[string]struct{})
	add := func(name string, reason UnreachableReason) {
		if _, ok := taught[name]; ok {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, UnreachableSkill{Name: name, Reason: reason})
	}

	if h != nil && c.TargetSkill != "" {
		if leaves, err := h.Leaves(c.TargetSkill); err == nil {
			for _, name := range leaves {
				if name != c.TargetSkill {
					add(name, ReasonNoUnit)
				}
			}
		}
	}
	for _, u := range c.Units {
		for _, p := range u.PrerequisiteSkills {
			add(p, ReasonUntaughtPrerequisite)
		}
	}
	return out
}
