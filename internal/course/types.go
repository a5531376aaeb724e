// Package course models a course as an ordered sequence of learning units and
// validates moves within that sequence against skill prerequisites.
package course

import "slices"

// DefaultLicense is applied to courses that do not name a license.
const DefaultLicense = "CC BY 4.0"

// LearningUnit is one piece of course content. It teaches exactly one skill
// and may require other skills to be taught earlier in the course.
type LearningUnit struct {
	ID                 int      `yaml:"id"`
	Title              string   `yaml:"title"`
	TaughtSkill        string   `yaml:"skill"`
	PrerequisiteSkills []string `yaml:"prerequisites"`
	Description        string   `yaml:"description"`
}

// Requires reports whether the unit lists skill as a prerequisite.
func (u LearningUnit) Requires(skill string) bool {
	return slices.Contains(u.PrerequisiteSkills, skill)
}

// Course is an authored course. The order of Units is the teaching order.
type Course struct {
	ID              string         `yaml:"id"`
	Title           string         `yaml:"title"`
	Slug            string         `yaml:"slug"`
	Description     string         `yaml:"description"`
	TargetSkill     string         `yaml:"target_skill"`
	SkillRepository string         `yaml:"skill_repository"`
	Authors         []string       `yaml:"authors"`
	License         string         `yaml:"license"`
	Units           []LearningUnit `yaml:"units"`
	ModuleIDs       []int          `yaml:"modules"`
}

// Clone returns a deep copy of the course.
func (c Course) Clone() Course {
	out := c
	out.Authors = slices.Clone(c.Authors)
	out.ModuleIDs = slices.Clone(c.ModuleIDs)
	out.Units = cloneUnits(c.Units)
	return out
}

// Unit returns the unit with the given ID.
func (c Course) Unit(id int) (LearningUnit, bool) {
	i := indexOf(c.Units, id)
	if i < 0 {
		return LearningUnit{}, false
	}
	return c.Units[i], true
}

func cloneUnits(units []LearningUnit) []LearningUnit {
	if units == nil {
		return nil
	}
	out := make([]LearningUnit, len(units))
	for i, u := range units {
		u.PrerequisiteSkills = slices.Clone(u.PrerequisiteSkills)
		out[i] = u
	}
	return out
}

func indexOf(units []LearningUnit, id int) int {
	return slices.IndexFunc(units, func(u LearningUnit) bool { return u.ID == id })
}
