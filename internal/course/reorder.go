package course

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrDestinationOutOfRange is returned when a destination index is not a
	// valid position in the sequence.
	ErrDestinationOutOfRange = errors.New("destination index out of range")
	// ErrMissingPrerequisite matches rejections where a prerequisite of the
	// moved unit would not be taught before it.
	ErrMissingPrerequisite = errors.New("missing prerequisite")
	// ErrBrokenDependency matches rejections where a unit depending on the
	// moved unit would end up before it.
	ErrBrokenDependency = errors.New("broken dependency")
)

// Outcome is the result category of a reorder attempt.
type Outcome int

const (
	Accepted Outcome = iota
	Rejected
	// Ignored means the moved unit was not found; nothing happened.
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Ignored:
		return "ignored"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ViolationKind names the ordering rule a move would break.
type ViolationKind int

const (
	MissingPrerequisite ViolationKind = iota
	BrokenDependency
)

func (k ViolationKind) String() string {
	switch k {
	case MissingPrerequisite:
		return "missing_prerequisite"
	case BrokenDependency:
		return "broken_dependency"
	default:
		return fmt.Sprintf("violation(%d)", int(k))
	}
}

func (k ViolationKind) sentinel() error {
	if k == MissingPrerequisite {
		return ErrMissingPrerequisite
	}
	return ErrBrokenDependency
}

// Violation is a single broken ordering constraint.
//
// For MissingPrerequisite, Skill is the prerequisite that is not yet taught and
// UnitID is the moved unit. For BrokenDependency, Skill is the moved unit's
// taught skill and UnitID/UnitTitle identify the dependent unit.
type Violation struct {
	Kind      ViolationKind
	Skill     string
	UnitID    int
	UnitTitle string
}

// ReorderError describes why a move was rejected.
type ReorderError struct {
	Violations []Violation
}

func (e *ReorderError) Error() string {
	return describe(e.Violations)
}

// Is matches ErrMissingPrerequisite and ErrBrokenDependency by violation kind.
func (e *ReorderError) Is(target error) bool {
	for _, v := range e.Violations {
		if v.Kind.sentinel() == target {
			return true
		}
	}
	return false
}

// Result is the outcome of AttemptReorder. Units always holds a sequence the
// caller may store: the new ordering when accepted, an unchanged copy otherwise.
type Result struct {
	Outcome    Outcome
	Units      []LearningUnit
	MovedID    int
	From       int
	To         int
	Violations []Violation
}

// Changed reports whether the accepted ordering differs from the input.
func (r Result) Changed() bool {
	return r.Outcome == Accepted && r.From != r.To
}

// Err returns a *ReorderError for rejected results and nil otherwise.
func (r Result) Err() error {
	if r.Outcome != Rejected {
		return nil
	}
	return &ReorderError{Violations: r.Violations}
}

// Message returns the human-readable rejection description, or "" when the
// move was not rejected.
func (r Result) Message() string {
	if r.Outcome != Rejected {
		return ""
	}
	return describe(r.Violations)
}

// AttemptReorder validates moving the unit movedID so that it ends up at index
// destination, and returns the resulting ordering when the move is allowed.
//
// destination is the final index of the moved unit, i.e. it is counted in the
// sequence with the moved unit removed. A move to the unit's own position is
// validated like any other move. An unknown movedID yields an Ignored result.
// The input slice is never modified.
func AttemptReorder(units []LearningUnit, movedID, destination int) (Result, error) {
	from := indexOf(units, movedID)
	if from < 0 {
		return Result{Outcome: Ignored, Units: cloneUnits(units), MovedID: movedID, From: -1, To: -1}, nil
	}
	if destination < 0 || destination >= len(units) {
		return Result{}, fmt.Errorf("%w: %d not in [0, %d)", ErrDestinationOutOfRange, destination, len(units))
	}

	moved := units[from]
	remaining := make([]LearningUnit, 0, len(units)-1)
	remaining = append(remaining, units[:from]...)
	remaining = append(remaining, units[from+1:]...)
	before := remaining[:destination]

	violations := placementViolations(moved, before)
	if len(violations) > 0 {
		return Result{
			Outcome:    Rejected,
			Units:      cloneUnits(units),
			MovedID:    movedID,
			From:       from,
			To:         destination,
			Violations: violations,
		}, nil
	}

	out := make([]LearningUnit, 0, len(units))
	out = append(out, before...)
	out = append(out, moved)
	out = append(out, remaining[destination:]...)

	return Result{
		Outcome: Accepted,
		Units:   cloneUnits(out),
		MovedID: movedID,
		From:    from,
		To:      destination,
	}, nil
}

// CheckOrdering reports every ordering violation in units, i.e. each
// prerequisite that is not taught by an earlier unit. AttemptReorder does not
// call it; existing orderings are only audited on request.
func CheckOrdering(units []LearningUnit) []Violation {
	var violations []Violation
	taught := make(map[string]struct{}, len(units))
	for _, u := range units {
		for _, skill := range dedupe(u.PrerequisiteSkills) {
			if _, ok := taught[skill]; !ok {
				violations = append(violations, Violation{
					Kind:      MissingPrerequisite,
					Skill:     skill,
					UnitID:    u.ID,
					UnitTitle: u.Title,
				})
			}
		}
		taught[u.TaughtSkill] = struct{}{}
	}
	return violations
}

// placementViolations checks moved against the units that would precede it.
func placementViolations(moved LearningUnit, before []LearningUnit) []Violation {
	taught := make(map[string]struct{}, len(before))
	for _, u := range before {
		taught[u.TaughtSkill] = struct{}{}
	}

	var violations []Violation
	for _, skill := range dedupe(moved.PrerequisiteSkills) {
		if _, ok := taught[skill]; !ok {
			violations = append(violations, Violation{
				Kind:      MissingPrerequisite,
				Skill:     skill,
				UnitID:    moved.ID,
				UnitTitle: moved.Title,
			})
		}
	}
	for _, u := range before {
		if u.Requires(moved.TaughtSkill) {
			violations = append(violations, Violation{
				Kind:      BrokenDependency,
				Skill:     moved.TaughtSkill,
				UnitID:    u.ID,
				UnitTitle: u.Title,
			})
		}
	}
	return violations
}

func describe(violations []Violation) string {
	var missing, broken []string
	for _, v := range violations {
		switch v.Kind {
		case MissingPrerequisite:
			missing = append(missing, v.Skill)
		case BrokenDependency:
			broken = append(broken, fmt.Sprintf("%s (requires %s)", v.UnitTitle, v.Skill))
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "prerequisites not taught before this position: "+strings.Join(missing, ", "))
	}
	if len(broken) > 0 {
		parts = append(parts, "units placed before this position depend on it: "+strings.Join(broken, ", "))
	}
	return strings.Join(parts, "; ")
}

func dedupe(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
