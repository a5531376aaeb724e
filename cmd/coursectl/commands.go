package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/p-n-ai/pai-authoring/internal/authoring"
	"github.com/p-n-ai/pai-authoring/internal/course"
	"github.com/p-n-ai/pai-authoring/internal/skill"
)

func bindCourses(_ *flag.FlagSet) func(context.Context, *app) (int, error) {
	return func(_ context.Context, a *app) (int, error) {
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tUNITS")
		for _, c := range a.workspace.Courses() {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", c.ID, c.Title, len(c.Units))
		}
		return exitOK, tw.Flush()
	}
}

func bindPreview(fs *flag.FlagSet) func(context.Context, *app) (int, error) {
	courseID := fs.String("course", "", "course ID (required)")
	return func(ctx context.Context, a *app) (int, error) {
		if *courseID == "" {
			return exitError, fmt.Errorf("-course is required")
		}
		p, err := a.workspace.Preview(ctx, *courseID)
		if err != nil {
			return exitError, err
		}

		c := p.Course
		fmt.Fprintf(a.out, "%s (%s)\n", c.Title, c.Slug)
		if c.Description != "" {
			fmt.Fprintf(a.out, "  %s\n", c.Description)
		}
		fmt.Fprintf(a.out, "Target skill: %s\n", c.TargetSkill)
		fmt.Fprintf(a.out, "Authors: %s\n", strings.Join(c.Authors, ", "))
		fmt.Fprintf(a.out, "License: %s\n", c.EffectiveLicense())
		fmt.Fprintln(a.out, "\nLearning units:")
		printUnits(a, c.Units)

		if len(p.Unreachable) > 0 {
			fmt.Fprintln(a.out, "\nUnreachable skills:")
			for _, s := range p.Unreachable {
				fmt.Fprintf(a.out, "  %s: %s\n", s.Name, s.Reason)
			}
		}
		for _, n := range p.Notices {
			line := fmt.Sprintf("[%s] unit %d", n.Kind, n.UnitID)
			if n.Message != "" {
				line += ": " + n.Message
			}
			fmt.Fprintln(a.out, "\n"+line)
		}
		return exitOK, nil
	}
}

func bindReorder(fs *flag.FlagSet) func(context.Context, *app) (int, error) {
	courseID := fs.String("course", "", "course ID (required)")
	var moves stringSlice
	fs.Var(&moves, "move", "unit:index to move a unit to its final index (repeatable)")
	return func(ctx context.Context, a *app) (int, error) {
		if *courseID == "" {
			return exitError, fmt.Errorf("-course is required")
		}
		if len(moves) == 0 {
			return exitError, fmt.Errorf("at least one -move is required")
		}

		code := exitOK
		for _, m := range moves {
			unitID, dest, err := parseMove(m)
			if err != nil {
				return exitError, err
			}
			res, err := a.workspace.Reorder(ctx, *courseID, unitID, dest)
			if err != nil {
				return exitError, err
			}
			switch res.Outcome {
			case course.Accepted:
				fmt.Fprintf(a.out, "move %d -> %d: accepted\n", unitID, dest)
			case course.Rejected:
				fmt.Fprintf(a.out, "move %d -> %d: rejected: %v\n", unitID, dest, res.Err())
				code = exitRejected
			case course.Ignored:
				fmt.Fprintf(a.out, "move %d -> %d: ignored, unit not found\n", unitID, dest)
			}
		}

		p, err := a.workspace.Preview(ctx, *courseID)
		if err != nil {
			return exitError, err
		}
		fmt.Fprintln(a.out, "\nLearning units:")
		printUnits(a, p.Course.Units)
		return code, nil
	}
}

func bindCheck(fs *flag.FlagSet) func(context.Context, *app) (int, error) {
	courseID := fs.String("course", "", "course ID (required)")
	return func(_ context.Context, a *app) (int, error) {
		if *courseID == "" {
			return exitError, fmt.Errorf("-course is required")
		}
		violations, err := a.workspace.Audit(*courseID)
		if err != nil {
			return exitError, err
		}
		if len(violations) == 0 {
			fmt.Fprintln(a.out, "ordering ok")
			return exitOK, nil
		}
		for _, v := range violations {
			fmt.Fprintf(a.out, "unit %d %q requires %s before it\n", v.UnitID, v.UnitTitle, v.Skill)
		}
		return exitRejected, nil
	}
}

func bindSkills(fs *flag.FlagSet) func(context.Context, *app) (int, error) {
	repo := fs.String("repo", "", "skill repository key (default: list repositories)")
	selectName := fs.String("select", "", "skill to select and show details for")
	all := fs.Bool("all", false, "print the whole tree instead of expanded skills only")
	var adds, removes, removeChildren, toggles stringSlice
	fs.Var(&adds, "add", "parent:skill to place an available skill (repeatable)")
	fs.Var(&removes, "remove", "skill to remove with its descendants (repeatable)")
	fs.Var(&removeChildren, "remove-child", "direct child of the selected skill to remove (repeatable)")
	fs.Var(&toggles, "toggle", "skill to expand or collapse (repeatable)")
	return func(_ context.Context, a *app) (int, error) {
		lib := a.loader.Library()
		if *repo == "" {
			for _, k := range lib.Keys() {
				h, _ := lib.Get(k)
				fmt.Fprintf(a.out, "%s\t%s (%d skills)\n", k, h.Root(), h.Len())
			}
			return exitOK, nil
		}

		ed, err := skill.NewEditor(lib, *repo, a.loader.AvailableSkills(*repo))
		if err != nil {
			return exitError, err
		}
		for _, add := range adds {
			parent, name, ok := strings.Cut(add, ":")
			if !ok {
				return exitError, fmt.Errorf("invalid -add %q, want parent:skill", add)
			}
			if err := ed.AddFromPool(parent, name); err != nil {
				return exitError, err
			}
		}
		if *selectName != "" {
			if _, err := ed.Select(*selectName); err != nil {
				return exitError, err
			}
		}
		for _, name := range removeChildren {
			removed, err := ed.RemoveChild(name)
			if err != nil {
				return exitError, err
			}
			fmt.Fprintf(a.out, "removed: %s\n", strings.Join(removed, ", "))
		}
		for _, name := range removes {
			removed, err := ed.Remove(name)
			if err != nil {
				return exitError, err
			}
			fmt.Fprintf(a.out, "removed: %s\n", strings.Join(removed, ", "))
		}
		for _, name := range toggles {
			if !ed.Hierarchy().Contains(name) {
				return exitError, fmt.Errorf("%w: %s", skill.ErrSkillNotFound, name)
			}
			ed.Toggle(name)
		}

		h := ed.Hierarchy()
		h.Walk(func(name string, depth int) bool {
			line := strings.Repeat("  ", depth) + name
			if h.IsProtected(name) {
				line += " *"
			}
			open := *all || ed.IsExpanded(name)
			if info, _ := h.Find(name); !open && len(info.Children) > 0 {
				line += " +"
			}
			fmt.Fprintln(a.out, line)
			return open
		})
		if avail := ed.Available(); len(avail) > 0 {
			fmt.Fprintf(a.out, "\navailable: %s\n", strings.Join(avail, ", "))
		}

		if *selectName != "" {
			info, _ := ed.Selected()
			fmt.Fprintf(a.out, "\nselected: %s\n  parents: %s\n  children: %s\n",
				info.Name, strings.Join(info.Parents, ", "), strings.Join(info.Children, ", "))
		}
		return exitOK, nil
	}
}

func bindEdit(fs *flag.FlagSet) func(context.Context, *app) (int, error) {
	courseID := fs.String("course", "", "course ID (required)")
	var edit authoring.CourseEdit
	fs.StringVar(&edit.Title, "title", "", "new title; the slug follows unless edited by hand")
	fs.StringVar(&edit.Slug, "slug", "", "hand-edited slug")
	fs.StringVar(&edit.Description, "description", "", "new description")
	fs.StringVar(&edit.License, "license", "", "license (default "+course.DefaultLicense+")")
	var addAuthors, removeAuthors, attach, detach stringSlice
	fs.Var(&addAuthors, "add-author", "author to credit (repeatable)")
	fs.Var(&removeAuthors, "remove-author", "author to remove (repeatable)")
	fs.Var(&attach, "attach-module", "module ID to link (repeatable)")
	fs.Var(&detach, "detach-module", "module ID to unlink (repeatable)")
	return func(_ context.Context, a *app) (int, error) {
		if *courseID == "" {
			return exitError, fmt.Errorf("-course is required")
		}
		var err error
		if edit.AttachModules, err = parseIDs(attach); err != nil {
			return exitError, err
		}
		if edit.DetachModules, err = parseIDs(detach); err != nil {
			return exitError, err
		}
		edit.AddAuthors = addAuthors
		edit.RemoveAuthors = removeAuthors

		res, err := a.workspace.EditCourse(*courseID, edit)
		if err != nil {
			return exitError, err
		}
		for _, s := range res.Skipped {
			fmt.Fprintf(a.out, "skipped: %s\n", s)
		}

		c := res.Course
		cat := a.loader.Catalog()
		fmt.Fprintf(a.out, "%s (%s)\n", c.Title, c.Slug)
		fmt.Fprintf(a.out, "License: %s\n", c.EffectiveLicense())
		fmt.Fprintf(a.out, "Authors: %s\n", strings.Join(c.Authors, ", "))
		fmt.Fprintln(a.out, "Modules:")
		for _, id := range c.ModuleIDs {
			name := "(unknown)"
			if m, ok := cat.Module(id); ok {
				name = m.Name
			}
			fmt.Fprintf(a.out, "  %d\t%s\n", id, name)
		}
		return exitOK, nil
	}
}

func bindAuthors(fs *flag.FlagSet) func(context.Context, *app) (int, error) {
	courseID := fs.String("course", "", "course whose authors are excluded")
	term := fs.String("q", "", "search term")
	return func(_ context.Context, a *app) (int, error) {
		var exclude []string
		if *courseID != "" {
			c, ok := a.loader.Course(*courseID)
			if !ok {
				return exitError, fmt.Errorf("course not found: %s", *courseID)
			}
			exclude = c.Authors
		}
		for _, au := range a.loader.Catalog().SearchAuthors(*term, exclude) {
			fmt.Fprintf(a.out, "%d\t%s\t%s\n", au.ID, au.Name, au.Department)
		}
		return exitOK, nil
	}
}

func bindModules(fs *flag.FlagSet) func(context.Context, *app) (int, error) {
	courseID := fs.String("course", "", "course whose linked modules are excluded")
	term := fs.String("q", "", "search term")
	return func(_ context.Context, a *app) (int, error) {
		var selected []int
		if *courseID != "" {
			c, ok := a.loader.Course(*courseID)
			if !ok {
				return exitError, fmt.Errorf("course not found: %s", *courseID)
			}
			selected = c.ModuleIDs
		}
		for _, m := range a.loader.Catalog().SearchModules(*term, selected) {
			fmt.Fprintf(a.out, "%d\t%s\t%s\n", m.ID, m.Name, m.Description)
		}
		return exitOK, nil
	}
}

func printUnits(a *app, units []course.LearningUnit) {
	for i, u := range units {
		line := fmt.Sprintf("  %d. [%d] %s (teaches %s", i, u.ID, u.Title, u.TaughtSkill)
		if len(u.PrerequisiteSkills) > 0 {
			line += "; requires " + strings.Join(u.PrerequisiteSkills, ", ")
		}
		fmt.Fprintln(a.out, line+")")
	}
}

func parseIDs(values []string) ([]int, error) {
	ids := make([]int, 0, len(values))
	for _, v := range values {
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid module id %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
