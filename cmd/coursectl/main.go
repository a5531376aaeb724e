package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/p-n-ai/pai-authoring/internal/authoring"
	"github.com/p-n-ai/pai-authoring/internal/curriculum"
	"github.com/p-n-ai/pai-authoring/internal/platform/cache"
	"github.com/p-n-ai/pai-authoring/internal/platform/config"
	"github.com/p-n-ai/pai-authoring/internal/platform/logging"
)

const (
	exitOK       = 0
	exitError    = 1
	exitRejected = 2
)

// stringSlice implements flag.Value for repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ", ") }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app bundles what every subcommand needs.
type app struct {
	loader    *curriculum.Loader
	workspace *authoring.Workspace
	out       io.Writer
	closers   []func() error
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			slog.Warn("close failed", "error", err)
		}
	}
}

// command binds its flags on fs and returns the function that executes it
// once flags are parsed and the curriculum is loaded.
type command struct {
	name  string
	usage string
	bind  func(fs *flag.FlagSet) func(ctx context.Context, a *app) (int, error)
}

var commands = []command{
	{"courses", "list loaded courses", bindCourses},
	{"preview", "show a course with its units and unreachable skills", bindPreview},
	{"reorder", "move units (-move unit:index, repeatable)", bindReorder},
	{"check", "audit a course ordering against unit prerequisites", bindCheck},
	{"edit", "change title, slug, license, authors and modules of a course", bindEdit},
	{"skills", "show and edit a skill repository", bindSkills},
	{"authors", "search authors not yet credited on a course", bindAuthors},
	{"modules", "search modules not yet linked to a course", bindModules},
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: load config: %v\n", err)
		return exitError
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	slog.SetDefault(logging.New(cfg.Log, stderr))

	if len(args) == 0 {
		usage(stderr)
		return exitError
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "error: unknown command %q\n\n", args[0])
		usage(stderr)
		return exitError
	}

	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("curriculum", cfg.CurriculumPath, "directory containing seed files")
	exec := cmd.bind(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return exitError
	}

	a := &app{out: stdout}
	defer a.close()

	if err := a.setup(ctx, cfg, *path); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	code, err := exec(ctx, a)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return code
}

func (a *app) setup(ctx context.Context, cfg *config.Config, path string) error {
	loader, err := curriculum.NewLoader(path)
	if err != nil {
		return err
	}

	notices, err := newNoticeBoard(ctx, cfg, a)
	if err != nil {
		return err
	}

	cat := loader.Catalog()
	a.loader = loader
	a.workspace = authoring.NewWorkspace(authoring.WorkspaceConfig{
		Store:        authoring.NewMemoryStore(loader.AllCourses()...),
		Skills:       loader.Library(),
		Catalog:      &cat,
		Notices:      notices,
		Events:       authoring.NewSlogEventLogger(nil),
		HighlightTTL: cfg.Notices.HighlightTTL,
		ErrorTTL:     cfg.Notices.ErrorTTL,
	})
	return nil
}

func newNoticeBoard(ctx context.Context, cfg *config.Config, a *app) (authoring.NoticeBoard, error) {
	if cfg.Notices.Backend != "redis" {
		return authoring.NewMemoryNotices(nil), nil
	}
	c, err := cache.New(ctx, cfg.Cache.URL, cfg.Cache.Prefix)
	if err != nil {
		return nil, fmt.Errorf("connecting notice cache: %w", err)
	}
	a.closers = append(a.closers, c.Close)
	return authoring.NewRedisNotices(c, nil), nil
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: coursectl <command> [flags]\n\n")
	fmt.Fprintf(w, "coursectl inspects and edits course seed data.\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(w, "\nRun 'coursectl <command> -h' for command flags.\n")
}

// parseMove parses "unit:index".
func parseMove(s string) (unitID, destination int, err error) {
	unit, dest, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid move %q, want unit:index", s)
	}
	if unitID, err = strconv.Atoi(strings.TrimSpace(unit)); err != nil {
		return 0, 0, fmt.Errorf("invalid unit in move %q: %w", s, err)
	}
	if destination, err = strconv.Atoi(strings.TrimSpace(dest)); err != nil {
		return 0, 0, fmt.Errorf("invalid index in move %q: %w", s, err)
	}
	return unitID, destination, nil
}
