// Package loader runs the coffeedoc analyzer and memoizes its output per
// source file for the lifetime of one documentation build.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/agentflare-ai/coffee-docmd/internal/coffeedoc"
)

const (
	DefaultAnalyzer = "coffeedoc"
	DefaultParser   = "commonjs"
)

// Options configures a Loader.
type Options struct {
	// SrcDir is the source root. The analyzer runs inside it.
	SrcDir string
	// Parser is passed to the analyzer's --parser flag.
	Parser string
	// Analyzer is the analyzer executable.
	Analyzer string
	Runner   Runner
	Logger   *log.Logger
}

// DecodeError reports analyzer output that is not a JSON module list.
type DecodeError struct {
	Command []string
	Stderr  string
	Err     error
}

func (e *DecodeError) Error() string {
	msg := "could not decode JSON output for " + strings.Join(e.Command, " ")
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

var errEmptyOutput = errors.New("analyzer returned no modules")

// Loader loads modules through the analyzer. A Loader is the cache for a
// single build; create a new one to pick up source changes.
type Loader struct {
	srcDir   string
	parser   string
	analyzer string
	runner   Runner
	logger   *log.Logger

	mu          sync.Mutex
	modules     map[string]*coffeedoc.Module
	invocations int
	group       singleflight.Group
}

// New returns a Loader with an empty cache.
func New(opts Options) *Loader {
	l := &Loader{
		srcDir:   opts.SrcDir,
		parser:   opts.Parser,
		analyzer: opts.Analyzer,
		runner:   opts.Runner,
		logger:   opts.Logger,
		modules:  make(map[string]*coffeedoc.Module),
	}
	if l.srcDir == "" {
		l.srcDir = "."
	}
	if l.parser == "" {
		l.parser = DefaultParser
	}
	if l.analyzer == "" {
		l.analyzer = DefaultAnalyzer
	}
	if l.runner == nil {
		l.runner = ExecRunner{}
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	return l
}

// SrcDir returns the source root.
func (l *Loader) SrcDir() string { return l.srcDir }

// Invocations reports how many times the analyzer has run.
func (l *Loader) Invocations() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.invocations
}

// Module loads the module named modname, e.g. "lib/widgets".
func (l *Loader) Module(ctx context.Context, modname string) (*coffeedoc.Module, error) {
	return l.Load(ctx, coffeedoc.Filename(modname))
}

// Load returns the module for filename, relative to the source root. The
// analyzer runs at most once per filename; concurrent callers wait for the
// first run. A missing file yields a blank module and a warning.
func (l *Loader) Load(ctx context.Context, filename string) (*coffeedoc.Module, error) {
	if mod, ok := l.cached(filename); ok {
		return mod, nil
	}
	fullpath := filepath.Join(l.srcDir, filename)
	if info, err := os.Stat(fullpath); err != nil || info.IsDir() {
		l.logger.Warn("CoffeeScript module does not exist", "path", fullpath)
		return coffeedoc.Blank(filename), nil
	}
	v, err, _ := l.group.Do(filename, func() (any, error) {
		if mod, ok := l.cached(filename); ok {
			return mod, nil
		}
		mod, err := l.analyze(ctx, filename)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.modules[filename] = mod
		l.mu.Unlock()
		return mod, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*coffeedoc.Module), nil
}

func (l *Loader) cached(filename string) (*coffeedoc.Module, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	mod, ok := l.modules[filename]
	return mod, ok
}

// Command returns the analyzer command line for filename.
func (l *Loader) Command(filename string) []string {
	return []string{l.analyzer, "--stdout", "--renderer", "json", "--parser", l.parser, filename}
}

func (l *Loader) analyze(ctx context.Context, filename string) (*coffeedoc.Module, error) {
	argv := l.Command(filename)
	l.mu.Lock()
	l.invocations++
	l.mu.Unlock()
	l.logger.Debug("running analyzer", "cmd", strings.Join(argv, " "), "dir", l.srcDir)

	stdout, stderr, runErr := l.runner.Run(ctx, l.srcDir, argv)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if runErr != nil {
		var execErr *exec.Error
		if errors.As(runErr, &execErr) {
			return nil, fmt.Errorf("running %s: %w", strings.Join(argv, " "), runErr)
		}
		l.logger.Debug("analyzer exited with error", "cmd", argv[0], "err", runErr)
	}
	mod, err := decodeModule(stdout)
	if err != nil {
		return nil, &DecodeError{
			Command: argv,
			Stderr:  strings.TrimSpace(string(stderr)),
			Err:     err,
		}
	}
	mod.Path = l.relPath(mod.Path)
	mod.Name = coffeedoc.ModuleName(mod.Path)
	return mod, nil
}

// relPath strips the leading source root from an analyzer-reported path.
// Paths outside the root, such as "../shared/x.coffee", are left as is.
func (l *Loader) relPath(p string) string {
	root := filepath.ToSlash(filepath.Clean(l.srcDir))
	if root == "." {
		return strings.TrimPrefix(p, "./")
	}
	return strings.TrimPrefix(p, strings.TrimSuffix(root, "/")+"/")
}

func decodeModule(data []byte) (*coffeedoc.Module, error) {
	var mods []*coffeedoc.Module
	if err := json.Unmarshal(data, &mods); err != nil {
		return nil, err
	}
	if len(mods) == 0 || mods[0] == nil {
		return nil, errEmptyOutput
	}
	mod := mods[0]
	if mod.Deps == nil {
		mod.Deps = coffeedoc.NewDeps()
	}
	return mod, nil
}
