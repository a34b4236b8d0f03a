package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/agentflare-ai/coffee-docmd/internal/coffeedoc"
	"github.com/agentflare-ai/coffee-docmd/internal/config"
	"github.com/agentflare-ai/coffee-docmd/internal/loader"
	"github.com/agentflare-ai/coffee-docmd/internal/logging"
	"github.com/agentflare-ai/coffee-docmd/internal/resolve"
)

type options struct {
	configPath string
	srcDir     string
	parser     string
	analyzer   string
	kind       string
	members    bool
	showDeps   bool
	format     string
	outputPath string
	watch      bool
	verbose    bool
}

type invocation struct {
	kind coffeedoc.Kind
	name coffeedoc.Name
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
	logger *log.Logger
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.ExecuteContext(ctx)
}

func (app *cliApp) execute(ctx context.Context, flags *pflag.FlagSet, positionals []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := app.opts
	app.logger = logging.New(app.stderr, opts.verbose)
	if len(positionals) == 0 {
		return errors.New("no arguments provided")
	}
	if opts.format != formatRST && opts.format != formatMarkdown {
		return fmt.Errorf("unsupported format %q (want %s or %s)", opts.format, formatRST, formatMarkdown)
	}
	var forced *coffeedoc.Kind
	if opts.kind != "" {
		kind, err := coffeedoc.ParseKind(opts.kind)
		if err != nil {
			return err
		}
		forced = &kind
	}
	targets := make([][]invocation, 0, len(positionals))
	for _, arg := range positionals {
		candidates, err := buildCandidates(arg, forced)
		if err != nil {
			return err
		}
		targets = append(targets, candidates)
	}
	cfg, err := app.resolveConfig(flags)
	if err != nil {
		return err
	}

	build := func() error {
		out, err := app.build(ctx, cfg, targets)
		if err != nil {
			return err
		}
		return writeOutput(opts.outputPath, app.stdout, out)
	}
	if err := build(); err != nil {
		if !opts.watch {
			return err
		}
		app.logger.Error("build failed", "err", err)
	}
	if !opts.watch {
		return nil
	}
	return watchSources(ctx, cfg.SrcDir, app.logger, build)
}

// resolveConfig layers explicitly set flags over the config file (if any)
// over the defaults.
func (app *cliApp) resolveConfig(flags *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if app.opts.configPath != "" {
		loaded, err := config.Load(app.opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if flags.Changed("src-dir") {
		cfg.SrcDir = app.opts.srcDir
	}
	if flags.Changed("parser") {
		parser := app.opts.parser
		cfg.Parser = &parser
	}
	if flags.Changed("analyzer") {
		cfg.Analyzer = app.opts.analyzer
	}
	app.logger.Debug("configuration", "src_dir", cfg.SrcDir, "parser", cfg.ParserMode(), "analyzer", cfg.Analyzer)
	return cfg, nil
}

// build renders every target with a fresh module cache.
func (app *cliApp) build(ctx context.Context, cfg config.Config, targets [][]invocation) ([]byte, error) {
	lopts := cfg.LoaderOptions()
	lopts.Logger = app.logger
	ldr := loader.New(lopts)
	r := &renderer{
		format:   app.opts.format,
		members:  app.opts.members,
		showDeps: app.opts.showDeps,
	}
	var buf bytes.Buffer
	for _, candidates := range targets {
		target, err := importFirst(ctx, ldr, candidates)
		if err != nil {
			return nil, err
		}
		r.render(&buf, target)
	}
	app.logger.Debug("build finished", "analyzer_runs", ldr.Invocations())
	return buf.Bytes(), nil
}

func importFirst(ctx context.Context, ldr resolve.ModuleLoader, candidates []invocation) (resolvedObject, error) {
	for _, cand := range candidates {
		obj, mod, err := resolve.Import(ctx, ldr, cand.kind, cand.name)
		if errors.Is(err, resolve.ErrNotFound) {
			continue
		}
		if err != nil {
			return resolvedObject{}, err
		}
		return resolvedObject{name: cand.name, obj: obj, mod: mod}, nil
	}
	last := candidates[len(candidates)-1].name
	return resolvedObject{}, fmt.Errorf("no matching object %q in %s", last.Path, last.Module)
}

// buildCandidates lists the interpretations of arg to try in order. Names
// without a module separator are modules; otherwise classes are tried
// first, then functions, then methods.
func buildCandidates(arg string, forced *coffeedoc.Kind) ([]invocation, error) {
	arg = strings.TrimSpace(arg)
	if forced != nil {
		name, err := coffeedoc.ParseName(*forced, arg)
		if err != nil {
			return nil, err
		}
		return []invocation{{kind: *forced, name: name}}, nil
	}
	if !strings.Contains(arg, coffeedoc.ModSep) {
		name, err := coffeedoc.ParseName(coffeedoc.KindModule, arg)
		if err != nil {
			return nil, err
		}
		return []invocation{{kind: coffeedoc.KindModule, name: name}}, nil
	}
	kinds := []coffeedoc.Kind{coffeedoc.KindClass, coffeedoc.KindFunction, coffeedoc.KindMethod, coffeedoc.KindStaticMethod}
	candidates := make([]invocation, 0, len(kinds))
	for _, kind := range kinds {
		name, err := coffeedoc.ParseName(kind, arg)
		if err != nil {
			return nil, err
		}
		if len(name.Path) < 2 && (kind == coffeedoc.KindMethod || kind == coffeedoc.KindStaticMethod) {
			continue
		}
		candidates = append(candidates, invocation{kind: kind, name: name})
	}
	return candidates, nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var legacyLongFlagSet = map[string]struct{}{
	"members":           {},
	"show-dependencies": {},
	"config":            {},
	"src-dir":           {},
	"parser":            {},
	"analyzer":          {},
	"kind":              {},
	"format":            {},
	"output":            {},
	"watch":             {},
	"verbose":           {},
}

// normalizeLegacyArgs accepts single-dash long flags (-members) the way
// directive options are usually spelled.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || len(arg) <= 2 {
			converted = append(converted, arg)
			continue
		}
		name, value, hasValue := strings.Cut(arg[1:], "=")
		if _, ok := legacyLongFlagSet[name]; ok {
			if hasValue {
				converted = append(converted, "--"+name+"="+value)
			} else {
				converted = append(converted, "--"+name)
			}
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified {
		return args
	}
	return converted
}
