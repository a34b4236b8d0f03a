package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

// Version is the release version reported by --version.
var Version = "0.1.0"

const rootLongDesc = `
coffee-docmd renders documentation directives for CoffeeScript modules.
It runs the coffeedoc analyzer on a module, resolves the requested object inside
the analyzer's JSON output and prints reStructuredText directives in the coffee
domain (or Markdown with --format markdown).

Objects are named module::Object[.member], for example:

  coffee-docmd lib/widgets                    # module
  coffee-docmd lib/widgets::Widget            # class
  coffee-docmd lib/widgets::Widget.render     # instance or static method
  coffee-docmd --kind function lib/widgets::build

Settings may come from a YAML or TOML file (--config) using the keys
coffee_src_dir, coffee_src_parser and coffee_analyzer; flags take precedence.
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "coffee-docmd [flags] module[::Object[.member]]...",
		Short:         "Render documentation directives for CoffeeScript modules",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVar(&app.opts.configPath, "config", "", "read settings from a YAML or TOML file")
	flags.StringVar(&app.opts.srcDir, "src-dir", ".", "source root that module names are relative to (coffee_src_dir)")
	flags.StringVar(&app.opts.parser, "parser", "commonjs", "coffeedoc parser mode (coffee_src_parser)")
	flags.StringVar(&app.opts.analyzer, "analyzer", "coffeedoc", "analyzer executable (coffee_analyzer)")
	flags.StringVarP(&app.opts.kind, "kind", "k", "", "object kind: module, class, function, method or staticmethod")
	flags.BoolVarP(&app.opts.members, "members", "m", false, "document members recursively")
	flags.BoolVar(&app.opts.showDeps, "show-dependencies", false, "list module dependencies")
	flags.StringVarP(&app.opts.format, "format", "f", formatRST, "output format: rst or markdown")
	flags.StringVarP(&app.opts.outputPath, "output", "o", "", "write output to file instead of stdout")
	flags.BoolVarP(&app.opts.watch, "watch", "w", false, "rebuild when CoffeeScript sources change")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log analyzer invocations and other debug output")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, cmd.Flags(), args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for coffee-docmd.

The output should be evaluated by your shell. For example:

  # bash
  coffee-docmd completion bash > /usr/local/etc/bash_completion.d/coffee-docmd

  # zsh
  coffee-docmd completion zsh > "${fpath[1]}/_coffee-docmd"

  # fish
  coffee-docmd completion fish | source

  # PowerShell
  coffee-docmd completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  coffee-docmd gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
