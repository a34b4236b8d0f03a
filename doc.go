// # coffee-docmd
//
// `coffee-docmd` turns CoffeeScript modules into documentation directives. It
// runs the `coffeedoc` analyzer (`coffeedoc --stdout --renderer json`) on a
// module, looks the requested object up in the JSON it prints and emits
// reStructuredText directives in the `coffee` domain, or Markdown.
//
// Key capabilities:
//
//   - name objects as `module::Object[.member]`, e.g. `lib/widgets::Widget.render`.
//     Without `--kind` the tool tries class, function, method and static
//     method in that order.
//   - qualify base classes for the `:parent:` option, using classes in the same
//     module or the module's `require` table.
//   - document members recursively (`--members`) and list dependencies
//     (`--show-dependencies`).
//   - run the analyzer at most once per source file per build.
//   - rebuild on source changes with `--watch`.
//
// ## Usage
//
//	coffee-docmd [flags] module[::Object[.member]]...
//
// Examples:
//
//   - Render a module and everything in it:
//
//     coffee-docmd --src-dir src --members lib/widgets
//
//   - Render a single method as Markdown into a file:
//
//     coffee-docmd -f markdown -o docs/render.md lib/widgets::Widget.render
//
// ## Configuration
//
// `--config` reads a YAML (`.yaml`, `.yml`) or TOML (`.toml`) file:
//
//	coffee_src_dir: src          # source root, relative to the file
//	coffee_src_parser: commonjs  # analyzer parser mode; null means commonjs
//	coffee_analyzer: coffeedoc   # analyzer executable
//
// Flags given on the command line override the file.
//
// ## Missing modules
//
// A module whose source file does not exist is documented as an empty module
// and a warning is logged, so one bad name does not fail the whole build.
// Analyzer output that is not JSON is an error naming the command that
// produced it.
package main
