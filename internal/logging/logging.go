// Package logging builds the leveled logger shared by the CLI and the
// module loader. Warnings are always shown; --verbose adds debug output
// such as the analyzer command lines.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "coffee-docmd",
		Level:  level,
	})
}
