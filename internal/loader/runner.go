package loader

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes the analyzer. dir is the working directory and argv the
// full command line including the program name.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) (stdout, stderr []byte, err error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir string, argv []string) ([]byte, []byte, error)

func (f RunnerFunc) Run(ctx context.Context, dir string, argv []string) ([]byte, []byte, error) {
	return f(ctx, dir, argv)
}

// ExecRunner runs the analyzer as a subprocess.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, argv []string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
