package repo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command inside a working directory and returns
// the first line of its standard output, trimmed. The working directory is set
// per command; the process-wide one is never touched.
type Runner interface {
	Run(ctx context.Context, dir string, argv ...string) (string, error)
}

type ExecRunner struct{}

func NewRunner() Runner {
	return ExecRunner{}
}

func (ExecRunner) Run(ctx context.Context, dir string, argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("%w: empty argument vector", ErrCommandFailed)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %w (%s)",
			ErrCommandFailed, strings.Join(argv, " "), err, strings.TrimSpace(stderr.String()))
	}

	return firstLine(stdout.String()), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
