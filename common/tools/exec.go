package tools

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Command describes a single external tool invocation
type Command struct {
	Binary string
	Args   []string
	Stdin  io.Reader
}

// Run executes the command and returns its stdout as trimmed non empty
// lines. On failure the lines produced so far are returned together with
// the error so callers can keep partial output.
func (c *Command) Run(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, c.Binary, c.Args...)
	cmd.Stdin = c.Stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	lines := Lines(stdout.String())
	if err != nil {
		if detail := firstLine(stderr.String()); detail != "" {
			return lines, errors.Wrapf(err, "%s: %s", c.Binary, detail)
		}
		return lines, errors.Wrap(err, c.Binary)
	}

	return lines, nil
}

// Lines splits s into trimmed non empty lines
func Lines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

func firstLine(s string) string {
	lines := Lines(s)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

// TempFile writes the lines to a scratch file and returns its path
// together with a cleanup function
func TempFile(lines []string) (string, func(), error) {
	f, err := os.CreateTemp("", "reconx-*.txt")
	if err != nil {
		return "", nil, err
	}
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			f.Close()           //nolint
			os.Remove(f.Name()) //nolint
			return "", nil, err
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name()) //nolint
		return "", nil, err
	}

	cleanup := func() {
		os.Remove(f.Name()) //nolint
	}
	return f.Name(), cleanup, nil
}
