package tools

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	lines := Lines("a.example.com\n\n  b.example.com  \n")
	require.Equal(t, []string{"a.example.com", "b.example.com"}, lines, "could not get trimmed lines")
	require.Empty(t, Lines(""), "could not get empty lines")
}

func TestCommandRun(t *testing.T) {
	cmd := &Command{Binary: "sh", Args: []string{"-c", "echo a.example.com; echo b.example.com"}}
	lines, err := cmd.Run(context.Background())
	require.Nil(t, err, "could not run command")
	require.Equal(t, []string{"a.example.com", "b.example.com"}, lines, "could not get command output")
}

func TestCommandRunStdin(t *testing.T) {
	cmd := &Command{Binary: "sort", Stdin: strings.NewReader("b\na\n")}
	lines, err := cmd.Run(context.Background())
	require.Nil(t, err, "could not run command with stdin")
	require.Equal(t, []string{"a", "b"}, lines, "could not get sorted output")
}

func TestCommandRunPartialOutput(t *testing.T) {
	cmd := &Command{Binary: "sh", Args: []string{"-c", "echo a.example.com; echo broken >&2; exit 3"}}
	lines, err := cmd.Run(context.Background())
	require.NotNil(t, err, "could not get error on non zero exit")
	require.Contains(t, err.Error(), "broken", "could not get stderr detail")
	require.Equal(t, []string{"a.example.com"}, lines, "could not keep partial output")
}

func TestTempFile(t *testing.T) {
	path, cleanup, err := TempFile([]string{"a.example.com", "b.example.com"})
	require.Nil(t, err, "could not create temp file")

	data, err := os.ReadFile(path)
	require.Nil(t, err, "could not read temp file")
	require.Equal(t, "a.example.com\nb.example.com\n", string(data), "could not get temp file content")

	cleanup()
	require.NoFileExists(t, path, "could not remove temp file")
}
