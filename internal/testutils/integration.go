package testutils

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RunReconxAndGetResults runs a reconx binary with the given arguments
// and returns its console output lines. The stubPath directory is put in
// front of PATH so test cases can shadow the external tools with fakes.
func RunReconxAndGetResults(binary string, debug bool, stubPath string, args ...string) ([]string, error) {
	cmd := exec.Command("bash", "-c")
	cmdLine := binary + ` ` + strings.Join(args, " ")
	cmd.Args = append(cmd.Args, cmdLine)
	if debug {
		cmd.Stderr = os.Stderr
	}
	if stubPath != "" {
		cmd.Env = append(os.Environ(), fmt.Sprintf("PATH=%s:/usr/bin:/bin", stubPath))
	}

	data, err := cmd.Output()
	parts := []string{}
	items := strings.Split(string(data), "\n")
	for _, i := range items {
		if i != "" {
			parts = append(parts, i)
		}
	}
	return parts, err
}

// WriteStub creates an executable fake tool under dir
func WriteStub(dir, name, script string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/bash\n"+script+"\n"), 0755)
}

// ExitCode extracts the process exit code from a run error
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// TestCase is a single integration test case
type TestCase interface {
	// Execute executes a test case and returns any errors if occurred
	Execute() error
}
