package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/projectdiscovery/reconx/internal/testutils"
)

var binary = "./reconx"

var pipelineTestcases = map[string]testutils.TestCase{
	"Full pipeline with stubbed tools":     &fullPipeline{},
	"Missing required tool aborts the run": &missingRequiredTool{},
	"Optional stages disabled by flags":    &optionalStagesDisabled{},
	"Zero discovered subdomains is fatal":  &zeroSubdomains{},
}

func defaultStubs(dir string) error {
	stubs := map[string]string{
		"subfinder":   `echo a.example.com; echo b.example.com`,
		"assetfinder": `echo b.example.com; echo c.example.com`,
		"naabu":       `echo a.example.com:443`,
		"httpx": `case "$*" in
*"-td"*) echo "https://a.example.com:443 [200] [nginx]";;
*) echo "https://a.example.com:443";;
esac`,
		"paramspider": `echo "https://a.example.com/?p=1"`,
		"hakrawler":   `cat >/dev/null; echo "https://a.example.com/login"`,
		"urlfinder":   `echo "https://a.example.com/?p=1"`,
		"uro":         `sort -u`,
	}
	for name, script := range stubs {
		if err := testutils.WriteStub(dir, name, script); err != nil {
			return err
		}
	}
	return nil
}

func fileLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

type fullPipeline struct{}

// Exercises every stage against fake tools and verifies the final
// output is normalized across collectors.
func (f *fullPipeline) Execute() error {
	scratch, err := os.MkdirTemp("", "reconx-itest-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	stubs := filepath.Join(scratch, "stubs")
	if err := os.MkdirAll(stubs, 0755); err != nil {
		return err
	}
	if err := defaultStubs(stubs); err != nil {
		return err
	}

	output := filepath.Join(scratch, "results", "example.com.txt")
	if _, err := testutils.RunReconxAndGetResults(binary, debug, stubs, "-d", "example.com", "-o", output, "-silent", "-no-color"); err != nil {
		return err
	}

	got := strings.Join(fileLines(output), "\n")
	expected := "https://a.example.com/?p=1\nhttps://a.example.com/login"
	if got != expected {
		return errIncorrectResult(expected, got)
	}

	techFile := filepath.Join(scratch, "results", "example.com-technologies.txt")
	if got := strings.Join(fileLines(techFile), "\n"); got != "https://a.example.com:443 [200] [nginx]" {
		return errIncorrectResult("https://a.example.com:443 [200] [nginx]", got)
	}
	return nil
}

type missingRequiredTool struct{}

// A missing required binary must abort with exit code 1 before any
// enumerator has run.
func (m *missingRequiredTool) Execute() error {
	scratch, err := os.MkdirTemp("", "reconx-itest-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	stubs := filepath.Join(scratch, "stubs")
	if err := os.MkdirAll(stubs, 0755); err != nil {
		return err
	}
	// no naabu stub on purpose
	if err := testutils.WriteStub(stubs, "subfinder", `touch "$(dirname "$0")/subfinder-ran"; echo a.example.com`); err != nil {
		return err
	}
	for name, script := range map[string]string{
		"assetfinder": `echo a.example.com`,
		"httpx":       `echo "https://a.example.com:443"`,
		"uro":         `sort -u`,
	} {
		if err := testutils.WriteStub(stubs, name, script); err != nil {
			return err
		}
	}

	output := filepath.Join(scratch, "results", "example.com.txt")
	_, err = testutils.RunReconxAndGetResults(binary, debug, stubs, "-d", "example.com", "-o", output, "-silent", "-no-color")
	if code := testutils.ExitCode(err); code != 1 {
		return fmt.Errorf("incorrect exit code: expected 1 got %d", code)
	}
	if _, err := os.Stat(filepath.Join(stubs, "subfinder-ran")); err == nil {
		return fmt.Errorf("subdomain discovery ran before tool verification")
	}
	return nil
}

type optionalStagesDisabled struct{}

// Disabling every optional stage still produces a valid, possibly
// empty, output file without invoking any optional tool.
func (o *optionalStagesDisabled) Execute() error {
	scratch, err := os.MkdirTemp("", "reconx-itest-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	stubs := filepath.Join(scratch, "stubs")
	if err := os.MkdirAll(stubs, 0755); err != nil {
		return err
	}
	for name, script := range map[string]string{
		"subfinder":   `echo a.example.com`,
		"assetfinder": `echo a.example.com`,
		"naabu":       `echo a.example.com:443`,
		"httpx": `case "$*" in
*"-td"*) touch "$(dirname "$0")/td-ran"; exit 1;;
*) echo "https://a.example.com:443";;
esac`,
		"paramspider": `touch "$(dirname "$0")/paramspider-ran"; exit 1`,
		"hakrawler":   `touch "$(dirname "$0")/hakrawler-ran"; exit 1`,
		"urlfinder":   `touch "$(dirname "$0")/urlfinder-ran"; exit 1`,
		"uro":         `sort -u`,
	} {
		if err := testutils.WriteStub(stubs, name, script); err != nil {
			return err
		}
	}

	output := filepath.Join(scratch, "results", "example.com.txt")
	if _, err := testutils.RunReconxAndGetResults(binary, debug, stubs,
		"-d", "example.com", "-o", output, "-no-paramspider", "-no-hakrawler", "-no-urlfinder", "-no-tech", "-silent", "-no-color"); err != nil {
		return err
	}

	if lines := fileLines(output); len(lines) != 0 {
		return errIncorrectResult("", strings.Join(lines, "\n"))
	}
	if _, err := os.Stat(output); err != nil {
		return fmt.Errorf("missing output file: %w", err)
	}
	for _, marker := range []string{"td-ran", "paramspider-ran", "hakrawler-ran", "urlfinder-ran"} {
		if _, err := os.Stat(filepath.Join(stubs, marker)); err == nil {
			return fmt.Errorf("optional tool %s was invoked", strings.TrimSuffix(marker, "-ran"))
		}
	}
	if _, err := os.Stat(filepath.Join(scratch, "results", "example.com-technologies.txt")); err == nil {
		return fmt.Errorf("technologies file created with detection disabled")
	}
	return nil
}

type zeroSubdomains struct{}

// Zero discovered subdomains is fatal and nothing downstream runs.
func (z *zeroSubdomains) Execute() error {
	scratch, err := os.MkdirTemp("", "reconx-itest-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	stubs := filepath.Join(scratch, "stubs")
	if err := os.MkdirAll(stubs, 0755); err != nil {
		return err
	}
	for name, script := range map[string]string{
		"subfinder":   `exit 0`,
		"assetfinder": `exit 0`,
		"naabu":       `touch "$(dirname "$0")/naabu-ran"; exit 1`,
		"httpx":       `echo "https://a.example.com:443"`,
		"uro":         `sort -u`,
	} {
		if err := testutils.WriteStub(stubs, name, script); err != nil {
			return err
		}
	}

	output := filepath.Join(scratch, "results", "example.com.txt")
	_, err = testutils.RunReconxAndGetResults(binary, debug, stubs, "-d", "example.com", "-o", output, "-silent", "-no-color")
	if code := testutils.ExitCode(err); code != 1 {
		return fmt.Errorf("incorrect exit code: expected 1 got %d", code)
	}
	if _, err := os.Stat(filepath.Join(stubs, "naabu-ran")); err == nil {
		return fmt.Errorf("port scan ran after empty discovery")
	}
	return nil
}
