package tools

import "os/exec"

// Required tools without which the pipeline cannot run
var Required = []string{"subfinder", "assetfinder", "naabu", "httpx", "uro"}

// Optional tools that only disable their stage when missing
var Optional = []string{"amass", "shuffledns", "paramspider", "hakrawler", "urlfinder", "nuclei", "dalfox"}

// Checker verifies which external tools are available in PATH
type Checker struct {
	LookPath func(file string) (string, error)
}

func NewChecker() *Checker {
	return &Checker{LookPath: exec.LookPath}
}

// IsInstalled checks if a single binary is available
func (c *Checker) IsInstalled(name string) bool {
	_, err := c.LookPath(name)
	return err == nil
}

// Verify returns the missing required and optional tools
func (c *Checker) Verify() (missingRequired, missingOptional []string) {
	for _, name := range Required {
		if !c.IsInstalled(name) {
			missingRequired = append(missingRequired, name)
		}
	}
	for _, name := range Optional {
		if !c.IsInstalled(name) {
			missingOptional = append(missingOptional, name)
		}
	}

	return
}
