package tools

import (
	"context"
	"strings"

	"github.com/projectdiscovery/reconx/common/customheader"
	"github.com/projectdiscovery/reconx/common/severity"
)

// Nuclei wraps the nuclei template based vulnerability scanner
type Nuclei struct {
	Severities severity.Severities
	Headers    customheader.CustomHeaders
}

func (n *Nuclei) Name() string { return "nuclei" }

func (n *Nuclei) Scan(ctx context.Context, targets []string) ([]string, error) {
	list, cleanup, err := TempFile(targets)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cmd := &Command{Binary: "nuclei", Args: n.args(list)}
	return cmd.Run(ctx)
}

func (n *Nuclei) args(list string) []string {
	args := []string{"-list", list, "-silent", "-no-color"}
	if !n.Severities.IsEmpty() {
		args = append(args, "-severity", strings.Join(n.Severities.StringSlice(), ","))
	}

	return append(args, n.Headers.Flags("-H")...)
}
