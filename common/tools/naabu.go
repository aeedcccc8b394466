package tools

import (
	"context"
	"strconv"
)

// Naabu wraps the naabu port scanner
type Naabu struct {
	TopPorts int
}

func (n *Naabu) Name() string { return "naabu" }

func (n *Naabu) Scan(ctx context.Context, hosts []string) ([]string, error) {
	list, cleanup, err := TempFile(hosts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cmd := &Command{Binary: "naabu", Args: n.args(list)}
	return cmd.Run(ctx)
}

func (n *Naabu) args(list string) []string {
	return []string{"-list", list, "-top-ports", strconv.Itoa(n.TopPorts), "-silent"}
}
