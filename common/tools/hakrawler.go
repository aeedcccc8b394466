package tools

import (
	"context"
	"strconv"
	"strings"

	"github.com/projectdiscovery/reconx/common/customheader"
)

// Hakrawler wraps the hakrawler crawler, fed with the alive urls on stdin
type Hakrawler struct {
	Timeout     int
	Headers     customheader.CustomHeaders
	RandomAgent bool
}

func (h *Hakrawler) Name() string { return "hakrawler" }

func (h *Hakrawler) Collect(ctx context.Context, domain string, alive []string) ([]string, error) {
	cmd := &Command{
		Binary: "hakrawler",
		Args:   h.args(),
		Stdin:  strings.NewReader(strings.Join(alive, "\n") + "\n"),
	}
	return cmd.Run(ctx)
}

func (h *Hakrawler) args() []string {
	args := []string{"-subs", "-u"}
	if h.Timeout > 0 {
		args = append(args, "-timeout", strconv.Itoa(h.Timeout))
	}
	if headers := withRandomAgent(h.Headers, h.RandomAgent); len(headers) > 0 {
		args = append(args, "-h", strings.Join(headers, ";;"))
	}

	return args
}
