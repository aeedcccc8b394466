package tools

import (
	"context"
	"strconv"

	"github.com/projectdiscovery/reconx/common/customheader"
)

// HTTPX wraps the httpx probe for both liveness filtering and
// technology detection
type HTTPX struct {
	Timeout     int
	Headers     customheader.CustomHeaders
	RandomAgent bool
}

func (h *HTTPX) Name() string { return "httpx" }

func (h *HTTPX) Probe(ctx context.Context, urls []string, statusCodes []int) ([]string, error) {
	list, cleanup, err := TempFile(urls)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cmd := &Command{Binary: "httpx", Args: h.probeArgs(list, statusCodes)}
	return cmd.Run(ctx)
}

func (h *HTTPX) Detect(ctx context.Context, urls []string) ([]string, error) {
	list, cleanup, err := TempFile(urls)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cmd := &Command{Binary: "httpx", Args: h.detectArgs(list)}
	return cmd.Run(ctx)
}

func (h *HTTPX) probeArgs(list string, statusCodes []int) []string {
	args := []string{"-list", list}
	if len(statusCodes) > 0 {
		args = append(args, "-mc", joinInts(statusCodes))
	}
	args = append(args, "-timeout", strconv.Itoa(h.Timeout), "-silent", "-no-color")

	headers := withRandomAgent(h.Headers, h.RandomAgent)
	return append(args, headers.Flags("-H")...)
}

func (h *HTTPX) detectArgs(list string) []string {
	args := []string{"-list", list, "-td", "-status-code", "-timeout", strconv.Itoa(h.Timeout), "-silent", "-no-color"}

	headers := withRandomAgent(h.Headers, h.RandomAgent)
	return append(args, headers.Flags("-H")...)
}
