package tools

import (
	"context"
	"strings"
)

// Uro wraps the uro url normalizer, a pure stdin to stdout filter
type Uro struct{}

func (u *Uro) Name() string { return "uro" }

func (u *Uro) Normalize(ctx context.Context, urls []string) ([]string, error) {
	cmd := &Command{
		Binary: "uro",
		Stdin:  strings.NewReader(strings.Join(urls, "\n") + "\n"),
	}
	return cmd.Run(ctx)
}
