package tools

import "context"

// Assetfinder wraps the assetfinder subdomain enumerator
type Assetfinder struct{}

func (a *Assetfinder) Name() string { return "assetfinder" }

func (a *Assetfinder) Enumerate(ctx context.Context, domain string) ([]string, error) {
	cmd := &Command{Binary: "assetfinder", Args: a.args(domain)}
	return cmd.Run(ctx)
}

func (a *Assetfinder) args(domain string) []string {
	return []string{"--subs-only", domain}
}
