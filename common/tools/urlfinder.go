package tools

import "context"

// Urlfinder wraps the urlfinder passive url collector. It works from
// the root domain, the alive urls are not needed.
type Urlfinder struct{}

func (u *Urlfinder) Name() string { return "urlfinder" }

func (u *Urlfinder) Collect(ctx context.Context, domain string, alive []string) ([]string, error) {
	cmd := &Command{Binary: "urlfinder", Args: u.args(domain)}
	return cmd.Run(ctx)
}

func (u *Urlfinder) args(domain string) []string {
	return []string{"-d", domain, "-all", "-silent"}
}
