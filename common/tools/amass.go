package tools

import "context"

// Amass wraps amass in passive enumeration mode
type Amass struct{}

func (a *Amass) Name() string { return "amass" }

func (a *Amass) Enumerate(ctx context.Context, domain string) ([]string, error) {
	cmd := &Command{Binary: "amass", Args: a.args(domain)}
	return cmd.Run(ctx)
}

func (a *Amass) args(domain string) []string {
	return []string{"enum", "-passive", "-d", domain, "-silent"}
}
