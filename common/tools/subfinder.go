package tools

import "context"

// Subfinder wraps the subfinder passive subdomain enumerator
type Subfinder struct{}

func (s *Subfinder) Name() string { return "subfinder" }

func (s *Subfinder) Enumerate(ctx context.Context, domain string) ([]string, error) {
	cmd := &Command{Binary: "subfinder", Args: s.args(domain)}
	return cmd.Run(ctx)
}

func (s *Subfinder) args(domain string) []string {
	return []string{"-d", domain, "-all", "-silent"}
}
