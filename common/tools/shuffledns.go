package tools

import "context"

// Shuffledns wraps shuffledns for wordlist based subdomain bruteforce
type Shuffledns struct {
	Wordlist  string
	Resolvers string
}

func (s *Shuffledns) Name() string { return "shuffledns" }

func (s *Shuffledns) Enumerate(ctx context.Context, domain string) ([]string, error) {
	cmd := &Command{Binary: "shuffledns", Args: s.args(domain)}
	return cmd.Run(ctx)
}

func (s *Shuffledns) args(domain string) []string {
	return []string{"-d", domain, "-w", s.Wordlist, "-r", s.Resolvers, "-mode", "bruteforce", "-silent"}
}
