package tools

import "context"

// Paramspider wraps the paramspider parameter miner
type Paramspider struct{}

func (p *Paramspider) Name() string { return "paramspider" }

func (p *Paramspider) Collect(ctx context.Context, domain string, alive []string) ([]string, error) {
	list, cleanup, err := TempFile(hostsFromURLs(alive, domain))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cmd := &Command{Binary: "paramspider", Args: p.args(list)}
	return cmd.Run(ctx)
}

func (p *Paramspider) args(list string) []string {
	return []string{"-l", list, "-s"}
}
