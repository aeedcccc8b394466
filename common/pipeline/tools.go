package pipeline

import "context"

// SubdomainEnumerator discovers subdomains of a root domain
type SubdomainEnumerator interface {
	Name() string
	Enumerate(ctx context.Context, domain string) ([]string, error)
}

// PortScanner finds open ports on a list of hosts and returns host:port pairs
type PortScanner interface {
	Name() string
	Scan(ctx context.Context, hosts []string) ([]string, error)
}

// Prober filters candidate urls down to the alive ones matching the
// allowed status codes
type Prober interface {
	Name() string
	Probe(ctx context.Context, urls []string, statusCodes []int) ([]string, error)
}

// TechDetector fingerprints the technologies behind alive urls
type TechDetector interface {
	Name() string
	Detect(ctx context.Context, urls []string) ([]string, error)
}

// EndpointCollector mines urls and parameters for a domain from alive hosts
type EndpointCollector interface {
	Name() string
	Collect(ctx context.Context, domain string, alive []string) ([]string, error)
}

// VulnScanner runs vulnerability checks against a list of targets
type VulnScanner interface {
	Name() string
	Scan(ctx context.Context, targets []string) ([]string, error)
}

// Normalizer canonicalizes and deduplicates a list of urls
type Normalizer interface {
	Name() string
	Normalize(ctx context.Context, urls []string) ([]string, error)
}

type VulnTarget int

const (
	// TargetAlive feeds the scanner the probed alive urls
	TargetAlive VulnTarget = iota
	// TargetEndpoints feeds the scanner the mined endpoints
	TargetEndpoints
)

// VulnScan binds a scanner to its input selection and output file
type VulnScan struct {
	Scanner VulnScanner
	Input   VulnTarget
	Output  string
}
