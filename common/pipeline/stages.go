package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/projectdiscovery/reconx/common/fileutil"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

const (
	StageSubdomains = "subdomain-discovery"
	StageExpansion  = "subdomain-expansion"
	StagePortScan   = "port-scan"
	StageURLs       = "url-construction"
	StageProbe      = "liveness-probe"
	StageTech       = "technology-detection"
	StageEndpoints  = "endpoint-discovery"
	StageVulnScan   = "vulnerability-scan"
	StageFinalize   = "finalization"
)

func failed(stage string, start time.Time, err error) StageResult {
	return StageResult{Stage: stage, Status: StatusFailed, Took: time.Since(start), Err: err}
}

// DiscoverSubdomains merges the output of all enumerators into the
// subdomains artifact, dropping duplicates. Zero discovered subdomains
// is fatal as every later stage would run on nothing.
func DiscoverSubdomains(ctx context.Context, enumerators []SubdomainEnumerator, store *Store, domain string) StageResult {
	start := time.Now()

	var errs error
	total := 0
	for _, enumerator := range enumerators {
		lines, err := enumerator.Enumerate(ctx, domain)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, enumerator.Name()))
		}
		added, err := store.AppendUnique(store.Subdomains, lines)
		if err != nil {
			return failed(StageSubdomains, start, err)
		}
		total += added
	}
	if total == 0 {
		errs = multierr.Append(errs, errors.Errorf("no subdomains found for %s", domain))
		return failed(StageSubdomains, start, errs)
	}

	status := StatusSuccess
	if errs != nil {
		status = StatusDegraded
	}
	return StageResult{Stage: StageSubdomains, Status: status, Count: total, Took: time.Since(start), Err: errs}
}

// ExpandSubdomains extends the subdomains artifact with the optional
// enumerators, still dropping lines already discovered.
func ExpandSubdomains(ctx context.Context, extras []SubdomainEnumerator, store *Store, domain string) StageResult {
	start := time.Now()

	if len(extras) == 0 {
		return StageResult{Stage: StageExpansion, Status: StatusSkipped, Took: time.Since(start)}
	}

	var errs error
	total := 0
	for _, enumerator := range extras {
		lines, err := enumerator.Enumerate(ctx, domain)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, enumerator.Name()))
		}
		added, err := store.AppendUnique(store.Subdomains, lines)
		if err != nil {
			return failed(StageExpansion, start, err)
		}
		total += added
	}

	status := StatusSuccess
	if errs != nil {
		status = StatusDegraded
	}
	return StageResult{Stage: StageExpansion, Status: status, Count: total, Took: time.Since(start), Err: errs}
}

// ScanPorts runs the port scanner over the discovered subdomains and
// writes the open host:port pairs.
func ScanPorts(ctx context.Context, scanner PortScanner, store *Store) StageResult {
	start := time.Now()

	hosts := store.ReadLines(store.Subdomains)
	if len(hosts) == 0 {
		if err := store.WriteLines(store.HostPorts, nil); err != nil {
			return failed(StagePortScan, start, err)
		}
		return StageResult{Stage: StagePortScan, Status: StatusDegraded, Took: time.Since(start), Err: errors.New("no hosts to scan")}
	}

	lines, err := scanner.Scan(ctx, hosts)
	if werr := store.WriteLines(store.HostPorts, lines); werr != nil {
		return failed(StagePortScan, start, werr)
	}
	if err != nil {
		return StageResult{Stage: StagePortScan, Status: StatusDegraded, Count: len(lines), Took: time.Since(start), Err: errors.Wrap(err, scanner.Name())}
	}
	if len(lines) == 0 {
		return StageResult{Stage: StagePortScan, Status: StatusDegraded, Took: time.Since(start), Err: errors.New("no open ports found")}
	}

	return StageResult{Stage: StagePortScan, Status: StatusSuccess, Count: len(lines), Took: time.Since(start)}
}

// BuildURLs expands every host:port pair into the http and https
// candidate urls for the prober.
func BuildURLs(store *Store) StageResult {
	start := time.Now()

	hostPorts := store.ReadLines(store.HostPorts)
	var urls []string
	for _, hostPort := range hostPorts {
		urls = append(urls, "http://"+hostPort, "https://"+hostPort)
	}
	if err := store.WriteLines(store.CandidateURLs, urls); err != nil {
		return failed(StageURLs, start, err)
	}
	if len(urls) == 0 {
		return StageResult{Stage: StageURLs, Status: StatusDegraded, Took: time.Since(start), Err: errors.New("no urls to build")}
	}

	return StageResult{Stage: StageURLs, Status: StatusSuccess, Count: len(urls), Took: time.Since(start)}
}

// ProbeLiveness keeps the candidate urls answering with one of the
// allowed status codes.
func ProbeLiveness(ctx context.Context, prober Prober, store *Store, statusCodes []int) StageResult {
	start := time.Now()

	urls := store.ReadLines(store.CandidateURLs)
	if len(urls) == 0 {
		if err := store.WriteLines(store.Alive, nil); err != nil {
			return failed(StageProbe, start, err)
		}
		return StageResult{Stage: StageProbe, Status: StatusDegraded, Took: time.Since(start), Err: errors.New("no urls to probe")}
	}

	lines, err := prober.Probe(ctx, urls, statusCodes)
	if werr := store.WriteLines(store.Alive, lines); werr != nil {
		return failed(StageProbe, start, werr)
	}
	if err != nil {
		return StageResult{Stage: StageProbe, Status: StatusDegraded, Count: len(lines), Took: time.Since(start), Err: errors.Wrap(err, prober.Name())}
	}
	if len(lines) == 0 {
		return StageResult{Stage: StageProbe, Status: StatusDegraded, Took: time.Since(start), Err: errors.New("no alive urls found")}
	}

	return StageResult{Stage: StageProbe, Status: StatusSuccess, Count: len(lines), Took: time.Since(start)}
}

// DetectTechnologies fingerprints the alive urls into outputFile. A nil
// detector means the stage was disabled.
func DetectTechnologies(ctx context.Context, detector TechDetector, store *Store, outputFile string) StageResult {
	start := time.Now()

	if detector == nil {
		return StageResult{Stage: StageTech, Status: StatusSkipped, Took: time.Since(start)}
	}

	urls := store.ReadLines(store.Alive)
	if len(urls) == 0 {
		if err := fileutil.WriteLines(outputFile, nil); err != nil {
			return StageResult{Stage: StageTech, Status: StatusDegraded, Took: time.Since(start), Err: err}
		}
		return StageResult{Stage: StageTech, Status: StatusDegraded, Took: time.Since(start), Err: errors.New("no alive urls to fingerprint")}
	}

	lines, err := detector.Detect(ctx, urls)
	var errs error
	if err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, detector.Name()))
	}
	if err := fileutil.WriteLines(outputFile, lines); err != nil {
		errs = multierr.Append(errs, err)
	}

	status := StatusSuccess
	if errs != nil {
		status = StatusDegraded
	}
	return StageResult{Stage: StageTech, Status: status, Count: len(lines), Took: time.Since(start), Err: errs}
}

// CollectEndpoints concatenates the output of all collectors into the
// endpoints artifact. Duplicates are kept, the finalizer removes them.
func CollectEndpoints(ctx context.Context, collectors []EndpointCollector, store *Store, domain string) StageResult {
	start := time.Now()

	// the finalizer always reads this artifact, even when every
	// collector is disabled
	if err := store.WriteLines(store.Endpoints, nil); err != nil {
		return failed(StageEndpoints, start, err)
	}
	if len(collectors) == 0 {
		return StageResult{Stage: StageEndpoints, Status: StatusSkipped, Took: time.Since(start)}
	}

	alive := store.ReadLines(store.Alive)
	if len(alive) == 0 {
		return StageResult{Stage: StageEndpoints, Status: StatusDegraded, Took: time.Since(start), Err: errors.New("no alive urls to mine")}
	}

	var errs error
	total := 0
	for _, collector := range collectors {
		lines, err := collector.Collect(ctx, domain, alive)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, collector.Name()))
		}
		if err := store.AppendLines(store.Endpoints, lines); err != nil {
			return failed(StageEndpoints, start, err)
		}
		total += len(lines)
	}
	if total == 0 && errs == nil {
		errs = errors.New("no endpoints discovered")
	}

	status := StatusSuccess
	if errs != nil {
		status = StatusDegraded
	}
	return StageResult{Stage: StageEndpoints, Status: status, Count: total, Took: time.Since(start), Err: errs}
}

// ScanVulnerabilities runs every configured scan against its selected
// targets and writes one report file per scanner.
func ScanVulnerabilities(ctx context.Context, scans []VulnScan, store *Store) StageResult {
	start := time.Now()

	if len(scans) == 0 {
		return StageResult{Stage: StageVulnScan, Status: StatusSkipped, Took: time.Since(start)}
	}

	var errs error
	total := 0
	for _, scan := range scans {
		var targets []string
		switch scan.Input {
		case TargetEndpoints:
			targets = store.ReadLines(store.Endpoints)
		default:
			targets = store.ReadLines(store.Alive)
		}

		var lines []string
		if len(targets) > 0 {
			var err error
			lines, err = scan.Scanner.Scan(ctx, targets)
			if err != nil {
				errs = multierr.Append(errs, errors.Wrap(err, scan.Scanner.Name()))
			}
		} else {
			errs = multierr.Append(errs, errors.Errorf("%s: no targets to scan", scan.Scanner.Name()))
		}
		if err := fileutil.WriteLines(scan.Output, lines); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, scan.Scanner.Name()))
		}
		total += len(lines)
	}

	status := StatusSuccess
	if errs != nil {
		status = StatusDegraded
	}
	return StageResult{Stage: StageVulnScan, Status: status, Count: total, Took: time.Since(start), Err: errs}
}

// Finalize canonicalizes the mined endpoints through the normalizer and
// writes the sorted, deduplicated result to outputFile. Running it over
// its own output produces identical bytes.
func Finalize(ctx context.Context, normalizer Normalizer, store *Store, outputFile string) StageResult {
	start := time.Now()

	endpoints := store.ReadLines(store.Endpoints)
	if len(endpoints) == 0 {
		if err := fileutil.WriteLines(outputFile, nil); err != nil {
			return failed(StageFinalize, start, err)
		}
		return StageResult{Stage: StageFinalize, Status: StatusDegraded, Took: time.Since(start), Err: errors.New("no endpoints discovered")}
	}

	lines, err := normalizer.Normalize(ctx, endpoints)
	var errs error
	if err != nil {
		// keep the raw endpoints when the normalizer fails
		lines = endpoints
		errs = errors.Wrap(err, normalizer.Name())
	}

	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			normalized = append(normalized, line)
		}
	}
	slices.Sort(normalized)
	normalized = slices.Compact(normalized)

	if err := fileutil.WriteLines(outputFile, normalized); err != nil {
		return failed(StageFinalize, start, err)
	}

	status := StatusSuccess
	if errs != nil {
		status = StatusDegraded
	}
	return StageResult{Stage: StageFinalize, Status: status, Count: len(normalized), Took: time.Since(start), Err: errs}
}
