package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/projectdiscovery/reconx/common/fileutil"
	"github.com/stretchr/testify/require"
)

type fakeEnumerator struct {
	name  string
	lines []string
	err   error
	calls int
}

func (f *fakeEnumerator) Name() string { return f.name }

func (f *fakeEnumerator) Enumerate(ctx context.Context, domain string) ([]string, error) {
	f.calls++
	return f.lines, f.err
}

type fakeScanner struct {
	lines []string
	err   error
	hosts []string
}

func (f *fakeScanner) Name() string { return "fake-scanner" }

func (f *fakeScanner) Scan(ctx context.Context, hosts []string) ([]string, error) {
	f.hosts = hosts
	return f.lines, f.err
}

type fakeProber struct {
	lines []string
	err   error
	codes []int
}

func (f *fakeProber) Name() string { return "fake-prober" }

func (f *fakeProber) Probe(ctx context.Context, urls []string, statusCodes []int) ([]string, error) {
	f.codes = statusCodes
	return f.lines, f.err
}

type fakeDetector struct {
	lines []string
	err   error
}

func (f *fakeDetector) Name() string { return "fake-detector" }

func (f *fakeDetector) Detect(ctx context.Context, urls []string) ([]string, error) {
	return f.lines, f.err
}

type fakeCollector struct {
	name  string
	lines []string
	err   error
	calls int
}

func (f *fakeCollector) Name() string { return f.name }

func (f *fakeCollector) Collect(ctx context.Context, domain string, alive []string) ([]string, error) {
	f.calls++
	return f.lines, f.err
}

type fakeVulnScanner struct {
	name    string
	lines   []string
	err     error
	targets []string
}

func (f *fakeVulnScanner) Name() string { return f.name }

func (f *fakeVulnScanner) Scan(ctx context.Context, targets []string) ([]string, error) {
	f.targets = targets
	return f.lines, f.err
}

type fakeNormalizer struct {
	lines []string
	err   error
	calls int
}

func (f *fakeNormalizer) Name() string { return "fake-normalizer" }

func (f *fakeNormalizer) Normalize(ctx context.Context, urls []string) ([]string, error) {
	f.calls++
	if f.lines != nil || f.err != nil {
		return f.lines, f.err
	}
	return urls, nil
}

func newTestStore(t *testing.T) *Store {
	store, err := NewStore(t.TempDir())
	require.Nil(t, err, "could not create artifact store")
	t.Cleanup(store.Close)
	return store
}

func TestDiscoverSubdomainsMerge(t *testing.T) {
	store := newTestStore(t)
	enumerators := []SubdomainEnumerator{
		&fakeEnumerator{name: "first", lines: []string{"a.example.com", "b.example.com"}},
		&fakeEnumerator{name: "second", lines: []string{"b.example.com", "c.example.com"}},
	}

	result := DiscoverSubdomains(context.Background(), enumerators, store, "example.com")
	require.Equal(t, StatusSuccess, result.Status, "could not get success status")
	require.Equal(t, 3, result.Count, "could not get deduplicated count")
	require.Equal(t, []string{"a.example.com", "b.example.com", "c.example.com"}, store.ReadLines(store.Subdomains), "could not get merged subdomains")
}

func TestDiscoverSubdomainsEmpty(t *testing.T) {
	store := newTestStore(t)
	enumerators := []SubdomainEnumerator{&fakeEnumerator{name: "first"}}

	result := DiscoverSubdomains(context.Background(), enumerators, store, "example.com")
	require.Equal(t, StatusFailed, result.Status, "could not get failed status on zero subdomains")
	require.ErrorContains(t, result.Err, "no subdomains found", "could not get zero subdomains error")
}

func TestDiscoverSubdomainsPartialFailure(t *testing.T) {
	store := newTestStore(t)
	enumerators := []SubdomainEnumerator{
		&fakeEnumerator{name: "first", lines: []string{"a.example.com"}},
		&fakeEnumerator{name: "second", err: os.ErrNotExist},
	}

	result := DiscoverSubdomains(context.Background(), enumerators, store, "example.com")
	require.Equal(t, StatusDegraded, result.Status, "could not get degraded status on tool failure")
	require.Equal(t, 1, result.Count, "could not keep results of working enumerator")
	require.ErrorContains(t, result.Err, "second", "could not get failing enumerator name")
}

func TestExpandSubdomains(t *testing.T) {
	store := newTestStore(t)
	seed := []SubdomainEnumerator{&fakeEnumerator{name: "seed", lines: []string{"a.example.com"}}}
	result := DiscoverSubdomains(context.Background(), seed, store, "example.com")
	require.Equal(t, StatusSuccess, result.Status, "could not seed subdomains")

	result = ExpandSubdomains(context.Background(), nil, store, "example.com")
	require.Equal(t, StatusSkipped, result.Status, "could not skip expansion without extras")

	extras := []SubdomainEnumerator{&fakeEnumerator{name: "extra", lines: []string{"a.example.com", "d.example.com"}}}
	result = ExpandSubdomains(context.Background(), extras, store, "example.com")
	require.Equal(t, StatusSuccess, result.Status, "could not expand subdomains")
	require.Equal(t, 1, result.Count, "could not dedupe against earlier stage")
	require.Equal(t, []string{"a.example.com", "d.example.com"}, store.ReadLines(store.Subdomains), "could not get expanded subdomains")
}

func TestScanPorts(t *testing.T) {
	store := newTestStore(t)
	_, err := store.AppendUnique(store.Subdomains, []string{"a.example.com"})
	require.Nil(t, err, "could not write subdomains")

	scanner := &fakeScanner{lines: []string{"a.example.com:80", "a.example.com:443"}}
	result := ScanPorts(context.Background(), scanner, store)
	require.Equal(t, StatusSuccess, result.Status, "could not get success status")
	require.Equal(t, []string{"a.example.com"}, scanner.hosts, "could not pass subdomains to scanner")
	require.Equal(t, []string{"a.example.com:80", "a.example.com:443"}, store.ReadLines(store.HostPorts), "could not get host port pairs")
}

func TestScanPortsNoHosts(t *testing.T) {
	store := newTestStore(t)
	result := ScanPorts(context.Background(), &fakeScanner{}, store)
	require.Equal(t, StatusDegraded, result.Status, "could not get degraded status without hosts")
	require.Empty(t, store.ReadLines(store.HostPorts), "could not get empty artifact")
}

func TestScanPortsPartialFailure(t *testing.T) {
	store := newTestStore(t)
	_, err := store.AppendUnique(store.Subdomains, []string{"a.example.com"})
	require.Nil(t, err, "could not write subdomains")

	scanner := &fakeScanner{lines: []string{"a.example.com:80"}, err: os.ErrClosed}
	result := ScanPorts(context.Background(), scanner, store)
	require.Equal(t, StatusDegraded, result.Status, "could not get degraded status on scanner failure")
	require.Equal(t, []string{"a.example.com:80"}, store.ReadLines(store.HostPorts), "could not keep partial scanner output")
}

func TestBuildURLs(t *testing.T) {
	store := newTestStore(t)
	err := store.WriteLines(store.HostPorts, []string{"a.example.com:80", "b.example.com:8443"})
	require.Nil(t, err, "could not write host ports")

	result := BuildURLs(store)
	require.Equal(t, StatusSuccess, result.Status, "could not get success status")
	expected := []string{
		"http://a.example.com:80",
		"https://a.example.com:80",
		"http://b.example.com:8443",
		"https://b.example.com:8443",
	}
	require.Equal(t, expected, store.ReadLines(store.CandidateURLs), "could not get candidate urls")
}

func TestProbeLiveness(t *testing.T) {
	store := newTestStore(t)
	err := store.WriteLines(store.CandidateURLs, []string{"http://a.example.com:80", "https://a.example.com:80"})
	require.Nil(t, err, "could not write candidate urls")

	prober := &fakeProber{lines: []string{"http://a.example.com:80"}}
	result := ProbeLiveness(context.Background(), prober, store, []int{200, 301})
	require.Equal(t, StatusSuccess, result.Status, "could not get success status")
	require.Equal(t, []int{200, 301}, prober.codes, "could not pass status codes to prober")
	require.Equal(t, []string{"http://a.example.com:80"}, store.ReadLines(store.Alive), "could not get alive urls")
}

func TestDetectTechnologies(t *testing.T) {
	store := newTestStore(t)
	outputFile := filepath.Join(t.TempDir(), "example.com-technologies.txt")

	result := DetectTechnologies(context.Background(), nil, store, outputFile)
	require.Equal(t, StatusSkipped, result.Status, "could not skip disabled detection")

	err := store.WriteLines(store.Alive, []string{"http://a.example.com:80"})
	require.Nil(t, err, "could not write alive urls")

	detector := &fakeDetector{lines: []string{"http://a.example.com:80 [200] [nginx]"}}
	result = DetectTechnologies(context.Background(), detector, store, outputFile)
	require.Equal(t, StatusSuccess, result.Status, "could not get success status")

	data, err := os.ReadFile(outputFile)
	require.Nil(t, err, "could not read technologies file")
	require.Equal(t, "http://a.example.com:80 [200] [nginx]\n", string(data), "could not get technologies content")
}

func TestDetectTechnologiesNoAlive(t *testing.T) {
	store := newTestStore(t)
	outputFile := filepath.Join(t.TempDir(), "example.com-technologies.txt")

	result := DetectTechnologies(context.Background(), &fakeDetector{}, store, outputFile)
	require.Equal(t, StatusDegraded, result.Status, "could not get degraded status without alive urls")

	data, err := os.ReadFile(outputFile)
	require.Nil(t, err, "could not read technologies file")
	require.Empty(t, data, "could not get empty technologies file")
}

func TestCollectEndpoints(t *testing.T) {
	store := newTestStore(t)
	err := store.WriteLines(store.Alive, []string{"http://a.example.com:80"})
	require.Nil(t, err, "could not write alive urls")

	collectors := []EndpointCollector{
		&fakeCollector{name: "first", lines: []string{"http://a.example.com/?q=1", "http://a.example.com/login"}},
		&fakeCollector{name: "second", lines: []string{"http://a.example.com/login"}},
	}
	result := CollectEndpoints(context.Background(), collectors, store, "example.com")
	require.Equal(t, StatusSuccess, result.Status, "could not get success status")
	require.Equal(t, 3, result.Count, "could not get concatenated count")

	expected := []string{
		"http://a.example.com/?q=1",
		"http://a.example.com/login",
		"http://a.example.com/login",
	}
	require.Equal(t, expected, store.ReadLines(store.Endpoints), "could not keep duplicate endpoints")
}

func TestCollectEndpointsSkipped(t *testing.T) {
	store := newTestStore(t)
	result := CollectEndpoints(context.Background(), nil, store, "example.com")
	require.Equal(t, StatusSkipped, result.Status, "could not skip without collectors")
	require.FileExists(t, store.Endpoints.Path, "could not get empty endpoints artifact")
}

func TestCollectEndpointsNoAlive(t *testing.T) {
	store := newTestStore(t)
	collector := &fakeCollector{name: "first", lines: []string{"http://a.example.com/?q=1"}}
	result := CollectEndpoints(context.Background(), []EndpointCollector{collector}, store, "example.com")
	require.Equal(t, StatusDegraded, result.Status, "could not get degraded status without alive urls")
	require.Equal(t, 0, collector.calls, "could not avoid calling collector without alive urls")
}

func TestScanVulnerabilities(t *testing.T) {
	store := newTestStore(t)
	err := store.WriteLines(store.Alive, []string{"http://a.example.com:80"})
	require.Nil(t, err, "could not write alive urls")
	err = store.WriteLines(store.Endpoints, []string{"http://a.example.com/?q=1"})
	require.Nil(t, err, "could not write endpoints")

	dir := t.TempDir()
	first := &fakeVulnScanner{name: "first", lines: []string{"[cve] http://a.example.com:80"}}
	second := &fakeVulnScanner{name: "second"}
	scans := []VulnScan{
		{Scanner: first, Input: TargetAlive, Output: filepath.Join(dir, "first.txt")},
		{Scanner: second, Input: TargetEndpoints, Output: filepath.Join(dir, "second.txt")},
	}

	result := ScanVulnerabilities(context.Background(), scans, store)
	require.Equal(t, StatusSuccess, result.Status, "could not get success status")
	require.Equal(t, []string{"http://a.example.com:80"}, first.targets, "could not select alive targets")
	require.Equal(t, []string{"http://a.example.com/?q=1"}, second.targets, "could not select endpoint targets")

	data, err := os.ReadFile(scans[0].Output)
	require.Nil(t, err, "could not read first report")
	require.Equal(t, "[cve] http://a.example.com:80\n", string(data), "could not get first report content")
	require.FileExists(t, scans[1].Output, "could not get empty second report")
}

func TestScanVulnerabilitiesSkipped(t *testing.T) {
	store := newTestStore(t)
	result := ScanVulnerabilities(context.Background(), nil, store)
	require.Equal(t, StatusSkipped, result.Status, "could not skip without scans")
}

func TestFinalize(t *testing.T) {
	store := newTestStore(t)
	err := store.WriteLines(store.Endpoints, []string{
		"http://b.example.com/login",
		"http://a.example.com/?q=1",
		"http://b.example.com/login",
	})
	require.Nil(t, err, "could not write endpoints")

	outputFile := filepath.Join(t.TempDir(), "example.com.txt")
	result := Finalize(context.Background(), &fakeNormalizer{}, store, outputFile)
	require.Equal(t, StatusSuccess, result.Status, "could not get success status")
	require.Equal(t, 2, result.Count, "could not get deduplicated count")

	data, err := os.ReadFile(outputFile)
	require.Nil(t, err, "could not read output file")
	require.Equal(t, "http://a.example.com/?q=1\nhttp://b.example.com/login\n", string(data), "could not get sorted unique output")
}

func TestFinalizeIdempotent(t *testing.T) {
	store := newTestStore(t)
	err := store.WriteLines(store.Endpoints, []string{
		"http://b.example.com/login",
		"http://a.example.com/?q=1",
		"http://b.example.com/login",
	})
	require.Nil(t, err, "could not write endpoints")

	outputFile := filepath.Join(t.TempDir(), "example.com.txt")
	result := Finalize(context.Background(), &fakeNormalizer{}, store, outputFile)
	require.Equal(t, StatusSuccess, result.Status, "could not finalize endpoints")

	firstPass, err := os.ReadFile(outputFile)
	require.Nil(t, err, "could not read first pass output")

	err = store.WriteLines(store.Endpoints, fileutil.LoadFile(outputFile))
	require.Nil(t, err, "could not feed output back as endpoints")

	result = Finalize(context.Background(), &fakeNormalizer{}, store, outputFile)
	require.Equal(t, StatusSuccess, result.Status, "could not finalize second pass")

	secondPass, err := os.ReadFile(outputFile)
	require.Nil(t, err, "could not read second pass output")
	require.Equal(t, firstPass, secondPass, "could not get identical bytes on second pass")
}

func TestFinalizeEmpty(t *testing.T) {
	store := newTestStore(t)
	err := store.WriteLines(store.Endpoints, nil)
	require.Nil(t, err, "could not write empty endpoints")

	outputFile := filepath.Join(t.TempDir(), "example.com.txt")
	normalizer := &fakeNormalizer{}
	result := Finalize(context.Background(), normalizer, store, outputFile)
	require.Equal(t, StatusDegraded, result.Status, "could not get degraded status on empty endpoints")
	require.Equal(t, 0, normalizer.calls, "could not avoid calling normalizer on empty endpoints")

	data, err := os.ReadFile(outputFile)
	require.Nil(t, err, "could not read output file")
	require.Empty(t, data, "could not get empty output file")
}

func TestFinalizeNormalizerFailure(t *testing.T) {
	store := newTestStore(t)
	err := store.WriteLines(store.Endpoints, []string{"http://b.example.com/login", "http://a.example.com/?q=1"})
	require.Nil(t, err, "could not write endpoints")

	outputFile := filepath.Join(t.TempDir(), "example.com.txt")
	normalizer := &fakeNormalizer{err: os.ErrPermission}
	result := Finalize(context.Background(), normalizer, store, outputFile)
	require.Equal(t, StatusDegraded, result.Status, "could not get degraded status on normalizer failure")

	data, err := os.ReadFile(outputFile)
	require.Nil(t, err, "could not read output file")
	require.Equal(t, "http://a.example.com/?q=1\nhttp://b.example.com/login\n", string(data), "could not fall back to raw endpoints")
}
