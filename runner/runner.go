package runner

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/logrusorgru/aurora"

	"github.com/projectdiscovery/clistats"
	// automatic fd max increase if running as root
	_ "github.com/projectdiscovery/fdmax/autofdmax"
	"github.com/projectdiscovery/goconfig"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/reconx/common/fileutil"
	"github.com/projectdiscovery/reconx/common/pipeline"
	"github.com/projectdiscovery/reconx/common/slice"
	"github.com/projectdiscovery/reconx/common/tools"
	"github.com/rs/xid"
)

const (
	statsDisplayInterval = 5
	totalStages          = 9
)

// Runner is a client for running the recon pipeline.
type Runner struct {
	options *Options
	checker *tools.Checker
	toolset toolset
	stats   clistats.StatisticsClient
	workdir string
}

// toolset holds the external tools selected for this run, wired into
// the pipeline stages
type toolset struct {
	enumerators  []pipeline.SubdomainEnumerator
	extras       []pipeline.SubdomainEnumerator
	portScanner  pipeline.PortScanner
	prober       pipeline.Prober
	techDetector pipeline.TechDetector
	collectors   []pipeline.EndpointCollector
	vulnScans    []pipeline.VulnScan
	normalizer   pipeline.Normalizer
}

// New creates a new client for running the recon pipeline.
func New(options *Options) (*Runner, error) {
	runner := &Runner{
		options: options,
		checker: tools.NewChecker(),
	}
	var err error
	if options.ShowStatistics {
		runner.stats, err = clistats.New()
		if err != nil {
			return nil, err
		}
	}

	return runner, nil
}

// RunEnumeration runs the recon stages on the target domain
func (r *Runner) RunEnumeration() {
	r.verifyTools()

	// Try to create output folder if it doesnt exist
	outputFolder := filepath.Dir(r.options.Output)
	if !fileutil.FolderExists(outputFolder) {
		if err := os.MkdirAll(outputFolder, os.ModePerm); err != nil {
			gologger.Fatal().Msgf("Could not create output directory '%s': %s\n", outputFolder, err)
		}
	}

	r.workdir = filepath.Join(os.TempDir(), "reconx-"+xid.New().String())
	if err := os.MkdirAll(r.workdir, 0700); err != nil {
		gologger.Fatal().Msgf("Could not create working directory '%s': %s\n", r.workdir, err)
	}

	store, err := pipeline.NewStore(r.workdir)
	if err != nil {
		r.removeWorkdir()
		gologger.Fatal().Msgf("Could not create artifact store: %s\n", err)
	}

	// gologger.Fatal skips deferred calls, clean up explicitly
	fatal := func(format string, args ...interface{}) {
		store.Close()
		r.removeWorkdir()
		gologger.Fatal().Msgf(format, args...)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		gologger.Warning().Msgf("Interrupt received, stopping the pipeline\n")
		cancel()
	}()

	r.buildToolset()
	r.saveConfig()

	if r.options.ShowStatistics {
		r.stats.AddStatic("domain", r.options.Domain)
		r.stats.AddStatic("startedAt", time.Now())
		r.stats.AddCounter("stages", 0)
		r.stats.AddCounter("total", uint64(totalStages))
		r.stats.AddCounter("lines", 0)
		if err := r.stats.Start(makePrintCallback(), time.Duration(statsDisplayInterval)*time.Second); err != nil {
			gologger.Warning().Msgf("Could not create statistic: %s\n", err)
		}
	}

	startedAt := time.Now()
	gologger.Info().Msgf("Running recon pipeline for %s\n", r.options.Domain)

	stages := []func() pipeline.StageResult{
		func() pipeline.StageResult {
			return pipeline.DiscoverSubdomains(ctx, r.toolset.enumerators, store, r.options.Domain)
		},
		func() pipeline.StageResult {
			return pipeline.ExpandSubdomains(ctx, r.toolset.extras, store, r.options.Domain)
		},
		func() pipeline.StageResult {
			return pipeline.ScanPorts(ctx, r.toolset.portScanner, store)
		},
		func() pipeline.StageResult {
			return pipeline.BuildURLs(store)
		},
		func() pipeline.StageResult {
			return pipeline.ProbeLiveness(ctx, r.toolset.prober, store, r.options.matchStatusCodes)
		},
		func() pipeline.StageResult {
			return pipeline.DetectTechnologies(ctx, r.toolset.techDetector, store, r.sideFile("technologies"))
		},
		func() pipeline.StageResult {
			return pipeline.CollectEndpoints(ctx, r.toolset.collectors, store, r.options.Domain)
		},
		func() pipeline.StageResult {
			return pipeline.ScanVulnerabilities(ctx, r.toolset.vulnScans, store)
		},
		func() pipeline.StageResult {
			return pipeline.Finalize(ctx, r.toolset.normalizer, store, r.options.Output)
		},
	}

	for _, stage := range stages {
		result := stage()
		if result.Status == pipeline.StatusFailed {
			fatal("Pipeline failed at %s: %s\n", result.Stage, result.Err)
		}
		r.report(result)
		if ctx.Err() != nil {
			fatal("Pipeline interrupted\n")
		}
		if r.options.ShowStatistics {
			r.stats.IncrementCounter("stages", 1)
			r.stats.IncrementCounter("lines", result.Count)
		}
	}

	store.Close()
	r.printSummary(time.Since(startedAt))
}

// verifyTools makes sure every required binary is present and downgrades
// the optional stages whose tool is not installed
func (r *Runner) verifyTools() {
	missingRequired, missingOptional := r.checker.Verify()
	if len(missingRequired) > 0 {
		gologger.Fatal().Msgf("Missing required tools: %s\n", strings.Join(missingRequired, ", "))
	}

	missing := func(name string) bool {
		return slice.StringSliceContains(missingOptional, name)
	}
	if r.options.Amass && missing("amass") {
		gologger.Warning().Msgf("amass is not installed, skipping amass enumeration\n")
		r.options.Amass = false
	}
	if r.options.Bruteforce && missing("shuffledns") {
		gologger.Warning().Msgf("shuffledns is not installed, skipping bruteforce\n")
		r.options.Bruteforce = false
	}
	if !r.options.NoParamspider && missing("paramspider") {
		gologger.Warning().Msgf("paramspider is not installed, skipping parameter mining\n")
		r.options.NoParamspider = true
	}
	if !r.options.NoHakrawler && missing("hakrawler") {
		gologger.Warning().Msgf("hakrawler is not installed, skipping crawling\n")
		r.options.NoHakrawler = true
	}
	if !r.options.NoURLFinder && missing("urlfinder") {
		gologger.Warning().Msgf("urlfinder is not installed, skipping passive url collection\n")
		r.options.NoURLFinder = true
	}
	if r.options.Nuclei && missing("nuclei") {
		gologger.Warning().Msgf("nuclei is not installed, skipping vulnerability scan\n")
		r.options.Nuclei = false
	}
	if r.options.Dalfox && missing("dalfox") {
		gologger.Warning().Msgf("dalfox is not installed, skipping xss scan\n")
		r.options.Dalfox = false
	}
}

// buildToolset wires the external tools into the pipeline stages
// according to the options
func (r *Runner) buildToolset() {
	r.toolset.enumerators = []pipeline.SubdomainEnumerator{&tools.Subfinder{}, &tools.Assetfinder{}}
	if r.options.Amass {
		r.toolset.extras = append(r.toolset.extras, &tools.Amass{})
	}
	if r.options.Bruteforce {
		r.toolset.extras = append(r.toolset.extras, &tools.Shuffledns{Wordlist: r.options.Wordlist, Resolvers: r.options.Resolvers})
	}

	r.toolset.portScanner = &tools.Naabu{TopPorts: r.options.TopPorts}

	httpx := &tools.HTTPX{Timeout: r.options.Timeout, Headers: r.options.CustomHeaders, RandomAgent: r.options.RandomAgent}
	r.toolset.prober = httpx
	if !r.options.NoTech {
		r.toolset.techDetector = httpx
	}

	if !r.options.NoParamspider {
		r.toolset.collectors = append(r.toolset.collectors, &tools.Paramspider{})
	}
	if !r.options.NoHakrawler {
		r.toolset.collectors = append(r.toolset.collectors, &tools.Hakrawler{Timeout: r.options.Timeout, Headers: r.options.CustomHeaders, RandomAgent: r.options.RandomAgent})
	}
	if !r.options.NoURLFinder {
		r.toolset.collectors = append(r.toolset.collectors, &tools.Urlfinder{})
	}

	if r.options.Nuclei {
		r.toolset.vulnScans = append(r.toolset.vulnScans, pipeline.VulnScan{
			Scanner: &tools.Nuclei{Severities: r.options.Severities, Headers: r.options.CustomHeaders},
			Input:   pipeline.TargetAlive,
			Output:  r.sideFile("nuclei"),
		})
	}
	if r.options.Dalfox {
		r.toolset.vulnScans = append(r.toolset.vulnScans, pipeline.VulnScan{
			Scanner: &tools.Dalfox{},
			Input:   pipeline.TargetEndpoints,
			Output:  r.sideFile("dalfox"),
		})
	}

	r.toolset.normalizer = &tools.Uro{}
}

// sideFile returns the path of an extra report living next to the main
// output file
func (r *Runner) sideFile(suffix string) string {
	return filepath.Join(filepath.Dir(r.options.Output), r.options.Domain+"-"+suffix+".txt")
}

// saveConfig snapshots the effective options next to the results
func (r *Runner) saveConfig() {
	configFile := filepath.Join(filepath.Dir(r.options.Output), r.options.Domain+"-run.cfg")
	if err := goconfig.Save(*r.options, configFile); err != nil {
		gologger.Warning().Msgf("Could not save run configuration '%s': %s\n", configFile, err)
		return
	}
	gologger.Verbose().Msgf("Saved run configuration to %s\n", configFile)
}

func (r *Runner) report(result pipeline.StageResult) {
	status := result.Status.String()
	if !r.options.NoColor {
		switch result.Status {
		case pipeline.StatusSuccess:
			status = aurora.Green(status).String()
		case pipeline.StatusDegraded:
			status = aurora.Yellow(status).String()
		case pipeline.StatusSkipped:
			status = aurora.Blue(status).String()
		}
	}

	took := result.Took.Round(time.Millisecond)
	switch result.Status {
	case pipeline.StatusSuccess:
		gologger.Info().Msgf("[%s] %s: %d entries (%s)\n", status, result.Stage, result.Count, took)
	case pipeline.StatusDegraded:
		gologger.Warning().Msgf("[%s] %s: %d entries (%s): %s\n", status, result.Stage, result.Count, took, result.Err)
	case pipeline.StatusSkipped:
		gologger.Verbose().Msgf("[%s] %s\n", status, result.Stage)
	}
}

func (r *Runner) printSummary(duration time.Duration) {
	endpoints := len(fileutil.LoadFile(r.options.Output))
	output := r.options.Output
	if !r.options.NoColor {
		output = aurora.Green(output).String()
	}
	gologger.Info().Msgf("Found %d unique endpoints for %s in %s\n", endpoints, r.options.Domain, clistats.FmtDuration(duration))
	gologger.Info().Msgf("Results written to %s\n", output)
}

func makePrintCallback() func(stats clistats.StatisticsClient) {
	builder := &strings.Builder{}
	return func(stats clistats.StatisticsClient) {
		builder.WriteRune('[')
		startedAt, _ := stats.GetStatic("startedAt")
		duration := time.Since(startedAt.(time.Time))
		builder.WriteString(clistats.FmtDuration(duration))
		builder.WriteRune(']')

		domain, _ := stats.GetStatic("domain")
		builder.WriteString(" | Domain: ")
		builder.WriteString(clistats.String(domain))

		stages, _ := stats.GetCounter("stages")
		total, _ := stats.GetCounter("total")
		builder.WriteString(" | Stages: ")
		builder.WriteString(clistats.String(stages))
		builder.WriteRune('/')
		builder.WriteString(clistats.String(total))

		lines, _ := stats.GetCounter("lines")
		builder.WriteString(" | Lines: ")
		builder.WriteString(clistats.String(lines))
		builder.WriteRune('\n')

		fmt.Fprintf(os.Stderr, "%s", builder.String())
		builder.Reset()
	}
}

// Close removes the temporary working directory
func (r *Runner) Close() {
	r.removeWorkdir()
}

func (r *Runner) removeWorkdir() {
	if r.workdir == "" {
		return
	}
	if err := os.RemoveAll(r.workdir); err != nil {
		gologger.Warning().Msgf("Could not remove working directory '%s': %s\n", r.workdir, err)
	}
	r.workdir = ""
}
