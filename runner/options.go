package runner

import (
	"flag"
	"os"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/reconx/common/customheader"
	"github.com/projectdiscovery/reconx/common/fileutil"
	"github.com/projectdiscovery/reconx/common/severity"
	"github.com/projectdiscovery/reconx/common/stringz"
	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// Options contains configuration options for reconx.
type Options struct {
	CustomHeaders    customheader.CustomHeaders
	Severities       severity.Severities
	Domain           string
	Output           string
	MatchStatusCodes string
	matchStatusCodes []int
	Wordlist         string
	Resolvers        string
	TopPorts         int
	Timeout          int
	Amass            bool
	Bruteforce       bool
	NoParamspider    bool
	NoHakrawler      bool
	NoURLFinder      bool
	NoTech           bool
	Nuclei           bool
	Dalfox           bool
	RandomAgent      bool
	ShowStatistics   bool
	Silent           bool
	Verbose          bool
	Debug            bool
	NoColor          bool
	Version          bool
}

// ParseOptions parses the command line options for application
func ParseOptions() *Options {
	options := &Options{}

	flag.StringVar(&options.Domain, "d", "", "Target root domain")
	flag.StringVar(&options.Output, "o", "", "File to write the final endpoints to")
	flag.IntVar(&options.TopPorts, "top-ports", 100, "Number of naabu top ports to scan")
	flag.StringVar(&options.MatchStatusCodes, "mc", "200,204,301,302,307,401,403,405", "Status codes considered alive")
	flag.IntVar(&options.Timeout, "timeout", 10, "Timeout in seconds for the http tools")
	flag.Var(&options.CustomHeaders, "H", "Custom Header")
	flag.BoolVar(&options.RandomAgent, "random-agent", false, "Use randomly selected HTTP User-Agent header value")
	flag.BoolVar(&options.Amass, "amass", false, "Enable amass passive enumeration")
	flag.BoolVar(&options.Bruteforce, "bruteforce", false, "Enable shuffledns wordlist bruteforce")
	flag.StringVar(&options.Wordlist, "wordlist", "", "Wordlist for the shuffledns bruteforce")
	flag.StringVar(&options.Resolvers, "resolvers", "", "Resolvers for the shuffledns bruteforce")
	flag.BoolVar(&options.NoParamspider, "no-paramspider", false, "Skip paramspider parameter mining")
	flag.BoolVar(&options.NoHakrawler, "no-hakrawler", false, "Skip hakrawler crawling")
	flag.BoolVar(&options.NoURLFinder, "no-urlfinder", false, "Skip urlfinder passive url collection")
	flag.BoolVar(&options.NoTech, "no-tech", false, "Skip technology detection")
	flag.BoolVar(&options.Nuclei, "nuclei", false, "Run nuclei against the alive urls")
	flag.Var(&options.Severities, "severity", "Nuclei severities to report (supported: "+severity.GetSupportedSeverities().String()+")")
	flag.BoolVar(&options.Dalfox, "dalfox", false, "Run dalfox against the mined endpoints")
	flag.BoolVar(&options.ShowStatistics, "stats", false, "Display statistics about the running scan")
	flag.BoolVar(&options.Silent, "silent", false, "Silent mode")
	flag.BoolVar(&options.Verbose, "verbose", false, "Verbose Mode")
	flag.BoolVar(&options.Debug, "debug", false, "Debug mode")
	flag.BoolVar(&options.NoColor, "no-color", false, "No Color")
	flag.BoolVar(&options.Version, "version", false, "Show version of reconx")

	flag.Parse()

	// Read the inputs and configure the logging
	options.configureOutput()

	showBanner()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version)
		os.Exit(0)
	}

	options.validateOptions()

	return options
}

func printUsage() {
	gologger.Print().Msgf("usage: reconx -d <domain> -o <output-file> [flags]\n")
}

func (options *Options) validateOptions() {
	if options.Domain == "" {
		printUsage()
		gologger.Fatal().Msgf("Target domain is required (-d)\n")
	}
	if options.Output == "" {
		printUsage()
		gologger.Fatal().Msgf("Output file is required (-o)\n")
	}

	options.Domain = stringz.HostFromURL(options.Domain)
	if _, err := publicsuffix.Parse(options.Domain); err != nil {
		gologger.Fatal().Msgf("Invalid value for target domain: %s\n", err)
	}

	var err error
	if options.matchStatusCodes, err = stringz.StringToSliceInt(options.MatchStatusCodes); err != nil {
		gologger.Fatal().Msgf("Invalid value for match status code option: %s\n", err)
	}
	if len(options.matchStatusCodes) == 0 {
		gologger.Fatal().Msgf("Invalid value for match status code option: empty list\n")
	}
	if options.TopPorts <= 0 {
		gologger.Fatal().Msgf("Invalid value for top ports option: %d\n", options.TopPorts)
	}
	if options.Timeout <= 0 {
		gologger.Fatal().Msgf("Invalid value for timeout option: %d\n", options.Timeout)
	}

	if options.Bruteforce {
		if options.Wordlist == "" || options.Resolvers == "" {
			gologger.Fatal().Msgf("Bruteforce requires a wordlist (-wordlist) and resolvers (-resolvers)\n")
		}
		if !fileutil.FileExists(options.Wordlist) {
			gologger.Fatal().Msgf("File %s does not exist!\n", options.Wordlist)
		}
		if !fileutil.FileExists(options.Resolvers) {
			gologger.Fatal().Msgf("File %s does not exist!\n", options.Resolvers)
		}
	}

	if !options.Severities.IsEmpty() && !options.Nuclei {
		gologger.Warning().Msgf("Ignoring nuclei severities as nuclei is not enabled\n")
	}
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	// If the user desires verbose output, show verbose output
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}
