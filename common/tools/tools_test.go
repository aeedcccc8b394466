package tools

import (
	"strings"
	"testing"

	"github.com/projectdiscovery/reconx/common/customheader"
	"github.com/projectdiscovery/reconx/common/severity"
	"github.com/stretchr/testify/require"
)

func TestEnumeratorArgs(t *testing.T) {
	require.Equal(t, []string{"-d", "example.com", "-all", "-silent"}, (&Subfinder{}).args("example.com"), "could not get subfinder args")
	require.Equal(t, []string{"--subs-only", "example.com"}, (&Assetfinder{}).args("example.com"), "could not get assetfinder args")
	require.Equal(t, []string{"enum", "-passive", "-d", "example.com", "-silent"}, (&Amass{}).args("example.com"), "could not get amass args")

	shuffledns := &Shuffledns{Wordlist: "words.txt", Resolvers: "resolvers.txt"}
	expected := []string{"-d", "example.com", "-w", "words.txt", "-r", "resolvers.txt", "-mode", "bruteforce", "-silent"}
	require.Equal(t, expected, shuffledns.args("example.com"), "could not get shuffledns args")
}

func TestNaabuArgs(t *testing.T) {
	naabu := &Naabu{TopPorts: 100}
	require.Equal(t, []string{"-list", "targets.txt", "-top-ports", "100", "-silent"}, naabu.args("targets.txt"), "could not get naabu args")
}

func TestHTTPXArgs(t *testing.T) {
	httpx := &HTTPX{Timeout: 10}

	expected := []string{"-list", "urls.txt", "-mc", "200,301", "-timeout", "10", "-silent", "-no-color"}
	require.Equal(t, expected, httpx.probeArgs("urls.txt", []int{200, 301}), "could not get probe args")

	expected = []string{"-list", "urls.txt", "-td", "-status-code", "-timeout", "10", "-silent", "-no-color"}
	require.Equal(t, expected, httpx.detectArgs("urls.txt"), "could not get detect args")
}

func TestHTTPXCustomHeaders(t *testing.T) {
	httpx := &HTTPX{Timeout: 5, Headers: customheader.CustomHeaders{"Cookie: session=1"}}
	args := httpx.probeArgs("urls.txt", []int{200})
	require.Contains(t, args, "-H", "could not get header flag")
	require.Contains(t, args, "Cookie: session=1", "could not get header value")
}

func TestHTTPXRandomAgentArgs(t *testing.T) {
	httpx := &HTTPX{Timeout: 10, RandomAgent: true}

	for _, args := range [][]string{httpx.probeArgs("urls.txt", []int{200}), httpx.detectArgs("urls.txt")} {
		require.Contains(t, args, "-H", "could not get header flag")
		var agent string
		for _, arg := range args {
			if strings.HasPrefix(arg, "User-Agent: ") {
				agent = arg
			}
		}
		require.NotEmpty(t, agent, "could not get generated user agent")
	}
}

func TestWithRandomAgent(t *testing.T) {
	headers := withRandomAgent(nil, true)
	require.Equal(t, 1, len(headers), "could not get generated header")
	require.True(t, strings.HasPrefix(headers[0], "User-Agent: "), "could not get user agent header")

	custom := customheader.CustomHeaders{"User-Agent: custom"}
	require.Equal(t, custom, withRandomAgent(custom, true), "could not keep explicit user agent")
	require.Empty(t, withRandomAgent(nil, false), "could not keep headers unchanged")
}

func TestParamspiderArgs(t *testing.T) {
	require.Equal(t, []string{"-l", "hosts.txt", "-s"}, (&Paramspider{}).args("hosts.txt"), "could not get paramspider args")
}

func TestHakrawlerArgs(t *testing.T) {
	require.Equal(t, []string{"-subs", "-u"}, (&Hakrawler{}).args(), "could not get minimal hakrawler args")

	hakrawler := &Hakrawler{Timeout: 10, Headers: customheader.CustomHeaders{"Cookie: a=b", "X-Test: 1"}}
	expected := []string{"-subs", "-u", "-timeout", "10", "-h", "Cookie: a=b;;X-Test: 1"}
	require.Equal(t, expected, hakrawler.args(), "could not get hakrawler args")
}

func TestUrlfinderArgs(t *testing.T) {
	require.Equal(t, []string{"-d", "example.com", "-all", "-silent"}, (&Urlfinder{}).args("example.com"), "could not get urlfinder args")
}

func TestNucleiArgs(t *testing.T) {
	require.Equal(t, []string{"-list", "targets.txt", "-silent", "-no-color"}, (&Nuclei{}).args("targets.txt"), "could not get nuclei args")

	var severities severity.Severities
	require.Nil(t, severities.Set("high,critical"), "could not set severities")
	nuclei := &Nuclei{Severities: severities}
	expected := []string{"-list", "targets.txt", "-silent", "-no-color", "-severity", "high,critical"}
	require.Equal(t, expected, nuclei.args("targets.txt"), "could not get nuclei severity args")
}

func TestDalfoxArgs(t *testing.T) {
	expected := []string{"file", "targets.txt", "--silence", "--no-color", "--only-poc"}
	require.Equal(t, expected, (&Dalfox{}).args("targets.txt"), "could not get dalfox args")
}

func TestHostsFromURLs(t *testing.T) {
	urls := []string{"https://b.example.com:443/path", "http://a.example.com:80", "https://a.example.com"}
	require.Equal(t, []string{"a.example.com", "b.example.com"}, hostsFromURLs(urls, "example.com"), "could not get unique hosts")
	require.Equal(t, []string{"example.com"}, hostsFromURLs(nil, "example.com"), "could not fall back to root domain")
}
