package tools

import (
	"strconv"
	"strings"

	"github.com/corpix/uarand"
	"github.com/projectdiscovery/reconx/common/customheader"
	"github.com/projectdiscovery/reconx/common/slice"
	"github.com/projectdiscovery/reconx/common/stringz"
	"golang.org/x/exp/slices"
)

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}

	return strings.Join(parts, ",")
}

// hostsFromURLs reduces urls to their unique hosts, falling back to the
// root domain when nothing can be extracted
func hostsFromURLs(urls []string, fallback string) []string {
	set := make(map[string]struct{})
	for _, url := range urls {
		if host := stringz.HostFromURL(url); host != "" {
			set[host] = struct{}{}
		}
	}
	hosts := slice.ToSlice(set)
	slices.Sort(hosts)
	if len(hosts) == 0 && fallback != "" {
		hosts = append(hosts, fallback)
	}

	return hosts
}

func withRandomAgent(headers customheader.CustomHeaders, randomAgent bool) customheader.CustomHeaders {
	if randomAgent && !headers.Has("user-agent") {
		headers = append(headers, "User-Agent: "+uarand.GetRandom())
	}

	return headers
}
