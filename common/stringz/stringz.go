package stringz

import (
	"strconv"
	"strings"
)

func TrimProtocol(URL string) string {
	URL = strings.TrimSpace(URL)
	if strings.HasPrefix(strings.ToLower(URL), "http://") || strings.HasPrefix(strings.ToLower(URL), "https://") {
		URL = URL[strings.Index(URL, "//")+2:]
	}

	return URL
}

// HostFromURL extracts the bare host from a url, dropping scheme, port and path
func HostFromURL(URL string) string {
	host := TrimProtocol(URL)
	if idx := strings.IndexAny(host, "/?#"); idx != -1 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}

	return strings.ToLower(strings.TrimSpace(host))
}

// StringToSliceInt converts a comma separated string to a slice of ints
func StringToSliceInt(s string) ([]int, error) {
	var r []int
	if s == "" {
		return r, nil
	}
	for _, v := range strings.Split(s, ",") {
		vTrimmed := strings.TrimSpace(v)
		i, err := strconv.Atoi(vTrimmed)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}

	return r, nil
}
