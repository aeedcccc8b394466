package pipeline

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/projectdiscovery/hmap/store/hybrid"
	"github.com/projectdiscovery/reconx/common/fileutil"
)

// Artifact is a named intermediate file produced by one stage and
// consumed by later ones
type Artifact struct {
	Name string
	Path string
}

// Store keeps the per run intermediate artifacts in a scratch directory
// and tracks already seen lines for the deduplicated artifacts
type Store struct {
	Subdomains    Artifact
	HostPorts     Artifact
	CandidateURLs Artifact
	Alive         Artifact
	Endpoints     Artifact

	dir  string
	seen *hybrid.HybridMap
}

// NewStore creates the artifact layout under dir
func NewStore(dir string) (*Store, error) {
	hm, err := hybrid.New(hybrid.DefaultDiskOptions)
	if err != nil {
		return nil, err
	}

	return &Store{
		Subdomains:    Artifact{Name: "subdomains", Path: filepath.Join(dir, "subdomains.txt")},
		HostPorts:     Artifact{Name: "hostports", Path: filepath.Join(dir, "hostports.txt")},
		CandidateURLs: Artifact{Name: "urls", Path: filepath.Join(dir, "urls.txt")},
		Alive:         Artifact{Name: "alive", Path: filepath.Join(dir, "alive.txt")},
		Endpoints:     Artifact{Name: "endpoints", Path: filepath.Join(dir, "endpoints.txt")},
		dir:           dir,
		seen:          hm,
	}, nil
}

// WriteLines replaces the artifact content
func (s *Store) WriteLines(artifact Artifact, lines []string) error {
	return fileutil.WriteLines(artifact.Path, lines)
}

// AppendLines adds lines at the end of the artifact, keeping duplicates
func (s *Store) AppendLines(artifact Artifact, lines []string) error {
	f, err := os.OpenFile(artifact.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close() //nolint
	w := bufio.NewWriter(f)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}

	return w.Flush()
}

// AppendUnique adds the lines not seen before for this artifact and
// returns the number of new entries
func (s *Store) AppendUnique(artifact Artifact, lines []string) (int, error) {
	var unique []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key := artifact.Name + ":" + line
		if _, ok := s.seen.Get(key); ok {
			continue
		}
		s.seen.Set(key, nil) //nolint
		unique = append(unique, line)
	}
	if err := s.AppendLines(artifact, unique); err != nil {
		return 0, err
	}

	return len(unique), nil
}

// ReadLines loads the artifact content, a missing artifact reads as empty
func (s *Store) ReadLines(artifact Artifact) []string {
	return fileutil.LoadFile(artifact.Path)
}

// Close releases the dedupe index
func (s *Store) Close() {
	// nolint:errcheck // ignore
	s.seen.Close()
}
