package bank

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Ext is the file extension of bank files.
const Ext = ".txt"

// Discover lists the bank names available in dir, newest-looking names
// first (reverse lexical order).
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read bank dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Path returns the file path of the named bank in dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+Ext)
}

// ValidName reports whether name addresses a file directly inside a
// directory, with no path separators.
func ValidName(name string) bool {
	return name != "" && filepath.Base(name) == name
}

// Load reads and parses the named bank from dir.
func Load(dir, name string) ([]Question, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrBankNotFound, name)
	}

	data, err := os.ReadFile(Path(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrBankNotFound, name)
		}
		return nil, fmt.Errorf("read bank %q: %w", name, err)
	}

	questions, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse bank %q: %w", name, err)
	}
	return questions, nil
}

// Stats summarises a parsed bank.
type Stats struct {
	Questions     int     `json:"questions" yaml:"questions"`
	Options       int     `json:"options" yaml:"options"`
	KeyedByNumber int     `json:"keyed_by_number" yaml:"keyed_by_number"`
	KeyedByMarker int     `json:"keyed_by_marker" yaml:"keyed_by_marker"`
	AvgOptions    float64 `json:"avg_options" yaml:"avg_options"`
}

// Summarize computes Stats for questions.
func Summarize(questions []Question) Stats {
	var s Stats
	s.Questions = len(questions)
	for _, q := range questions {
		s.Options += len(q.Options)
		switch q.Key {
		case KeyNumber:
			s.KeyedByNumber++
		case KeyMarker:
			s.KeyedByMarker++
		}
	}
	if s.Questions > 0 {
		s.AvgOptions = float64(s.Options) / float64(s.Questions)
	}
	return s
}
