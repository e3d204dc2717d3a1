package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/idlesign/mednsktest/internal/bank"
)

// ErrCorruptProgress indicates an existing progress file that cannot be
// read back. It is never overwritten silently.
var ErrCorruptProgress = errors.New("corrupt progress file")

// FileSuffix is appended to the bank name to form the progress file name.
const FileSuffix = ".progress.json"

// State is the persisted record of previously answered questions. An id
// may be present in both lists.
type State struct {
	Success []string `json:"success"`
	Failure []string `json:"failure"`
}

// Store keeps the progress of one bank. It is loaded once at the start of
// a run and persisted once at the end with a whole-file replace.
type Store struct {
	dir   string
	bank  string
	state State
}

// New creates a Store for the named bank with its file in dir.
func New(dir, bankName string) *Store {
	return &Store{dir: dir, bank: bankName}
}

// FileName returns the progress file name for a bank.
func FileName(bankName string) string {
	return bankName + FileSuffix
}

// Path returns the progress file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName(s.bank))
}

// State returns a copy of the in-memory state.
func (s *Store) State() State {
	return State{
		Success: slices.Clone(s.state.Success),
		Failure: slices.Clone(s.state.Failure),
	}
}

// Load reads the persisted state. A missing file means a first run and
// leaves the state empty.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.state = State{}
			return nil
		}
		return fmt.Errorf("read progress: %w", err)
	}

	if err := validate(raw); err != nil {
		return fmt.Errorf("%w %s: %w", ErrCorruptProgress, s.Path(), err)
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("%w %s: %w", ErrCorruptProgress, s.Path(), err)
	}
	s.state = st
	return nil
}

// Filter returns the questions whose ids appear in neither list, keeping
// their order.
func (s *Store) Filter(questions []bank.Question) []bank.Question {
	seen := make(map[string]bool, len(s.state.Success)+len(s.state.Failure))
	for _, id := range s.state.Success {
		seen[id] = true
	}
	for _, id := range s.state.Failure {
		seen[id] = true
	}

	fresh := make([]bank.Question, 0, len(questions))
	for _, q := range questions {
		if !seen[q.ID] {
			fresh = append(fresh, q)
		}
	}
	return fresh
}

// Contribute appends the ids answered in this run. Duplicates are kept
// until Persist.
func (s *Store) Contribute(successes, failures []string) {
	s.state.Success = append(s.state.Success, successes...)
	s.state.Failure = append(s.state.Failure, failures...)
}

// Persist writes the de-duplicated state, replacing any previous file.
// The new content goes to a temporary file first, so the old file stays
// intact unless the final rename succeeds.
func (s *Store) Persist() error {
	st := State{
		Success: dedupe(s.state.Success),
		Failure: dedupe(s.state.Failure),
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+FileName(s.bank)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close progress: %w", err)
	}

	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("replace progress file: %w", err)
	}

	s.state = st
	return nil
}

// Reset deletes the persisted state and clears memory.
func (s *Store) Reset() error {
	s.state = State{}
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove progress: %w", err)
	}
	return nil
}

// dedupe returns the sorted distinct ids, never nil.
func dedupe(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []string{}
	}
	return out
}
