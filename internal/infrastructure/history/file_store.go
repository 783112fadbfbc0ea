// Package history persists the query log and the execution audit log.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/ports"
)

// FileStore is the append-only bounded query log. The persisted format is
// one pipe-delimited record per line: timestamp|query|command. The command
// is the final field, so it may itself contain pipes; pipe characters in
// the query text are replaced on write to keep the layout parseable.
//
// The log is shared between independent processes, so every operation
// takes an advisory lock on a sibling lock file, and rewrites go through a
// temp file renamed over the log so readers never see a partial file.
type FileStore struct {
	path string
	max  int
	mu   sync.Mutex
	flk  *flock.Flock
}

// NewFileStore opens (lazily) the log at path with the given entry cap.
func NewFileStore(path string, maxEntries int) *FileStore {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultMaxHistory
	}
	return &FileStore{
		path: path,
		max:  maxEntries,
		flk:  flock.New(path + ".lock"),
	}
}

// DefaultPath is ~/.ollash/history.
func DefaultPath() string {
	return filepath.Join(userHome(), ".ollash", "history")
}

// Append implements ports.HistoryStore. On overflow the oldest entries are
// dropped first until the store is back at its cap.
func (f *FileStore) Append(entry domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	unlock, err := f.lock()
	if err != nil {
		return err
	}
	defer unlock()

	entries, err := f.readAll()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if len(entries) > f.max {
		entries = entries[len(entries)-f.max:]
	}
	return f.writeAll(entries)
}

// Recent implements ports.HistoryStore: the n most recent entries, oldest
// first. An empty store yields an empty slice, never an error.
func (f *FileStore) Recent(n int) ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	unlock, err := f.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	entries, err := f.readAll()
	if err != nil {
		return nil, err
	}
	if n < len(entries) {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Clear implements ports.HistoryStore.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	unlock, err := f.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// lock takes the cross-process advisory lock, creating the parent directory
// on first use so the lock file has somewhere to live.
func (f *FileStore) lock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirPerm); err != nil {
		return nil, err
	}
	if err := f.flk.Lock(); err != nil {
		return nil, fmt.Errorf("lock history store: %w", err)
	}
	return func() { _ = f.flk.Unlock() }, nil
}

func (f *FileStore) readAll() ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var entries []domain.HistoryEntry
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		if entry, ok := parseLine(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// writeAll rewrites the log through a temp file in the same directory,
// renamed over the target so concurrent readers see either the old file or
// the new one, never a truncated in-between state.
func (f *FileStore) writeAll(entries []domain.HistoryEntry) error {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(formatLine(entry))
		sb.WriteByte('\n')
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".history-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(sb.String()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, domain.HistoryPerm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func formatLine(entry domain.HistoryEntry) string {
	return fmt.Sprintf("%s|%s|%s",
		entry.Timestamp.Format(domain.TimestampFormat),
		flattenField(entry.Query),
		flattenLine(entry.Command))
}

// parseLine splits into at most three fields so the command keeps its
// pipes. Unparseable lines are skipped rather than failing the read.
func parseLine(line string) (domain.HistoryEntry, bool) {
	parts := strings.SplitN(line, "|", 3)
	if len(parts) != 3 {
		return domain.HistoryEntry{}, false
	}
	ts, err := time.Parse(domain.TimestampFormat, parts[0])
	if err != nil {
		return domain.HistoryEntry{}, false
	}
	return domain.HistoryEntry{Timestamp: ts, Query: parts[1], Command: parts[2]}, true
}

// flattenField makes a value safe for a non-final pipe-delimited field.
func flattenField(s string) string {
	return flattenLine(strings.ReplaceAll(s, "|", " "))
}

// flattenLine keeps the record single-line.
func flattenLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.HistoryStore = (*FileStore)(nil)
