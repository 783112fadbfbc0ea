// Package contextinfo assembles the per-query environment snapshot.
package contextinfo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/ports"
)

// projectMarkers maps marker files to a project-type tag, checked in order.
var projectMarkers = []struct {
	file string
	tag  string
}{
	{"go.mod", "go"},
	{"Cargo.toml", "rust"},
	{"package.json", "node"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"pom.xml", "java"},
	{"build.gradle", "java"},
	{"Dockerfile", "docker"},
	{"Makefile", "make"},
}

// Collector builds snapshots from the working directory, git state and the
// history store. Every probe is best-effort: a failure leaves its field
// empty and never surfaces as an error.
type Collector struct {
	history ports.HistoryStore
}

// New builds a collector. The history store may be nil.
func New(history ports.HistoryStore) *Collector {
	return &Collector{history: history}
}

// Build implements ports.ContextBuilder.
func (c *Collector) Build(ctx context.Context, cfg domain.Config) domain.Snapshot {
	wd, _ := os.Getwd()
	snapshot := domain.Snapshot{
		WorkingDir: wd,
		Shell:      detectShell(),
		OS:         runtime.GOOS,
	}
	if wd == "" {
		return snapshot
	}

	snapshot.Entries = listEntries(wd, domain.MaxContextDirEntries)
	snapshot.ProjectType = detectProjectType(wd)
	snapshot.Git = collectGit(ctx, wd)

	if c.history != nil {
		if recent, err := c.history.Recent(domain.DefaultRecentHistory); err == nil {
			snapshot.Recent = recent
		}
	}
	return snapshot
}

// listEntries returns up to limit non-hidden names, directories marked with
// a trailing slash.
func listEntries(dir string, limit int) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if len(names) >= limit {
			break
		}
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names
}

func detectProjectType(dir string) string {
	for _, marker := range projectMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker.file)); err == nil {
			return marker.tag
		}
	}
	return ""
}

// collectGit returns nil outside a repository; absence is not an error.
func collectGit(ctx context.Context, dir string) *domain.GitStatus {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return nil
	}
	branch := strings.TrimSpace(runGit(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD"))
	if branch == "" {
		return nil
	}
	modified := 0
	for _, line := range strings.Split(runGit(ctx, dir, "status", "--porcelain"), "\n") {
		if strings.TrimSpace(line) != "" {
			modified++
		}
	}
	return &domain.GitStatus{Branch: branch, ModifiedCount: modified}
}

func runGit(ctx context.Context, dir string, args ...string) string {
	cctx, cancel := context.WithTimeout(ctx, domain.ContextProbeTimeout)
	defer cancel()
	cmd := exec.CommandContext(cctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return string(out)
}

func detectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	return ""
}

var _ ports.ContextBuilder = (*Collector)(nil)
