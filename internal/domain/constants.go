package domain

import "time"

// Backend defaults.
const (
	DefaultBackendURL  = "http://localhost:11434"
	DefaultModel       = "llama3.2"
	DefaultTemperature = 0.2
	// DefaultGenerateTimeout bounds a single generation request.
	DefaultGenerateTimeout = 60 * time.Second
	// DefaultProbeTimeout bounds the liveness probe, separate from generation.
	DefaultProbeTimeout = 5 * time.Second
)

// History defaults.
const (
	// DefaultMaxHistory is the entry cap of the history log.
	DefaultMaxHistory = 50
	// DefaultRecentHistory is how many entries feed into prompt context.
	DefaultRecentHistory = 5
)

// Context collection limits.
const (
	// MaxContextDirEntries caps the directory listing injected into prompts.
	MaxContextDirEntries = 10
	// ContextProbeTimeout bounds each external probe (git etc.).
	ContextProbeTimeout = 2 * time.Second
)

// File permissions.
const (
	DirPerm        = 0o755
	SecureFilePerm = 0o600
	HistoryPerm    = 0o644
)

// TimestampFormat is used for persisted history lines.
const TimestampFormat = time.RFC3339
