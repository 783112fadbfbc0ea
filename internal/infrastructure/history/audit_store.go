package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/ports"
)

// AuditStore records terminal pipeline outcomes in a SQLite database.
// Unlike the query log, records here are never evicted; they feed the
// stats command and the history-analysis task.
type AuditStore struct {
	db *sql.DB
	mu sync.Mutex
}

// DefaultAuditPath is ~/.ollash/audit.db.
func DefaultAuditPath() string {
	return filepath.Join(userHome(), ".ollash", "audit.db")
}

// NewAuditStore opens (or creates) the database. A store that failed to
// open still satisfies the port; its methods return the open error so the
// pipeline can log and continue.
func NewAuditStore(path string) *AuditStore {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return &AuditStore{}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &AuditStore{}
	}
	store := &AuditStore{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return &AuditStore{}
	}
	return store
}

func (s *AuditStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS outcomes (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		query TEXT NOT NULL,
		command TEXT NOT NULL,
		warned INTEGER NOT NULL,
		reasons TEXT,
		outcome TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	)`)
	return err
}

// Record implements ports.AuditLog.
func (s *AuditStore) Record(rec domain.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return os.ErrInvalid
	}
	warned := 0
	if rec.Warned {
		warned = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO outcomes (id, timestamp, query, command, warned, reasons, outcome, exit_code, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp.Format(domain.TimestampFormat),
		rec.Query,
		rec.Command,
		warned,
		strings.Join(rec.Reasons, "; "),
		string(rec.Outcome),
		rec.ExitCode,
		rec.DurationMS,
	)
	return err
}

// Recent implements ports.AuditLog: the n most recent records, oldest first.
func (s *AuditStore) Recent(n int) ([]domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, os.ErrInvalid
	}
	rows, err := s.db.Query(
		`SELECT id, timestamp, query, command, warned, reasons, outcome, exit_code, duration_ms
		 FROM outcomes ORDER BY timestamp DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		var ts, reasons, outcome string
		var warned int
		if err := rows.Scan(&rec.ID, &ts, &rec.Query, &rec.Command, &warned, &reasons, &outcome, &rec.ExitCode, &rec.DurationMS); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			rec.Timestamp = parsed
		}
		rec.Warned = warned != 0
		if reasons != "" {
			rec.Reasons = strings.Split(reasons, "; ")
		}
		rec.Outcome = domain.Outcome(outcome)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Reverse into chronological order.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Summary implements ports.AuditLog.
func (s *AuditStore) Summary() (domain.AuditSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return domain.AuditSummary{}, os.ErrInvalid
	}
	var sum domain.AuditSummary
	row := s.db.QueryRow(`SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN outcome = 'executed' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN outcome = 'skipped' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(warned), 0),
		COALESCE(SUM(CASE WHEN outcome = 'executed' AND exit_code != 0 THEN 1 ELSE 0 END), 0)
		FROM outcomes`)
	if err := row.Scan(&sum.Total, &sum.Executed, &sum.Skipped, &sum.Warned, &sum.NonZeroExits); err != nil {
		return domain.AuditSummary{}, err
	}
	return sum, nil
}

// Close releases the database handle.
func (s *AuditStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ ports.AuditLog = (*AuditStore)(nil)
