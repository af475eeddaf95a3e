// Package journal persists the history of sync sessions in an embedded
// SQLite database. The journal is purely a record: it never influences
// what the sync engine fetches.
package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Journal struct {
	db *sql.DB
}

// Session identifies one sync invocation within the journal.
type Session struct {
	ID string

	db *sql.DB
}

// SessionInfo summarizes a recorded sync session.
type SessionInfo struct {
	ID        string
	RemoteDir string
	LocalDir  string
	StartedAt time.Time
}

// Entry is one recorded sync action.
type Entry struct {
	RemotePath string
	Action     string
	Size       uint64
	RecordedAt time.Time
}

// Open creates or opens a journal database. The path can be ":memory:"
// for a throwaway journal.
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// WAL keeps the journal readable while a sync is writing
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return j, nil
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sync_sessions (
		id TEXT PRIMARY KEY,
		remote_dir TEXT NOT NULL,
		local_dir TEXT NOT NULL,
		started_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sync_actions (
		session_id TEXT NOT NULL REFERENCES sync_sessions(id),
		remote_path TEXT NOT NULL,
		action TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		recorded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sync_actions_session ON sync_actions(session_id);
	`

	_, err := j.db.Exec(schema)
	return err
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Begin opens a new session for a sync of remoteDir into localDir.
func (j *Journal) Begin(ctx context.Context, remoteDir, localDir string) (*Session, error) {
	id := uuid.NewString()

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO sync_sessions (id, remote_dir, local_dir, started_at) VALUES (?, ?, ?, ?)`,
		id, remoteDir, localDir, time.Now().Unix())
	if err != nil {
		return nil, err
	}

	return &Session{ID: id, db: j.db}, nil
}

// Record appends one action to the session.
func (s *Session) Record(ctx context.Context, remotePath, action string, size uint64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sync_actions (session_id, remote_path, action, size, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, remotePath, action, int64(size), time.Now().Unix())
	return err
}

// Sessions returns all recorded sessions, most recent first.
func (j *Journal) Sessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, remote_dir, local_dir, started_at FROM sync_sessions ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var started int64
		if err := rows.Scan(&info.ID, &info.RemoteDir, &info.LocalDir, &started); err != nil {
			return nil, err
		}
		info.StartedAt = time.Unix(started, 0)
		sessions = append(sessions, info)
	}

	return sessions, rows.Err()
}

// Entries returns the actions of one session in recorded order.
func (j *Journal) Entries(ctx context.Context, sessionID string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT remote_path, action, size, recorded_at FROM sync_actions WHERE session_id = ? ORDER BY rowid`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var size, recorded int64
		if err := rows.Scan(&e.RemotePath, &e.Action, &size, &recorded); err != nil {
			return nil, err
		}
		e.Size = uint64(size)
		e.RecordedAt = time.Unix(recorded, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
