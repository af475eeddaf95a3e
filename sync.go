package flashair

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/btree"

	"github.com/girtsf/flashair/data"
	"github.com/girtsf/flashair/journal"
)

// SyncAction describes what the sync engine decided for one entry.
type SyncAction string

const (
	ActionFetched    SyncAction = "fetched"
	ActionSkipped    SyncAction = "skipped"
	ActionCreatedDir SyncAction = "mkdir"
	ActionEnteredDir SyncAction = "entered"
)

// SyncReport accumulates the per-path decisions of one sync invocation,
// ordered by remote path.
type SyncReport struct {
	actions *btree.Map[string, SyncAction]

	Fetched int
	Skipped int
	Created int
}

func newSyncReport() *SyncReport {
	return &SyncReport{
		actions: btree.NewMap[string, SyncAction](0),
	}
}

func (r *SyncReport) record(remotePath string, action SyncAction) {
	r.actions.Set(remotePath, action)

	switch action {
	case ActionFetched:
		r.Fetched++
	case ActionSkipped:
		r.Skipped++
	case ActionCreatedDir:
		r.Created++
	}
}

// Each visits every recorded action in ascending remote-path order.
func (r *SyncReport) Each(fn func(remotePath string, action SyncAction)) {
	r.actions.Scan(func(key string, value SyncAction) bool {
		fn(key, value)
		return true
	})
}

// Len returns the number of recorded actions.
func (r *SyncReport) Len() int {
	return r.actions.Len()
}

// Sync mirrors remoteDir into localDir, which must already exist; only
// subdirectories discovered during recursion are created. A file is
// fetched when it is absent locally or its size differs from the remote
// size — a cheap heuristic, not a checksum: content changes that preserve
// size go undetected. Fetches overwrite the local file whole; a transport
// failure mid-fetch leaves the local file in an undefined state.
//
// With caseFold set, each local path is lower-cased in full, matching
// device filenames that are case-insensitive at the protocol level.
func (c *Client) Sync(ctx context.Context, remoteDir, localDir string, caseFold bool) (*SyncReport, error) {
	info, err := os.Stat(localDir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrTargetMissing, localDir)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrConflict, localDir)
	}

	var session *journal.Session
	if c.journal != nil {
		session, err = c.journal.Begin(ctx, remoteDir, localDir)
		if err != nil {
			return nil, err
		}
	}

	c.logger.Info("Syncing %s -> %s", remoteDir, localDir)

	report := newSyncReport()
	if err := c.sync(ctx, remoteDir, localDir, caseFold, session, report); err != nil {
		return nil, err
	}

	c.logger.Info("Sync finished: %d fetched, %d skipped, %d directories created",
		report.Fetched, report.Skipped, report.Created)

	return report, nil
}

func (c *Client) sync(ctx context.Context, remoteDir, localDir string, caseFold bool, session *journal.Session, report *SyncReport) error {
	records, err := c.List(ctx, remoteDir)
	if err != nil {
		return err
	}

	for _, rec := range records {
		remotePath := rec.Path()
		localPath := filepath.Join(localDir, rec.Name)
		if caseFold {
			localPath = strings.ToLower(localPath)
		}

		if rec.IsDir() {
			if err := c.syncDir(ctx, remotePath, localPath, caseFold, session, report); err != nil {
				return err
			}
			continue
		}

		if err := c.syncFile(ctx, rec, remotePath, localPath, session, report); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) syncDir(ctx context.Context, remotePath, localPath string, caseFold bool, session *journal.Session, report *SyncReport) error {
	info, err := os.Stat(localPath)
	switch {
	case os.IsNotExist(err):
		c.logger.Debug("Creating directory %s", localPath)
		if err := os.Mkdir(localPath, 0755); err != nil {
			return err
		}
		if err := c.record(ctx, session, report, remotePath, ActionCreatedDir, 0); err != nil {
			return err
		}

	case err != nil:
		return err

	case !info.IsDir():
		return fmt.Errorf("%w: %s exists but is not a directory", ErrConflict, localPath)

	default:
		if err := c.record(ctx, session, report, remotePath, ActionEnteredDir, 0); err != nil {
			return err
		}
	}

	return c.sync(ctx, remotePath, localPath, caseFold, session, report)
}

func (c *Client) syncFile(ctx context.Context, rec data.FileRecord, remotePath, localPath string, session *journal.Session, report *SyncReport) error {
	fetch := false

	info, err := os.Stat(localPath)
	switch {
	case os.IsNotExist(err):
		c.logger.Info("%s does not exist locally, fetching", rec.Name)
		fetch = true

	case err != nil:
		return err

	case uint64(info.Size()) != rec.Size:
		c.logger.Info("%s size differs (local %d, remote %d), fetching", rec.Name, info.Size(), rec.Size)
		fetch = true
	}

	if !fetch {
		c.logger.Debug("%s is up to date", rec.Name)
		return c.record(ctx, session, report, remotePath, ActionSkipped, rec.Size)
	}

	contents, err := c.transport.Fetch(ctx, remotePath)
	if err != nil {
		return err
	}

	if err := os.WriteFile(localPath, contents, 0644); err != nil {
		return err
	}

	return c.record(ctx, session, report, remotePath, ActionFetched, rec.Size)
}

func (c *Client) record(ctx context.Context, session *journal.Session, report *SyncReport, remotePath string, action SyncAction, size uint64) error {
	report.record(remotePath, action)

	if session == nil {
		return nil
	}
	return session.Record(ctx, remotePath, string(action), size)
}
