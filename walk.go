package flashair

import (
	"context"

	"github.com/girtsf/flashair/data"
)

// WalkFunc is called once per entry during a recursive walk. Returning a
// non-nil error stops the traversal and propagates to the Walk caller.
type WalkFunc func(depth int, rec data.FileRecord) error

// Walk enumerates the remote tree rooted at dir depth-first in pre-order:
// a directory entry is emitted before its children, siblings follow in
// device order. Each call starts a fresh traversal.
//
// A card reporting a cyclic directory structure makes the walk infinite;
// real cards cannot, so this is not guarded against.
func (c *Client) Walk(ctx context.Context, dir string, fn WalkFunc) error {
	return c.walk(ctx, dir, 0, fn)
}

func (c *Client) walk(ctx context.Context, dir string, depth int, fn WalkFunc) error {
	records, err := c.List(ctx, dir)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if err := fn(depth, rec); err != nil {
			return err
		}

		if rec.IsDir() {
			if err := c.walk(ctx, dir+"/"+rec.Name, depth+1, fn); err != nil {
				return err
			}
		}
	}

	return nil
}
