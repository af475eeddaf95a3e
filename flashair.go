// Package flashair is a client for the HTTP file-access protocol spoken
// by Toshiba FlashAir wireless SD cards. It lists remote directories and
// mirrors a remote tree to local storage.
package flashair

import (
	"context"
	"net/url"
	"time"

	"github.com/girtsf/flashair/data"
	"github.com/girtsf/flashair/journal"
	"github.com/girtsf/flashair/log"
)

// DefaultTimeout applies to every request unless overridden with
// WithTimeout.
const DefaultTimeout = 5 * time.Second

// command.cgi operation codes.
const (
	opGetFileList = 100
)

// Client talks to a single FlashAir card. All remote operations execute
// strictly sequentially; the card serves one connection well and the
// client never issues concurrent requests.
type Client struct {
	transport Transport
	journal   *journal.Journal
	logger    *log.Logger
}

// New creates a Client for the card at the given hostname or IP address.
func New(address string, opts ...Option) (*Client, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	transport := options.Transport
	if transport == nil {
		transport = newHTTPTransport(address, options.Timeout)
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewLogger("flashair", options.LogLevel, options.LogFile, options.NoTerminalLog)
	}

	return &Client{
		transport: transport,
		journal:   options.Journal,
		logger:    logger,
	}, nil
}

// List fetches and decodes the listing of a single remote directory.
// Entries are returned in device order.
func (c *Client) List(ctx context.Context, dir string) ([]data.FileRecord, error) {
	args := url.Values{}
	args.Set("DIR", dir)

	body, err := c.transport.Command(ctx, opGetFileList, args)
	if err != nil {
		return nil, err
	}

	return DecodeListing(body)
}
