package flashair

import (
	"time"

	"github.com/girtsf/flashair/journal"
	"github.com/girtsf/flashair/log"
)

type Options struct {
	Timeout       time.Duration
	Transport     Transport
	Journal       *journal.Journal
	Logger        *log.Logger
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		Timeout:  DefaultTimeout,
		LogLevel: log.Info,
	}
}

// WithTimeout sets the per-request timeout applied uniformly to every
// remote operation.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) error {
		opts.Timeout = timeout
		return nil
	}
}

// WithTransport replaces the HTTP transport, mainly for testing.
func WithTransport(transport Transport) Option {
	return func(opts *Options) error {
		opts.Transport = transport
		return nil
	}
}

// WithJournal records every sync action into the given journal.
func WithJournal(j *journal.Journal) Option {
	return func(opts *Options) error {
		opts.Journal = j
		return nil
	}
}

// WithLogger replaces the client logger entirely.
func WithLogger(logger *log.Logger) Option {
	return func(opts *Options) error {
		opts.Logger = logger
		return nil
	}
}

func WithLogLevel(level log.LogLevel) Option {
	return func(opts *Options) error {
		opts.LogLevel = level
		return nil
	}
}

func WithLogFile(logFile string) Option {
	return func(opts *Options) error {
		opts.LogFile = logFile
		return nil
	}
}

func WithoutTerminalLog() Option {
	return func(opts *Options) error {
		opts.NoTerminalLog = true
		return nil
	}
}
