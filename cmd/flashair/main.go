// Command flashair talks to a Toshiba FlashAir SD card over HTTP: it
// lists remote directory contents recursively or synchronizes a remote
// directory to a local one.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/girtsf/flashair"
	"github.com/girtsf/flashair/data"
	"github.com/girtsf/flashair/journal"
	"github.com/girtsf/flashair/log"
)

var (
	dirStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	metaStyle = lipgloss.NewStyle().Faint(true)
)

func main() {
	address := flag.String("address", "", "Device hostname or IP address.")
	ls := flag.Bool("ls", false, "List remote directory contents recursively. Optional argument: <remote-dir> (default \"/\").")
	sync := flag.Bool("sync", false, "Synchronize a remote directory to a local directory. Arguments: <remote-dir> <local-dir>.")
	history := flag.Bool("history", false, "Print recorded sync sessions from the journal.")
	keepCase := flag.Bool("keep-case", false, "Keep the original case of remote names instead of lower-casing local paths.")
	timeout := flag.Duration("timeout", flashair.DefaultTimeout, "Per-request timeout.")
	journalPath := flag.String("journal", "", "Record sync actions into the given SQLite journal file.")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error).")
	logFile := flag.String("log-file", "", "Also write logs to this file (rotated).")
	flag.Parse()

	if err := run(*address, *ls, *sync, *history, *keepCase, *timeout, *journalPath, *logLevel, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "flashair: %v\n", err)
		os.Exit(1)
	}
}

func run(address string, ls, sync, history, keepCase bool, timeout time.Duration, journalPath, logLevel, logFile string) error {
	ctx := context.Background()

	actions := 0
	for _, set := range []bool{ls, sync, history} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		flag.Usage()
		return fmt.Errorf("exactly one of -ls, -sync or -history is required")
	}

	if history {
		if journalPath == "" {
			return fmt.Errorf("-history requires -journal")
		}
		return printHistory(ctx, journalPath)
	}

	if address == "" {
		flag.Usage()
		return fmt.Errorf("-address is required")
	}

	level, ok := log.Parse(logLevel)
	if !ok {
		flag.Usage()
		return fmt.Errorf("unknown log level %q", logLevel)
	}

	opts := []flashair.Option{
		flashair.WithTimeout(timeout),
		flashair.WithLogLevel(level),
	}
	if logFile != "" {
		opts = append(opts, flashair.WithLogFile(logFile))
	}

	var j *journal.Journal
	if journalPath != "" {
		var err error
		j, err = journal.Open(journalPath)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer j.Close()
		opts = append(opts, flashair.WithJournal(j))
	}

	client, err := flashair.New(address, opts...)
	if err != nil {
		return err
	}

	if ls {
		dir := "/"
		if flag.NArg() > 0 {
			dir = flag.Arg(0)
		}
		return runList(ctx, client, dir)
	}

	if flag.NArg() != 2 {
		flag.Usage()
		return fmt.Errorf("-sync requires <remote-dir> <local-dir>")
	}
	return runSync(ctx, client, flag.Arg(0), flag.Arg(1), !keepCase)
}

func runList(ctx context.Context, client *flashair.Client, dir string) error {
	return client.Walk(ctx, dir, func(depth int, rec data.FileRecord) error {
		indent := strings.Repeat("  ", depth)
		if rec.IsDir() {
			fmt.Printf("%s%s %s\n", indent, dirStyle.Render(rec.Name+"/"), metaStyle.Render(rec.Time.String()))
			return nil
		}

		meta := fmt.Sprintf("%d bytes | %s", rec.Size, rec.Time)
		fmt.Printf("%s%s %s\n", indent, rec.Name, metaStyle.Render(meta))
		return nil
	})
}

func runSync(ctx context.Context, client *flashair.Client, remoteDir, localDir string, caseFold bool) error {
	report, err := client.Sync(ctx, remoteDir, localDir, caseFold)
	if err != nil {
		return err
	}

	report.Each(func(remotePath string, action flashair.SyncAction) {
		fmt.Printf("%-8s %s\n", action, remotePath)
	})
	fmt.Printf("%d fetched, %d skipped, %d directories created\n",
		report.Fetched, report.Skipped, report.Created)

	return nil
}

func printHistory(ctx context.Context, journalPath string) error {
	j, err := journal.Open(journalPath)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer j.Close()

	sessions, err := j.Sessions(ctx)
	if err != nil {
		return err
	}

	for _, s := range sessions {
		fmt.Printf("%s %s %s -> %s\n",
			metaStyle.Render(s.StartedAt.Format("2006-01-02 15:04:05")),
			s.ID, s.RemoteDir, s.LocalDir)

		entries, err := j.Entries(ctx, s.ID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("  %-8s %s (%d bytes)\n", e.Action, e.RemotePath, e.Size)
		}
	}

	return nil
}
