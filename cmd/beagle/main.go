package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/beagle"
	"github.com/fwojciec/beagle/goquery"
	beaglehttp "github.com/fwojciec/beagle/http"
	"github.com/fwojciec/beagle/matchr"
	"github.com/fwojciec/beagle/readability"
	"github.com/fwojciec/beagle/rod"
	"github.com/fwojciec/beagle/scan"
	beagleslog "github.com/fwojciec/beagle/slog"
	"github.com/fwojciec/beagle/sqlite"
	"github.com/fwojciec/beagle/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher used by the scan service. Set before calling Run() to replace
	// the network stack, e.g. in tests.
	Fetcher beagle.Fetcher

	// Services for end-to-end testing.
	SourceService beagle.SourceService
	ScanService   beagle.ScanService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.Fetcher != nil {
		err = m.Fetcher.Close()
	}
	if m.DB != nil {
		if dbErr := m.DB.Close(); err == nil {
			err = dbErr
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("beagle"),
		kong.Description("Find the repeating link list on a page and watch it for new items"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'beagle --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]
	defer m.Close()

	logger := newLogger(stderr, cli.Verbose)
	deps.JSON = cli.JSON
	deps.Concurrency = cli.Concurrency

	if needsScanner(cmd, cli) {
		if err := m.openScanner(cli, logger, stderr); err != nil {
			return err
		}
		deps.Scanner = m.ScanService
	}

	if needsStore(cmd) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set BEAGLE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}

		m.SourceService = beagleslog.NewLoggingSourceService(sqlite.NewSourceService(m.DB), logger)
		deps.Sources = m.SourceService
	}

	if cmd == "check" {
		deps.Watcher = &scan.Watcher{Scanner: deps.Scanner, Sources: deps.Sources}
	}

	return kongCtx.Run(deps)
}

func needsScanner(cmd string, cli *CLI) bool {
	switch cmd {
	case "scan", "one", "check":
		return true
	case "add":
		return cli.Add.Selector == ""
	}
	return false
}

func needsStore(cmd string) bool {
	switch cmd {
	case "add", "list", "delete", "check":
		return true
	}
	return false
}

// openScanner builds the fetch stack and the scan service on top of it.
func (m *Main) openScanner(cli *CLI, logger *slog.Logger, stderr io.Writer) error {
	if m.Fetcher == nil {
		var fetcher beagle.Fetcher = beaglehttp.NewFetcher(beaglehttp.WithTimeout(cli.Timeout))
		if cli.Render {
			renderer, err := rod.NewFetcher(
				rod.WithFetchTimeout(cli.Timeout),
				rod.WithManagerOptions(rod.WithBin(cli.Chrome)),
			)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = scan.NewProbeFetcher(fetcher, renderer, goquery.NewScanner())
		}
		m.Fetcher = fetcher
	}

	var fetcher beagle.Fetcher = beagleslog.NewLoggingFetcher(m.Fetcher, logger)
	if cli.Rate > 0 {
		fetcher = scan.NewLimitedFetcher(fetcher, scan.NewDomainLimiter(cli.Rate))
	}
	fetcher = scan.NewRetryFetcher(fetcher, retryDelays(cli.Retries), logger)
	fetcher = scan.NewCachingFetcher(fetcher, scan.DefaultCacheSize, scan.DefaultCacheTTL)

	svc := &scan.Service{
		Fetcher: fetcher,
		Paths:   &goquery.Scanner{SameHostOnly: cli.SameHost},
		Meta: scan.MetaChain{
			trafilatura.NewMetaExtractor(),
			readability.NewMetaExtractor(),
			goquery.NewMetaExtractor(),
		},
		Ranker: rankerFactory(cli.Rank),
		Logger: logger,
	}
	m.ScanService = beagleslog.NewLoggingScanService(svc, logger)
	return nil
}

func rankerFactory(name string) scan.RankerFactory {
	if name == "length" {
		return scan.ByLength
	}
	return func(pageURL string, _ beagle.PageMeta) beagle.Ranker {
		return matchr.NewRanker(pageURL)
	}
}

// retryDelays doubles from one second for n retries.
func retryDelays(n int) []time.Duration {
	delays := []time.Duration{}
	d := time.Second
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("BEAGLE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "beagle.db"
	}
	dir := filepath.Join(home, ".beagle")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "beagle.db")
}
