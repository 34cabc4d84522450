package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/beagle"
	"github.com/fwojciec/beagle/scan"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Scanner beagle.ScanService
	Sources beagle.SourceService
	Watcher *scan.Watcher

	// JSON switches command output to JSON documents.
	JSON bool

	// Concurrency bounds parallel page scans.
	Concurrency int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	JSON        bool          `help:"Print results as JSON"`
	Verbose     bool          `short:"v" help:"Log fetches and scans to stderr"`
	Timeout     time.Duration `default:"10s" help:"Per-page fetch timeout"`
	Render      bool          `help:"Render pages in headless Chrome when plain HTTP misses links"`
	Chrome      string        `env:"BEAGLE_CHROME" help:"Chrome binary used by --render"`
	Retries     int           `default:"2" help:"Fetch retries with exponential backoff"`
	Rate        float64       `default:"2" help:"Requests per second per host (0 disables)"`
	Concurrency int           `short:"c" default:"3" help:"Pages scanned in parallel"`
	SameHost    bool          `help:"Ignore links leaving the scanned page's host"`
	Rank        string        `default:"heuristic" enum:"heuristic,length" help:"Link group ranking (heuristic, length)"`

	Scan   ScanCmd   `cmd:"" help:"Show the main repeating link list of one or more pages"`
	One    OneCmd    `cmd:"" help:"Replay a selector against a page"`
	Add    AddCmd    `cmd:"" help:"Watch a page for new items"`
	List   ListCmd   `cmd:"" help:"List watched pages"`
	Delete DeleteCmd `cmd:"" help:"Stop watching a page"`
	Check  CheckCmd  `cmd:"" help:"Report new items on watched pages"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	URLs []string `arg:"" name:"url" help:"Page URLs"`
}

// OneCmd is the "one" subcommand.
type OneCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Selector string `arg:"" help:"Structural selector, as printed by scan"`
	Before   string `short:"b" help:"Only show items before this URL"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name     string `arg:"" help:"Source name"`
	URL      string `arg:"" help:"Listing page URL"`
	Selector string `short:"s" help:"Selector to watch (discovered with scan when omitted)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Source name"`
	Force bool   `help:"Confirm deletion"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Names []string `arg:"" optional:"" name:"name" help:"Sources to check (all when omitted)"`
}
