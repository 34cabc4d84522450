package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/beagle"
	"golang.org/x/sync/errgroup"
)

// scanOutput is one page of scan output.
type scanOutput struct {
	URL string `json:"url"`
	*beagle.FetchAllResult
	Error string `json:"error,omitempty"`
}

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	outputs := make([]scanOutput, len(c.URLs))
	errs := make([]error, len(c.URLs))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency(deps.Concurrency))
	for i, url := range c.URLs {
		g.Go(func() error {
			res, err := deps.Scanner.FetchAll(ctx, url)
			outputs[i] = scanOutput{URL: url, FetchAllResult: res}
			if err != nil {
				errs[i] = err
				outputs[i].Error = beagle.ErrorMessage(err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if deps.JSON {
		if err := writeJSON(deps.Stdout, outputs); err != nil {
			return err
		}
	} else {
		for _, out := range outputs {
			if out.FetchAllResult != nil {
				printScan(deps.Stdout, out)
			}
		}
	}

	var firstErr error
	for i, err := range errs {
		if err == nil {
			continue
		}
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", c.URLs[i], beagle.ErrorMessage(err))
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func printScan(w io.Writer, out scanOutput) {
	fmt.Fprintln(w, out.URL)
	if out.Meta.Title != "" {
		fmt.Fprintf(w, "  title:    %s\n", out.Meta.Title)
	}
	if out.Meta.Image != "" {
		fmt.Fprintf(w, "  image:    %s\n", out.Meta.Image)
	}
	if out.Selector == "" {
		fmt.Fprintln(w, "  no repeating links found")
		return
	}
	fmt.Fprintf(w, "  selector: %s\n", out.Selector)
	for _, u := range out.SampleURL {
		fmt.Fprintf(w, "    %s\n", u)
	}
}

// Run executes the one command.
func (c *OneCmd) Run(deps *Dependencies) error {
	res, err := deps.Scanner.FetchOne(deps.Ctx, c.URL, c.Selector, c.Before)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", beagle.ErrorMessage(err))
		return err
	}

	if deps.JSON {
		return writeJSON(deps.Stdout, res)
	}

	if res.IsSelectorEmpty {
		fmt.Fprintf(deps.Stderr, "warning: selector matched nothing on %s\n", c.URL)
	}
	if res.IsSampleURLNotFound {
		fmt.Fprintf(deps.Stderr, "warning: %s not found, showing every item\n", c.Before)
	}
	for _, u := range res.SampleURL {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func concurrency(n int) int {
	if n <= 0 {
		return 3
	}
	return n
}
