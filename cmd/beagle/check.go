package main

import (
	"fmt"

	"github.com/fwojciec/beagle"
	"github.com/fwojciec/beagle/scan"
)

// checkOutput is one source of check output.
type checkOutput struct {
	Name            string   `json:"name"`
	URL             string   `json:"url"`
	NewSampleURL    []string `json:"newSampleUrl"`
	IsSelectorEmpty bool     `json:"isSelectorEmpty"`
	Error           string   `json:"error,omitempty"`
}

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	var sources []*beagle.Source
	if len(c.Names) == 0 {
		all, err := deps.Sources.FindSources(deps.Ctx, beagle.SourceFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", beagle.ErrorMessage(err))
			return err
		}
		sources = all
	} else {
		for _, name := range c.Names {
			source, err := findSourceByName(deps, name)
			if err != nil {
				return err
			}
			sources = append(sources, source)
		}
	}

	results := deps.Watcher.CheckAll(deps.Ctx, sources, concurrency(deps.Concurrency))

	outputs := make([]checkOutput, len(results))
	failed := 0
	for i, res := range results {
		outputs[i] = toCheckOutput(res)
		if res.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", res.Source.Name, beagle.ErrorMessage(res.Err))
		}
	}

	if deps.JSON {
		if err := writeJSON(deps.Stdout, outputs); err != nil {
			return err
		}
	} else {
		for _, out := range outputs {
			if out.Error != "" {
				continue
			}
			if out.IsSelectorEmpty {
				fmt.Fprintf(deps.Stderr, "warning: %s: selector no longer matches, re-add the source\n", out.Name)
				continue
			}
			fmt.Fprintf(deps.Stdout, "%s: %d new\n", out.Name, len(out.NewSampleURL))
			for _, u := range out.NewSampleURL {
				fmt.Fprintf(deps.Stdout, "  %s\n", u)
			}
		}
	}

	if failed > 0 {
		return beagle.Errorf(beagle.EFETCH, "%d of %d sources failed", failed, len(results))
	}
	return nil
}

func toCheckOutput(res *scan.CheckResult) checkOutput {
	out := checkOutput{
		Name:            res.Source.Name,
		URL:             res.Source.URL,
		NewSampleURL:    res.NewSampleURL,
		IsSelectorEmpty: res.IsSelectorEmpty,
	}
	if out.NewSampleURL == nil {
		out.NewSampleURL = []string{}
	}
	if res.Err != nil {
		out.Error = beagle.ErrorMessage(res.Err)
	}
	return out
}
