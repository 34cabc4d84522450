package main

import (
	"fmt"

	"github.com/fwojciec/beagle"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	selector := c.Selector
	if selector == "" {
		res, err := deps.Scanner.FetchAll(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", beagle.ErrorMessage(err))
			return err
		}
		if res.Selector == "" {
			fmt.Fprintf(deps.Stderr, "error: no repeating links found on %s. Pass --selector to choose one.\n", c.URL)
			return beagle.Errorf(beagle.EINVALID, "no repeating links found on %s", c.URL)
		}
		selector = res.Selector
	}

	source := &beagle.Source{
		Name:     c.Name,
		URL:      c.URL,
		Selector: selector,
	}
	if err := deps.Sources.CreateSource(deps.Ctx, source); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", beagle.ErrorMessage(err))
		return err
	}

	if deps.JSON {
		return writeJSON(deps.Stdout, source)
	}
	fmt.Fprintf(deps.Stdout, "Added source %q (%s)\n  selector: %s\n", source.Name, source.ID, source.Selector)
	return nil
}

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sources, err := deps.Sources.FindSources(deps.Ctx, beagle.SourceFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", beagle.ErrorMessage(err))
		return err
	}

	if deps.JSON {
		if sources == nil {
			sources = []*beagle.Source{}
		}
		return writeJSON(deps.Stdout, sources)
	}

	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources found. Use 'beagle add' to watch a page.")
		return nil
	}

	for _, s := range sources {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.ID, s.Name, s.URL)
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return beagle.Errorf(beagle.EINVALID, "use --force to confirm deletion")
	}

	source, err := findSourceByName(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Sources.DeleteSource(deps.Ctx, source.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", beagle.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted source %q\n", source.Name)
	return nil
}

func findSourceByName(deps *Dependencies, name string) (*beagle.Source, error) {
	sources, err := deps.Sources.FindSources(deps.Ctx, beagle.SourceFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", beagle.ErrorMessage(err))
		return nil, err
	}
	if len(sources) == 0 {
		fmt.Fprintf(deps.Stderr, "error: source %q not found. Use 'beagle list' to see watched pages.\n", name)
		return nil, beagle.Errorf(beagle.ENOTFOUND, "source %q not found", name)
	}
	return sources[0], nil
}
