package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/mkowal/docmap"
	"github.com/mkowal/docmap/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	modules, err := deps.Runner.Run(deps.Ctx, c.Inputs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmap.ErrorMessage(err))
		return err
	}

	if c.Output != "" {
		if err := fs.NewWriter(c.Output).WriteModules(modules); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docmap.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d modules to %s\n", len(modules), c.Output)
		return nil
	}

	printModules(deps.Stdout, modules)
	return nil
}

// printModules renders the outline as an indented text tree.
func printModules(w io.Writer, modules []docmap.Module) {
	for i, m := range modules {
		fmt.Fprintf(w, "%d. %s (confidence %.0f%%)\n", i+1, m.Name, m.DisplayConfidence()*100)
		if m.Description != "" {
			fmt.Fprintf(w, "   %s\n", m.Description)
		}

		names := make([]string, 0, len(m.Submodules))
		for name := range m.Submodules {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if desc := m.Submodules[name]; desc != "" {
				fmt.Fprintf(w, "   - %s: %s\n", name, desc)
			} else {
				fmt.Fprintf(w, "   - %s\n", name)
			}
		}
	}
}
