package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Check validates mapping databases and reports every rejected line.
type Check struct {
	Strict bool `help:"Fail when any line is rejected"`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(g *Globals, logger *slog.Logger) error {
	return c.run(os.Stdout, g, logger)
}

func (c *Check) run(out io.Writer, g *Globals, logger *slog.Logger) error {
	table, files, err := g.LoadTable(logger)
	if err != nil {
		return err
	}

	rejected := 0
	for _, f := range files {
		for _, le := range f.Result.Rejected {
			fmt.Fprintf(out, "%s:%d: %v\n", f.Path, le.Line, le.Err)
		}
		fmt.Fprintf(out, "%s: %d added, %d rejected\n", f.Path, f.Result.Added, len(f.Result.Rejected))
		rejected += len(f.Result.Rejected)
	}
	fmt.Fprintf(out, "%d mappings in %d files\n", table.NumMappings(), len(files))

	if c.Strict && rejected > 0 {
		return fmt.Errorf("%w: %d", ErrRejected, rejected)
	}
	return nil
}
