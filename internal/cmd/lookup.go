package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/joymap/mapping"
)

// Lookup prints the mapping a device resolves to, trying the GUID before the name.
type Lookup struct {
	GUID string `name:"guid" help:"Device GUID (32 hex digits)"`
	Name string `help:"Device name"`
}

// Run is called by Kong when the lookup command is executed.
func (c *Lookup) Run(g *Globals, logger *slog.Logger) error {
	return c.run(os.Stdout, g, logger)
}

func (c *Lookup) run(out io.Writer, g *Globals, logger *slog.Logger) error {
	if c.GUID == "" && c.Name == "" {
		return errors.New("either --guid or --name is required")
	}
	var guid mapping.GUID
	if c.GUID != "" {
		var err error
		if guid, err = mapping.ParseGUID(c.GUID); err != nil {
			return err
		}
	}

	table, _, err := g.LoadTable(logger)
	if err != nil {
		return err
	}

	row := mapping.NotFound
	if c.GUID != "" {
		row = table.FindMappingByGUID(guid)
	}
	if row == mapping.NotFound && c.Name != "" {
		row = table.FindMappingByName(c.Name)
	}
	if row == mapping.NotFound {
		return ErrNoMapping
	}
	logger.Debug("mapping found", "row", row)
	fmt.Fprintln(out, table.At(row))
	return nil
}
