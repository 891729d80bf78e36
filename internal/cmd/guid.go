package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/Alia5/joymap/mapping"
)

// Guid synthesizes the identifier a device with the given USB ids would report.
type Guid struct {
	Name            string `arg:"" optional:"" help:"Device name"`
	Bus             string `help:"Bus type (3 = USB, 5 = Bluetooth)" default:"3"`
	Vendor          string `help:"Vendor id, decimal or 0x hex" default:"0"`
	Product         string `help:"Product id, decimal or 0x hex" default:"0"`
	Version         string `help:"Product version, decimal or 0x hex" default:"0"`
	DriverSignature string `help:"Driver signature byte" default:"0"`
	DriverData      string `help:"Driver data byte" default:"0"`
	Lookup          bool   `help:"Also print the mapping this device resolves to"`
}

// Run is called by Kong when the guid command is executed.
func (c *Guid) Run(g *Globals, logger *slog.Logger) error {
	return c.run(os.Stdout, g, logger)
}

func (c *Guid) run(out io.Writer, g *Globals, logger *slog.Logger) error {
	guid, err := c.guid()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, guid)
	if !c.Lookup {
		return nil
	}

	table, _, err := g.LoadTable(logger)
	if err != nil {
		return err
	}
	row := table.FindMappingByGUID(guid)
	if row == mapping.NotFound {
		row = table.FindMappingByName(c.Name)
	}
	if row == mapping.NotFound {
		return ErrNoMapping
	}
	fmt.Fprintln(out, table.At(row))
	return nil
}

func (c *Guid) guid() (mapping.GUID, error) {
	var vals [6]uint64
	fields := []struct {
		name string
		s    string
		bits int
	}{
		{"bus", c.Bus, 16},
		{"vendor", c.Vendor, 16},
		{"product", c.Product, 16},
		{"version", c.Version, 16},
		{"driver-signature", c.DriverSignature, 8},
		{"driver-data", c.DriverData, 8},
	}
	for i, f := range fields {
		if f.s == "" {
			continue
		}
		v, err := strconv.ParseUint(f.s, 0, f.bits)
		if err != nil {
			return mapping.GUID{}, fmt.Errorf("invalid %s %q: %w", f.name, f.s, err)
		}
		vals[i] = v
	}
	return mapping.CreateGUID(uint16(vals[0]), uint16(vals[1]), uint16(vals[2]), uint16(vals[3]),
		c.Name, uint8(vals[4]), uint8(vals[5])), nil
}
