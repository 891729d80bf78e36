package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Alia5/joymap/internal/configpaths"
	"github.com/Alia5/joymap/joymap"
	"github.com/Alia5/joymap/mapping"
)

// AnyPlatform disables the platform filter when passed as --platform.
const AnyPlatform = "any"

var (
	ErrNoMapping = errors.New("no mapping found")
	ErrRejected  = errors.New("mapping database has rejected lines")
)

// LogOptions configure the process logger.
type LogOptions struct {
	Level     string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"JOYMAP_LOG_LEVEL"`
	File      string `help:"Also write logs to this file" type:"path" env:"JOYMAP_LOG_FILE"`
	EventFile string `help:"Dump raw and mapped events to this file" type:"path" env:"JOYMAP_LOG_EVENT_FILE"`
}

// Globals are the options shared by every command.
type Globals struct {
	Platform string   `help:"Only accept mappings for this platform ('any' accepts all, empty means this machine)" env:"JOYMAP_PLATFORM"`
	DB       []string `help:"Mapping database files (defaults to gamecontrollerdb.txt in the working and config directory)" type:"path" env:"JOYMAP_DB"`
	DeadZone bool     `help:"Apply the XInput radial dead zones to both sticks" env:"JOYMAP_DEAD_ZONE"`
}

// Parser returns a parser honouring --platform.
func (g *Globals) Parser() *mapping.Parser {
	switch g.Platform {
	case "":
		return mapping.NewParser()
	case AnyPlatform:
		return &mapping.Parser{}
	default:
		return &mapping.Parser{Platform: g.Platform}
	}
}

// DBPaths returns the configured mapping databases and whether they were given
// explicitly. Missing default databases are skipped, missing explicit ones are errors.
func (g *Globals) DBPaths() ([]string, bool) {
	if len(g.DB) > 0 {
		return g.DB, true
	}
	return configpaths.DefaultMappingDBPaths(), false
}

// DBFile is the load result of one mapping database.
type DBFile struct {
	Path   string
	Result mapping.LoadResult
}

// LoadTable reads every mapping database into a fresh table.
func (g *Globals) LoadTable(logger *slog.Logger) (*mapping.Table, []DBFile, error) {
	paths, explicit := g.DBPaths()
	table := mapping.NewTable(g.Parser())
	files := make([]DBFile, 0, len(paths))

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				logger.Debug("mapping database not found", "file", p)
				continue
			}
			return nil, nil, fmt.Errorf("read mapping database: %w", err)
		}
		res := table.AddMappingsFromFile(string(data))
		for _, le := range res.Rejected {
			logger.Debug("mapping line rejected", "file", p, "line", le.Line, "error", le.Err)
		}
		logger.Info("mapping database loaded", "file", p, "added", res.Added, "rejected", len(res.Rejected))
		files = append(files, DBFile{Path: p, Result: res})
	}
	return table, files, nil
}

// NewMapper creates a Mapper over table with the configured dead zones.
func (g *Globals) NewMapper(table *mapping.Table, logger *slog.Logger) *joymap.Mapper {
	m := joymap.New(table, logger)
	if g.DeadZone {
		m.SetStickDeadZones(joymap.LeftStickDeadZone, joymap.RightStickDeadZone)
	}
	return m
}
