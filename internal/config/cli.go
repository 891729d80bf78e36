// Package config holds the root command line definition.
package config

import "github.com/Alia5/joymap/internal/cmd"

// CLI is the root of the joymap command line. Every flag can also be set in a
// JSON, YAML or TOML config file.
type CLI struct {
	Config string         `help:"Path to a configuration file (json, yaml or toml)" type:"path" env:"JOYMAP_CONFIG"`
	Log    cmd.LogOptions `embed:"" prefix:"log."`

	cmd.Globals `embed:""`

	Check  cmd.Check         `cmd:"" help:"Validate mapping databases"`
	Guid   cmd.Guid          `cmd:"" help:"Compute the GUID of a device from its USB ids and name"`
	Lookup cmd.Lookup        `cmd:"" help:"Print the mapping a device resolves to"`
	Replay cmd.Replay        `cmd:"" help:"Feed a script of raw events through the mapper"`
	Watch  cmd.Watch         `cmd:"" help:"Reload mappings whenever a database changes"`
	Cfg    cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}
