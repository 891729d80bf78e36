package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/joymap/internal/configpaths"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit writes a configuration template for the global options or one command.
type ConfigInit struct {
	Command string `arg:"" optional:"" name:"command" help:"Options to generate a template for" enum:"global,check,guid,lookup,replay,watch" default:"global"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to <command>.<format> in the current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// globalOptions mirrors the layout of the global flags in the root CLI.
type globalOptions struct {
	Log LogOptions `embed:"" prefix:"log."`

	Globals `embed:""`
}

var templateTypes = map[string]reflect.Type{
	"global": reflect.TypeOf(globalOptions{}),
	"check":  reflect.TypeOf(Check{}),
	"guid":   reflect.TypeOf(Guid{}),
	"lookup": reflect.TypeOf(Lookup{}),
	"replay": reflect.TypeOf(Replay{}),
	"watch":  reflect.TypeOf(Watch{}),
}

// Run is called by Kong when config init is executed.
func (c *ConfigInit) Run() error {
	data, err := c.render()
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = c.Command + "." + configpaths.Ext(c.Format)
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func (c *ConfigInit) render() ([]byte, error) {
	t, ok := templateTypes[c.Command]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", c.Command)
	}
	root := buildMapFromStruct(t)

	switch strings.ToLower(c.Format) {
	case "json", "":
		return json.MarshalIndent(root, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	default:
		return nil, fmt.Errorf("unsupported format: %s", c.Format)
	}
}

// buildMapFromStruct collects the flags of t with their defaults, keyed the
// way Kong's configuration resolvers look them up. Positional arguments are
// skipped since config files cannot set them.
func buildMapFromStruct(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		if _, isArg := f.Tag.Lookup("arg"); isArg {
			continue
		}

		if _, ok := f.Tag.Lookup("embed"); ok || (f.Anonymous && f.Type.Kind() == reflect.Struct) {
			sub := buildMapFromStruct(f.Type)
			if name := strings.TrimSuffix(f.Tag.Get("prefix"), "."); name != "" {
				out[name] = sub
			} else {
				for k, v := range sub {
					out[k] = v
				}
			}
			continue
		}

		key := f.Tag.Get("name")
		if key == "" {
			key = snakeCase(f.Name)
		}
		if val := defaultValueForField(f.Type, f.Tag.Get("default")); val != nil {
			out[strings.ReplaceAll(key, "-", "_")] = val
		}
	}
	return out
}

// snakeCase turns a Go field name into a config key: DeadZone -> dead_zone, DB -> db.
func snakeCase(s string) string {
	r := []rune(s)
	var b strings.Builder
	for i, c := range r {
		if unicode.IsUpper(c) && i > 0 {
			prevLower := unicode.IsLower(r[i-1])
			nextLower := i+1 < len(r) && unicode.IsLower(r[i+1])
			if prevLower || (unicode.IsUpper(r[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(c))
	}
	return b.String()
}

func defaultValueForField(t reflect.Type, def string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == reflect.TypeOf(time.Duration(0)) {
		if def == "" {
			return "0s"
		}
		return def
	}
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 0, 64)
		return n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(def, 0, 64)
		return n
	case reflect.Float32, reflect.Float64:
		f, _ := strconv.ParseFloat(def, 64)
		return f
	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			return nil
		}
		items := []string{}
		for _, s := range strings.Split(def, ",") {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
		return items
	case reflect.Struct:
		return buildMapFromStruct(t)
	default:
		return nil
	}
}
