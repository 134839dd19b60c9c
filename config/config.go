// Package config holds the runtime settings of the ebe binaries. Values come
// from the defaults, then an optional YAML file, then EBE_* environment
// variables, then command-line flags.
package config

import (
	"bytes"
	"io"
	"os"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	HostEbiten   = "ebiten"
	HostTerminal = "terminal"

	FormatJSON    = "json"
	FormatConsole = "console"
)

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Host     string `yaml:"host" config:"EBE_HOST"`
	Title    string `yaml:"title" config:"EBE_TITLE"`
	Scale    int    `yaml:"scale" config:"EBE_SCALE"`
	// AssetDir holds the game's image and sound files. Empty selects the
	// placeholder set built into the binary.
	AssetDir string `yaml:"asset_dir" config:"EBE_ASSET_DIR"`
	Seed     uint64 `yaml:"seed" config:"EBE_SEED"`
	DebugUI  bool   `yaml:"debug_ui" config:"EBE_DEBUG_UI"`

	LogLevel  string `yaml:"log_level" config:"EBE_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" config:"EBE_LOG_FORMAT"`
	LogFile   string `yaml:"log_file" config:"EBE_LOG_FILE"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Host:      HostEbiten,
		Title:     "ebe click",
		Scale:     2,
		LogLevel:  "info",
		LogFormat: FormatConsole,
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped when
// path is empty) and the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "open config file")
		}
		defer func() { _ = f.Close() }()

		if err := cfg.Decode(f); err != nil {
			return Config{}, errors.Wrapf(err, "config file %s", path)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Decode overlays the YAML document read from r. Unknown keys are rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return errors.Wrap(ErrInvalid, typeErr.Error())
		}
		return errors.Wrap(err, "decode yaml")
	}
	return nil
}

// ApplyEnv overrides every field whose EBE_* variable is set.
func (c *Config) ApplyEnv() error {
	return errors.Wrap(jlconfig.FromEnv().To(c), "read environment")
}

// Validate reports the first setting the binaries cannot run with.
func (c Config) Validate() error {
	switch c.Host {
	case HostEbiten, HostTerminal:
	default:
		return errors.Wrapf(ErrInvalid, "unknown host %q", c.Host)
	}
	if c.Scale < 1 {
		return errors.Wrapf(ErrInvalid, "scale %d is below 1", c.Scale)
	}
	switch c.LogFormat {
	case FormatJSON, FormatConsole:
	default:
		return errors.Wrapf(ErrInvalid, "unknown log format %q", c.LogFormat)
	}
	if c.LogLevel == "" {
		return errors.Wrap(ErrInvalid, "empty log level")
	}
	return nil
}

// String renders c as YAML.
func (c Config) String() string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	_ = enc.Encode(c)
	_ = enc.Close()
	return buf.String()
}
