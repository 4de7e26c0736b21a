package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the config file is looked up when none is given.
const DefaultPath = "bikelogs.toml"

type Config struct {
	DataDir string `toml:"data_dir"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	LogToStderr bool   `toml:"log_to_stderr"`
	LogJSON     bool   `toml:"log_json"`

	Colors  Colors  `toml:"colors"`
	Export  Export  `toml:"export"`
	Convert Convert `toml:"convert"`
}

// Colors are lipgloss color strings: ANSI numbers ("3") or hex ("#FFD54A").
type Colors struct {
	Weekend  string `toml:"weekend"`
	WeekdayA string `toml:"weekday_a"`
	WeekdayB string `toml:"weekday_b"`
}

type Export struct {
	DBPath string `toml:"db_path"`
}

type Convert struct {
	FitDir  string `toml:"fit_dir"`
	JSONDir string `toml:"json_dir"`
}

func Default() *Config {
	return &Config{
		LogLevel:    "warn",
		LogToStderr: true,
		Colors: Colors{
			Weekend:  "3",
			WeekdayA: "2",
			WeekdayB: "10",
		},
		Export: Export{
			DBPath: "bikelogs.db",
		},
		Convert: Convert{
			FitDir:  "data",
			JSONDir: "data-out",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file
// is only an error when mustExist is set.
func Load(path string, mustExist bool) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !mustExist {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}
	return nil
}
