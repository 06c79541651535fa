package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// IncludeGroup is a commented block of #include lines.
type IncludeGroup struct {
	Comment string   `yaml:"comment" toml:"comment"`
	Files   []string `yaml:"files" toml:"files"`
}

// Config controls the fixed parts of an emitted header.
type Config struct {
	GuardPrefix         string         `yaml:"guard_prefix" toml:"guard_prefix"`
	BaseClass           string         `yaml:"base_class" toml:"base_class"`
	PersistentBaseClass string         `yaml:"persistent_base_class" toml:"persistent_base_class"`
	IndentWidth         int            `yaml:"indent_width" toml:"indent_width"`
	Banner              []string       `yaml:"banner" toml:"banner"`
	Includes            []IncludeGroup `yaml:"includes" toml:"includes"`
	// Concurrency bounds GenerateAll. Zero means GOMAXPROCS.
	Concurrency int `yaml:"concurrency" toml:"concurrency"`
}

func DefaultConfig() Config {
	return Config{
		GuardPrefix:         "OBJGEN_OBJECT",
		BaseClass:           "libcomp::Object",
		PersistentBaseClass: "libcomp::PersistentObject",
		IndentWidth:         4,
		Banner: []string{
			"THIS FILE IS GENERATED",
			"DO NOT MODIFY THE CONTENTS",
			"DO NOT COMMIT TO VERSION CONTROL",
		},
		Includes: []IncludeGroup{
			{Comment: "libcomp Includes", Files: []string{"Convert.h", "CString.h", "Object.h", "PersistentObject.h"}},
			{Comment: "Standard C++11 Includes", Files: []string{"array"}},
			{Comment: "tinyxml2 Includes", Files: []string{"PushIgnore.h", "tinyxml2.h", "PopIgnore.h"}},
		},
	}
}

// LoadConfig reads a YAML or TOML file, chosen by extension, on top of
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedConfig, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.GuardPrefix == "":
		return fmt.Errorf("%w: empty guard prefix", ErrInvalidConfig)
	case c.BaseClass == "" || c.PersistentBaseClass == "":
		return fmt.Errorf("%w: empty base class", ErrInvalidConfig)
	case c.IndentWidth <= 0:
		return fmt.Errorf("%w: indent width %d", ErrInvalidConfig, c.IndentWidth)
	case c.Concurrency < 0:
		return fmt.Errorf("%w: concurrency %d", ErrInvalidConfig, c.Concurrency)
	}
	for _, g := range c.Includes {
		if len(g.Files) == 0 {
			return fmt.Errorf("%w: include group %q is empty", ErrInvalidConfig, g.Comment)
		}
	}
	return nil
}

func (c Config) limit() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}
