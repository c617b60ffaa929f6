// Package config holds MiniLang's compile/run-time tunables and the
// optional minilang.yaml override file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SourceFileExt is the recognized MiniLang source extension.
const SourceFileExt = ".mini"

// Fixed language-level limits. The parser and VM enforce the same values
// through their own constants. minilang.yaml cannot override them — only
// the ambient settings below (Banner, TraceDefault, CachePath).
const (
	MaxFunctionParams = 255
	MaxCallArguments  = 255
	MaxCallDepth      = 64
)

// Builtin function names. The VM registers its built-ins under these same
// names, written as literals in internal/vm.
const (
	PrintFuncName   = "print"
	InputFuncName   = "input"
	Str2IntFuncName = "str2int"
)

// Config is the optional minilang.yaml sidecar: ambient settings a host
// environment may want to override without recompiling. Absent any file,
// Default() is used as-is.
type Config struct {
	// Banner controls whether cmd/minilang prints its startup banner.
	Banner bool `yaml:"banner"`

	// TraceDefault enables --trace-equivalent instruction logging even
	// without the flag being passed explicitly.
	TraceDefault bool `yaml:"trace_default"`

	// CachePath overrides the default compiled-chunk cache location: see
	// internal/cache. Empty disables the cache.
	CachePath string `yaml:"cache_path"`
}

// Default returns MiniLang's built-in settings, used when no
// minilang.yaml is present.
func Default() Config {
	return Config{
		Banner:       true,
		TraceDefault: false,
		CachePath:    "",
	}
}

// Load reads and parses a minilang.yaml file at path, overlaying it onto
// Default(). A missing file is not an error — it returns Default()
// unchanged, since the config file is entirely optional.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
