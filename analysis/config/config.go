// Copyright The dg Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxSetSize bounds the size of a writer set before it collapses to the UnknownMemory
// sentinel (analysis/rd's precision cap). It is deliberately small: most targets in practice
// have one or a handful of reaching writers, and a cap this low only engages in pathological
// cases, exactly where collapsing helps the analysis terminate quickly.
const DefaultMaxSetSize = 32

var (
	// configFile is the global config file path, set by SetGlobalConfig.
	configFile string
)

// SetGlobalConfig sets the global config filename.
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file previously set by SetGlobalConfig.
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config is the top-level configuration object for the reaching-definitions engine. To add
// elements to a config file, add fields to this struct; fields absent from the file keep their
// NewDefault value.
type Config struct {
	Options `yaml:",inline"`

	sourceFile string
}

// Options holds the knobs that change the engine's precision or its handling of calls and
// unresolved offsets, as opposed to purely cosmetic settings like LogLevel.
type Options struct {
	// MaxSetSize caps the number of writers DefinitionsMap will track per interval or per
	// unknown-bucket before collapsing it to {UnknownMemory}. Must be >= 1.
	MaxSetSize uint `yaml:"max-set-size"`

	// StrongUpdateUnknownSize controls what a strong (Overwrites) write with an unknown
	// offset or length does to a target's existing precise intervals. See
	// DefinitionsMap.Update's doc comment for the exact semantics; default false.
	StrongUpdateUnknownSize bool `yaml:"strong-update-unknown-size"`

	// OpaqueCallKillsAll controls whether a CALL to a callee the front end did not expand
	// is modeled as a write to UnknownMemory across [0, UNKNOWN). Default true: this is the
	// sound default, since an unexpanded callee might write anything.
	OpaqueCallKillsAll bool `yaml:"opaque-call-kills-all"`

	// LogLevel controls the verbosity of the LogGroup built from this config.
	LogLevel int `yaml:"log-level"`
}

// NewDefault returns the engine's default configuration.
func NewDefault() *Config {
	return &Config{
		Options: Options{
			MaxSetSize:              DefaultMaxSetSize,
			StrongUpdateUnknownSize: false,
			OpaqueCallKillsAll:      true,
			LogLevel:                int(InfoLevel),
		},
	}
}

// Load reads a YAML configuration from filename, starting from NewDefault and overriding
// fields present in the file.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file: %w", err)
	}
	cfg.sourceFile = filename

	if cfg.MaxSetSize == 0 {
		cfg.MaxSetSize = DefaultMaxSetSize
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	return cfg, nil
}

// SourceFile returns the filename c was loaded from, or the empty string for a NewDefault
// config that was never loaded from disk.
func (c Config) SourceFile() string { return c.sourceFile }

// Validate checks the invariants the analysis driver requires of a Config before it can be
// used, returning an error naming the first violation found.
func (c Config) Validate() error {
	if c.MaxSetSize == 0 {
		return fmt.Errorf("config: max-set-size must be >= 1")
	}
	return nil
}
