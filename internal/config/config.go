// Package config loads the engine's own tunables -- the ambient knobs the
// facade needs that have nothing to do with a track or a mix -- from a
// small YAML file, in the teacher's own "read file, unmarshal, apply
// defaults in code" style.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// EngineConfig holds engine-level tunables not carried by any individual
// export or play call.
type EngineConfig struct {
	DefaultCompressionLevel int    `yaml:"default_compression_level"`
	DefaultBitrateKbps      int    `yaml:"default_bitrate_kbps"`
	OutputDevicePreference  string `yaml:"output_device_preference"`
}

// Default returns the built-in defaults, used when no config file is
// present or a field is left unset.
func Default() EngineConfig {
	return EngineConfig{
		DefaultCompressionLevel: 5,
		DefaultBitrateKbps:      192,
		OutputDevicePreference:  "",
	}
}

// Load reads and parses a YAML file at path, starting from Default() and
// overwriting only the fields present in the file.
func Load(path string) (EngineConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}
