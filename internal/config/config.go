// Package config loads the classification CLI's configuration from an
// optional YAML file, overlaid by command-line flags.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of an optional YAML config file. Every field
// has a corresponding CLI flag that takes precedence when set explicitly.
type File struct {
	Metric       string `yaml:"metric"`
	Device       string `yaml:"device"`
	Residency    string `yaml:"residency"`
	Tier         string `yaml:"tier"`
	CubePath     string `yaml:"cube_path"`
	SpectraPath  string `yaml:"spectra_path"`
	OutputPath   string `yaml:"output_path"`
}

// Load reads and parses a YAML config file. A missing path is not an error:
// it returns a zero-value File so every field falls through to its flag
// default.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, err
	}
	return f, nil
}

// Merge overlays override onto base, preferring override's fields whenever
// they are non-empty. Used to apply CLI flags on top of a config file.
func Merge(base, override File) File {
	out := base
	if override.Metric != "" {
		out.Metric = override.Metric
	}
	if override.Device != "" {
		out.Device = override.Device
	}
	if override.Residency != "" {
		out.Residency = override.Residency
	}
	if override.Tier != "" {
		out.Tier = override.Tier
	}
	if override.CubePath != "" {
		out.CubePath = override.CubePath
	}
	if override.SpectraPath != "" {
		out.SpectraPath = override.SpectraPath
	}
	if override.OutputPath != "" {
		out.OutputPath = override.OutputPath
	}
	return out
}
