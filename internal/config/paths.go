package config

import "path/filepath"

const (
	// DefaultConfigFile is read when no config file is given and it exists.
	DefaultConfigFile = "restdoc.yml"

	// DotEnvFile is loaded into the process environment before env overrides are applied.
	DotEnvFile = ".env"
)

// Paths holds the files the configuration is read from.
// Base is the directory relative constant sources are resolved against.
type Paths struct {
	Base       string
	ConfigFile string
	EnvFile    string
}

// NewPaths creates paths for configFile. Empty configFile means DefaultConfigFile in the working directory.
func NewPaths(configFile string) *Paths {
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	return &Paths{
		Base:       filepath.Dir(configFile),
		ConfigFile: configFile,
		EnvFile:    filepath.Join(filepath.Dir(configFile), DotEnvFile),
	}
}

// Resolve makes a relative path relative to the base directory.
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Base, path)
}
