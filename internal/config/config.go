package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cubahno/restdoc/pkg/constant"
	"github.com/cubahno/restdoc/pkg/executor"
	"github.com/cubahno/restdoc/pkg/taglet"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// RestURIKey is the configuration key of the REST base URI.
const RestURIKey = "tut.pori.javadocer.rest_uri"

var (
	ErrConfigFile = errors.New("failed to load config file")
	ErrOverride   = errors.New("invalid override")
	ErrInvalid    = errors.New("invalid configuration")
)

// Config is the main configuration struct.
// RestURI is the base URI service and method path segments are appended to, e.g. http://example.org/rest/.
// Timeout limits each HTTP call, 0 means no limit.
// UserAgent is sent with every request.
// Constants lists the sources of the constants available to tags.
// Tags holds the inline tag names.
// Extensions are the file types the preprocessor expands.
// OnError is the failure policy: abort or marker.
type Config struct {
	RestURI    string          `koanf:"-"`
	Timeout    time.Duration   `koanf:"timeout"`
	UserAgent  string          `koanf:"user_agent"`
	Constants  ConstantsConfig `koanf:"constants"`
	Tags       TagsConfig      `koanf:"tags"`
	Extensions []string        `koanf:"extensions"`
	OnError    string          `koanf:"on_error"`
	Paths      *Paths          `koanf:"-"`
}

// ConstantsConfig lists constant tables and Go packages whose constants are registered.
type ConstantsConfig struct {
	Files    []string        `koanf:"files"`
	Packages []PackageConfig `koanf:"packages"`
}

// PackageConfig is a Go package directory and the import path its constants are registered under.
type PackageConfig struct {
	Dir  string `koanf:"dir"`
	Path string `koanf:"path"`
}

type TagsConfig struct {
	Rest  string `koanf:"rest"`
	Value string `koanf:"value"`
}

// environment holds the supported environment overrides.
type environment struct {
	RestURI    string   `env:"TUT_PORI_JAVADOCER_REST_URI"`
	Timeout    string   `env:"RESTDOC_TIMEOUT"`
	UserAgent  string   `env:"RESTDOC_USER_AGENT"`
	OnError    string   `env:"RESTDOC_ON_ERROR"`
	Extensions []string `env:"RESTDOC_EXTENSIONS" envSeparator:","`
	Constants  []string `env:"RESTDOC_CONSTANTS" envSeparator:","`
}

func defaults() map[string]any {
	return map[string]any{
		"timeout":    "0s",
		"user_agent": executor.DefaultUserAgent,
		"tags.rest":  taglet.RestletName,
		"tags.value": taglet.ValueletName,
		"extensions": []string{".go", ".html", ".htm", ".md", ".txt"},
		"on_error":   string(taglet.PolicyAbort),
	}
}

// Load reads the configuration, lowest to highest precedence, from:
// defaults, the YAML config file, the .env file next to it and the environment, and sets (key=value).
// Empty configFile means DefaultConfigFile, which may be missing. An explicitly given file must exist.
func Load(configFile string, sets ...string) (*Config, error) {
	paths := NewPaths(configFile)

	k, err := newKoanf()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(paths.ConfigFile); statErr == nil || configFile != "" {
		if err := k.Load(file.Provider(paths.ConfigFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrConfigFile, paths.ConfigFile, err)
		}
		slog.Debug("Loaded config file", "path", paths.ConfigFile)
	}

	_ = godotenv.Load(paths.EnvFile)

	return build(k, paths, sets)
}

// NewConfigFromContent creates a new config from YAML content.
// Relative constant sources are resolved against the working directory.
func NewConfigFromContent(content []byte, sets ...string) (*Config, error) {
	k, err := newKoanf()
	if err != nil {
		return nil, err
	}

	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}

	return build(k, &Paths{Base: "."}, sets)
}

func newKoanf() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}
	return k, nil
}

func build(k *koanf.Koanf, paths *Paths, sets []string) (*Config, error) {
	if err := loadEnv(k); err != nil {
		return nil, err
	}

	overrides, err := ParseSets(sets)
	if err != nil {
		return nil, err
	}
	if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cfg.RestURI = k.String(RestURIKey)
	cfg.Paths = paths

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadEnv(k *koanf.Koanf) error {
	var e environment
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	values := make(map[string]any)
	if e.RestURI != "" {
		values[RestURIKey] = e.RestURI
	}
	if e.Timeout != "" {
		values["timeout"] = e.Timeout
	}
	if e.UserAgent != "" {
		values["user_agent"] = e.UserAgent
	}
	if e.OnError != "" {
		values["on_error"] = e.OnError
	}
	if len(e.Extensions) > 0 {
		values["extensions"] = e.Extensions
	}
	if len(e.Constants) > 0 {
		values["constants.files"] = e.Constants
	}

	return k.Load(confmap.Provider(values, "."), nil)
}

// ParseSets parses key=value overrides. Comma separated values of list keys are split when unmarshalled.
func ParseSets(sets []string) (map[string]any, error) {
	res := make(map[string]any, len(sets))
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w %q, expected key=value", ErrOverride, set)
		}
		res[key] = value
	}
	return res, nil
}

// Validate checks the values and normalizes the extensions.
// RestURI is not required here: it is validated each time a request is made.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalid, c.Timeout)
	}

	if _, err := taglet.ParseFailurePolicy(c.OnError); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if strings.TrimSpace(c.Tags.Rest) == "" || strings.TrimSpace(c.Tags.Value) == "" {
		return fmt.Errorf("%w: tag names must not be empty", ErrInvalid)
	}
	if c.Tags.Rest == c.Tags.Value {
		return fmt.Errorf("%w: tag names must differ, both are %q", ErrInvalid, c.Tags.Rest)
	}

	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}

	for _, pkg := range c.Constants.Packages {
		if pkg.Dir == "" || pkg.Path == "" {
			return fmt.Errorf("%w: constant packages need both dir and path", ErrInvalid)
		}
	}

	return nil
}

// FailurePolicy returns the parsed OnError value.
func (c *Config) FailurePolicy() taglet.FailurePolicy {
	policy, _ := taglet.ParseFailurePolicy(c.OnError)
	return policy
}

// Executor returns the executor configuration.
func (c *Config) Executor() executor.Config {
	return executor.Config{
		BaseURI:   c.RestURI,
		Timeout:   c.Timeout,
		UserAgent: c.UserAgent,
	}
}

// Registry loads all configured constant sources plus the extra table files into a new registry.
func (c *Config) Registry(extraFiles ...string) (*constant.Registry, error) {
	paths := c.Paths
	if paths == nil {
		paths = &Paths{Base: "."}
	}

	registry := constant.NewRegistry()

	for _, path := range c.Constants.Files {
		if err := registry.LoadFile(paths.Resolve(path)); err != nil {
			return nil, err
		}
	}

	for _, pkg := range c.Constants.Packages {
		if err := registry.LoadPackage(paths.Resolve(pkg.Dir), pkg.Path); err != nil {
			return nil, err
		}
	}

	for _, path := range extraFiles {
		if err := registry.LoadFile(path); err != nil {
			return nil, err
		}
	}

	slog.Debug("Constants loaded", "count", registry.Len())
	return registry, nil
}
