package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/syssam/mapgen/compiler/genlog"
)

// Defaults applied by NewConfig and LoadConfig.
const (
	DefaultEncoding      = "utf-8"
	DefaultQuerySuffix   = "Query"
	DefaultMapperSuffix  = "Mapper"
	DefaultDescriptorExt = ".xml"
	DefaultEnumHandler   = "EnumHandler[%s]"
	DefaultEngine        = EngineText
	DefaultVersion       = "v0.1.0"
	DefaultHeader        = "Code generated by mapgen. DO NOT EDIT."
)

// Config holds the configuration of one generation run.
type Config struct {
	// Target is the directory the descriptors and glue are written to.
	Target string `yaml:"target"`
	// Package is the Go package name of the generated glue.
	Package string `yaml:"package"`
	// EntityPackage and QueryPackage are the package patterns holding the
	// entity and the query-model types.
	EntityPackage string `yaml:"entity_package"`
	QueryPackage  string `yaml:"query_package"`
	// BuildFlags are passed to the build system when loading packages.
	BuildFlags []string `yaml:"build_flags"`
	// TemplateDir overrides the embedded templates by name.
	TemplateDir string `yaml:"template_dir"`
	// Engine selects the template engine and EngineVersion the
	// engine version token checked at setup.
	Engine        string `yaml:"engine"`
	EngineVersion string `yaml:"engine_version"`
	// Encoding is the text encoding of the descriptors.
	Encoding      string `yaml:"encoding"`
	QuerySuffix   string `yaml:"query_suffix"`
	MapperSuffix  string `yaml:"mapper_suffix"`
	DescriptorExt string `yaml:"descriptor_ext"`
	// EnumHandler is the handler of enum fields. %s is replaced by the
	// package-qualified enum type.
	EnumHandler string `yaml:"enum_handler"`
	// Version is the generator version stamped into every mapper.
	Version string `yaml:"version"`
	Header  string `yaml:"header"`
	// Workers bounds the number of model types processed in parallel.
	Workers int `yaml:"workers"`
	// LogPath is the generation log file. LogDriver and LogDSN select a
	// database log instead.
	LogPath   string `yaml:"log_path"`
	LogDriver string `yaml:"log_driver"`
	LogDSN    string `yaml:"log_dsn"`
	// SidecarPath is the fragment store of the sidecar feature.
	SidecarPath string    `yaml:"sidecar_path"`
	Features    []Feature `yaml:"features"`

	// Log overrides the generation log built from LogPath or LogDriver.
	Log genlog.Log `yaml:"-"`
	// Logger receives the run diagnostics.
	Logger logrus.FieldLogger `yaml:"-"`
}

func defaultConfig() *Config {
	return &Config{
		Engine:        DefaultEngine,
		Encoding:      DefaultEncoding,
		QuerySuffix:   DefaultQuerySuffix,
		MapperSuffix:  DefaultMapperSuffix,
		DescriptorExt: DefaultDescriptorExt,
		EnumHandler:   DefaultEnumHandler,
		Version:       DefaultVersion,
		Header:        DefaultHeader,
		Workers:       runtime.GOMAXPROCS(0),
		Features:      DefaultFeatures(),
	}
}

// FeatureEnabled reports if the given feature name is enabled.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if _, ok := FeatureByName(name); !ok {
		return false, fmt.Errorf("unexpected feature name %q", name)
	}
	return slices.ContainsFunc(c.Features, func(f Feature) bool {
		return f.Name == name
	}), nil
}

// enabled is FeatureEnabled for the features declared in this package.
func (c *Config) enabled(f Feature) bool {
	ok, _ := c.FeatureEnabled(f.Name)
	return ok
}

// Validate reports the first missing or inconsistent option.
func (c *Config) Validate() error {
	switch {
	case c.Target == "":
		return NewConfigError("Target", nil, "missing target directory")
	case c.Package == "" && c.enabled(FeatureGlue):
		return NewConfigError("Package", nil, "the glue feature needs a package name")
	case c.Workers < 1:
		return NewConfigError("Workers", c.Workers, "must be positive")
	case c.MapperSuffix == "":
		return NewConfigError("MapperSuffix", nil, "cannot be empty")
	case c.enabled(FeatureSidecar) && c.SidecarPath == "":
		return NewConfigError("SidecarPath", nil, "the sidecar feature needs a sidecar path")
	case c.LogDriver != "" && c.LogDSN == "":
		return NewConfigError("LogDSN", nil, "a log driver needs a data source name")
	}
	return nil
}

// logger returns the configured logger or one that discards everything.
func (c *Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// LoadConfig reads a YAML configuration file on top of the defaults and
// applies the given options after it.
func LoadConfig(path string, opts ...Option) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := defaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}
