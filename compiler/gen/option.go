package gen

import (
	"errors"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/syssam/mapgen/compiler/genlog"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
// The directory where descriptors and glue will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the Go package name of the generated glue.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithEntityPackage sets the package pattern of the entity types.
func WithEntityPackage(pattern string) Option {
	return func(c *Config) error {
		if pattern == "" {
			return NewConfigError("EntityPackage", nil, "entity package cannot be empty")
		}
		c.EntityPackage = pattern
		return nil
	}
}

// WithQueryPackage sets the package pattern of the query-model types.
// An empty pattern disables query models.
func WithQueryPackage(pattern string) Option {
	return func(c *Config) error {
		c.QueryPackage = pattern
		return nil
	}
}

// WithBuildFlags sets custom build flags for loading the model packages.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// WithTemplateDir sets the directory templates are loaded from.
func WithTemplateDir(dir string) Option {
	return func(c *Config) error {
		c.TemplateDir = dir
		return nil
	}
}

// WithEngine selects the template engine: "text" or "pongo2".
func WithEngine(name string) Option {
	return func(c *Config) error {
		switch name {
		case EngineText, EnginePongo2:
			c.Engine = name
			return nil
		default:
			return NewConfigError("Engine", name, "unsupported engine; use text or pongo2")
		}
	}
}

// WithEngineVersion sets the engine version token checked at setup.
func WithEngineVersion(version string) Option {
	return func(c *Config) error {
		c.EngineVersion = version
		return nil
	}
}

// WithEncoding sets the text encoding of the descriptors, e.g. "utf-8" or "gbk".
func WithEncoding(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("Encoding", nil, "encoding cannot be empty")
		}
		c.Encoding = name
		return nil
	}
}

// WithQuerySuffix sets the suffix that names the query model of an entity.
func WithQuerySuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" {
			return NewConfigError("QuerySuffix", nil, "query suffix cannot be empty")
		}
		c.QuerySuffix = suffix
		return nil
	}
}

// WithMapperSuffix sets the suffix appended to the model name of every mapper.
func WithMapperSuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" {
			return NewConfigError("MapperSuffix", nil, "mapper suffix cannot be empty")
		}
		c.MapperSuffix = suffix
		return nil
	}
}

// WithDescriptorExt sets the file extension of the descriptors.
func WithDescriptorExt(ext string) Option {
	return func(c *Config) error {
		if ext == "" || ext[0] != '.' {
			return NewConfigError("DescriptorExt", ext, "extension must start with a dot")
		}
		c.DescriptorExt = ext
		return nil
	}
}

// WithEnumHandler sets the handler format of enum fields.
func WithEnumHandler(format string) Option {
	return func(c *Config) error {
		c.EnumHandler = format
		return nil
	}
}

// WithVersion sets the generator version stamped into the mappers.
func WithVersion(version string) Option {
	return func(c *Config) error {
		if version == "" {
			return NewConfigError("Version", nil, "version cannot be empty")
		}
		c.Version = version
		return nil
	}
}

// WithHeader sets the file header comment of the generated glue.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of model types processed in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithLogPath writes the generation log as JSON lines to the given file.
func WithLogPath(path string) Option {
	return func(c *Config) error {
		c.LogPath = path
		return nil
	}
}

// WithLogDB writes the generation log to a database table.
// Supported drivers: "mysql", "postgres", "sqlite".
func WithLogDB(driver, dsn string) Option {
	return func(c *Config) error {
		if !slices.Contains(genlog.Drivers(), driver) {
			return NewConfigError("LogDriver", driver, "unsupported driver; use mysql, postgres, or sqlite")
		}
		if dsn == "" {
			return NewConfigError("LogDSN", nil, "data source name cannot be empty")
		}
		c.LogDriver, c.LogDSN = driver, dsn
		return nil
	}
}

// WithGenLog sets the generation log directly.
func WithGenLog(l genlog.Log) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Log", nil, "log cannot be nil")
		}
		c.Log = l
		return nil
	}
}

// WithLogger sets the logger of the run diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// WithSidecarPath sets the fragment store of the sidecar feature.
func WithSidecarPath(path string) Option {
	return func(c *Config) error {
		c.SidecarPath = path
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !c.enabled(f) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables the named features, including the ones
// enabled by default.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if _, ok := FeatureByName(name); !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
		}
		c.Features = slices.DeleteFunc(c.Features, func(f Feature) bool {
			return slices.Contains(names, f.Name)
		})
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
