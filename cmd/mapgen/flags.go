package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/syssam/mapgen/compiler/gen"
)

// configFlags are the configuration flags shared by the commands.
type configFlags struct {
	entity        string
	query         string
	target        string
	pkg           string
	templateDir   string
	engine        string
	engineVersion string
	encoding      string
	workers       int
	logPath       string
	logDriver     string
	logDSN        string
	sidecarPath   string
	buildFlags    []string
	features      []string
	noFeatures    []string
}

func (f *configFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.entity, "entity", "e", "", "Package pattern of the entity types")
	fs.StringVarP(&f.query, "query", "q", "", "Package pattern of the query-model types")
	fs.StringVarP(&f.target, "target", "t", "", "Output directory")
	fs.StringVarP(&f.pkg, "package", "p", "", "Go package name of the generated glue")
	fs.StringVar(&f.templateDir, "template-dir", "", "Directory of templates overriding the embedded ones")
	fs.StringVar(&f.engine, "engine", gen.DefaultEngine, "Template engine (text|pongo2)")
	fs.StringVar(&f.engineVersion, "engine-version", "", "Template engine version token")
	fs.StringVar(&f.encoding, "encoding", gen.DefaultEncoding, "Text encoding of the descriptors")
	fs.IntVarP(&f.workers, "workers", "w", 0, "Model types processed in parallel (default GOMAXPROCS)")
	fs.StringVar(&f.logPath, "log-path", "", "Generation log file (JSON lines)")
	fs.StringVar(&f.logDriver, "log-driver", "", "Generation log database driver (mysql|postgres|sqlite)")
	fs.StringVar(&f.logDSN, "log-dsn", "", "Generation log data source name")
	fs.StringVar(&f.sidecarPath, "sidecar-path", "", "Fragment store of the sidecar feature")
	fs.StringSliceVar(&f.buildFlags, "build-flags", nil, "Build flags used to load the packages")
	fs.StringSliceVar(&f.features, "feature", nil, "Features to enable")
	fs.StringSliceVar(&f.noFeatures, "without-feature", nil, "Features to disable")
}

// options returns the options of the flags set on the command line.
func (f *configFlags) options(fs *pflag.FlagSet) ([]gen.Option, error) {
	var opts []gen.Option
	set := func(name string, opt gen.Option) {
		if fs.Changed(name) {
			opts = append(opts, opt)
		}
	}
	set("entity", gen.WithEntityPackage(f.entity))
	set("query", gen.WithQueryPackage(f.query))
	set("target", gen.WithTarget(f.target))
	set("package", gen.WithPackage(f.pkg))
	set("template-dir", gen.WithTemplateDir(f.templateDir))
	set("engine", gen.WithEngine(f.engine))
	set("engine-version", gen.WithEngineVersion(f.engineVersion))
	set("encoding", gen.WithEncoding(f.encoding))
	set("workers", gen.WithWorkers(f.workers))
	set("log-path", gen.WithLogPath(f.logPath))
	set("sidecar-path", gen.WithSidecarPath(f.sidecarPath))
	set("build-flags", gen.WithBuildFlags(f.buildFlags...))
	if fs.Changed("log-driver") || fs.Changed("log-dsn") {
		opts = append(opts, gen.WithLogDB(f.logDriver, f.logDSN))
	}
	if len(f.features) > 0 {
		features := make([]gen.Feature, 0, len(f.features))
		for _, name := range f.features {
			feat, ok := gen.FeatureByName(name)
			if !ok {
				return nil, fmt.Errorf("unknown feature %q", name)
			}
			features = append(features, feat)
		}
		opts = append(opts, gen.WithFeatures(features...))
	}
	if len(f.noFeatures) > 0 {
		opts = append(opts, gen.WithoutFeatures(f.noFeatures...))
	}
	return opts, nil
}
