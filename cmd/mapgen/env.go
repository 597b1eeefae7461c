package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/syssam/mapgen/compiler/gen"
)

// EnvPrefix prefixes every environment variable read by mapgen.
const EnvPrefix = "MAPGEN_"

// loadEnvFile loads path into the environment when it exists. Variables
// already set are kept.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

var envVars = []struct {
	name string
	opt  func(string) (gen.Option, error)
}{
	{"TARGET", str(gen.WithTarget)},
	{"PACKAGE", str(gen.WithPackage)},
	{"ENTITY_PACKAGE", str(gen.WithEntityPackage)},
	{"QUERY_PACKAGE", str(gen.WithQueryPackage)},
	{"TEMPLATE_DIR", str(gen.WithTemplateDir)},
	{"ENGINE", str(gen.WithEngine)},
	{"ENGINE_VERSION", str(gen.WithEngineVersion)},
	{"ENCODING", str(gen.WithEncoding)},
	{"LOG_PATH", str(gen.WithLogPath)},
	{"SIDECAR_PATH", str(gen.WithSidecarPath)},
	{"WORKERS", func(v string) (gen.Option, error) {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%sWORKERS: %w", EnvPrefix, err)
		}
		return gen.WithWorkers(n), nil
	}},
}

func str(opt func(string) gen.Option) func(string) (gen.Option, error) {
	return func(v string) (gen.Option, error) {
		return opt(v), nil
	}
}

// envOptions returns the options of the MAPGEN_* variables that are set.
func envOptions(lookup func(string) (string, bool)) ([]gen.Option, error) {
	var opts []gen.Option
	for _, ev := range envVars {
		v, ok := lookup(EnvPrefix + ev.name)
		if !ok || v == "" {
			continue
		}
		opt, err := ev.opt(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	driver, _ := lookup(EnvPrefix + "LOG_DRIVER")
	dsn, _ := lookup(EnvPrefix + "LOG_DSN")
	if driver != "" || dsn != "" {
		opts = append(opts, gen.WithLogDB(driver, dsn))
	}
	return opts, nil
}
