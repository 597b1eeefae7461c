package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/mapgen/compiler/gen"
	"github.com/syssam/mapgen/compiler/genlog"
)

const (
	entityDir = "../../compiler/load/testdata/entity"
	queryDir  = "../../compiler/load/testdata/query"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.SetOut(&out)
	app.SetErr(&bytes.Buffer{})
	app.SetArgs(append(args, "--env-file", ""))
	err := app.Execute()
	return out.String(), err
}

func TestEnvOptions(t *testing.T) {
	env := map[string]string{
		"MAPGEN_TARGET":         "./mappers",
		"MAPGEN_PACKAGE":        "mappers",
		"MAPGEN_ENTITY_PACKAGE": "./entity",
		"MAPGEN_ENGINE":         "pongo2",
		"MAPGEN_WORKERS":        "3",
		"MAPGEN_LOG_DRIVER":     "sqlite",
		"MAPGEN_LOG_DSN":        "file:mapgen.db",
		"MAPGEN_QUERY_PACKAGE":  "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	opts, err := envOptions(lookup)
	require.NoError(t, err)

	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	assert.Equal(t, "./mappers", cfg.Target)
	assert.Equal(t, "mappers", cfg.Package)
	assert.Equal(t, "./entity", cfg.EntityPackage)
	assert.Equal(t, gen.EnginePongo2, cfg.Engine)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, genlog.SQLite, cfg.LogDriver)
	assert.Equal(t, "file:mapgen.db", cfg.LogDSN)
	assert.Empty(t, cfg.QueryPackage)

	env["MAPGEN_WORKERS"] = "many"
	_, err = envOptions(lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPGEN_WORKERS")

	delete(env, "MAPGEN_WORKERS")
	delete(env, "MAPGEN_LOG_DSN")
	opts, err = envOptions(lookup)
	require.NoError(t, err)
	_, err = gen.NewConfig(opts...)
	assert.True(t, gen.IsConfigError(err), "a log driver needs a dsn")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MAPGEN_TEST_PACKAGE=fromfile\nMAPGEN_TEST_KEPT=fromfile\n"), 0o644))
	t.Setenv("MAPGEN_TEST_KEPT", "fromenv")
	t.Setenv("MAPGEN_TEST_PACKAGE", "")
	require.NoError(t, os.Unsetenv("MAPGEN_TEST_PACKAGE"))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "fromfile", os.Getenv("MAPGEN_TEST_PACKAGE"))
	assert.Equal(t, "fromenv", os.Getenv("MAPGEN_TEST_KEPT"))

	require.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, loadEnvFile(""))
}

func TestConfigFlags(t *testing.T) {
	var f configFlags
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{
		"--target", "./out",
		"-e", "./entity",
		"--workers", "2",
		"--feature", "sidecar",
		"--without-feature", "glue",
		"--sidecar-path", "fragments.msgpack",
	}))

	opts, err := f.options(fs)
	require.NoError(t, err)
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	assert.Equal(t, "./out", cfg.Target)
	assert.Equal(t, "./entity", cfg.EntityPackage)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "fragments.msgpack", cfg.SidecarPath)
	assert.Equal(t, []gen.Feature{gen.FeatureSidecar}, cfg.Features)
	assert.Equal(t, gen.DefaultEncoding, cfg.Encoding, "unset flags keep the defaults")

	f = configFlags{}
	fs = pflag.NewFlagSet("generate", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"--feature", "graphql"}))
	_, err = f.options(fs)
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: ./from-file\npackage: mappers\nworkers: 5\n"), 0o644))

	g := &cmdGlobal{flagConfig: path}
	cmd := &cobra.Command{Use: "generate"}
	var f configFlags
	f.register(cmd.Flags())
	require.NoError(t, cmd.ParseFlags([]string{"--workers", "1"}))

	cfg, err := g.config(cmd, &f)
	require.NoError(t, err)
	assert.Equal(t, "./from-file", cfg.Target)
	assert.Equal(t, "mappers", cfg.Package)
	assert.Equal(t, 1, cfg.Workers, "flags win over the file")
}

func TestGenerateCommand(t *testing.T) {
	target := t.TempDir()
	out, err := execute(t, "generate",
		"--entity", entityDir,
		"--query", queryDir,
		"--target", target,
		"--package", "mappers",
	)
	require.Error(t, err)
	assert.Equal(t, "1 of 6 types failed", err.Error())
	assert.Contains(t, out, "3 generated, 2 skipped, 1 failed")
	assert.Contains(t, out, "failed    github.com/syssam/mapgen/compiler/load/testdata/entity.Broken")
	assert.Contains(t, out, "skipped   github.com/syssam/mapgen/compiler/load/testdata/entity.Draft")
	assert.FileExists(t, filepath.Join(target, "order_mapper.xml"))
	assert.FileExists(t, filepath.Join(target, "order_mapper.go"))

	out, err = execute(t, "generate", "--target", target)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, gen.IsSetupError(err))
}

func TestInspectCommand(t *testing.T) {
	out, err := execute(t, "inspect", "--entity", entityDir, "--query", queryDir)
	require.NoError(t, err)
	assert.Contains(t, out, "entity.Order -> orders (OrderMapper)")
	assert.Contains(t, out, "entity.OrderItem -> order_items (OrderItemMapper)")
	assert.Contains(t, out, "entity.Draft (not mapped)")
	assert.Contains(t, out, "entity.Broken error:")
	assert.Contains(t, out, "handler=EnumHandler[entity.Status]")
	assert.Contains(t, out, "query recent: created > :since")
	assert.Contains(t, out, "query CustomerIDEQ: customer_id = :CustomerIDEQ")
	assert.NotContains(t, out, "(*load.Model)")

	out, err = execute(t, "inspect", "--entity", entityDir, "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "(*load.Model)")

	_, err = execute(t, "inspect")
	require.Error(t, err)
}

func TestPrintReport(t *testing.T) {
	report := &gen.Report{
		RunID: "run-1",
		Entries: []genlog.Entry{
			{Type: "entity.Draft", Status: genlog.StatusSkipped},
			{Type: "entity.Order", Status: genlog.StatusGenerated},
			{Type: "entity.Broken", Status: genlog.StatusFailed, Reason: "bad directive"},
		},
		Generated: 1,
		Skipped:   1,
		Failed:    1,
	}

	var buf bytes.Buffer
	printReport(&buf, report, true)
	assert.Equal(t, "  skipped   entity.Draft\n"+
		"  generated entity.Order\n"+
		"  failed    entity.Broken\n"+
		"            bad directive\n"+
		"1 generated, 1 skipped, 1 failed (run run-1)\n", buf.String())

	buf.Reset()
	printReport(&buf, report, false)
	assert.Equal(t, "  failed    entity.Broken\n"+
		"            bad directive\n"+
		"1 generated, 1 skipped, 1 failed (run run-1)\n", buf.String())
}
