package gen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/mapgen/compiler"
	"github.com/syssam/mapgen/compiler/gen"
	"github.com/syssam/mapgen/compiler/load"
)

func BenchmarkGenerate(b *testing.B) {
	d := &load.PackageDiscoverer{
		EntityPackage: "../load/testdata/entity",
		QueryPackage:  "../load/testdata/query",
	}
	entities, err := d.Entities(context.Background())
	require.NoError(b, err)
	queries, err := d.QueryModels(context.Background())
	require.NoError(b, err)
	static := &load.StaticDiscoverer{Models: entities, Queries: queries}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cfg := gen.MustNewConfig(
			gen.WithTarget(b.TempDir()),
			gen.WithPackage("mappers"),
		)
		_, err := gen.NewMapperGenerator(cfg, static).Generate(context.Background())
		require.NoError(b, err)
	}
}

func BenchmarkCompilerGenerate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		cfg := gen.MustNewConfig(
			gen.WithEntityPackage("../load/testdata/entity"),
			gen.WithTarget(b.TempDir()),
			gen.WithPackage("mappers"),
		)
		_, err := compiler.Generate(context.Background(), cfg)
		require.NoError(b, err)
	}
}
