package gen

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dave/jennifer/jen"
)

// RuntimePkg is the import path of the runtime package used by the glue.
const RuntimePkg = "github.com/syssam/mapgen"

// GlueHandler emits the Go glue of a mapper: a mapgen.Mapping variable
// and a typed mapper exposing it.
type GlueHandler struct{}

// Name implements the handler label.
func (GlueHandler) Name() string { return "glue" }

// Handle implements Handler.
func (h GlueHandler) Handle(_ context.Context, c *MapperContext) error {
	if !c.Meta.Frozen() {
		return fmt.Errorf("mapper metadata of %s is not frozen", c.Model().Name)
	}
	w, err := c.Writer()
	if err != nil {
		return err
	}
	f := GlueFor(c.Config(), c.Meta)
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return fmt.Errorf("render glue: %w", err)
	}
	path, err := w.WriteGo(GlueFile(c.Meta.SimpleName), buf.Bytes())
	if err != nil {
		return err
	}
	c.AddOutput(h.Name(), path)
	return nil
}

// GlueFor builds the glue file of a frozen mapper.
func GlueFor(cfg *Config, meta *MapperMeta) *jen.File {
	f := newFile(cfg)
	mapping := lowerFirst(meta.MapperName) + "Mapping"

	f.Commentf("%s maps %s onto table %q.", mapping, meta.SimpleName, meta.Table)
	f.Var().Id(mapping).Op("=").Qual(RuntimePkg, "Mapping").Values(jen.Dict{
		jen.Id("Mapper"):   jen.Lit(meta.MapperName),
		jen.Id("Model"):    jen.Lit(meta.Model),
		jen.Id("Table"):    jen.Lit(meta.Table),
		jen.Id("Bindings"): bindings(meta),
		jen.Id("Queries"):  queries(meta),
	})
	f.Line()

	f.Commentf("%s is the generated mapper of %s.", meta.MapperName, meta.Model)
	f.Type().Id(meta.MapperName).Struct()
	recv := jen.Id("m").Id(meta.MapperName)

	f.Comment("Table returns the table name.")
	f.Func().Params(recv.Clone()).Id("Table").Params().String().Block(
		jen.Return(jen.Id(mapping).Dot("Table")),
	)
	f.Comment("Columns returns the mapped columns in field order.")
	f.Func().Params(recv.Clone()).Id("Columns").Params().Index().String().Block(
		jen.Return(jen.Id(mapping).Dot("Columns").Call()),
	)
	f.Comment("Mapping returns the full mapping.")
	f.Func().Params(recv.Clone()).Id("Mapping").Params().Qual(RuntimePkg, "Mapping").Block(
		jen.Return(jen.Id(mapping)),
	)
	if meta.HasQueryModel {
		f.Commentf("QueryModel is the parameter type of the %s finder.", meta.MapperName)
		f.Const().Id(meta.MapperName + "QueryModel").Op("=").Lit(meta.Query)
	}
	return f
}

func bindings(meta *MapperMeta) jen.Code {
	return jen.Index().Qual(RuntimePkg, "Binding").ValuesFunc(func(g *jen.Group) {
		for _, mm := range meta.MappingMetas {
			d := jen.Dict{
				jen.Id("Column"):   jen.Lit(mm.Column),
				jen.Id("Property"): jen.Lit(mm.Property),
			}
			if mm.EnumHandler != "" {
				d[jen.Id("EnumHandler")] = jen.Lit(mm.EnumHandler)
			}
			if mm.GoType != "" {
				d[jen.Id("GoType")] = jen.Lit(mm.GoType)
			}
			g.Values(d)
		}
	})
}

func queries(meta *MapperMeta) jen.Code {
	return jen.Map(jen.String()).String().Values(jen.DictFunc(func(d jen.Dict) {
		for _, name := range meta.QueryNames() {
			d[jen.Lit(name)] = jen.Lit(meta.Querys[name])
		}
	}))
}

// newFile creates a new Jennifer file with the header comment.
func newFile(cfg *Config) *jen.File {
	f := jen.NewFile(cfg.Package)
	if cfg.Header != "" {
		f.HeaderComment(cfg.Header)
	}
	return f
}
