package gen

import (
	"context"
	"errors"
	"fmt"
)

// DescriptorFile returns the descriptor file name of a mapper.
func DescriptorFile(mapper, ext string) string {
	return snake(mapper) + ext
}

// GlueFile returns the Go glue file name of a model.
func GlueFile(simpleName string) string {
	return snake(simpleName) + "_mapper.go"
}

// MetaHandler builds the mapper metadata of the model and freezes it.
type MetaHandler struct{}

// Name implements the handler label.
func (MetaHandler) Name() string { return "meta" }

// Handle implements Handler.
func (MetaHandler) Handle(ctx context.Context, c *MapperContext) error {
	var (
		cfg  = c.Config()
		m    = c.Model()
		meta = c.Meta
	)
	meta.SimpleName = m.Name
	meta.MapperName = m.Name + cfg.MapperSuffix
	if err := c.Claim(meta.MapperName); err != nil {
		return err
	}
	meta.Model = m.QualifiedName()
	meta.Version = cfg.Version
	meta.Table = m.Table
	if meta.Table == "" {
		meta.Table = TableName(m.Name)
	}
	for _, f := range m.Fields {
		if err := meta.AddMapping(MappingFor(cfg, f)); err != nil {
			return err
		}
	}
	if qm := c.QueryModel(); qm != nil {
		meta.HasQueryModel = true
		meta.Query = qm.QualifiedName()
		for _, q := range DeriveQueries(m, qm) {
			if err := meta.AddQuery(q.Name, q.Expr); err != nil {
				return err
			}
		}
	}
	for _, q := range m.Queries {
		if err := meta.AddQuery(q.Name, q.Expr); err != nil {
			return err
		}
	}
	if p := c.Preserver(); p != nil {
		fragments, err := p.Fragments(ctx, meta.MapperName)
		if err != nil {
			return fmt.Errorf("preserved fragments: %w", err)
		}
		if err := meta.AddOtherMappings(fragments...); err != nil {
			return err
		}
	}
	if err := meta.Validate(); err != nil {
		return err
	}
	meta.Freeze()
	return nil
}

// DescriptorView is the data of the descriptor templates.
type DescriptorView struct {
	Meta          *MapperMeta
	Encoding      string
	PreserveBegin string
	PreserveEnd   string
}

// DescriptorHandler renders the mapper descriptor and writes it to the
// target directory.
type DescriptorHandler struct {
	// Template is the template name. Defaults to "mapper".
	Template string
}

// Name implements the handler label.
func (DescriptorHandler) Name() string { return "descriptor" }

// Handle implements Handler.
func (h DescriptorHandler) Handle(_ context.Context, c *MapperContext) error {
	if !c.Meta.Frozen() {
		return errors.New("mapper metadata must be frozen before rendering")
	}
	r, err := c.Renderer()
	if err != nil {
		return err
	}
	w, err := c.Writer()
	if err != nil {
		return err
	}
	name := h.Template
	if name == "" {
		name = "mapper"
	}
	cfg := c.Config()
	b, err := r.Render(name, DescriptorView{
		Meta:          c.Meta,
		Encoding:      cfg.Encoding,
		PreserveBegin: PreserveBegin,
		PreserveEnd:   PreserveEnd,
	})
	if err != nil {
		return err
	}
	path, err := w.WriteText(DescriptorFile(c.Meta.MapperName, cfg.DescriptorExt), b)
	if err != nil {
		return err
	}
	c.AddOutput(h.Name(), path)
	return nil
}

// SidecarHandler saves the preserved fragments of the mapper into the
// sidecar store.
type SidecarHandler struct{}

// Name implements the handler label.
func (SidecarHandler) Name() string { return "sidecar" }

// Handle implements Handler.
func (SidecarHandler) Handle(ctx context.Context, c *MapperContext) error {
	s := c.Sidecar()
	if s == nil {
		return errUnbound
	}
	return s.Save(ctx, c.Meta.MapperName, c.Meta.OtherMappings)
}

// MapperHandlers returns the default handler chain of the mapper flavor
// for cfg.
func MapperHandlers(cfg *Config) []Handler[*MapperContext] {
	hs := []Handler[*MapperContext]{
		MetaHandler{},
		DescriptorHandler{},
	}
	if cfg.enabled(FeatureGlue) {
		hs = append(hs, GlueHandler{})
	}
	if cfg.enabled(FeatureSidecar) {
		hs = append(hs, SidecarHandler{})
	}
	return hs
}
