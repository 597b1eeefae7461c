package gen

import (
	"fmt"
	"maps"
	"slices"
)

// MapperMeta is the metadata of one mapper. Handlers build it
// incrementally; it is frozen before it reaches the renderer.
type MapperMeta struct {
	MapperName string
	// Model is the package-qualified entity type.
	Model      string
	Table      string
	SimpleName string
	Version    string
	// Query is the package-qualified query-model type used as parameter
	// of the generated finder. Empty without a query model.
	Query         string
	Querys        map[string]string
	HasQueryModel bool
	MappingMetas  []MappingMeta
	// OtherMappings are hand-authored fragments carried over verbatim
	// from the previous output.
	OtherMappings []string

	frozen bool
}

// MappingMeta binds one property to one column.
type MappingMeta struct {
	Column      string
	Property    string
	EnumHandler string
	GoType      string
}

// NewMapperMeta returns an empty, mutable mapper metadata.
func NewMapperMeta() *MapperMeta {
	return &MapperMeta{
		Querys:       make(map[string]string),
		MappingMetas: []MappingMeta{},
	}
}

// AddQuery adds a named query. Query names are unique.
func (m *MapperMeta) AddQuery(name, expr string) error {
	if m.frozen {
		return ErrFrozen
	}
	if _, ok := m.Querys[name]; ok {
		return fmt.Errorf("%w %q on %s", ErrDuplicateQuery, name, m.SimpleName)
	}
	if m.Querys == nil {
		m.Querys = make(map[string]string)
	}
	m.Querys[name] = expr
	return nil
}

// AddMapping appends a mapping. Column and property are required.
func (m *MapperMeta) AddMapping(mm MappingMeta) error {
	if m.frozen {
		return ErrFrozen
	}
	if mm.Column == "" || mm.Property == "" {
		return fmt.Errorf("%w: column %q, property %q", ErrInvalidMapping, mm.Column, mm.Property)
	}
	m.MappingMetas = append(m.MappingMetas, mm)
	return nil
}

// AddOtherMappings appends preserved fragments.
func (m *MapperMeta) AddOtherMappings(fragments ...string) error {
	if m.frozen {
		return ErrFrozen
	}
	m.OtherMappings = append(m.OtherMappings, fragments...)
	return nil
}

// QueryNames returns the query names in sorted order.
func (m *MapperMeta) QueryNames() []string {
	return slices.Sorted(maps.Keys(m.Querys))
}

// Columns returns the mapped columns in field order.
func (m *MapperMeta) Columns() []string {
	cols := make([]string, len(m.MappingMetas))
	for i, mm := range m.MappingMetas {
		cols[i] = mm.Column
	}
	return cols
}

// Validate checks the required attributes.
func (m *MapperMeta) Validate() error {
	for _, attr := range []struct{ name, value string }{
		{"mapper name", m.MapperName},
		{"model", m.Model},
		{"table", m.Table},
		{"simple name", m.SimpleName},
		{"version", m.Version},
	} {
		if attr.value == "" {
			return fmt.Errorf("mapper metadata of %q: missing %s", m.SimpleName, attr.name)
		}
	}
	if m.HasQueryModel && m.Query == "" {
		return fmt.Errorf("mapper metadata of %q: query model without query", m.SimpleName)
	}
	return nil
}

// Freeze makes the metadata read-only.
func (m *MapperMeta) Freeze() {
	m.frozen = true
}

// Frozen reports whether Freeze was called.
func (m *MapperMeta) Frozen() bool {
	return m.frozen
}
