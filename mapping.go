// Package mapgen is the runtime support package for code generated by
// the mapgen compiler. Generated mapper glue declares a Mapping value per
// model type and exposes it through typed mapper structs.
package mapgen

// Binding binds one struct property to one table column.
type Binding struct {
	Column      string
	Property    string
	EnumHandler string
	GoType      string
}

// Mapping describes how a model type maps onto its table.
type Mapping struct {
	// Mapper is the generated mapper name (e.g. OrderMapper).
	Mapper string
	// Model is the package-qualified model type.
	Model string
	// Table is the storage table name.
	Table string
	// Bindings are ordered as the model fields are declared.
	Bindings []Binding
	// Queries maps a query name to its expression.
	Queries map[string]string
}

// Columns returns the bound columns in declaration order.
func (m Mapping) Columns() []string {
	cols := make([]string, len(m.Bindings))
	for i, b := range m.Bindings {
		cols[i] = b.Column
	}
	return cols
}

// Properties returns the bound properties in declaration order.
func (m Mapping) Properties() []string {
	props := make([]string, len(m.Bindings))
	for i, b := range m.Bindings {
		props[i] = b.Property
	}
	return props
}

// Column returns the column bound to the given property.
func (m Mapping) Column(property string) (string, error) {
	for _, b := range m.Bindings {
		if b.Property == property {
			return b.Column, nil
		}
	}
	return "", NewUnknownPropertyError(m.Mapper, property)
}

// Property returns the property bound to the given column.
func (m Mapping) Property(column string) (string, error) {
	for _, b := range m.Bindings {
		if b.Column == column {
			return b.Property, nil
		}
	}
	return "", NewUnknownColumnError(m.Mapper, column)
}

// Query returns the expression of the named query.
func (m Mapping) Query(name string) (string, bool) {
	q, ok := m.Queries[name]
	return q, ok
}
