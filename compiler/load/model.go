package load

import (
	"fmt"
	"reflect"
	"strings"
)

// Model represents one struct type that was loaded from a compiled user
// package. Models of the entity package are the candidates for mapping,
// models of the query-model package describe query conditions.
type Model struct {
	Name    string   `json:"name,omitempty"`
	PkgPath string   `json:"pkg_path,omitempty"`
	PkgName string   `json:"pkg_name,omitempty"`
	Pos     string   `json:"-"`
	Fields  []*Field `json:"fields,omitempty"`
	// Mapped reports whether the type carries the //mapgen:table marker.
	Mapped bool `json:"mapped,omitempty"`
	// Table is the explicit table name given to the marker, if any.
	Table   string   `json:"table,omitempty"`
	Queries []*Query `json:"queries,omitempty"`
	// Err holds a malformed directive or field tag. It fails the model
	// when it reaches the handler chain and nothing else.
	Err error `json:"-"`
}

// Field represents a persisted struct field of a loaded model.
type Field struct {
	Name string `json:"name,omitempty"`
	// Type is the Go type as written, qualified by package name.
	Type string `json:"type,omitempty"`
	// Column is the explicit column name from the db tag.
	Column string `json:"column,omitempty"`
	// Enum reports a named type with a basic underlying type declared
	// outside the standard library.
	Enum bool `json:"enum,omitempty"`
	// Handler and GoType are explicit marshaling overrides.
	Handler string `json:"handler,omitempty"`
	GoType  string `json:"go_type,omitempty"`
	// Index is the position of the field in the flattened field list.
	Index int `json:"index"`
}

// Query is an explicit named query declared with //mapgen:query.
type Query struct {
	Name string `json:"name"`
	Expr string `json:"expr"`
}

// QualifiedName returns the model name qualified by its import path.
func (m *Model) QualifiedName() string {
	if m.PkgPath == "" {
		return m.Name
	}
	return m.PkgPath + "." + m.Name
}

// TypeRef returns the model name qualified by its package name, as it
// would be referenced from another package.
func (m *Model) TypeRef() string {
	if m.PkgName == "" {
		return m.Name
	}
	return m.PkgName + "." + m.Name
}

// Field returns the field with the given name.
func (m *Model) Field(name string) (*Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// String implements fmt.Stringer.
func (m *Model) String() string {
	return m.QualifiedName()
}

// NewField creates a loaded field and applies the options of its struct
// tag. It reports whether the field is persisted.
func NewField(name, typ string, tag string) (*Field, bool, error) {
	f := &Field{Name: name, Type: typ}
	st := reflect.StructTag(tag)
	if col, ok := st.Lookup("db"); ok {
		col, _, _ = strings.Cut(col, ",")
		if col == "-" {
			return nil, false, nil
		}
		f.Column = col
	}
	opts, ok := st.Lookup("mapgen")
	if !ok {
		return f, true, nil
	}
	if opts == "-" {
		return nil, false, nil
	}
	for _, opt := range strings.Split(opts, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		k, v, found := strings.Cut(opt, "=")
		if !found || v == "" {
			return nil, false, fmt.Errorf("field %q: malformed mapgen tag option %q", name, opt)
		}
		switch k {
		case "column":
			f.Column = v
		case "handler":
			f.Handler = v
		case "type":
			f.GoType = v
		default:
			return nil, false, fmt.Errorf("field %q: unknown mapgen tag option %q", name, k)
		}
	}
	return f, true, nil
}
