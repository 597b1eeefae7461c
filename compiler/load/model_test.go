package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField(t *testing.T) {
	tests := []struct {
		name      string
		tag       string
		persisted bool
		want      *Field
		wantErr   bool
	}{
		{"no tag", "", true, &Field{Name: "CustomerID", Type: "int64"}, false},
		{"json only", `json:"customer_id"`, true, &Field{Name: "CustomerID", Type: "int64"}, false},
		{"db column", `db:"customer_ref"`, true, &Field{Name: "CustomerID", Type: "int64", Column: "customer_ref"}, false},
		{"db column with options", `db:"customer_ref,omitempty"`, true, &Field{Name: "CustomerID", Type: "int64", Column: "customer_ref"}, false},
		{"db skip", `db:"-"`, false, nil, false},
		{"mapgen skip", `mapgen:"-"`, false, nil, false},
		{"mapgen column", `mapgen:"column=cust"`, true, &Field{Name: "CustomerID", Type: "int64", Column: "cust"}, false},
		{
			"mapgen overrides", `mapgen:"handler=IDHandler, type=uint64"`, true,
			&Field{Name: "CustomerID", Type: "int64", Handler: "IDHandler", GoType: "uint64"}, false,
		},
		{"malformed option", `mapgen:"handler"`, false, nil, true},
		{"unknown option", `mapgen:"size=10"`, false, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok, err := NewField("CustomerID", "int64", tt.tag)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.persisted, ok)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestModelNames(t *testing.T) {
	m := &Model{Name: "Order", PkgPath: "example.com/shop/model", PkgName: "model"}
	assert.Equal(t, "example.com/shop/model.Order", m.QualifiedName())
	assert.Equal(t, "model.Order", m.TypeRef())
	assert.Equal(t, "example.com/shop/model.Order", m.String())

	bare := &Model{Name: "Order"}
	assert.Equal(t, "Order", bare.QualifiedName())
	assert.Equal(t, "Order", bare.TypeRef())
}

func TestModelField(t *testing.T) {
	m := &Model{Fields: []*Field{{Name: "ID"}, {Name: "Total"}}}
	f, ok := m.Field("Total")
	require.True(t, ok)
	assert.Equal(t, "Total", f.Name)

	_, ok = m.Field("Missing")
	assert.False(t, ok)
}
