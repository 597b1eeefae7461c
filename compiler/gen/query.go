package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/mapgen/compiler/load"
)

// Operator is a query-model field suffix and the condition it stands for.
type Operator struct {
	Suffix string
	Op     string
	// Unary operators take no parameter.
	Unary bool
	// List operators take a list parameter.
	List bool
}

// Operators are matched longest suffix first.
var Operators = []Operator{
	{Suffix: "NEQ", Op: "<>"},
	{Suffix: "GTE", Op: ">="},
	{Suffix: "LTE", Op: "<="},
	{Suffix: "NIN", Op: "NOT IN", List: true},
	{Suffix: "EQ", Op: "="},
	{Suffix: "GT", Op: ">"},
	{Suffix: "LT", Op: "<"},
	{Suffix: "LK", Op: "LIKE"},
	{Suffix: "IN", Op: "IN", List: true},
	{Suffix: "NL", Op: "IS NULL", Unary: true},
	{Suffix: "NN", Op: "IS NOT NULL", Unary: true},
}

var opEQ = Operator{Suffix: "EQ", Op: "="}

// SplitOperator splits a query-model field name into the base property
// and its operator. A name without a known suffix compares for equality.
func SplitOperator(name string) (string, Operator) {
	for _, op := range Operators {
		if base, ok := strings.CutSuffix(name, op.Suffix); ok && base != "" {
			return base, op
		}
	}
	return name, opEQ
}

// Expr renders the condition of the operator on a column.
func (op Operator) Expr(column, param string) string {
	switch {
	case op.Unary:
		return fmt.Sprintf("%s %s", column, op.Op)
	case op.List:
		return fmt.Sprintf("%s %s (:%s)", column, op.Op, param)
	default:
		return fmt.Sprintf("%s %s :%s", column, op.Op, param)
	}
}

// Query is a named query derived from a query-model field.
type Query struct {
	Name string
	Expr string
}

// DeriveQueries returns one query per persisted field of the query model,
// in field order. The column of the base property is taken from the
// entity when it declares the property.
func DeriveQueries(entity, queryModel *load.Model) []Query {
	queries := make([]Query, 0, len(queryModel.Fields))
	for _, f := range queryModel.Fields {
		base, op := SplitOperator(f.Name)
		column := ColumnName(base)
		if ef, ok := entity.Field(base); ok {
			column = fieldColumn(ef)
		}
		queries = append(queries, Query{Name: f.Name, Expr: op.Expr(column, f.Name)})
	}
	return queries
}

// MappingFor returns the mapping of a persisted entity field.
func MappingFor(cfg *Config, f *load.Field) MappingMeta {
	mm := MappingMeta{
		Column:      fieldColumn(f),
		Property:    f.Name,
		EnumHandler: f.Handler,
		GoType:      f.GoType,
	}
	if mm.EnumHandler == "" && f.Enum && cfg.EnumHandler != "" {
		mm.EnumHandler = strings.ReplaceAll(cfg.EnumHandler, "%s", f.Type)
	}
	return mm
}

func fieldColumn(f *load.Field) string {
	if f.Column != "" {
		return f.Column
	}
	return ColumnName(f.Name)
}
