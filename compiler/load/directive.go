package load

import (
	"errors"
	"fmt"
	"go/ast"
	"strings"
)

// DirectivePrefix starts every mapgen comment directive.
const DirectivePrefix = "//mapgen:"

// Directive verbs.
const (
	VerbTable = "table"
	VerbQuery = "query"
)

// ApplyDirectives parses the //mapgen: directives of a type doc comment
// into m. Lines that are not directives are ignored.
func ApplyDirectives(m *Model, doc *ast.CommentGroup) error {
	if doc == nil {
		return nil
	}
	lines := make([]string, 0, len(doc.List))
	for _, c := range doc.List {
		lines = append(lines, c.Text)
	}
	return applyDirectiveLines(m, lines)
}

// applyDirectiveLines parses every line before reporting, so a malformed
// directive never hides the table marker.
func applyDirectiveLines(m *Model, lines []string) error {
	var errs []error
	for _, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), DirectivePrefix)
		if !ok {
			continue
		}
		verb, args, _ := strings.Cut(strings.TrimSpace(rest), " ")
		args = strings.TrimSpace(args)
		switch verb {
		case VerbTable:
			if m.Mapped {
				errs = append(errs, fmt.Errorf("type %s: duplicate %s%s directive", m.Name, DirectivePrefix, VerbTable))
				continue
			}
			m.Mapped = true
			if strings.ContainsAny(args, " \t") {
				errs = append(errs, fmt.Errorf("type %s: invalid table name %q", m.Name, args))
				continue
			}
			m.Table = args
		case VerbQuery:
			name, expr, _ := strings.Cut(args, " ")
			expr = strings.TrimSpace(expr)
			if name == "" || expr == "" {
				errs = append(errs, fmt.Errorf("type %s: %s%s needs a name and an expression", m.Name, DirectivePrefix, VerbQuery))
				continue
			}
			m.Queries = append(m.Queries, &Query{Name: name, Expr: expr})
		default:
			errs = append(errs, fmt.Errorf("type %s: unknown directive %q", m.Name, DirectivePrefix+verb))
		}
	}
	return errors.Join(errs...)
}
