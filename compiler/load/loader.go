package load

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedModule

// PackageDiscoverer discovers model types by loading Go packages.
type PackageDiscoverer struct {
	// EntityPackage is the package pattern holding the entity types.
	EntityPackage string
	// QueryPackage is the package pattern holding the query-model types.
	// Empty means no query models.
	QueryPackage string
	// Dir is the directory the patterns are resolved from.
	Dir string
	// BuildFlags are passed to the build system.
	BuildFlags []string
}

// Entities loads the entity package and returns all its exported structs.
func (d *PackageDiscoverer) Entities(ctx context.Context) ([]*Model, error) {
	if d.EntityPackage == "" {
		return nil, errors.New("load: missing entity package")
	}
	return d.load(ctx, d.EntityPackage)
}

// QueryModels loads the query-model package.
func (d *PackageDiscoverer) QueryModels(ctx context.Context) ([]*Model, error) {
	if d.QueryPackage == "" {
		return nil, nil
	}
	return d.load(ctx, d.QueryPackage)
}

// IsTableMapped reports whether the model carries the table marker.
func (d *PackageDiscoverer) IsTableMapped(m *Model) bool {
	return m.Mapped
}

// Dirs returns the source directories of the entity and query-model
// packages.
func (d *PackageDiscoverer) Dirs(ctx context.Context) ([]string, error) {
	patterns := []string{d.EntityPackage}
	if d.QueryPackage != "" {
		patterns = append(patterns, d.QueryPackage)
	}
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       packages.NeedName | packages.NeedFiles,
		Dir:        d.Dir,
		BuildFlags: d.BuildFlags,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load: resolving package dirs: %w", err)
	}
	var dirs []string
	for _, pkg := range pkgs {
		for _, file := range pkg.GoFiles {
			if dir := filepath.Dir(file); !slices.Contains(dirs, dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	slices.Sort(dirs)
	return dirs, nil
}

func (d *PackageDiscoverer) load(ctx context.Context, pattern string) ([]*Model, error) {
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       LoadMode,
		Dir:        d.Dir,
		BuildFlags: d.BuildFlags,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load: loading %s: %w", pattern, err)
	}
	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("load: package errors in %s: %w", pattern, errors.Join(errs...))
	}
	var models []*Model
	for _, pkg := range pkgs {
		models = append(models, newPackageLoader(pkg).models()...)
	}
	return models, nil
}

type packageLoader struct {
	pkg  *packages.Package
	docs map[string]*ast.CommentGroup
}

func newPackageLoader(pkg *packages.Package) *packageLoader {
	l := &packageLoader{pkg: pkg, docs: make(map[string]*ast.CommentGroup)}
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				l.docs[ts.Name.Name] = doc
			}
		}
	}
	return l
}

// models returns the exported struct types of the package, ordered by name.
func (l *packageLoader) models() []*Model {
	scope := l.pkg.Types.Scope()
	var models []*Model
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() || tn.IsAlias() {
			continue
		}
		st, ok := tn.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}
		m := &Model{
			Name:    name,
			PkgPath: l.pkg.PkgPath,
			PkgName: l.pkg.Name,
			Pos:     l.pkg.Fset.Position(tn.Pos()).String(),
		}
		if err := ApplyDirectives(m, l.docs[name]); err != nil {
			m.Err = err
		}
		if err := l.addFields(m, st, map[*types.Struct]bool{}); err != nil && m.Err == nil {
			m.Err = err
		}
		models = append(models, m)
	}
	return models
}

// addFields appends the persisted fields of st to m, flattening embedded
// structs in place. Exported fields promoted from an unexported embedded
// struct are persisted too.
func (l *packageLoader) addFields(m *Model, st *types.Struct, seen map[*types.Struct]bool) error {
	if seen[st] {
		return fmt.Errorf("type %s: recursive embedding", m.Name)
	}
	seen[st] = true
	defer delete(seen, st)
	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		if v.Embedded() {
			if est, ok := deref(v.Type()).Underlying().(*types.Struct); ok {
				if err := l.addFields(m, est, seen); err != nil {
					return err
				}
				continue
			}
		}
		if !v.Exported() {
			continue
		}
		f, ok, err := NewField(v.Name(), types.TypeString(v.Type(), l.qualifier), st.Tag(i))
		if err != nil {
			return fmt.Errorf("type %s: %w", m.Name, err)
		}
		if !ok {
			continue
		}
		f.Enum = l.isEnum(v.Type())
		f.Index = len(m.Fields)
		m.Fields = append(m.Fields, f)
	}
	return nil
}

// qualifier qualifies every named type by its package name, the loaded
// package included, so field types read the same from generated code.
func (l *packageLoader) qualifier(p *types.Package) string {
	return p.Name()
}

func deref(t types.Type) types.Type {
	if p, ok := t.(*types.Pointer); ok {
		return p.Elem()
	}
	return t
}

// isEnum reports a named basic type declared in the loaded package or
// in a module dependency. Standard library types like time.Duration are
// marshaled by default and are not enums.
func (l *packageLoader) isEnum(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	if _, ok := named.Underlying().(*types.Basic); !ok {
		return false
	}
	pkg := named.Obj().Pkg()
	switch {
	case pkg == nil:
		return false
	case pkg == l.pkg.Types:
		return true
	}
	imp, ok := l.pkg.Imports[pkg.Path()]
	return ok && imp.Module != nil
}
