package gen

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/flosch/pongo2/v4"
	"golang.org/x/mod/semver"
)

// Template engines.
const (
	EngineText   = "text"
	EnginePongo2 = "pongo2"
)

// engineMajors holds the engine version major supported per engine.
var engineMajors = map[string]string{
	EngineText:   "v1",
	EnginePongo2: "v4",
}

//go:embed template/*
var templateFS embed.FS

// Funcs are the mapgen helpers added to the text engine on top of sprig.
var Funcs = template.FuncMap{
	"snake":      snake,
	"plural":     plural,
	"lowerFirst": lowerFirst,
}

// Renderer renders a named template.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

// engine is one template language.
type engine interface {
	ext() string
	parse(name string, src []byte) error
	render(name string, data any) ([]byte, error)
}

// Environment is the template environment of a run. It implements Renderer.
type Environment struct {
	cfg    *Config
	engine engine
	names  []string
}

// NewEnvironment returns an uninitialized environment for cfg.
func NewEnvironment(cfg *Config) *Environment {
	return &Environment{cfg: cfg}
}

// Init checks the engine version token and loads the embedded templates,
// then the templates of the configured template directory, which replace
// embedded ones of the same name.
func (e *Environment) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := e.cfg.Engine
	if name == "" {
		name = DefaultEngine
	}
	major, ok := engineMajors[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnsupportedEngine, name)
	}
	if v := e.cfg.EngineVersion; v != "" {
		if !semver.IsValid(v) {
			return fmt.Errorf("%w: invalid version token %q", ErrUnsupportedEngine, v)
		}
		if got := semver.Major(v); got != major {
			return fmt.Errorf("%w: %s %s, supported %s", ErrUnsupportedEngine, name, v, major)
		}
	}
	var eng engine
	switch name {
	case EnginePongo2:
		eng = newPongoEngine()
	default:
		eng = newTextEngine()
	}
	names, err := loadTemplates(eng, e.cfg.TemplateDir)
	if err != nil {
		return err
	}
	e.engine, e.names = eng, names
	return nil
}

// Templates returns the names of the loaded templates.
func (e *Environment) Templates() []string {
	return e.names
}

// Render implements Renderer.
func (e *Environment) Render(name string, data any) ([]byte, error) {
	if e.engine == nil {
		return nil, errors.New("template environment is not initialized")
	}
	if !slices.Contains(e.names, name) {
		return nil, fmt.Errorf("template %q is not defined", name)
	}
	return e.engine.render(name, data)
}

// Close releases the loaded templates.
func (e *Environment) Close() error {
	e.engine, e.names = nil, nil
	return nil
}

func loadTemplates(eng engine, dir string) ([]string, error) {
	var names []string
	add := func(file string, src []byte) error {
		name := strings.TrimSuffix(filepath.Base(file), eng.ext())
		if err := eng.parse(name, src); err != nil {
			return fmt.Errorf("parse template %s: %w", file, err)
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
		return nil
	}
	files, err := fs.Glob(templateFS, path.Join("template", "*"+eng.ext()))
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		src, err := templateFS.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if err := add(file, src); err != nil {
			return nil, err
		}
	}
	if dir == "" {
		return names, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != eng.ext() {
			continue
		}
		file := filepath.Join(dir, entry.Name())
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if err := add(file, src); err != nil {
			return nil, err
		}
	}
	slices.Sort(names)
	return names, nil
}

type textEngine struct {
	root *template.Template
}

func newTextEngine() *textEngine {
	return &textEngine{
		root: template.New("mapgen").
			Funcs(sprig.TxtFuncMap()).
			Funcs(Funcs),
	}
}

func (t *textEngine) ext() string { return ".tmpl" }

func (t *textEngine) parse(name string, src []byte) error {
	_, err := t.root.New(name).Parse(string(src))
	return err
}

func (t *textEngine) render(name string, data any) ([]byte, error) {
	var b bytes.Buffer
	if err := t.root.ExecuteTemplate(&b, name, data); err != nil {
		return nil, fmt.Errorf("execute template %q: %w", name, err)
	}
	return b.Bytes(), nil
}

var registerFilters sync.Once

// pongoEngine renders pongo2 templates. The template data is available
// as "data".
type pongoEngine struct {
	set  *pongo2.TemplateSet
	tpls map[string]*pongo2.Template
}

func newPongoEngine() *pongoEngine {
	registerFilters.Do(func() {
		filters := map[string]func(string) string{
			"snake":      snake,
			"plural":     plural,
			"lowerfirst": lowerFirst,
		}
		for name, fn := range filters {
			if pongo2.FilterExists(name) {
				continue
			}
			pongo2.RegisterFilter(name, func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsValue(fn(in.String())), nil
			})
		}
	})
	return &pongoEngine{
		set:  pongo2.NewSet("mapgen", pongo2.DefaultLoader),
		tpls: make(map[string]*pongo2.Template),
	}
}

func (p *pongoEngine) ext() string { return ".pongo" }

func (p *pongoEngine) parse(name string, src []byte) error {
	tpl, err := p.set.FromBytes(src)
	if err != nil {
		return err
	}
	p.tpls[name] = tpl
	return nil
}

func (p *pongoEngine) render(name string, data any) ([]byte, error) {
	b, err := p.tpls[name].ExecuteBytes(pongo2.Context{"data": data})
	if err != nil {
		return nil, fmt.Errorf("execute template %q: %w", name, err)
	}
	return b, nil
}
