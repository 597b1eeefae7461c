package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/encoding"
)

// Markers around every preserved fragment of a descriptor.
const (
	PreserveBegin = "<!-- mapgen:preserve:begin -->"
	PreserveEnd   = "<!-- mapgen:preserve:end -->"
)

// Preserver returns the hand-authored fragments of a mapper from a
// previous run. A mapper without prior output has no fragments.
type Preserver interface {
	Fragments(ctx context.Context, mapper string) ([]string, error)
}

// Authoritative is implemented by preservers whose answer is final once
// they hold prior state for a mapper, even when it has no fragments.
type Authoritative interface {
	Preserver
	Has(mapper string) bool
}

// Preservers asks each preserver in turn and returns the first non-empty
// result. The chain stops at an Authoritative preserver that has prior
// state for the mapper.
type Preservers []Preserver

// Fragments implements Preserver.
func (ps Preservers) Fragments(ctx context.Context, mapper string) ([]string, error) {
	for _, p := range ps {
		fragments, err := p.Fragments(ctx, mapper)
		if err != nil {
			return nil, err
		}
		if len(fragments) > 0 {
			return fragments, nil
		}
		if a, ok := p.(Authoritative); ok && a.Has(mapper) {
			return nil, nil
		}
	}
	return nil, nil
}

// ScanFragments returns the content of every preserve block of src, byte
// for byte. Blank blocks are dropped.
func ScanFragments(src []byte) ([]string, error) {
	var fragments []string
	for {
		i := bytes.Index(src, []byte(PreserveBegin))
		if i < 0 {
			if bytes.Contains(src, []byte(PreserveEnd)) {
				return nil, errors.New("preserve end marker without begin marker")
			}
			return fragments, nil
		}
		src = src[i+len(PreserveBegin):]
		j := bytes.Index(src, []byte(PreserveEnd))
		if j < 0 {
			return nil, errors.New("unterminated preserve block")
		}
		block := src[:j]
		if bytes.Contains(block, []byte(PreserveBegin)) {
			return nil, errors.New("nested preserve block")
		}
		if strings.TrimSpace(string(block)) != "" {
			fragments = append(fragments, string(block))
		}
		src = src[j+len(PreserveEnd):]
	}
}

// OutputScanner reads the fragments back from the previous descriptor.
type OutputScanner struct {
	dir string
	ext string
	enc encoding.Encoding
}

// NewOutputScanner returns a scanner of the descriptors in dir.
func NewOutputScanner(dir, ext string, enc encoding.Encoding) *OutputScanner {
	return &OutputScanner{dir: dir, ext: ext, enc: enc}
}

// Path returns the descriptor path of a mapper.
func (s *OutputScanner) Path(mapper string) string {
	return filepath.Join(s.dir, DescriptorFile(mapper, s.ext))
}

// Has reports whether a previous descriptor of the mapper exists.
func (s *OutputScanner) Has(mapper string) bool {
	_, err := os.Stat(s.Path(mapper))
	return err == nil
}

// Fragments implements Preserver.
func (s *OutputScanner) Fragments(_ context.Context, mapper string) ([]string, error) {
	path := s.Path(mapper)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read previous output: %w", err)
	}
	if s.enc != nil {
		if b, err = s.enc.NewDecoder().Bytes(b); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	fragments, err := ScanFragments(b)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return fragments, nil
}

// sidecarVersion is the format version of the sidecar file.
const sidecarVersion = 1

type sidecarFile struct {
	Version int                 `msgpack:"version"`
	Mappers map[string][]string `msgpack:"mappers"`
}

// SidecarStore keeps the fragments of every mapper in a msgpack file.
// Changes are flushed on Close.
type SidecarStore struct {
	path string

	mu      sync.Mutex
	mappers map[string][]string
	dirty   bool
}

// NewSidecarStore returns a store backed by the file at path.
func NewSidecarStore(path string) *SidecarStore {
	return &SidecarStore{path: path, mappers: make(map[string][]string)}
}

// Open loads the store. A missing file is an empty store.
func (s *SidecarStore) Open(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read sidecar: %w", err)
	}
	var f sidecarFile
	if err := msgpack.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("decode sidecar %s: %w", s.path, err)
	}
	if f.Version != sidecarVersion {
		return fmt.Errorf("sidecar %s: unsupported version %d", s.path, f.Version)
	}
	if f.Mappers != nil {
		s.mappers = f.Mappers
	}
	return nil
}

// Fragments implements Preserver.
func (s *SidecarStore) Fragments(_ context.Context, mapper string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.mappers[mapper]...), nil
}

// Save replaces the fragments of a mapper.
func (s *SidecarStore) Save(_ context.Context, mapper string, fragments []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(fragments) == 0 {
		if _, ok := s.mappers[mapper]; ok {
			delete(s.mappers, mapper)
			s.dirty = true
		}
		return nil
	}
	s.mappers[mapper] = append([]string(nil), fragments...)
	s.dirty = true
	return nil
}

// Close writes the store if it changed.
func (s *SidecarStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	b, err := msgpack.Marshal(&sidecarFile{Version: sidecarVersion, Mappers: s.mappers})
	if err != nil {
		return fmt.Errorf("encode sidecar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create sidecar directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	s.dirty = false
	return nil
}
