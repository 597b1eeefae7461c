package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/tools/imports"
)

// Writer writes the rendered output of a run to the target directory.
// A path is written at most once per run.
type Writer struct {
	target  string
	enc     encoding.Encoding
	encName string

	mu      sync.Mutex
	written map[string]bool
	metrics WriterMetrics
}

// WriterMetrics tracks what a writer produced.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter returns a writer for cfg. The configured encoding is resolved
// by its WHATWG name or label.
func NewWriter(cfg *Config) (*Writer, error) {
	enc, err := LookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &Writer{
		target:  cfg.Target,
		enc:     enc,
		encName: cfg.Encoding,
		written: make(map[string]bool),
	}, nil
}

// LookupEncoding resolves a text encoding by name.
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownEncoding, name, err)
	}
	return enc, nil
}

// Encoding returns the encoding of the text output.
func (w *Writer) Encoding() encoding.Encoding {
	return w.enc
}

// Path returns the target path of a file name.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.target, name)
}

// Metrics returns a snapshot of the writer metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// WriteText encodes b with the configured encoding and writes it.
func (w *Writer) WriteText(name string, b []byte) (string, error) {
	encoded, err := w.enc.NewEncoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("encode %s as %s: %w", name, w.encName, err)
	}
	return w.write(name, encoded)
}

// WriteGo formats a Go source with goimports and writes it. On a format
// failure the unformatted source is written next to the target with an
// ".error" suffix.
func (w *Writer) WriteGo(name string, src []byte) (string, error) {
	fullPath := w.Path(name)
	formatted, err := imports.Process(fullPath, src, nil)
	if err != nil {
		// Keep the unformatted source around for debugging.
		debugPath := fullPath + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, src, 0o644)
		return "", fmt.Errorf("format %s: %w (unformatted written to %s)", name, err, debugPath)
	}
	return w.write(name, formatted)
}

func (w *Writer) write(name string, b []byte) (string, error) {
	fullPath := w.Path(name)
	w.mu.Lock()
	if w.written[fullPath] {
		w.mu.Unlock()
		return "", fmt.Errorf("write %s: already written in this run", name)
	}
	w.written[fullPath] = true
	w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(fullPath, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(b))
	w.mu.Unlock()
	return fullPath, nil
}
