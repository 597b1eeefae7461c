package genlog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// FileLog appends one JSON object per entry to a file.
type FileLog struct {
	recorder
	path string
	f    *os.File
	out  *logrus.Logger
}

// NewFileLog returns a log writing to path. The file and its parent
// directories are created on Open.
func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

// Path returns the log file path.
func (l *FileLog) Path() string {
	return l.path
}

// Open implements Log.
func (l *FileLog) Open(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.open {
		return fmt.Errorf("genlog: %s is already open", l.path)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("genlog: create log directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("genlog: open %s: %w", l.path, err)
	}
	out := logrus.New()
	out.SetOutput(f)
	out.SetLevel(logrus.InfoLevel)
	out.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat:   time.RFC3339Nano,
		DisableHTMLEscape: true,
	})
	l.f, l.out = f, out
	l.start()
	return nil
}

// Record implements Log.
func (l *FileLog) Record(_ context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.claim(e); err != nil {
		return err
	}
	fields := logrus.Fields{
		"run":    e.RunID,
		"type":   e.Type,
		"status": e.Status.String(),
	}
	if e.Reason != "" {
		fields["reason"] = e.Reason
	}
	entry := l.out.WithFields(fields)
	if !e.Time.IsZero() {
		entry = entry.WithTime(e.Time)
	}
	if e.Status == StatusFailed {
		entry.Warn(e.Status.String())
	} else {
		entry.Info(e.Status.String())
	}
	return nil
}

// Close implements Log.
func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.open {
		return nil
	}
	l.stop()
	err := l.f.Close()
	l.f, l.out = nil, nil
	return err
}
