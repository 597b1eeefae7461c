// Package logger configures the logrus logger of the mapgen command.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Formats supported by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// EnvLevel is read when no level is given.
const EnvLevel = "MAPGEN_LOG_LEVEL"

// Setup returns a logger writing to w with the given level and format.
// An empty level falls back to $MAPGEN_LOG_LEVEL, then to info.
func Setup(w io.Writer, level, format string) (*logrus.Logger, error) {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	if level == "" {
		level = logrus.InfoLevel.String()
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	switch strings.ToLower(format) {
	case "", FormatText:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return l, nil
}
