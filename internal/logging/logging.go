// Package logging routes the standard logger through a level filter.
//
// Messages are leveled by prefix, e.g. log.Printf("[WARN] ..."). Lines
// without a known prefix are always written.
package logging

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/hashicorp/logutils"
	"github.com/pkg/errors"
)

// Levels are the recognized prefixes, lowest first. NONE silences
// everything that carries a prefix.
var Levels = []logutils.LogLevel{"DEBUG", "INFO", "WARN", "ERR", "NONE"}

// DefaultLevel is used when no level is configured
const DefaultLevel = "INFO"

// NewFilter creates a level filter writing to output
func NewFilter(output io.Writer, level string) (*logutils.LevelFilter, error) {
	if level == "" {
		level = DefaultLevel
	}
	minLevel := logutils.LogLevel(strings.ToUpper(level))
	if !validLevel(minLevel) {
		return nil, errors.Errorf("unknown log level %q", level)
	}

	return &logutils.LevelFilter{
		Levels:   Levels,
		MinLevel: minLevel,
		Writer:   output,
	}, nil
}

// Setup points the standard logger at path, filtered by level. The
// returned closer releases the file. An empty path discards all output.
func Setup(path, level string) (io.Closer, error) {
	var out io.WriteCloser = nopCloser{io.Discard}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, errors.Wrapf(err, "open log file %s", path)
		}
		out = f
	}

	filter, err := NewFilter(out, level)
	if err != nil {
		out.Close()
		return nil, err
	}
	log.SetOutput(filter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return out, nil
}

func validLevel(level logutils.LogLevel) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
