package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Manager owns the session logger. The zero value logs nothing until Setup.
type Manager struct {
	logger zerolog.Logger
	ready  bool
}

// NewManager creates a new logging manager.
func NewManager() *Manager {
	return &Manager{}
}

// ParseLevel converts a string log level to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup builds the logger. console receives human-readable lines and file, if
// not nil, receives JSON lines. Either may be nil.
func (m *Manager) Setup(console, file io.Writer, level string) zerolog.Logger {
	var writers []io.Writer
	if console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339, NoColor: true})
	}
	if file != nil {
		writers = append(writers, file)
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	m.logger = zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
	m.ready = true
	m.logger.Debug().Str("level", level).Msg("Logging initialized")
	return m.logger
}

// Logger returns the configured logger, or a disabled one before Setup.
func (m *Manager) Logger() zerolog.Logger {
	if !m.ready {
		return zerolog.Nop()
	}
	return m.logger
}
