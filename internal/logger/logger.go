// Package logger is a small leveled logger with an optional log file.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Level orders log messages by severity.
type Level int

// Log levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// timestampFormat is the clock-only stamp at the start of each line.
const timestampFormat = "15:04:05.000"

// unexported variables.
var (
	//nolint:gochecknoglobals // Process-wide logger, like logrus.StandardLogger
	std = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&LineFormatter{})
	l.SetLevel(logrus.InfoLevel)

	return l
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// LineFormatter renders entries as "[15:04:05.000] [LEVEL] message".
type LineFormatter struct{}

// Format implements logrus.Formatter.
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = &bytes.Buffer{}
	}

	fmt.Fprintf(buf, "[%s] [%s] %s\n", entry.Time.Format(timestampFormat), levelName(entry.Level), entry.Message)

	return buf.Bytes(), nil
}

func levelName(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}

	return strings.ToUpper(level.String())
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", name) //nolint:err113 // Validation error with actual value
	}
}

// SetLevel sets the minimum level that is written. Unknown names are ignored.
func SetLevel(name string) {
	level, err := ParseLevel(name)
	if err != nil {
		return
	}

	std.SetLevel(level.logrus())
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// EnableFile sends log output to a newly created file at path. Closing the
// returned closer writes a trailer, closes the file and restores stderr.
func EnableFile(path string) (io.Closer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	SetOutput(f)
	Info("=== Log Started: %s ===", time.Now().Format(time.RFC3339))

	return &fileSink{file: f}, nil
}

// Debug logs a formatted message at debug level.
func Debug(format string, v ...any) {
	std.Debugf(format, v...)
}

// Info logs a formatted message at info level.
func Info(format string, v ...any) {
	std.Infof(format, v...)
}

// Warn logs a formatted message at warn level.
func Warn(format string, v ...any) {
	std.Warnf(format, v...)
}

// Error logs a formatted message at error level.
func Error(format string, v ...any) {
	std.Errorf(format, v...)
}

// fileSink restores the default output when closed.
type fileSink struct {
	file *os.File
	once sync.Once
}

func (s *fileSink) Close() error {
	var err error

	s.once.Do(func() {
		Info("=== Log Ended: %s ===", time.Now().Format(time.RFC3339))
		SetOutput(os.Stderr)
		err = s.file.Close()
	})

	return err
}
