package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields is a map of log fields.
type Fields = logrus.Fields

type ctxKey string

// RunIDKey is the context key under which a comparison run ID is stored.
// A context passed as a log argument contributes this value as the "runID" field.
const RunIDKey = ctxKey("runID")

// PolicyKey is the context key under which a policy name is stored.
const PolicyKey = ctxKey("policy")

// Logger handles structured logging for a namespace.
type Logger struct {
	logrus *logrus.Logger
	entry  *logrus.Entry
}

// New returns a new Logger instance.
func New(ns string, args ...interface{}) *Logger {
	f := fields(args...)
	f["ns"] = ns
	l := logrus.New()
	l.Formatter = &textFormatter{
		TextFormatConfig: DefaultConfig().TextFormat,
	}
	e := l.WithFields(f)
	return &Logger{l, e}
}

// NewLogger returns a new Logger instance configured with the given Config.
func NewLogger(ns string, conf Config) *Logger {
	l := New(ns)
	l.Configure(conf)
	return l
}

// Configure configures the logging level, formatter and output.
func (l *Logger) Configure(conf Config) {
	if l == nil {
		return
	}
	l.SetLevel(conf.Level)

	switch strings.ToLower(conf.Formatter) {
	case "json":
		l.SetFormatter(&jsonFormatter{conf: conf.JSONFormat})
	// Default to text
	default:
		l.SetFormatter(&textFormatter{
			TextFormatConfig: conf.TextFormat,
			json:             jsonFormatter{conf: conf.JSONFormat},
		})
	}

	if conf.OutputFile != "" {
		logFile, err := os.OpenFile(
			conf.OutputFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666,
		)
		if err != nil {
			l.Error("Can't open log output", "output", conf.OutputFile, "error", err)
		} else {
			l.SetOutput(logFile)
		}
	}
}

// SetLevel sets the level of the logger.
func (l *Logger) SetLevel(lvl string) {
	if l == nil {
		return
	}
	switch strings.ToLower(lvl) {
	case "debug":
		l.logrus.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		l.logrus.SetLevel(logrus.WarnLevel)
	case "error":
		l.logrus.SetLevel(logrus.ErrorLevel)
	default:
		l.logrus.SetLevel(logrus.InfoLevel)
	}
}

// SetFormatter sets the formatter of the logger.
func (l *Logger) SetFormatter(f logrus.Formatter) {
	if l == nil {
		return
	}
	l.logrus.Formatter = f
}

// SetOutput sets the output of the logger.
func (l *Logger) SetOutput(w io.Writer) {
	if l == nil {
		return
	}
	l.logrus.Out = w
}

// Discard configures the logger to discard all logs.
func (l *Logger) Discard() {
	l.SetOutput(io.Discard)
}

// Debug logs a debug message.
//
// After the first argument, arguments are key-value pairs which are written as structured logs.
//
//	log.Debug("Some message here", "key1", value1, "key2", value2)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	defer recoverLogErr()
	l.entry.WithFields(fields(args...)).Debug(msg)
}

// Info logs an info message
//
// After the first argument, arguments are key-value pairs which are written as structured logs.
//
//	log.Info("Some message here", "key1", value1, "key2", value2)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	defer recoverLogErr()
	l.entry.WithFields(fields(args...)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	defer recoverLogErr()
	l.entry.WithFields(fields(args...)).Warn(msg)
}

// Error logs an error message
//
// After the first argument, arguments are key-value pairs which are written as structured logs.
//
//	log.Error("Some message here", "key1", value1, "key2", value2)
//
// Error has a two-argument version that can be used as a shortcut.
//
//	err := startServer()
//	log.Error("Couldn't start server", err)
func (l *Logger) Error(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	defer recoverLogErr()
	l.entry.WithFields(fields(args...)).Error(msg)
}

// WithFields returns a new Logger instance with the given fields added to all log messages.
func (l *Logger) WithFields(args ...interface{}) *Logger {
	if l == nil {
		return nil
	}
	defer recoverLogErr()
	return &Logger{l.logrus, l.entry.WithFields(fields(args...))}
}

// NewSubLogger returns a new sub-logger instance sharing the parent's
// output, level and formatter but using a different namespace.
func (l *Logger) NewSubLogger(ns string, args ...interface{}) *Logger {
	if l == nil {
		return nil
	}
	f := fields(args...)
	f["ns"] = ns
	return &Logger{l.logrus, l.entry.WithFields(f)}
}

// recoverLogErr is used to recover from any panics during logging.
// Panics aren't expected of course, but logging should never crash
// a program, so this failsafe tries to prevent those crashes.
func recoverLogErr() {
	if r := recover(); r != nil {
		fmt.Println("Recovered from logging panic", r)
	}
}

// PrintSimpleError prints out an error message with a red "ERROR:" prefix.
func PrintSimpleError(err error) {
	fmt.Fprintf(os.Stderr, "\x1b[%dm%s\x1b[0m %s\n", 31, "ERROR:", err.Error())
}

func fields(args ...interface{}) Fields {
	f := Fields{}

	// Pull out fields from context values and errors, which may be passed
	// without a key.
	var rest []interface{}
	for _, arg := range args {
		switch x := arg.(type) {
		case context.Context:
			if v, ok := x.Value(RunIDKey).(string); ok {
				f["runID"] = v
			}
			if v, ok := x.Value(PolicyKey).(string); ok {
				f["policy"] = v
			}
		case error:
			// Only a bare error; errors used as values in key/value pairs
			// follow their key.
			if len(rest)%2 == 0 {
				f["error"] = x.Error()
			} else {
				rest = append(rest, x)
			}
		default:
			rest = append(rest, arg)
		}
	}

	if len(rest) == 1 {
		f["unknown"] = rest[0]
		return f
	}
	if len(rest)%2 != 0 {
		f["unknown"] = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}
	for i := 0; i < len(rest); i += 2 {
		k := fmt.Sprintf("%v", rest[i])
		v := rest[i+1]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		f[k] = v
	}
	return f
}
