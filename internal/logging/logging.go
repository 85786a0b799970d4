package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = newLogger(os.Stdout)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Setup configures level ("debug", "info", ...) and format ("json" or
// "text"). Unknown levels fall back to info.
func Setup(level, format string, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	l := newLogger(w)
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	if strings.EqualFold(format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
	log = l
}

// Logger exposes the underlying logger for libraries that want an
// io.Writer or a *logrus.Entry.
func Logger() *logrus.Logger { return log }

func Log(level logrus.Level, msg string, fields map[string]any) {
	log.WithFields(logrus.Fields(fields)).Log(level, msg)
}

func Debug(msg string, fields map[string]any) { Log(logrus.DebugLevel, msg, fields) }
func Info(msg string, fields map[string]any)  { Log(logrus.InfoLevel, msg, fields) }
func Warn(msg string, fields map[string]any)  { Log(logrus.WarnLevel, msg, fields) }
func Error(msg string, fields map[string]any) { Log(logrus.ErrorLevel, msg, fields) }
