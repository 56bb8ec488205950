package log

import (
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

func init() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

func NewLogger(tag string) logrus.FieldLogger {
	return logrus.WithField("module", tag)
}

// NewStdLogger adapts logger for APIs that only accept a standard library logger,
// such as http.Server.ErrorLog. Every line is logged at warn level.
func NewStdLogger(logger logrus.FieldLogger) *log.Logger {
	return log.New(&warnWriter{logger}, "", 0)
}

type warnWriter struct {
	logger logrus.FieldLogger
}

func (w *warnWriter) Write(p []byte) (n int, err error) {
	w.logger.Warn(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
