// README: logrus logger setup with nested formatter and rotating file sink.
package logging

import (
	"io"
	"os"
	"time"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Fields = logrus.Fields

// New builds the application logger. Logs go to stderr and, outside of tests,
// to a size-rotated file under ./storage/logs.
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&formatter.Formatter{
		TimestampFormat: "02 Jan 06 - 15:04",
		HideKeys:        false,
		NoColors:        false,
	})

	writers := []io.Writer{os.Stderr}
	if os.Getenv("APP_ENV") != "test" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   "./storage/logs/waypoint-" + time.Now().Format("2006-01-02") + ".log",
			LocalTime:  true,
			Compress:   true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}
	logger.SetOutput(io.MultiWriter(writers...))

	return logger
}
