package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const projectName = "pulse"

var (
	projectLogger *logrus.Logger
	once          sync.Once
)

func initLogger() {
	projectLogger = logrus.New()
	projectLogger.SetOutput(os.Stderr)
	projectLogger.SetLevel(logrus.InfoLevel)
	projectLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
}

// GetProjectLogger returns the shared logger every package logs through.
func GetProjectLogger() *logrus.Entry {
	once.Do(initLogger)
	return projectLogger.WithField("name", projectName)
}

// SetLevel parses level and applies it to the project logger.
func SetLevel(level string) error {
	once.Do(initLogger)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	projectLogger.SetLevel(lvl)
	return nil
}

// GetLevel returns the current level of the project logger.
func GetLevel() logrus.Level {
	once.Do(initLogger)
	return projectLogger.GetLevel()
}

// SetOutput redirects the project logger, e.g. away from a terminal owned by the UI.
func SetOutput(w io.Writer) {
	once.Do(initLogger)
	projectLogger.SetOutput(w)
}
