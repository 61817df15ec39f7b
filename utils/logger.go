package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured logrus logger: readable text in debug
// mode, JSON everywhere else.
func NewLogger(ginMode string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if ginMode == "debug" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
