package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger, set up by InitLogger.
var Log *logrus.Logger

// InitLogger configures structured JSON logging to stdout.
func InitLogger(level string) {
	Log = logrus.New()
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)
}
