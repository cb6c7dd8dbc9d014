package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Handlers and services log through
// this entry so every line carries the service field.
var Log *logrus.Entry

func init() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if os.Getenv("FEEDHUB_ENV") == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	Log = logger.WithField("service", "feedhub")
}
