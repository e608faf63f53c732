// Package logger builds the logrus instances the CLI hands to optimizer
// sessions. Library packages never log through a process-wide logger; they
// receive a sink at construction.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New initializes a structured logger with the given level.
func New(logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.SetOutput(os.Stdout)
	return log
}

// WithSite creates a logger entry carrying fantasy-site context.
func WithSite(log *logrus.Logger, site string) *logrus.Entry {
	return log.WithField("site", site)
}
