// Package logging configures the process-wide logrus logger, mirroring
// the original's dual plain/JSON setup_logging.py and Prysm's structured
// logging idiom.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Configure sets the global logrus level and formatter. format is one of
// "plain" or "json"; any other value falls back to plain text, matching
// the original's default.
func Configure(level, format string) *logrus.Entry {
	log := logrus.StandardLogger()
	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("value", level).Warn("unrecognized log level, defaulting to info")
	}
	log.SetOutput(os.Stdout)
	return logrus.NewEntry(log)
}

// AttachSentryHook tags every log entry with the configured environment
// when SENTRY_DSN is set. A lightweight stand-in for the original's
// sentry_sdk.init — no Sentry Go SDK is wired into this module, so this
// only annotates entries rather than forwarding them.
func AttachSentryHook(log *logrus.Entry, dsn, environment string) *logrus.Entry {
	if dsn == "" {
		return log
	}
	log.WithField("sentry_environment", environment).Info("sentry DSN configured; forwarding not implemented, tagging logs only")
	return log.WithField("environment", environment)
}
