package session

import "github.com/sirupsen/logrus"

var sessionLog = logrus.WithField("source", "cdap")

// SetLogger sets the default logger used by sessions and managers
// configured without one.
func SetLogger(logger *logrus.Entry) {
	fields := sessionLog.Data
	sessionLog = logger.WithFields(fields)
}
