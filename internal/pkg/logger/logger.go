package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init configures Log. format is "json" or "text"; an empty format picks JSON
// in production and text elsewhere.
func Init(level, format string, production bool) {
	Log.Out = os.Stdout

	if format == "" {
		format = "text"
		if production {
			format = "json"
		}
	}

	if format == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}
