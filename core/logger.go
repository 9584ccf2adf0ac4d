package core

import (
	"fmt"
	"os"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus logger. When logFile is set every
// entry is mirrored to it; the returned func closes that file.
func InitLogger(debug bool, logFile string) (func() error, error) {
	log.SetFormatter(&log.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})

	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	if logFile == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.AddHook(lfshook.NewHook(f, &log.JSONFormatter{}))
	return f.Close, nil
}
