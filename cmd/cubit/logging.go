package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	logDir      = "logs"
	logFileName = "cubit.log"
)

// setupLogging sends logs to logs/cubit.log when debug is set, otherwise discards them
// The terminal belongs to the game screen, so logs never go to stdout
// Returns the open log file, nil when discarding
func setupLogging(debug bool, level logrus.Level, formatter logrus.Formatter) (*logrus.Logger, *os.File) {
	log := logrus.New()
	log.SetFormatter(formatter)
	log.SetLevel(level)

	if !debug {
		log.SetOutput(io.Discard)
		return log, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return log, nil
	}

	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return log, nil
	}

	log.SetOutput(f)
	if level < logrus.DebugLevel {
		log.SetLevel(logrus.DebugLevel)
	}
	return log, f
}
