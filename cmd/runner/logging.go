package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logFile *os.File

// setupLogger installs the default logger. Interactive commands own the
// terminal, so without --log-file they log nowhere.
func setupLogger(interactive bool) *log.Logger {
	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			logFile = f
			w = f
		}
	}
	if logFile == nil && interactive {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	log.SetDefault(logger)
	return logger
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
	}
}
