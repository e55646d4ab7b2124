// Package log configures apex/log for the whole tool.
//
// The level comes from the STRATUM_LOG environment variable
// (debug, info, warn, error, fatal); the default is error so library
// use stays quiet unless asked.
package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// Init sets up apex with the compact handler and the level from
// STRATUM_LOG. Safe to call more than once.
func Init() {
	envLevel := strings.ToLower(os.Getenv("STRATUM_LOG"))
	if envLevel == "" {
		envLevel = "error"
	}

	var apexLevel log.Level
	switch envLevel {
	case "debug":
		apexLevel = log.DebugLevel
	case "info":
		apexLevel = log.InfoLevel
	case "warn":
		apexLevel = log.WarnLevel
	case "error":
		apexLevel = log.ErrorLevel
	case "fatal":
		apexLevel = log.FatalLevel
	default:
		apexLevel = log.ErrorLevel
	}

	log.SetHandler(&compactHandler{})
	log.SetLevel(apexLevel)
}

// compactHandler writes single-line entries to stderr.
type compactHandler struct{}

// HandleLog implements the log.Handler interface.
func (h *compactHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := "?"
	switch e.Level {
	case log.DebugLevel:
		level = "D"
	case log.InfoLevel:
		level = "I"
	case log.WarnLevel:
		level = "W"
	case log.ErrorLevel:
		level = "E"
	case log.FatalLevel:
		level = "F"
	}
	fmt.Fprintf(os.Stderr, "%s %s %s\n", timestamp, level, e.Message)
	return nil
}

// Debugf logs at Debug level.
func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
