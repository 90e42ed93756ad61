package main

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogger switches logrus to JSON and, when logFile is set, tees the
// output into a rotated file. The returned func flushes and closes it.
func setupLogger(logFile string) func() {
	log.SetFormatter(&log.JSONFormatter{})
	if logFile == "" {
		return func() {}
	}
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	return func() { _ = rotator.Close() }
}
