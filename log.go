// log.go - leveled, tagged logging for the Zest runtime

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// LogLevel orders log severities; entries below the configured level
// are dropped.
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarning
	LogError
	LogFatal
)

var logLevelNames = [...]string{"DEBUG", "INFO", "WARNING", "ERROR", "FATAL"}

func (l LogLevel) String() string {
	if l < LogDebug || l > LogFatal {
		return "UNKNOWN"
	}
	return logLevelNames[l]
}

var logSink = struct {
	sync.Mutex
	level  LogLevel
	output io.Writer
}{
	level:  LogInfo,
	output: os.Stderr,
}

// SetLogLevel drops every entry below `level` from now on.
func SetLogLevel(level LogLevel) {
	logSink.Lock()
	defer logSink.Unlock()
	logSink.level = level
}

// SetLogOutput redirects the sink, mainly for tests.
func SetLogOutput(output io.Writer) {
	logSink.Lock()
	defer logSink.Unlock()
	logSink.output = output
}

// Logf writes a single tagged entry in the `LEVEL <tag> message` shape.
func Logf(level LogLevel, tag string, format string, args ...any) {
	logSink.Lock()
	defer logSink.Unlock()
	if level < logSink.level {
		return
	}
	fmt.Fprintf(logSink.output, "%s <%s> %s\n", level, tag, fmt.Sprintf(format, args...))
}
