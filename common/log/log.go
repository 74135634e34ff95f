/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/xuperchain/log15"
)

var (
	// DefaultLogger is the default logger used by Info, Warn ... methods
	DefaultLogger = Logger{log.Root()}

	// Debug print debug level log
	Debug = DefaultLogger.Debug
	// Info print info level log
	Info = DefaultLogger.Info
	// Warn print warn level log
	Warn = DefaultLogger.Warn
	// Error print error level log
	Error = DefaultLogger.Error
)

// LogConfig is the log config of the shell
type LogConfig struct {
	Module   string `yaml:"module,omitempty" mapstructure:"module"`
	Filepath string `yaml:"filepath,omitempty" mapstructure:"filepath"`
	Filename string `yaml:"filename,omitempty" mapstructure:"filename"`
	Fmt      string `yaml:"fmt,omitempty" mapstructure:"fmt"`
	Level    string `yaml:"level,omitempty" mapstructure:"level"`
}

// Logger wrapper
type Logger struct {
	log.Logger
}

// OpenLog create and open log stream using LogConfig.
// Console output always goes to stderr so it never mixes with command results.
func OpenLog(lc *LogConfig) (Logger, error) {
	return openLog(lc, os.Stderr)
}

func openLog(lc *LogConfig, console io.Writer) (Logger, error) {
	lfmt := log.LogfmtFormat()
	switch lc.Fmt {
	case "json":
		lfmt = log.JsonFormat()
	}

	xlog := log.New("module", lc.Module)

	lvLevel, err := log.LvlFromString(lc.Level)
	if err != nil {
		lvLevel = log.LvlWarn
		err = fmt.Errorf("log level %q: %w", lc.Level, err)
	}

	handler := log.StreamHandler(console, lfmt)
	// file log is only enabled when a path is configured
	if lc.Filepath != "" && lc.Filename != "" {
		if mkErr := os.MkdirAll(lc.Filepath, os.ModePerm); mkErr != nil {
			return Logger{xlog}, mkErr
		}
		fileHandler, fErr := log.FileHandler(filepath.Join(lc.Filepath, lc.Filename+".log"), lfmt)
		if fErr != nil {
			return Logger{xlog}, fErr
		}
		handler = log.MultiHandler(handler, fileHandler)
	}

	xlog.SetHandler(log.SyncHandler(log.LvlFilterHandler(lvLevel, handler)))
	return Logger{xlog}, err
}

// OpenDefaultLog create and open log stream using LogConfig and assign DefaultLogger
func OpenDefaultLog(lc *LogConfig) (Logger, error) {
	logger, err := OpenLog(lc)
	DefaultLogger = logger
	Debug = DefaultLogger.Debug
	Info = DefaultLogger.Info
	Warn = DefaultLogger.Warn
	Error = DefaultLogger.Error
	return logger, err
}

// Discard returns a logger dropping every record, used by tests and quiet callers.
func Discard() Logger {
	l := log.New()
	l.SetHandler(log.DiscardHandler())
	return Logger{l}
}

func init() {
	DefaultLogger.SetHandler(log.LvlFilterHandler(log.LvlWarn, log.StreamHandler(os.Stderr, log.LogfmtFormat())))
}
