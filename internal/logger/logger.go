// Copyright 2024 The libbfio-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is the subset of cfg.LoggingConfig the logger package needs:
// format, severity, and optional rotating file output.
type Config struct {
	// Format is "text" or "json".
	Format string
	// Severity is one of TRACE, DEBUG, INFO, WARNING, ERROR, OFF.
	Severity string
	// FilePath, when non-empty, routes output through a rotating
	// lumberjack.Logger instead of stderr.
	FilePath        string
	MaxFileSizeMB   int
	BackupFileCount int
	Compress        bool
}

// DefaultConfig is bfio's built-in logging configuration: INFO severity,
// text output to stderr, and rotation defaults that only take effect once
// FilePath is set.
func DefaultConfig() Config {
	return Config{
		Format:          "text",
		Severity:        INFO,
		MaxFileSizeMB:   512,
		BackupFileCount: 10,
		Compress:        true,
	}
}

type factory struct {
	format string
	level  *slog.LevelVar
	writer io.Writer
}

func (f *factory) handler() slog.Handler {
	opts := &slog.HandlerOptions{Level: f.level, ReplaceAttr: replaceSeverity}
	if f.format == "json" {
		return slog.NewJSONHandler(f.writer, opts)
	}
	return slog.NewTextHandler(f.writer, opts)
}

// replaceSeverity renames slog's "level" attribute to "severity" and
// prints the bfio severity names (including TRACE/OFF, which slog itself
// has no concept of) instead of slog's generic level numbers.
func replaceSeverity(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	level := a.Value.Any().(slog.Level)
	a.Key = "severity"
	switch {
	case level < slog.LevelDebug:
		a.Value = slog.StringValue(TRACE)
	case level < slog.LevelInfo:
		a.Value = slog.StringValue(DEBUG)
	case level < slog.LevelWarn:
		a.Value = slog.StringValue(INFO)
	case level < slog.LevelError:
		a.Value = slog.StringValue(WARNING)
	default:
		a.Value = slog.StringValue(ERROR)
	}
	return a
}

var (
	defaultFactory = &factory{format: "text", level: new(slog.LevelVar), writer: os.Stderr}
	defaultLogger  = slog.New(defaultFactory.handler())
)

// Init reconfigures the package-level logger from cfg. Safe to call more
// than once (e.g. after re-reading configuration).
func Init(cfg Config) {
	var w io.Writer = os.Stderr
	if cfg.FilePath != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxFileSizeMB,
			MaxBackups: cfg.BackupFileCount,
			Compress:   cfg.Compress,
		}
	}
	defaultFactory.format = cfg.Format
	defaultFactory.writer = w
	defaultFactory.level.Set(slogLevel(cfg.Severity))
	defaultLogger = slog.New(defaultFactory.handler())
}

// SetLevel changes the active severity without touching format or output.
func SetLevel(severity string) {
	defaultFactory.level.Set(slogLevel(severity))
}

func Tracef(format string, args ...any) {
	defaultLogger.Log(context.Background(), slogLevel(TRACE), fmt.Sprintf(format, args...))
}
func Debugf(format string, args ...any) { defaultLogger.Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { defaultLogger.Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { defaultLogger.Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { defaultLogger.Error(fmt.Sprintf(format, args...)) }
