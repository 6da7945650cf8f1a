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

// Package logger is bfio's structured logging layer: package-level
// Tracef/Debugf/Infof/Warnf/Errorf calls backed by log/slog, with a
// reconfigurable severity level, a choice of text or JSON output, and
// optional file rotation via lumberjack.
package logger

import "log/slog"

// Severity names: a five-level-plus-off scheme.
const (
	TRACE   = "TRACE"
	DEBUG   = "DEBUG"
	INFO    = "INFO"
	WARNING = "WARNING"
	ERROR   = "ERROR"
	OFF     = "OFF"
)

// slogLevel maps a bfio severity name onto a slog.Level. TRACE has no
// native slog level, so it is modeled one step below slog.LevelDebug, and
// OFF is modeled one step above slog.LevelError so that no record of any
// built-in level passes the filter.
func slogLevel(severity string) slog.Level {
	switch severity {
	case TRACE:
		return slog.LevelDebug - 4
	case DEBUG:
		return slog.LevelDebug
	case INFO:
		return slog.LevelInfo
	case WARNING:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	case OFF:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}
