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

// Package cfg is bfio's configuration surface: a small Config struct bound
// to command-line flags via spf13/pflag and spf13/viper, and decoded with
// mitchellh/mapstructure conventions (see decode_hook.go). bfio's
// parameter surface (pool capacity, default codepage, logging) is small
// enough to hand-write rather than generate from a YAML table.
package cfg

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// PoolConfig configures the shared pool.Pool a bfioctl invocation opens
// handles through.
type PoolConfig struct {
	MaximumOpen int `yaml:"maximum-open" mapstructure:"maximum-open"`
}

// LoggingConfig configures internal/logger.
type LoggingConfig struct {
	Format          string   `yaml:"format" mapstructure:"format"`
	Severity        Severity `yaml:"severity" mapstructure:"severity"`
	FilePath        string   `yaml:"file-path" mapstructure:"file-path"`
	MaxFileSizeMB   int      `yaml:"max-file-size-mb" mapstructure:"max-file-size-mb"`
	BackupFileCount int      `yaml:"backup-file-count" mapstructure:"backup-file-count"`
	Compress        bool     `yaml:"compress" mapstructure:"compress"`
}

// Config is bfio's full configuration surface.
type Config struct {
	Pool           PoolConfig   `yaml:"pool" mapstructure:"pool"`
	DefaultCodepage CodepageName `yaml:"default-codepage" mapstructure:"default-codepage"`
	Logging        LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// Default returns bfio's built-in defaults, applied before any flag or
// config file value is layered on top.
func Default() Config {
	return Config{
		Pool:            PoolConfig{MaximumOpen: 16},
		DefaultCodepage: CodepageName("ascii"),
		Logging: LoggingConfig{
			Format:          "text",
			Severity:        Severity("INFO"),
			MaxFileSizeMB:   512,
			BackupFileCount: 10,
			Compress:        true,
		},
	}
}

// BindFlags registers bfio's configuration knobs onto flagSet and binds
// each one into viper.
func BindFlags(flagSet *pflag.FlagSet) error {
	d := Default()

	flagSet.Int("pool.maximum-open", d.Pool.MaximumOpen, "Maximum number of simultaneously open handles in the shared pool.")
	if err := viper.BindPFlag("pool.maximum-open", flagSet.Lookup("pool.maximum-open")); err != nil {
		return err
	}

	flagSet.String("default-codepage", string(d.DefaultCodepage), "Codepage used to decode/encode handle names (ascii, windows-1250 .. windows-1258).")
	if err := viper.BindPFlag("default-codepage", flagSet.Lookup("default-codepage")); err != nil {
		return err
	}

	flagSet.String("logging.format", d.Logging.Format, "Log output format: text or json.")
	if err := viper.BindPFlag("logging.format", flagSet.Lookup("logging.format")); err != nil {
		return err
	}

	flagSet.String("logging.severity", string(d.Logging.Severity), "Log severity: TRACE, DEBUG, INFO, WARNING, ERROR, OFF.")
	if err := viper.BindPFlag("logging.severity", flagSet.Lookup("logging.severity")); err != nil {
		return err
	}

	flagSet.String("logging.file-path", d.Logging.FilePath, "Path to a log file; empty means stderr.")
	if err := viper.BindPFlag("logging.file-path", flagSet.Lookup("logging.file-path")); err != nil {
		return err
	}

	flagSet.Int("logging.max-file-size-mb", d.Logging.MaxFileSizeMB, "Maximum size in MB before a log file is rotated.")
	if err := viper.BindPFlag("logging.max-file-size-mb", flagSet.Lookup("logging.max-file-size-mb")); err != nil {
		return err
	}

	flagSet.Int("logging.backup-file-count", d.Logging.BackupFileCount, "Number of rotated log files to retain.")
	if err := viper.BindPFlag("logging.backup-file-count", flagSet.Lookup("logging.backup-file-count")); err != nil {
		return err
	}

	flagSet.Bool("logging.compress", d.Logging.Compress, "Compress rotated log files.")
	return viper.BindPFlag("logging.compress", flagSet.Lookup("logging.compress"))
}

// Unmarshal decodes viper's current global state into a Config, using
// DecodeHook so CodepageName and Severity's TextUnmarshaler methods are
// honored.
func Unmarshal() (Config, error) {
	cfg := Default()
	if err := viper.Unmarshal(&cfg, viper.DecodeHook(DecodeHook())); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
