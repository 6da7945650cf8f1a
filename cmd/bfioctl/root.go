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

// Command bfioctl is a small cobra-based inspection CLI over the bfio
// library: it exists to exercise cfg/pool/handle interactively, not as a
// supported production tool. The core library never imports this package.
package main

import (
	"fmt"
	"os"

	"github.com/libyal/libbfio-go/cfg"
	"github.com/libyal/libbfio-go/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	bindErr       error
	configFileErr error
	activeConfig  cfg.Config
)

var rootCmd = &cobra.Command{
	Use:   "bfioctl",
	Short: "Inspect files and byte ranges through the bfio back-end abstraction",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if bindErr != nil {
			return bindErr
		}
		if configFileErr != nil {
			return configFileErr
		}
		unmarshaled, err := cfg.Unmarshal()
		if err != nil {
			return fmt.Errorf("decoding configuration: %w", err)
		}
		activeConfig = unmarshaled

		logger.Init(logger.Config{
			Format:          activeConfig.Logging.Format,
			Severity:        string(activeConfig.Logging.Severity),
			FilePath:        activeConfig.Logging.FilePath,
			MaxFileSizeMB:   activeConfig.Logging.MaxFileSizeMB,
			BackupFileCount: activeConfig.Logging.BackupFileCount,
			Compress:        activeConfig.Logging.Compress,
		})
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "Path to a YAML config file.")
	bindErr = cfg.BindFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(catCmd, statCmd)
}

func initConfig() {
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		configFileErr = fmt.Errorf("reading config file: %w", err)
	}
}

// Execute runs the bfioctl root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
