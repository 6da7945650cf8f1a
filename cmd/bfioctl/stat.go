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

package main

import (
	"fmt"

	"github.com/libyal/libbfio-go/backend"
	"github.com/libyal/libbfio-go/backend/file"
	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Report whether a path exists and its size, via the file back-end",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		be := file.New(args[0])

		exists, err := be.Exists()
		if err != nil {
			return err
		}
		if exists != backend.TriTrue {
			fmt.Printf("%s: does not exist\n", args[0])
			return nil
		}

		if err := be.Open(backend.FlagRead); err != nil {
			return err
		}
		defer func() { _ = be.Close() }()

		size, err := be.Size()
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d bytes\n", args[0], size)
		return nil
	},
}
