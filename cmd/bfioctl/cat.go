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
	"os"

	"github.com/libyal/libbfio-go/backend"
	"github.com/libyal/libbfio-go/backend/file"
	"github.com/libyal/libbfio-go/errsink"
	"github.com/libyal/libbfio-go/handle"
	"github.com/libyal/libbfio-go/internal/logger"
	"github.com/libyal/libbfio-go/pool"
	"github.com/spf13/cobra"
)

var (
	catOffset int64
	catLength int64
)

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print a byte range of a file through a pooled file back-end",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pool.New(activeConfig.Pool.MaximumOpen)
		if err != nil {
			return err
		}

		sink := errsink.NewChainSink()
		defer logFrames(sink)

		h := handle.New(file.New(args[0], file.WithErrorSink(sink)), handle.WithErrorSink(sink))
		if err := h.Attach(p, backend.FlagRead); err != nil {
			return err
		}
		id, _ := h.EntryID()
		if err := p.Open(id); err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer func() { _ = p.Free() }()

		if catOffset != 0 {
			if _, err := h.Seek(catOffset, backend.SeekSet); err != nil {
				return fmt.Errorf("seeking to %d: %w", catOffset, err)
			}
		}

		buf := make([]byte, catLength)
		n, err := h.Read(buf)
		if err != nil {
			return fmt.Errorf("reading: %w", err)
		}
		if _, err := os.Stdout.Write(buf[:n]); err != nil {
			return err
		}
		logger.Debugf("bfioctl cat: read %d bytes from %s (pool open=%d/%d)", n, args[0], p.OpenCount(), p.Capacity())
		return nil
	},
}

func init() {
	catCmd.Flags().Int64Var(&catOffset, "offset", 0, "Byte offset to start reading at.")
	catCmd.Flags().Int64Var(&catLength, "length", 4096, "Number of bytes to read.")
}

// logFrames emits every frame accumulated in sink as a debug log line, then
// frees the sink. A healthy run logs nothing.
func logFrames(sink *errsink.ChainSink) {
	for _, f := range sink.Frames() {
		logger.Debugf("bfioctl cat: %s", f.Error())
	}
	sink.Free()
}
