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

//go:build unix

package file

import (
	"golang.org/x/sys/unix"

	"github.com/libyal/libbfio-go/backend"
)

// openFlags translates bfio open flags to POSIX open(2) flags via
// golang.org/x/sys/unix rather than relying on the os package's less
// precise portable constants. FlagResize is libbfio's "truncate to zero
// on open with write".
func openFlags(flags backend.OpenFlags) int {
	var o int
	switch {
	case flags.CanRead() && flags.CanWrite():
		o = unix.O_RDWR
	case flags.CanWrite():
		o = unix.O_WRONLY
	default:
		o = unix.O_RDONLY
	}
	if flags.Resize() {
		o |= unix.O_TRUNC
	}
	if flags.Append() {
		o |= unix.O_APPEND
	}
	return o
}
