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

//go:build !unix

package file

import (
	"os"

	"github.com/libyal/libbfio-go/backend"
)

// openFlags is the non-POSIX fallback: os's portable open flag constants.
// golang.org/x/sys/unix has no meaningful non-unix build, so platforms
// outside the unix build tag (Windows) use the standard library directly.
func openFlags(flags backend.OpenFlags) int {
	var o int
	switch {
	case flags.CanRead() && flags.CanWrite():
		o = os.O_RDWR
	case flags.CanWrite():
		o = os.O_WRONLY
	default:
		o = os.O_RDONLY
	}
	if flags.Resize() {
		o |= os.O_TRUNC
	}
	if flags.Append() {
		o |= os.O_APPEND
	}
	return o
}
