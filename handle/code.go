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

package handle

import "github.com/libyal/libbfio-go/backend"

// This file provides the libbfio-style integer-return-code convention as a
// thin layer over Handle's idiomatic Go methods, for callers ported from or
// compared against that convention. The underlying error (and any sink
// frame it produced) is still available by calling the wrapped method
// directly; these wrappers only collapse it to a code.

// OpenCode opens the handle, returning 1 on success or -1 on error.
func (h *Handle) OpenCode(flags backend.OpenFlags) int {
	if err := h.Open(flags); err != nil {
		return -1
	}
	return 1
}

// CloseCode closes the handle, returning 0 on success or -1 on error.
func (h *Handle) CloseCode() int {
	if err := h.Close(); err != nil {
		return -1
	}
	return 0
}

// ReadCode reads into buf, returning the number of bytes read or -1 on
// error.
func (h *Handle) ReadCode(buf []byte) int {
	n, err := h.Read(buf)
	if err != nil {
		return -1
	}
	return n
}

// WriteCode writes buf, returning the number of bytes written or -1 on
// error.
func (h *Handle) WriteCode(buf []byte) int {
	n, err := h.Write(buf)
	if err != nil {
		return -1
	}
	return n
}

// SeekCode seeks the handle, returning the new offset or -1 on error.
func (h *Handle) SeekCode(offset int64, whence backend.Whence) int64 {
	newOffset, err := h.Seek(offset, whence)
	if err != nil {
		return -1
	}
	return newOffset
}

// ExistsCode reports whether the handle's back-end exists, using the
// classic 1/0/-1 convention (see backend.Tri.Code).
func (h *Handle) ExistsCode() int {
	tri, _ := h.Exists()
	return tri.Code()
}
