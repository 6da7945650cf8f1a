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

// Package memoryrange implements the memory-range back-end: read/write
// into a caller-owned byte range. The back-end borrows the slice; it
// never allocates, copies, or frees it.
package memoryrange

import (
	"fmt"

	"github.com/libyal/libbfio-go/backend"
	"github.com/libyal/libbfio-go/errsink"
)

// Backend is a backend.Backend over a caller-owned []byte. The caller
// retains ownership and must keep buf alive for as long as the Backend is
// used; Close never frees or clears it.
type Backend struct {
	backend.Reporter

	buf     []byte
	flags   backend.OpenFlags
	open    bool
	current int64
}

var _ backend.Backend = (*Backend)(nil)

// Option configures optional Backend behavior at construction.
type Option func(*Backend)

// WithErrorSink routes every failing operation's diagnostic frame into sink.
func WithErrorSink(sink errsink.Sink) Option {
	return func(b *Backend) { b.SetErrorSink(sink) }
}

// New wraps buf. buf may be nil, representing "no buffer" for Exists'
// purposes; a nil buf cannot be successfully opened.
func New(buf []byte, opts ...Option) *Backend {
	b := &Backend{buf: buf}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open implements backend.Backend.
func (b *Backend) Open(flags backend.OpenFlags) error {
	if b.open {
		b.Report(errsink.DomainState, errsink.KindAlreadySet, "open: already open", backend.ErrAlreadyOpen)
		return backend.ErrAlreadyOpen
	}
	if err := flags.Validate(); err != nil {
		b.Report(errsink.DomainBounds, errsink.KindInvalidValue, "open: invalid flags", err)
		return err
	}
	if b.buf == nil {
		err := fmt.Errorf("memoryrange: nil buffer")
		b.Report(errsink.DomainArguments, errsink.KindInvalidValue, "open: nil buffer", err)
		return err
	}
	b.flags = flags
	b.open = true
	b.current = 0
	return nil
}

// Close implements backend.Backend. The buffer itself is left untouched:
// it is owned by the caller, not the back-end.
func (b *Backend) Close() error {
	if !b.open {
		b.Report(errsink.DomainState, errsink.KindCloseFailed, "close: not open", backend.ErrNotOpen)
		return backend.ErrNotOpen
	}
	b.open = false
	return nil
}

// Read implements backend.Backend: a bounds-checked copy out of buf,
// capped at len(buf)-current.
func (b *Backend) Read(p []byte) (int, error) {
	if !b.open {
		b.Report(errsink.DomainState, errsink.KindReadFailed, "read: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	if b.current >= int64(len(b.buf)) {
		return 0, nil
	}
	n := copy(p, b.buf[b.current:])
	b.current += int64(n)
	return n, nil
}

// Write implements backend.Backend: a bounds-checked copy into buf. A
// memory range has a hard boundary at len(buf), so writes are truncated
// there rather than erroring: writing past the end entirely is an error,
// writing up to and across the end writes only the bytes that fit.
func (b *Backend) Write(p []byte) (int, error) {
	if !b.open {
		b.Report(errsink.DomainState, errsink.KindWriteFailed, "write: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	if !b.flags.CanWrite() {
		err := fmt.Errorf("memoryrange: not opened for writing")
		b.Report(errsink.DomainBounds, errsink.KindWriteFailed, "write: not opened for writing", err)
		return -1, err
	}
	if b.current >= int64(len(b.buf)) {
		err := fmt.Errorf("memoryrange: write at offset %d is past the end of a %d-byte buffer", b.current, len(b.buf))
		b.Report(errsink.DomainBounds, errsink.KindWriteFailed, "write: past end of buffer", err)
		return -1, err
	}
	n := copy(b.buf[b.current:], p)
	b.current += int64(n)
	return n, nil
}

// Seek implements backend.Backend.
func (b *Backend) Seek(offset int64, whence backend.Whence) (int64, error) {
	if !b.open {
		b.Report(errsink.DomainState, errsink.KindSeekFailed, "seek: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	newOffset, err := backend.ResolveSeek(b.current, int64(len(b.buf)), offset, whence)
	if err != nil {
		b.Report(errsink.DomainBounds, errsink.KindSeekFailed, "seek: invalid offset", err)
		return -1, err
	}
	b.current = newOffset
	return newOffset, nil
}

// Exists implements backend.Backend: true iff the wrapped buffer is
// non-nil.
func (b *Backend) Exists() (backend.Tri, error) {
	if b.buf == nil {
		return backend.TriFalse, nil
	}
	return backend.TriTrue, nil
}

// IsOpen implements backend.Backend.
func (b *Backend) IsOpen() bool { return b.open }

// Size implements backend.Backend: the length of the wrapped buffer.
func (b *Backend) Size() (int64, error) {
	return int64(len(b.buf)), nil
}

// Clone implements backend.Backend: a new, closed Backend over the same
// underlying array, not a copy of it — copying a caller-owned buffer would
// silently change its ownership semantics. The clone carries the same
// error sink forward.
func (b *Backend) Clone() (backend.Backend, error) {
	return New(b.buf, WithErrorSink(b.ErrorSink())), nil
}
