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

// Package filerange implements the file-range back-end: a bounded
// [start, start+size) window over another back-end, typically a
// backend/file.Backend.
package filerange

import (
	"fmt"

	"github.com/libyal/libbfio-go/backend"
	"github.com/libyal/libbfio-go/errsink"
)

// Backend presents a bounded window [rangeStart, rangeStart+rangeSize)
// of a wrapped back-end as its own [0, rangeSize) address space.
type Backend struct {
	backend.Reporter

	wrapped    backend.Backend
	rangeStart int64
	rangeSize  int64
	current    int64
}

var _ backend.Backend = (*Backend)(nil)

// Option configures optional Backend behavior at construction.
type Option func(*Backend)

// WithErrorSink routes every failing operation's own diagnostic frame
// (boundary violations, not the wrapped back-end's own errors) into sink.
func WithErrorSink(sink errsink.Sink) Option {
	return func(b *Backend) { b.SetErrorSink(sink) }
}

// New wraps an existing (closed) back-end and exposes the window
// [start, start+size) of it. wrapped is owned by the returned Backend for
// as long as it is used through it.
func New(wrapped backend.Backend, start, size int64, opts ...Option) *Backend {
	b := &Backend{wrapped: wrapped, rangeStart: start, rangeSize: size}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open implements backend.Backend: opens the wrapped back-end and seeks
// it to rangeStart.
func (b *Backend) Open(flags backend.OpenFlags) error {
	if err := b.wrapped.Open(flags); err != nil {
		return err
	}
	if _, err := b.wrapped.Seek(b.rangeStart, backend.SeekSet); err != nil {
		wrapped := fmt.Errorf("filerange: seek to range start: %w", err)
		b.Report(errsink.DomainIO, errsink.KindOpenFailed, "open: seek to range start failed", wrapped)
		return wrapped
	}
	b.current = 0
	return nil
}

// Close implements backend.Backend.
func (b *Backend) Close() error {
	return b.wrapped.Close()
}

// Read implements backend.Backend: capped at rangeSize-current.
func (b *Backend) Read(p []byte) (int, error) {
	if !b.wrapped.IsOpen() {
		b.Report(errsink.DomainState, errsink.KindReadFailed, "read: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	remaining := b.rangeSize - b.current
	if remaining <= 0 {
		return 0, nil
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := b.wrapped.Read(p)
	if err != nil {
		// The wrapped back-end reports to its own sink (if any); this
		// frame is filerange's own record that the windowed read failed.
		b.Report(errsink.DomainIO, errsink.KindReadFailed, "read: wrapped back-end read failed", err)
		return -1, err
	}
	b.current += int64(n)
	return n, nil
}

// Write implements backend.Backend: capped identically to Read.
func (b *Backend) Write(p []byte) (int, error) {
	if !b.wrapped.IsOpen() {
		b.Report(errsink.DomainState, errsink.KindWriteFailed, "write: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	remaining := b.rangeSize - b.current
	if remaining <= 0 {
		err := fmt.Errorf("filerange: write at offset %d is past the %d-byte range", b.current, b.rangeSize)
		b.Report(errsink.DomainBounds, errsink.KindWriteFailed, "write: past end of range", err)
		return -1, err
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := b.wrapped.Write(p)
	if err != nil {
		b.Report(errsink.DomainIO, errsink.KindWriteFailed, "write: wrapped back-end write failed", err)
		return -1, err
	}
	b.current += int64(n)
	return n, nil
}

// Seek implements backend.Backend: resolves the new logical offset, then
// seeks the wrapped back-end to rangeStart+offset.
func (b *Backend) Seek(offset int64, whence backend.Whence) (int64, error) {
	if !b.wrapped.IsOpen() {
		b.Report(errsink.DomainState, errsink.KindSeekFailed, "seek: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	newOffset, err := backend.ResolveSeek(b.current, b.rangeSize, offset, whence)
	if err != nil {
		b.Report(errsink.DomainBounds, errsink.KindSeekFailed, "seek: invalid offset", err)
		return -1, err
	}
	if _, err := b.wrapped.Seek(b.rangeStart+newOffset, backend.SeekSet); err != nil {
		wrapped := fmt.Errorf("filerange: seek: %w", err)
		b.Report(errsink.DomainIO, errsink.KindSeekFailed, "seek: wrapped back-end seek failed", wrapped)
		return -1, wrapped
	}
	b.current = newOffset
	return newOffset, nil
}

// Exists implements backend.Backend, delegating to the wrapped back-end.
func (b *Backend) Exists() (backend.Tri, error) {
	return b.wrapped.Exists()
}

// IsOpen implements backend.Backend.
func (b *Backend) IsOpen() bool { return b.wrapped.IsOpen() }

// Size implements backend.Backend: the configured range size, not the
// wrapped back-end's total size.
func (b *Backend) Size() (int64, error) {
	return b.rangeSize, nil
}

// Clone implements backend.Backend: a new, closed Backend over a clone of
// the wrapped back-end, with the same range. The clone carries the same
// error sink forward.
func (b *Backend) Clone() (backend.Backend, error) {
	wrappedClone, err := b.wrapped.Clone()
	if err != nil {
		wrapped := fmt.Errorf("filerange: clone wrapped back-end: %w", err)
		b.Report(errsink.DomainMemory, errsink.KindCopyFailed, "clone: wrapped back-end clone failed", wrapped)
		return nil, wrapped
	}
	return New(wrappedClone, b.rangeStart, b.rangeSize, WithErrorSink(b.ErrorSink())), nil
}
