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

// Package file implements the file back-end: a thin adapter over an OS
// file addressed by path.
package file

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/libyal/libbfio-go/backend"
	"github.com/libyal/libbfio-go/errsink"
)

// Backend is a backend.Backend over an OS file, addressed by path.
type Backend struct {
	backend.Reporter

	path  string
	flags backend.OpenFlags
	f     *os.File
}

var _ backend.Backend = (*Backend)(nil)

// Option configures optional Backend behavior at construction.
type Option func(*Backend)

// WithErrorSink routes every failing operation's diagnostic frame into sink.
func WithErrorSink(sink errsink.Sink) Option {
	return func(b *Backend) { b.SetErrorSink(sink) }
}

// New returns a closed Backend for the file at path. Nothing touches the
// filesystem until Open is called.
func New(path string, opts ...Option) *Backend {
	b := &Backend{path: path}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Path returns the backing file's path.
func (b *Backend) Path() string { return b.path }

// Open implements backend.Backend. Write-mode opens create the file
// (including any missing parent handling the OS performs for a bare
// create) if it does not already exist; opening a nonexistent file
// read-only is an error.
func (b *Backend) Open(flags backend.OpenFlags) error {
	if b.f != nil {
		b.Report(errsink.DomainState, errsink.KindAlreadySet, "open: already open", backend.ErrAlreadyOpen)
		return backend.ErrAlreadyOpen
	}
	if err := flags.Validate(); err != nil {
		b.Report(errsink.DomainBounds, errsink.KindInvalidValue, "open: invalid flags", err)
		return err
	}

	osFlag := openFlags(flags)
	var f *os.File
	var err error
	if flags.CanWrite() {
		f, err = os.OpenFile(b.path, osFlag|os.O_CREATE, 0o644)
	} else {
		f, err = os.OpenFile(b.path, osFlag, 0)
	}
	if err != nil {
		wrapped := fmt.Errorf("file: open %q: %w", b.path, err)
		b.Report(errsink.DomainIO, errsink.KindOpenFailed, "open: os.OpenFile failed", wrapped)
		return wrapped
	}

	b.f = f
	b.flags = flags
	return nil
}

// Close implements backend.Backend. It always leaves the back-end closed.
func (b *Backend) Close() error {
	if b.f == nil {
		b.Report(errsink.DomainState, errsink.KindCloseFailed, "close: not open", backend.ErrNotOpen)
		return backend.ErrNotOpen
	}
	f := b.f
	b.f = nil
	if err := f.Close(); err != nil {
		wrapped := fmt.Errorf("file: close %q: %w", b.path, err)
		b.Report(errsink.DomainIO, errsink.KindCloseFailed, "close: os close failed", wrapped)
		return wrapped
	}
	return nil
}

// Read implements backend.Backend. EOF is translated to (0, nil), never
// an error.
func (b *Backend) Read(buf []byte) (int, error) {
	if b.f == nil {
		b.Report(errsink.DomainState, errsink.KindReadFailed, "read: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	n, err := b.f.Read(buf)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	if err != nil {
		wrapped := fmt.Errorf("file: read %q: %w", b.path, err)
		b.Report(errsink.DomainIO, errsink.KindReadFailed, "read: os read failed", wrapped)
		return -1, wrapped
	}
	return n, nil
}

// Write implements backend.Backend. A file back-end has no hard boundary,
// so it writes all of buf or reports an error.
func (b *Backend) Write(buf []byte) (int, error) {
	if b.f == nil {
		b.Report(errsink.DomainState, errsink.KindWriteFailed, "write: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	if !b.flags.CanWrite() {
		err := fmt.Errorf("file: %q not opened for writing", b.path)
		b.Report(errsink.DomainBounds, errsink.KindWriteFailed, "write: not opened for writing", err)
		return -1, err
	}
	n, err := b.f.Write(buf)
	if err != nil {
		wrapped := fmt.Errorf("file: write %q: %w", b.path, err)
		b.Report(errsink.DomainIO, errsink.KindWriteFailed, "write: os write failed", wrapped)
		return -1, wrapped
	}
	return n, nil
}

// Seek implements backend.Backend.
func (b *Backend) Seek(offset int64, whence backend.Whence) (int64, error) {
	if b.f == nil {
		b.Report(errsink.DomainState, errsink.KindSeekFailed, "seek: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	current, err := b.f.Seek(0, io.SeekCurrent)
	if err != nil {
		wrapped := fmt.Errorf("file: tell %q: %w", b.path, err)
		b.Report(errsink.DomainIO, errsink.KindSeekFailed, "seek: os tell failed", wrapped)
		return -1, wrapped
	}
	size, err := b.Size()
	if err != nil {
		// Size() already reported this failure.
		return -1, err
	}
	newOffset, err := backend.ResolveSeek(current, size, offset, whence)
	if err != nil {
		b.Report(errsink.DomainBounds, errsink.KindSeekFailed, "seek: invalid offset", err)
		return -1, err
	}
	if _, err := b.f.Seek(newOffset, io.SeekStart); err != nil {
		wrapped := fmt.Errorf("file: seek %q: %w", b.path, err)
		b.Report(errsink.DomainIO, errsink.KindSeekFailed, "seek: os seek failed", wrapped)
		return -1, wrapped
	}
	return newOffset, nil
}

// Exists implements backend.Backend: a pure stat, true iff the path names
// a regular file. A missing file is TriFalse, never an error; OS-level
// faults (e.g. permission denied on a parent directory) are TriError.
func (b *Backend) Exists() (backend.Tri, error) {
	info, err := os.Stat(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return backend.TriFalse, nil
		}
		wrapped := fmt.Errorf("file: stat %q: %w", b.path, err)
		b.Report(errsink.DomainIO, errsink.KindGetFailed, "exists: stat failed", wrapped)
		return backend.TriError, wrapped
	}
	if !info.Mode().IsRegular() {
		return backend.TriFalse, nil
	}
	return backend.TriTrue, nil
}

// IsOpen implements backend.Backend.
func (b *Backend) IsOpen() bool { return b.f != nil }

// Size implements backend.Backend: the file's current length.
func (b *Backend) Size() (int64, error) {
	if b.f == nil {
		b.Report(errsink.DomainState, errsink.KindGetFailed, "size: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	info, err := b.f.Stat()
	if err != nil {
		wrapped := fmt.Errorf("file: stat %q: %w", b.path, err)
		b.Report(errsink.DomainIO, errsink.KindGetFailed, "size: stat failed", wrapped)
		return -1, wrapped
	}
	return info.Size(), nil
}

// Clone implements backend.Backend: a new, closed Backend for the same
// path. The clone carries the same error sink forward.
func (b *Backend) Clone() (backend.Backend, error) {
	return New(b.path, WithErrorSink(b.ErrorSink())), nil
}
