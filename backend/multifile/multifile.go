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

// Package multifile implements the multi-segment back-end: an ordered
// list of sub-back-ends concatenated into one logical stream, with
// address translation from a logical offset to a (segment, local offset)
// pair via an offsets.List and binary search.
package multifile

import (
	"errors"
	"fmt"

	"github.com/libyal/libbfio-go/backend"
	"github.com/libyal/libbfio-go/errsink"
	"github.com/libyal/libbfio-go/offsets"
)

// Backend concatenates its segments, in order, into one logical address
// space [0, total size). Segments are immutable once the back-end is
// open: the offsets list is built from each segment's size as it is
// opened and is not revisited afterward.
type Backend struct {
	backend.Reporter

	segments []backend.Backend
	list     *offsets.List
	total    int64
	open     bool
	current  int64
}

var _ backend.Backend = (*Backend)(nil)

// Option configures optional Backend behavior at construction.
type Option func(*Backend)

// WithErrorSink routes every failing operation's own diagnostic frame
// (boundary and bookkeeping failures, not a segment's own errors) into
// sink.
func WithErrorSink(sink errsink.Sink) Option {
	return func(b *Backend) { b.SetErrorSink(sink) }
}

// New returns a closed Backend concatenating segments in the given order.
// New takes ownership of segments: Close and Clone operate on them, and
// the caller should not use them directly afterward.
func New(segments []backend.Backend, opts ...Option) *Backend {
	segs := make([]backend.Backend, len(segments))
	copy(segs, segments)
	b := &Backend{segments: segs}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open implements backend.Backend. It opens every segment in order,
// building the offsets list from each segment's reported size as it
// opens. If any segment fails to open, every segment opened so far is
// closed again (best-effort; close failures are joined into the returned
// error) before Open returns the original open failure.
func (b *Backend) Open(flags backend.OpenFlags) error {
	if b.open {
		b.Report(errsink.DomainState, errsink.KindAlreadySet, "open: already open", backend.ErrAlreadyOpen)
		return backend.ErrAlreadyOpen
	}
	if err := flags.Validate(); err != nil {
		b.Report(errsink.DomainBounds, errsink.KindInvalidValue, "open: invalid flags", err)
		return err
	}
	if len(b.segments) == 0 {
		err := fmt.Errorf("multifile: no segments")
		b.Report(errsink.DomainArguments, errsink.KindInvalidValue, "open: no segments", err)
		return err
	}

	list := offsets.New()
	var logicalStart int64
	for i, seg := range b.segments {
		if err := seg.Open(flags); err != nil {
			wrapped := errors.Join(fmt.Errorf("multifile: open segment %d: %w", i, err), rollback(b.segments[:i]))
			b.Report(errsink.DomainIO, errsink.KindOpenFailed, "open: segment open failed", wrapped)
			return wrapped
		}
		size, err := seg.Size()
		if err != nil {
			wrapped := errors.Join(fmt.Errorf("multifile: size segment %d: %w", i, err), rollback(b.segments[:i+1]))
			b.Report(errsink.DomainIO, errsink.KindOpenFailed, "open: segment size failed", wrapped)
			return wrapped
		}
		if err := list.Insert(logicalStart, size, i); err != nil {
			wrapped := errors.Join(fmt.Errorf("multifile: segment %d offset bookkeeping: %w", i, err), rollback(b.segments[:i+1]))
			b.Report(errsink.DomainRuntime, errsink.KindOpenFailed, "open: offset bookkeeping failed", wrapped)
			return wrapped
		}
		logicalStart += size
	}

	b.list = list
	b.total = logicalStart
	b.current = 0
	b.open = true
	return nil
}

// rollback closes every segment in segs, joining any close failures into
// a single error. Used to unwind a partially-opened multi-segment back-end.
func rollback(segs []backend.Backend) error {
	var errs []error
	for i, s := range segs {
		if s.IsOpen() {
			if err := s.Close(); err != nil {
				errs = append(errs, fmt.Errorf("multifile: rollback close segment %d: %w", i, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close implements backend.Backend, closing every segment and joining any
// failures rather than stopping at the first one.
func (b *Backend) Close() error {
	if !b.open {
		b.Report(errsink.DomainState, errsink.KindCloseFailed, "close: not open", backend.ErrNotOpen)
		return backend.ErrNotOpen
	}
	b.open = false
	var errs []error
	for i, s := range b.segments {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("multifile: close segment %d: %w", i, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		b.Report(errsink.DomainIO, errsink.KindCloseFailed, "close: one or more segments failed to close", err)
		return err
	}
	return nil
}

func (b *Backend) segmentAt(offset int64) (backend.Backend, offsets.Interval, bool) {
	iv, ok := b.list.Lookup(offset)
	if !ok {
		return nil, offsets.Interval{}, false
	}
	return b.segments[iv.Value.(int)], iv, true
}

// Read implements backend.Backend's boundary-crossing read algorithm:
// binary-search for the segment containing the current offset, read up to
// its boundary, advance to the next segment on a boundary crossing, and
// stop when buf is full or the last segment reports EOF. A partial read
// inside a segment is continued from where it stopped; a non-last segment
// that returns 0 bytes before its declared boundary is an error: the
// segment lied about its size.
func (b *Backend) Read(buf []byte) (int, error) {
	if !b.open {
		b.Report(errsink.DomainState, errsink.KindReadFailed, "read: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	var total int
	for len(buf) > 0 {
		if b.current >= b.total {
			break
		}
		seg, iv, ok := b.segmentAt(b.current)
		if !ok {
			break
		}
		localOffset := b.current - iv.Start
		if _, err := seg.Seek(localOffset, backend.SeekSet); err != nil {
			wrapped := fmt.Errorf("multifile: seek segment %d: %w", iv.Value, err)
			b.Report(errsink.DomainIO, errsink.KindReadFailed, "read: segment seek failed", wrapped)
			return -1, wrapped
		}
		want := iv.Size - localOffset
		if int64(len(buf)) < want {
			want = int64(len(buf))
		}
		n, err := seg.Read(buf[:want])
		if err != nil {
			wrapped := fmt.Errorf("multifile: read segment %d: %w", iv.Value, err)
			b.Report(errsink.DomainIO, errsink.KindReadFailed, "read: segment read failed", wrapped)
			return -1, wrapped
		}
		if n == 0 {
			isLast := iv.Value.(int) == len(b.segments)-1
			if !isLast {
				err := fmt.Errorf("multifile: segment %d returned 0 bytes before its %d-byte boundary", iv.Value, iv.Size)
				b.Report(errsink.DomainRuntime, errsink.KindReadFailed, "read: segment short read", err)
				return -1, err
			}
			break
		}
		buf = buf[n:]
		b.current += int64(n)
		total += n
	}
	return total, nil
}

// Write implements backend.Backend's boundary-crossing write algorithm,
// mirroring Read. Writing past the last segment's boundary does not grow
// the back-end: it is an error. If some bytes were written before the
// boundary was hit, Write returns that count together with the error so
// the caller can tell a clean write from a truncated one.
func (b *Backend) Write(buf []byte) (int, error) {
	if !b.open {
		b.Report(errsink.DomainState, errsink.KindWriteFailed, "write: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	var total int
	for len(buf) > 0 {
		if b.current >= b.total {
			err := fmt.Errorf("multifile: write past the end of the last segment")
			b.Report(errsink.DomainBounds, errsink.KindWriteFailed, "write: past end of last segment", err)
			if total > 0 {
				return total, err
			}
			return -1, err
		}
		seg, iv, ok := b.segmentAt(b.current)
		if !ok {
			err := fmt.Errorf("multifile: no segment contains offset %d", b.current)
			b.Report(errsink.DomainRuntime, errsink.KindWriteFailed, "write: no segment found", err)
			return total, err
		}
		localOffset := b.current - iv.Start
		if _, err := seg.Seek(localOffset, backend.SeekSet); err != nil {
			wrapped := fmt.Errorf("multifile: seek segment %d: %w", iv.Value, err)
			b.Report(errsink.DomainIO, errsink.KindWriteFailed, "write: segment seek failed", wrapped)
			return -1, wrapped
		}
		want := iv.Size - localOffset
		if int64(len(buf)) < want {
			want = int64(len(buf))
		}
		n, err := seg.Write(buf[:want])
		if err != nil {
			wrapped := fmt.Errorf("multifile: write segment %d: %w", iv.Value, err)
			b.Report(errsink.DomainIO, errsink.KindWriteFailed, "write: segment write failed", wrapped)
			return -1, wrapped
		}
		buf = buf[n:]
		b.current += int64(n)
		total += n
		if int64(n) < want {
			// Partial write inside a segment; stop rather than assume the
			// rest of buf belongs to the next segment already.
			break
		}
	}
	return total, nil
}

// Seek implements backend.Backend: resolves the absolute logical offset,
// then eagerly seeks the segment that now contains it (other segments are
// left alone and are seeked lazily by Read/Write when crossed).
func (b *Backend) Seek(offset int64, whence backend.Whence) (int64, error) {
	if !b.open {
		b.Report(errsink.DomainState, errsink.KindSeekFailed, "seek: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	newOffset, err := backend.ResolveSeek(b.current, b.total, offset, whence)
	if err != nil {
		b.Report(errsink.DomainBounds, errsink.KindSeekFailed, "seek: invalid offset", err)
		return -1, err
	}
	if seg, iv, ok := b.segmentAt(newOffset); ok {
		if _, err := seg.Seek(newOffset-iv.Start, backend.SeekSet); err != nil {
			wrapped := fmt.Errorf("multifile: seek segment %d: %w", iv.Value, err)
			b.Report(errsink.DomainIO, errsink.KindSeekFailed, "seek: segment seek failed", wrapped)
			return -1, wrapped
		}
	}
	b.current = newOffset
	return newOffset, nil
}

// Exists implements backend.Backend: true iff every segment exists.
func (b *Backend) Exists() (backend.Tri, error) {
	for i, s := range b.segments {
		exists, err := s.Exists()
		if err != nil {
			wrapped := fmt.Errorf("multifile: exists segment %d: %w", i, err)
			b.Report(errsink.DomainIO, errsink.KindGetFailed, "exists: segment exists failed", wrapped)
			return backend.TriError, wrapped
		}
		if exists != backend.TriTrue {
			return backend.TriFalse, nil
		}
	}
	return backend.TriTrue, nil
}

// IsOpen implements backend.Backend.
func (b *Backend) IsOpen() bool { return b.open }

// Size implements backend.Backend: the sum of segment sizes, cached at
// open time.
func (b *Backend) Size() (int64, error) {
	if !b.open {
		b.Report(errsink.DomainState, errsink.KindGetFailed, "size: not open", backend.ErrNotOpen)
		return -1, backend.ErrNotOpen
	}
	return b.total, nil
}

// Clone implements backend.Backend: a new, closed Backend over clones of
// every segment, in the same order. The clone carries the same error
// sink forward.
func (b *Backend) Clone() (backend.Backend, error) {
	clones := make([]backend.Backend, len(b.segments))
	for i, s := range b.segments {
		c, err := s.Clone()
		if err != nil {
			wrapped := fmt.Errorf("multifile: clone segment %d: %w", i, err)
			b.Report(errsink.DomainMemory, errsink.KindCopyFailed, "clone: segment clone failed", wrapped)
			return nil, wrapped
		}
		clones[i] = c
	}
	return New(clones, WithErrorSink(b.ErrorSink())), nil
}
