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

// Package handle implements the public Handle object: a back-end plus
// current offset, access flags, name storage, an optional offsets list
// for upper-layer range labeling, and optional pool membership. Handle
// mirrors the back-end interface but layers name management and pool
// re-admission policy on top of it.
package handle

import (
	"errors"
	"fmt"

	"github.com/libyal/libbfio-go/backend"
	"github.com/libyal/libbfio-go/codepage"
	"github.com/libyal/libbfio-go/errsink"
	"github.com/libyal/libbfio-go/offsets"
	"github.com/libyal/libbfio-go/pool"
)

// ErrMustOpenThroughPool is returned by Open on a pool-attached handle: a
// pooled handle's physical open must go through its pool so admission and
// eviction bookkeeping stay in sync with the back-end's actual state.
var ErrMustOpenThroughPool = errors.New("handle: must open a pool-attached handle through its pool")

// Handle is a polymorphic I/O object: its behavior is supplied entirely by
// the wrapped back-end, with name storage, an optional offsets list and
// pool bookkeeping layered on top.
type Handle struct {
	backend.Reporter

	be backend.Backend

	flags  backend.OpenFlags
	offset int64
	open   bool

	narrow Name
	wide   Name

	ranges *offsets.List

	owner   *pool.Pool
	entryID pool.EntryID
	pooled  bool
}

// Option configures optional Handle behavior at construction.
type Option func(*Handle)

// WithErrorSink routes every failing operation's diagnostic frame into sink.
func WithErrorSink(sink errsink.Sink) Option {
	return func(h *Handle) { h.SetErrorSink(sink) }
}

// New wraps be in a Handle. The handle starts closed and unpooled.
func New(be backend.Backend, opts ...Option) *Handle {
	h := &Handle{be: be}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetNarrowName and SetWideName store a name on the handle. The two slots
// are distinguished only by which codepage they are validated/round-tripped
// against; bfio does not model true UTF-16 wide strings, treating "wide"
// as just another codepage-qualified name slot.
func (h *Handle) SetNarrowName(s string, cp codepage.Codepage) error {
	return h.narrow.Set(s, cp)
}

func (h *Handle) SetWideName(s string, cp codepage.Codepage) error {
	return h.wide.Set(s, cp)
}

// NarrowName and WideName return the handle's stored name re-rendered in
// cp's codepage.
func (h *Handle) NarrowName(cp codepage.Codepage) (string, error) {
	return h.narrow.Get(cp)
}

func (h *Handle) WideName(cp codepage.Codepage) (string, error) {
	return h.wide.Get(cp)
}

// Offsets returns the handle's offsets list, lazily allocating one on first
// use. The list is opaque to Handle beyond storage and lookup; callers
// use it to label sub-ranges of the handle's data.
func (h *Handle) Offsets() *offsets.List {
	if h.ranges == nil {
		h.ranges = offsets.New()
	}
	return h.ranges
}

// Backend returns the underlying back-end, for callers that need direct
// back-end access (e.g. to inspect a multifile back-end's segments). The
// pool adapter in pool.go of this package uses the field directly.
func (h *Handle) Backend() backend.Backend { return h.be }

// IsOpen reports whether the handle is currently physically open. A pooled
// handle that has been evicted reports false even though a later
// read/write/seek would transparently re-admit it.
func (h *Handle) IsOpen() bool { return h.open }

// Offset returns the handle's current logical offset, valid whether or not
// the handle is presently physically open.
func (h *Handle) Offset() int64 { return h.offset }

// Open opens the handle with the given flags. Opening an already-open
// handle is rejected, matching backend.Backend's own already-open rule. A
// pool-attached handle must be opened through its pool (pool.Pool.Open),
// not directly: that is what keeps Pool.OpenCount and eviction bookkeeping
// in sync with the back-end's actual physical state.
func (h *Handle) Open(flags backend.OpenFlags) error {
	if h.pooled {
		h.Report(errsink.DomainState, errsink.KindOpenFailed, "open: pool-attached handle opened directly", ErrMustOpenThroughPool)
		return ErrMustOpenThroughPool
	}
	if h.open {
		err := fmt.Errorf("handle: %w", backend.ErrAlreadyOpen)
		h.Report(errsink.DomainState, errsink.KindAlreadySet, "open: already open", err)
		return err
	}
	if err := flags.Validate(); err != nil {
		h.Report(errsink.DomainBounds, errsink.KindInvalidValue, "open: invalid flags", err)
		return err
	}
	if err := h.be.Open(flags); err != nil {
		// The back-end reports to its own sink (if any); this frame is the
		// handle's own record that its Open call failed.
		h.Report(errsink.DomainIO, errsink.KindOpenFailed, "open: back-end open failed", err)
		return err
	}
	h.flags = flags
	h.offset = 0
	h.open = true
	return nil
}

// Close closes the handle's back-end. If the handle is pool-managed, it is
// closed through the pool so the pool's open-count bookkeeping stays
// consistent.
func (h *Handle) Close() error {
	if h.pooled {
		return h.owner.Close(h.entryID)
	}
	if !h.open {
		return nil
	}
	err := h.be.Close()
	h.open = false
	if err != nil {
		h.Report(errsink.DomainIO, errsink.KindCloseFailed, "close: back-end close failed", err)
	}
	return err
}

// ensureOpen re-admits a closed pooled handle (evicting an LRU peer if
// necessary) and restores its saved offset before a seek/read/write. A
// closed, unpooled handle is an error: only the pool can reopen something
// it manages.
func (h *Handle) ensureOpen() error {
	if h.open {
		return nil
	}
	if !h.pooled {
		err := fmt.Errorf("handle: %w", backend.ErrNotOpen)
		h.Report(errsink.DomainState, errsink.KindGeneric, "operation on closed, unpooled handle", err)
		return err
	}
	if err := h.owner.Open(h.entryID); err != nil {
		h.Report(errsink.DomainIO, errsink.KindOpenFailed, "re-admission through pool failed", err)
		return err
	}
	return nil
}

// Read reads into buf, transparently re-admitting the handle first if it is
// a closed pooled handle. The current offset advances by the number of
// bytes actually read, only on success: a failed read never perturbs the
// logical offset.
func (h *Handle) Read(buf []byte) (int, error) {
	if err := h.ensureOpen(); err != nil {
		return -1, err
	}
	n, err := h.be.Read(buf)
	if err != nil {
		h.Report(errsink.DomainIO, errsink.KindReadFailed, "read: back-end read failed", err)
		return -1, err
	}
	h.offset += int64(n)
	if h.pooled {
		_ = h.owner.Touch(h.entryID)
	}
	return n, nil
}

// Write writes buf, transparently re-admitting the handle first if it is a
// closed pooled handle. The current offset advances by the number of bytes
// actually written, only on success.
func (h *Handle) Write(buf []byte) (int, error) {
	if err := h.ensureOpen(); err != nil {
		return -1, err
	}
	n, err := h.be.Write(buf)
	if err != nil {
		h.Report(errsink.DomainIO, errsink.KindWriteFailed, "write: back-end write failed", err)
		return -1, err
	}
	h.offset += int64(n)
	if h.pooled {
		_ = h.owner.Touch(h.entryID)
	}
	return n, nil
}

// Seek re-admits a closed pooled handle first, then reapplies the seek.
func (h *Handle) Seek(offset int64, whence backend.Whence) (int64, error) {
	if err := h.ensureOpen(); err != nil {
		return -1, err
	}
	newOffset, err := h.be.Seek(offset, whence)
	if err != nil {
		h.Report(errsink.DomainBounds, errsink.KindSeekFailed, "seek: back-end seek failed", err)
		return -1, err
	}
	h.offset = newOffset
	if h.pooled {
		_ = h.owner.Touch(h.entryID)
	}
	return newOffset, nil
}

// Exists delegates to the back-end.
func (h *Handle) Exists() (backend.Tri, error) { return h.be.Exists() }

// Size delegates to the back-end.
func (h *Handle) Size() (int64, error) { return h.be.Size() }

// Clone produces a new handle wrapping a cloned back-end. The clone is
// closed, has no pool membership, and carries no offsets list — the
// caller re-installs one if it needs it.
func (h *Handle) Clone() (*Handle, error) {
	cloned, err := h.be.Clone()
	if err != nil {
		wrapped := fmt.Errorf("handle: clone: %w", err)
		h.Report(errsink.DomainMemory, errsink.KindCopyFailed, "clone: back-end clone failed", wrapped)
		return nil, wrapped
	}
	clone := New(cloned, WithErrorSink(h.ErrorSink()))
	clone.narrow = h.narrow
	clone.wide = h.wide
	return clone, nil
}
