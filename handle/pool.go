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

import (
	"fmt"

	"github.com/libyal/libbfio-go/backend"
	"github.com/libyal/libbfio-go/errsink"
	"github.com/libyal/libbfio-go/pool"
)

// poolResource is the pool.Resource a Handle registers itself under. It is
// kept separate from Handle's own Open/Close/Seek so that a pool-triggered
// physical open/close (driven by admission and eviction) never recurses
// back through Handle's pool-aware public methods. It still reports through
// the owning Handle's own sink, since these calls are the only path by
// which a pooled handle's back-end is ever physically opened or closed.
type poolResource struct {
	h *Handle
}

func (r *poolResource) Open() error {
	if err := r.h.be.Open(r.h.flags); err != nil {
		r.h.Report(errsink.DomainIO, errsink.KindOpenFailed, "pool: re-admission open failed", err)
		return err
	}
	r.h.open = true
	return nil
}

func (r *poolResource) Close() error {
	err := r.h.be.Close()
	r.h.open = false
	if err != nil {
		r.h.Report(errsink.DomainIO, errsink.KindCloseFailed, "pool: eviction close failed", err)
	}
	return err
}

func (r *poolResource) SeekTo(offset int64) error {
	_, err := r.h.be.Seek(offset, backend.SeekSet)
	return err
}

func (r *poolResource) CurrentOffset() int64 { return r.h.offset }

var _ pool.Resource = (*poolResource)(nil)

// ErrAlreadyPooled is returned by Attach on a handle that already belongs
// to a pool.
var ErrAlreadyPooled = fmt.Errorf("handle: already a member of a pool")

// Attach registers h with p under open flags: p takes ownership of h's
// physical lifecycle but h is not itself opened by Attach. h must not
// already belong to a pool; it must also not already be physically open,
// since the pool's bookkeeping assumes it starts the relationship closed.
func (h *Handle) Attach(p *pool.Pool, flags backend.OpenFlags) error {
	if h.pooled {
		return ErrAlreadyPooled
	}
	if h.open {
		return fmt.Errorf("handle: %w: cannot attach an already-open handle to a pool", backend.ErrAlreadyOpen)
	}
	h.flags = flags
	h.owner = p
	h.pooled = true
	h.entryID = p.AppendHandle(&poolResource{h: h}, true)
	return nil
}

// EntryID returns h's pool entry id and true if h is pool-attached.
func (h *Handle) EntryID() (pool.EntryID, bool) {
	return h.entryID, h.pooled
}

// Detach removes h from its pool (closing it first if open) and returns
// ownership to the caller.
func (h *Handle) Detach() error {
	if !h.pooled {
		return nil
	}
	if _, err := h.owner.Remove(h.entryID); err != nil {
		return err
	}
	h.owner = nil
	h.pooled = false
	return nil
}
