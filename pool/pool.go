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

// Package pool implements a bounded LRU handle manager: callers register
// an arbitrary number of resources while the pool keeps at most Capacity
// of them physically open, evicting the least-recently-touched one to
// make room for a new admission. Pool is single-threaded: it bounds the
// count of physically open handles, not concurrent access, so callers
// that share a Pool across goroutines must serialize externally — there
// is no internal locking here.
package pool

import (
	"errors"
	"fmt"

	"github.com/libyal/libbfio-go/errsink"
	"github.com/libyal/libbfio-go/internal/clock"
	"github.com/libyal/libbfio-go/internal/logger"
)

// Resource is what a Pool manages the physical open/close lifecycle of.
// handle.Handle implements it; Pool itself has no notion of read/write or
// back-ends, only of opening, closing, and restoring a logical offset.
type Resource interface {
	// Open physically opens the resource and seeks it to offset 0 (the
	// resource is responsible for this, matching backend.Backend.Open).
	Open() error
	// Close physically closes the resource. Must always leave it closed.
	Close() error
	// SeekTo restores the resource's logical offset after a reopen.
	SeekTo(offset int64) error
	// CurrentOffset reports the resource's last-known logical offset,
	// valid whether or not the resource is currently physically open.
	CurrentOffset() int64
}

// EntryID identifies a handle appended to a Pool. IDs are never reused.
type EntryID int

type entry struct {
	resource      Resource
	physicallyOpen bool
	lastUsed      uint64
	reopenAllowed bool
	removed       bool
}

// Pool is a bounded LRU manager of Resources: it lets a caller register an
// arbitrary number of them while holding at most Capacity physically open
// at any instant, transparently closing and reopening the
// least-recently-used one when the budget is exceeded.
type Pool struct {
	capacity int
	entries  []*entry
	tick     uint64
	openCnt  int

	clock clock.Clock
	sink  errsink.Sink
}

// New creates an empty Pool admitting at most capacity physical opens at
// once. capacity must be >= 1.
func New(capacity int, opts ...Option) (*Pool, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("pool: capacity must be >= 1, got %d", capacity)
	}
	p := &Pool{capacity: capacity, clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Option configures optional Pool behavior.
type Option func(*Pool)

// WithClock overrides the clock used for log timestamps (not for LRU
// ordering, which uses Pool's own monotonic tick counter so it stays a
// literal strictly-increasing integer regardless of wall-clock
// resolution).
func WithClock(c clock.Clock) Option {
	return func(p *Pool) { p.clock = c }
}

// WithErrorSink routes best-effort eviction-close failures into sink in
// addition to the Warnf log line Pool always emits for them.
func WithErrorSink(sink errsink.Sink) Option {
	return func(p *Pool) { p.sink = sink }
}

// Capacity returns the maximum number of simultaneously physically open
// entries.
func (p *Pool) Capacity() int { return p.capacity }

// OpenCount returns the number of entries currently physically open.
func (p *Pool) OpenCount() int { return p.openCnt }

var (
	// ErrUnknownEntry is returned for an EntryID that was never appended,
	// or was removed.
	ErrUnknownEntry = errors.New("pool: unknown entry")
)

func (p *Pool) lookup(id EntryID) (*entry, error) {
	if id < 0 || int(id) >= len(p.entries) || p.entries[id] == nil || p.entries[id].removed {
		return nil, ErrUnknownEntry
	}
	return p.entries[id], nil
}

// AppendHandle takes ownership of resource, assigning it a fresh EntryID.
// It does not itself open the resource.
func (p *Pool) AppendHandle(resource Resource, reopenAllowed bool) EntryID {
	p.entries = append(p.entries, &entry{resource: resource, reopenAllowed: reopenAllowed})
	return EntryID(len(p.entries) - 1)
}

// SetHandle replaces entry id's resource with a new one, closing and
// discarding the old one first. If the slot was physically open, the
// physical-open count is decremented (the new resource starts closed).
func (p *Pool) SetHandle(id EntryID, resource Resource, reopenAllowed bool) error {
	e, err := p.lookup(id)
	if err != nil {
		return err
	}
	if e.physicallyOpen {
		_ = e.resource.Close()
		p.openCnt--
	}
	e.resource = resource
	e.reopenAllowed = reopenAllowed
	e.physicallyOpen = false
	return nil
}

// IsOpen reports whether entry id is currently physically open.
func (p *Pool) IsOpen(id EntryID) bool {
	e, err := p.lookup(id)
	if err != nil {
		return false
	}
	return e.physicallyOpen
}

// Open admits entry id: if it is already physically open this only bumps
// its LRU timestamp. Otherwise, if the pool is at capacity, it evicts the
// open entry with the smallest timestamp (ties broken by the lowest entry
// ID), then opens the target and restores its last-known logical offset.
//
// After Open returns successfully, (OpenCount() <= Capacity()) holds.
func (p *Pool) Open(id EntryID) error {
	e, err := p.lookup(id)
	if err != nil {
		return err
	}
	if e.physicallyOpen {
		p.touch(e)
		return nil
	}

	if p.openCnt >= p.capacity {
		if err := p.evictOne(); err != nil {
			return err
		}
	}

	if err := e.resource.Open(); err != nil {
		return fmt.Errorf("pool: open entry %d: %w", id, err)
	}
	if offset := e.resource.CurrentOffset(); offset != 0 {
		if err := e.resource.SeekTo(offset); err != nil {
			return fmt.Errorf("pool: restore offset for entry %d: %w", id, err)
		}
	}
	e.physicallyOpen = true
	p.openCnt++
	p.touch(e)
	logger.Debugf("pool: admitted entry %d (open=%d/%d) at %s", id, p.openCnt, p.capacity, p.clock.Now().Format("15:04:05.000"))
	return nil
}

func (p *Pool) touch(e *entry) {
	p.tick++
	e.lastUsed = p.tick
}

// Touch bumps entry id's LRU timestamp without changing its physical-open
// state. Handle calls this after every successful read/write/seek,
// including one that first re-admitted the entry through Open.
func (p *Pool) Touch(id EntryID) error {
	e, err := p.lookup(id)
	if err != nil {
		return err
	}
	p.touch(e)
	return nil
}

// evictOne closes the physically-open entry with the smallest LRU
// timestamp (ties broken by lowest entry ID). Eviction is best-effort: a
// close failure is logged and recorded in the error sink (if any) but does
// not abort the caller's admission.
func (p *Pool) evictOne() error {
	victim := -1
	var victimTick uint64
	for i, e := range p.entries {
		if e == nil || e.removed || !e.physicallyOpen {
			continue
		}
		if victim == -1 || e.lastUsed < victimTick {
			victim = i
			victimTick = e.lastUsed
		}
	}
	if victim == -1 {
		return fmt.Errorf("pool: capacity %d exhausted but no open entry found to evict", p.capacity)
	}

	e := p.entries[victim]
	if err := e.resource.Close(); err != nil {
		logger.Warnf("pool: best-effort eviction close of entry %d failed: %v", victim, err)
		errsink.New(p.sink, errsink.DomainIO, errsink.KindCloseFailed, fmt.Sprintf("eviction close of entry %d", victim), err)
	}
	e.physicallyOpen = false
	p.openCnt--
	logger.Debugf("pool: evicted entry %d (open=%d/%d) at %s", victim, p.openCnt, p.capacity, p.clock.Now().Format("15:04:05.000"))
	return nil
}

// Close closes entry id if it is open, freeing its physical slot. Closing
// an already-closed entry is not an error.
func (p *Pool) Close(id EntryID) error {
	e, err := p.lookup(id)
	if err != nil {
		return err
	}
	if !e.physicallyOpen {
		return nil
	}
	err = e.resource.Close()
	e.physicallyOpen = false
	p.openCnt--
	if err != nil {
		return fmt.Errorf("pool: close entry %d: %w", id, err)
	}
	return nil
}

// CloseAll closes every currently-open entry. Entries are not removed.
func (p *Pool) CloseAll() error {
	var errs []error
	for id, e := range p.entries {
		if e == nil || e.removed || !e.physicallyOpen {
			continue
		}
		if err := e.resource.Close(); err != nil {
			errs = append(errs, fmt.Errorf("pool: close entry %d: %w", id, err))
		}
		e.physicallyOpen = false
		p.openCnt--
	}
	return errors.Join(errs...)
}

// Remove closes entry id if open, detaches its resource (returning
// ownership to the caller), and removes the entry.
func (p *Pool) Remove(id EntryID) (Resource, error) {
	e, err := p.lookup(id)
	if err != nil {
		return nil, err
	}
	if e.physicallyOpen {
		if err := e.resource.Close(); err != nil {
			return nil, fmt.Errorf("pool: close entry %d before remove: %w", id, err)
		}
		e.physicallyOpen = false
		p.openCnt--
	}
	resource := e.resource
	e.removed = true
	e.resource = nil
	return resource, nil
}

// Free closes and removes every entry in the pool.
func (p *Pool) Free() error {
	var errs []error
	for id := range p.entries {
		e := p.entries[id]
		if e == nil || e.removed {
			continue
		}
		if e.physicallyOpen {
			if err := e.resource.Close(); err != nil {
				errs = append(errs, fmt.Errorf("pool: close entry %d: %w", id, err))
			}
			e.physicallyOpen = false
			p.openCnt--
		}
		e.removed = true
		e.resource = nil
	}
	return errors.Join(errs...)
}
