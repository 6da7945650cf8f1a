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

// Package backend declares the capability set every bfio back-end must
// implement: open, close, read, write, seek, exists, is-open, size, and
// clone. This is the polymorphism boundary — a concrete back-end (file,
// memory-range, file-range, multi-segment) is a type implementing this
// interface, not a subclass of anything.
package backend

import (
	"errors"
	"fmt"

	"github.com/libyal/libbfio-go/errsink"
)

// OpenFlags is the bitmask of access modes a back-end is opened with.
type OpenFlags uint8

const (
	FlagRead   OpenFlags = 0x01
	FlagWrite  OpenFlags = 0x02
	FlagResize OpenFlags = 0x04
	FlagAppend OpenFlags = 0x08
)

// ErrInvalidFlags is returned by Validate for an invalid flag combination:
// zero, or FlagResize without FlagWrite.
var ErrInvalidFlags = errors.New("backend: invalid open flag combination")

// Validate rejects invalid flag combinations at open time: no bits set, or
// FlagResize without FlagWrite.
func (f OpenFlags) Validate() error {
	if f == 0 {
		return fmt.Errorf("%w: no flag bits set", ErrInvalidFlags)
	}
	if f&FlagResize != 0 && f&FlagWrite == 0 {
		return fmt.Errorf("%w: FlagResize requires FlagWrite", ErrInvalidFlags)
	}
	return nil
}

func (f OpenFlags) CanRead() bool   { return f&FlagRead != 0 }
func (f OpenFlags) CanWrite() bool  { return f&FlagWrite != 0 }
func (f OpenFlags) Resize() bool    { return f&FlagResize != 0 }
func (f OpenFlags) Append() bool    { return f&FlagAppend != 0 }

func (f OpenFlags) String() string {
	s := ""
	if f.CanRead() {
		s += "R"
	}
	if f.CanWrite() {
		s += "W"
	}
	if f.Resize() {
		s += "T"
	}
	if f.Append() {
		s += "A"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Whence matches the Unix lseek whences used by Seek.
type Whence int

const (
	SeekSet     Whence = 0
	SeekCurrent Whence = 1
	SeekEnd     Whence = 2
)

// Tri is a three-valued result: true, false, or error. It captures the
// classic 1/0/-1 return convention for Exists (and similar
// successful-but-negative-result operations) in an idiomatic Go shape.
type Tri int

const (
	TriError Tri = -1
	TriFalse Tri = 0
	TriTrue  Tri = 1
)

// Code returns the libbfio-style integer return code for this Tri value.
func (t Tri) Code() int { return int(t) }

// Backend is the capability set a concrete I/O back-end must implement.
// Every method follows these semantics:
//
//   - Open fails if already open, or if flags.Validate() fails. On
//     success the current offset resets to 0.
//   - Close fails if not open; it otherwise always leaves the back-end
//     closed, whether it returns an error or not, so retries are never
//     required.
//   - Read returns bytes actually read in [0, len(buf)], 0 only at
//     logical EOF, and an error only on a genuine I/O failure — reading
//     past EOF is 0 bytes, not an error.
//   - Write returns bytes actually written; partial writes are allowed
//     only where the back-end has a hard boundary (e.g. end of a
//     memory-range buffer).
//   - Seek matches lseek's SeekSet/SeekCurrent/SeekEnd. Seeking before 0
//     is an error; seeking past the end is allowed, and the next Read
//     then returns 0.
//   - Clone returns a new, closed back-end configured identically to the
//     receiver; it has its own open state and offset. A memory-range clone
//     still borrows the same caller-owned buffer as the receiver.
type Backend interface {
	Open(flags OpenFlags) error
	Close() error
	Read(buf []byte) (int, error)
	Write(buf []byte) (int, error)
	Seek(offset int64, whence Whence) (int64, error)
	Exists() (Tri, error)
	IsOpen() bool
	Size() (int64, error)
	Clone() (Backend, error)
}

// ErrNotOpen and ErrAlreadyOpen cover the state errors every back-end
// implementation shares: operating on a closed back-end, or opening one
// that is already open.
var (
	ErrNotOpen     = errors.New("backend: not open")
	ErrAlreadyOpen = errors.New("backend: already open")
)

// ErrSeekNegative is returned when a Seek would move the current offset
// before 0.
var ErrSeekNegative = errors.New("backend: seek to negative offset")

// ErrUnknownWhence is returned for any Whence value outside
// {SeekSet, SeekCurrent, SeekEnd}.
var ErrUnknownWhence = errors.New("backend: unknown whence")

// Reporter is embedded by concrete back-end implementations to give them a
// common error-sink plumbing point: SetErrorSink configures the sink, and
// Report appends a frame through it. A Reporter with no sink configured
// silently drops every Report call, matching errsink.New's nil-sink
// behavior — a back-end is never required to carry one.
type Reporter struct {
	sink errsink.Sink
}

// SetErrorSink configures the sink Report appends frames to.
func (r *Reporter) SetErrorSink(sink errsink.Sink) { r.sink = sink }

// ErrorSink returns the currently configured sink, or nil. Used by Clone
// implementations to carry a back-end's sink forward onto its clone.
func (r *Reporter) ErrorSink() errsink.Sink { return r.sink }

// Report appends a structured frame describing a failure; a no-op if no
// sink has been configured.
func (r *Reporter) Report(domain errsink.Domain, kind errsink.Kind, message string, cause error) {
	errsink.New(r.sink, domain, kind, message, cause)
}

// ResolveSeek applies (offset, whence) against a current position and
// size, returning the new absolute offset or an error. Shared by every
// back-end so the negative-offset and unknown-whence rules are enforced
// identically everywhere.
func ResolveSeek(current, size, offset int64, whence Whence) (int64, error) {
	var newOffset int64
	switch whence {
	case SeekSet:
		newOffset = offset
	case SeekCurrent:
		newOffset = current + offset
	case SeekEnd:
		newOffset = size + offset
	default:
		return -1, ErrUnknownWhence
	}
	if newOffset < 0 {
		return -1, ErrSeekNegative
	}
	return newOffset, nil
}
