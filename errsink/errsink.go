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

// Package errsink implements the error frame sink that every bfio
// component appends diagnostic context to. The core never raises; a
// failing call returns a plain error (or an int return code, for callers
// that want the libbfio-style convention) and, when the caller supplied a
// Sink, also appends one or more Frames describing what went wrong.
//
// The sink is write-only from the core's perspective: nothing in this
// module reads back from a Sink it was handed, it only appends.
package errsink

import (
	"fmt"

	"github.com/google/uuid"
)

// Domain classifies the subsystem an error frame originated in.
type Domain string

const (
	DomainArguments  Domain = "arguments"
	DomainRuntime    Domain = "runtime"
	DomainIO         Domain = "io"
	DomainMemory     Domain = "memory"
	DomainConversion Domain = "conversion"

	// DomainState and DomainBounds refine DomainRuntime and DomainArguments
	// respectively for callers that want finer-grained classification
	// without adding new top-level domains. Code that only understands the
	// five coarse domains can still treat these as
	// DomainRuntime/DomainArguments via Domain.Coarse.
	DomainState  Domain = "state"
	DomainBounds Domain = "bounds"
)

// Coarse maps a refined domain back onto one of the five coarse frame
// domains (arguments, runtime, io, memory, conversion).
func (d Domain) Coarse() Domain {
	switch d {
	case DomainState:
		return DomainRuntime
	case DomainBounds:
		return DomainArguments
	default:
		return d
	}
}

// Kind classifies the failure shape within a Domain.
type Kind string

const (
	KindInvalidValue       Kind = "invalid-value"
	KindAlreadySet         Kind = "already-set"
	KindGetFailed          Kind = "get-failed"
	KindSetFailed          Kind = "set-failed"
	KindOpenFailed         Kind = "open-failed"
	KindCloseFailed        Kind = "close-failed"
	KindReadFailed         Kind = "read-failed"
	KindWriteFailed        Kind = "write-failed"
	KindSeekFailed         Kind = "seek-failed"
	KindInsufficientMemory Kind = "insufficient-memory"
	KindCopyFailed         Kind = "copy-failed"
	KindGeneric            Kind = "generic"
)

// Frame is one structured record appended to a Sink. ID is a correlation
// ID, useful for tying a frame back to a log line emitted for the same
// operation.
type Frame struct {
	ID      uuid.UUID
	Domain  Domain
	Kind    Kind
	Message string
	Err     error
}

func (f Frame) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s/%s: %s: %v", f.Domain, f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s/%s: %s", f.Domain, f.Kind, f.Message)
}

func (f Frame) Unwrap() error {
	return f.Err
}

// Sink is the append-only interface the core writes structured error
// frames into. It is never read back by the core.
type Sink interface {
	Append(f Frame)
}

// ChainSink is a simple growable-slice Sink implementation, and the
// reference adapter named in the design notes: a chain the caller frees
// (discards) whenever it is done inspecting it.
type ChainSink struct {
	frames []Frame
}

var _ Sink = (*ChainSink)(nil)

// NewChainSink returns an empty ChainSink ready to accept frames.
func NewChainSink() *ChainSink {
	return &ChainSink{}
}

// Append adds f to the end of the chain.
func (c *ChainSink) Append(f Frame) {
	c.frames = append(c.frames, f)
}

// Frames returns the frames appended so far, oldest first. The returned
// slice is owned by the caller; mutating it does not affect the sink.
func (c *ChainSink) Frames() []Frame {
	out := make([]Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

// Len returns the number of frames currently in the chain.
func (c *ChainSink) Len() int {
	return len(c.frames)
}

// Free discards every frame in the chain. Safe to call on an already-empty
// chain.
func (c *ChainSink) Free() {
	c.frames = nil
}

// New builds a Frame from its parts, stamping it with a fresh correlation
// ID, and appends it to sink if sink is non-nil. It is always safe to pass
// a nil sink: frames are then dropped, mirroring the behavior of a caller
// that is not interested in diagnostic context.
func New(sink Sink, domain Domain, kind Kind, message string, cause error) Frame {
	f := Frame{
		ID:      uuid.New(),
		Domain:  domain,
		Kind:    kind,
		Message: message,
		Err:     cause,
	}
	if sink != nil {
		sink.Append(f)
	}
	return f
}
