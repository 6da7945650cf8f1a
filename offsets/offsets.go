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

// Package offsets implements the offsets list: an ordered, non-overlapping
// sequence of (start, size, value) intervals keyed by start, looked up by
// binary search. backend/multifile uses it to map a logical offset to a
// (segment, local offset) pair; handle.Handle exposes one for upper layers
// to label sub-ranges of a handle, opaque to the core beyond storage and
// retrieval.
package offsets

import (
	"fmt"
	"sort"
)

// Interval is one (start, size, value) entry of a List.
type Interval struct {
	Start int64
	Size  int64
	Value any
}

// End returns the first offset past this interval, Start+Size.
func (iv Interval) End() int64 {
	return iv.Start + iv.Size
}

// Contains reports whether offset lies in [Start, Start+Size).
func (iv Interval) Contains(offset int64) bool {
	return offset >= iv.Start && offset < iv.End()
}

// List is a sorted, non-overlapping sequence of Intervals. The zero value
// is an empty list ready to use.
type List struct {
	intervals []Interval
}

// New returns an empty List.
func New() *List {
	return &List{}
}

// Len returns the number of intervals currently in the list.
func (l *List) Len() int {
	return len(l.intervals)
}

// Insert adds a new interval, keeping the list sorted by Start. It returns
// an error if the new interval overlaps an existing one.
func (l *List) Insert(start, size int64, value any) error {
	if size < 0 {
		return fmt.Errorf("offsets: negative size %d", size)
	}
	iv := Interval{Start: start, Size: size, Value: value}

	i := sort.Search(len(l.intervals), func(i int) bool {
		return l.intervals[i].Start >= start
	})
	if i > 0 && l.intervals[i-1].End() > start {
		return fmt.Errorf("offsets: interval [%d, %d) overlaps [%d, %d)", iv.Start, iv.End(), l.intervals[i-1].Start, l.intervals[i-1].End())
	}
	if i < len(l.intervals) && iv.End() > l.intervals[i].Start {
		return fmt.Errorf("offsets: interval [%d, %d) overlaps [%d, %d)", iv.Start, iv.End(), l.intervals[i].Start, l.intervals[i].End())
	}

	l.intervals = append(l.intervals, Interval{})
	copy(l.intervals[i+1:], l.intervals[i:])
	l.intervals[i] = iv
	return nil
}

// Lookup returns the interval whose [Start, Start+Size) contains offset,
// and true. If no interval contains offset, it returns the zero Interval
// and false. O(log n) via binary search on Start.
func (l *List) Lookup(offset int64) (Interval, bool) {
	n := len(l.intervals)
	// Find the last interval whose Start <= offset.
	i := sort.Search(n, func(i int) bool {
		return l.intervals[i].Start > offset
	}) - 1
	if i < 0 || i >= n {
		return Interval{}, false
	}
	iv := l.intervals[i]
	if !iv.Contains(offset) {
		return Interval{}, false
	}
	return iv, true
}

// IndexOf returns the slice index of the interval containing offset, or -1.
func (l *List) IndexOf(offset int64) int {
	n := len(l.intervals)
	i := sort.Search(n, func(i int) bool {
		return l.intervals[i].Start > offset
	}) - 1
	if i < 0 || i >= n {
		return -1
	}
	if !l.intervals[i].Contains(offset) {
		return -1
	}
	return i
}

// At returns the interval at slice index i.
func (l *List) At(i int) Interval {
	return l.intervals[i]
}

// All returns a copy of the intervals, in Start order.
func (l *List) All() []Interval {
	out := make([]Interval, len(l.intervals))
	copy(out, l.intervals)
	return out
}

// TotalSize returns End() of the last interval, or 0 for an empty list.
// Only meaningful when the list is a partition of [0, TotalSize) with no
// gaps, as backend/multifile maintains.
func (l *List) TotalSize() int64 {
	if len(l.intervals) == 0 {
		return 0
	}
	return l.intervals[len(l.intervals)-1].End()
}
