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

package pool_test

import (
	"errors"
	"testing"

	"github.com/libyal/libbfio-go/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResource is a minimal pool.Resource used to drive Pool in isolation
// from any real backend.
type fakeResource struct {
	name       string
	open       bool
	offset     int64
	openCalls  int
	closeCalls int
	failOpen   bool
	failClose  bool
}

func (r *fakeResource) Open() error {
	r.openCalls++
	if r.failOpen {
		return errors.New("fake open failure")
	}
	r.open = true
	return nil
}

func (r *fakeResource) Close() error {
	r.closeCalls++
	if r.failClose {
		return errors.New("fake close failure")
	}
	r.open = false
	return nil
}

func (r *fakeResource) SeekTo(offset int64) error {
	r.offset = offset
	return nil
}

func (r *fakeResource) CurrentOffset() int64 { return r.offset }

func TestPool_OpenWithinCapacityNeverEvicts(t *testing.T) {
	p, err := pool.New(2)
	require.NoError(t, err)

	a := &fakeResource{name: "a"}
	b := &fakeResource{name: "b"}
	idA := p.AppendHandle(a, true)
	idB := p.AppendHandle(b, true)

	require.NoError(t, p.Open(idA))
	require.NoError(t, p.Open(idB))

	assert.True(t, a.open)
	assert.True(t, b.open)
	assert.Equal(t, 2, p.OpenCount())
}

// TestPool_LRUEvictsLeastRecentlyUsed exercises a capacity-2, A/B/C
// sequence: opening A then B fills the pool; opening C must evict A (the
// least recently touched), not B.
func TestPool_LRUEvictsLeastRecentlyUsed(t *testing.T) {
	p, err := pool.New(2)
	require.NoError(t, err)

	a := &fakeResource{}
	b := &fakeResource{}
	c := &fakeResource{}
	idA := p.AppendHandle(a, true)
	idB := p.AppendHandle(b, true)
	idC := p.AppendHandle(c, true)

	require.NoError(t, p.Open(idA))
	require.NoError(t, p.Open(idB))
	require.NoError(t, p.Open(idC))

	assert.False(t, a.open, "A should have been evicted")
	assert.True(t, b.open)
	assert.True(t, c.open)
	assert.Equal(t, 1, a.closeCalls)
}

// TestPool_TouchProtectsFromEviction verifies that touching A (e.g. via a
// read) after B was opened makes B, not A, the next eviction victim.
func TestPool_TouchProtectsFromEviction(t *testing.T) {
	p, err := pool.New(2)
	require.NoError(t, err)

	a := &fakeResource{}
	b := &fakeResource{}
	c := &fakeResource{}
	idA := p.AppendHandle(a, true)
	idB := p.AppendHandle(b, true)
	idC := p.AppendHandle(c, true)

	require.NoError(t, p.Open(idA))
	require.NoError(t, p.Open(idB))
	require.NoError(t, p.Touch(idA))

	require.NoError(t, p.Open(idC))

	assert.True(t, a.open)
	assert.False(t, b.open, "B should have been evicted, not A")
	assert.True(t, c.open)
}

// TestPool_ReopenRestoresOffset verifies a pooled handle's offset
// survives an eviction and later re-admission.
func TestPool_ReopenRestoresOffset(t *testing.T) {
	p, err := pool.New(1)
	require.NoError(t, err)

	a := &fakeResource{}
	b := &fakeResource{}
	idA := p.AppendHandle(a, true)
	idB := p.AppendHandle(b, true)

	require.NoError(t, p.Open(idA))
	a.offset = 4096 // simulate a seek/read having advanced the logical offset
	require.NoError(t, p.Open(idB))
	assert.False(t, a.open)

	require.NoError(t, p.Open(idA))
	assert.True(t, a.open)
	assert.Equal(t, int64(4096), a.offset)
}

func TestPool_CloseIsIdempotent(t *testing.T) {
	p, err := pool.New(1)
	require.NoError(t, err)
	a := &fakeResource{}
	id := p.AppendHandle(a, true)

	require.NoError(t, p.Open(id))
	require.NoError(t, p.Close(id))
	require.NoError(t, p.Close(id))
	assert.Equal(t, 0, p.OpenCount())
}

func TestPool_EvictionCloseFailureIsBestEffort(t *testing.T) {
	p, err := pool.New(1)
	require.NoError(t, err)
	a := &fakeResource{failClose: true}
	b := &fakeResource{}
	idA := p.AppendHandle(a, true)
	idB := p.AppendHandle(b, true)

	require.NoError(t, p.Open(idA))
	err = p.Open(idB)
	require.NoError(t, err, "eviction close failures must not abort admission of the new entry")
	assert.True(t, b.open)
}

func TestPool_RemoveDetachesResource(t *testing.T) {
	p, err := pool.New(1)
	require.NoError(t, err)
	a := &fakeResource{}
	id := p.AppendHandle(a, true)
	require.NoError(t, p.Open(id))

	got, err := p.Remove(id)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.False(t, a.open)

	_, err = p.Remove(id)
	assert.ErrorIs(t, err, pool.ErrUnknownEntry)
}

func TestPool_FreeClosesEverything(t *testing.T) {
	p, err := pool.New(2)
	require.NoError(t, err)
	a := &fakeResource{}
	b := &fakeResource{}
	idA := p.AppendHandle(a, true)
	idB := p.AppendHandle(b, true)
	require.NoError(t, p.Open(idA))
	require.NoError(t, p.Open(idB))

	require.NoError(t, p.Free())
	assert.False(t, a.open)
	assert.False(t, b.open)
	assert.Equal(t, 0, p.OpenCount())
}

func TestPool_InvariantHoldsUnderInterleaving(t *testing.T) {
	p, err := pool.New(3)
	require.NoError(t, err)

	var ids []pool.EntryID
	var resources []*fakeResource
	for i := 0; i < 10; i++ {
		r := &fakeResource{}
		resources = append(resources, r)
		ids = append(ids, p.AppendHandle(r, true))
	}

	// Arbitrary interleaving of opens and touches.
	sequence := []int{0, 1, 2, 3, 1, 4, 0, 5, 6, 2, 7, 8, 9, 3, 0}
	for _, i := range sequence {
		require.NoError(t, p.Open(ids[i]))
		assert.LessOrEqual(t, p.OpenCount(), p.Capacity())
	}

	openCount := 0
	for _, r := range resources {
		if r.open {
			openCount++
		}
	}
	assert.Equal(t, p.OpenCount(), openCount)
	assert.LessOrEqual(t, openCount, 3)
}

func TestPool_NewRejectsNonPositiveCapacity(t *testing.T) {
	_, err := pool.New(0)
	assert.Error(t, err)
}

func TestPool_UnknownEntryOperationsError(t *testing.T) {
	p, err := pool.New(1)
	require.NoError(t, err)
	assert.ErrorIs(t, p.Open(pool.EntryID(42)), pool.ErrUnknownEntry)
	assert.ErrorIs(t, p.Close(pool.EntryID(42)), pool.ErrUnknownEntry)
	assert.False(t, p.IsOpen(pool.EntryID(42)))
}
