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

package offsets_test

import (
	"testing"

	"github.com/libyal/libbfio-go/offsets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_InsertSortedAndLookup(t *testing.T) {
	l := offsets.New()
	require.NoError(t, l.Insert(100, 50, "b"))
	require.NoError(t, l.Insert(0, 100, "a"))
	require.NoError(t, l.Insert(150, 25, "c"))

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, int64(0), all[0].Start)
	assert.Equal(t, int64(100), all[1].Start)
	assert.Equal(t, int64(150), all[2].Start)

	iv, ok := l.Lookup(120)
	require.True(t, ok)
	assert.Equal(t, "b", iv.Value)

	iv, ok = l.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, "a", iv.Value)

	_, ok = l.Lookup(175)
	assert.False(t, ok)
}

func TestList_InsertOverlapRejected(t *testing.T) {
	l := offsets.New()
	require.NoError(t, l.Insert(0, 100, nil))
	assert.Error(t, l.Insert(50, 10, nil))
	assert.Error(t, l.Insert(99, 5, nil))
	// Exactly adjacent is fine.
	assert.NoError(t, l.Insert(100, 10, nil))
}

func TestList_TotalSizeAndIndexOf(t *testing.T) {
	l := offsets.New()
	require.NoError(t, l.Insert(0, 512, 0))
	require.NoError(t, l.Insert(512, 512, 1))

	assert.Equal(t, int64(1024), l.TotalSize())
	assert.Equal(t, 0, l.IndexOf(500))
	assert.Equal(t, 1, l.IndexOf(500+512))
	assert.Equal(t, -1, l.IndexOf(1024))
}

func TestList_EmptyLookup(t *testing.T) {
	l := offsets.New()
	_, ok := l.Lookup(0)
	assert.False(t, ok)
	assert.Equal(t, int64(0), l.TotalSize())
}
