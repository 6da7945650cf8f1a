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

package memoryrange_test

import (
	"bytes"
	"testing"

	"github.com/libyal/libbfio-go/backend"
	"github.com/libyal/libbfio-go/backend/memoryrange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_RoundTrip(t *testing.T) {
	buf := make([]byte, 32)
	for i := 0; i < 26; i++ {
		buf[i] = 'A' + byte(i)
	}
	for i := 0; i < 6; i++ {
		buf[26+i] = '0' + byte(i)
	}

	b := memoryrange.New(buf)
	require.NoError(t, b.Open(backend.FlagWrite))
	n, err := b.Write(bytes.Repeat([]byte{0x55}, 32))
	require.NoError(t, err)
	assert.Equal(t, 32, n)
	require.NoError(t, b.Close())

	require.NoError(t, b.Open(backend.FlagRead))
	out := make([]byte, 32)
	n, err = b.Read(out)
	require.NoError(t, err)
	assert.Equal(t, 32, n)
	assert.Equal(t, bytes.Repeat([]byte{0x55}, 32), out)
}

func TestBackend_WriteBounded(t *testing.T) {
	buf := make([]byte, 4096)
	b := memoryrange.New(buf)
	require.NoError(t, b.Open(backend.FlagRead|backend.FlagWrite))

	_, err := b.Seek(4100, backend.SeekSet)
	require.NoError(t, err)
	n, err := b.Read(make([]byte, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = b.Write([]byte("x"))
	assert.Error(t, err)

	_, err = b.Seek(4090, backend.SeekSet)
	require.NoError(t, err)
	n, err = b.Write(bytes.Repeat([]byte{0xFF}, 32))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestBackend_ExistsNilBuffer(t *testing.T) {
	b := memoryrange.New(nil)
	exists, err := b.Exists()
	require.NoError(t, err)
	assert.Equal(t, backend.TriFalse, exists)
	assert.Error(t, b.Open(backend.FlagRead))
}

func TestBackend_CloneSharesBackingArray(t *testing.T) {
	buf := []byte("hello world")
	b := memoryrange.New(buf)
	require.NoError(t, b.Open(backend.FlagRead))

	clone, err := b.Clone()
	require.NoError(t, err)
	assert.False(t, clone.IsOpen())

	require.NoError(t, clone.Open(backend.FlagWrite))
	_, err = clone.Write([]byte("H"))
	require.NoError(t, err)
	assert.Equal(t, byte('H'), buf[0])
}
