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

package file_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/libyal/libbfio-go/backend"
	"github.com/libyal/libbfio-go/backend/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestBackend_OpenReadClose(t *testing.T) {
	content := bytes.Repeat([]byte{0xAA}, 1024)
	path := writeTempFile(t, content)

	b := file.New(path)
	require.NoError(t, b.Open(backend.FlagRead))

	buf := make([]byte, 1024)
	n, err := b.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 1024, n)
	assert.True(t, bytes.Equal(buf, content))

	require.NoError(t, b.Close())
}

func TestBackend_OpenNonexistentReadOnlyIsError(t *testing.T) {
	dir := t.TempDir()
	b := file.New(filepath.Join(dir, "missing.bin"))
	assert.Error(t, b.Open(backend.FlagRead))
}

func TestBackend_OpenWriteCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.bin")
	b := file.New(path)
	require.NoError(t, b.Open(backend.FlagWrite))
	n, err := b.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, b.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestBackend_ReadPastEOF(t *testing.T) {
	content := bytes.Repeat([]byte{1}, 10)
	path := writeTempFile(t, content)
	b := file.New(path)
	require.NoError(t, b.Open(backend.FlagRead))

	_, err := b.Seek(10, backend.SeekSet)
	require.NoError(t, err)
	n, err := b.Read(make([]byte, 5))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = b.Seek(7, backend.SeekSet)
	require.NoError(t, err)
	n, err = b.Read(make([]byte, 5))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestBackend_SeekEndAndTell(t *testing.T) {
	path := writeTempFile(t, bytes.Repeat([]byte{0}, 64))
	b := file.New(path)
	require.NoError(t, b.Open(backend.FlagRead))

	off, err := b.Seek(0, backend.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(64), off)

	_, err = b.Seek(-1, backend.SeekSet)
	assert.ErrorIs(t, err, backend.ErrSeekNegative)

	_, err = b.Seek(-65, backend.SeekEnd)
	assert.ErrorIs(t, err, backend.ErrSeekNegative)
}

func TestBackend_Exists(t *testing.T) {
	path := writeTempFile(t, []byte("x"))
	b := file.New(path)
	exists, err := b.Exists()
	require.NoError(t, err)
	assert.Equal(t, backend.TriTrue, exists)

	missing := file.New(path + ".nope")
	exists, err = missing.Exists()
	require.NoError(t, err)
	assert.Equal(t, backend.TriFalse, exists)
}

func TestBackend_CloneIsIndependentAndClosed(t *testing.T) {
	path := writeTempFile(t, []byte("abc"))
	b := file.New(path)
	require.NoError(t, b.Open(backend.FlagRead))
	defer b.Close()

	clone, err := b.Clone()
	require.NoError(t, err)
	assert.False(t, clone.IsOpen())
}

func TestBackend_DoubleOpenAndCloseErrors(t *testing.T) {
	path := writeTempFile(t, []byte("abc"))
	b := file.New(path)
	require.NoError(t, b.Open(backend.FlagRead))
	assert.ErrorIs(t, b.Open(backend.FlagRead), backend.ErrAlreadyOpen)
	require.NoError(t, b.Close())
	assert.ErrorIs(t, b.Close(), backend.ErrNotOpen)
}
