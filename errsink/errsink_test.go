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

package errsink_test

import (
	"errors"
	"testing"

	"github.com/libyal/libbfio-go/errsink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainSink_AppendAndFrames(t *testing.T) {
	sink := errsink.NewChainSink()
	require.Equal(t, 0, sink.Len())

	cause := errors.New("boom")
	f := errsink.New(sink, errsink.DomainIO, errsink.KindReadFailed, "short read", cause)

	require.Equal(t, 1, sink.Len())
	frames := sink.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, f.ID, frames[0].ID)
	assert.Equal(t, errsink.DomainIO, frames[0].Domain)
	assert.Equal(t, errsink.KindReadFailed, frames[0].Kind)
	assert.ErrorIs(t, frames[0], cause)
}

func TestNew_NilSinkIsSafe(t *testing.T) {
	f := errsink.New(nil, errsink.DomainArguments, errsink.KindInvalidValue, "nil pointer", nil)
	assert.Equal(t, errsink.DomainArguments, f.Domain)
}

func TestChainSink_Free(t *testing.T) {
	sink := errsink.NewChainSink()
	errsink.New(sink, errsink.DomainState, errsink.KindGeneric, "x", nil)
	sink.Free()
	assert.Equal(t, 0, sink.Len())
}

func TestDomain_Coarse(t *testing.T) {
	assert.Equal(t, errsink.DomainRuntime, errsink.DomainState.Coarse())
	assert.Equal(t, errsink.DomainArguments, errsink.DomainBounds.Coarse())
	assert.Equal(t, errsink.DomainIO, errsink.DomainIO.Coarse())
}
