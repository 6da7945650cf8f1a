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

package codepage_test

import (
	"testing"

	"github.com/libyal/libbfio-go/codepage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCIIRoundTrip(t *testing.T) {
	b, err := codepage.Encode("report.dat", codepage.ASCII)
	require.NoError(t, err)
	s, err := codepage.Decode(b, codepage.ASCII)
	require.NoError(t, err)
	assert.Equal(t, "report.dat", s)
}

func TestASCIIRejectsNonASCII(t *testing.T) {
	_, err := codepage.Encode("café.dat", codepage.ASCII)
	assert.Error(t, err)
}

func TestWindows1250RoundTrip(t *testing.T) {
	// "Łódź" contains characters present in Windows-1250 (Central European).
	b, err := codepage.Encode("Łódź.dat", codepage.Windows1250)
	require.NoError(t, err)
	s, err := codepage.Decode(b, codepage.Windows1250)
	require.NoError(t, err)
	assert.Equal(t, "Łódź.dat", s)
}

func TestCodepageString(t *testing.T) {
	assert.Equal(t, "windows-1252", codepage.Windows1252.String())
	assert.Equal(t, "ascii", codepage.ASCII.String())
}
