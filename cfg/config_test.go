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

package cfg

import (
	"testing"

	"github.com/libyal/libbfio-go/codepage"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, 16, d.Pool.MaximumOpen)
	assert.Equal(t, CodepageName("ascii"), d.DefaultCodepage)
	assert.Equal(t, codepage.ASCII, d.DefaultCodepage.Codepage())
}

func TestBindFlagsAndUnmarshal(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	flagSet := pflag.NewFlagSet("bfioctl", pflag.ContinueOnError)
	require.NoError(t, BindFlags(flagSet))
	require.NoError(t, flagSet.Parse([]string{"--pool.maximum-open=4", "--default-codepage=windows-1252"}))

	cfg, err := Unmarshal()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Pool.MaximumOpen)
	assert.Equal(t, codepage.Windows1252, cfg.DefaultCodepage.Codepage())
}

func TestCodepageName_UnmarshalTextRejectsUnknown(t *testing.T) {
	var c CodepageName
	assert.Error(t, c.UnmarshalText([]byte("not-a-codepage")))
}

func TestCodepageName_UnmarshalTextAcceptsKnown(t *testing.T) {
	var c CodepageName
	require.NoError(t, c.UnmarshalText([]byte("Windows-1251")))
	assert.Equal(t, codepage.Windows1251, c.Codepage())
}

func TestSeverity_UnmarshalTextValidatesAgainstKnownSet(t *testing.T) {
	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("warning")))
	assert.Equal(t, Severity("WARNING"), s)

	assert.Error(t, s.UnmarshalText([]byte("CRITICAL")))
}
