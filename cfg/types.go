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
	"fmt"
	"strings"

	"github.com/libyal/libbfio-go/codepage"
)

// CodepageName is the config datatype for the default-codepage setting: a
// string such as "ascii" or "windows-1252", unmarshaled into a
// codepage.Codepage.
type CodepageName string

var codepageByName = map[string]codepage.Codepage{
	"ascii":        codepage.ASCII,
	"windows-1250": codepage.Windows1250,
	"windows-1251": codepage.Windows1251,
	"windows-1252": codepage.Windows1252,
	"windows-1253": codepage.Windows1253,
	"windows-1254": codepage.Windows1254,
	"windows-1255": codepage.Windows1255,
	"windows-1256": codepage.Windows1256,
	"windows-1257": codepage.Windows1257,
	"windows-1258": codepage.Windows1258,
}

func (c *CodepageName) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	if _, ok := codepageByName[name]; !ok {
		return fmt.Errorf("invalid codepage name: %s", text)
	}
	*c = CodepageName(name)
	return nil
}

func (c CodepageName) MarshalText() ([]byte, error) {
	return []byte(string(c)), nil
}

// Codepage resolves the configured name to a codepage.Codepage, defaulting
// to ASCII for an unset value.
func (c CodepageName) Codepage() codepage.Codepage {
	if cp, ok := codepageByName[strings.ToLower(string(c))]; ok {
		return cp
	}
	return codepage.ASCII
}

// Severity is the config datatype for logging.severity, matching the
// logger package's TRACE/DEBUG/INFO/WARNING/ERROR/OFF vocabulary.
type Severity string

var validSeverities = map[string]bool{
	"TRACE": true, "DEBUG": true, "INFO": true, "WARNING": true, "ERROR": true, "OFF": true,
}

func (s *Severity) UnmarshalText(text []byte) error {
	level := strings.ToUpper(string(text))
	if !validSeverities[level] {
		return fmt.Errorf("invalid log severity: %s, must be one of TRACE, DEBUG, INFO, WARNING, ERROR, OFF", text)
	}
	*s = Severity(level)
	return nil
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(string(s)), nil
}
