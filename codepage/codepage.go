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

// Package codepage implements the byte-to-character mappings used when a
// handle's name bytes need to be interpreted: ASCII, and Windows-1250
// through Windows-1258. Names are stored internally as UTF-8 and converted
// on input and on access; this package is the one place that conversion
// logic lives, parameterized by Codepage rather than duplicated per name
// flavor.
package codepage

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Codepage identifies a byte-to-character mapping for name storage.
type Codepage int

const (
	ASCII Codepage = iota
	Windows1250
	Windows1251
	Windows1252
	Windows1253
	Windows1254
	Windows1255
	Windows1256
	Windows1257
	Windows1258
)

func (cp Codepage) String() string {
	switch cp {
	case ASCII:
		return "ascii"
	case Windows1250:
		return "windows-1250"
	case Windows1251:
		return "windows-1251"
	case Windows1252:
		return "windows-1252"
	case Windows1253:
		return "windows-1253"
	case Windows1254:
		return "windows-1254"
	case Windows1255:
		return "windows-1255"
	case Windows1256:
		return "windows-1256"
	case Windows1257:
		return "windows-1257"
	case Windows1258:
		return "windows-1258"
	default:
		return fmt.Sprintf("codepage(%d)", int(cp))
	}
}

// encodingFor maps every Windows code page onto the matching
// charmap.Charmap directly.
func encodingFor(cp Codepage) (encoding.Encoding, error) {
	switch cp {
	case ASCII:
		return encoding.Nop, nil
	case Windows1250:
		return charmap.Windows1250, nil
	case Windows1251:
		return charmap.Windows1251, nil
	case Windows1252:
		return charmap.Windows1252, nil
	case Windows1253:
		return charmap.Windows1253, nil
	case Windows1254:
		return charmap.Windows1254, nil
	case Windows1255:
		return charmap.Windows1255, nil
	case Windows1256:
		return charmap.Windows1256, nil
	case Windows1257:
		return charmap.Windows1257, nil
	case Windows1258:
		return charmap.Windows1258, nil
	default:
		return nil, fmt.Errorf("codepage: unknown codepage %d", int(cp))
	}
}

// Decode converts name bytes stored in the given codepage into a UTF-8
// Go string.
func Decode(b []byte, cp Codepage) (string, error) {
	if cp == ASCII {
		for _, c := range b {
			if c > 0x7f {
				return "", fmt.Errorf("codepage: byte 0x%02x is not valid ASCII", c)
			}
		}
		return string(b), nil
	}
	enc, err := encodingFor(cp)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("codepage: decode as %s: %w", cp, err)
	}
	return string(out), nil
}

// Encode converts a UTF-8 Go string into name bytes in the given codepage.
func Encode(s string, cp Codepage) ([]byte, error) {
	if cp == ASCII {
		for _, r := range s {
			if r > 0x7f {
				return nil, fmt.Errorf("codepage: rune %q is not representable in ASCII", r)
			}
		}
		return []byte(s), nil
	}
	enc, err := encodingFor(cp)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("codepage: encode as %s: %w", cp, err)
	}
	return out, nil
}
