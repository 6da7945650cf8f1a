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

package handle

import (
	"errors"

	"github.com/libyal/libbfio-go/codepage"
)

// ErrNameNotSet is returned by Name.Get before any Set call.
var ErrNameNotSet = errors.New("handle: name not set")

// Name stores a single name value as UTF-8, remembering the codepage it
// was last validated against so that Get can re-render it through a
// different codepage on request.
type Name struct {
	value string
	cp    codepage.Codepage
	isSet bool
}

// Set validates that s is representable in cp (storing it fails loudly on
// an unrepresentable name rather than silently substituting characters),
// then stores it.
func (n *Name) Set(s string, cp codepage.Codepage) error {
	if _, err := codepage.Encode(s, cp); err != nil {
		return err
	}
	n.value = s
	n.cp = cp
	n.isSet = true
	return nil
}

// Get re-renders the stored name through cp: encode with the codepage it
// was set under, then decode with cp. For ASCII-only names, or when cp
// equals the set-time codepage, this is a no-op round trip.
func (n *Name) Get(cp codepage.Codepage) (string, error) {
	if !n.isSet {
		return "", ErrNameNotSet
	}
	raw, err := codepage.Encode(n.value, n.cp)
	if err != nil {
		return "", err
	}
	return codepage.Decode(raw, cp)
}
