// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package dialect

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// profileDocument mirrors the on-disk YAML representation of a dialect
// profile, e.g.:
//
//	name: my-engine
//	options:
//	  namedCaptureSupport: true
//	  variableLengthLookbehindSupport: false
type profileDocument struct {
	Name    string          `yaml:"name"`
	Options map[string]bool `yaml:"options"`
}

// ParseProfile parses a YAML profile document, returning its (optional) name
// along with the profile itself.  Decoding is strict: unknown document fields
// and unrecognized option names are both rejected.
func ParseProfile(data []byte) (string, Profile, error) {
	var (
		doc     profileDocument
		decoder = yaml.NewDecoder(bytes.NewReader(data))
	)
	//
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&doc); err != nil && err != io.EOF {
		return "", Profile{}, err
	}
	//
	profile, err := NewProfile(doc.Options)
	if err != nil {
		return "", Profile{}, err
	}
	//
	return doc.Name, profile, nil
}

// LoadProfile reads and parses a YAML profile document from a given file.
func LoadProfile(filename string) (string, Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", Profile{}, errors.Wrapf(err, "reading %s", filename)
	}
	//
	name, profile, err := ParseProfile(data)
	if err != nil {
		return "", Profile{}, errors.Wrapf(err, "parsing %s", filename)
	}
	//
	return name, profile, nil
}
