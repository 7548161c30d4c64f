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

// Package dialect adapts expanded regex patterns to the capabilities of
// specific target engines, and validates the adapted results.
package dialect

import (
	"fmt"
	"sort"
	"strings"
)

//go:generate go run ../../internal/generator

// Profile describes the capabilities of a target regex engine which affect
// how an expanded pattern must be adapted.  Profiles are value objects: they
// are comparable, have no lifecycle and are consulted once per adaptation
// call.
type Profile struct {
	// NamedCaptures indicates whether the engine supports named capturing
	// groups at all.
	NamedCaptures bool
	// DuplicateNames indicates whether the same capture name may appear on
	// more than one group.
	DuplicateNames bool
	// VariableLookbehind indicates whether lookbehind assertions may match
	// variable-length text.
	VariableLookbehind bool
	// ExplicitCaptureOnly indicates that only named groups capture, with
	// plain parentheses treated as non-capturing.
	ExplicitCaptureOnly bool
}

// Canonical option names, as used by profile documents and by NewProfile.
const (
	// OptionNamedCaptures is the canonical name of the named-capture option.
	OptionNamedCaptures = "namedCaptureSupport"
	// OptionDuplicateNames is the canonical name of the duplicate-names
	// option.
	OptionDuplicateNames = "duplicateNamedGroupsAllowed"
	// OptionVariableLookbehind is the canonical name of the variable-length
	// lookbehind option.
	OptionVariableLookbehind = "variableLengthLookbehindSupport"
	// OptionExplicitCaptureOnly is the canonical name of the explicit-capture
	// option.
	OptionExplicitCaptureOnly = "explicitCaptureOnly"
)

// NewProfile constructs a profile from a set of named options.  Exactly four
// option names are recognized; anything else is rejected rather than silently
// ignored.  Omitted options default to false.
func NewProfile(options map[string]bool) (Profile, error) {
	var (
		profile Profile
		unknown []string
	)
	//
	for name, value := range options {
		switch name {
		case OptionNamedCaptures:
			profile.NamedCaptures = value
		case OptionDuplicateNames:
			profile.DuplicateNames = value
		case OptionVariableLookbehind:
			profile.VariableLookbehind = value
		case OptionExplicitCaptureOnly:
			profile.ExplicitCaptureOnly = value
		default:
			unknown = append(unknown, name)
		}
	}
	//
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Profile{}, fmt.Errorf("unrecognized dialect option(s): %s", strings.Join(unknown, ", "))
	}
	//
	return profile, nil
}

// Options returns the canonical option representation of this profile.
func (p Profile) Options() map[string]bool {
	return map[string]bool{
		OptionNamedCaptures:       p.NamedCaptures,
		OptionDuplicateNames:      p.DuplicateNames,
		OptionVariableLookbehind:  p.VariableLookbehind,
		OptionExplicitCaptureOnly: p.ExplicitCaptureOnly,
	}
}
