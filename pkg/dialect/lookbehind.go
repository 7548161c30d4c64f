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
	"strconv"
)

// Determine whether a given region of the pattern (the content of a
// lookbehind) shows evidence of variable-length matching: an unescaped
// quantifier "*", "+" or "?" outside any character class, or a counted
// repetition "{m,n}" with m≠n (including the open-ended "{m,}").  The scan is
// purely syntactic, hence conservative: it never misses variable-length
// content, though it can flag content whose overall length is in fact fixed.
func (p *scan) variableLength(from int, to int) bool {
	r := p.runes
	//
	for i := from; i < to; i++ {
		if p.literal[i] {
			continue
		}
		//
		switch r[i] {
		case '*', '+':
			return true
		case '?':
			// Skip the '?' of a "(?..." group opening.
			if i > 0 && r[i-1] == '(' && !p.literal[i-1] {
				continue
			}
			//
			return true
		case '{':
			if variableRepetition(r, i) {
				return true
			}
		}
	}
	//
	return false
}

// Determine whether a counted repetition starting at a given '{' denotes a
// variable number of occurrences.  Text which does not match the form
// "{m}", "{m,}" or "{m,n}" is literal, not a repetition.
func variableRepetition(r []rune, i int) bool {
	j := i + 1
	mStart := j
	//
	for j < len(r) && isDigit(r[j]) {
		j++
	}
	// No digits: literal '{'
	if j == mStart {
		return false
	}
	// "{m}" is fixed
	if j < len(r) && r[j] == '}' {
		return false
	}
	//
	if j >= len(r) || r[j] != ',' {
		return false
	}
	//
	var (
		m, _   = strconv.Atoi(string(r[mStart:j]))
		nStart = j + 1
	)
	//
	j = nStart
	//
	for j < len(r) && isDigit(r[j]) {
		j++
	}
	//
	if j >= len(r) || r[j] != '}' {
		return false
	}
	// "{m,}" is unbounded
	if j == nStart {
		return true
	}
	//
	n, _ := strconv.Atoi(string(r[nStart:j]))
	// "{m,n}" is variable exactly when m≠n
	return m != n
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
