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
package source

import "testing"

func Test_Segments_01(t *testing.T) {
	var segments Segments
	//
	checkSpan(t, segments.Span(), 0, 0)
	//
	if segments.Length() != 0 {
		t.Errorf("got length %d, expected 0", segments.Length())
	}
}

func Test_Segments_02(t *testing.T) {
	segments := Segments{NewSpan(3, 9)}
	//
	checkSpan(t, segments.Span(), 3, 9)
	//
	if segments.Length() != 6 {
		t.Errorf("got length %d, expected 6", segments.Length())
	}
}

func Test_Segments_03(t *testing.T) {
	segments := Segments{NewSpan(3, 9)}
	// Offsets within a single segment shift uniformly.
	checkSpan(t, segments.Map(NewSpan(2, 4)), 5, 7)
}

func Test_Segments_04(t *testing.T) {
	segments := Segments{NewSpan(3, 9)}
	// Zero-length spans map to a zero-length span.
	checkSpan(t, segments.Map(NewSpan(0, 0)), 3, 3)
}

func Test_Segments_05(t *testing.T) {
	segments := Segments{NewSpan(5, 8), NewSpan(10, 12)}
	//
	checkSpan(t, segments.Span(), 5, 12)
	//
	if segments.Length() != 5 {
		t.Errorf("got length %d, expected 5", segments.Length())
	}
}

func Test_Segments_06(t *testing.T) {
	segments := Segments{NewSpan(5, 8), NewSpan(10, 12)}
	//
	checkSpan(t, segments.Map(NewSpan(0, 3)), 5, 8)
}

func Test_Segments_07(t *testing.T) {
	segments := Segments{NewSpan(5, 8), NewSpan(10, 12)}
	//
	checkSpan(t, segments.Map(NewSpan(3, 5)), 10, 12)
}

func Test_Segments_08(t *testing.T) {
	segments := Segments{NewSpan(5, 8), NewSpan(10, 12)}
	// Spans crossing a gap map to the enclosing span (gap included).
	checkSpan(t, segments.Map(NewSpan(2, 4)), 7, 11)
}

func Test_Segments_09(t *testing.T) {
	segments := Segments{NewSpan(5, 8), NewSpan(10, 12)}
	// Zero-length span on a segment boundary maps into the later segment.
	checkSpan(t, segments.Map(NewSpan(3, 3)), 10, 10)
}

func Test_Segments_10(t *testing.T) {
	segments := Segments{NewSpan(5, 8), NewSpan(10, 12)}
	// Offsets beyond the logical text map to the end of the final segment.
	checkSpan(t, segments.Map(NewSpan(5, 5)), 12, 12)
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkSpan(t *testing.T, actual Span, start int, end int) {
	if actual.Start() != start || actual.End() != end {
		t.Errorf("got span (%d,%d), expected (%d,%d)", actual.Start(), actual.End(), start, end)
	}
}
