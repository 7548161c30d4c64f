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
package ast

import (
	"fmt"

	"github.com/consensys/go-remex/pkg/util/source"
)

// Code classifies the ways in which compiling a grammar, or adapting one of
// its macros to a given dialect, can fail.  Codes allow callers to distinguish
// failure modes without parsing error messages.
type Code uint8

const (
	// ErrParse indicates a line (or comment) which does not match the
	// required shape of a macro definition.
	ErrParse Code = iota
	// ErrInvalidIdentifier indicates a macro name which does not satisfy
	// identifier syntax.
	ErrInvalidIdentifier
	// ErrDuplicateName indicates a macro name defined more than once.  The
	// error is always reported against the second occurrence.
	ErrDuplicateName
	// ErrUndefinedReference indicates a reference to a macro which is not
	// defined at that point in the grammar (including self- and forward
	// references).
	ErrUndefinedReference
	// ErrUnsupportedConstruct indicates a construct which the target dialect
	// cannot express (e.g. a variable-length lookbehind).
	ErrUnsupportedConstruct
	// ErrDuplicateGroupName indicates the same capture name occurring on more
	// than one group under a dialect which forbids this.
	ErrDuplicateGroupName
	// ErrResourceLimit indicates a configured ceiling (macro count, source or
	// expansion size) was exceeded.
	ErrResourceLimit
	// ErrInternal indicates an internal invariant failed.  This always
	// signals a bug in the compiler, never a problem with the input.
	ErrInternal
)

// String returns a short name for this code, suitable for diagnostics.
func (c Code) String() string {
	switch c {
	case ErrParse:
		return "parse error"
	case ErrInvalidIdentifier:
		return "invalid identifier"
	case ErrDuplicateName:
		return "duplicate macro"
	case ErrUndefinedReference:
		return "undefined reference"
	case ErrUnsupportedConstruct:
		return "unsupported construct"
	case ErrDuplicateGroupName:
		return "duplicate group name"
	case ErrResourceLimit:
		return "resource limit exceeded"
	case ErrInternal:
		return "internal invariant violation"
	default:
		return "unknown error"
	}
}

// Error is a syntax error tagged with a classification code.  The embedded
// syntax error retains the source file and span against which the error is
// reported, allowing precise diagnostics.
type Error struct {
	code Code
	*source.SyntaxError
}

// NewError constructs an error with a given code over a given span of a given
// source file.
func NewError(code Code, srcfile *source.File, span source.Span, msg string) Error {
	return Error{code, srcfile.SyntaxError(span, msg)}
}

// Errorf constructs an error with a given code over a given span of a given
// source file, using a formatted message.
func Errorf(code Code, srcfile *source.File, span source.Span, format string, args ...any) Error {
	return Error{code, srcfile.SyntaxError(span, fmt.Sprintf(format, args...))}
}

// Code returns the classification of this error.
func (e Error) Code() Code {
	return e.code
}

// IsInternal determines whether this error signals a compiler bug, rather
// than a problem with the input grammar.
func (e Error) IsInternal() bool {
	return e.code == ErrInternal
}
