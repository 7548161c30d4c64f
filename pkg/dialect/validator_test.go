package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-remex/pkg/remex/ast"
)

func TestValidateCensus(t *testing.T) {
	profile, ok := Builtin("re2")
	require.True(t, ok)

	pattern, errs := Adapt("date", `(?<year>\d{4})-(\d{2})-(?<day>\d{2})`, profile, Options{})
	require.Empty(t, errs)

	census, errs := Validate(pattern)
	require.Empty(t, errs)

	assert.Equal(t, uint(3), census.Groups)
	assert.Equal(t, []string{"year", "day"}, census.Names)
}

func TestValidateAdaptedOutputs(t *testing.T) {
	// every adaptation mode yields a pattern which validates cleanly
	tests := []struct {
		name    string
		builtin string
		opts    Options
		input   string
	}{
		{"passthrough", "re2", Options{}, `(?<g>a+)(b)(?<h>[)c])`},
		{"demoted to plain", "posix", Options{}, `(?<g>a+)(b)(?<h>[)c])`},
		{"demoted to non-capturing", "posix", Options{DemoteToNonCapturing: true}, `(?<g>a+)(b)(?<h>[)c])`},
		{"explicit capture", "dotnet-explicit", Options{}, `(?<g>a+)(b)(?<h>[)c])`},
		{"renamed duplicates", "re2", Options{RenameDuplicates: true}, `(?<g>\d)-(?<g>\w)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, ok := Builtin(tt.builtin)
			require.True(t, ok)

			pattern, errs := Adapt("x", tt.input, profile, tt.opts)
			require.Empty(t, errs)

			_, errs = Validate(pattern)
			assert.Empty(t, errs)
		})
	}
}

func TestValidateUnbalanced(t *testing.T) {
	census, errs := Validate(&CompiledPattern{name: "bad", text: "(a"})
	require.Len(t, errs, 1)

	assert.Equal(t, ast.ErrInternal, errs[0].Code())
	assert.Equal(t, "unclosed group", errs[0].Message())
	assert.Equal(t, uint(0), census.Groups)
}

func TestValidateResidualReference(t *testing.T) {
	_, errs := Validate(&CompiledPattern{name: "bad", text: "a$(x)b"})
	require.Len(t, errs, 1)

	assert.Equal(t, ast.ErrInternal, errs[0].Code())
	assert.Equal(t, `residual macro reference in adapted pattern "bad"`, errs[0].Message())
}

func TestValidateGroupIndexBounds(t *testing.T) {
	pattern := &CompiledPattern{name: "bad", text: "(a)", groups: map[string]uint{"q": 5}}

	_, errs := Validate(pattern)
	require.Len(t, errs, 1)

	assert.Equal(t, ast.ErrInternal, errs[0].Code())
	assert.Equal(t, `group "q" mapped to ordinal 5 of 1 capturing groups`, errs[0].Message())
}
