package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tagfilter/internal/condir"
)

func TestLoadFilter_Formats(t *testing.T) {
	testCases := []struct {
		path string
		keys []string
	}{
		{"testdata/filters/or.yaml", []string{"OR"}},
		{"testdata/filters/or.cue", []string{"OR"}},
		{"testdata/filters/implicit.json", []string{"name", "language", "version", "deleted_at"}},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			m, err := LoadFilter(tc.path, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.keys, m.Keys())
		})
	}
}

func TestLoadFilter_Stdin(t *testing.T) {
	m, err := LoadFilter(StdinPath, strings.NewReader("b.eq: 1\na.eq: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b.eq", "a.eq"}, m.Keys())
}

func TestLoadFilter_Errors(t *testing.T) {
	testCases := []struct {
		name string
		path string
		code string
	}{
		{"missing", "testdata/filters/missing.yaml", ErrCodeNotFound},
		{"unsupported", "testdata/filters/filter.txt", ErrCodeUnsupported},
		{"uppercase extension", "testdata/filters/MISSING.YML", ErrCodeNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFilter(tc.path, nil)
			require.Error(t, err)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tc.code, loadErr.Code)
			assert.Equal(t, tc.path, loadErr.Path)
			assert.Contains(t, err.Error(), tc.code)
		})
	}
}

func TestLoadFilter_ParseError(t *testing.T) {
	_, err := LoadFilter(StdinPath, strings.NewReader("- a\n- b\n"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeParseFailed, MapErrorCode(err))
	assert.Contains(t, err.Error(), "expected a mapping")
}

func TestMapErrorCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{"too deep", condir.NewTooDeepError(43), ErrCodeTooDeep},
		{"unknown operator", condir.NewUnknownOperatorError("x.y", "y"), ErrCodeUnknownOperator},
		{"arity", condir.NewArityError("s", "between", "2", 1), ErrCodeArityMismatch},
		{"empty group", condir.NewEmptyGroupError(condir.Or, 1), ErrCodeEmptyGroup},
		{"invalid field", condir.NewInvalidFieldError(".gt"), ErrCodeInvalidField},
		{"wrapped", fmt.Errorf("ctx: %w", condir.NewTooDeepError(50)), ErrCodeTooDeep},
		{"load error", &LoadError{Code: ErrCodeParseFailed, Message: "bad"}, ErrCodeParseFailed},
		{"plain", errors.New("boom"), ErrCodeGeneric},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorCode(tc.err))
		})
	}
}
