package condir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tagfilter/internal/operator"
)

func op(t *testing.T, tag string) operator.Descriptor {
	t.Helper()
	d, ok := operator.Lookup(tag)
	require.True(t, ok, "operator %q must exist", tag)
	return d
}

func TestSealedInterface(t *testing.T) {
	var nodes []Node
	nodes = append(nodes, Leaf{}, &Leaf{}, Group{}, &Group{})
	assert.Len(t, nodes, 4)
}

func TestParseConnective(t *testing.T) {
	c, ok := ParseConnective("AND")
	require.True(t, ok)
	assert.Equal(t, And, c)
	assert.Equal(t, "AND", c.String())

	c, ok = ParseConnective("OR")
	require.True(t, ok)
	assert.Equal(t, Or, c)
	assert.Equal(t, "OR", c.String())

	for _, key := range []string{"and", "or", "And", "NOT", ""} {
		_, ok := ParseConnective(key)
		assert.False(t, ok, "key %q must not be a connective", key)
	}
	assert.Equal(t, "", Connective(0).String())
}

func TestLeaf_Placeholders(t *testing.T) {
	testCases := []struct {
		tag    string
		values []any
		want   int
	}{
		{"eq", []any{1}, 1},
		{"null", nil, 0},
		{"nnull", nil, 0},
		{"between", []any{1, 2}, 2},
		{"in", []any{1, 2, 3}, 3},
		{"in", []any{"a"}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			l := Leaf{Field: "x", Op: op(t, tc.tag), Values: tc.values}
			assert.Equal(t, tc.want, l.Placeholders())
		})
	}
}

func TestError_Format(t *testing.T) {
	err := NewUnknownOperatorError("x.frobnicate", "frobnicate")
	assert.Equal(t, `UNKNOWN_OPERATOR: unknown operator tag "frobnicate" (field=x.frobnicate, tag=frobnicate)`, err.Error())

	err = NewTooDeepError(43)
	assert.Equal(t, "TOO_DEEP_OR_CYCLIC: nested too deep or cyclic (depth 43 > 42)", err.Error())
	assert.Equal(t, 43, err.Depth)

	err = NewArityError("salary", "between", "2", 1)
	assert.Contains(t, err.Error(), "ARITY_MISMATCH")
	assert.Contains(t, err.Error(), "field=salary, tag=between")
}

func TestErrorPredicates(t *testing.T) {
	wrapped := func(err error) error {
		return &wrapErr{err}
	}

	assert.True(t, IsTooDeep(wrapped(NewTooDeepError(50))))
	assert.True(t, IsUnknownOperator(wrapped(NewUnknownOperatorError("k", "t"))))
	assert.True(t, IsArityMismatch(wrapped(NewArityError("f", "in", "1+", 0))))
	assert.True(t, IsEmptyGroup(wrapped(NewEmptyGroupError(Or, 2))))
	assert.True(t, IsInvalidField(wrapped(NewInvalidFieldError(".gt"))))

	assert.False(t, IsTooDeep(NewEmptyGroupError(And, 0)))
	assert.False(t, IsUnknownOperator(nil))

	code, ok := CodeOf(wrapped(NewInvalidFieldError(".eq")))
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidField, code)
}

type wrapErr struct{ err error }

func (w *wrapErr) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapErr) Unwrap() error { return w.err }
