package operator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_AllTags(t *testing.T) {
	testCases := []struct {
		tag      string
		kind     Kind
		template string
		arity    Arity
	}{
		{"eq", Eq, "=?", Unary},
		{"ne", Ne, "<>?", Unary},
		{"gt", Gt, ">?", Unary},
		{"ge", Ge, ">=?", Unary},
		{"lt", Lt, "<?", Unary},
		{"le", Le, "<=?", Unary},
		{"like", Like, " LIKE ?", Unary},
		{"null", Null, " IS NULL", None},
		{"nnull", NotNull, " IS NOT NULL", None},
		{"in", In, " IN (?)", Variadic},
		{"between", Between, " (BETWEEN ? AND ?)", Binary},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			d, ok := Lookup(tc.tag)
			require.True(t, ok)
			assert.Equal(t, tc.kind, d.Kind)
			assert.Equal(t, tc.tag, d.Tag)
			assert.Equal(t, tc.template, d.Template)
			assert.Equal(t, tc.arity, d.Arity)
			assert.Equal(t, tc.tag, d.Kind.String())
		})
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	for _, tag := range []string{"GT", "Gt", "gT", "BETWEEN", "Like", "NNULL"} {
		d, ok := Lookup(tag)
		require.True(t, ok, "tag %q should resolve", tag)
		assert.NotEmpty(t, d.Template)
	}
}

func TestLookup_Unknown(t *testing.T) {
	for _, tag := range []string{"", "frobnicate", "equals", "not", "gte"} {
		_, ok := Lookup(tag)
		assert.False(t, ok, "tag %q should not resolve", tag)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	require.Len(t, all, 11)
	assert.Equal(t, "eq", all[0].Tag)
	assert.Equal(t, "between", all[len(all)-1].Tag)

	all[0].Template = "tampered"
	d, _ := Lookup("eq")
	assert.Equal(t, "=?", d.Template)
}

func TestForKind(t *testing.T) {
	d, ok := ForKind(In)
	require.True(t, ok)
	assert.Equal(t, "in", d.Tag)

	_, ok = ForKind(Kind(99))
	assert.False(t, ok)
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestArity_Accepts(t *testing.T) {
	assert.True(t, None.Accepts(0))
	assert.False(t, None.Accepts(1))
	assert.True(t, Unary.Accepts(1))
	assert.False(t, Unary.Accepts(2))
	assert.True(t, Binary.Accepts(2))
	assert.False(t, Binary.Accepts(1))
	assert.False(t, Binary.Accepts(3))
	assert.True(t, Variadic.Accepts(1))
	assert.True(t, Variadic.Accepts(7))
	assert.False(t, Variadic.Accepts(0))
}

func TestLookup_ConcurrentReaders(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d, ok := Lookup("BeTwEeN")
				if !ok || d.Kind != Between {
					t.Errorf("concurrent lookup returned %v, %v", d, ok)
					return
				}
			}
		}()
	}
	wg.Wait()
}
