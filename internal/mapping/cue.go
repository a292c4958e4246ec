package mapping

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// FromCUESource compiles CUE source and converts its top-level struct.
func FromCUESource(filename string, src []byte) (*Mapping, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compile cue: %w", err)
	}
	return FromCUE(value)
}

// FromCUE converts a concrete CUE struct.
//
// Regular fields are visited in declaration order; definitions, hidden
// fields and optional fields are skipped. Filter keys usually contain a
// dot, so they must be quoted in CUE source: "age.gt": 18.
func FromCUE(v cue.Value) (*Mapping, error) {
	if err := v.Err(); err != nil {
		return nil, err
	}
	if v.Kind() != cue.StructKind {
		return nil, fmt.Errorf("%s: expected a struct, got %s", pathOf(v), v.Kind())
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, fmt.Errorf("%s: iterating fields: %w", pathOf(v), err)
	}

	m := &Mapping{}
	for iter.Next() {
		sel := iter.Selector()
		key := sel.String()
		if sel.IsString() {
			key = sel.Unquoted()
		}

		val, err := cueValue(iter.Value())
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}
	return m, nil
}

// cueValue converts a concrete CUE value to its Go value.
func cueValue(v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.StructKind:
		return FromCUE(v)
	case cue.ListKind:
		list, err := v.List()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pathOf(v), err)
		}
		var out []any
		for list.Next() {
			elem, err := cueValue(list.Value())
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		if out == nil {
			out = []any{}
		}
		return out, nil
	case cue.NullKind:
		return nil, nil
	case cue.BoolKind:
		return v.Bool()
	case cue.IntKind:
		return v.Int64()
	case cue.FloatKind:
		return v.Float64()
	case cue.StringKind:
		return v.String()
	default:
		return nil, fmt.Errorf("%s: value is not concrete (kind %s)", pathOf(v), v.IncompleteKind())
	}
}

func pathOf(v cue.Value) string {
	p := v.Path().String()
	if p == "" {
		return "<root>"
	}
	return p
}
