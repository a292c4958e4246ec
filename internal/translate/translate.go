package translate

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/roach88/tagfilter/internal/condir"
	"github.com/roach88/tagfilter/internal/mapping"
	"github.com/roach88/tagfilter/internal/operator"
)

// ImplicitPolicy decides the operator for a key without a tag.
type ImplicitPolicy string

const (
	// ImplicitWildcard picks like for strings containing "%" and eq otherwise.
	ImplicitWildcard ImplicitPolicy = "wildcard"

	// ImplicitType picks like for every string and eq for other scalars.
	ImplicitType ImplicitPolicy = "type"

	// ImplicitEq always picks eq.
	ImplicitEq ImplicitPolicy = "eq"
)

// DefaultListSeparator splits string values for in and between.
const DefaultListSeparator = ","

// Options configures a Translator. The zero value is usable.
type Options struct {
	// Implicit is the policy for untagged keys (default ImplicitWildcard).
	// Under every policy a nil value picks null and a list value picks in.
	Implicit ImplicitPolicy

	// ListSeparator splits string values for in and between
	// (default DefaultListSeparator).
	ListSeparator string

	// QualifiedFields treats an unrecognized suffix as part of the field
	// name ("users.name") instead of an unknown operator.
	QualifiedFields bool

	// Logger receives debug traces. Nil discards.
	Logger *slog.Logger
}

// Translator builds condition trees from filter mappings.
//
// A Translator holds only its options; it is safe for concurrent use and
// every call builds a fresh tree.
type Translator struct {
	opts Options
	log  *slog.Logger
}

// New creates a Translator, filling defaults for zero option fields.
func New(opts Options) *Translator {
	if opts.Implicit == "" {
		opts.Implicit = ImplicitWildcard
	}
	if opts.ListSeparator == "" {
		opts.ListSeparator = DefaultListSeparator
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Translator{opts: opts, log: log}
}

// Translate converts a filter mapping into a condition tree.
//
// The root is an implicit AND group unless its only key is "AND" or "OR"
// with a mapping value, in which case that connective governs the group.
// Errors are *condir.Error values; no partial tree is returned.
func (t *Translator) Translate(m *mapping.Mapping) (condir.Group, error) {
	g, err := t.translate(m, 0)
	if err != nil {
		t.log.Debug("translation failed", "error", err)
		return condir.Group{}, err
	}
	return g, nil
}

// translate handles one mapping at the given depth.
func (t *Translator) translate(m *mapping.Mapping, depth int) (condir.Group, error) {
	if depth > condir.MaxDepth {
		return condir.Group{}, condir.NewTooDeepError(depth)
	}

	if m.Len() == 1 {
		e := m.At(0)
		if conn, ok := condir.ParseConnective(e.Key); ok {
			if nested, ok := asMapping(e.Value); ok {
				return t.group(conn, nested, depth+1)
			}
		}
	}
	return t.group(condir.And, m, depth)
}

// group builds a group whose children are the entries of m.
func (t *Translator) group(conn condir.Connective, m *mapping.Mapping, depth int) (condir.Group, error) {
	if depth > condir.MaxDepth {
		return condir.Group{}, condir.NewTooDeepError(depth)
	}
	if m.Len() == 0 {
		return condir.Group{}, condir.NewEmptyGroupError(conn, depth)
	}

	g := condir.Group{
		Connective: conn,
		Children:   make([]condir.Node, 0, m.Len()),
	}
	for i := 0; i < m.Len(); i++ {
		child, err := t.child(m.At(i), depth)
		if err != nil {
			return condir.Group{}, err
		}
		g.Children = append(g.Children, child)
	}
	return g, nil
}

// child builds the node for one entry of a mapping at depth.
func (t *Translator) child(e mapping.Entry, depth int) (condir.Node, error) {
	nested, ok := asMapping(e.Value)
	if !ok {
		return t.leaf(e.Key, e.Value)
	}

	// A connective key names its own group; any other key holding a
	// mapping is a nested filter with its own grouping rules. Depth counts
	// mappings, so a field whose mapping is a single connective wrapper
	// uses two levels.
	if conn, ok := condir.ParseConnective(e.Key); ok {
		return t.group(conn, nested, depth+1)
	}
	return t.translate(nested, depth+1)
}

// leaf resolves a key/value pair into a single comparison.
func (t *Translator) leaf(key string, value any) (condir.Node, error) {
	ft := operator.Resolve(key)

	var op operator.Descriptor
	switch {
	case ft.HasTag():
		op, _ = operator.Lookup(ft.Tag)
	case ft.Separated && !t.opts.QualifiedFields:
		return nil, condir.NewUnknownOperatorError(key, ft.Suffix)
	default:
		op = t.implicit(value)
		t.log.Debug("implicit tag resolved",
			"field", ft.Field,
			"tag", op.Tag,
			"policy", string(t.opts.Implicit))
	}

	if ft.Field == "" {
		return nil, condir.NewInvalidFieldError(key)
	}

	values, err := t.bind(ft.Field, op, value)
	if err != nil {
		return nil, err
	}
	return condir.Leaf{Field: ft.Field, Op: op, Values: values}, nil
}

// implicit picks the operator for an untagged key.
func (t *Translator) implicit(value any) operator.Descriptor {
	kind := operator.Eq
	switch v := value.(type) {
	case nil:
		kind = operator.Null
	case string:
		switch t.opts.Implicit {
		case ImplicitType:
			kind = operator.Like
		case ImplicitWildcard:
			if strings.Contains(v, "%") {
				kind = operator.Like
			}
		}
	default:
		if isList(value) {
			kind = operator.In
		}
	}
	d, _ := operator.ForKind(kind)
	return d
}

// bind turns a raw value into the ordered values the operator binds.
func (t *Translator) bind(field string, op operator.Descriptor, value any) ([]any, error) {
	switch op.Arity {
	case operator.None:
		return nil, nil

	case operator.Unary:
		if isList(value) {
			return nil, condir.NewArityError(field, op.Tag, op.Arity.String(), listLen(value))
		}
		return []any{value}, nil

	case operator.Binary, operator.Variadic:
		items := t.items(value)
		if !op.Arity.Accepts(len(items)) {
			want := op.Arity.String()
			if op.Arity == operator.Variadic {
				want = "at least 1"
			}
			return nil, condir.NewArityError(field, op.Tag, want, len(items))
		}
		return items, nil

	default:
		return nil, fmt.Errorf("operator %s has unsupported arity %d", op.Tag, op.Arity)
	}
}

// items expands a list-shaped value. Strings are split on the list
// separator with each item trimmed and blanks dropped; slices contribute
// their elements; any other scalar is a single item.
func (t *Translator) items(value any) []any {
	if s, ok := value.(string); ok {
		var out []any
		for _, part := range strings.Split(s, t.opts.ListSeparator) {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	if isList(value) {
		rv := reflect.ValueOf(value)
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}

	if value == nil {
		return nil
	}
	return []any{value}
}

// asMapping reports whether v is a nested filter mapping.
func asMapping(v any) (*mapping.Mapping, bool) {
	switch m := v.(type) {
	case *mapping.Mapping:
		return m, m != nil
	case map[string]any:
		return mapping.FromMap(m), true
	default:
		return nil, false
	}
}

// isList reports whether v is a slice or array other than []byte.
func isList(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func listLen(v any) int {
	return reflect.ValueOf(v).Len()
}
