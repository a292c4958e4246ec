package operator

import (
	"golang.org/x/text/cases"
)

// Kind identifies a comparison operator.
//
// Kind is a closed enumeration: serializers switch over it (or over the
// descriptor's Arity) instead of dispatching on tag strings.
type Kind int

const (
	Eq Kind = iota + 1
	Ne
	Gt
	Ge
	Lt
	Le
	Like
	Null
	NotNull
	In
	Between
)

// String returns the canonical tag for the kind.
func (k Kind) String() string {
	if d, ok := byKind[k]; ok {
		return d.Tag
	}
	return "unknown"
}

// Arity is the number of placeholders an operator binds.
type Arity int

const (
	// None binds no values (IS NULL, IS NOT NULL).
	None Arity = iota
	// Unary binds exactly one value.
	Unary
	// Binary binds exactly two values (BETWEEN).
	Binary
	// Variadic binds one or more values (IN).
	Variadic
)

// String returns a short human-readable arity.
func (a Arity) String() string {
	switch a {
	case None:
		return "0"
	case Unary:
		return "1"
	case Binary:
		return "2"
	case Variadic:
		return "n"
	default:
		return "?"
	}
}

// Accepts reports whether n bound values satisfy the arity.
func (a Arity) Accepts(n int) bool {
	switch a {
	case None:
		return n == 0
	case Unary:
		return n == 1
	case Binary:
		return n == 2
	case Variadic:
		return n >= 1
	default:
		return false
	}
}

// Descriptor describes one registered operator.
//
// Template is the SQL fragment appended to the field name. Each "?" in the
// template is a positional placeholder; for Variadic operators the single
// "?" expands to one placeholder per bound value.
type Descriptor struct {
	Kind     Kind
	Tag      string
	Template string
	Arity    Arity
}

// IsZero reports whether d is the zero Descriptor (no operator).
func (d Descriptor) IsZero() bool {
	return d.Kind == 0
}

// descriptors is the operator table in display order.
// Never mutated after package initialization.
var descriptors = []Descriptor{
	{Kind: Eq, Tag: "eq", Template: "=?", Arity: Unary},
	{Kind: Ne, Tag: "ne", Template: "<>?", Arity: Unary},
	{Kind: Gt, Tag: "gt", Template: ">?", Arity: Unary},
	{Kind: Ge, Tag: "ge", Template: ">=?", Arity: Unary},
	{Kind: Lt, Tag: "lt", Template: "<?", Arity: Unary},
	{Kind: Le, Tag: "le", Template: "<=?", Arity: Unary},
	{Kind: Like, Tag: "like", Template: " LIKE ?", Arity: Unary},
	{Kind: Null, Tag: "null", Template: " IS NULL", Arity: None},
	{Kind: NotNull, Tag: "nnull", Template: " IS NOT NULL", Arity: None},
	{Kind: In, Tag: "in", Template: " IN (?)", Arity: Variadic},
	{Kind: Between, Tag: "between", Template: " (BETWEEN ? AND ?)", Arity: Binary},
}

var (
	byTag  = make(map[string]Descriptor, len(descriptors))
	byKind = make(map[Kind]Descriptor, len(descriptors))
)

func init() {
	for _, d := range descriptors {
		byTag[d.Tag] = d
		byKind[d.Kind] = d
	}
}

// Lookup returns the descriptor registered for tag.
// Tags compare case-insensitively ("GT", "Gt" and "gt" are the same tag).
func Lookup(tag string) (Descriptor, bool) {
	d, ok := byTag[fold(tag)]
	return d, ok
}

// ForKind returns the descriptor for a Kind.
func ForKind(k Kind) (Descriptor, bool) {
	d, ok := byKind[k]
	return d, ok
}

// All returns a copy of the operator table in display order.
func All() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// fold case-folds a tag for comparison.
// A Caser is stateful, so each call builds its own.
func fold(tag string) string {
	return cases.Fold().String(tag)
}
