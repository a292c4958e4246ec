package condir

import "github.com/roach88/tagfilter/internal/operator"

// MaxDepth is the deepest nesting level a condition tree may reach.
// Level 0 is the root mapping; every nested mapping adds one.
const MaxDepth = 42

// Node is one element of a condition tree.
//
// This is a sealed interface - only Leaf and Group implement it, so
// serializers can switch exhaustively over node types.
type Node interface {
	conditionNode() // Marker method - seals interface to this package
}

// Connective joins the children of a Group.
type Connective int

const (
	And Connective = iota + 1
	Or
)

// String returns the SQL keyword for the connective.
func (c Connective) String() string {
	switch c {
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return ""
	}
}

// ParseConnective recognizes the reserved grouping keys.
// Matching is case-sensitive: only "AND" and "OR" govern grouping,
// "and" is an ordinary field name.
func ParseConnective(key string) (Connective, bool) {
	switch key {
	case "AND":
		return And, true
	case "OR":
		return Or, true
	default:
		return 0, false
	}
}

// Leaf is a single field comparison.
//
// Semantics:
//
//	<field><template>
//
// Values are bound in order to the placeholders of the template. Their
// count must satisfy Op.Arity: 0 for null/nnull, 1 for unary operators,
// 2 for between, and one or more for in.
//
// Example:
//
//	Leaf{Field: "age", Op: gt, Values: []any{18}}
//
// renders as
//
//	age>?    params: [18]
type Leaf struct {
	Field  string
	Op     operator.Descriptor
	Values []any
}

func (Leaf) conditionNode() {}

// Placeholders returns the number of "?" markers the leaf renders.
func (l Leaf) Placeholders() int {
	switch l.Op.Arity {
	case operator.None:
		return 0
	case operator.Unary:
		return 1
	case operator.Binary:
		return 2
	case operator.Variadic:
		return len(l.Values)
	default:
		return 0
	}
}

// Group is a boolean combination of child conditions.
//
// Semantics:
//
//	(<child1> <connective> <child2> ... <connective> <childN>)
//
// Child order is significant: it fixes both clause order in the rendered
// expression and the order of bound parameters.
type Group struct {
	Connective Connective
	Children   []Node
}

func (Group) conditionNode() {}
