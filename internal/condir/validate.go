package condir

import "fmt"

// ValidationResult contains the structural analysis of a condition tree.
type ValidationResult struct {
	// Valid is true when the tree can be serialized.
	Valid bool

	// Problems lists every structural defect found, in traversal order.
	// Empty when Valid is true.
	Problems []string

	// Leaves counts leaf conditions.
	Leaves int

	// Placeholders counts the "?" markers the tree renders.
	Placeholders int

	// Depth is the deepest group nesting level reached (root group is 0).
	Depth int
}

// Validate checks a condition tree without rendering it.
//
// Unlike serialization, which stops at the first defect, Validate walks
// the whole tree and reports every problem it finds:
//  1. leaves whose value count does not fit the operator arity
//  2. leaves without an operator or field name
//  3. groups without children or with an unknown connective
//  4. nesting beyond MaxDepth (also catches hand-built cyclic trees)
//
// Validate is a pure function with no side effects.
func Validate(n Node) ValidationResult {
	v := &validator{
		problems: []string{},
	}
	v.validateNode(n, 0)

	return ValidationResult{
		Valid:        len(v.problems) == 0,
		Problems:     v.problems,
		Leaves:       v.leaves,
		Placeholders: v.placeholders,
		Depth:        v.depth,
	}
}

// validator accumulates problems during traversal.
type validator struct {
	problems     []string
	leaves       int
	placeholders int
	depth        int
}

// addProblem appends a problem message.
func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

// validateNode recursively validates a node.
func (v *validator) validateNode(n Node, depth int) {
	switch node := n.(type) {
	case nil:
		v.addProblem("nil node at depth %d", depth)
	case Leaf:
		v.validateLeaf(node)
	case *Leaf:
		v.validateLeaf(*node)
	case Group:
		v.validateGroup(node, depth)
	case *Group:
		v.validateGroup(*node, depth)
	default:
		v.addProblem("unknown node type: %T", n)
	}
}

// validateLeaf validates a leaf condition.
func (v *validator) validateLeaf(l Leaf) {
	v.leaves++

	if l.Field == "" {
		v.addProblem("leaf has an empty field name")
	}
	if l.Op.IsZero() {
		v.addProblem("field %q has no operator", l.Field)
		return
	}
	if !l.Op.Arity.Accepts(len(l.Values)) {
		v.addProblem("field %q: operator %s expects %s value(s), got %d",
			l.Field, l.Op.Tag, l.Op.Arity, len(l.Values))
		return
	}
	v.placeholders += l.Placeholders()
}

// validateGroup validates a group and its children.
func (v *validator) validateGroup(g Group, depth int) {
	if depth > MaxDepth {
		v.addProblem("nested too deep or cyclic (depth %d > %d)", depth, MaxDepth)
		return
	}
	if depth > v.depth {
		v.depth = depth
	}

	if g.Connective.String() == "" {
		v.addProblem("group at depth %d has unknown connective %d", depth, g.Connective)
	}
	if len(g.Children) == 0 {
		v.addProblem("group at depth %d has no conditions", depth)
	}

	for _, child := range g.Children {
		v.validateNode(child, depth+1)
	}
}
