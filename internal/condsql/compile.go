package condsql

import (
	"fmt"
	"strings"

	"github.com/roach88/tagfilter/internal/condir"
	"github.com/roach88/tagfilter/internal/operator"
)

// Placeholder is the positional parameter marker.
const Placeholder = "?"

// Options configures rendering.
type Options struct {
	// ColumnMapping renames fields on output. Fields not in the map are
	// rendered as given.
	ColumnMapping map[string]string
}

// Compiler renders condition trees to a parameterized expression.
//
// CRITICAL: values are never interpolated. Every bound value appears as a
// "?" placeholder and in the params slice at the same position.
type Compiler struct {
	opts Options
}

// NewCompiler creates a Compiler. If opts is nil, default options are used.
func NewCompiler(opts *Options) *Compiler {
	if opts == nil {
		opts = &Options{}
	}
	return &Compiler{opts: *opts}
}

// Compile converts a condition tree to (expression, params, error).
//
// Traversal is depth-first and left-to-right in a single pass, so the
// n-th "?" in the expression binds the n-th element of params. Groups are
// always parenthesized, the root group included.
func (c *Compiler) Compile(n condir.Node) (string, []any, error) {
	return c.compileNode(n, 0)
}

// compileNode dispatches on the node type.
func (c *Compiler) compileNode(n condir.Node, depth int) (string, []any, error) {
	switch node := n.(type) {
	case condir.Leaf:
		return c.compileLeaf(node)
	case *condir.Leaf:
		return c.compileLeaf(*node)
	case condir.Group:
		return c.compileGroup(node, depth)
	case *condir.Group:
		return c.compileGroup(*node, depth)
	case nil:
		return "", nil, fmt.Errorf("cannot compile nil node")
	default:
		return "", nil, fmt.Errorf("unsupported node type: %T", n)
	}
}

// compileGroup renders "(" + children joined by the connective + ")".
// Hand-built trees may nest arbitrarily or even contain themselves, so the
// depth limit applies here too.
func (c *Compiler) compileGroup(g condir.Group, depth int) (string, []any, error) {
	if depth > condir.MaxDepth {
		return "", nil, condir.NewTooDeepError(depth)
	}

	conn := g.Connective.String()
	if conn == "" {
		return "", nil, fmt.Errorf("unsupported connective: %d", g.Connective)
	}
	if len(g.Children) == 0 {
		return "", nil, condir.NewEmptyGroupError(g.Connective, depth)
	}

	sqlParts := make([]string, 0, len(g.Children))
	var allParams []any

	for _, child := range g.Children {
		sql, params, err := c.compileNode(child, depth+1)
		if err != nil {
			return "", nil, err
		}
		sqlParts = append(sqlParts, sql)
		allParams = append(allParams, params...)
	}

	sql := "(" + strings.Join(sqlParts, " "+conn+" ") + ")"
	return sql, allParams, nil
}

// compileLeaf renders field + operator template.
func (c *Compiler) compileLeaf(l condir.Leaf) (string, []any, error) {
	if l.Field == "" {
		return "", nil, condir.NewInvalidFieldError(l.Field)
	}
	if l.Op.IsZero() {
		return "", nil, condir.NewUnknownOperatorError(l.Field, "")
	}
	if !l.Op.Arity.Accepts(len(l.Values)) {
		return "", nil, condir.NewArityError(l.Field, l.Op.Tag, l.Op.Arity.String(), len(l.Values))
	}

	var fragment string
	switch l.Op.Arity {
	case operator.None, operator.Unary, operator.Binary:
		fragment = l.Op.Template
	case operator.Variadic:
		fragment = strings.Replace(l.Op.Template, Placeholder, placeholders(len(l.Values)), 1)
	default:
		return "", nil, fmt.Errorf("operator %s has unsupported arity %d", l.Op.Tag, l.Op.Arity)
	}

	params := make([]any, len(l.Values))
	copy(params, l.Values)

	return c.column(l.Field) + fragment, params, nil
}

// column applies the column mapping.
func (c *Compiler) column(field string) string {
	if mapped, ok := c.opts.ColumnMapping[field]; ok {
		return mapped
	}
	return field
}

// placeholders returns n comma-separated placeholders.
func placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = Placeholder
	}
	return strings.Join(marks, ", ")
}

// CountPlaceholders counts "?" markers in a rendered expression.
func CountPlaceholders(expr string) int {
	return strings.Count(expr, Placeholder)
}
