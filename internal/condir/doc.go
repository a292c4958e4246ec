// Package condir provides the condition tree that sits between a filter
// mapping and its rendered predicate.
//
//	[filter mapping] → [condition tree] → [expression, params]
//
// A tree is built fresh for every translation and discarded after
// serialization. It has two node kinds:
//   - Leaf: field + operator + bound values
//   - Group: AND/OR connective over ordered children
//
// Node is a sealed interface using the marker method pattern, so
// serializers can switch exhaustively:
//
//	switch n := node.(type) {
//	case Leaf:
//	    // render field + template
//	case Group:
//	    // render "(" + children joined by connective + ")"
//	}
//
// The package also owns the error taxonomy shared by the translator and
// the serializer (see Error), and the MaxDepth nesting limit.
package condir
