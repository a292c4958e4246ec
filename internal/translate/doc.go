// Package translate turns a tag-annotated filter mapping into a condition
// tree.
//
// Keys name a field and, optionally, an operator tag:
//
//	{"age.gt": 18}                      → age>?
//	{"OR": {"name.like": "Lou%", ...}}  → (name LIKE ? OR ...)
//
// The reserved keys "AND" and "OR" govern grouping when they hold a
// mapping. Recursion is bounded by condir.MaxDepth with an explicit depth
// counter, so deeply nested or self-referencing mappings fail with a
// TOO_DEEP_OR_CYCLIC error instead of exhausting the stack.
//
// Untagged keys resolve through an ImplicitPolicy. The default,
// ImplicitWildcard, maps {"name": "Lou%"} to LIKE and {"name": "Ruby"} or
// {"version": 1.9} to "=".
package translate
