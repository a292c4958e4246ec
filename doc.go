// Package tagfilter converts tag-annotated filter mappings into
// parameterized SQL filter expressions.
//
// A key names a field and optionally an operator tag after the last dot;
// values are never interpolated:
//
//	expr, params, err := tagfilter.Translate(tagfilter.NewMapping(
//		tagfilter.E("OR", tagfilter.NewMapping(
//			tagfilter.E("name.like", "Lou%"),
//			tagfilter.E("age.gt", 18),
//		)),
//	))
//	// expr   = "(name LIKE ? OR age>?)"
//	// params = ["Lou%", 18]
//
// The result is meant for a WHERE clause:
//
//	rows, err := db.Query("SELECT * FROM people WHERE "+expr, params...)
//
// Supported tags: eq ne gt ge lt le like null nnull in between. The keys
// "AND" and "OR" group their nested mapping under that connective. Nesting
// deeper than MaxDepth fails with a TOO_DEEP_OR_CYCLIC error.
package tagfilter
