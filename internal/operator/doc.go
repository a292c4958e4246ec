// Package operator holds the fixed operator table and the tag resolver.
//
// An operator tag is the suffix of a filter key: in "age.gt" the field is
// "age" and the tag is "gt". The table is built once at package
// initialization and is read-only afterwards, so lookups are safe from any
// number of goroutines without locking.
//
//	tag      template              arity
//	eq       =?                    1
//	ne       <>?                   1
//	gt       >?                    1
//	ge       >=?                   1
//	lt       <?                    1
//	le       <=?                   1
//	like      LIKE ?               1
//	null      IS NULL              0
//	nnull     IS NOT NULL          0
//	in        IN (?)               n
//	between   (BETWEEN ? AND ?)    2
package operator
