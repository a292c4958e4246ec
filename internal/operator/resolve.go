package operator

import "strings"

// TagSeparator separates a field name from its operator tag ("age.gt").
const TagSeparator = "."

// FieldTag is a mapping key split into field name and operator tag.
type FieldTag struct {
	// Field is the column name. When no registered tag was found it is the
	// whole key, separator included.
	Field string

	// Tag is the canonical tag of the matched operator, or "" when absent.
	Tag string

	// Suffix is the text after the last separator when it did not match a
	// registered tag. Empty when Tag is set or the key has no separator.
	Suffix string

	// Separated reports whether the key contains a separator at all.
	Separated bool
}

// HasTag reports whether an explicit operator tag was found.
func (ft FieldTag) HasTag() bool {
	return ft.Tag != ""
}

// Resolve splits key on its last separator.
//
// If the suffix names a registered operator (case-insensitively) it is
// consumed as the tag and the remainder is the field. Otherwise the whole
// key is the field and the tag is absent; the caller decides whether an
// unmatched suffix is an error or part of a qualified column name.
func Resolve(key string) FieldTag {
	i := strings.LastIndex(key, TagSeparator)
	if i < 0 {
		return FieldTag{Field: key}
	}

	suffix := key[i+len(TagSeparator):]
	if d, ok := Lookup(suffix); ok {
		return FieldTag{Field: key[:i], Tag: d.Tag, Separated: true}
	}
	return FieldTag{Field: key, Suffix: suffix, Separated: true}
}
