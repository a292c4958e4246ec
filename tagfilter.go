package tagfilter

import (
	"log/slog"

	"github.com/roach88/tagfilter/internal/condir"
	"github.com/roach88/tagfilter/internal/condsql"
	"github.com/roach88/tagfilter/internal/mapping"
	"github.com/roach88/tagfilter/internal/translate"
)

// Input and tree types.
type (
	Mapping = mapping.Mapping
	Entry   = mapping.Entry

	Node       = condir.Node
	Leaf       = condir.Leaf
	Group      = condir.Group
	Connective = condir.Connective

	ImplicitPolicy = translate.ImplicitPolicy

	Error     = condir.Error
	ErrorCode = condir.ErrorCode

	ValidationResult = condir.ValidationResult
)

// MaxDepth is the deepest nesting level a filter may use.
const MaxDepth = condir.MaxDepth

const (
	And = condir.And
	Or  = condir.Or
)

const (
	ImplicitWildcard = translate.ImplicitWildcard
	ImplicitType     = translate.ImplicitType
	ImplicitEq       = translate.ImplicitEq
)

const (
	ErrCodeTooDeep         = condir.ErrCodeTooDeep
	ErrCodeUnknownOperator = condir.ErrCodeUnknownOperator
	ErrCodeArityMismatch   = condir.ErrCodeArityMismatch
	ErrCodeEmptyGroup      = condir.ErrCodeEmptyGroup
	ErrCodeInvalidField    = condir.ErrCodeInvalidField
)

// NewMapping returns an ordered mapping holding entries.
func NewMapping(entries ...Entry) *Mapping { return mapping.New(entries...) }

// E is shorthand for an Entry.
func E(key string, value any) Entry { return mapping.E(key, value) }

// Options configures a Converter. The zero value is usable.
type Options struct {
	// Implicit is the operator policy for keys without a tag.
	Implicit ImplicitPolicy

	// ListSeparator splits string values for in and between.
	ListSeparator string

	// QualifiedFields treats an unknown suffix as part of the field name.
	QualifiedFields bool

	// ColumnMapping renames fields in the rendered expression.
	ColumnMapping map[string]string

	// Logger receives debug traces. Nil discards.
	Logger *slog.Logger
}

// Converter translates filter mappings and renders them in one step.
// It is safe for concurrent use.
type Converter struct {
	translator *translate.Translator
	compiler   *condsql.Compiler
}

// NewConverter creates a Converter.
func NewConverter(opts Options) *Converter {
	return &Converter{
		translator: translate.New(translate.Options{
			Implicit:        opts.Implicit,
			ListSeparator:   opts.ListSeparator,
			QualifiedFields: opts.QualifiedFields,
			Logger:          opts.Logger,
		}),
		compiler: condsql.NewCompiler(&condsql.Options{ColumnMapping: opts.ColumnMapping}),
	}
}

// Tree translates m into a condition tree without rendering it.
func (c *Converter) Tree(m *Mapping) (Group, error) {
	return c.translator.Translate(m)
}

// ToConditions translates m and renders it. The n-th "?" in the
// expression binds params[n].
func (c *Converter) ToConditions(m *Mapping) (string, []any, error) {
	tree, err := c.translator.Translate(m)
	if err != nil {
		return "", nil, err
	}
	return c.compiler.Compile(tree)
}

// Compile renders a hand-built tree.
func (c *Converter) Compile(n Node) (string, []any, error) {
	return c.compiler.Compile(n)
}

// FromMap converts a plain Go map. Keys are visited in sorted order.
func (c *Converter) FromMap(m map[string]any) (string, []any, error) {
	return c.ToConditions(mapping.FromMap(m))
}

// FromYAML converts a YAML or JSON document, keeping key order.
func (c *Converter) FromYAML(data []byte) (string, []any, error) {
	m, err := mapping.FromYAML(data)
	if err != nil {
		return "", nil, err
	}
	return c.ToConditions(m)
}

// FromCUE compiles CUE source and converts its top-level struct.
func (c *Converter) FromCUE(filename string, src []byte) (string, []any, error) {
	m, err := mapping.FromCUESource(filename, src)
	if err != nil {
		return "", nil, err
	}
	return c.ToConditions(m)
}

var defaultConverter = NewConverter(Options{})

// Translate converts m with default options.
func Translate(m *Mapping) (string, []any, error) {
	return defaultConverter.ToConditions(m)
}

// TranslateMap converts a plain Go map with default options.
func TranslateMap(m map[string]any) (string, []any, error) {
	return defaultConverter.FromMap(m)
}

// TranslateYAML converts a YAML or JSON document with default options.
func TranslateYAML(data []byte) (string, []any, error) {
	return defaultConverter.FromYAML(data)
}

// TranslateCUE converts CUE source with default options.
func TranslateCUE(filename string, src []byte) (string, []any, error) {
	return defaultConverter.FromCUE(filename, src)
}

// Validate reports every structural problem in a hand-built tree.
func Validate(n Node) ValidationResult {
	return condir.Validate(n)
}

// CountPlaceholders counts "?" markers in a rendered expression.
func CountPlaceholders(expr string) int {
	return condsql.CountPlaceholders(expr)
}

// CodeOf returns the error code carried by err, if any.
func CodeOf(err error) (ErrorCode, bool) { return condir.CodeOf(err) }

// IsTooDeep reports a nesting or cycle error.
func IsTooDeep(err error) bool { return condir.IsTooDeep(err) }

// IsUnknownOperator reports an unrecognized tag.
func IsUnknownOperator(err error) bool { return condir.IsUnknownOperator(err) }

// IsArityMismatch reports a value count that does not fit the operator.
func IsArityMismatch(err error) bool { return condir.IsArityMismatch(err) }

// IsEmptyGroup reports a mapping with no conditions.
func IsEmptyGroup(err error) bool { return condir.IsEmptyGroup(err) }

// IsInvalidField reports a key with an empty field name.
func IsInvalidField(err error) bool { return condir.IsInvalidField(err) }
