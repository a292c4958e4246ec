package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tagfilter"
)

// ImplicitPolicies lists the accepted --implicit values.
var ImplicitPolicies = []string{
	string(tagfilter.ImplicitWildcard),
	string(tagfilter.ImplicitType),
	string(tagfilter.ImplicitEq),
}

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Implicit string // overrides implicit_tag from config
}

// TranslateResult is the rendered filter.
type TranslateResult struct {
	Expression string `json:"expression"`
	Params     []any  `json:"params"`
}

// String renders the result for text output.
func (r TranslateResult) String() string {
	var b strings.Builder
	b.WriteString(r.Expression)
	fmt.Fprintf(&b, "\nparams (%d):", len(r.Params))
	for i, p := range r.Params {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, formatParam(p))
	}
	return b.String()
}

// formatParam quotes strings so blanks and commas stay visible.
func formatParam(p any) string {
	switch v := p.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case nil:
		return "NULL"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <file|->",
		Short: "Translate a filter file into a SQL expression and params",
		Long: `Translate one filter mapping into a parameterized SQL expression.

The file format follows the extension (.yaml, .yml, .json or .cue).
Use "-" to read YAML or JSON from standard input.`,
		Example: `  tagfilter translate filter.yaml
  echo '{"OR": {"name.like": "Lou%", "age.gt": 18}}' | tagfilter translate -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Implicit, "implicit", "", "implicit tag policy (wildcard|type|eq)")

	return cmd
}

func runTranslate(opts *TranslateOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	_, log := opts.settings()

	if opts.Implicit != "" && !slices.Contains(ImplicitPolicies, opts.Implicit) {
		msg := fmt.Sprintf("invalid implicit policy %q: must be one of %v", opts.Implicit, ImplicitPolicies)
		_ = formatter.Error(ErrCodeGeneric, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	m, err := LoadFilter(path, cmd.InOrStdin())
	if err != nil {
		return outputTranslateError(formatter, err, ExitCommandError)
	}
	log.Info("loaded filter", "path", path, "keys", m.Len())
	formatter.VerboseLog("Loaded %d top-level key(s) from %s", m.Len(), path)

	expr, params, err := opts.converter(opts.Implicit).ToConditions(m)
	if err != nil {
		return outputTranslateError(formatter, err, ExitFailure)
	}

	if params == nil {
		params = []any{}
	}
	return formatter.Success(TranslateResult{Expression: expr, Params: params})
}

// outputTranslateError reports err and returns it with exitCode.
func outputTranslateError(formatter *OutputFormatter, err error, exitCode int) error {
	code := MapErrorCode(err)
	message := errorMessage(err)
	_ = formatter.Error(code, message, errorDetails(err))
	return WrapExitError(exitCode, code, err)
}
