package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tagfilter/internal/operator"
)

// OperatorInfo describes one operator tag.
type OperatorInfo struct {
	Tag      string `json:"tag"`
	Template string `json:"template"`
	Arity    string `json:"arity"`
}

// OperatorTable is the ops command output.
type OperatorTable []OperatorInfo

// String renders the table for text output.
func (t OperatorTable) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-6s %s", "TAG", "ARITY", "RENDERS")
	for _, op := range t {
		fmt.Fprintf(&b, "\n%-8s %-6s field%s", op.Tag, op.Arity, op.Template)
	}
	return b.String()
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ops",
		Short:         "List operator tags",
		Long:          "List every operator tag with its arity and the SQL it renders.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.formatter(cmd).Success(operatorTable())
		},
	}
}

func operatorTable() OperatorTable {
	all := operator.All()
	table := make(OperatorTable, 0, len(all))
	for _, d := range all {
		table = append(table, OperatorInfo{
			Tag:      d.Tag,
			Template: d.Template,
			Arity:    d.Arity.String(),
		})
	}
	return table
}
