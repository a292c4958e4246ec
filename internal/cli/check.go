package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tagfilter"
)

// CheckResult is the outcome for one file.
type CheckResult struct {
	Path         string `json:"path"`
	OK           bool   `json:"ok"`
	Conditions   int    `json:"conditions,omitempty"`
	Placeholders int    `json:"placeholders,omitempty"`
	Depth        int    `json:"depth,omitempty"`
	Code         string `json:"code,omitempty"`
	Message      string `json:"message,omitempty"`
}

// CheckReport summarizes a check run.
type CheckReport struct {
	Files  []CheckResult `json:"files"`
	Failed int           `json:"failed"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Check that filter files translate",
		Long: `Translate every given filter file and report all failures.

Unlike translate, check does not stop at the first bad file. It exits
with status 1 if any file failed.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args, cmd)
		},
	}
}

func runCheck(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	_, log := opts.settings()
	conv := opts.converter("")

	report := CheckReport{Files: make([]CheckResult, 0, len(paths))}
	for _, path := range paths {
		formatter.VerboseLog("Checking %s", path)
		res := checkFile(conv, path, cmd)
		if !res.OK {
			report.Failed++
			log.Warn("filter failed", "path", path, "code", res.Code)
		}
		report.Files = append(report.Files, res)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		outputCheckText(formatter, report)
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d file(s) failed", report.Failed, len(paths)))
	}
	return nil
}

// checkFile loads, translates and renders one file.
func checkFile(conv *tagfilter.Converter, path string, cmd *cobra.Command) CheckResult {
	fail := func(err error) CheckResult {
		msg := strings.TrimPrefix(errorMessage(err), path+": ")
		return CheckResult{Path: path, Code: MapErrorCode(err), Message: msg}
	}

	m, err := LoadFilter(path, cmd.InOrStdin())
	if err != nil {
		return fail(err)
	}
	tree, err := conv.Tree(m)
	if err != nil {
		return fail(err)
	}
	if _, _, err := conv.Compile(tree); err != nil {
		return fail(err)
	}

	stats := tagfilter.Validate(tree)
	return CheckResult{
		Path:         path,
		OK:           true,
		Conditions:   stats.Leaves,
		Placeholders: stats.Placeholders,
		Depth:        stats.Depth,
	}
}

func outputCheckText(formatter *OutputFormatter, report CheckReport) {
	w := formatter.Writer
	for _, res := range report.Files {
		if res.OK {
			fmt.Fprintf(w, "✓ %s: %d condition(s), %d param(s)\n", res.Path, res.Conditions, res.Placeholders)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n  %s: %s\n", res.Path, res.Code, res.Message)
	}
	fmt.Fprintf(w, "\n%d file(s) checked, %d failed\n", len(report.Files), report.Failed)
}
