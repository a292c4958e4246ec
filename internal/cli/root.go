package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/tagfilter"
	"github.com/roach88/tagfilter/internal/config"
	"github.com/roach88/tagfilter/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config and Logger are filled by the root command before any
	// subcommand runs. Subcommands built on their own fall back to
	// defaults.
	Config *config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tagfilter CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tagfilter",
		Short: "Translate tag-annotated filters into SQL conditions",
		Long: `Translate tag-annotated filter mappings into parameterized SQL
filter expressions.

Keys name a field with an optional operator tag ("age.gt", "name.like");
the keys AND and OR group nested mappings. Values are never interpolated:
every value is bound through a "?" placeholder.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				msg := fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", msg)
				return NewExitError(ExitCommandError, msg)
			}

			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				_ = opts.formatter(cmd).Error(ErrCodeConfig, err.Error(), nil)
				return WrapExitError(ExitCommandError, ErrCodeConfig, err)
			}
			opts.Config = cfg

			level := cfg.Log.Level
			if opts.Verbose {
				level = "debug"
			}
			opts.Logger = logging.New(logging.Config{
				Level:  level,
				Format: cfg.Log.Format,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (YAML)")

	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewOpsCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// settings returns the loaded config and logger, or defaults.
func (o *RootOptions) settings() (*config.Config, *slog.Logger) {
	cfg := o.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := o.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return cfg, log
}

// converter builds a Converter from the loaded settings.
func (o *RootOptions) converter(implicit string) *tagfilter.Converter {
	cfg, log := o.settings()
	topts := cfg.TranslateOptions(log)
	if implicit != "" {
		topts.Implicit = tagfilter.ImplicitPolicy(implicit)
	}
	return tagfilter.NewConverter(tagfilter.Options{
		Implicit:        topts.Implicit,
		ListSeparator:   topts.ListSeparator,
		QualifiedFields: topts.QualifiedFields,
		ColumnMapping:   cfg.CompilerOptions().ColumnMapping,
		Logger:          topts.Logger,
	})
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}
