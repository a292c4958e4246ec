// Package config loads translator settings from layered sources.
//
// Precedence, lowest to highest:
//  1. Defaults: Default()
//  2. Config file: optional YAML file
//  3. Environment: TAGFILTER_* variables
//
// Environment names map to keys by stripping the prefix and lowercasing;
// the first underscore after a section name becomes a dot:
//
//	TAGFILTER_IMPLICIT_TAG   -> implicit_tag
//	TAGFILTER_LOG_LEVEL      -> log.level
//	TAGFILTER_COLUMNS_AGE    -> columns.age
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/roach88/tagfilter/internal/condsql"
	"github.com/roach88/tagfilter/internal/translate"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TAGFILTER_"

// Config holds translator, serializer and logging settings.
type Config struct {
	// ImplicitTag is the operator policy for keys without a tag.
	ImplicitTag string `koanf:"implicit_tag" validate:"required,oneof=wildcard type eq"`

	// ListSeparator splits string values for in and between.
	ListSeparator string `koanf:"list_separator" validate:"required"`

	// QualifiedFields treats unknown suffixes as part of the field name.
	QualifiedFields bool `koanf:"qualified_fields"`

	// Columns renames fields in rendered expressions.
	Columns map[string]string `koanf:"columns"`

	Log LogConfig `koanf:"log"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=console json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ImplicitTag:     string(translate.ImplicitWildcard),
		ListSeparator:   translate.DefaultListSeparator,
		QualifiedFields: false,
		Columns:         map[string]string{},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and TAGFILTER_* environment variables, then validates it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// sections are the nested keys an environment name can address.
var sections = []string{"log", "columns"}

// envTransformFunc maps TAGFILTER_LOG_LEVEL to log.level.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	for _, s := range sections {
		if rest, ok := strings.CutPrefix(key, s+"_"); ok && rest != "" {
			return s + "." + rest
		}
	}
	return key
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report koanf key names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// describe renders one field error using the dotted key path.
func describe(fe validator.FieldError) string {
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", key, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", key, fe.Tag())
	}
}

// TranslateOptions returns translator options for this configuration.
func (c *Config) TranslateOptions(log *slog.Logger) translate.Options {
	return translate.Options{
		Implicit:        translate.ImplicitPolicy(c.ImplicitTag),
		ListSeparator:   c.ListSeparator,
		QualifiedFields: c.QualifiedFields,
		Logger:          log,
	}
}

// CompilerOptions returns serializer options for this configuration.
func (c *Config) CompilerOptions() *condsql.Options {
	columns := make(map[string]string, len(c.Columns))
	for k, v := range c.Columns {
		columns[k] = v
	}
	return &condsql.Options{ColumnMapping: columns}
}
