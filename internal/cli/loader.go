package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/tagfilter/internal/condir"
	"github.com/roach88/tagfilter/internal/mapping"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// LoadError represents an error that occurred while loading a filter file.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFilter reads a filter mapping from path, or YAML from stdin when
// path is "-". The format follows the extension: .yaml, .yml and .json
// are decoded as YAML (JSON is a subset), .cue is compiled as CUE.
func LoadFilter(path string, stdin io.Reader) (*mapping.Mapping, error) {
	if path == StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading stdin: %v", err), Path: path, Err: err}
		}
		return decode(path, ".yaml", data)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json", ".cue":
	default:
		return nil, &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported file type %q (want .yaml, .yml, .json or .cue)", ext), Path: path}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: "file not found", Path: path, Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading file: %v", err), Path: path, Err: err}
	}
	return decode(path, ext, data)
}

func decode(path, ext string, data []byte) (*mapping.Mapping, error) {
	var (
		m   *mapping.Mapping
		err error
	)
	if ext == ".cue" {
		m, err = mapping.FromCUESource(path, data)
	} else {
		m, err = mapping.FromYAML(data)
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), Path: path, Err: err}
	}
	return m, nil
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // File not found
	ErrCodeReadFailed  = "E003" // File or stdin unreadable
	ErrCodeUnsupported = "E004" // Unsupported file extension
	ErrCodeParseFailed = "E005" // YAML/JSON/CUE decode failed
	ErrCodeConfig      = "E006" // Configuration invalid

	// Translation errors
	ErrCodeTooDeep         = "E010" // Nesting too deep or cyclic
	ErrCodeUnknownOperator = "E011" // Unknown operator tag
	ErrCodeArityMismatch   = "E012" // Value count does not fit operator
	ErrCodeEmptyGroup      = "E013" // Group without conditions
	ErrCodeInvalidField    = "E014" // Empty field name
)

// MapErrorCode maps a load or translation error to a CLI error code.
func MapErrorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}

	code, ok := condir.CodeOf(err)
	if !ok {
		return ErrCodeGeneric
	}
	switch code {
	case condir.ErrCodeTooDeep:
		return ErrCodeTooDeep
	case condir.ErrCodeUnknownOperator:
		return ErrCodeUnknownOperator
	case condir.ErrCodeArityMismatch:
		return ErrCodeArityMismatch
	case condir.ErrCodeEmptyGroup:
		return ErrCodeEmptyGroup
	case condir.ErrCodeInvalidField:
		return ErrCodeInvalidField
	default:
		return ErrCodeGeneric
	}
}

// errorMessage returns the message without the code prefix.
func errorMessage(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		if loadErr.Path != "" {
			return loadErr.Path + ": " + loadErr.Message
		}
		return loadErr.Message
	}
	var condErr *condir.Error
	if errors.As(err, &condErr) {
		return condErr.Message
	}
	return err.Error()
}

// errorDetails returns structured context for translation errors.
func errorDetails(err error) any {
	var condErr *condir.Error
	if !errors.As(err, &condErr) {
		return nil
	}
	details := map[string]any{"kind": string(condErr.Code)}
	if condErr.Field != "" {
		details["field"] = condErr.Field
	}
	if condErr.Tag != "" {
		details["tag"] = condErr.Tag
	}
	if condErr.Code == condir.ErrCodeTooDeep || condErr.Code == condir.ErrCodeEmptyGroup {
		details["depth"] = condErr.Depth
	}
	return details
}
