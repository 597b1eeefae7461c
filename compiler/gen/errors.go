package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrSetupFailed indicates a fatal failure before any model was processed.
	ErrSetupFailed = errors.New("mapgen: setup failed")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("mapgen: missing configuration")
	// ErrGenerationFailed indicates the generation of one model type failed.
	ErrGenerationFailed = errors.New("mapgen: code generation failed")
	// ErrDuplicateQuery is returned when a query name is added twice.
	ErrDuplicateQuery = errors.New("mapgen: duplicate query")
	// ErrInvalidMapping is returned for a mapping without column or property.
	ErrInvalidMapping = errors.New("mapgen: invalid mapping")
	// ErrFrozen is returned when frozen metadata is mutated.
	ErrFrozen = errors.New("mapgen: metadata is frozen")
	// ErrDuplicateMapper is returned when two types claim the same mapper name.
	ErrDuplicateMapper = errors.New("mapgen: duplicate mapper name")
	// ErrUnsupportedEngine indicates an unknown template engine or version.
	ErrUnsupportedEngine = errors.New("mapgen: unsupported template engine")
	// ErrUnknownEncoding indicates an output encoding that cannot be resolved.
	ErrUnknownEncoding = errors.New("mapgen: unknown encoding")
)

// Setup phases reported by SetupError and TeardownError.
const (
	PhaseConfig   = "config"
	PhaseTemplate = "template"
	PhaseWriter   = "writer"
	PhaseSidecar  = "sidecar"
	PhaseLog      = "log"
	PhaseDiscover = "discover"
)

// SetupError is a fatal error raised while preparing a run.
type SetupError struct {
	Phase string
	Cause error
}

// Error implements the error interface.
func (e *SetupError) Error() string {
	var b strings.Builder
	b.WriteString("mapgen: setup error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SetupError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SetupError.
func (e *SetupError) Is(target error) bool {
	return target == ErrSetupFailed
}

// NewSetupError creates a new SetupError.
func NewSetupError(phase string, cause error) *SetupError {
	return &SetupError{Phase: phase, Cause: cause}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("mapgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("mapgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError reports the failure of one model type. Handler is
// empty when the type failed before its handler chain started.
type GenerationError struct {
	Type    string
	Handler string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("mapgen: generation error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Handler != "" {
		b.WriteString(" (handler: ")
		b.WriteString(e.Handler)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(typ, handler string, cause error) *GenerationError {
	return &GenerationError{
		Type:    typ,
		Handler: handler,
		Cause:   cause,
	}
}

// TeardownError wraps a failure to release a component after a run.
// It is logged and reported, never returned.
type TeardownError struct {
	Phase string
	Cause error
}

// Error implements the error interface.
func (e *TeardownError) Error() string {
	return fmt.Sprintf("mapgen: teardown error in phase %s: %v", e.Phase, e.Cause)
}

// Unwrap returns the underlying error.
func (e *TeardownError) Unwrap() error {
	return e.Cause
}

// IsSetupError reports whether the error is a SetupError.
func IsSetupError(err error) bool {
	var setupErr *SetupError
	return errors.As(err, &setupErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
