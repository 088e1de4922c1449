// Package errors provides standardized error handling for the tensorbored
// build tools. It implements structured error types with proper wrapping and
// classification following Go 1.20+ error handling best practices.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// Schema-related errors
	ErrSchemaNotFound = errors.New("schema file not found")
	ErrCompileFailed  = errors.New("schema compilation failed")

	// Plugin-related errors
	ErrPluginNotFound = errors.New("generator plugin not found")
	ErrPluginFailed   = errors.New("generator plugin failed")

	// System-related errors
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrFilesystemFailed = errors.New("filesystem operation failed")
)

// CompileError represents an error raised while compiling schema files
type CompileError struct {
	Schema    string
	Operation string
	Err       error
}

func (e *CompileError) Error() string {
	if e.Schema != "" {
		return fmt.Sprintf("schema %s: operation %s: %v", e.Schema, e.Operation, e.Err)
	}
	return fmt.Sprintf("schema compilation: operation %s: %v", e.Operation, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// PluginError represents an error from a code-generator plugin invocation
type PluginError struct {
	Plugin    string
	Operation string
	Err       error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s: operation %s: %v", e.Plugin, e.Operation, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

// FilesystemError represents an error related to filesystem operations
type FilesystemError struct {
	Path      string
	Operation string
	Err       error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem %s: operation %s: %v", e.Path, e.Operation, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Component string
	Field     string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config %s.%s: %v", e.Component, e.Field, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Component, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Error wrapping constructors
func WrapCompileError(schema, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &CompileError{Schema: schema, Operation: operation, Err: err}
}

func WrapPluginError(plugin, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &PluginError{Plugin: plugin, Operation: operation, Err: err}
}

func WrapFilesystemError(path, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &FilesystemError{Path: path, Operation: operation, Err: err}
}

func WrapConfigError(component, field string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Component: component, Field: field, Err: err}
}

// Error classification functions
func IsCompileError(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce)
}

func IsPluginError(err error) bool {
	var pe *PluginError
	return errors.As(err, &pe)
}

func IsFilesystemError(err error) bool {
	var fe *FilesystemError
	return errors.As(err, &fe)
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSchemaNotFound) ||
		errors.Is(err, ErrPluginNotFound)
}

// Error extraction helpers
func GetSchema(err error) (string, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Schema, true
	}
	return "", false
}

func GetPlugin(err error) (string, bool) {
	var pe *PluginError
	if errors.As(err, &pe) {
		return pe.Plugin, true
	}
	return "", false
}

// Convenience functions for common error patterns
func NewSchemaNotFoundError(schema string) error {
	return WrapCompileError(schema, "resolve", ErrSchemaNotFound)
}

func NewPluginNotFoundError(plugin string) error {
	return WrapPluginError(plugin, "lookup", ErrPluginNotFound)
}

func NewFilesystemError(path, operation string, err error) error {
	return WrapFilesystemError(path, operation, fmt.Errorf("%w: %v", ErrFilesystemFailed, err))
}

func NewConfigError(component, field string, err error) error {
	return WrapConfigError(component, field, fmt.Errorf("%w: %v", ErrInvalidConfig, err))
}

// Context-aware error handling
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
