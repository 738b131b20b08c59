package internal

import (
	"errors"
	"fmt"
)

// ValidationError is returned when a request is rejected locally, before
// anything is sent to the summarization service.
type ValidationError struct {
	Source Source
	Field  string // "query", "source", "format", "length", "template"
	Value  string
}

func (e *ValidationError) Error() string {
	if e.Field == "query" {
		switch e.Source {
		case SourceTopic:
			return "Please enter a topic."
		case SourceURL:
			return "Please enter a URL."
		case SourceText:
			return "Please enter some text."
		}
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// TransportError covers network failures, non-2xx responses and bodies that
// could not be decoded.
type TransportError struct {
	Source     Source
	StatusCode int    // 0 when no response was received
	Detail     string // server-provided "detail", if any
	RequestID  string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("transport error [%s]: %v", e.Source, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("transport error [%s]: status %d: %s", e.Source, e.StatusCode, e.Detail)
	default:
		return fmt.Sprintf("transport error [%s]: status %d", e.Source, e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// EmptyResultError is returned when the service answered successfully but
// without a usable summary.
type EmptyResultError struct {
	Source Source
	Query  string
}

func (e *EmptyResultError) Error() string {
	switch e.Source {
	case SourceTopic:
		return fmt.Sprintf("No summary found for topic %q.", e.Query)
	case SourceAggregator:
		return "No summary found for Hacker News."
	default:
		return fmt.Sprintf("No summary found for this %s.", e.Source)
	}
}

// StoreError represents a failed read or write against a persistence backend
type StoreError struct {
	Backend string // "sqlite", "redis", "memory"
	Op      string // "get", "set", "delete", "open"
	Key     string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s] %s %s: %v", e.Backend, e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ConfigError represents errors loading or validating configuration
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error [%s] %s: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("config error [%s]: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// UserMessage maps a flow error to the message shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	var emptyErr *EmptyResultError
	if errors.As(err, &emptyErr) {
		return emptyErr.Error()
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return fmt.Sprintf("Failed to generate %s summary.", transportErr.Source.Label())
	}

	return err.Error()
}
