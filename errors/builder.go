package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder assembles an error with hints, safe context and an exit code.
type ErrorBuilder struct {
	err       error
	hints     []string
	context   map[string]interface{}
	exitCode  *int
	sentinels []error
}

// Build starts an ErrorBuilder from err.
func Build(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithCause wraps a lower-level cause under the builder's error.
// The message reads "<error>: <cause>" and both stay reachable through errors.Is.
func (b *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	if cause == nil || b.err == nil {
		return b
	}
	b.err = fmt.Errorf("%w: %w", b.err, cause)
	return b
}

// WithHint adds a user-facing hint.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hints = append(b.hints, hint)
	return b
}

// WithHintf adds a formatted user-facing hint.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.hints = append(b.hints, fmt.Sprintf(format, args...))
	return b
}

// WithExplanation attaches a longer description of what went wrong.
func (b *ErrorBuilder) WithExplanation(explanation string) *ErrorBuilder {
	b.err = errors.WithDetail(b.err, explanation)
	return b
}

// WithExplanationf attaches a formatted explanation.
func (b *ErrorBuilder) WithExplanationf(format string, args ...interface{}) *ErrorBuilder {
	return b.WithExplanation(fmt.Sprintf(format, args...))
}

// WithContext adds structured context. Values must not contain secrets;
// they are shown in verbose output.
func (b *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	if b.context == nil {
		b.context = make(map[string]interface{})
	}
	b.context[key] = value
	return b
}

// WithExitCode attaches an exit code to the error.
func (b *ErrorBuilder) WithExitCode(code int) *ErrorBuilder {
	b.exitCode = &code
	return b
}

// WithSentinel classifies the error under sentinel. Both the standard library
// and cockroachdb errors.Is match it; the message is unchanged.
func (b *ErrorBuilder) WithSentinel(sentinel error) *ErrorBuilder {
	b.sentinels = append(b.sentinels, sentinel)
	return b
}

// Err returns the assembled error.
func (b *ErrorBuilder) Err() error {
	if b.err == nil {
		return nil
	}

	err := b.err

	for _, hint := range b.hints {
		err = errors.WithHint(err, hint)
	}

	if len(b.context) > 0 {
		keys := make([]string, 0, len(b.context))
		for k := range b.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		// Rendered as "user_pool=... username=...".
		var formatParts []string
		var safeValues []interface{}

		for _, key := range keys {
			formatParts = append(formatParts, key+"=%s")
			safeValues = append(safeValues, errors.Safe(b.context[key]))
		}

		err = errors.WithSafeDetails(err, strings.Join(formatParts, " "), safeValues...)
	}

	if len(b.sentinels) > 0 {
		err = &sentinelError{cause: err, sentinels: b.sentinels}
	}

	if b.exitCode != nil {
		err = WithExitCode(err, *b.exitCode)
	}

	return err
}

// sentinelError matches its sentinels through Is while keeping the message and
// the unwrap chain of cause.
type sentinelError struct {
	cause     error
	sentinels []error
}

func (e *sentinelError) Error() string {
	return e.cause.Error()
}

func (e *sentinelError) Cause() error {
	return e.cause
}

func (e *sentinelError) Unwrap() error {
	return e.cause
}

func (e *sentinelError) Is(target error) bool {
	for _, sentinel := range e.sentinels {
		if errors.Is(sentinel, target) {
			return true
		}
	}
	return false
}
