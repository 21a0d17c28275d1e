// Package errors provides centralized error definitions and error handling utilities
// for the coordination engine. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - RuleError: errors related to rule definition, loading, and registration
//   - DispatchError: errors related to escalation dispatch and cycle guarding
//   - FeedError: errors related to the event feed spool
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - AlreadyExistsError: resource already exists
//   - ValidationError: invalid input or state
//   - TimeoutError: operation timed out
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewRuleError("rule has no actions", errors.ErrRuleInvalid)
//
//	// Semantic error
//	err := errors.NewNotFoundError("rules file", "/etc/pathfinder/rules.yaml")
//
//	// With context wrapping
//	err := errors.NewDispatchError("escalation rejected", baseErr).WithTripID("trip-7")
//
// Checking errors:
//
//	// Check for specific sentinel errors
//	if errors.Is(err, errors.ErrEscalationLimit) { ... }
//
//	// Check for error types
//	var ruleErr *errors.RuleError
//	if errors.As(err, &ruleErr) { ... }
//
//	// Use classification helpers
//	if errors.IsRetryable(err) { ... }
//	if errors.IsUserFacing(err) { ... }
//
// # Error Classification
//
// Errors can be classified by severity and behavior:
//   - Retryable: transient errors that may succeed on retry
//   - UserFacing: errors safe to display to users (vs internal errors)
//   - Severity: Debug, Info, Warning, Error, Critical
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Rule-related sentinel errors
var (
	// ErrRuleInvalid indicates that a rule definition is malformed.
	ErrRuleInvalid = New("rule is invalid")
	// ErrRuleNotFound indicates a rule name absent from the registry.
	ErrRuleNotFound = New("rule not found")
	// ErrRegistryEmpty indicates a lookup against a registry with no rules.
	ErrRegistryEmpty = New("rule registry is empty")
	// ErrUnknownComparator indicates a condition comparator that the evaluator
	// does not implement.
	ErrUnknownComparator = New("unknown comparator")
	// ErrUnknownActionKind indicates an action kind outside the supported verbs.
	ErrUnknownActionKind = New("unknown action kind")
	// ErrPatternUnmatched indicates an event-type pattern that expands to no
	// known event type.
	ErrPatternUnmatched = New("event pattern matches no known event type")
)

// Escalation-related sentinel errors
var (
	// ErrEscalationLimit indicates that a derived event exceeded the hop limit.
	ErrEscalationLimit = New("escalation hop limit exceeded")
	// ErrQueueFull indicates that the escalation queue is at capacity.
	ErrQueueFull = New("escalation queue full")
	// ErrServiceStopped indicates an operation against a stopped service.
	ErrServiceStopped = New("service is stopped")
	// ErrServiceRunning indicates a second Start on a running service.
	ErrServiceRunning = New("service already running")
)

// Feed-related sentinel errors
var (
	// ErrFeedClosed indicates an operation on a closed feed watcher.
	ErrFeedClosed = New("feed watcher closed")
)

// General sentinel errors
var (
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrOperationFailed indicates a general operation failure.
	ErrOperationFailed = New("operation failed")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// EngineError is the base interface for all coordination engine errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type EngineError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	// This is used by errors.Is() for error comparison.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// RuleError represents errors related to rule definition and loading.
//
// Example:
//
//	err := errors.NewRuleError("rule has no actions", errors.ErrRuleInvalid)
//	err = err.WithRule("welcome-family").WithEventType("family.joined")
//	fmt.Println(err) // "rule error [rule=welcome-family, event=family.joined]: rule has no actions: rule is invalid"
type RuleError struct {
	baseError
	RuleName  string
	EventType string
	Path      string
}

// NewRuleError creates a new RuleError.
func NewRuleError(message string, cause error) *RuleError {
	return &RuleError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithRule adds a rule name to the error context.
func (e *RuleError) WithRule(name string) *RuleError {
	e.RuleName = name
	return e
}

// WithEventType adds the trigger event type to the error context.
func (e *RuleError) WithEventType(eventType string) *RuleError {
	e.EventType = eventType
	return e
}

// WithPath adds the rules file path to the error context.
func (e *RuleError) WithPath(path string) *RuleError {
	e.Path = path
	return e
}

// WithSeverity sets the error severity.
func (e *RuleError) WithSeverity(s Severity) *RuleError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *RuleError) Error() string {
	var parts []string
	if e.RuleName != "" {
		parts = append(parts, fmt.Sprintf("rule=%s", e.RuleName))
	}
	if e.EventType != "" {
		parts = append(parts, fmt.Sprintf("event=%s", e.EventType))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("file=%s", e.Path))
	}

	prefix := "rule error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("rule error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *RuleError) Is(target error) bool {
	if _, ok := target.(*RuleError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// DispatchError represents errors related to escalation dispatch.
//
// Example:
//
//	err := errors.NewDispatchError("escalation cycle aborted", errors.ErrEscalationLimit)
//	err = err.WithTripID("trip-7").WithHops(2)
type DispatchError struct {
	baseError
	TripID  string
	EventID string
	Hops    int
}

// NewDispatchError creates a new DispatchError.
func NewDispatchError(message string, cause error) *DispatchError {
	return &DispatchError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		Hops: -1, // -1 indicates not set
	}
}

// WithTripID adds a trip ID to the error context.
func (e *DispatchError) WithTripID(id string) *DispatchError {
	e.TripID = id
	return e
}

// WithEventID adds the derived event ID to the error context.
func (e *DispatchError) WithEventID(id string) *DispatchError {
	e.EventID = id
	return e
}

// WithHops adds the hop count to the error context.
func (e *DispatchError) WithHops(hops int) *DispatchError {
	e.Hops = hops
	return e
}

// WithSeverity sets the error severity.
func (e *DispatchError) WithSeverity(s Severity) *DispatchError {
	e.severity = s
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *DispatchError) WithRetryable(r bool) *DispatchError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *DispatchError) Error() string {
	var parts []string
	if e.TripID != "" {
		parts = append(parts, fmt.Sprintf("trip=%s", e.TripID))
	}
	if e.EventID != "" {
		parts = append(parts, fmt.Sprintf("event=%s", e.EventID))
	}
	if e.Hops >= 0 {
		parts = append(parts, fmt.Sprintf("hops=%d", e.Hops))
	}

	prefix := "dispatch error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("dispatch error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *DispatchError) Is(target error) bool {
	if _, ok := target.(*DispatchError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// FeedError represents errors related to the event feed spool.
//
// Example:
//
//	err := errors.NewFeedError("decode record", cause).WithPath("events.jsonl").WithLine(12)
type FeedError struct {
	baseError
	Path string
	Line int
}

// NewFeedError creates a new FeedError.
func NewFeedError(message string, cause error) *FeedError {
	return &FeedError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: false,
		},
		Line: -1, // -1 indicates not set
	}
}

// WithPath adds the spool path to the error context.
func (e *FeedError) WithPath(path string) *FeedError {
	e.Path = path
	return e
}

// WithLine adds the one-based spool line number to the error context.
func (e *FeedError) WithLine(line int) *FeedError {
	e.Line = line
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *FeedError) WithRetryable(r bool) *FeedError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *FeedError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Line >= 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}

	prefix := "feed error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("feed error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *FeedError) Is(target error) bool {
	if _, ok := target.(*FeedError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("rules file", "/etc/pathfinder/rules.yaml")
//	fmt.Println(err) // "rules file '/etc/pathfinder/rules.yaml' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AlreadyExistsError represents a resource that already exists.
//
// Example:
//
//	err := errors.NewAlreadyExistsError("rule", "welcome-family")
//	fmt.Println(err) // "rule 'welcome-family' already exists"
type AlreadyExistsError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(resourceType, resourceID string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' already exists", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *AlreadyExistsError) WithCause(cause error) *AlreadyExistsError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *AlreadyExistsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' already exists: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' already exists", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("trip ID cannot be empty")
//	err = err.WithField("trip_id").WithValue("")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an operation that timed out.
//
// Example:
//
//	err := errors.NewTimeoutError("waiting for notifier", 5*time.Second)
//	fmt.Println(err) // "timeout error: waiting for notifier (timeout: 5s)"
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true, // Timeouts are generally retryable
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// WithRetryable sets whether the error is retryable (default true for timeouts).
func (e *TimeoutError) WithRetryable(r bool) *TimeoutError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry. This checks for:
//   - Errors implementing EngineError with IsRetryable() returning true
//   - TimeoutError instances
//   - Errors wrapping ErrTimeout
//
// Example:
//
//	if errors.IsRetryable(err) {
//	    time.Sleep(backoff)
//	    return retry(operation)
//	}
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Check if error implements EngineError
	var engineErr EngineError
	if As(err, &engineErr) {
		return engineErr.IsRetryable()
	}

	// Check for known retryable sentinel errors
	if Is(err, ErrTimeout) {
		return true
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to end users.
// This checks for:
//   - Errors implementing EngineError with IsUserFacing() returning true
//   - Semantic errors (NotFoundError, AlreadyExistsError, ValidationError, TimeoutError)
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    displayToUser(err.Error())
//	} else {
//	    displayToUser("An internal error occurred")
//	    log.Error("internal error", "err", err)
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	// Check if error implements EngineError
	var engineErr EngineError
	if As(err, &engineErr) {
		return engineErr.IsUserFacing()
	}

	// Semantic errors are always user-facing
	var notFound *NotFoundError
	var alreadyExists *AlreadyExistsError
	var validation *ValidationError
	var timeout *TimeoutError

	if As(err, &notFound) || As(err, &alreadyExists) ||
		As(err, &validation) || As(err, &timeout) {
		return true
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement EngineError.
//
// Example:
//
//	switch errors.GetSeverity(err) {
//	case errors.SeverityCritical:
//	    alertOnCall(err)
//	case errors.SeverityError:
//	    log.Error("error occurred", "err", err)
//	case errors.SeverityWarning:
//	    log.Warn("warning", "err", err)
//	}
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	// Check if error implements EngineError
	var engineErr EngineError
	if As(err, &engineErr) {
		return engineErr.Severity()
	}

	// Default to Error severity for unknown errors
	return SeverityError
}

// IsDomainError returns true if the error is a domain-specific error
// (RuleError, DispatchError, or FeedError).
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}

	var ruleErr *RuleError
	var dispatchErr *DispatchError
	var feedErr *FeedError

	return As(err, &ruleErr) || As(err, &dispatchErr) || As(err, &feedErr)
}

// IsSemanticError returns true if the error is a semantic error
// (NotFoundError, AlreadyExistsError, ValidationError, or TimeoutError).
func IsSemanticError(err error) bool {
	if err == nil {
		return false
	}

	var notFound *NotFoundError
	var alreadyExists *AlreadyExistsError
	var validation *ValidationError
	var timeout *TimeoutError

	return As(err, &notFound) || As(err, &alreadyExists) ||
		As(err, &validation) || As(err, &timeout)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this preserves the EngineError interface.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to load rules")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to process event %s", eventID)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
