package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// RuleError Tests
// -----------------------------------------------------------------------------

func TestNewRuleError(t *testing.T) {
	cause := ErrRuleInvalid
	err := NewRuleError("rule has no actions", cause)

	if err.message != "rule has no actions" {
		t.Errorf("message = %q, want %q", err.message, "rule has no actions")
	}
	if err.cause != cause {
		t.Errorf("cause = %v, want %v", err.cause, cause)
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestRuleError_WithMethods(t *testing.T) {
	err := NewRuleError("test", nil).
		WithRule("welcome-family").
		WithEventType("family.joined").
		WithPath("rules.yaml").
		WithSeverity(SeverityCritical)

	if err.RuleName != "welcome-family" {
		t.Errorf("RuleName = %q, want %q", err.RuleName, "welcome-family")
	}
	if err.EventType != "family.joined" {
		t.Errorf("EventType = %q, want %q", err.EventType, "family.joined")
	}
	if err.Path != "rules.yaml" {
		t.Errorf("Path = %q, want %q", err.Path, "rules.yaml")
	}
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

func TestRuleError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *RuleError
		want string
	}{
		{
			name: "basic error",
			err:  NewRuleError("test error", nil),
			want: "rule error: test error",
		},
		{
			name: "with cause",
			err:  NewRuleError("test error", ErrRuleInvalid),
			want: "rule error: test error: rule is invalid",
		},
		{
			name: "with rule name",
			err:  NewRuleError("test error", nil).WithRule("escalate-conflict"),
			want: "rule error [rule=escalate-conflict]: test error",
		},
		{
			name: "with all fields",
			err:  NewRuleError("bad comparator", ErrUnknownComparator).WithRule("r1").WithEventType("conflict.detected").WithPath("rules.yaml"),
			want: "rule error [rule=r1, event=conflict.detected, file=rules.yaml]: bad comparator: unknown comparator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuleError_Is(t *testing.T) {
	err := NewRuleError("test", ErrRuleInvalid).WithRule("r1")

	// Should match RuleError type
	if !Is(err, &RuleError{}) {
		t.Error("Is(RuleError{}) = false, want true")
	}

	// Should match wrapped sentinel error
	if !Is(err, ErrRuleInvalid) {
		t.Error("Is(ErrRuleInvalid) = false, want true")
	}

	// Should not match unrelated errors
	if Is(err, ErrEscalationLimit) {
		t.Error("Is(ErrEscalationLimit) = true, want false")
	}
}

func TestRuleError_Unwrap(t *testing.T) {
	cause := ErrUnknownComparator
	err := NewRuleError("test", cause)

	if unwrapped := Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

// -----------------------------------------------------------------------------
// DispatchError Tests
// -----------------------------------------------------------------------------

func TestNewDispatchError(t *testing.T) {
	cause := ErrEscalationLimit
	err := NewDispatchError("escalation cycle aborted", cause)

	if err.message != "escalation cycle aborted" {
		t.Errorf("message = %q, want %q", err.message, "escalation cycle aborted")
	}
	if err.cause != cause {
		t.Errorf("cause = %v, want %v", err.cause, cause)
	}
	if err.Hops != -1 {
		t.Errorf("Hops = %d, want -1", err.Hops)
	}
}

func TestDispatchError_WithMethods(t *testing.T) {
	err := NewDispatchError("test", nil).
		WithTripID("trip-7").
		WithEventID("evt-1").
		WithHops(2).
		WithSeverity(SeverityCritical).
		WithRetryable(true)

	if err.TripID != "trip-7" {
		t.Errorf("TripID = %q, want %q", err.TripID, "trip-7")
	}
	if err.EventID != "evt-1" {
		t.Errorf("EventID = %q, want %q", err.EventID, "evt-1")
	}
	if err.Hops != 2 {
		t.Errorf("Hops = %d, want 2", err.Hops)
	}
	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}
}

func TestDispatchError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *DispatchError
		want string
	}{
		{
			name: "basic error",
			err:  NewDispatchError("test error", nil),
			want: "dispatch error: test error",
		},
		{
			name: "with trip ID",
			err:  NewDispatchError("test error", nil).WithTripID("trip-1"),
			want: "dispatch error [trip=trip-1]: test error",
		},
		{
			name: "with all fields",
			err:  NewDispatchError("cycle aborted", ErrEscalationLimit).WithTripID("trip-1").WithEventID("evt-9").WithHops(2),
			want: "dispatch error [trip=trip-1, event=evt-9, hops=2]: cycle aborted: escalation hop limit exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDispatchError_Is(t *testing.T) {
	err := NewDispatchError("test", ErrQueueFull)

	if !Is(err, &DispatchError{}) {
		t.Error("Is(DispatchError{}) = false, want true")
	}
	if !Is(err, ErrQueueFull) {
		t.Error("Is(ErrQueueFull) = false, want true")
	}
	if Is(err, &RuleError{}) {
		t.Error("Is(RuleError{}) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// FeedError Tests
// -----------------------------------------------------------------------------

func TestNewFeedError(t *testing.T) {
	cause := ErrFeedClosed
	err := NewFeedError("read spool", cause)

	if err.message != "read spool" {
		t.Errorf("message = %q, want %q", err.message, "read spool")
	}
	if err.Line != -1 {
		t.Errorf("Line = %d, want -1", err.Line)
	}
	if err.IsUserFacing() {
		t.Error("IsUserFacing() = true, want false")
	}
}

func TestFeedError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *FeedError
		want string
	}{
		{
			name: "basic error",
			err:  NewFeedError("test error", nil),
			want: "feed error: test error",
		},
		{
			name: "with path and line",
			err:  NewFeedError("decode record", ErrInvalidInput).WithPath("events.jsonl").WithLine(12),
			want: "feed error [path=events.jsonl, line=12]: decode record: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeedError_Is(t *testing.T) {
	err := NewFeedError("test", ErrFeedClosed)

	if !Is(err, &FeedError{}) {
		t.Error("Is(FeedError{}) = false, want true")
	}
	if !Is(err, ErrFeedClosed) {
		t.Error("Is(ErrFeedClosed) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// NotFoundError Tests
// -----------------------------------------------------------------------------

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("rules file", "rules.yaml")

	if err.ResourceType != "rules file" {
		t.Errorf("ResourceType = %q, want %q", err.ResourceType, "rules file")
	}
	if err.ResourceID != "rules.yaml" {
		t.Errorf("ResourceID = %q, want %q", err.ResourceID, "rules.yaml")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestNotFoundError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *NotFoundError
		want string
	}{
		{
			name: "basic error",
			err:  NewNotFoundError("trip", "trip-1"),
			want: "trip 'trip-1' not found",
		},
		{
			name: "with cause",
			err:  NewNotFoundError("spool", "/path").WithCause(fmt.Errorf("IO error")),
			want: "spool '/path' not found: IO error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotFoundError_Is(t *testing.T) {
	err := NewNotFoundError("trip", "trip-1")

	if !Is(err, &NotFoundError{}) {
		t.Error("Is(NotFoundError{}) = false, want true")
	}
	// NotFoundError does not wrap sentinel errors by default
	if Is(err, ErrRuleInvalid) {
		t.Error("Is(ErrRuleInvalid) = true, want false (not wrapped)")
	}
}

// -----------------------------------------------------------------------------
// AlreadyExistsError Tests
// -----------------------------------------------------------------------------

func TestNewAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("rule", "welcome-family")

	if err.ResourceType != "rule" {
		t.Errorf("ResourceType = %q, want %q", err.ResourceType, "rule")
	}
	if err.ResourceID != "welcome-family" {
		t.Errorf("ResourceID = %q, want %q", err.ResourceID, "welcome-family")
	}
}

func TestAlreadyExistsError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AlreadyExistsError
		want string
	}{
		{
			name: "basic error",
			err:  NewAlreadyExistsError("rule", "welcome-family"),
			want: "rule 'welcome-family' already exists",
		},
		{
			name: "with cause",
			err:  NewAlreadyExistsError("file", "test.txt").WithCause(fmt.Errorf("disk error")),
			want: "file 'test.txt' already exists: disk error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlreadyExistsError_Is(t *testing.T) {
	err := NewAlreadyExistsError("rule", "welcome-family")

	if !Is(err, &AlreadyExistsError{}) {
		t.Error("Is(AlreadyExistsError{}) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("trip ID cannot be empty")

	if err.message != "trip ID cannot be empty" {
		t.Errorf("message = %q, want %q", err.message, "trip ID cannot be empty")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestValidationError_WithMethods(t *testing.T) {
	err := NewValidationError("invalid value").
		WithField("trip_id").
		WithValue("").
		WithCause(fmt.Errorf("must not be empty"))

	if err.Field != "trip_id" {
		t.Errorf("Field = %q, want %q", err.Field, "trip_id")
	}
	if err.Value != "" {
		t.Errorf("Value = %v, want empty string", err.Value)
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "basic error",
			err:  NewValidationError("invalid input"),
			want: "validation error: invalid input",
		},
		{
			name: "with field",
			err:  NewValidationError("cannot be empty").WithField("trip_id"),
			want: "validation error [field=trip_id]: cannot be empty",
		},
		{
			name: "with field and value",
			err:  NewValidationError("must be positive").WithField("hop_limit").WithValue(-1),
			want: "validation error [field=hop_limit, value=-1]: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("test")

	if !Is(err, &ValidationError{}) {
		t.Error("Is(ValidationError{}) = false, want true")
	}
	// ValidationError should match ErrInvalidInput
	if !Is(err, ErrInvalidInput) {
		t.Error("Is(ErrInvalidInput) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// TimeoutError Tests
// -----------------------------------------------------------------------------

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("waiting for notifier", 5*time.Second)

	if err.Operation != "waiting for notifier" {
		t.Errorf("Operation = %q, want %q", err.Operation, "waiting for notifier")
	}
	if err.Duration != 5*time.Second {
		t.Errorf("Duration = %v, want %v", err.Duration, 5*time.Second)
	}
	// Timeouts are retryable by default
	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}
}

func TestTimeoutError_WithMethods(t *testing.T) {
	err := NewTimeoutError("test", time.Second).
		WithCause(fmt.Errorf("context deadline exceeded")).
		WithRetryable(false)

	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
}

func TestTimeoutError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *TimeoutError
		want string
	}{
		{
			name: "basic error",
			err:  NewTimeoutError("waiting for escalator", 5*time.Second),
			want: "timeout error: waiting for escalator (timeout: 5s)",
		},
		{
			name: "with cause",
			err:  NewTimeoutError("notifying", time.Minute).WithCause(fmt.Errorf("network unreachable")),
			want: "timeout error: notifying (timeout: 1m0s): network unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeoutError_Is(t *testing.T) {
	err := NewTimeoutError("test", time.Second)

	if !Is(err, &TimeoutError{}) {
		t.Error("Is(TimeoutError{}) = false, want true")
	}
	// TimeoutError should match ErrTimeout
	if !Is(err, ErrTimeout) {
		t.Error("Is(ErrTimeout) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// Classification Helper Tests
// -----------------------------------------------------------------------------

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "timeout error",
			err:  NewTimeoutError("test", time.Second),
			want: true,
		},
		{
			name: "rule error not retryable",
			err:  NewRuleError("test", nil),
			want: false,
		},
		{
			name: "dispatch error set retryable",
			err:  NewDispatchError("test", nil).WithRetryable(true),
			want: true,
		},
		{
			name: "wrapped timeout sentinel",
			err:  fmt.Errorf("operation failed: %w", ErrTimeout),
			want: true,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "rule error",
			err:  NewRuleError("test", nil),
			want: true,
		},
		{
			name: "feed error is internal",
			err:  NewFeedError("test", nil),
			want: false,
		},
		{
			name: "not found error",
			err:  NewNotFoundError("trip", "trip-1"),
			want: true,
		},
		{
			name: "validation error",
			err:  NewValidationError("invalid input"),
			want: true,
		},
		{
			name: "timeout error",
			err:  NewTimeoutError("waiting", time.Second),
			want: true,
		},
		{
			name: "standard error",
			err:  errors.New("internal error"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{
			name: "nil error",
			err:  nil,
			want: SeverityDebug,
		},
		{
			name: "rule error default",
			err:  NewRuleError("test", nil),
			want: SeverityError,
		},
		{
			name: "rule error critical",
			err:  NewRuleError("test", nil).WithSeverity(SeverityCritical),
			want: SeverityCritical,
		},
		{
			name: "dispatch error default",
			err:  NewDispatchError("test", nil),
			want: SeverityWarning,
		},
		{
			name: "not found error",
			err:  NewNotFoundError("trip", "trip-1"),
			want: SeverityWarning,
		},
		{
			name: "standard error",
			err:  errors.New("standard"),
			want: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSeverity(tt.err); got != tt.want {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "rule error",
			err:  NewRuleError("test", nil),
			want: true,
		},
		{
			name: "dispatch error",
			err:  NewDispatchError("test", nil),
			want: true,
		},
		{
			name: "feed error",
			err:  NewFeedError("test", nil),
			want: true,
		},
		{
			name: "not found error (semantic)",
			err:  NewNotFoundError("trip", "trip-1"),
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("test"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDomainError(tt.err); got != tt.want {
				t.Errorf("IsDomainError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSemanticError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "not found error",
			err:  NewNotFoundError("trip", "trip-1"),
			want: true,
		},
		{
			name: "already exists error",
			err:  NewAlreadyExistsError("rule", "r1"),
			want: true,
		},
		{
			name: "validation error",
			err:  NewValidationError("invalid"),
			want: true,
		},
		{
			name: "timeout error",
			err:  NewTimeoutError("waiting", time.Second),
			want: true,
		},
		{
			name: "rule error (domain)",
			err:  NewRuleError("test", nil),
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("test"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSemanticError(tt.err); got != tt.want {
				t.Errorf("IsSemanticError() = %v, want %v", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Wrap/Wrapf Tests
// -----------------------------------------------------------------------------

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		want    string
	}{
		{
			name:    "nil error",
			err:     nil,
			message: "context",
			want:    "",
		},
		{
			name:    "wrap standard error",
			err:     errors.New("base error"),
			message: "failed to process",
			want:    "failed to process: base error",
		},
		{
			name:    "wrap rule error",
			err:     NewRuleError("rule failed", nil),
			message: "load failed",
			want:    "load failed: rule error: rule failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.err == nil {
				if got != nil {
					t.Errorf("Wrap(nil) = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.want {
				t.Errorf("Wrap().Error() = %q, want %q", got.Error(), tt.want)
			}
		})
	}
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")
	err := Wrapf(baseErr, "failed to process event %s", "evt-1")

	want := "failed to process event evt-1: base error"
	if err.Error() != want {
		t.Errorf("Wrapf().Error() = %q, want %q", err.Error(), want)
	}

	// Wrapf with nil should return nil
	if got := Wrapf(nil, "test"); got != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", got)
	}
}

// -----------------------------------------------------------------------------
// Re-exported Functions Tests
// -----------------------------------------------------------------------------

func TestReexportedFunctions(t *testing.T) {
	// Test that re-exported functions work correctly
	baseErr := New("base error")
	wrappedErr := fmt.Errorf("wrapped: %w", baseErr)

	// Test Is
	if !Is(wrappedErr, baseErr) {
		t.Error("Is() should return true for wrapped error")
	}

	// Test Unwrap
	if Unwrap(wrappedErr) == nil {
		t.Error("Unwrap() should return the base error")
	}

	// Test As
	var ruleErr *RuleError
	testErr := NewRuleError("test", nil)
	if !As(testErr, &ruleErr) {
		t.Error("As() should extract RuleError")
	}

	// Test Join
	err1 := New("error 1")
	err2 := New("error 2")
	joined := Join(err1, err2)
	if !Is(joined, err1) || !Is(joined, err2) {
		t.Error("Join() should combine errors")
	}
}

// -----------------------------------------------------------------------------
// Error Chain Tests
// -----------------------------------------------------------------------------

func TestErrorChain(t *testing.T) {
	// Create a chain of errors
	baseErr := ErrEscalationLimit
	dispatchErr := NewDispatchError("cycle aborted", baseErr).WithTripID("trip-7")
	wrappedErr := Wrap(dispatchErr, "dispatch failed")

	// Should be able to find all errors in the chain
	if !Is(wrappedErr, ErrEscalationLimit) {
		t.Error("Should find ErrEscalationLimit in chain")
	}

	var extracted *DispatchError
	if !As(wrappedErr, &extracted) {
		t.Error("Should extract DispatchError from chain")
	}
	if extracted.TripID != "trip-7" {
		t.Errorf("TripID = %q, want %q", extracted.TripID, "trip-7")
	}
}

// -----------------------------------------------------------------------------
// Sentinel Error Tests
// -----------------------------------------------------------------------------

func TestSentinelErrors(t *testing.T) {
	// Verify all sentinel errors are distinct
	sentinels := []error{
		ErrRuleInvalid,
		ErrUnknownComparator,
		ErrUnknownActionKind,
		ErrPatternUnmatched,
		ErrEscalationLimit,
		ErrQueueFull,
		ErrServiceStopped,
		ErrServiceRunning,
		ErrFeedClosed,
		ErrTimeout,
		ErrCanceled,
		ErrInvalidInput,
		ErrOperationFailed,
	}

	// Check that each sentinel is distinct from all others
	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && Is(err1, err2) {
				t.Errorf("Sentinel error %v should not match %v", err1, err2)
			}
		}
	}
}
