package coordination

import (
	"time"

	"github.com/vedprakash-m/pathfinder-sub008/internal/action"
)

// svcConfig holds optional configuration for a Service.
type svcConfig struct {
	hopLimit      *int
	queueCapacity int
	actionTimeout time.Duration
	advisor       action.Advisor
}

// Option configures a Service.
type Option func(*svcConfig)

// WithHopLimit sets the maximum escalation depth the dispatcher accepts.
// A limit of 0 refuses every escalation; negative values keep the
// default.
func WithHopLimit(n int) Option {
	return func(c *svcConfig) {
		if n >= 0 {
			c.hopLimit = &n
		}
	}
}

// WithQueueCapacity sets the escalation queue bound.
// A value of 0 or less keeps the default.
func WithQueueCapacity(n int) Option {
	return func(c *svcConfig) {
		if n > 0 {
			c.queueCapacity = n
		}
	}
}

// WithActionTimeout caps each collaborator call made by the executor and
// the dispatcher. A value of 0 or less keeps the default.
func WithActionTimeout(d time.Duration) Option {
	return func(c *svcConfig) {
		if d > 0 {
			c.actionTimeout = d
		}
	}
}

// WithAdvisor replaces the default payload-fed advisor as the source of
// schedule suggestions. If nil, the default is kept.
func WithAdvisor(a action.Advisor) Option {
	return func(c *svcConfig) {
		if a != nil {
			c.advisor = a
		}
	}
}
