package profile

import "go.uber.org/zap"

// Policy decides which class ranges the profiler follows
type Policy int

const (
	// Unconditional keeps every class reachable from the roots.
	Unconditional Policy = iota
	// PruneOptional stops at optional slots whose range is a class outside
	// the root set, replacing the range with the placeholder type.
	PruneOptional
)

// String returns the string representation of the policy
func (p Policy) String() string {
	switch p {
	case Unconditional:
		return "unconditional"
	case PruneOptional:
		return "prune-optional"
	default:
		return "unknown"
	}
}

// Option configures a Profiler
type Option func(*Profiler)

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPolicy sets the range-following policy
func WithPolicy(policy Policy) Option {
	return func(p *Profiler) { p.policy = policy }
}

// WithFixDoc collapses whitespace runs in the descriptions of kept elements
func WithFixDoc(fix bool) Option {
	return func(p *Profiler) { p.fixDoc = fix }
}

// WithRename renames the attributes of kept classes to snake_case, using
// overrides for explicit names.
func WithRename(overrides map[string]string) Option {
	return func(p *Profiler) {
		p.rename = true
		p.overrides = overrides
	}
}

// WithStrict makes Profile fail when any root is skipped
func WithStrict(strict bool) Option {
	return func(p *Profiler) { p.strict = strict }
}
