package settings

import (
	"context"
)

type runContextKey struct{}

// IntoContext stores the run settings in the context.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runContextKey{}, s)
}

// FromContext retrieves the run settings from the context.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runContextKey{}).(*Run)
	return s, ok && s != nil
}

// FromContextOrDefault returns the run settings stored in ctx, or the CLI
// defaults when none were stored.
func FromContextOrDefault(ctx context.Context) *Run {
	if s, ok := FromContext(ctx); ok {
		return s
	}
	return NewCliParams()
}
