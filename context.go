package permkit

import (
	"context"
)

// Context keys for permkit values.
type contextKey string

const (
	contextKeySubject contextKey = "permkit:subject"
	contextKeyChecker contextKey = "permkit:checker"
)

// WithSubject adds the authenticated subject to the context. Authentication
// middleware typically sets this; the permkit middleware reads it.
func WithSubject(ctx context.Context, subject Subject) context.Context {
	return context.WithValue(ctx, contextKeySubject, subject)
}

// SubjectFromContext retrieves the subject from context. Returns nil if
// not set.
func SubjectFromContext(ctx context.Context) Subject {
	if v := ctx.Value(contextKeySubject); v != nil {
		if s, ok := v.(Subject); ok {
			return s
		}
	}
	return nil
}

// WithChecker adds a Checker to the context. This is set by middleware and
// retrieved in handlers.
func WithChecker(ctx context.Context, checker *Checker) context.Context {
	return context.WithValue(ctx, contextKeyChecker, checker)
}

// CheckerFromContext retrieves the Checker from context. Returns nil if
// not set.
func CheckerFromContext(ctx context.Context) *Checker {
	if v := ctx.Value(contextKeyChecker); v != nil {
		if c, ok := v.(*Checker); ok {
			return c
		}
	}
	return nil
}

// FromContext retrieves the Checker from context. Alias for
// CheckerFromContext for convenience.
func FromContext(ctx context.Context) *Checker {
	return CheckerFromContext(ctx)
}
