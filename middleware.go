package permkit

import (
	"net/http"
)

// SubjectExtractor resolves the Subject for an HTTP request. Extractors
// usually read identity placed in the request context by an upstream
// authentication middleware.
type SubjectExtractor func(*http.Request) (Subject, error)

// Middleware provides HTTP middleware for permission checking. It is
// router-agnostic; the returned wrappers are plain
// func(http.Handler) http.Handler.
type Middleware struct {
	service      *Service
	getSubject   SubjectExtractor
	errorHandler func(http.ResponseWriter, *http.Request, error)
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance.
//
// Example:
//
//	mw := permkit.NewMiddleware(service,
//	    permkit.WithSubjectExtractor(func(r *http.Request) (permkit.Subject, error) {
//	        return sessionSubject(r)
//	    }),
//	)
func NewMiddleware(service *Service, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		service:      service,
		getSubject:   defaultGetSubject,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithSubjectExtractor sets a custom function to resolve the subject from
// a request.
func WithSubjectExtractor(fn SubjectExtractor) MiddlewareOption {
	return func(m *Middleware) {
		m.getSubject = fn
	}
}

// WithErrorHandler sets a custom error handler for the middleware.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

func defaultGetSubject(r *http.Request) (Subject, error) {
	if subject := SubjectFromContext(r.Context()); subject != nil {
		return subject, nil
	}
	return nil, ErrNoSubject
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsPermissionDenied(err):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case err == ErrNoSubject:
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// RequirePermission creates middleware that requires a specific
// permission.
//
// Example:
//
//	router.Handle("/invoices", mw.RequirePermission(InvoiceGenerate)(generateHandler))
func (m *Middleware) RequirePermission(p Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := m.getSubject(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			if err := m.service.HasPermission(subject, p); err != nil {
				m.errorHandler(w, r, err)
				return
			}

			ctx := WithChecker(r.Context(), NewChecker(subject, m.service))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAnyPermission creates middleware that requires at least one of
// the given permissions.
func (m *Middleware) RequireAnyPermission(perms ...Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := m.getSubject(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			checker := NewChecker(subject, m.service)
			if !checker.CanAny(perms...) {
				denied := ""
				if len(perms) > 0 {
					denied = perms[0].String()
				}
				m.errorHandler(w, r, &PermissionDeniedError{Permission: denied, Subject: subject.Name()})
				return
			}

			ctx := WithChecker(r.Context(), checker)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoadChecker creates middleware that loads the subject's Checker into the
// context without enforcing anything. Use it when permission checks happen
// in the handler.
//
// Example:
//
//	func dashboardHandler(w http.ResponseWriter, r *http.Request) {
//	    checker := permkit.FromContext(r.Context())
//	    if checker != nil && checker.Can(InvoiceRead) {
//	        // show invoices section
//	    }
//	}
func (m *Middleware) LoadChecker() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := m.getSubject(r)
			if err != nil {
				// No subject, continue without checker.
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithChecker(r.Context(), NewChecker(subject, m.service))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
