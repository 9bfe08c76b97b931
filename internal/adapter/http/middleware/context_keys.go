package middleware

// ContextKey is a private key type for request context values, so entries
// set here cannot collide with other packages.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated caller's user id.
	UserIDCtxKey = ContextKey("user_id")

	// UserCtxKey holds the resolved *domain.User of the caller.
	UserCtxKey = ContextKey("user")

	// RequestIDCtxKey holds the per-request correlation id.
	RequestIDCtxKey = ContextKey("request_id")
)
