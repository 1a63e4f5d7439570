package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidOffset     = "Invalid offset parameter"

	// Identity and idempotency
	ErrMsgMissingUserID         = "Missing X-User-ID header"
	ErrMsgInvalidIdempotencyKey = "Idempotency-Key must be at most 128 printable characters"
	ErrMsgMissingGameID         = "Missing game ID"

	// Health
	ErrMsgDatabaseConnectionFailed = "database connection failed"
)

// Success messages for API responses
const (
	MsgAccountCreated = "Account created"
)

// Health status values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

// HTTP header names read by handlers
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderUserID         = "X-User-ID"
)

// MaxIdempotencyKeyLength bounds the Idempotency-Key header
const MaxIdempotencyKeyLength = 128
