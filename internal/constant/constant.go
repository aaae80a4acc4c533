package constant

// Constant package provides constants used throughout the application.

const (
	// CorrelationIDHeader carries the request correlation ID in and out.
	CorrelationIDHeader = "X-Correlation-ID"

	// ClaimsKey is the gin context key holding verified token claims.
	ClaimsKey = "claims"

	// CorrelationIDKey is the gin context key holding the correlation ID.
	CorrelationIDKey = "correlation_id"

	BearerScheme = "Bearer"
)
