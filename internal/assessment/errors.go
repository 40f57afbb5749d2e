package assessment

// ErrorCode categorizes failures that cross the orchestrator boundary or get
// logged during degradation. Upstream and computation failures are recovered
// into response notes and never surface as error responses; their codes are
// used when logging the degradation.
type ErrorCode string

const (
	// ErrCodeInputInvalid: missing/invalid location or numeric query
	// parameter. Surfaced as a client error before any upstream call.
	ErrCodeInputInvalid ErrorCode = "input_invalid"

	// ErrCodeUpstreamUnavailable: geocoder, weather, or PV provider
	// failure, timeout, or quota. Recovered locally into notes.
	ErrCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"

	// ErrCodeComputationGuard: division by zero or out-of-range lookup,
	// recovered locally into notes.
	ErrCodeComputationGuard ErrorCode = "computation_guard"

	// ErrCodeInternalFault: unexpected programming fault caught at the
	// orchestrator boundary. Surfaced as a generic server error.
	ErrCodeInternalFault ErrorCode = "internal_fault"
)

// AppError is the error shape returned past the orchestrator boundary.
type AppError struct {
	Code    ErrorCode
	Message string
}

func (e *AppError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewInputError builds a client-facing input validation error.
func NewInputError(msg string) *AppError {
	return &AppError{Code: ErrCodeInputInvalid, Message: msg}
}

func newInternalFault(msg string) *AppError {
	return &AppError{Code: ErrCodeInternalFault, Message: msg}
}
