package errors

// Closed set of error codes. Services dispatch on these, never on message
// strings; messages are human-readable detail only.
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrConflict        = "CONFLICT"
)

var httpStatusByCode = map[string]int{
	ErrInternal:        500,
	ErrNotFound:        404,
	ErrInvalidArgument: 400,
	ErrUnauthenticated: 401,
	ErrUnauthorized:    403,
	ErrConflict:        409,
}

// ToHTTPStatus maps an error code to its HTTP status, defaulting to 500.
func ToHTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return 500
}
