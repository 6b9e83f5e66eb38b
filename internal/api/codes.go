package api

// Client-synthesized error codes. Negative values are reserved so they can
// never collide with server-assigned codes or raw HTTP status codes, which
// are non-negative.
const (
	// CodeConnection is a transport-level connection failure (refused, DNS, reset).
	CodeConnection = -1
	// CodeTimeout means the request exceeded the fixed timeout budget.
	CodeTimeout = -2
	// CodeUnexpected is any other client-side failure.
	CodeUnexpected = -3
	// CodeEmptyBody means the server returned 2xx with no usable body.
	CodeEmptyBody = -4
	// CodeMalformedBody means the 2xx body could not be deserialized.
	CodeMalformedBody = -5
	// CodeNoSession means an operation requiring a session ran while logged out.
	CodeNoSession = -10
	// CodeNoSessionUser means the local session lacks the user identity.
	CodeNoSessionUser = -11
	// CodeSessionRejected means the server answered 401; the local session has been closed.
	CodeSessionRejected = -12
)
