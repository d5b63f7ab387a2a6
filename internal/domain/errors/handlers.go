package errors

// ErrorInfo is the error payload of the API envelope. Code is a stable
// machine-readable identifier such as "PRODUCT_NOT_FOUND"; Message is safe to
// show to end users.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// MetaInfo carries the request ID so clients can quote it in support reports.
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// SuccessResponse is the envelope for 2xx responses.
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse is the envelope for non-2xx responses.
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}
