package errors

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408: // Request Timeout
			return Recoverable
		case 429: // Too Many Requests
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		return Irrecoverable
	}
}

// NewRemoteError builds the error for a non-2xx response.
func NewRemoteError(op, method, url string, statusCode int, body string) *RemoteError {
	return &RemoteError{Op: op, Method: method, URL: url, StatusCode: statusCode, Body: body}
}

// NewNullBodyError builds the not-found error for a 2xx response whose body is JSON null.
func NewNullBodyError(op, method, url string, statusCode int) *RemoteError {
	return &RemoteError{Op: op, Method: method, URL: url, StatusCode: statusCode, Body: "null", NullBody: true}
}

// NewTransportError wraps a failure that happened before a response was read.
func NewTransportError(op, method, url string, err error) *TransportError {
	return &TransportError{Op: op, Method: method, URL: url, Err: err}
}
