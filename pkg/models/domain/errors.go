package domain

import "fmt"

// ValidationError reports malformed input shape: credential format, missing
// required fields, unparseable dates. Always recoverable by the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// VendorRequestError is an error the vendor API itself reported: a rejected
// filter, an unknown dimension, expired credentials. Code carries the vendor
// error code, Message its human-readable text.
type VendorRequestError struct {
	Code    string
	Message string
}

func (e *VendorRequestError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("vendor request failed: %s", e.Message)
	}
	return fmt.Sprintf("vendor request failed: %s: %s", e.Code, e.Message)
}

// InternalError wraps failures not classified as vendor errors: client
// construction, network-layer faults. The wrapped cause is preserved for
// logging but callers surface only a generic message.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
