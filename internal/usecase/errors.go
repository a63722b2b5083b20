package usecase

import "errors"

// Machine-readable codes carried by domain errors. Boundaries translate them
// into transport-level responses; callers can retry after fixing the input.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyConverted = "ALREADY_CONVERTED"
	CodeApprovalRequired = "APPROVAL_REQUIRED"
	CodeInvalidInput     = "INVALID_INPUT"
)

// DomainError is a business-rule rejection. The request was understood and
// refused; the directory was not touched.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// CodeOf extracts the machine code from a domain error, or returns "" for
// anything else.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// TechnicalError is an infrastructure failure (broker down, template missing).
// The operation may succeed on retry without any input change.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
