package domain

import "errors"

var (
	// ErrIndexOutOfRange is returned by positional basket removal when
	// the index does not address a current item.
	ErrIndexOutOfRange = errors.New("basket index out of range")

	// ErrWindowIncomplete is returned when a submission is attempted
	// without both rental window bounds set. The payment collaborator
	// is never contacted in that case.
	ErrWindowIncomplete = errors.New("rental window is incomplete")

	// ErrSubmissionInFlight is returned when a submission is attempted
	// while another one is still awaiting the collaborator response.
	ErrSubmissionInFlight = errors.New("a payment submission is already in flight")

	// ErrNotAuthenticated is returned when no valid access credential
	// accompanies a request.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbiddenRole is returned when the session role does not allow
	// the requested flow.
	ErrForbiddenRole = errors.New("role does not permit this operation")
)
