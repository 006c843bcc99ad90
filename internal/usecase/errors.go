package usecase

import "errors"

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

// ErrUnauthorized aborts an operation before any item is processed.
var ErrUnauthorized = &DomainError{
	Code:    "UNAUTHORIZED",
	Message: "unauthorized: please log in to continue",
}

// DuplicateLeadError signals that the owner already has a lead with this email.
type DuplicateLeadError struct {
	Email       string
	DuplicateID string
}

func (e *DuplicateLeadError) Error() string {
	return "a lead with this email already exists"
}

func IsDuplicateError(err error) bool {
	var de *DuplicateLeadError
	return errors.As(err, &de)
}

// NotFoundError covers leads the owner cannot see, whether they exist or not.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found or you don't have permission"
}

func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
