package apperrors

import "errors"

// ErrNotFound indicates the requested entity does not exist or is inactive.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates the request payload failed a business validation,
// such as a non-positive transfer value or an incomplete destination.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates a uniqueness conflict, such as an already registered
// email or a reused transfer identifier.
var ErrDuplicate = errors.New("resource already exists")
