package ledger

import "errors"

// Error kinds. Match with errors.Is(err, ErrNotFound) and friends.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// Error is a ledger failure whose Message is safe to show to the end user.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool { return e.Kind == target }

// Unwrap exposes the kind so errors.Is also works through wrapping.
func (e *Error) Unwrap() error { return e.Kind }

func validationError(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }
func notFoundError(msg string) error   { return &Error{Kind: ErrNotFound, Message: msg} }
func conflictError(msg string) error   { return &Error{Kind: ErrConflict, Message: msg} }

const (
	msgAssetNotFound     = "Asset not found"
	msgAssetIDRequired   = "Asset ID is required and must be unique"
	msgAlreadyCheckedOut = "Asset is already checked out"
	msgNotCheckedOut     = "Asset is not checked out"
	msgPhotoRequired     = "Condition photo is required"
	msgInvalidRange      = "Invalid reservation time range"
	msgInvalidDuration   = "Checkout duration must be a positive number of days"
	msgInvalidBuffer     = "Reservation buffer is out of range"
)
