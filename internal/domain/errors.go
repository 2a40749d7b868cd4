package domain

import "errors"

// Engine failure taxonomy. Services wrap these with fmt.Errorf("%w: ...")
// to attach the entity id and current state; handlers map them to HTTP
// statuses with errors.Is.
var (
	ErrAuthorization     = errors.New("caller not authorized")
	ErrUnavailable       = errors.New("product not available")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPrecondition      = errors.New("precondition not met")
	ErrSelfRental        = errors.New("cannot rent own product")
	ErrSelfSwap          = errors.New("cannot swap with yourself")
	ErrDuplicateProposal = errors.New("product already offered in a pending swap")
	ErrAlreadyDecided    = errors.New("swap request already decided")
	ErrValidation        = errors.New("invalid input")
)
