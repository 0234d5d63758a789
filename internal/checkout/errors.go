package checkout

import "errors"

// Submission failure reasons. The handler boundary maps these to HTTP codes;
// anything else surfaces as a generic internal error.
var (
	ErrInvalidAddress         = errors.New("invalid address format")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrShippingFeeUnavailable = errors.New("shipping fee unavailable")
	ErrInsufficientStock      = errors.New("insufficient stock")
)
