package ledger

import "errors"

var (
	ErrNotFound          = errors.New("ticket type not found")
	ErrUnavailable       = errors.New("ticket type not available")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrStoreConflict     = errors.New("purchase aborted by concurrent modification, retry")
)
