package domain

import (
	"errors"
	"fmt"
)

// Customer errors
var (
	ErrCustomerExists  = errors.New("customer already exists")
	ErrUnknownCustomer = errors.New("unknown customer")
	ErrAuthFailed      = errors.New("incorrect username or password")
)

// Account errors
var (
	ErrDuplicateAccount  = errors.New("account name already in use")
	ErrAccountNotFound   = errors.New("account not found")
	ErrNonZeroBalance    = errors.New("account balance is not zero")
	ErrInvalidAmount     = errors.New("amount must be greater than 0")
	ErrSameAccount       = errors.New("from and to accounts must be different")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Loan errors
var (
	ErrUnknownLender    = errors.New("unknown lender")
	ErrUnknownBorrower  = errors.New("unknown borrower")
	ErrExceedsBalance   = errors.New("loan amount cannot exceed the account balance")
	ErrInvalidRate      = errors.New("interest rate must be greater than 0")
	ErrInvalidTerm      = errors.New("term must be a positive number of months")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrLoanNotAvailable = errors.New("loan is not available")
)

// ErrConsistency marks faults in the bank's own state rather than bad input.
// A session that hits one should be terminated, not shown a validation
// message. All consistency faults wrap this sentinel.
var ErrConsistency = errors.New("internal consistency fault")

// ErrDanglingLender - a stored loan references a lender that is no longer in
// the registry.
var ErrDanglingLender = fmt.Errorf("%w: loan references an unknown lender", ErrConsistency)

// Internalf wraps a low-level error (hashing, etc.) as a consistency fault so
// it is never surfaced as a user-facing validation failure.
func Internalf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConsistency, fmt.Sprintf(format, args...))
}

// IsConsistencyFault reports whether err is a fault in the bank's internal
// state, as opposed to an expected validation error.
func IsConsistencyFault(err error) bool {
	return errors.Is(err, ErrConsistency)
}
