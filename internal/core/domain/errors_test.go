package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Consistency faults must be distinguishable from validation errors, so the
// session layer can terminate a session instead of rendering a FAIL line.
func TestConsistencyFaultClassification(t *testing.T) {
	assert.True(t, IsConsistencyFault(ErrDanglingLender))
	assert.True(t, IsConsistencyFault(Internalf("hash password: %v", errors.New("boom"))))

	validation := []error{
		ErrCustomerExists,
		ErrUnknownCustomer,
		ErrAuthFailed,
		ErrDuplicateAccount,
		ErrAccountNotFound,
		ErrNonZeroBalance,
		ErrInvalidAmount,
		ErrSameAccount,
		ErrInsufficientFunds,
		ErrUnknownLender,
		ErrUnknownBorrower,
		ErrExceedsBalance,
		ErrInvalidRate,
		ErrInvalidTerm,
		ErrLoanNotFound,
		ErrLoanNotAvailable,
	}
	for _, err := range validation {
		assert.False(t, IsConsistencyFault(err), "%v must stay a validation error", err)
	}
}

func TestInternalfWrapsSentinel(t *testing.T) {
	err := Internalf("hash password: %v", errors.New("boom"))
	assert.ErrorIs(t, err, ErrConsistency)
	assert.Contains(t, err.Error(), "boom")
}
