package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newbank/internal/core/domain"
)

func TestRegisterAndGet(t *testing.T) {
	s := NewCustomerService()

	customer, err := s.Register("Bhagy", "1234")
	require.NoError(t, err)
	assert.Equal(t, "Bhagy", customer.Username)
	assert.NotEqual(t, "1234", customer.Password, "raw password must never be stored")

	assert.True(t, s.Exists("Bhagy"))

	got, err := s.Get("Bhagy")
	require.NoError(t, err)
	assert.Equal(t, "Bhagy", got.Username)

	_, err = s.Get("Nobody")
	assert.ErrorIs(t, err, domain.ErrUnknownCustomer)
}

func TestRegisterDuplicate(t *testing.T) {
	s := NewCustomerService()

	_, err := s.Register("Bhagy", "1234")
	require.NoError(t, err)

	_, err = s.Register("Bhagy", "other")
	assert.ErrorIs(t, err, domain.ErrCustomerExists)
}

func TestUsernamesAreCaseSensitive(t *testing.T) {
	s := NewCustomerService()

	_, err := s.Register("Bhagy", "1234")
	require.NoError(t, err)

	_, err = s.Register("bhagy", "1234")
	require.NoError(t, err, "a differently-cased username is a different customer")

	assert.True(t, s.Exists("Bhagy"))
	assert.True(t, s.Exists("bhagy"))
	assert.False(t, s.Exists("BHAGY"))
}

// Unknown username and wrong password must be indistinguishable to the
// caller, so usernames cannot be enumerated through the login flow.
func TestAuthenticateSymmetry(t *testing.T) {
	s := NewCustomerService()

	_, err := s.Register("real-user", "right-password")
	require.NoError(t, err)

	assert.True(t, s.Authenticate("real-user", "right-password"))
	assert.False(t, s.Authenticate("ghost", "x"))
	assert.False(t, s.Authenticate("real-user", "wrong-password"))
}
