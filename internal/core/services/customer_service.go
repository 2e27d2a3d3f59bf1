package services

import (
	"sync"
	"time"

	"newbank/internal/core/domain"
	"newbank/internal/pkg/password"
)

// CustomerService owns the customer registry: usernames (case-sensitive) and
// their credential records. Registration is rare and authentication is
// read-only, so a single read/write mutex around the map is enough.
type CustomerService struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

// NewCustomerService creates an empty customer registry
func NewCustomerService() *CustomerService {
	return &CustomerService{
		customers: make(map[string]*domain.Customer),
	}
}

// Register creates a new customer with a hashed credential record. The raw
// password is hashed immediately and never stored.
func (s *CustomerService) Register(username, rawPassword string) (*domain.Customer, error) {
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return nil, domain.Internalf("hash password: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[username]; ok {
		return nil, domain.ErrCustomerExists
	}

	customer := &domain.Customer{
		Username:  username,
		Password:  hashed,
		CreatedAt: time.Now(),
	}
	s.customers[username] = customer

	cp := *customer
	return &cp, nil
}

// Authenticate checks a username/password pair. It fails closed: an unknown
// username and a wrong password both return false with no distinguishing
// error, so the caller cannot enumerate usernames.
func (s *CustomerService) Authenticate(username, rawPassword string) bool {
	s.mu.RLock()
	customer, ok := s.customers[username]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	return password.Verify(rawPassword, customer.Password)
}

// Exists reports whether a customer with the given username is registered
func (s *CustomerService) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.customers[username]
	return ok
}

// Get returns a snapshot of the customer, or ErrUnknownCustomer
func (s *CustomerService) Get(username string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[username]
	if !ok {
		return nil, domain.ErrUnknownCustomer
	}
	cp := *customer
	return &cp, nil
}
