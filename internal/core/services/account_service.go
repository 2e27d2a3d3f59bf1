package services

import (
	"strings"
	"sync"
	"time"

	"newbank/internal/core/domain"
)

// account is the ledger's internal mutable record. Pointers to it never
// leave the service; callers only ever see domain.Account snapshots.
type account struct {
	name    string
	balance float64
	log     []domain.Transaction
}

// AccountService is the ledger: it owns every customer's named accounts and
// balances. One coarse mutex guards the whole ledger so that create, close,
// deposit, withdraw and transfer each execute as a single critical section;
// no caller can observe a partially applied operation.
type AccountService struct {
	mu        sync.Mutex
	customers *CustomerService
	accounts  map[string][]*account // customer key -> accounts in creation order
}

// NewAccountService creates a ledger backed by the given customer registry
func NewAccountService(customers *CustomerService) *AccountService {
	return &AccountService{
		customers: customers,
		accounts:  make(map[string][]*account),
	}
}

// find returns the customer's account with the given name (case-insensitive),
// or nil. Caller must hold s.mu.
func (s *AccountService) find(customerKey, name string) *account {
	for _, a := range s.accounts[customerKey] {
		if strings.EqualFold(a.name, name) {
			return a
		}
	}
	return nil
}

// CreateAccount opens a new account with balance 0. Account names are unique
// per customer, compared case-insensitively.
func (s *AccountService) CreateAccount(customer domain.CustomerID, name string) error {
	if !s.customers.Exists(customer.Key()) {
		return domain.ErrUnknownCustomer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(customer.Key(), name) != nil {
		return domain.ErrDuplicateAccount
	}
	s.accounts[customer.Key()] = append(s.accounts[customer.Key()], &account{name: name})
	return nil
}

// CloseAccount removes an account. Closing is the only deletion path and is
// refused while the balance is non-zero, so money is never silently dropped.
func (s *AccountService) CloseAccount(customer domain.CustomerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.accounts[customer.Key()]
	for i, a := range accounts {
		if strings.EqualFold(a.name, name) {
			if a.balance != 0 {
				return domain.ErrNonZeroBalance
			}
			s.accounts[customer.Key()] = append(accounts[:i], accounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

// Deposit credits an account and records the transaction. Returns the
// updated account snapshot.
func (s *AccountService) Deposit(customer domain.CustomerID, name string, amount float64) (domain.Account, error) {
	if amount <= 0 {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(customer.Key(), name)
	if a == nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	a.balance += amount
	a.log = append(a.log, domain.Transaction{Time: time.Now(), Amount: amount, Direction: domain.TxIn, Note: "deposit"})
	return domain.Account{Name: a.name, Balance: a.balance}, nil
}

// Withdraw debits an account, refusing to take the balance negative.
// Returns the updated account snapshot.
func (s *AccountService) Withdraw(customer domain.CustomerID, name string, amount float64) (domain.Account, error) {
	if amount <= 0 {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(customer.Key(), name)
	if a == nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if a.balance < amount {
		return domain.Account{}, domain.ErrInsufficientFunds
	}
	a.balance -= amount
	a.log = append(a.log, domain.Transaction{Time: time.Now(), Amount: amount, Direction: domain.TxOut, Note: "withdraw"})
	return domain.Account{Name: a.name, Balance: a.balance}, nil
}

// Transfer moves amount between two accounts of the same customer. Debit and
// credit happen inside one critical section, together with both log entries:
// no observer ever sees funds gone from one side and not yet on the other,
// and a failed validation leaves both accounts untouched.
func (s *AccountService) Transfer(customer domain.CustomerID, fromName, toName string, amount float64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	if strings.EqualFold(fromName, toName) {
		return domain.ErrSameAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.find(customer.Key(), fromName)
	to := s.find(customer.Key(), toName)
	if from == nil || to == nil {
		return domain.ErrAccountNotFound
	}
	if from.balance < amount {
		return domain.ErrInsufficientFunds
	}

	from.balance -= amount
	to.balance += amount

	now := time.Now()
	from.log = append(from.log, domain.Transaction{Time: now, Amount: amount, Direction: domain.TxOut, CounterAccount: to.name, Note: "transfer"})
	to.log = append(to.log, domain.Transaction{Time: now, Amount: amount, Direction: domain.TxIn, CounterAccount: from.name, Note: "transfer"})
	return nil
}

// ShowAccounts returns a snapshot of the customer's accounts in creation
// order, so listings render stably.
func (s *AccountService) ShowAccounts(customer domain.CustomerID) ([]domain.Account, error) {
	if !s.customers.Exists(customer.Key()) {
		return nil, domain.ErrUnknownCustomer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.accounts[customer.Key()]
	out := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, domain.Account{Name: a.name, Balance: a.balance})
	}
	return out, nil
}

// Balance returns the current balance of one account
func (s *AccountService) Balance(customer domain.CustomerID, name string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(customer.Key(), name)
	if a == nil {
		return 0, domain.ErrAccountNotFound
	}
	return a.balance, nil
}

// Transactions returns a copy of an account's transaction log in order
func (s *AccountService) Transactions(customer domain.CustomerID, name string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(customer.Key(), name)
	if a == nil {
		return nil, domain.ErrAccountNotFound
	}
	out := make([]domain.Transaction, len(a.log))
	copy(out, a.log)
	return out, nil
}
