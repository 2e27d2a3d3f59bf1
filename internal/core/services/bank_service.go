package services

import (
	"newbank/internal/core/domain"
)

// Bank is the composition root: one instance holds the four services every
// session shares. It performs no business logic of its own; it exists so the
// session layer has a single object to depend on. Construct it once at
// process start and inject it, never reach for a global.
type Bank struct {
	Customers     *CustomerService
	Accounts      *AccountService
	Loans         *LoanService
	Notifications *NotificationService
}

// NewBank wires up an empty bank
func NewBank() *Bank {
	customers := NewCustomerService()
	accounts := NewAccountService(customers)
	notifications := NewNotificationService()
	loans := NewLoanService(customers, accounts, notifications)

	return &Bank{
		Customers:     customers,
		Accounts:      accounts,
		Loans:         loans,
		Notifications: notifications,
	}
}

// Login authenticates a customer and hands back the CustomerID a session
// carries for the rest of the connection. Unknown username and wrong
// password are indistinguishable: both return ErrAuthFailed.
func (b *Bank) Login(username, rawPassword string) (domain.CustomerID, error) {
	if !b.Customers.Authenticate(username, rawPassword) {
		return "", domain.ErrAuthFailed
	}
	return domain.CustomerID(username), nil
}

type demoAccount struct {
	name    string
	balance float64
}

// demo customers seeded for interactive use in dev mode. Accounts are listed
// in creation order, which is the order listings render in.
var demoCustomers = []struct {
	username string
	password string
	accounts []demoAccount
}{
	{"Bhagy", "1234", []demoAccount{{"Main", 1000}}},
	{"Christina", "abcd", []demoAccount{{"Savings", 1500}}},
	{"John", "pass", []demoAccount{{"Checking", 250}}},
	{"Test", "Test", []demoAccount{{"Main", 1000}, {"Savings", 1000}, {"Bonds", 1000}}},
}

// SeedDemoData registers the demo customers with their accounts and opening
// balances. Safe to call only on a fresh bank.
func (b *Bank) SeedDemoData() error {
	for _, c := range demoCustomers {
		if _, err := b.Customers.Register(c.username, c.password); err != nil {
			return err
		}
		customer := domain.CustomerID(c.username)
		for _, acc := range c.accounts {
			if err := b.Accounts.CreateAccount(customer, acc.name); err != nil {
				return err
			}
			if acc.balance > 0 {
				if _, err := b.Accounts.Deposit(customer, acc.name, acc.balance); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
