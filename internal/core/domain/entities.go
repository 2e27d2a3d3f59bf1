package domain

import "time"

// CustomerID identifies a logged-in customer. It carries the customer key
// (the username, case-sensitive) as a value, never a live reference into the
// registry, so holders cannot reach registry internals through it.
type CustomerID string

// Key returns the customer key as a plain string.
func (c CustomerID) Key() string {
	return string(c)
}

// Customer represents a registered customer in the domain layer
type Customer struct {
	Username  string
	Password  string // bcrypt digest, never the raw password
	CreatedAt time.Time
}

// Account is a point-in-time snapshot of one account. Account names are
// unique per customer, compared case-insensitively.
type Account struct {
	Name    string
	Balance float64
}

// Transaction directions as recorded in an account's log
const (
	TxIn  = "in"
	TxOut = "out"
)

// Transaction is one immutable entry in an account's transaction log.
// CounterAccount is only set for transfers (the other account's name).
type Transaction struct {
	Time           time.Time
	Amount         float64
	Direction      string
	CounterAccount string
	Note           string
}

// LoanStatus represents the lifecycle state of a loan
type LoanStatus string

const (
	// LoanAvailable - offered and waiting for a borrower
	LoanAvailable LoanStatus = "AVAILABLE"
	// LoanRequested - a borrower has requested the loan, pending the lender
	LoanRequested LoanStatus = "REQUESTED"
	// LoanActive - accepted and in repayment (no triggering operation yet)
	LoanActive LoanStatus = "ACTIVE"
	// LoanRepaid - fully repaid (no triggering operation yet)
	LoanRepaid LoanStatus = "REPAID"
	// LoanCancelled - withdrawn by the lender (no triggering operation yet)
	LoanCancelled LoanStatus = "CANCELLED"
)

// Loan represents a loan offer in the marketplace. Identity and terms are
// fixed at creation; only Status changes afterwards.
type Loan struct {
	ID          int
	Lender      string // customer key of the offering customer
	FromAccount string
	Amount      float64
	AnnualRate  float64
	TermMonths  int
	ExtraTerms  string
	Status      LoanStatus
	CreatedAt   time.Time
}

// Notification represents a message delivered to a customer's inbox,
// created as a side effect of loan-lifecycle events.
type Notification struct {
	ID        int
	Recipient string // customer key
	Message   string
	Read      bool
	CreatedAt time.Time
}
