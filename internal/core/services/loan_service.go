package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"newbank/internal/core/domain"
)

// LoanService is the loan book: it owns every loan offer and its lifecycle
// state. OfferLoan and RequestLoan each run as one critical section over the
// whole book, so id allocation and status transitions never interleave.
//
// The lender-balance check in OfferLoan reads the ledger outside the book's
// lock: a concurrent transfer can invalidate it after the offer commits.
// That weak-consistency point is accepted and pinned by tests; tightening it
// would need a reservation primitive in the ledger.
type LoanService struct {
	mu        sync.Mutex
	customers *CustomerService
	accounts  *AccountService
	notifier  *NotificationService
	loans     map[int]*domain.Loan
	nextID    int
}

// NewLoanService creates an empty loan book
func NewLoanService(customers *CustomerService, accounts *AccountService, notifier *NotificationService) *LoanService {
	return &LoanService{
		customers: customers,
		accounts:  accounts,
		notifier:  notifier,
		loans:     make(map[int]*domain.Loan),
		nextID:    1,
	}
}

// OfferLoan validates and records a new loan offer with status AVAILABLE.
// The amount is conceptually reserved, not transferred: it must not exceed
// what the lender's account currently holds. Any validation failure leaves
// the loan book completely unchanged, id counter included.
func (s *LoanService) OfferLoan(lender domain.CustomerID, fromAccount string, amount, annualRate float64, termMonths int, extraTerms string) (domain.Loan, error) {
	if !s.customers.Exists(lender.Key()) {
		return domain.Loan{}, domain.ErrUnknownLender
	}

	balance, err := s.accounts.Balance(lender, fromAccount)
	if err != nil {
		return domain.Loan{}, err
	}

	if amount <= 0 {
		return domain.Loan{}, domain.ErrInvalidAmount
	}
	if amount > balance {
		return domain.Loan{}, domain.ErrExceedsBalance
	}
	if annualRate <= 0 {
		return domain.Loan{}, domain.ErrInvalidRate
	}
	if termMonths <= 0 {
		return domain.Loan{}, domain.ErrInvalidTerm
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loan := &domain.Loan{
		ID:          s.nextID,
		Lender:      lender.Key(),
		FromAccount: fromAccount,
		Amount:      amount,
		AnnualRate:  annualRate,
		TermMonths:  termMonths,
		ExtraTerms:  extraTerms,
		Status:      domain.LoanAvailable,
		CreatedAt:   time.Now(),
	}
	s.nextID++
	s.loans[loan.ID] = loan

	return *loan, nil
}

// RequestLoan moves an AVAILABLE loan to REQUESTED on behalf of a borrower
// and notifies the lender. A loan that is not AVAILABLE cannot be requested
// again, so a loan is never double-requested.
func (s *LoanService) RequestLoan(borrower domain.CustomerID, loanID int) (domain.Loan, error) {
	if !s.customers.Exists(borrower.Key()) {
		return domain.Loan{}, domain.ErrUnknownBorrower
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[loanID]
	if !ok {
		return domain.Loan{}, domain.ErrLoanNotFound
	}
	if loan.Status != domain.LoanAvailable {
		return domain.Loan{}, domain.ErrLoanNotAvailable
	}

	// The lender is referenced by key, not by pointer; a missing lender here
	// means the book itself is corrupted, not that the caller did anything
	// wrong. Checked before the transition so the loan stays AVAILABLE.
	if !s.customers.Exists(loan.Lender) {
		return domain.Loan{}, domain.ErrDanglingLender
	}

	loan.Status = domain.LoanRequested
	s.notifier.Notify(domain.CustomerID(loan.Lender),
		fmt.Sprintf("Borrower %s has requested your loan %d.", borrower.Key(), loan.ID))

	return *loan, nil
}

// AvailableLoans returns a snapshot of all AVAILABLE loans, ascending by id
func (s *LoanService) AvailableLoans() []domain.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Loan, 0)
	for _, id := range s.sortedIDs() {
		if loan := s.loans[id]; loan.Status == domain.LoanAvailable {
			out = append(out, *loan)
		}
	}
	return out
}

// LoansBy returns a snapshot of all loans offered by the given customer,
// any status, ascending by id
func (s *LoanService) LoansBy(customer domain.CustomerID) []domain.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Loan, 0)
	for _, id := range s.sortedIDs() {
		if loan := s.loans[id]; loan.Lender == customer.Key() {
			out = append(out, *loan)
		}
	}
	return out
}

// sortedIDs returns all loan ids in ascending order. Caller must hold s.mu.
func (s *LoanService) sortedIDs() []int {
	ids := make([]int, 0, len(s.loans))
	for id := range s.loans {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
