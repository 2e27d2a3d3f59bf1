package telnet

import (
	"fmt"
	"strconv"
	"strings"

	"newbank/internal/core/domain"
	"newbank/internal/core/services"
)

// Processor resolves one command line into a call on the bank facade and
// renders the typed result as protocol text. All SUCCESS:/FAIL: formatting
// lives here; the services only ever return values and typed errors.
type Processor struct {
	bank *services.Bank
}

// NewProcessor creates a command processor over the given bank
func NewProcessor(bank *services.Bank) *Processor {
	return &Processor{bank: bank}
}

// Process handles one request line for a logged-in customer. The returned
// error is non-nil only for consistency faults in the bank itself; every
// validation failure is rendered into the reply instead.
func (p *Processor) Process(customer domain.CustomerID, request string) (string, error) {
	tokens := strings.Fields(request)
	if len(tokens) == 0 {
		return "FAIL: Empty command.", nil
	}

	if !p.bank.Customers.Exists(customer.Key()) {
		return "FAIL: Unknown customer.", nil
	}

	name := strings.ToUpper(tokens[0])
	args := tokens[1:]

	switch name {

	case "HELP":
		return helpMessage, nil

	case "LOGOUT", "EXIT", "QUIT":
		return "Session terminated. Goodbye.", nil

	case "SHOWMYACCOUNTS", "BALANCE", "BALANCES":
		accounts, err := p.bank.Accounts.ShowAccounts(customer)
		if err != nil {
			return failLine(err), nil
		}
		return formatAccounts(accounts) + "\nEND_OF_ACCOUNTS", nil

	case "CREATEACCOUNT":
		if len(args) != 1 {
			return "Usage: CREATEACCOUNT <accountName>", nil
		}
		return p.createAccount(customer, args[0]), nil

	case "CLOSEACCOUNT":
		if len(args) != 1 {
			return "Usage: CLOSEACCOUNT <accountName>", nil
		}
		if err := p.bank.Accounts.CloseAccount(customer, args[0]); err != nil {
			return failLine(err), nil
		}
		return fmt.Sprintf("SUCCESS: Account '%s' closed.", args[0]), nil

	case "DEPOSIT":
		if len(args) != 2 {
			return "Usage: DEPOSIT <accountName> <amount>", nil
		}
		amount, ok := parseAmount(args[1])
		if !ok {
			return "FAIL: Amount must be a number.", nil
		}
		acc, err := p.bank.Accounts.Deposit(customer, args[0], amount)
		if err != nil {
			return failLine(err), nil
		}
		return fmt.Sprintf("SUCCESS: Deposited %.2f into '%s'. New balance: %.2f", amount, acc.Name, acc.Balance), nil

	case "WITHDRAW":
		if len(args) != 2 {
			return "Usage: WITHDRAW <accountName> <amount>", nil
		}
		amount, ok := parseAmount(args[1])
		if !ok {
			return "FAIL: Amount must be a number.", nil
		}
		acc, err := p.bank.Accounts.Withdraw(customer, args[0], amount)
		if err != nil {
			return failLine(err), nil
		}
		return fmt.Sprintf("SUCCESS: Withdrew %.2f from '%s'. New balance: %.2f", amount, acc.Name, acc.Balance), nil

	case "TRANSFER":
		if len(args) != 3 {
			return "Usage: TRANSFER <fromAccount> <toAccount> <amount>", nil
		}
		amount, ok := parseAmount(args[2])
		if !ok {
			return "FAIL: Amount must be a number. Usage: TRANSFER <fromAccount> <toAccount> <amount>", nil
		}
		if err := p.bank.Accounts.Transfer(customer, args[0], args[1], amount); err != nil {
			return failLine(err), nil
		}
		return fmt.Sprintf("SUCCESS: Transferred %.2f from '%s' to '%s'.", amount, args[0], args[1]), nil

	case "VIEWTRANSACTIONS":
		if len(args) != 1 {
			return "Usage: VIEWTRANSACTIONS <accountName>", nil
		}
		txs, err := p.bank.Accounts.Transactions(customer, args[0])
		if err != nil {
			return failLine(err), nil
		}
		return formatTransactions(args[0], txs) + "\nEND_OF_TRANSACTIONS", nil

	case "OFFERLOAN":
		if len(args) < 4 {
			return "Usage: OFFERLOAN <fromAccount> <amount> <rate> <termMonths> [extra terms...]", nil
		}
		amount, okAmount := parseAmount(args[1])
		rate, okRate := parseAmount(args[2])
		months, errMonths := strconv.Atoi(args[3])
		if !okAmount || !okRate || errMonths != nil {
			return "FAIL: amount, rate and termMonths must be numeric.", nil
		}
		extraTerms := strings.Join(args[4:], " ")
		loan, err := p.bank.Loans.OfferLoan(customer, args[0], amount, rate, months, extraTerms)
		if err != nil {
			return failLine(err), nil
		}
		return fmt.Sprintf("SUCCESS: Loan created with ID %d", loan.ID), nil

	case "REQUESTLOAN":
		if len(args) != 1 {
			return "Usage: REQUESTLOAN <loanId>", nil
		}
		loanID, err := strconv.Atoi(args[0])
		if err != nil {
			return "FAIL: loanId must be numeric.", nil
		}
		loan, err := p.bank.Loans.RequestLoan(customer, loanID)
		if err != nil {
			if domain.IsConsistencyFault(err) {
				return "", err
			}
			return failLine(err), nil
		}
		return fmt.Sprintf("SUCCESS: Loan %d has been successfully requested.", loan.ID), nil

	case "SHOWAVAILABLELOANS":
		return formatAvailableLoans(p.bank.Loans.AvailableLoans()) + "\nEND_OF_LOANS", nil

	case "MYLOANS":
		return formatOwnLoans(p.bank.Loans.LoansBy(customer)) + "\nEND_OF_MYLOANS", nil

	case "SHOWNOTIFICATIONS":
		return formatNotifications(p.bank.Notifications.ListFor(customer)), nil

	case "ACCEPTLOAN", "REPAYLOAN":
		return name + " not implemented yet on server side.", nil

	default:
		return fmt.Sprintf("FAIL: Unknown command '%s'. Type HELP for available commands.", name), nil
	}
}

// createAccount is shared by CREATEACCOUNT and the confirmed NEWACCOUNT flow
func (p *Processor) createAccount(customer domain.CustomerID, accountName string) string {
	if err := p.bank.Accounts.CreateAccount(customer, accountName); err != nil {
		return failLine(err)
	}
	return fmt.Sprintf("SUCCESS: Account '%s' created.", accountName)
}

func parseAmount(s string) (float64, bool) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// failLine renders a validation error as a FAIL: protocol line
func failLine(err error) string {
	msg := err.Error()
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	return "FAIL: " + msg + "."
}

var helpMessage = strings.Join([]string{
	"Available commands:",
	"  SHOWMYACCOUNTS / BALANCE",
	"  NEWACCOUNT <accountName>        (asks for confirmation)",
	"  CREATEACCOUNT <accountName>",
	"  CLOSEACCOUNT <accountName>",
	"  DEPOSIT <accountName> <amount>",
	"  WITHDRAW <accountName> <amount>",
	"  TRANSFER <fromAccount> <toAccount> <amount>",
	"  VIEWTRANSACTIONS <accountName>",
	"  OFFERLOAN <fromAccount> <amount> <annualRate%> <termMonths> [extra terms...]",
	"  REQUESTLOAN <loanId>",
	"  SHOWAVAILABLELOANS",
	"  MYLOANS",
	"  SHOWNOTIFICATIONS",
	"  ACCEPTLOAN <loanId> <toAccount>    (not implemented yet)",
	"  REPAYLOAN <loanId> <amount>        (not implemented yet)",
	"  LOGOUT / EXIT / QUIT",
	"END_OF_HELP",
}, "\n")
