package telnet

import (
	"fmt"
	"strings"

	"newbank/internal/core/domain"
)

func formatAccounts(accounts []domain.Account) string {
	if len(accounts) == 0 {
		return "No accounts found."
	}
	lines := make([]string, 0, len(accounts))
	for _, a := range accounts {
		lines = append(lines, fmt.Sprintf("> %s: %.2f", a.Name, a.Balance))
	}
	return strings.Join(lines, "\n")
}

func formatTransactions(accountName string, txs []domain.Transaction) string {
	if len(txs) == 0 {
		return fmt.Sprintf("No transactions for '%s'.", accountName)
	}
	lines := make([]string, 0, len(txs)+1)
	lines = append(lines, fmt.Sprintf("Transactions for '%s':", accountName))
	for _, tx := range txs {
		line := fmt.Sprintf("  [%s] %s %.2f (%s)",
			tx.Time.Format("2006-01-02 15:04:05"), tx.Direction, tx.Amount, tx.Note)
		if tx.CounterAccount != "" {
			line += fmt.Sprintf(" <-> '%s'", tx.CounterAccount)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatLoan(l domain.Loan) string {
	s := fmt.Sprintf("Loan ID: %d, Lender: %s, From account: %s, Amount: %.2f, Rate: %.2f%% per year, Term: %d months, Status: %s",
		l.ID, l.Lender, l.FromAccount, l.Amount, l.AnnualRate, l.TermMonths, l.Status)
	if l.ExtraTerms != "" {
		s += ", Extra terms: " + l.ExtraTerms
	}
	return s
}

func formatAvailableLoans(loans []domain.Loan) string {
	if len(loans) == 0 {
		return "There are currently no available loans."
	}
	lines := make([]string, 0, len(loans)+1)
	lines = append(lines, "Available loans:")
	for _, l := range loans {
		lines = append(lines, formatLoan(l))
	}
	return strings.Join(lines, "\n")
}

func formatOwnLoans(loans []domain.Loan) string {
	if len(loans) == 0 {
		return "You have not created any loan offers."
	}
	lines := make([]string, 0, len(loans)+1)
	lines = append(lines, "Your loan offers:")
	for _, l := range loans {
		lines = append(lines, formatLoan(l))
	}
	return strings.Join(lines, "\n")
}

func formatNotifications(notifications []domain.Notification) string {
	if len(notifications) == 0 {
		return "You have no notifications."
	}
	lines := make([]string, 0, len(notifications)+1)
	lines = append(lines, "Your notifications:")
	for _, n := range notifications {
		status := "unread"
		if n.Read {
			status = "read"
		}
		lines = append(lines, fmt.Sprintf("  [%d] %s (%s)", n.ID, n.Message, status))
	}
	return strings.Join(lines, "\n")
}
