package telnet

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/google/uuid"

	"newbank/internal/core/domain"
	"newbank/internal/core/services"
)

// commandProcessor resolves one request line into a reply. A non-nil error
// means a consistency fault, never a validation failure.
type commandProcessor interface {
	Process(customer domain.CustomerID, request string) (string, error)
	createAccount(customer domain.CustomerID, accountName string) string
}

// session drives one client connection: the login loop, then the command
// loop. All blocking reads happen here, never inside a service. The NEWACCOUNT
// confirmation step is the only per-session conversational state.
type session struct {
	id   string
	bank *services.Bank
	proc commandProcessor
	conn net.Conn
	in   *bufio.Scanner
	log  *slog.Logger

	// pending NEWACCOUNT awaiting a YES
	pendingAccountName string
}

func newSession(conn net.Conn, bank *services.Bank, logger *slog.Logger) *session {
	id := uuid.NewString()
	return &session{
		id:   id,
		bank: bank,
		proc: NewProcessor(bank),
		conn: conn,
		in:   bufio.NewScanner(conn),
		log:  logger.With("session", id, "remote", conn.RemoteAddr().String()),
	}
}

// run services the connection until logout, disconnect or an internal fault
func (s *session) run() {
	defer s.conn.Close()
	s.log.Info("session opened")

	customer, ok := s.login()
	if !ok {
		s.log.Info("session closed before login")
		return
	}
	s.log.Info("customer logged in", "customer", customer.Key())

	s.writeLine(fmt.Sprintf("Log In Successful. Welcome %s! What do you want to do?", customer.Key()))

	for {
		request, ok := s.readLine()
		if !ok {
			break // client disconnected
		}

		if s.pendingAccountName != "" {
			s.confirmNewAccount(customer, request)
			continue
		}

		if intercepted := s.interceptNewAccount(request); intercepted {
			continue
		}

		reply, err := s.proc.Process(customer, request)
		if err != nil {
			// Consistency fault: the bank's own state is suspect. Log it and
			// terminate this one session; other sessions are unaffected.
			s.log.Error("internal consistency fault", "customer", customer.Key(), "error", err)
			s.writeLine("FAIL: Internal error. Your session has been terminated.")
			return
		}

		s.writeLine(reply)
		if strings.HasPrefix(reply, "Session terminated") {
			break
		}
	}

	s.log.Info("session closed", "customer", customer.Key())
}

// login prompts until the client authenticates or disconnects. Unknown
// username and wrong password get the identical response.
func (s *session) login() (domain.CustomerID, bool) {
	for {
		s.writeLine("Enter Username")
		username, ok := s.readLine()
		if !ok {
			return "", false
		}

		s.writeLine("Enter Password")
		password, ok := s.readLine()
		if !ok {
			return "", false
		}

		s.writeLine("Checking Details...")
		customer, err := s.bank.Login(username, password)
		if err != nil {
			s.log.Info("login failed", "username", username)
			s.writeLine("Log In Failed")
			s.writeLine("Incorrect username or password. Please try again.")
			continue
		}
		return customer, true
	}
}

// interceptNewAccount starts the NEWACCOUNT confirmation flow. Returns false
// for any other command so it falls through to the processor.
func (s *session) interceptNewAccount(request string) bool {
	parts := strings.Fields(request)
	if len(parts) == 0 || !strings.EqualFold(parts[0], "NEWACCOUNT") {
		return false
	}
	if len(parts) != 2 {
		s.writeLine("Usage: NEWACCOUNT <accountName>")
		return true
	}
	s.pendingAccountName = parts[1]
	s.writeLine(fmt.Sprintf("Confirm a new account with the name '%s' by typing YES (or type EXIT to cancel).", s.pendingAccountName))
	return true
}

// confirmNewAccount resolves a pending NEWACCOUNT with the client's answer
func (s *session) confirmNewAccount(customer domain.CustomerID, answer string) {
	name := s.pendingAccountName
	s.pendingAccountName = ""

	switch strings.ToUpper(strings.TrimSpace(answer)) {
	case "YES":
		s.writeLine(s.proc.createAccount(customer, name))
	case "EXIT":
		s.writeLine(fmt.Sprintf("Cancelled: account '%s' was not created.", name))
	default:
		s.writeLine(fmt.Sprintf("Cancelled: expected YES, account '%s' was not created.", name))
	}
}

func (s *session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *session) writeLine(line string) {
	if _, err := fmt.Fprintf(s.conn, "%s\n", line); err != nil {
		s.log.Debug("write failed", "error", err)
	}
}
