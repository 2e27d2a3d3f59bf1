package telnet

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newbank/internal/core/domain"
	"newbank/internal/core/services"
)

// testClient drives the client end of a session over an in-memory pipe
type testClient struct {
	t    *testing.T
	conn net.Conn
	in   *bufio.Scanner
}

func (c *testClient) send(line string) {
	c.t.Helper()
	_, err := fmt.Fprintf(c.conn, "%s\n", line)
	require.NoError(c.t, err)
}

// expect reads lines until one contains want, failing on EOF
func (c *testClient) expect(want string) {
	c.t.Helper()
	for c.in.Scan() {
		if strings.Contains(c.in.Text(), want) {
			return
		}
	}
	c.t.Fatalf("connection closed before seeing %q", want)
}

// startSession runs a session over net.Pipe and hands back the client end.
// The session goroutine exits when the client disconnects or logs out.
func startSession(t *testing.T, bank *services.Bank) *testClient {
	return startSessionWith(t, bank, nil)
}

// startSessionWith optionally swaps in a scripted command processor
func startSessionWith(t *testing.T, bank *services.Bank, proc commandProcessor) *testClient {
	t.Helper()

	serverEnd, clientEnd := net.Pipe()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sess := newSession(serverEnd, bank, logger)
	if proc != nil {
		sess.proc = proc
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sess.run()
	}()
	t.Cleanup(func() {
		clientEnd.Close()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("session did not terminate")
		}
	})

	return &testClient{t: t, conn: clientEnd, in: bufio.NewScanner(clientEnd)}
}

func newSessionBank(t *testing.T) *services.Bank {
	t.Helper()
	bank := services.NewBank()
	_, err := bank.Customers.Register("Alice", "secret")
	require.NoError(t, err)
	return bank
}

func TestSessionLoginRetryThenSuccess(t *testing.T) {
	client := startSession(t, newSessionBank(t))

	client.expect("Enter Username")
	client.send("Alice")
	client.expect("Enter Password")
	client.send("wrong")
	client.expect("Log In Failed")

	// unknown username gets the identical failure line
	client.expect("Enter Username")
	client.send("Ghost")
	client.expect("Enter Password")
	client.send("whatever")
	client.expect("Log In Failed")

	client.expect("Enter Username")
	client.send("Alice")
	client.expect("Enter Password")
	client.send("secret")
	client.expect("Log In Successful. Welcome Alice!")

	client.send("LOGOUT")
	client.expect("Session terminated")
}

func TestSessionNewAccountConfirmation(t *testing.T) {
	bank := newSessionBank(t)
	client := startSession(t, bank)

	client.expect("Enter Username")
	client.send("Alice")
	client.expect("Enter Password")
	client.send("secret")
	client.expect("Log In Successful")

	// declined confirmation creates nothing
	client.send("NEWACCOUNT Holiday")
	client.expect("Confirm a new account with the name 'Holiday'")
	client.send("no thanks")
	client.expect("was not created")

	accounts, err := bank.Accounts.ShowAccounts("Alice")
	require.NoError(t, err)
	assert.Empty(t, accounts)

	// confirmed creation goes through
	client.send("NEWACCOUNT Holiday")
	client.expect("Confirm a new account with the name 'Holiday'")
	client.send("YES")
	client.expect("SUCCESS: Account 'Holiday' created.")

	accounts, err = bank.Accounts.ShowAccounts("Alice")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Holiday", accounts[0].Name)

	client.send("EXIT")
	client.expect("Session terminated")
}

// scriptedProcessor replies from a fixed table; entries in faults are
// reported as consistency faults
type scriptedProcessor struct {
	replies map[string]string
	faults  map[string]error
}

func (p *scriptedProcessor) Process(_ domain.CustomerID, request string) (string, error) {
	if err, ok := p.faults[request]; ok {
		return "", err
	}
	return p.replies[request], nil
}

func (p *scriptedProcessor) createAccount(domain.CustomerID, string) string {
	return ""
}

// A consistency fault terminates the one session that hit it; a validation
// failure never does.
func TestSessionTerminatesOnConsistencyFault(t *testing.T) {
	proc := &scriptedProcessor{
		replies: map[string]string{"BALANCE": "FAIL: Account not found."},
		faults:  map[string]error{"REQUESTLOAN 1": domain.ErrDanglingLender},
	}
	client := startSessionWith(t, newSessionBank(t), proc)

	client.expect("Enter Username")
	client.send("Alice")
	client.expect("Enter Password")
	client.send("secret")
	client.expect("Log In Successful")

	// a validation failure is rendered and the session keeps serving
	client.send("BALANCE")
	client.expect("FAIL: Account not found.")
	client.send("BALANCE")
	client.expect("FAIL: Account not found.")

	client.send("REQUESTLOAN 1")
	client.expect("FAIL: Internal error. Your session has been terminated.")

	assert.False(t, client.in.Scan(), "connection must be closed after a consistency fault")
}

func TestSessionCommandRoundTrip(t *testing.T) {
	bank := newSessionBank(t)
	require.NoError(t, bank.Accounts.CreateAccount("Alice", "Main"))
	_, err := bank.Accounts.Deposit("Alice", "Main", 100)
	require.NoError(t, err)

	client := startSession(t, bank)

	client.expect("Enter Username")
	client.send("Alice")
	client.expect("Enter Password")
	client.send("secret")
	client.expect("Log In Successful")

	client.send("SHOWMYACCOUNTS")
	client.expect("> Main: 100.00")
	client.expect("END_OF_ACCOUNTS")

	client.send("QUIT")
	client.expect("Session terminated")
}
