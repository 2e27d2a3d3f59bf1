package telnet

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newbank/internal/core/services"
)

func TestServerServesConcurrentSessionsAndShutsDown(t *testing.T) {
	bank := services.NewBank()
	_, err := bank.Customers.Register("Alice", "secret")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer("127.0.0.1:0", bank, logger)

	served := make(chan error, 1)
	go func() { served <- srv.ListenAndServe() }()

	// wait for the listener to bind
	var addr net.Addr
	for i := 0; i < 100; i++ {
		if addr = srv.Addr(); addr != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NotNil(t, addr, "listener never bound")

	// two clients log in concurrently against the shared bank
	for i := 0; i < 2; i++ {
		conn, err := net.Dial("tcp", addr.String())
		require.NoError(t, err)
		defer conn.Close()

		in := bufio.NewScanner(conn)
		expect := func(want string) {
			t.Helper()
			for in.Scan() {
				if strings.Contains(in.Text(), want) {
					return
				}
			}
			t.Fatalf("connection closed before seeing %q", want)
		}

		expect("Enter Username")
		_, err = conn.Write([]byte("Alice\n"))
		require.NoError(t, err)
		expect("Enter Password")
		_, err = conn.Write([]byte("secret\n"))
		require.NoError(t, err)
		expect("Log In Successful")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-served:
		assert.NoError(t, err, "a shut-down server returns nil from ListenAndServe")
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after Shutdown")
	}
}
