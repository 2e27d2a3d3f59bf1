package main

import (
	"bufio"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"
)

var (
	host string
	port string
)

var rootCmd = &cobra.Command{
	Use:   "newbank-client",
	Short: "Interactive console client for the NewBank server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return connect(net.JoinHostPort(host, port))
	},
}

// connect dials the server and bridges it to the console: one goroutine
// copies server lines to stdout while the main loop copies stdin lines to
// the server. Either side closing ends the session.
func connect(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		server := bufio.NewScanner(conn)
		for server.Scan() {
			fmt.Println(server.Text())
		}
		fmt.Println("Connection closed by server.")
	}()

	console := bufio.NewScanner(os.Stdin)
	for console.Scan() {
		select {
		case <-done:
			return nil
		default:
		}
		if _, err := fmt.Fprintf(conn, "%s\n", console.Text()); err != nil {
			break
		}
	}

	conn.Close()
	<-done
	return nil
}

func main() {
	rootCmd.Flags().StringVar(&host, "host", "localhost", "Server host")
	rootCmd.Flags().StringVar(&port, "port", "14002", "Server port")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
