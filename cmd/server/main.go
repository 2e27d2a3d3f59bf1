package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"newbank/internal/adapters/telnet"
	"newbank/internal/config"
	"newbank/internal/core/services"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "newbank-server",
	Short: "NewBank session server",
	Long: `Serves the NewBank newline-text banking protocol over TCP.
Clients log in and manage accounts, transfers and the loan marketplace.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	bank := services.NewBank()
	if cfg.SeedDemoData {
		if err := bank.SeedDemoData(); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		slog.Info("demo data seeded")
	}

	srv := telnet.NewServer(cfg.Addr(), bank, slog.Default())
	go gracefulShutdown(srv)

	slog.Info("server starting", "addr", cfg.Addr(), "mode", cfg.AppMode)
	return srv.ListenAndServe()
}

// gracefulShutdown drains sessions on SIGINT/SIGTERM
func gracefulShutdown(srv *telnet.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("error during shutdown", "error", err)
		return
	}
	slog.Info("server stopped gracefully")
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
