package main

import (
	"chat-hub/infrastructure/grpc/server"
	"chat-hub/infrastructure/storage"
	"chat-hub/infrastructure/tcp"
	"chat-hub/internal"
	"chat-hub/runtime"
	"chat-hub/runtime/workers"
	"chat-hub/services"
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chathub <port>",
		Short:         "Multi-room TCP chat server with queued file transfers",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := parsePort(args[0])
			if err != nil {
				return err
			}
			return run(cmd.Context(), port)
		},
	}
	root.AddCommand(newTransfersCmd())
	return root
}

// run wires every component, serves until a signal or a fatal error, then
// shuts down in order: stop accepting, stop transfers and notify clients,
// wait for the sessions.
func run(parent context.Context, port int) error {
	// 1. Configuration & Logger
	config, err := loadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Transfer ledger (BadgerDB)
	opts := badger.DefaultOptions(config.LedgerPath()).WithLoggingLevel(badger.WARNING)
	if config.BadgerInMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.WARNING)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	ledger := storage.NewTransferLedger(db, log)

	receipts, err := storage.NewReceiptWriter(afero.NewOsFs(), config.UploadsDir, log)
	if err != nil {
		return err
	}

	// 3. Runtime
	registry := runtime.NewRegistry(log, config.MaxClients, config.WriteTimeout)
	rooms := runtime.NewRoomDirectory(config.MaxRooms, config.MaxRoomUsers)
	messenger := runtime.NewMessenger(log, registry, rooms, config.MaxRooms, config.MaxRoomUsers)
	queue := runtime.NewUploadQueue(config.QueueCapacity(), config.ConcurrencyLimit(), config.EnqueueTimeout)
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(log, supervisor, registry, rooms, messenger, queue, receipts, ledger,
		runtime.Settings{
			NumberOfWorkers:    config.NumberOfWorkers,
			ProcessingUnit:     config.ProcessingUnit,
			MaxProcessingDelay: config.MaxProcessingDelay,
			MetricInterval:     config.MetricInterval,
		})

	transfers := services.NewTransferService(log, orchestrator, config.MaxFileSize, config.AverageProcessingTime)
	chat := services.NewChatService(log, orchestrator, transfers)

	// 4. Chat listener
	chatServer, err := tcp.Listen(log, net.JoinHostPort(config.Host, strconv.Itoa(port)), chat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 4)

	// 5. Workers run on their own context; Stop decides when they end
	go func() {
		if err := orchestrator.Start(context.Background()); err != nil {
			errChan <- fmt.Errorf("orchestrator failed: %w", err)
		}
	}()

	// 6. Optional side servers
	var health *server.HealthServer
	if config.HealthPort > 0 {
		health, err = server.NewHealthServer(log, net.JoinHostPort(config.Host, strconv.Itoa(config.HealthPort)))
		if err != nil {
			orchestrator.Stop()
			return err
		}
		go func() {
			if err := health.Serve(); err != nil {
				errChan <- err
			}
		}()
	}
	var debug *internal.DebugServer
	if config.DebugPort > 0 {
		debug, err = internal.NewDebugServer(log, net.JoinHostPort(config.Host, strconv.Itoa(config.DebugPort)), ledger, orchestrator)
		if err != nil {
			orchestrator.Stop()
			return err
		}
		go func() {
			if err := debug.Serve(); err != nil {
				errChan <- fmt.Errorf("debug server error: %w", err)
			}
		}()
	}

	go func() {
		if err := chatServer.Serve(ctx); err != nil {
			errChan <- fmt.Errorf("chat server error: %w", err)
		}
	}()
	log.Info("Chat hub ready", "port", port, "workers", config.NumberOfWorkers, "max_clients", config.MaxClients)

	// 7. Wait for Stop or Error
	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case runErr = <-errChan:
		log.Error("Shutting down after failure", "error", runErr)
	}

	// 8. Final Cleanup
	_ = chatServer.Close()
	if health != nil {
		health.SetServing(false)
	}
	orchestrator.Stop()
	chatServer.Wait()
	if health != nil {
		health.Stop()
	}
	if debug != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = debug.Shutdown(shutdownCtx)
		cancel()
	}
	log.Info("Program stopped cleanly")
	return runErr
}
