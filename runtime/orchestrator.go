// Package runtime holds the shared state of the chat hub and the goroutines
// working on it. It contains no protocol parsing.
package runtime

import (
	"chat-hub/contract"
	"chat-hub/domain"
	"chat-hub/errors"
	"chat-hub/runtime/workers"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type Settings struct {
	NumberOfWorkers    int
	ProcessingUnit     time.Duration
	MaxProcessingDelay time.Duration
	MetricInterval     time.Duration
}

// Orchestrator wires the registry, the rooms, the upload queue and the
// supervised workers, and owns the shutdown sequence.
type Orchestrator struct {
	mu         sync.Mutex
	log        *slog.Logger
	settings   Settings
	supervisor contract.ISupervisor
	registry   *Registry
	rooms      *RoomDirectory
	messenger  *Messenger
	queue      *UploadQueue
	receipts   contract.IReceiptWriter
	ledger     contract.ITransferLedger
	reporter   *workers.TransferReporter
	cancel     context.CancelFunc
	started    bool
	halted     bool
	stopped    chan struct{}
	stopOnce   sync.Once
}

func NewOrchestrator(
	log *slog.Logger,
	supervisor contract.ISupervisor,
	registry *Registry,
	rooms *RoomDirectory,
	messenger *Messenger,
	queue *UploadQueue,
	receipts contract.IReceiptWriter,
	ledger contract.ITransferLedger,
	settings Settings,
) *Orchestrator {
	return &Orchestrator{
		log:        log,
		settings:   settings,
		supervisor: supervisor,
		registry:   registry,
		rooms:      rooms,
		messenger:  messenger,
		queue:      queue,
		receipts:   receipts,
		ledger:     ledger,
		reporter:   workers.NewTransferReporter(log, queue, registry, ledger),
		stopped:    make(chan struct{}),
	}
}

func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

func (o *Orchestrator) Messenger() *Messenger {
	return o.messenger
}

func (o *Orchestrator) Queue() *UploadQueue {
	return o.queue
}

// Stats is a point-in-time view of sessions, rooms and transfers.
func (o *Orchestrator) Stats() domain.ServerStats {
	return domain.ServerStats{
		Online:    o.registry.Count(),
		Rooms:     len(o.rooms.Rooms()),
		Transfers: o.queue.Stats(),
	}
}

// Start registers the transfer workers and the stats reporter with the
// supervisor and blocks until they all stopped. It fails once Stop ran.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.halted {
		o.mu.Unlock()
		return fmt.Errorf("orchestrator already stopped: %w", errors.ErrShuttingDown)
	}
	if o.started {
		o.mu.Unlock()
		return fmt.Errorf("orchestrator already started")
	}
	o.started = true
	ctx, o.cancel = context.WithCancel(ctx)

	for i := 0; i < o.settings.NumberOfWorkers; i++ {
		o.supervisor.Add(workers.NewTransferWorker(i+1, o.log, o.queue, o.registry, o.receipts, o.reporter,
			o.settings.ProcessingUnit, o.settings.MaxProcessingDelay))
	}
	o.supervisor.Add(workers.NewStatsReporterWorker(o.log, o, o.settings.MetricInterval))
	o.mu.Unlock()
	defer close(o.stopped)

	if count, err := o.ledger.Count(); err != nil {
		o.log.Warn("Transfer ledger unreadable", "error", err)
	} else {
		o.log.Info("Transfer ledger loaded", "transfers", count)
	}

	o.log.Info("Starting orchestrator and all supervised workers", "workers", o.settings.NumberOfWorkers)
	o.supervisor.Run(ctx)
	return nil
}

// Stop rejects new transfers, waits for the workers, fails what was still
// pending, then tells every session the server is going down and closes it.
func (o *Orchestrator) Stop() {
	o.stopOnce.Do(func() {
		o.log.Info("Shutting down orchestrator")
		o.queue.Shutdown()

		o.mu.Lock()
		o.halted = true
		started, cancel := o.started, o.cancel
		o.mu.Unlock()
		if started {
			cancel()
			<-o.stopped
		}

		pending := o.queue.Drain()
		for _, t := range pending {
			o.reporter.Report(t.Fail(time.Now(), domain.ReasonShutdownBeforeStart))
		}

		notified := o.registry.Broadcast(domain.ShutdownNotice)
		o.registry.CloseAll()
		o.log.Info("Orchestrator stopped", "drained_transfers", len(pending), "notified_sessions", notified)
	})
}
