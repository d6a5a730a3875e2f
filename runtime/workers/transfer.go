package workers

import (
	"chat-hub/contract"
	"chat-hub/domain"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// TransferWorker drains the upload queue one transfer at a time, holding a
// permit for each.
type TransferWorker struct {
	id                 int
	log                *slog.Logger
	queue              contract.IUploadQueue
	notifier           contract.INotifier
	receipts           contract.IReceiptWriter
	reporter           *TransferReporter
	processingUnit     time.Duration
	maxProcessingDelay time.Duration
}

func NewTransferWorker(
	id int,
	log *slog.Logger,
	queue contract.IUploadQueue,
	notifier contract.INotifier,
	receipts contract.IReceiptWriter,
	reporter *TransferReporter,
	processingUnit, maxProcessingDelay time.Duration,
) *TransferWorker {
	return &TransferWorker{
		id:                 id,
		log:                log,
		queue:              queue,
		notifier:           notifier,
		receipts:           receipts,
		reporter:           reporter,
		processingUnit:     processingUnit,
		maxProcessingDelay: maxProcessingDelay,
	}
}

// Run returns nil once the queue shuts down or ctx is canceled.
func (w *TransferWorker) Run(ctx context.Context) error {
	w.log.Debug("Transfer worker started", "worker", w.id)
	for w.next(ctx) {
	}
	w.log.Debug("Transfer worker stopped", "worker", w.id)
	return nil
}

func (w *TransferWorker) next(ctx context.Context) bool {
	if err := w.queue.Acquire(ctx); err != nil {
		return false
	}
	defer w.queue.Release()

	t, ok := w.queue.Next(ctx)
	if !ok {
		return false
	}
	w.process(ctx, t)
	return true
}

func (w *TransferWorker) process(ctx context.Context, t domain.Transfer) {
	if err := t.AwaitAnnounced(ctx); err != nil || w.queue.ShuttingDown() {
		w.reporter.Report(t.Fail(time.Now(), domain.ReasonShutdownBeforeStart))
		return
	}

	t = t.Start(time.Now())
	w.queue.Started()
	w.log.Info("Transfer processing", "worker", w.id, "id", t.ID, "file", t.Filename, "size", t.Size, "queue_wait", t.QueueWait())
	if err := w.notifier.Deliver(t.SenderID, domain.StartedMessage(t)); err != nil {
		w.log.Debug("Start notice not delivered", "user", t.Sender, "error", err)
	}

	timer := time.NewTimer(domain.ProcessingDelay(t.Size, w.processingUnit, w.maxProcessingDelay))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		w.reporter.Report(t.Fail(time.Now(), domain.ReasonShutdownDuringUpload))
		return
	case <-timer.C:
	}

	at := time.Now()
	path, err := w.receipts.Write(t, at)
	if err != nil {
		w.reporter.Report(t.Fail(at, fmt.Sprintf("Failed to create file: %v", err)))
		return
	}
	w.reporter.Report(t.Complete(at, path))
}
