package workers

import (
	"chat-hub/contract"
	"chat-hub/domain"
	"context"
	"log/slog"
	"time"
)

// announceTimeout bounds how long a settled transfer waits for its queued
// reply before notifying anyway.
const announceTimeout = 2 * time.Second

// TransferReporter settles a terminal transfer: counters first, then the
// ledger, then the notifications.
type TransferReporter struct {
	log      *slog.Logger
	queue    contract.IUploadQueue
	notifier contract.INotifier
	ledger   contract.ITransferLedger
}

func NewTransferReporter(log *slog.Logger, queue contract.IUploadQueue, notifier contract.INotifier, ledger contract.ITransferLedger) *TransferReporter {
	return &TransferReporter{log: log, queue: queue, notifier: notifier, ledger: ledger}
}

func (r *TransferReporter) Report(t domain.Transfer) {
	r.queue.Finish(t)

	if err := r.ledger.Record(t); err != nil {
		r.log.Error("Failed to record transfer", "id", t.ID, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), announceTimeout)
	defer cancel()
	if err := t.AwaitAnnounced(ctx); err != nil {
		r.log.Debug("Queued reply not confirmed", "id", t.ID, "error", err)
	}

	switch status := t.Status.(type) {
	case domain.Completed:
		r.log.Info("Transfer completed", "id", t.ID, "file", t.Filename, "from", t.Sender, "to", t.Receiver, "path", status.Path)
		r.deliver(t.SenderID, domain.CompletedMessage(t))
		r.deliver(t.ReceiverID, domain.FileNotifyMessage(t))
	case domain.Failed:
		r.log.Warn("Transfer failed", "id", t.ID, "file", t.Filename, "from", t.Sender, "to", t.Receiver, "reason", status.Reason)
		r.deliver(t.SenderID, domain.FailedMessage(status.Reason))
	}
}

func (r *TransferReporter) deliver(id domain.SessionID, text string) {
	if err := r.notifier.Deliver(id, text); err != nil {
		r.log.Debug("Transfer notice not delivered", "session", id.String(), "error", err)
	}
}
