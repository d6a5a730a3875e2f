//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-hub/domain"
	"context"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// INotifier delivers one protocol line to a live session.
type INotifier interface {
	Deliver(id domain.SessionID, text string) error
}

// IUploadQueue is the worker side of the upload queue.
type IUploadQueue interface {
	Acquire(ctx context.Context) error
	Release()
	Next(ctx context.Context) (domain.Transfer, bool)
	ShuttingDown() bool
	Started()
	Finish(t domain.Transfer)
}

// IReceiptWriter writes the artifact of a completed transfer and returns its path.
type IReceiptWriter interface {
	Write(t domain.Transfer, at time.Time) (string, error)
}

// ITransferLedger keeps a record of every terminal transfer.
type ITransferLedger interface {
	Record(t domain.Transfer) error
	Count() (int, error)
}

// IStatsSource gives a point-in-time view of the hub.
type IStatsSource interface {
	Stats() domain.ServerStats
}
