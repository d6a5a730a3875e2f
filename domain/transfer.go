package domain

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sizeStep = 512 * 1024

// Status is the lifecycle state of a transfer.
// Pending → Processing → Completed | Failed
type Status interface {
	String() string
	isStatus()
}

type Pending struct{}

type Processing struct {
	StartedAt time.Time
}

type Completed struct {
	Path string
}

type Failed struct {
	Reason string
}

func (Pending) String() string    { return "pending" }
func (Processing) String() string { return "processing" }
func (Completed) String() string  { return "completed" }
func (Failed) String() string     { return "failed" }

func (Pending) isStatus()    {}
func (Processing) isStatus() {}
func (Completed) isStatus()  {}
func (Failed) isStatus()     {}

type Transfer struct {
	ID          uuid.UUID
	Filename    string
	Sender      string
	Receiver    string
	SenderID    SessionID
	ReceiverID  SessionID
	Size        int64
	RequestedAt time.Time
	StartedAt   time.Time
	CompletedAt time.Time
	Status      Status

	announced <-chan struct{}
}

func NewTransfer(filename, sender, receiver string, senderID, receiverID SessionID, size int64, at time.Time) Transfer {
	return Transfer{
		ID:          uuid.New(),
		Filename:    filename,
		Sender:      sender,
		Receiver:    receiver,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Size:        size,
		RequestedAt: at,
		Status:      Pending{},
	}
}

// Announce returns a copy of t whose notices wait until the returned func ran.
// The func is safe to call more than once.
func (t Transfer) Announce() (Transfer, func()) {
	ch := make(chan struct{})
	var once sync.Once
	t.announced = ch
	return t, func() { once.Do(func() { close(ch) }) }
}

// AwaitAnnounced blocks until the queued reply for t went out. Transfers built
// without Announce never wait.
func (t Transfer) AwaitAnnounced(ctx context.Context) error {
	if t.announced == nil {
		return nil
	}
	select {
	case <-t.announced:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t Transfer) Start(at time.Time) Transfer {
	t.StartedAt = at
	t.Status = Processing{StartedAt: at}
	return t
}

func (t Transfer) Complete(at time.Time, path string) Transfer {
	t.CompletedAt = at
	t.Status = Completed{Path: path}
	return t
}

func (t Transfer) Fail(at time.Time, reason string) Transfer {
	t.CompletedAt = at
	t.Status = Failed{Reason: reason}
	return t
}

func (t Transfer) Started() bool {
	return !t.StartedAt.IsZero()
}

// QueueWait is the time spent Pending.
func (t Transfer) QueueWait() time.Duration {
	if !t.Started() {
		return 0
	}
	return t.StartedAt.Sub(t.RequestedAt)
}

// ProcessingTime is the time spent Processing.
func (t Transfer) ProcessingTime() time.Duration {
	if !t.Started() || t.CompletedAt.IsZero() {
		return 0
	}
	return t.CompletedAt.Sub(t.StartedAt)
}

// ProcessingDelay is the simulated transfer time: one unit plus one unit per
// started 512 KiB, clamped to limit.
func ProcessingDelay(size int64, unit, limit time.Duration) time.Duration {
	if size < 0 {
		size = 0
	}
	d := unit * time.Duration(1+size/sizeStep)
	if d > limit {
		return limit
	}
	return d
}

// EstimateWait predicts the queue wait of the transfer at position, given
// concurrent workers each taking average per transfer.
func EstimateWait(position, concurrent int, average time.Duration) time.Duration {
	if position <= 0 || concurrent <= 0 {
		return 0
	}
	return time.Duration(float64(position) / float64(concurrent) * float64(average))
}
