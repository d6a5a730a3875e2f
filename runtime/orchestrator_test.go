package runtime

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"chat-hub/mocks"
	"chat-hub/runtime/workers"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type orchestratorFixture struct {
	hub
	queue        *UploadQueue
	receipts     *mocks.MockIReceiptWriter
	ledger       *mocks.MockITransferLedger
	orchestrator *Orchestrator
}

func newOrchestratorFixture(t *testing.T, numWorkers int, unit time.Duration) *orchestratorFixture {
	ctrl := gomock.NewController(t)
	log := slog.Default()
	h := newHub(10, 5, 10)
	queue := NewUploadQueue(3*numWorkers, numWorkers, 0)
	receipts := mocks.NewMockIReceiptWriter(ctrl)
	ledger := mocks.NewMockITransferLedger(ctrl)
	ledger.EXPECT().Record(gomock.Any()).Return(nil).AnyTimes()
	ledger.EXPECT().Count().Return(0, nil).AnyTimes()

	o := NewOrchestrator(log, workers.NewSupervisor(log, 10*time.Millisecond), h.registry, h.rooms, h.messenger,
		queue, receipts, ledger, Settings{
			NumberOfWorkers:    numWorkers,
			ProcessingUnit:     unit,
			MaxProcessingDelay: 8 * unit,
		})
	return &orchestratorFixture{hub: h, queue: queue, receipts: receipts, ledger: ledger, orchestrator: o}
}

func (f *orchestratorFixture) start() <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- f.orchestrator.Start(context.Background())
	}()
	return done
}

func countLines(lines []string, prefix string) int {
	n := 0
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func TestOrchestrator_PermitsCapProcessingTransfers(t *testing.T) {
	req := require.New(t)
	f := newOrchestratorFixture(t, 5, time.Millisecond)
	alice, _ := f.login(t, "alice")
	bob, _ := f.login(t, "bob")

	gate := make(chan struct{})
	f.receipts.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(func(t domain.Transfer, _ time.Time) (string, error) {
		<-gate
		return "uploads/bob_" + t.Filename, nil
	}).Times(6)

	done := f.start()

	// Given six simultaneous requests for five workers
	for i := 0; i < 6; i++ {
		tr := domain.NewTransfer("notes.txt", "alice", "bob", alice, bob, 10, time.Now())
		req.NoError(f.queue.Enqueue(context.Background(), tr))
	}

	// Then exactly five are processing and the sixth waits
	req.Eventually(func() bool {
		return f.queue.Stats().Active == 5
	}, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	stats := f.queue.Stats()
	req.Equal(5, stats.Active)
	req.Equal(1, stats.Queued)

	// When the blocked transfers are released
	close(gate)

	// Then all six complete
	req.Eventually(func() bool {
		return f.queue.Stats().Completed == 6
	}, 2*time.Second, 5*time.Millisecond)
	req.Zero(f.queue.Stats().Active)

	f.orchestrator.Stop()
	req.NoError(<-done)
}

func TestOrchestrator_SendFileScenario(t *testing.T) {
	req := require.New(t)
	f := newOrchestratorFixture(t, 2, time.Millisecond)
	alice, aliceConn := f.login(t, "alice")
	bob, bobConn := f.login(t, "bob")
	f.receipts.EXPECT().Write(gomock.Any(), gomock.Any()).Return("uploads/bob_report.pdf", nil).Times(1)

	done := f.start()
	tr := domain.NewTransfer("report.pdf", "alice", "bob", alice, bob, 2048, time.Now())
	req.NoError(f.queue.Enqueue(context.Background(), tr))

	req.Eventually(func() bool {
		return len(bobConn.Lines()) == 1
	}, time.Second, 5*time.Millisecond)

	aliceLines := aliceConn.Lines()
	req.Len(aliceLines, 2)
	req.Equal("OK:File 'report.pdf' processing started immediately.", aliceLines[0])
	req.True(strings.HasPrefix(aliceLines[1], "OK:File 'report.pdf' sent successfully to 'bob'"))
	req.Equal([]string{"FILE_NOTIFY:You received file 'report.pdf' from 'alice' (size: 2048 bytes)"}, bobConn.Lines())

	f.orchestrator.Stop()
	req.NoError(<-done)
}

func TestOrchestrator_ShutdownWithProcessingAndPendingTransfers(t *testing.T) {
	req := require.New(t)
	f := newOrchestratorFixture(t, 2, time.Hour)
	alice, aliceConn := f.login(t, "alice")
	bob, bobConn := f.login(t, "bob")

	done := f.start()

	// Given two processing and three pending transfers
	for i := 0; i < 5; i++ {
		tr := domain.NewTransfer("notes.txt", "alice", "bob", alice, bob, 10, time.Now())
		req.NoError(f.queue.Enqueue(context.Background(), tr))
	}
	req.Eventually(func() bool {
		stats := f.queue.Stats()
		return stats.Active == 2 && stats.Queued == 3
	}, time.Second, 5*time.Millisecond)

	// When the server shuts down
	f.orchestrator.Stop()

	// Then every worker has returned
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("workers did not join")
	}

	// And every transfer failed with the matching reason
	lines := aliceConn.Lines()
	req.Equal(2, countLines(lines, "OK:File 'notes.txt' processing started"))
	req.Equal(2, countLines(lines, domain.FailedMessage(domain.ReasonShutdownDuringUpload)))
	req.Equal(3, countLines(lines, domain.FailedMessage(domain.ReasonShutdownBeforeStart)))
	req.Equal(domain.ShutdownNotice, lines[len(lines)-1])

	// And the receiver got only the shutdown notice
	req.Equal([]string{domain.ShutdownNotice}, bobConn.Lines())

	stats := f.queue.Stats()
	req.Equal(5, stats.Failed)
	req.Zero(stats.Active)
	req.Zero(stats.Queued)
}

func TestOrchestrator_StopWithoutStart(t *testing.T) {
	req := require.New(t)
	f := newOrchestratorFixture(t, 1, time.Millisecond)
	_, conn := f.login(t, "alice")

	f.orchestrator.Stop()

	req.Equal([]string{domain.ShutdownNotice}, conn.Lines())
	req.True(conn.Closed())
}

func TestOrchestrator_StartAfterStop(t *testing.T) {
	req := require.New(t)
	f := newOrchestratorFixture(t, 2, time.Millisecond)

	// Given an orchestrator that was stopped before it ever ran
	f.orchestrator.Stop()

	// When it is started afterwards
	err := f.orchestrator.Start(context.Background())

	// Then it refuses without spawning workers
	req.ErrorIs(err, errors.ErrShuttingDown)
	req.ErrorIs(f.queue.Enqueue(context.Background(), newTransfer("late.txt")), errors.ErrShuttingDown)
	req.Zero(f.orchestrator.Stats().Transfers.Active)
}

func TestOrchestrator_Stats(t *testing.T) {
	req := require.New(t)
	f := newOrchestratorFixture(t, 5, time.Millisecond)
	alice, _ := f.login(t, "alice")
	_, _ = f.login(t, "bob")
	_, _ = f.messenger.Join(alice, "lobby")

	stats := f.orchestrator.Stats()

	req.Equal(2, stats.Online)
	req.Equal(1, stats.Rooms)
	req.Equal(15, stats.Transfers.Capacity)
}
