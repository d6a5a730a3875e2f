package storage

import (
	"chat-hub/domain"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

// SetupTestDB initializes an in-memory Badger instance for testing
func SetupTestDB(t *testing.T) (*badger.DB, func()) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)

	return db, func() {
		db.Close()
	}
}

func TestTransferLedger_RecordAndRecent(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()
	ledger := NewTransferLedger(db, slog.Default())

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	first := newCompletedReport("first.txt", 100).Complete(base.Add(time.Minute), "uploads/bob_first.txt")
	second := newCompletedReport("second.pdf", 200).Fail(base.Add(2*time.Minute), domain.ReasonShutdownDuringUpload)

	// Given two terminal transfers
	req.NoError(ledger.Record(first))
	req.NoError(ledger.Record(second))

	// When the most recent ones are listed
	entries, err := ledger.Recent(10)

	// Then the newest comes first with its outcome
	req.NoError(err)
	req.Len(entries, 2)
	req.Equal(second.ID.String(), entries[0].ID)
	req.Equal("failed", entries[0].Status)
	req.Equal(domain.ReasonShutdownDuringUpload, entries[0].Detail)
	req.Equal("second.pdf", entries[0].Filename)
	req.Equal(int64(200), entries[0].Size)

	req.Equal(first.ID.String(), entries[1].ID)
	req.Equal("completed", entries[1].Status)
	req.Equal("uploads/bob_first.txt", entries[1].Detail)
	req.Equal("alice", entries[1].Sender)
	req.Equal("bob", entries[1].Receiver)
	req.True(base.Add(time.Minute).Equal(entries[1].CompletedAt))

	count, err := ledger.Count()
	req.NoError(err)
	req.Equal(2, count)
}

func TestTransferLedger_RecentRespectsLimit(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()
	ledger := NewTransferLedger(db, slog.Default())

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		tr := newCompletedReport("notes.txt", 1).Complete(base.Add(time.Duration(i)*time.Second), "uploads/bob_notes.txt")
		req.NoError(ledger.Record(tr))
	}

	entries, err := ledger.Recent(3)
	req.NoError(err)
	req.Len(entries, 3)
	req.True(entries[0].CompletedAt.After(entries[1].CompletedAt))
}

func TestTransferLedger_Empty(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()
	ledger := NewTransferLedger(db, slog.Default())

	entries, err := ledger.Recent(10)
	req.NoError(err)
	req.Empty(entries)
	count, err := ledger.Count()
	req.NoError(err)
	req.Zero(count)
}
