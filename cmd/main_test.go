package main

import (
	"bytes"
	"chat-hub/errors"
	"chat-hub/infrastructure/storage"
	"testing"
	"time"

	"github.com/mama165/sdk-go/database"
	"github.com/stretchr/testify/require"
)

func TestParsePort(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"8080", 8080, false},
		{"1", 1, false},
		{"65535", 65535, false},
		{"0", 0, true},
		{"65536", 0, true},
		{"-1", 0, true},
		{"http", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parsePort(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePort(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrInvalidPort) {
				t.Errorf("parsePort(%q) error = %v, want ErrInvalidPort", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("parsePort(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRootCmd_RequiresExactlyOnePort(t *testing.T) {
	req := require.New(t)
	for _, args := range [][]string{{}, {"8080", "9090"}} {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		req.Error(cmd.Execute())
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"notaport"})
	err := cmd.Execute()
	req.ErrorIs(err, errors.ErrInvalidPort)
}

func TestPrintTransfers(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer

	printTransfers(&out, []storage.LedgerEntry{
		{ID: "0f8fad5b-d9cb", Filename: "report.pdf", Sender: "alice", Receiver: "bob", Size: 1536,
			Status: "completed", Detail: "uploads/bob_report.pdf", CompletedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "9a1b", Filename: "notes.txt", Sender: "bob", Receiver: "alice", Size: 10,
			Status: "failed", Detail: "Server shutdown before transfer started"},
	})

	text := out.String()
	req.Contains(text, "0f8fad5b")
	req.Contains(text, "report.pdf")
	req.Contains(text, "1.5 KiB")
	req.Contains(text, "Server shutdown before transfer started")
	req.Contains(text, "2 transfer(s)")
}

func TestTransfersCmd_ReadsTheServerLedger(t *testing.T) {
	t.Run("should default to the shared ledger path", func(t *testing.T) {
		t.Setenv("BADGER_FILEPATH", "")
		require.Equal(t, database.DefaultPath, newTransfersCmd().Flag("db").DefValue)
	})

	t.Run("should follow BADGER_FILEPATH like the server", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("BADGER_FILEPATH", dir)
		require.Equal(t, dir, newTransfersCmd().Flag("db").DefValue)
	})
}
