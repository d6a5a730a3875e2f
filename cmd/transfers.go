package main

import (
	"chat-hub/infrastructure/storage"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newTransfersCmd() *cobra.Command {
	var dbPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "List the most recent transfers recorded in the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// BypassLockGuard allows reading while a running server holds the lock
			db, err := badger.Open(badger.DefaultOptions(dbPath).
				WithReadOnly(true).
				WithBypassLockGuard(true).
				WithLoggingLevel(badger.WARNING))
			if err != nil {
				return fmt.Errorf("failed to open ledger at %s: %w", dbPath, err)
			}
			defer db.Close()

			entries, err := storage.NewTransferLedger(db, slog.Default()).Recent(limit)
			if err != nil {
				return err
			}
			printTransfers(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", defaultLedgerPath(), "Path to the badger ledger")
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of transfers to list, newest first")
	return cmd
}

// defaultLedgerPath resolves the ledger the server would open with the same
// environment.
func defaultLedgerPath() string {
	config, _ := loadConfig()
	return config.LedgerPath()
}

func printTransfers(w io.Writer, entries []storage.LedgerEntry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Completed", "ID", "Status", "File", "From", "To", "Size", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, e := range entries {
		id := e.ID
		if len(id) > 8 {
			id = id[:8]
		}
		table.Append([]string{
			e.CompletedAt.Format("2006-01-02 15:04:05"),
			id,
			statusLabel(e.Status),
			e.Filename,
			e.Sender,
			e.Receiver,
			humanize.IBytes(uint64(max(e.Size, 0))),
			e.Detail,
		})
	}
	table.Render()
	fmt.Fprintf(w, "%d transfer(s)\n", len(entries))
}

func statusLabel(status string) string {
	switch status {
	case "completed":
		return color.Green.Sprint(status)
	case "failed":
		return color.Red.Sprint(status)
	default:
		return status
	}
}
