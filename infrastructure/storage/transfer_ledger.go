package storage

import (
	"chat-hub/domain"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const ledgerPrefix = "transfer:"

// LedgerEntry is one terminal transfer as stored in the ledger.
type LedgerEntry struct {
	ID          string
	Filename    string
	Sender      string
	Receiver    string
	Size        int64
	Status      string
	Detail      string
	RequestedAt time.Time
	CompletedAt time.Time
}

// TransferLedger keeps completed and failed transfers in badger, keyed by
// completion time so the newest come first on a reverse scan.
type TransferLedger struct {
	db  *badger.DB
	log *slog.Logger
}

func NewTransferLedger(db *badger.DB, log *slog.Logger) *TransferLedger {
	return &TransferLedger{db: db, log: log}
}

func (l *TransferLedger) Record(t domain.Transfer) error {
	key := fmt.Sprintf("%s%019d:%s", ledgerPrefix, t.CompletedAt.UnixNano(), t.ID)

	record, err := toRecord(t)
	if err != nil {
		return fmt.Errorf("failed to build ledger record %s: %w", t.ID, err)
	}
	data, err := proto.Marshal(record)
	if err != nil {
		return err
	}

	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Recent returns up to limit entries, newest first.
func (l *TransferLedger) Recent(limit int) ([]LedgerEntry, error) {
	var entries []LedgerEntry
	prefix := []byte(ledgerPrefix)

	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		seekKey := append([]byte(ledgerPrefix), 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix(prefix) && len(entries) < limit; it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var record structpb.Struct
				if err := proto.Unmarshal(v, &record); err != nil {
					return fmt.Errorf("failed to unmarshal ledger record: %w", err)
				}
				entries = append(entries, fromRecord(&record))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during ledger scan: %w", err)
	}
	return entries, nil
}

func (l *TransferLedger) Count() (int, error) {
	count := 0
	prefix := []byte(ledgerPrefix)
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func toRecord(t domain.Transfer) (*structpb.Struct, error) {
	detail := ""
	switch status := t.Status.(type) {
	case domain.Completed:
		detail = status.Path
	case domain.Failed:
		detail = status.Reason
	}
	return structpb.NewStruct(map[string]any{
		"id":           t.ID.String(),
		"filename":     t.Filename,
		"sender":       t.Sender,
		"receiver":     t.Receiver,
		"size":         t.Size,
		"status":       t.Status.String(),
		"detail":       detail,
		"requested_at": t.RequestedAt.Format(time.RFC3339Nano),
		"completed_at": t.CompletedAt.Format(time.RFC3339Nano),
	})
}

func fromRecord(record *structpb.Struct) LedgerEntry {
	fields := record.GetFields()
	requestedAt, _ := time.Parse(time.RFC3339Nano, fields["requested_at"].GetStringValue())
	completedAt, _ := time.Parse(time.RFC3339Nano, fields["completed_at"].GetStringValue())
	return LedgerEntry{
		ID:          fields["id"].GetStringValue(),
		Filename:    fields["filename"].GetStringValue(),
		Sender:      fields["sender"].GetStringValue(),
		Receiver:    fields["receiver"].GetStringValue(),
		Size:        int64(fields["size"].GetNumberValue()),
		Status:      fields["status"].GetStringValue(),
		Detail:      fields["detail"].GetStringValue(),
		RequestedAt: requestedAt,
		CompletedAt: completedAt,
	}
}
