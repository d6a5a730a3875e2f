package storage

import (
	"chat-hub/domain"
	"chat-hub/domain/mimetypes"
	"chat-hub/errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

const (
	maxCollisionSuffix = 1000
	receiptTimeLayout  = "2006-01-02 15:04:05"
)

// ReceiptWriter materialises completed transfers as text receipts in dir.
// Names are claimed under mu with O_EXCL so concurrent workers never share a file.
type ReceiptWriter struct {
	mu  sync.Mutex
	fs  afero.Fs
	dir string
	log *slog.Logger
}

// NewReceiptWriter creates dir when it does not exist.
func NewReceiptWriter(fs afero.Fs, dir string, log *slog.Logger) (*ReceiptWriter, error) {
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat uploads directory %s: %w", dir, err)
	}
	if !exists {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create uploads directory %s: %w", dir, err)
		}
	}
	return &ReceiptWriter{fs: fs, dir: dir, log: log}, nil
}

// Write stores the receipt of t under <receiver>_<filename>, or
// <receiver>_<base>_<n><ext> when that name is taken. A receipt that could
// not be written completely is removed.
func (w *ReceiptWriter) Write(t domain.Transfer, at time.Time) (string, error) {
	file, path, err := w.create(t.Receiver, filepath.Base(t.Filename))
	if err != nil {
		return "", err
	}

	_, err = file.WriteString(receipt(t, at))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if removeErr := w.fs.Remove(path); removeErr != nil {
			w.log.Warn("Partial receipt left behind", "path", path, "error", removeErr)
		}
		return "", fmt.Errorf("%w: writing %s: %v", errors.ErrTransferFailed, path, err)
	}
	w.log.Debug("Receipt written", "path", path, "id", t.ID)
	return path, nil
}

func (w *ReceiptWriter) create(receiver, filename string) (afero.File, string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	for n := 0; n < maxCollisionSuffix; n++ {
		name := fmt.Sprintf("%s_%s", receiver, filename)
		if n > 0 {
			name = fmt.Sprintf("%s_%s_%d%s", receiver, base, n, ext)
		}
		path := filepath.Join(w.dir, name)

		file, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return file, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("%w: %v", errors.ErrTransferFailed, err)
		}
	}
	return nil, "", fmt.Errorf("%w: no free name for %s_%s", errors.ErrTransferFailed, receiver, filename)
}

func receipt(t domain.Transfer, at time.Time) string {
	mime, _ := mimetypes.FromFilename(t.Filename)
	var b strings.Builder
	b.WriteString("=== SIMULATED FILE TRANSFER ===\n")
	fmt.Fprintf(&b, "Transfer ID: %s\n", t.ID)
	fmt.Fprintf(&b, "Original Filename: %s\n", t.Filename)
	fmt.Fprintf(&b, "Content Type: %s\n", mime)
	fmt.Fprintf(&b, "Sender: %s\n", t.Sender)
	fmt.Fprintf(&b, "Receiver: %s\n", t.Receiver)
	fmt.Fprintf(&b, "File Size: %d bytes (%s)\n", t.Size, humanize.IBytes(uint64(t.Size)))
	fmt.Fprintf(&b, "Transfer Requested: %s\n", t.RequestedAt.Format(receiptTimeLayout))
	fmt.Fprintf(&b, "Transfer Started: %s\n", t.StartedAt.Format(receiptTimeLayout))
	fmt.Fprintf(&b, "Transfer Completed: %s\n", at.Format(receiptTimeLayout))
	fmt.Fprintf(&b, "Processing Time: %.1f seconds\n", at.Sub(t.StartedAt).Seconds())
	b.WriteString("===============================\n")
	return b.String()
}
