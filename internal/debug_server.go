package internal

import (
	"chat-hub/contract"
	"chat-hub/infrastructure/storage"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
)

//go:embed inspect.html
var templatesFS embed.FS

const defaultInspectLimit = 50

type InspectRow struct {
	ID        string
	Status    string
	Timestamp string
	Filename  string
	Route     string
	Size      string
	Detail    string
}

type PageData struct {
	Limit int
	Items []InspectRow
	Stats map[string]any
	Error string
}

// LedgerReader lists the most recent terminal transfers.
type LedgerReader interface {
	Recent(limit int) ([]storage.LedgerEntry, error)
}

// DebugServer serves an HTML view of the transfer ledger and live counters.
type DebugServer struct {
	log      *slog.Logger
	listener net.Listener
	server   *http.Server
}

func NewDebugServer(log *slog.Logger, address string, ledger LedgerReader, stats contract.IStatsSource) (*DebugServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return &DebugServer{
		log:      log,
		listener: listener,
		server:   &http.Server{Handler: InspectHandler(ledger, stats)},
	}, nil
}

func (d *DebugServer) Addr() net.Addr {
	return d.listener.Addr()
}

func (d *DebugServer) Serve() error {
	d.log.Info("Debug server listening", "url", fmt.Sprintf("http://%s/inspect", d.listener.Addr()))
	if err := d.server.Serve(d.listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (d *DebugServer) Shutdown(ctx context.Context) error {
	return d.server.Shutdown(ctx)
}

// InspectHandler renders /inspect. The optional limit query caps the rows.
func InspectHandler(ledger LedgerReader, stats contract.IStatsSource) http.Handler {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))
	mux := http.NewServeMux()

	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		limit := defaultInspectLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		data := PageData{Limit: limit, Stats: statsView(stats)}
		entries, err := ledger.Recent(limit)
		if err != nil {
			data.Error = err.Error()
		}
		for _, entry := range entries {
			data.Items = append(data.Items, toInspectRow(entry))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
	return mux
}

func statsView(source contract.IStatsSource) map[string]any {
	s := source.Stats()
	return map[string]any{
		"Online":    s.Online,
		"Rooms":     s.Rooms,
		"Active":    s.Transfers.Active,
		"Queued":    s.Transfers.Queued,
		"Capacity":  s.Transfers.Capacity,
		"Completed": s.Transfers.Completed,
		"Failed":    s.Transfers.Failed,
	}
}

func toInspectRow(entry storage.LedgerEntry) InspectRow {
	id := entry.ID
	if len(id) > 8 {
		id = id[:8]
	}
	row := InspectRow{
		ID:        id,
		Status:    entry.Status,
		Timestamp: "--:--:--",
		Filename:  entry.Filename,
		Route:     entry.Sender + " -> " + entry.Receiver,
		Size:      humanize.IBytes(uint64(max(entry.Size, 0))),
		Detail:    entry.Detail,
	}
	if !entry.CompletedAt.IsZero() {
		row.Timestamp = entry.CompletedAt.Format("15:04:05")
	}
	return row
}
