package runtime

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

type entry struct {
	conn domain.Conn
	gen  uint64
	used bool
	name string
	addr string
	room string
}

// Registry is the fixed-capacity table of connected clients.
// Every lookup, mutation and network write happens under mu, so a send
// decision is never taken on a stale entry. A slow peer stalls other writers
// for at most writeTimeout.
type Registry struct {
	mu           sync.Mutex
	entries      []entry
	gen          uint64
	writeTimeout time.Duration
	log          *slog.Logger
}

func NewRegistry(log *slog.Logger, capacity int, writeTimeout time.Duration) *Registry {
	return &Registry{
		entries:      make([]entry, capacity),
		writeTimeout: writeTimeout,
		log:          log,
	}
}

func (r *Registry) Capacity() int {
	return len(r.entries)
}

// Reserve allocates a slot for a freshly accepted connection, before login.
func (r *Registry) Reserve(conn domain.Conn, addr string) (domain.SessionID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].used {
			continue
		}
		r.gen++
		r.entries[i] = entry{conn: conn, gen: r.gen, used: true, addr: addr}
		return domain.SessionID{Slot: i, Gen: r.gen}, nil
	}
	return domain.NoSession, errors.ErrServerFull
}

// Register binds name to the session. The uniqueness check and the binding
// happen under the same lock.
func (r *Registry) Register(id domain.SessionID, name string) error {
	if err := domain.ValidateUsername(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.resolveLocked(id)
	if err != nil {
		return err
	}
	for i := range r.entries {
		if r.entries[i].used && r.entries[i].name == name {
			return fmt.Errorf("%w: %s", errors.ErrDuplicateName, name)
		}
	}
	e.name = name
	return nil
}

func (r *Registry) Lookup(name string) (domain.SessionID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.used && e.name != "" && e.name == name {
			return domain.SessionID{Slot: i, Gen: e.gen}, nil
		}
	}
	return domain.NoSession, fmt.Errorf("%w: %s", errors.ErrUserNotFound, name)
}

// Session returns a copy of the entry behind id.
func (r *Registry) Session(id domain.SessionID) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.resolveLocked(id)
	if err != nil {
		return domain.Session{}, false
	}
	return domain.Session{ID: id, Name: e.name, Addr: e.addr, Room: e.room, Active: e.used}, true
}

func (r *Registry) SetRoom(id domain.SessionID, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.resolveLocked(id)
	if err != nil {
		return false
	}
	e.room = room
	return true
}

// Send writes one line to the session.
func (r *Registry) Send(id domain.SessionID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.resolveLocked(id)
	if err != nil {
		return err
	}
	return r.writeLocked(e, text)
}

// Deliver is Send under the name workers know it by.
func (r *Registry) Deliver(id domain.SessionID, text string) error {
	return r.Send(id, text)
}

// Unregister frees the slot and closes its connection. Unknown ids are ignored.
func (r *Registry) Unregister(id domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.resolveLocked(id)
	if err != nil {
		return
	}
	if err := e.conn.Close(); err != nil {
		r.log.Debug("Close on unregister", "session", id.String(), "error", err)
	}
	*e = entry{}
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return lo.CountBy(r.entries, func(e entry) bool { return e.used })
}

// Broadcast sends text to every connected session, logged in or not, and
// returns the number of successful writes.
func (r *Registry) Broadcast(text string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	delivered := 0
	for i := range r.entries {
		if !r.entries[i].used {
			continue
		}
		if err := r.writeLocked(&r.entries[i], text); err == nil {
			delivered++
		}
	}
	return delivered
}

// CloseAll closes every connection. Slots stay reserved until their session
// unregisters.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].used {
			_ = r.entries[i].conn.Close()
		}
	}
}

func (r *Registry) resolveLocked(id domain.SessionID) (*entry, error) {
	if id.Slot < 0 || id.Slot >= len(r.entries) {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownSession, id)
	}
	e := &r.entries[id.Slot]
	if !e.used || e.gen != id.Gen {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownSession, id)
	}
	return e, nil
}

func (r *Registry) writeLocked(e *entry, text string) error {
	if r.writeTimeout > 0 {
		_ = e.conn.SetWriteDeadline(time.Now().Add(r.writeTimeout))
	}
	if _, err := io.WriteString(e.conn, text+"\n"); err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrDropped, e.addr, err)
	}
	return nil
}
