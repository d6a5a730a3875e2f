// Package domain contains core concepts of the chat hub.
// No network, storage or goroutine management belongs here.
package domain

import (
	"fmt"
	"io"
	"time"
)

// SessionID addresses a registry slot. Gen changes every time the slot is
// reused, so a stale id never resolves to a newer client.
type SessionID struct {
	Slot int
	Gen  uint64
}

var NoSession = SessionID{Slot: -1}

func (id SessionID) String() string {
	return fmt.Sprintf("%d#%d", id.Slot, id.Gen)
}

// Conn is the part of a client connection the hub writes to.
type Conn interface {
	io.Writer
	io.Closer
	SetWriteDeadline(t time.Time) error
}

// Session is a copy of a registry entry.
type Session struct {
	ID     SessionID
	Name   string
	Addr   string
	Room   string
	Active bool
}

func (s Session) InRoom() bool {
	return s.Room != ""
}
