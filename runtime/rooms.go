package runtime

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
)

// roomSlot is one entry of the room directory. Membership is guarded by mu,
// the active flag and name by both the directory lock and mu.
type roomSlot struct {
	mu     sync.Mutex
	room   *domain.Room
	active bool
}

// RoomDirectory is the fixed-capacity table of named rooms. Lock order is
// directory then room, and the registry is only ever locked after a room.
type RoomDirectory struct {
	mu    sync.Mutex
	slots []*roomSlot
}

func NewRoomDirectory(maxRooms, maxUsers int) *RoomDirectory {
	slots := make([]*roomSlot, maxRooms)
	for i := range slots {
		slots[i] = &roomSlot{room: domain.NewRoom("", maxUsers)}
	}
	return &RoomDirectory{slots: slots}
}

// acquire finds the active room called name or claims a free slot for it.
func (d *RoomDirectory) acquire(name string) (*roomSlot, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if slot := d.findLocked(name); slot != nil {
		return slot, false, nil
	}
	for _, slot := range d.slots {
		slot.mu.Lock()
		if !slot.active {
			slot.active = true
			slot.room.Reset(name)
			slot.mu.Unlock()
			return slot, true, nil
		}
		slot.mu.Unlock()
	}
	return nil, false, fmt.Errorf("%w: %d rooms", errors.ErrRoomLimit, len(d.slots))
}

func (d *RoomDirectory) find(name string) *roomSlot {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.findLocked(name)
}

func (d *RoomDirectory) findLocked(name string) *roomSlot {
	for _, slot := range d.slots {
		slot.mu.Lock()
		match := slot.active && slot.room.Name == name
		slot.mu.Unlock()
		if match {
			return slot
		}
	}
	return nil
}

// release deactivates the slot if it still holds name and nobody is in it.
func (d *RoomDirectory) release(slot *roomSlot, name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if !slot.active || slot.room.Name != name || slot.room.Count() > 0 {
		return false
	}
	slot.active = false
	slot.room.Reset("")
	return true
}

// Rooms lists the active room names in slot order.
func (d *RoomDirectory) Rooms() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return lo.FilterMap(d.slots, func(slot *roomSlot, _ int) (string, bool) {
		slot.mu.Lock()
		defer slot.mu.Unlock()
		return slot.room.Name, slot.active
	})
}

// Members lists the members of room in slot order.
func (d *RoomDirectory) Members(name string) []domain.SessionID {
	slot := d.find(name)
	if slot == nil {
		return nil
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if !slot.active || slot.room.Name != name {
		return nil
	}
	return slot.room.Members()
}
