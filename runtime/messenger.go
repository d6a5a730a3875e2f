package runtime

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"log/slog"
)

// Messenger implements room membership, room broadcast and whispers on top
// of the registry and the room directory. Each call returns the single
// OK line for the caller or an errors.Reply.
type Messenger struct {
	log      *slog.Logger
	registry *Registry
	rooms    *RoomDirectory
	maxRooms int
	maxUsers int
}

func NewMessenger(log *slog.Logger, registry *Registry, rooms *RoomDirectory, maxRooms, maxUsers int) *Messenger {
	return &Messenger{
		log:      log,
		registry: registry,
		rooms:    rooms,
		maxRooms: maxRooms,
		maxUsers: maxUsers,
	}
}

func (m *Messenger) Join(id domain.SessionID, name string) (string, error) {
	if err := domain.ValidateRoomName(name); err != nil {
		return "", errors.Reject(err, "Invalid room name. Max %d chars, alphanumeric only.", domain.MaxRoomNameLength)
	}
	session, ok := m.registry.Session(id)
	if !ok {
		return "", errors.ErrUnknownSession
	}
	if session.Room == name {
		return "", errors.Reject(errors.ErrAlreadyInRoom, "You are already in room '%s'.", name)
	}
	if session.InRoom() {
		if _, err := m.leave(session, false); err != nil {
			m.log.Warn("Implicit leave failed", "user", session.Name, "room", session.Room, "error", err)
		}
	}

	for {
		slot, created, err := m.rooms.acquire(name)
		if err != nil {
			return "", errors.Reject(err, "Server has reached maximum room capacity (%d). Cannot create '%s'.", m.maxRooms, name)
		}

		slot.mu.Lock()
		if !slot.active || slot.room.Name != name {
			// Deactivated between lookup and lock.
			slot.mu.Unlock()
			continue
		}
		if !slot.room.Add(id) {
			slot.mu.Unlock()
			if created {
				m.rooms.release(slot, name)
			}
			return "", errors.Reject(errors.ErrRoomFull, "Room '%s' is full (max %d users).", name, m.maxUsers)
		}
		m.registry.SetRoom(id, name)
		notice := domain.JoinNotice(name, session.Name)
		for _, member := range slot.room.Members() {
			if member != id {
				_ = m.registry.Send(member, notice)
			}
		}
		slot.mu.Unlock()

		m.log.Info("Joined room", "user", session.Name, "room", name, "created", created)
		if created {
			return domain.OK("You joined room '%s'. (New room created)", name), nil
		}
		return domain.OK("You joined room '%s'.", name), nil
	}
}

func (m *Messenger) Leave(id domain.SessionID) (string, error) {
	session, ok := m.registry.Session(id)
	if !ok {
		return "", errors.ErrUnknownSession
	}
	return m.leave(session, true)
}

// LeaveSilently drops the session from its room without a reply, on disconnect.
func (m *Messenger) LeaveSilently(id domain.SessionID) {
	session, ok := m.registry.Session(id)
	if !ok || !session.InRoom() {
		return
	}
	if _, err := m.leave(session, false); err != nil {
		m.log.Debug("Leave on disconnect", "user", session.Name, "error", err)
	}
}

func (m *Messenger) leave(session domain.Session, notify bool) (string, error) {
	name := session.Room
	if name == "" {
		return "", errors.Reject(errors.ErrNotInRoom, "You are not currently in any room.")
	}
	slot := m.rooms.find(name)
	if slot == nil {
		m.registry.SetRoom(session.ID, "")
		return "", errors.Reject(errors.ErrRoomGone, "Error leaving room '%s': room no longer exists.", name)
	}

	slot.mu.Lock()
	removed := slot.active && slot.room.Name == name && slot.room.Remove(session.ID)
	remaining := slot.room.Count()
	if removed {
		notice := domain.LeaveNotice(name, session.Name)
		for _, member := range slot.room.Members() {
			_ = m.registry.Send(member, notice)
		}
	}
	slot.mu.Unlock()

	m.registry.SetRoom(session.ID, "")
	if removed && remaining == 0 && m.rooms.release(slot, name) {
		m.log.Info("Room closed", "room", name)
	}
	m.log.Info("Left room", "user", session.Name, "room", name)

	if !notify {
		return "", nil
	}
	return domain.OK("You have left room '%s'.", name), nil
}

// Broadcast fans text out to every other member of the sender's room.
func (m *Messenger) Broadcast(id domain.SessionID, text string) (string, error) {
	session, ok := m.registry.Session(id)
	if !ok {
		return "", errors.ErrUnknownSession
	}
	if !session.InRoom() {
		return "", errors.Reject(errors.ErrNotInRoom, "You are not in a room. Join a room first to broadcast.")
	}
	if text == "" {
		return "", errors.Reject(errors.ErrEmptyMessage, "Cannot broadcast an empty message.")
	}
	slot := m.rooms.find(session.Room)
	if slot == nil {
		return "", errors.Reject(errors.ErrRoomGone, "Room '%s' no longer exists.", session.Room)
	}

	line := domain.RoomMessage(session.Room, session.Name, text)
	delivered := 0
	slot.mu.Lock()
	for _, member := range slot.room.Members() {
		if member == id {
			continue
		}
		if err := m.registry.Send(member, line); err == nil {
			delivered++
		}
	}
	slot.mu.Unlock()

	m.log.Debug("Broadcast", "user", session.Name, "room", session.Room, "delivered", delivered)
	if delivered == 0 {
		return domain.OK("Message sent in '%s' (you are the only one here).", session.Room), nil
	}
	return domain.OK("Message broadcast to %d other user(s) in '%s'.", delivered, session.Room), nil
}

func (m *Messenger) Whisper(id domain.SessionID, target, text string) (string, error) {
	session, ok := m.registry.Session(id)
	if !ok {
		return "", errors.ErrUnknownSession
	}
	if target == "" {
		return "", errors.Reject(errors.ErrUsage, "Usage: /whisper <username> <message>")
	}
	if text == "" {
		return "", errors.Reject(errors.ErrEmptyMessage, "Cannot send empty whisper message.")
	}
	targetID, err := m.registry.Lookup(target)
	if err != nil {
		return "", errors.Reject(err, "User '%s' not found or offline.", target)
	}
	if targetID == id {
		return "", errors.Reject(errors.ErrSelfTarget, "Cannot whisper to yourself.")
	}
	if err := m.registry.Send(targetID, domain.WhisperMessage(session.Name, text)); err != nil {
		m.log.Warn("Whisper not delivered", "from", session.Name, "to", target, "error", err)
		return "", errors.Reject(err, "Failed to deliver whisper to '%s'.", target)
	}
	m.log.Info("Whisper", "from", session.Name, "to", target)
	return domain.OK("Whisper sent to '%s'.", target), nil
}
