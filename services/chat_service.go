package services

import (
	"chat-hub/domain"
	"chat-hub/domain/chat"
	"chat-hub/errors"
	"chat-hub/runtime"
	"context"
	"log/slog"
	"sync"
)

const (
	loginRejected = "Username invalid (max 16 chars, alphanumeric) or already taken."
	internalError = "Internal server error."
)

type IChatService interface {
	Connect(conn domain.Conn, addr string) (domain.SessionID, error)
	Login(id domain.SessionID, name string) (string, bool)
	Handle(ctx context.Context, id domain.SessionID, line string) (string, bool)
	Reply(id domain.SessionID, text string) error
	Disconnect(id domain.SessionID)
}

// ChatService turns protocol lines into calls on the runtime and renders
// exactly one reply line per command.
type ChatService struct {
	log          *slog.Logger
	orchestrator *runtime.Orchestrator
	transfers    *TransferService

	mu sync.Mutex
	// announcements holds, per session, the release of a queued transfer
	// whose reply has not been written yet.
	announcements map[domain.SessionID]func()
}

func NewChatService(log *slog.Logger, o *runtime.Orchestrator, transfers *TransferService) *ChatService {
	return &ChatService{
		log:           log,
		orchestrator:  o,
		transfers:     transfers,
		announcements: make(map[domain.SessionID]func()),
	}
}

// Connect reserves a session slot. When the server is full the returned
// error is an errors.Reply for the peer.
func (s *ChatService) Connect(conn domain.Conn, addr string) (domain.SessionID, error) {
	registry := s.orchestrator.Registry()
	id, err := registry.Reserve(conn, addr)
	if err != nil {
		s.log.Warn("Connection refused", "address", addr, "error", err)
		return id, errors.Reject(err, "Server is full (max %d clients). Try again later.", registry.Capacity())
	}
	s.log.Info("Client connected", "address", addr, "session", id.String())
	return id, nil
}

// Login binds name to the session. The bool is false when the name was refused.
func (s *ChatService) Login(id domain.SessionID, name string) (string, bool) {
	if err := s.orchestrator.Registry().Register(id, name); err != nil {
		s.log.Debug("Login refused", "session", id.String(), "name", name, "error", err)
		return domain.Error(loginRejected), false
	}
	s.log.Info("Client logged in", "user", name, "session", id.String())
	return domain.OK("Welcome, %s!", name), true
}

// Handle runs one command line. The bool is true when the session asked to leave.
func (s *ChatService) Handle(ctx context.Context, id domain.SessionID, line string) (string, bool) {
	cmd, err := chat.Parse(line)
	if err != nil {
		return s.render(id, "parse", err), false
	}

	messenger := s.orchestrator.Messenger()
	var reply string
	switch c := cmd.(type) {
	case chat.JoinCommand:
		reply, err = messenger.Join(id, c.Room)
	case chat.LeaveCommand:
		reply, err = messenger.Leave(id)
	case chat.BroadcastCommand:
		reply, err = messenger.Broadcast(id, c.Text)
	case chat.WhisperCommand:
		reply, err = messenger.Whisper(id, c.Target, c.Text)
	case chat.SendFileCommand:
		var announce func()
		reply, announce, err = s.transfers.SendFile(ctx, id, c)
		if announce != nil {
			s.hold(id, announce)
		}
	case chat.StatusCommand:
		reply = domain.StatusMessage(s.orchestrator.Stats())
	case chat.ExitCommand:
		session, _ := s.orchestrator.Registry().Session(id)
		return domain.OK("Goodbye, %s!", session.Name), true
	}
	if err != nil {
		return s.render(id, cmd.Name(), err), false
	}
	return reply, false
}

// Reply writes text to the session. A transfer queued by the command being
// answered is only announced by workers once this write returned.
func (s *ChatService) Reply(id domain.SessionID, text string) error {
	defer s.release(id)
	return s.orchestrator.Registry().Send(id, text)
}

func (s *ChatService) hold(id domain.SessionID, announce func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcements[id] = announce
}

func (s *ChatService) release(id domain.SessionID) {
	s.mu.Lock()
	announce, ok := s.announcements[id]
	delete(s.announcements, id)
	s.mu.Unlock()
	if ok {
		announce()
	}
}

// Disconnect leaves the current room silently and frees the session slot.
func (s *ChatService) Disconnect(id domain.SessionID) {
	s.release(id)
	registry := s.orchestrator.Registry()
	session, ok := registry.Session(id)
	if !ok {
		return
	}
	s.orchestrator.Messenger().LeaveSilently(id)
	registry.Unregister(id)
	s.log.Info("Client disconnected", "user", session.Name, "address", session.Addr)
}

func (s *ChatService) render(id domain.SessionID, command string, err error) string {
	if text, ok := errors.ReplyText(err); ok {
		s.log.Debug("Command rejected", "session", id.String(), "command", command, "reason", text)
		return domain.Error(text)
	}
	s.log.Error("Command failed", "session", id.String(), "command", command, "error", err)
	return domain.Error(internalError)
}
