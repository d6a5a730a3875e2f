package tcp

import (
	"bufio"
	"chat-hub/domain"
	"chat-hub/services"
	"context"
	"io"
	"log/slog"
	"strings"
)

type session struct {
	log    *slog.Logger
	chat   services.IChatService
	id     domain.SessionID
	reader *bufio.Reader
}

func newSession(log *slog.Logger, chat services.IChatService, id domain.SessionID, r io.Reader) *session {
	return &session{
		log:    log,
		chat:   chat,
		id:     id,
		reader: bufio.NewReaderSize(r, domain.MaxLineLength),
	}
}

// run logs the client in then dispatches its commands until it leaves or the
// connection drops. Canceling ctx does not end the session: shutdown closes
// the connection once every client got the shutdown notice. Cleanup runs on
// every exit path.
func (s *session) run(ctx context.Context) {
	defer s.chat.Disconnect(s.id)

	if !s.login() {
		return
	}
	for {
		line, err := s.readLine()
		if err != nil {
			s.log.Debug("Session read ended", "session", s.id.String(), "error", err)
			return
		}
		if line == "" {
			continue
		}
		s.log.Debug("Command received", "session", s.id.String(), "line", line)
		reply, exit := s.chat.Handle(ctx, s.id, line)
		if err := s.chat.Reply(s.id, reply); err != nil {
			s.log.Debug("Reply not delivered", "session", s.id.String(), "error", err)
			return
		}
		if exit {
			return
		}
	}
}

func (s *session) login() bool {
	for {
		name, err := s.readLine()
		if err != nil {
			return false
		}
		reply, ok := s.chat.Login(s.id, strings.TrimSpace(name))
		if err := s.chat.Reply(s.id, reply); err != nil {
			return false
		}
		if ok {
			return true
		}
	}
}

// readLine returns the next line without its terminator. Lines longer than
// the protocol bound are truncated and the rest is discarded.
func (s *session) readLine() (string, error) {
	chunk, err := s.reader.ReadSlice('\n')
	switch {
	case err == nil:
		return domain.TrimLine(string(chunk)), nil
	case err == io.EOF && len(chunk) > 0:
		return domain.TrimLine(string(chunk)), nil
	case err != bufio.ErrBufferFull:
		return "", err
	}

	line := string(chunk)
	for err == bufio.ErrBufferFull {
		_, err = s.reader.ReadSlice('\n')
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	return domain.TrimLine(line), nil
}
