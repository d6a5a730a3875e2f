package tcp

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"chat-hub/services"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
)

// Server accepts TCP clients and runs one session goroutine per connection.
type Server struct {
	log       *slog.Logger
	listener  net.Listener
	chat      services.IChatService
	wg        sync.WaitGroup
	closeOnce sync.Once
	closed    chan struct{}
}

func Listen(log *slog.Logger, address string, chat services.IChatService) (*Server, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return &Server{log: log, listener: listener, chat: chat, closed: make(chan struct{})}, nil
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed or ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("Chat server listening", "address", s.listener.Addr().String())
	go func() {
		select {
		case <-ctx.Done():
			_ = s.Close()
		case <-s.closed:
		}
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closed:
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Warn("Accept failed", "error", err)
			continue
		}
		s.accept(ctx, conn)
	}
}

func (s *Server) accept(ctx context.Context, conn net.Conn) {
	addr := conn.RemoteAddr().String()
	id, err := s.chat.Connect(conn, addr)
	if err != nil {
		if text, ok := errors.ReplyText(err); ok {
			_, _ = io.WriteString(conn, domain.Error(text)+"\n")
		}
		_ = conn.Close()
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		newSession(s.log, s.chat, id, conn).run(ctx)
	}()
}

// Close stops accepting. Sessions keep running until their connection closes.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		err = s.listener.Close()
	})
	return err
}

// Wait blocks until every session goroutine returned.
func (s *Server) Wait() {
	s.wg.Wait()
}
