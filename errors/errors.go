package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Validation
	ErrInvalidName     = fmt.Errorf("invalid username")
	ErrDuplicateName   = fmt.Errorf("username already taken")
	ErrInvalidRoomName = fmt.Errorf("invalid room name")
	ErrInvalidFilename = fmt.Errorf("invalid filename")
	ErrFileType        = fmt.Errorf("file type not allowed")
	ErrFileTooLarge    = fmt.Errorf("file exceeds maximum size")
	ErrEmptyFile       = fmt.Errorf("empty file")
	ErrMissingSize     = fmt.Errorf("file size required")
	ErrEmptyMessage    = fmt.Errorf("empty message")
	ErrSelfTarget      = fmt.Errorf("cannot target yourself")
	ErrUsage           = fmt.Errorf("invalid command usage")
	ErrUnknownCommand  = fmt.Errorf("unknown command")
	ErrAlreadyInRoom   = fmt.Errorf("already in room")

	// Capacity
	ErrServerFull = fmt.Errorf("server is full")
	ErrRoomFull   = fmt.Errorf("room is full")
	ErrRoomLimit  = fmt.Errorf("room limit reached")
	ErrQueueFull  = fmt.Errorf("upload queue is full")

	// Not found
	ErrUserNotFound   = fmt.Errorf("user not found")
	ErrNotInRoom      = fmt.Errorf("not in a room")
	ErrRoomGone       = fmt.Errorf("room no longer exists")
	ErrUnknownSession = fmt.Errorf("unknown session")

	ErrTransferFailed = fmt.Errorf("transfer failed")
	ErrDropped        = fmt.Errorf("connection dropped")
	ErrShuttingDown   = fmt.Errorf("server shutting down")

	ErrInvalidPort = fmt.Errorf("invalid port")
)

// Reply is a rejection carrying the exact text sent back to the client.
type Reply struct {
	Text string
	Err  error
}

func (r *Reply) Error() string {
	return r.Text
}

func (r *Reply) Unwrap() error {
	return r.Err
}

// Reject builds a Reply wrapping cause.
func Reject(cause error, format string, args ...any) error {
	return &Reply{Text: fmt.Sprintf(format, args...), Err: cause}
}

// ReplyText returns the client text of err, and false if err is not a Reply.
func ReplyText(err error) (string, bool) {
	var reply *Reply
	if stderrors.As(err, &reply) {
		return reply.Text, true
	}
	return "", false
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
