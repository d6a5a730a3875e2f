package domain

import (
	"fmt"
	"strings"
	"time"
)

// Line prefixes of the text protocol. Every server line ends with a newline.
const (
	PrefixOK         = "OK:"
	PrefixError      = "ERROR:"
	PrefixFileNotify = "FILE_NOTIFY:"
	PrefixServerDown = "SERVER_DOWN:"

	MaxLineLength = 1024
)

const (
	ShutdownNotice = PrefixServerDown + "Server is shutting down NOW."

	ReasonShutdownBeforeStart  = "Server shutdown before transfer started"
	ReasonShutdownDuringUpload = "Server shutdown during transfer"
)

func OK(format string, args ...any) string {
	return PrefixOK + fmt.Sprintf(format, args...)
}

func Error(text string) string {
	return PrefixError + text
}

func JoinNotice(room, name string) string {
	return fmt.Sprintf("[%s][SERVER] User '%s' has joined the room.", room, name)
}

func LeaveNotice(room, name string) string {
	return fmt.Sprintf("[%s][SERVER] User '%s' has left the room.", room, name)
}

func RoomMessage(room, sender, text string) string {
	return fmt.Sprintf("[%s] %s: %s", room, sender, text)
}

func WhisperMessage(sender, text string) string {
	return fmt.Sprintf("[WHISPER from %s]: %s", sender, text)
}

// WaitMessage renders a queue wait estimate.
func WaitMessage(d time.Duration) string {
	switch {
	case d <= 100*time.Millisecond:
		return "Processing will begin immediately."
	case d < time.Minute:
		return fmt.Sprintf("Estimated wait time: %.1f seconds.", d.Seconds())
	default:
		return fmt.Sprintf("Estimated wait time: %.1f minutes.", d.Minutes())
	}
}

func QueuedMessage(filename string, position int, wait time.Duration) string {
	return OK("File '%s' queued for transfer (position %d in queue). %s", filename, position, WaitMessage(wait))
}

func StartedMessage(t Transfer) string {
	wait := t.QueueWait()
	if wait < time.Second {
		return OK("File '%s' processing started immediately.", t.Filename)
	}
	return OK("File '%s' processing started after %.0f seconds in queue.", t.Filename, wait.Seconds())
}

func CompletedMessage(t Transfer) string {
	return OK("File '%s' sent successfully to '%s' (processed in %.1f seconds).", t.Filename, t.Receiver, t.ProcessingTime().Seconds())
}

func FileNotifyMessage(t Transfer) string {
	return PrefixFileNotify + fmt.Sprintf("You received file '%s' from '%s' (size: %d bytes)", t.Filename, t.Sender, t.Size)
}

func FailedMessage(reason string) string {
	return Error("File transfer failed: " + reason)
}

func StatusMessage(s ServerStats) string {
	return OK("Server Status: %d clients online, File transfers: %d active, %d queued, %d completed, %d failed",
		s.Online, s.Transfers.Active, s.Transfers.Queued, s.Transfers.Completed, s.Transfers.Failed)
}

// TrimLine strips the line terminator and bounds the line to MaxLineLength bytes.
func TrimLine(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if len(line) > MaxLineLength {
		line = line[:MaxLineLength]
	}
	return line
}
