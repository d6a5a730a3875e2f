package chat

import (
	"chat-hub/errors"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
)

const (
	UsageWhisper  = "Usage: /whisper <username> <message>"
	UsageSendFile = "Usage: /sendfile <filename> <username> <size>"
	UsageUnknown  = "Unknown command. Available: /join <room>, /leave, /broadcast <msg>, /whisper <user> <msg>, /sendfile <file> <user> <size>, /status, /exit"
	UsageFormat   = "Invalid command format. Commands start with /."
)

type Command interface {
	Name() string
}

type JoinCommand struct {
	Room string
}

type LeaveCommand struct{}

type BroadcastCommand struct {
	Text string
}

type WhisperCommand struct {
	Target string
	Text   string
}

// SendFileCommand carries a zero Size when the size was missing or unreadable.
type SendFileCommand struct {
	Filename string
	Target   string
	Size     int64
}

type StatusCommand struct{}

type ExitCommand struct{}

func (JoinCommand) Name() string      { return "join" }
func (LeaveCommand) Name() string     { return "leave" }
func (BroadcastCommand) Name() string { return "broadcast" }
func (WhisperCommand) Name() string   { return "whisper" }
func (SendFileCommand) Name() string  { return "sendfile" }
func (StatusCommand) Name() string    { return "status" }
func (ExitCommand) Name() string      { return "exit" }

// Parse turns a protocol line into a command. Rejections are errors.Reply values.
func Parse(line string) (Command, error) {
	if !strings.HasPrefix(line, "/") {
		return nil, errors.Reject(errors.ErrUnknownCommand, UsageFormat)
	}
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimLeft(rest, " ")

	switch verb {
	case "/join":
		return JoinCommand{Room: strings.TrimSpace(rest)}, nil
	case "/leave":
		return LeaveCommand{}, nil
	case "/broadcast":
		return BroadcastCommand{Text: rest}, nil
	case "/whisper":
		return parseWhisper(rest)
	case "/sendfile":
		return parseSendFile(rest)
	case "/status":
		return StatusCommand{}, nil
	case "/exit":
		return ExitCommand{}, nil
	default:
		return nil, errors.Reject(errors.ErrUnknownCommand, UsageUnknown)
	}
}

func parseWhisper(args string) (Command, error) {
	target, text, found := strings.Cut(args, " ")
	if !found || target == "" {
		return nil, errors.Reject(errors.ErrUsage, UsageWhisper)
	}
	return WhisperCommand{Target: target, Text: strings.TrimLeft(text, " ")}, nil
}

// parseSendFile accepts quoted filenames: /sendfile "my notes.txt" bob 120
func parseSendFile(args string) (Command, error) {
	words, err := shellwords.Parse(args)
	if err != nil || len(words) < 2 || words[0] == "" || words[1] == "" {
		return nil, errors.Reject(errors.ErrUsage, UsageSendFile)
	}
	cmd := SendFileCommand{Filename: words[0], Target: words[1]}
	if len(words) > 2 {
		// Unparsable sizes stay zero and read as missing.
		if size, err := strconv.ParseInt(words[2], 10, 64); err == nil {
			cmd.Size = size
		}
	}
	return cmd, nil
}
