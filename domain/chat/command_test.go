package chat

import (
	"chat-hub/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{"Join", "/join lobby", JoinCommand{Room: "lobby"}},
		{"Join extra spaces", "/join    lobby  ", JoinCommand{Room: "lobby"}},
		{"Join without room", "/join", JoinCommand{Room: ""}},
		{"Leave", "/leave", LeaveCommand{}},
		{"Broadcast", "/broadcast hello all", BroadcastCommand{Text: "hello all"}},
		{"Broadcast empty", "/broadcast", BroadcastCommand{Text: ""}},
		{"Whisper", "/whisper bob  see you soon", WhisperCommand{Target: "bob", Text: "see you soon"}},
		{"Whisper without text", "/whisper bob ", WhisperCommand{Target: "bob", Text: ""}},
		{"Sendfile", "/sendfile report.pdf bob 1024", SendFileCommand{Filename: "report.pdf", Target: "bob", Size: 1024}},
		{"Sendfile quoted", `/sendfile "my notes.txt" bob 12`, SendFileCommand{Filename: "my notes.txt", Target: "bob", Size: 12}},
		{"Sendfile no size", "/sendfile report.pdf bob", SendFileCommand{Filename: "report.pdf", Target: "bob"}},
		{"Sendfile bad size", "/sendfile report.pdf bob big", SendFileCommand{Filename: "report.pdf", Target: "bob"}},
		{"Sendfile negative size", "/sendfile report.pdf bob -4", SendFileCommand{Filename: "report.pdf", Target: "bob", Size: -4}},
		{"Status", "/status", StatusCommand{}},
		{"Exit", "/exit", ExitCommand{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		cause error
		text  string
	}{
		{"Plain text", "hello", errors.ErrUnknownCommand, UsageFormat},
		{"Unknown verb", "/dance", errors.ErrUnknownCommand, UsageUnknown},
		{"Whisper without text", "/whisper bob", errors.ErrUsage, UsageWhisper},
		{"Whisper without args", "/whisper", errors.ErrUsage, UsageWhisper},
		{"Sendfile without target", "/sendfile report.pdf", errors.ErrUsage, UsageSendFile},
		{"Sendfile unclosed quote", `/sendfile "report.pdf bob 12`, errors.ErrUsage, UsageSendFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			_, err := Parse(tt.line)
			req.ErrorIs(err, tt.cause)
			text, ok := errors.ReplyText(err)
			req.True(ok)
			req.Equal(tt.text, text)
		})
	}
}
