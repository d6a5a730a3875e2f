package e2e

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

type BaseSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ChatAddr == "" {
		s.T().Skip("CHATHUB_ADDR not set, no running chathub to test against")
	}
}

func (s *BaseSuite) header(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// GrpcConn opens a client connection that logs every unary call.
func (s *BaseSuite) GrpcConn(t *testing.T, name string, addr string) *grpc.ClientConn {
	s.header(t, name)
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(callLogger(t, s.Config.DebugJSON)),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+addr)
	return conn
}

// callLogger logs method, status and latency; with dumpJSON the request and
// response bodies are appended as indented JSON.
func callLogger(t *testing.T, dumpJSON bool) grpc.UnaryClientInterceptor {
	marshaler := protojson.MarshalOptions{UseProtoNames: true, Multiline: true, EmitUnpopulated: true}
	dump := func(label string, m any) string {
		if msg, ok := m.(proto.Message); ok {
			return fmt.Sprintf("\n%s:\n%s", label, marshaler.Format(msg))
		}
		return ""
	}

	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)

		var out strings.Builder
		fmt.Fprintf(&out, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))
		if dumpJSON {
			out.WriteString(dump("REQUEST", req))
			if err != nil {
				fmt.Fprintf(&out, "\nERROR: %v", err)
			} else {
				out.WriteString(dump("RESPONSE", reply))
			}
		}
		t.Log(out.String())
		return err
	}
}

// WithHealth provides a health client within a contextual test step
func (s *BaseSuite) WithHealth(name string, fn func(ctx context.Context, client healthpb.HealthClient)) {
	if s.Config.HealthAddr == "" {
		s.T().Skip("CHATHUB_HEALTH_ADDR not set")
	}
	conn := s.GrpcConn(s.T(), name, s.Config.HealthAddr)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fn(ctx, healthpb.NewHealthClient(conn))
}

// ChatClient is a line-oriented TCP client logging every exchanged line.
type ChatClient struct {
	t      *testing.T
	name   string
	conn   net.Conn
	reader *bufio.Reader
}

// Dial opens a chat connection and logs in as name.
func (s *BaseSuite) Dial(name string) *ChatClient {
	t := s.T()
	s.header(t, "connect "+name)
	conn, err := net.Dial("tcp", s.Config.ChatAddr)
	s.Require().NoError(err, "Failed to connect to chathub at "+s.Config.ChatAddr)
	t.Cleanup(func() { _ = conn.Close() })

	c := &ChatClient{t: t, name: name, conn: conn, reader: bufio.NewReader(conn)}
	c.Send(name)
	s.Require().Equal("OK:Welcome, "+name+"!", c.Read())
	return c
}

func (c *ChatClient) Send(line string) {
	c.t.Logf("%s >> %s", c.name, line)
	_, err := c.conn.Write([]byte(line + "\n"))
	if err != nil {
		c.t.Fatalf("write failed for %s: %v", c.name, err)
	}
}

// Read returns the next line, or an empty string after ten seconds of silence.
func (c *ChatClient) Read() string {
	_ = c.conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	line, err := c.reader.ReadString('\n')
	if err != nil {
		c.t.Logf("%s read error: %v", c.name, err)
		return ""
	}
	line = strings.TrimSuffix(line, "\n")
	c.t.Logf("%s << %s", c.name, line)
	return line
}
