package tcp

import (
	"bufio"
	"chat-hub/domain"
	"chat-hub/mocks"
	"chat-hub/runtime"
	"chat-hub/runtime/workers"
	"chat-hub/services"
	"context"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	server       *Server
	orchestrator *runtime.Orchestrator
	stopped      chan error
}

func newFixture(t *testing.T, clients int) *fixture {
	return newFixtureWithContext(t, context.Background(), clients)
}

func newFixtureWithContext(t *testing.T, ctx context.Context, clients int) *fixture {
	ctrl := gomock.NewController(t)
	log := slog.Default()
	registry := runtime.NewRegistry(log, clients, time.Second)
	rooms := runtime.NewRoomDirectory(5, 5)
	messenger := runtime.NewMessenger(log, registry, rooms, 5, 5)
	queue := runtime.NewUploadQueue(6, 2, 0)
	ledger := mocks.NewMockITransferLedger(ctrl)
	ledger.EXPECT().Count().Return(0, nil).AnyTimes()
	o := runtime.NewOrchestrator(log, workers.NewSupervisor(log, 10*time.Millisecond), registry, rooms, messenger, queue,
		mocks.NewMockIReceiptWriter(ctrl), ledger,
		runtime.Settings{NumberOfWorkers: 2, ProcessingUnit: time.Millisecond, MaxProcessingDelay: time.Millisecond})
	chat := services.NewChatService(log, o, services.NewTransferService(log, o, 3*1024*1024, 3500*time.Millisecond))

	server, err := Listen(log, "127.0.0.1:0", chat)
	require.NoError(t, err)

	f := &fixture{server: server, orchestrator: o, stopped: make(chan error, 1)}
	go func() { _ = o.Start(context.Background()) }()
	go func() { f.stopped <- server.Serve(ctx) }()
	t.Cleanup(func() {
		_ = server.Close()
		o.Stop()
		server.Wait()
	})
	return f
}

type client struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

func (f *fixture) dial(t *testing.T) *client {
	t.Helper()
	conn, err := net.Dial("tcp", f.server.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &client{t: t, conn: conn, reader: bufio.NewReader(conn)}
}

func (f *fixture) login(t *testing.T, name string) *client {
	t.Helper()
	c := f.dial(t)
	c.send(name)
	c.expect("OK:Welcome, " + name + "!")
	return c
}

func (c *client) send(line string) {
	c.t.Helper()
	_, err := c.conn.Write([]byte(line + "\n"))
	require.NoError(c.t, err)
}

func (c *client) read() (string, error) {
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := c.reader.ReadString('\n')
	return strings.TrimSuffix(line, "\n"), err
}

func (c *client) expect(want string) {
	c.t.Helper()
	line, err := c.read()
	require.NoError(c.t, err)
	require.Equal(c.t, want, line)
}

func TestServer_Login(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, 3)
	f.login(t, "alice")

	// Given a second client trying invalid then taken names
	c := f.dial(t)
	c.send("not valid!")
	c.expect("ERROR:Username invalid (max 16 chars, alphanumeric) or already taken.")
	c.send("alice")
	c.expect("ERROR:Username invalid (max 16 chars, alphanumeric) or already taken.")

	// When a free name is sent
	c.send("  bob  ")

	// Then the client is logged in
	c.expect("OK:Welcome, bob!")
	req.Eventually(func() bool { return f.orchestrator.Stats().Online == 2 }, time.Second, 10*time.Millisecond)
}

func TestServer_RoomScenario(t *testing.T) {
	f := newFixture(t, 5)
	alice := f.login(t, "alice")
	bob := f.login(t, "bob")

	alice.send("/join lobby")
	alice.expect("OK:You joined room 'lobby'. (New room created)")

	bob.send("/join lobby")
	alice.expect("[lobby][SERVER] User 'bob' has joined the room.")
	bob.expect("OK:You joined room 'lobby'.")

	alice.send("/broadcast hi all")
	bob.expect("[lobby] alice: hi all")
	alice.expect("OK:Message broadcast to 1 other user(s) in 'lobby'.")

	bob.send("/whisper alice psst")
	alice.expect("[WHISPER from bob]: psst")
	bob.expect("OK:Whisper sent to 'alice'.")

	bob.send("/leave")
	alice.expect("[lobby][SERVER] User 'bob' has left the room.")
	bob.expect("OK:You have left room 'lobby'.")

	bob.send("hello")
	bob.expect("ERROR:Invalid command format. Commands start with /.")
}

func TestServer_RejectsWhenFull(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, 1)
	f.login(t, "alice")

	// When a second client connects
	c := f.dial(t)

	// Then it is told the server is full and disconnected
	c.expect("ERROR:Server is full (max 1 clients). Try again later.")
	_, err := c.read()
	req.Error(err)
}

func TestServer_TruncatesLongLines(t *testing.T) {
	f := newFixture(t, 3)
	alice := f.login(t, "alice")
	bob := f.login(t, "bob")

	// Given a whisper longer than the line bound
	alice.send("/whisper bob " + strings.Repeat("x", 2000))

	// Then the tail is dropped and the connection stays usable
	bob.expect("[WHISPER from alice]: " + strings.Repeat("x", domain.MaxLineLength-len("/whisper bob ")))
	alice.expect("OK:Whisper sent to 'bob'.")
	alice.send("/status")
	line, err := alice.read()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(line, domain.PrefixOK), line)
}

func TestServer_ExitReleasesSession(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, 1)
	alice := f.login(t, "alice")
	alice.send("/join lobby")
	alice.expect("OK:You joined room 'lobby'. (New room created)")

	// When alice leaves
	alice.send("/exit")
	alice.expect("OK:Goodbye, alice!")

	// Then her slot and name are free again
	req.Eventually(func() bool { return f.orchestrator.Stats().Online == 0 }, time.Second, 10*time.Millisecond)
	req.Eventually(func() bool { return f.orchestrator.Stats().Rooms == 0 }, time.Second, 10*time.Millisecond)
	f.login(t, "alice")
}

func TestServer_Shutdown(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, 3)
	alice := f.login(t, "alice")
	bob := f.login(t, "bob")

	// When the server shuts down
	req.NoError(f.server.Close())
	f.orchestrator.Stop()

	// Then every client gets the notice and is disconnected
	for _, c := range []*client{alice, bob} {
		c.expect(domain.ShutdownNotice)
		_, err := c.read()
		req.Error(err)
	}
	f.server.Wait()
	req.NoError(<-f.stopped)
}

func TestServer_ShutdownReachesBusyClients(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newFixtureWithContext(t, ctx, 3)
	alice := f.login(t, "alice")

	// Given a client that keeps sending commands
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			if _, err := alice.conn.Write([]byte("/status\n")); err != nil {
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()
	line, err := alice.read()
	req.NoError(err)
	req.True(strings.HasPrefix(line, "OK:Server Status"), line)

	// When the server shuts down the way the binary does
	cancel()
	req.NoError(f.server.Close())
	f.orchestrator.Stop()

	// Then the client still gets the notice before the connection closes
	notified := false
	for {
		line, err := alice.read()
		if err != nil {
			break
		}
		notified = notified || line == domain.ShutdownNotice
	}
	req.True(notified)
	f.server.Wait()
	req.NoError(<-f.stopped)
}
