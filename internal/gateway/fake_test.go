package gateway

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/asianchinaboi/brocord/internal/logger"
	"github.com/asianchinaboi/brocord/internal/transport"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// fakeDialer connects synchronously, handing out a fresh fakeConn each time.
type fakeDialer struct {
	mu        sync.Mutex
	fail      error
	urls      []string
	conns     []*fakeConn
	onConnect func(transport.Conn)
	onFailed  func(error)
}

func (d *fakeDialer) OnConnect(fn func(transport.Conn)) { d.onConnect = fn }
func (d *fakeDialer) OnConnectFailed(fn func(error))    { d.onFailed = fn }

func (d *fakeDialer) Connect(url string) {
	d.mu.Lock()
	d.urls = append(d.urls, url)
	fail := d.fail
	d.mu.Unlock()
	if fail != nil {
		d.onFailed(fail)
		return
	}
	c := &fakeConn{}
	d.mu.Lock()
	d.conns = append(d.conns, c)
	d.mu.Unlock()
	d.onConnect(c)
}

func (d *fakeDialer) last() *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conns[len(d.conns)-1]
}

type fakeConn struct {
	mu        sync.Mutex
	sent      []string
	closed    bool
	onError   func(error)
	onClose   func(int, string)
	onMessage func(transport.Message)
}

func (c *fakeConn) OnError(fn func(error))               { c.onError = fn }
func (c *fakeConn) OnClose(fn func(int, string))         { c.onClose = fn }
func (c *fakeConn) OnMessage(fn func(transport.Message)) { c.onMessage = fn }

func (c *fakeConn) SendText(data string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.ErrNotConnected
	}
	c.sent = append(c.sent, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) text(s string) {
	c.onMessage(transport.Message{Type: transport.TextMessage, Data: []byte(s)})
}

func (c *fakeConn) serverClose(code int) {
	c.Close()
	c.onClose(code, "")
}

func (c *fakeConn) frames() []sendFrameJSON {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sendFrameJSON, 0, len(c.sent))
	for _, s := range c.sent {
		var f sendFrameJSON
		if err := json.Unmarshal([]byte(s), &f); err != nil {
			panic(err)
		}
		f.raw = s
		out = append(out, f)
	}
	return out
}

func (c *fakeConn) count(op Opcode) int {
	n := 0
	for _, f := range c.frames() {
		if f.Op == op {
			n++
		}
	}
	return n
}

type sendFrameJSON struct {
	Op   Opcode          `json:"op"`
	Data json.RawMessage `json:"d"`
	raw  string
}

type published struct {
	event string
	frame DataFrame
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) Publish(event string, frame DataFrame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{event, frame})
}

func (r *recorder) all() []published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]published(nil), r.events...)
}

func newTestSession(t *testing.T) (*Session, *fakeDialer, *recorder) {
	t.Helper()
	d := &fakeDialer{}
	r := &recorder{}
	s := NewSession(Config{
		URL:        "wss://gateway.test/?v=9&encoding=json",
		Intents:    DefaultIntents,
		Properties: Properties{OS: "linux", Browser: "brocord", Device: "brocord"},
		Token:      func() string { return "secret" },
	}, d, r)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})
	return s, d, r
}

// connect starts s and returns the connection the fake dialer produced.
func connect(t *testing.T, s *Session, d *fakeDialer) *fakeConn {
	t.Helper()
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return d.last()
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func transportBinary(s string) transport.Message {
	return transport.Message{Type: transport.BinaryMessage, Data: []byte(s)}
}
