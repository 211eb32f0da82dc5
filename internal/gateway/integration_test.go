package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/asianchinaboi/brocord/internal/events"
	"github.com/asianchinaboi/brocord/internal/gateway"
	"github.com/asianchinaboi/brocord/internal/transport"
	"github.com/gorilla/websocket"
)

type wireFrame struct {
	Op   int             `json:"op"`
	Data json.RawMessage `json:"d"`
}

// TestSessionOverWebsocket drives a full handshake against a local gateway:
// HELLO, identify, scheduled heartbeat, dispatch and a server side close.
func TestSessionOverWebsocket(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan wireFrame, 16)
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("encoding") != "json" {
			http.Error(w, "bad encoding", http.StatusBadRequest)
			return
		}
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		go func() {
			for {
				var f wireFrame
				if err := ws.ReadJSON(&f); err != nil {
					return
				}
				received <- f
			}
		}()
		ws.WriteMessage(websocket.TextMessage, []byte(`{"op":10,"d":{"heartbeat_interval":50}}`))
		ws.WriteMessage(websocket.TextMessage, []byte(`{"op":0,"s":5,"t":"MESSAGE_CREATE","d":{"id":"1","channel_id":"2","content":"hi","author":{"id":"3","username":"bob"}}}`))
		<-release
		ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(4000, "bye"))
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	emitter := events.NewEmitter()
	msgs, off := emitter.Subscribe(events.MESSAGE_CREATE, 1)
	defer off()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?v=9&encoding=json"
	session := gateway.NewSession(gateway.Config{
		URL:        url,
		Intents:    gateway.DefaultIntents,
		Properties: gateway.DefaultProperties("brocord"),
		Token:      func() string { return "tok" },
	}, transport.NewDialer(time.Second), emitter)
	if err := session.Start(); err != nil {
		t.Fatal(err)
	}

	next := func() wireFrame {
		select {
		case f := <-received:
			return f
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a frame from the client")
		}
		return wireFrame{}
	}

	identify := next()
	if identify.Op != int(gateway.OpIdentify) {
		t.Fatalf("first frame op = %d, want identify", identify.Op)
	}
	if !strings.Contains(string(identify.Data), `"token":"tok"`) {
		t.Fatalf("identify data = %s", identify.Data)
	}

	select {
	case frame := <-msgs:
		msg, err := events.Decode[events.Msg](frame)
		if err != nil || msg.Content != "hi" || msg.Author.Name != "bob" {
			t.Fatalf("decoded %+v (%v)", msg, err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("MESSAGE_CREATE never published")
	}

	hb := next()
	if hb.Op != int(gateway.OpHeartbeat) || string(hb.Data) != "5" {
		t.Fatalf("heartbeat = %d %s, want op 1 with 5", hb.Op, hb.Data)
	}

	close(release)
	deadline := time.Now().Add(2 * time.Second)
	for session.State() != gateway.StateIdle && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := session.State(); got != gateway.StateIdle {
		t.Fatalf("state after server close = %v", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := session.Shutdown(ctx); err != nil {
		t.Fatal(err)
	}
}
