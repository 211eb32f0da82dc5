// Package transport is the socket layer under the gateway session. It reports
// everything through callbacks: connect success or failure on the Dialer, and
// error, close and message events on each Conn.
package transport

import "github.com/gorilla/websocket"

type MessageType int

const (
	TextMessage   = MessageType(websocket.TextMessage)
	BinaryMessage = MessageType(websocket.BinaryMessage)
)

type Message struct {
	Type MessageType
	Data []byte
}

// Dialer opens connections. Connect returns immediately; the outcome is
// delivered to the callback registered last before the call.
type Dialer interface {
	OnConnectFailed(func(err error))
	OnConnect(func(conn Conn))
	Connect(url string)
}

// Conn is one open connection. Handlers must be registered from inside the
// OnConnect callback; no message is delivered before that callback returns.
type Conn interface {
	OnError(func(err error))
	OnClose(func(code int, reason string))
	OnMessage(func(msg Message))
	SendText(data string) error
	Close() error
}
