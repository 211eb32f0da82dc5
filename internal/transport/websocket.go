package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/asianchinaboi/brocord/internal/logger"
	"github.com/gorilla/websocket"
)

const (
	defaultConnectTimeout = 15 * time.Second
	writeTimeout          = 10 * time.Second
	closeGrace            = time.Second
)

type WebsocketDialer struct {
	Dialer         *websocket.Dialer
	Header         http.Header
	ConnectTimeout time.Duration

	mu        sync.Mutex
	onConnect func(Conn)
	onFailed  func(error)
}

func NewDialer(connectTimeout time.Duration) *WebsocketDialer {
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	return &WebsocketDialer{
		Dialer:         websocket.DefaultDialer,
		ConnectTimeout: connectTimeout,
	}
}

func (d *WebsocketDialer) OnConnect(fn func(Conn)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onConnect = fn
}

func (d *WebsocketDialer) OnConnectFailed(fn func(error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onFailed = fn
}

func (d *WebsocketDialer) Connect(url string) {
	d.mu.Lock()
	onConnect, onFailed := d.onConnect, d.onFailed
	d.mu.Unlock()
	go d.connect(url, onConnect, onFailed)
}

func (d *WebsocketDialer) connect(url string, onConnect func(Conn), onFailed func(error)) {
	ctx, cancel := context.WithTimeout(context.Background(), d.ConnectTimeout)
	defer cancel()
	ws, resp, err := d.Dialer.DialContext(ctx, url, d.Header)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("%w: %v", errors.ErrConnectTimeout, err)
		} else if resp != nil {
			err = fmt.Errorf("%w: %s: %v", errors.ErrConnectFailed, resp.Status, err)
		} else {
			err = fmt.Errorf("%w: %v", errors.ErrConnectFailed, err)
		}
		if onFailed != nil {
			onFailed(err)
		}
		return
	}
	c := newConn(ws)
	if onConnect == nil {
		logger.Warn.Println("connected to", url, "without a connect handler, closing")
		c.Close()
		return
	}
	onConnect(c)
	go c.readPipe()
}

type wsConn struct {
	ws *websocket.Conn

	writeMu sync.Mutex

	handlersMu sync.RWMutex
	onError    func(error)
	onClose    func(int, string)
	onMessage  func(Message)

	closeOnce sync.Once
	closed    chan struct{}
}

func newConn(ws *websocket.Conn) *wsConn {
	return &wsConn{
		ws:     ws,
		closed: make(chan struct{}),
	}
}

func (c *wsConn) OnError(fn func(error)) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.onError = fn
}

func (c *wsConn) OnClose(fn func(int, string)) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.onClose = fn
}

func (c *wsConn) OnMessage(fn func(Message)) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.onMessage = fn
}

func (c *wsConn) SendText(data string) error {
	select {
	case <-c.closed:
		return errors.ErrNotConnected
	default:
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, []byte(data))
}

// Close sends a normal closure and drops the socket. The close handler still
// fires once the read pipe notices.
func (c *wsConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		c.writeMu.Lock()
		c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeGrace))
		c.writeMu.Unlock()
		err = c.ws.Close()
	})
	return err
}

func (c *wsConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *wsConn) readPipe() {
	for {
		mt, data, err := c.ws.ReadMessage()
		if err != nil {
			code, reason := websocket.CloseAbnormalClosure, ""
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				code, reason = closeErr.Code, closeErr.Text
			} else if c.isClosed() {
				code = websocket.CloseNormalClosure
			}
			if code == websocket.CloseAbnormalClosure && !c.isClosed() {
				c.handlersMu.RLock()
				onError := c.onError
				c.handlersMu.RUnlock()
				if onError != nil {
					onError(err)
				}
			}
			c.Close()
			c.handlersMu.RLock()
			onClose := c.onClose
			c.handlersMu.RUnlock()
			if onClose != nil {
				onClose(code, reason)
			}
			return
		}
		c.handlersMu.RLock()
		onMessage := c.onMessage
		c.handlersMu.RUnlock()
		if onMessage != nil {
			onMessage(Message{Type: MessageType(mt), Data: data})
		}
	}
}
