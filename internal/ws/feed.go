package ws

import (
	"net/http"
	"sync"
	"time"

	"aurora_backend/internal/logger"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// Feed pushes ledger entries to connected admin dashboards as they are
// committed. It is an observer only; nothing in the economy waits on it.
type Feed struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan interface{}
}

func NewFeed() *Feed {
	return &Feed{clients: make(map[*websocket.Conn]chan interface{})}
}

// Subscribe upgrades the request and streams broadcasts until the client
// disconnects.
func (f *Feed) Subscribe(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	ch := make(chan interface{}, 64)
	f.mu.Lock()
	f.clients[conn] = ch
	f.mu.Unlock()

	logger.Debug("ledger feed client connected", "remote", conn.RemoteAddr().String())

	go f.writeLoop(conn, ch)
	go f.readLoop(conn)
	return nil
}

func (f *Feed) writeLoop(conn *websocket.Conn, ch chan interface{}) {
	defer f.drop(conn)
	for msg := range ch {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// readLoop drains control frames and notices disconnects.
func (f *Feed) readLoop(conn *websocket.Conn) {
	defer f.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *Feed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	if ch, ok := f.clients[conn]; ok {
		delete(f.clients, conn)
		close(ch)
	}
	f.mu.Unlock()
	_ = conn.Close()
}

// Broadcast queues msg for every connected client. Slow clients are
// dropped rather than blocking the caller.
func (f *Feed) Broadcast(msg interface{}) {
	f.mu.RLock()
	var stale []*websocket.Conn
	for conn, ch := range f.clients {
		select {
		case ch <- msg:
		default:
			stale = append(stale, conn)
		}
	}
	f.mu.RUnlock()

	for _, conn := range stale {
		f.drop(conn)
	}
}
