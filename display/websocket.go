// =================================================================================
//
//			fox-audio - https://www.foxhollow.cc/projects/fox-audio/
//
//		 Fox Audio is a simple CLI utility for recording and playback of
//	  multitrack audio straight to disk by utilizing the JACK audio server
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package display

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const clientQueueSize = 64

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func newWsClient(conn *websocket.Conn) *wsClient {
	c := &wsClient{
		conn: conn,
		send: make(chan []byte, clientQueueSize),
	}
	go c.writePump()

	return c
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Broadcaster fans JSON messages out to websocket clients. Clients that fall
// behind are dropped. Retained messages are replayed to every new client.
type Broadcaster struct {
	lock     sync.RWMutex
	clients  map[*wsClient]bool
	retained map[string][]byte
	server   *http.Server
	upgrader websocket.Upgrader
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients:  make(map[*wsClient]bool),
		retained: make(map[string][]byte),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Listen serves the broadcaster on addr at / and /ws until Close.
func (b *Broadcaster) Listen(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/ws", b)
	mux.Handle("/", b)

	b.lock.Lock()
	b.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	server := b.server
	b.lock.Unlock()

	go func() {
		slog.Info("Streaming JSON status on ws://" + addr + "/ws")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("websocket listener failed: " + err.Error())
		}
	}()
}

func (b *Broadcaster) Close() {
	b.lock.Lock()
	server := b.server
	b.server = nil
	clients := b.clients
	b.clients = make(map[*wsClient]bool)
	b.lock.Unlock()

	for c := range clients {
		close(c.send)
	}

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}
}

func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed: " + err.Error())
		return
	}

	slog.Debug("websocket client connected: " + r.RemoteAddr)
	c := b.addClient(conn)

	go func() {
		defer func() {
			b.removeClient(c)
			slog.Debug("websocket client disconnected: " + r.RemoteAddr)
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (b *Broadcaster) addClient(conn *websocket.Conn) *wsClient {
	c := newWsClient(conn)

	b.lock.Lock()
	defer b.lock.Unlock()

	b.clients[c] = true

	kinds := make([]string, 0, len(b.retained))
	for kind := range b.retained {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	for _, kind := range kinds {
		select {
		case c.send <- b.retained[kind]:
		default:
		}
	}

	return c
}

func (b *Broadcaster) removeClient(c *wsClient) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
}

// Broadcast sends data to every connected client.
func (b *Broadcaster) Broadcast(data []byte) {
	var slow []*wsClient

	b.lock.RLock()
	for c := range b.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	b.lock.RUnlock()

	for _, c := range slow {
		slog.Warn("websocket client too slow, disconnecting")
		b.removeClient(c)
	}
}

// Publish broadcasts data and keeps it as the latest message of its kind.
func (b *Broadcaster) Publish(kind string, data []byte) {
	b.lock.Lock()
	b.retained[kind] = data
	b.lock.Unlock()

	b.Broadcast(data)
}

func (b *Broadcaster) ClientCount() int {
	b.lock.RLock()
	defer b.lock.RUnlock()

	return len(b.clients)
}
