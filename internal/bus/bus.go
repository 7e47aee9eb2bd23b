// Package bus connects a daemon to a websocket room hub, so utterances can
// arrive as text messages instead of microphone audio and replies can be
// routed back to whoever spoke.
package bus

import (
	"encoding/json"
	"fmt"
	log "log/slog"
	"time"

	ws "github.com/gorilla/websocket"
)

// Kinds of messages the agents exchange over the room.
const (
	KindUtterance = "utterance"
	KindSay       = "say"
)

type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// Bus is one daemon's connection to the room hub. Reads and writes are not
// concurrency-safe; the session loop is the only user.
type Bus struct {
	conn   *ws.Conn
	url    string
	name   string
	reconn time.Duration
}

func Dial(wsURL, name string) (*Bus, error) {
	conn, _, err := ws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial room hub %s: %w", wsURL, err)
	}

	log.Info("connected to room hub", "url", wsURL, "as", name)
	return &Bus{conn: conn, url: wsURL, name: name, reconn: 2 * time.Second}, nil
}

// Read blocks for the next message addressed to this agent, reconnecting
// with backoff if the hub drops the connection.
func (b *Bus) Read() (Message, error) {
	for {
		_, raw, err := b.conn.ReadMessage()
		if err != nil {
			if !isClosed(err) {
				return Message{}, fmt.Errorf("read room message: %w", err)
			}
			log.Warn("room hub connection lost, reconnecting", "err", err)
			b.redial()
			continue
		}

		var m Message
		if err := json.Unmarshal(raw, &m); err != nil {
			log.Warn("dropping malformed room message", "err", err)
			continue
		}
		if m.To != "" && m.To != b.name {
			continue
		}
		return m, nil
	}
}

// Say sends a reply back into the room.
func (b *Bus) Say(to, text string) error {
	data, err := json.Marshal(Message{
		From:    b.name,
		To:      to,
		Kind:    KindSay,
		Content: text,
	})
	if err != nil {
		return err
	}
	return b.conn.WriteMessage(ws.TextMessage, data)
}

func (b *Bus) Close() error {
	return b.conn.Close()
}

func (b *Bus) redial() {
	for {
		conn, _, err := ws.DefaultDialer.Dial(b.url, nil)
		if err == nil {
			b.conn = conn
			log.Info("reconnected to room hub", "url", b.url)
			return
		}
		time.Sleep(b.reconn)
	}
}

func isClosed(err error) bool {
	return ws.IsCloseError(err,
		ws.CloseNormalClosure,
		ws.CloseGoingAway,
		ws.CloseAbnormalClosure) || ws.IsUnexpectedCloseError(err)
}
