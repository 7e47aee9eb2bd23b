package bus

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (string, chan *ws.Conn) {
	t.Helper()
	conns := make(chan *ws.Conn, 1)
	upgrader := ws.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		conns <- conn
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http"), conns
}

func TestReadDeliversAddressedUtterances(t *testing.T) {
	url, conns := startHub(t)

	b, err := Dial(url, "commerce")
	require.NoError(t, err)
	defer b.Close()

	hub := <-conns

	// addressed to someone else: skipped
	other, _ := json.Marshal(Message{From: "room", To: "barista", Kind: KindUtterance, Content: "latte"})
	require.NoError(t, hub.WriteMessage(ws.TextMessage, other))

	// broadcast: delivered
	mine, _ := json.Marshal(Message{From: "guest", Kind: KindUtterance, Content: "any hoodies?"})
	require.NoError(t, hub.WriteMessage(ws.TextMessage, mine))

	msg, err := b.Read()
	require.NoError(t, err)
	assert.Equal(t, "guest", msg.From)
	assert.Equal(t, KindUtterance, msg.Kind)
	assert.Equal(t, "any hoodies?", msg.Content)
}

func TestReadSkipsMalformedFrames(t *testing.T) {
	url, conns := startHub(t)

	b, err := Dial(url, "commerce")
	require.NoError(t, err)
	defer b.Close()

	hub := <-conns
	require.NoError(t, hub.WriteMessage(ws.TextMessage, []byte("{garbage")))

	good, _ := json.Marshal(Message{From: "guest", Kind: KindUtterance, Content: "mugs"})
	require.NoError(t, hub.WriteMessage(ws.TextMessage, good))

	msg, err := b.Read()
	require.NoError(t, err)
	assert.Equal(t, "mugs", msg.Content)
}

func TestSayRoutesReplyToSender(t *testing.T) {
	url, conns := startHub(t)

	b, err := Dial(url, "commerce")
	require.NoError(t, err)
	defer b.Close()

	hub := <-conns
	require.NoError(t, b.Say("guest", "I found 2 hoodies."))

	_, raw, err := hub.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "commerce", msg.From)
	assert.Equal(t, "guest", msg.To)
	assert.Equal(t, KindSay, msg.Kind)
	assert.Equal(t, "I found 2 hoodies.", msg.Content)
}
