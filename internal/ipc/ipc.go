// Package ipc is the push-to-talk control channel: a unix socket carrying
// one JSON command per connection.
package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

const SocketPath = "/tmp/shoptalk.sock"

type ControlMessage struct {
	Cmd string `json:"cmd"`
}

// Commands understood by the daemons.
const (
	CmdTrigger = "trigger"
	CmdStop    = "stop"
)

// StartServer listens on the control socket and invokes handler for each
// received command. Dispatch of the handler itself is the caller's concern.
func StartServer(handler func(ControlMessage)) error {
	os.Remove(SocketPath)

	ln, err := net.Listen("unix", SocketPath)
	if err != nil {
		return fmt.Errorf("listen %s: %w", SocketPath, err)
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				continue
			}
			go handleConn(conn, handler)
		}
	}()

	return nil
}

func handleConn(conn net.Conn, handler func(ControlMessage)) {
	defer conn.Close()

	var msg ControlMessage
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		return
	}
	handler(msg)
}

// SendCommand connects to a running daemon and delivers one command.
func SendCommand(cmd string) error {
	conn, err := net.Dial("unix", SocketPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	return json.NewEncoder(conn).Encode(ControlMessage{Cmd: cmd})
}
