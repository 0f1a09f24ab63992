package connmgr

import (
	"net"
	"sync"

	"cardroom/internal/wire"
)

// connWriter serializes every frame written to one socket behind a mutex,
// so a reply and a concurrently-arriving targeted/broadcast send for the
// same player can never interleave mid-line (spec.md §4.6, §9).
type connWriter struct {
	socket net.Conn

	mu sync.Mutex
}

func newConnWriter(socket net.Conn) *connWriter {
	return &connWriter{socket: socket}
}

// send writes one LF-terminated frame. Failures are returned, never
// panicked — a broken pipe during a broadcast must not take down the
// sender's own worker (spec.md §7).
func (w *connWriter) send(msg *wire.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.socket.Write([]byte(wire.Serialize(msg) + "\n"))
	return err
}
