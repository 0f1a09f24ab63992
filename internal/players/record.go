// Package players implements the thread-safe player registry of spec.md
// §3 (session record) and §4.5: name→record and socket→name mapping,
// temporary-disconnect/reconnect lifecycle, and the ping/grace deadline
// scans the heartbeat supervisor drives.
package players

import (
	"errors"
	"net"
	"regexp"
	"time"
)

// ErrInvalidName is returned when a requested player name fails validation
// (spec.md §3 lifecycle step 1: non-empty, ≤32 chars, alphanumeric plus
// '_' or '-').
var ErrInvalidName = errors.New("players: invalid name")

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// ValidateName reports whether name is an acceptable player name.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// record is a player's session state (spec.md §3). last_ping lives outside
// this struct, in the registry's own map, guarded by a separate mutex
// (§4.5/§5: "one auxiliary mutex guards last_ping timestamps to keep ping
// updates off the hot path").
type record struct {
	name                    string
	roomID                  string
	socket                  net.Conn
	connected               bool
	temporarilyDisconnected bool
	disconnectionStart      time.Time
}

// Snapshot is an immutable, point-in-time copy of a player record, safe to
// read without holding any registry lock.
type Snapshot struct {
	Name                    string
	RoomID                  string
	Connected               bool
	TemporarilyDisconnected bool
	LastPing                time.Time
	DisconnectionStart      time.Time
	HasSocket               bool
}
