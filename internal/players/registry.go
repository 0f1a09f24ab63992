package players

import (
	"errors"
	"net"
	"sync"
	"time"
)

var (
	ErrNameTaken        = errors.New("players: name already connected")
	ErrNotFound         = errors.New("players: no such player")
	ErrNotDisconnected  = errors.New("players: player is not temporarily disconnected")
)

// Registry is the name→record and socket→name mapping of spec.md §4.5.
// Two locking domains, per §5: mu guards identity/session state and the
// socket index together (so a live socket always maps to a player whose
// socket field matches); pingMu guards only last-ping timestamps, kept
// separate so a hot ping doesn't contend with room/session changes.
type Registry struct {
	mu       sync.Mutex
	byName   map[string]*record
	bySocket map[net.Conn]string

	pingMu   sync.Mutex
	lastPing map[string]time.Time
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byName:   make(map[string]*record),
		bySocket: make(map[net.Conn]string),
		lastPing: make(map[string]time.Time),
	}
}

// Connect creates a new record bound to socket (spec.md §4.5 connect).
// Fails if the name is already registered.
func (r *Registry) Connect(name string, socket net.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return ErrNameTaken
	}

	r.byName[name] = &record{name: name, socket: socket, connected: true}
	r.bySocket[socket] = name
	r.stampPing(name)
	return nil
}

// Reconnect rebinds socket to an existing, temporarily-disconnected record
// (spec.md §4.5 reconnect). Fails if the name doesn't exist or isn't
// currently temp-disconnected.
func (r *Registry) Reconnect(name string, socket net.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.byName[name]
	if !exists || !rec.temporarilyDisconnected {
		return ErrNotDisconnected
	}

	rec.socket = socket
	rec.connected = true
	rec.temporarilyDisconnected = false
	rec.disconnectionStart = time.Time{}
	r.bySocket[socket] = name
	r.stampPing(name)
	return nil
}

// MarkTempDisconnected clears a player's socket binding and marks them
// temporarily disconnected (spec.md §4.5). Safe to call with the player's
// already-closed socket; it looks the record up by name, not by socket.
func (r *Registry) MarkTempDisconnected(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.byName[name]
	if !exists {
		return ErrNotFound
	}
	if rec.socket != nil {
		delete(r.bySocket, rec.socket)
	}
	rec.socket = nil
	rec.connected = false
	rec.temporarilyDisconnected = true
	rec.disconnectionStart = time.Now()
	return nil
}

// Remove destroys a player's record entirely (spec.md §4.5).
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, exists := r.byName[name]; exists {
		if rec.socket != nil {
			delete(r.bySocket, rec.socket)
		}
		delete(r.byName, name)
	}

	r.pingMu.Lock()
	delete(r.lastPing, name)
	r.pingMu.Unlock()
}

// NameOf resolves the player name bound to socket, if any.
func (r *Registry) NameOf(socket net.Conn) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.bySocket[socket]
	return name, ok
}

// Get returns a snapshot of a player's record.
func (r *Registry) Get(name string) (Snapshot, bool) {
	r.mu.Lock()
	rec, exists := r.byName[name]
	if !exists {
		r.mu.Unlock()
		return Snapshot{}, false
	}
	snap := Snapshot{
		Name:                    rec.name,
		RoomID:                  rec.roomID,
		Connected:               rec.connected,
		TemporarilyDisconnected: rec.temporarilyDisconnected,
		DisconnectionStart:      rec.disconnectionStart,
		HasSocket:               rec.socket != nil,
	}
	r.mu.Unlock()

	r.pingMu.Lock()
	snap.LastPing = r.lastPing[name]
	r.pingMu.Unlock()
	return snap, true
}

// SocketOf returns the live socket bound to name, for the connection
// manager to write targeted messages to.
func (r *Registry) SocketOf(name string) (net.Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, exists := r.byName[name]
	if !exists || rec.socket == nil {
		return nil, false
	}
	return rec.socket, true
}

// SetRoom binds name to roomID (empty string clears it).
func (r *Registry) SetRoom(name, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, exists := r.byName[name]; exists {
		rec.roomID = roomID
	}
}

// GetRoom returns the room a player currently belongs to, or "".
func (r *Registry) GetRoom(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, exists := r.byName[name]; exists {
		return rec.roomID
	}
	return ""
}

// ClearRoom is shorthand for SetRoom(name, "").
func (r *Registry) ClearRoom(name string) {
	r.SetRoom(name, "")
}

// UpdateLastPing stamps name's last-ping time to now, under the dedicated
// ping mutex (spec.md §5).
func (r *Registry) UpdateLastPing(name string) {
	r.pingMu.Lock()
	defer r.pingMu.Unlock()
	r.lastPing[name] = time.Now()
}

// stampPing is the lock-free-from-mu's-perspective helper used while mu is
// already held (Connect/Reconnect); it takes pingMu itself.
func (r *Registry) stampPing(name string) {
	r.pingMu.Lock()
	r.lastPing[name] = time.Now()
	r.pingMu.Unlock()
}

// TimedOut returns the names of currently-connected players whose last
// ping is older than timeout (spec.md §4.5).
func (r *Registry) TimedOut(timeout time.Duration) []string {
	r.mu.Lock()
	candidates := make([]string, 0, len(r.byName))
	for name, rec := range r.byName {
		if rec.connected {
			candidates = append(candidates, name)
		}
	}
	r.mu.Unlock()

	now := time.Now()
	r.pingMu.Lock()
	defer r.pingMu.Unlock()

	var out []string
	for _, name := range candidates {
		if last, ok := r.lastPing[name]; ok && now.Sub(last) > timeout {
			out = append(out, name)
		}
	}
	return out
}

// GraceExpired returns the names of temp-disconnected players whose
// disconnection has lasted longer than window (spec.md §4.5).
func (r *Registry) GraceExpired(window time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var out []string
	for name, rec := range r.byName {
		if rec.temporarilyDisconnected && now.Sub(rec.disconnectionStart) > window {
			out = append(out, name)
		}
	}
	return out
}

// MembersOf returns the names of players currently bound to roomID.
func (r *Registry) MembersOf(roomID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for name, rec := range r.byName {
		if rec.roomID == roomID {
			out = append(out, name)
		}
	}
	return out
}
