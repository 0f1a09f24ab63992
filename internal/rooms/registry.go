// Package rooms implements the room registry of spec.md §3/§4.3: room
// creation via auto-matchmaking, membership, and the per-room game engine
// each room owns exclusively.
package rooms

import (
	"errors"
	"fmt"
	"sync"

	"cardroom/internal/gameengine"
)

var (
	ErrMaxRooms  = errors.New("rooms: maximum number of live rooms reached")
	ErrNotFound  = errors.New("rooms: no such room")
	ErrRoomFull  = errors.New("rooms: room already has two members")
)

const roomCapacity = 2

// Room is a room's mutable state: its members and the game engine state it
// owns. Rooms are values owned exclusively by the registry (spec.md §9) —
// handlers get short-lived, lock-held access via WithRoom, never a copy.
type Room struct {
	ID      string
	Members []string
	Game    *gameengine.State
}

// Registry is the room→room mapping of spec.md §4.3/§4.5. A single mutex
// guards both the map and, for the duration of any game mutation, the
// room's own game state (spec.md §5: "the room registry lock is held for
// the duration of game mutations; game operations must not perform I/O
// while holding it").
type Registry struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	seq      int
	maxRooms int
}

// New creates an empty registry bounded by maxRooms simultaneously-live
// rooms (spec.md §6 max_rooms).
func New(maxRooms int) *Registry {
	return &Registry{rooms: make(map[string]*Room), maxRooms: maxRooms}
}

// JoinResult is what JoinOrCreate reports back to the JOIN_ROOM handler.
type JoinResult struct {
	RoomID   string
	Members  []string
	RoomFull bool
	Created  bool
}

// JoinOrCreate implements spec.md §4.3 JOIN_ROOM auto-matchmaking: join
// any room with exactly one member, else create a new one.
func (reg *Registry) JoinOrCreate(player string) (JoinResult, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, room := range reg.rooms {
		if len(room.Members) == 1 {
			room.Members = append(room.Members, player)
			return JoinResult{
				RoomID:   room.ID,
				Members:  append([]string(nil), room.Members...),
				RoomFull: len(room.Members) == roomCapacity,
				Created:  false,
			}, nil
		}
	}

	if reg.maxRooms > 0 && len(reg.rooms) >= reg.maxRooms {
		return JoinResult{}, ErrMaxRooms
	}

	reg.seq++
	room := &Room{ID: fmt.Sprintf("ROOM_%d", reg.seq), Members: []string{player}}
	reg.rooms[room.ID] = room

	return JoinResult{
		RoomID:   room.ID,
		Members:  append([]string(nil), room.Members...),
		RoomFull: false,
		Created:  true,
	}, nil
}

// LeaveResult reports the outcome of leaving a room.
type LeaveResult struct {
	Destroyed bool
	Remaining []string
}

// Leave implements spec.md §4.3 LEAVE_ROOM: removes player from roomID,
// destroying the room if it becomes empty.
func (reg *Registry) Leave(roomID, player string) (LeaveResult, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return LeaveResult{}, ErrNotFound
	}

	room.Members = removeString(room.Members, player)
	if len(room.Members) == 0 {
		delete(reg.rooms, roomID)
		return LeaveResult{Destroyed: true}, nil
	}

	return LeaveResult{Remaining: append([]string(nil), room.Members...)}, nil
}

// WithRoom runs fn with exclusive access to roomID's Room, holding the
// registry lock for fn's duration. fn must not perform I/O (spec.md §5,
// §9: compute the full plan under the lock, release, then send).
func (reg *Registry) WithRoom(roomID string, fn func(*Room)) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return false
	}
	fn(room)
	return true
}

// Members returns a room's current member list.
func (reg *Registry) Members(roomID string) ([]string, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[roomID]
	if !ok {
		return nil, false
	}
	return append([]string(nil), room.Members...), true
}

// Destroy removes a room outright (used when a game ends).
func (reg *Registry) Destroy(roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, roomID)
}

// Count returns the number of currently-live rooms.
func (reg *Registry) Count() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

func removeString(list []string, target string) []string {
	out := list[:0:0]
	for _, s := range list {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
