// Package router dispatches parsed wire frames to handlers and turns their
// results into an ordered, delivery-tagged message batch (spec.md §4.2,
// §4.3, §9 "multi-destination results").
package router

import "cardroom/internal/wire"

// Mode is an outbound message's delivery tag (spec.md §4.2 step 4).
type Mode int

const (
	// Reply sends on the socket the request arrived on.
	Reply Mode = iota
	// Targeted sends to a named player's current socket, and is a no-op
	// if that player is disconnected.
	Targeted
	// Broadcast sends to every other connected member of a room.
	Broadcast
)

// Outbound is one message in a handler's result plan.
type Outbound struct {
	Mode   Mode
	Target string // player name (Targeted) or room id (Broadcast)
	Msg    *wire.Message
}

// Plan is the ordered batch of outbound messages a handler produces. The
// connection manager executes it after the router releases any locks held
// while building it (spec.md §9: "never send under a lock").
type Plan []Outbound

func reply(msg *wire.Message) Outbound {
	return Outbound{Mode: Reply, Msg: msg}
}

func targeted(player string, msg *wire.Message) Outbound {
	return Outbound{Mode: Targeted, Target: player, Msg: msg}
}

func broadcast(roomID string, msg *wire.Message) Outbound {
	return Outbound{Mode: Broadcast, Target: roomID, Msg: msg}
}
