package router

import (
	"math/rand"
	"net"
	"time"

	"cardroom/internal/logging"
	"cardroom/internal/players"
	"cardroom/internal/rooms"
	"cardroom/internal/wire"
)

// Router dispatches parsed frames to handlers (spec.md §4.2).
type Router struct {
	players *players.Registry
	rooms   *rooms.Registry
	rng     *rand.Rand
}

// New builds a Router over the given registries.
func New(playerRegistry *players.Registry, roomRegistry *rooms.Registry) *Router {
	return &Router{
		players: playerRegistry,
		rooms:   roomRegistry,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Dispatch parses and routes one raw frame from socket, returning the
// name bound to socket once the request has been handled (empty if the
// socket is still not connected) and the outbound
// plan. It never panics: a handler panic is recovered into a generic
// internal-error reply (spec.md §7).
func (rt *Router) Dispatch(socket net.Conn, rawLine string) (sender string, plan Plan) {
	msg, err := wire.Parse(rawLine)
	if err != nil {
		logging.Router.Warn("malformed frame from %s: %v", socket.RemoteAddr(), err)
		return "", Plan{reply(disconnectError("malformed frame"))}
	}

	if !wire.IsKnownRequest(msg.Type) {
		return "", Plan{reply(errorMsg("unknown message type"))}
	}

	if name, ok := rt.players.NameOf(socket); ok {
		sender = name
	}

	if msg.Type != wire.Connect && msg.Type != wire.Reconnect && sender == "" {
		return "", Plan{reply(errorMsg("must connect first"))}
	}

	defer func() {
		if r := recover(); r != nil {
			logging.Router.Error("handler panic for type %d from %q: %v", msg.Type, sender, r)
			plan = Plan{reply(errorMsg("internal error"))}
		}
	}()

	plan = rt.handle(socket, sender, msg)
	if sender == "" {
		// CONNECT/RECONNECT bind the socket inside the handler, so resolve
		// the name again once it has run.
		sender, _ = rt.players.NameOf(socket)
	}
	return sender, plan
}

func (rt *Router) handle(socket net.Conn, sender string, msg *wire.Message) Plan {
	switch msg.Type {
	case wire.Connect:
		return rt.handleConnect(socket, msg)
	case wire.Reconnect:
		return rt.handleReconnect(socket, msg)
	case wire.Ping:
		return rt.handlePing(sender)
	case wire.JoinRoom:
		return rt.handleJoinRoom(sender)
	case wire.LeaveRoom:
		return rt.handleLeaveRoom(sender)
	case wire.StartGame:
		return rt.handleStartGame(sender)
	case wire.PlayCards:
		return rt.handlePlayCards(sender, msg)
	case wire.PickupPile:
		return rt.handlePickupPile(sender)
	default:
		return Plan{reply(errorMsg("unsupported message type"))}
	}
}

func errorMsg(text string) *wire.Message {
	return wire.New(wire.Error, "", "").Set("error", text)
}

func disconnectError(text string) *wire.Message {
	return errorMsg(text).Set("disconnect", "true")
}
