package router

import (
	"net"
	"strconv"
	"strings"

	"cardroom/internal/gameengine"
	"cardroom/internal/players"
	"cardroom/internal/rooms"
	"cardroom/internal/wire"
)

func (rt *Router) handleConnect(socket net.Conn, msg *wire.Message) Plan {
	name, ok := msg.Get("name")
	if !ok || name == "" {
		return Plan{reply(errorMsg("name is required"))}
	}
	if err := players.ValidateName(name); err != nil {
		return Plan{reply(errorMsg("invalid name"))}
	}
	if err := rt.players.Connect(name, socket); err != nil {
		return Plan{reply(errorMsg(err.Error()))}
	}
	return Plan{reply(wire.New(wire.Connected, name, "").Set("name", name))}
}

func (rt *Router) handleReconnect(socket net.Conn, msg *wire.Message) Plan {
	name, ok := msg.Get("name")
	if !ok || name == "" {
		return Plan{reply(errorMsg("name is required"))}
	}
	if err := rt.players.Reconnect(name, socket); err != nil {
		return Plan{reply(errorMsg(err.Error()))}
	}

	plan := Plan{reply(wire.New(wire.Connected, name, "").Set("name", name))}

	roomID := rt.players.GetRoom(name)
	if roomID == "" {
		return plan
	}

	rt.rooms.WithRoom(roomID, func(room *rooms.Room) {
		if room.Game != nil && room.Game.Phase == gameengine.Active {
			if snap, ok := room.Game.SnapshotFor(name); ok {
				plan = append(plan, targeted(name, buildGameStateMsg(roomID, snap)))
			}
		}
		for _, other := range room.Members {
			if other == name {
				continue
			}
			plan = append(plan, targeted(other, wire.New(wire.PlayerReconnected, name, roomID).Set("name", name)))
		}
	})

	return plan
}

func (rt *Router) handlePing(sender string) Plan {
	rt.players.UpdateLastPing(sender)
	return Plan{reply(wire.New(wire.Pong, sender, ""))}
}

func (rt *Router) handleJoinRoom(sender string) Plan {
	res, err := rt.rooms.JoinOrCreate(sender)
	if err != nil {
		return Plan{reply(errorMsg(err.Error()))}
	}
	rt.players.SetRoom(sender, res.RoomID)

	plan := Plan{reply(roomJoinedMsg(sender, res))}
	if !res.Created {
		plan = append(plan, broadcast(res.RoomID, roomJoinedMsg(sender, res)))
	}
	return plan
}

func (rt *Router) handleLeaveRoom(sender string) Plan {
	roomID := rt.players.GetRoom(sender)
	if roomID == "" {
		return Plan{reply(errorMsg("not in a room"))}
	}

	res, err := rt.rooms.Leave(roomID, sender)
	if err != nil {
		return Plan{reply(errorMsg(err.Error()))}
	}
	rt.players.ClearRoom(sender)

	plan := Plan{reply(wire.New(wire.RoomLeft, sender, roomID).Set("name", sender))}
	if !res.Destroyed {
		plan = append(plan, broadcast(roomID, wire.New(wire.RoomLeft, sender, roomID).Set("name", sender)))
	}
	return plan
}

func (rt *Router) handleStartGame(sender string) Plan {
	roomID := rt.players.GetRoom(sender)
	if roomID == "" {
		return Plan{reply(errorMsg("not in a room"))}
	}

	var plan Plan
	var handleErr error

	found := rt.rooms.WithRoom(roomID, func(room *rooms.Room) {
		if len(room.Members) < 2 {
			handleErr = errTooFewMembers
			return
		}
		if room.Game != nil && room.Game.Phase != gameengine.Waiting {
			handleErr = errAlreadyStarted
			return
		}

		room.Game = gameengine.New(room.Members)
		if err := room.Game.Start(rt.rng); err != nil {
			handleErr = err
			return
		}

		plan = append(plan, broadcast(roomID, wire.New(wire.GameStarted, sender, roomID)))
		for _, member := range room.Members {
			if snap, ok := room.Game.SnapshotFor(member); ok {
				plan = append(plan, targeted(member, buildGameStateMsg(roomID, snap)))
			}
		}
	})

	if !found {
		return Plan{reply(errorMsg("room not found"))}
	}
	if handleErr != nil {
		return Plan{reply(errorMsg(handleErr.Error()))}
	}
	return plan
}

func (rt *Router) handlePlayCards(sender string, msg *wire.Message) Plan {
	roomID := rt.players.GetRoom(sender)
	if roomID == "" {
		return Plan{reply(errorMsg("not in a room"))}
	}

	cardsField, ok := msg.Get("cards")
	if !ok || cardsField == "" {
		return Plan{reply(errorMsg("cards is required"))}
	}
	tokens := strings.Split(cardsField, ",")

	var plan Plan
	var handleErr error
	var ended bool
	var members []string

	found := rt.rooms.WithRoom(roomID, func(room *rooms.Room) {
		if room.Game == nil || room.Game.Phase != gameengine.Active {
			handleErr = errGameNotActive
			return
		}

		outcome, err := room.Game.PlayCards(sender, tokens)
		if err != nil {
			handleErr = err
			return
		}

		plan = append(plan, reply(wire.New(wire.TurnResult, sender, roomID).Set("status", statusFor(outcome.Kind))))

		ended = outcome.Ended
		members = room.Members

		if ended {
			for _, member := range room.Members {
				plan = append(plan, targeted(member, wire.New(wire.GameOver, member, roomID).
					Set("winner", outcome.Winner).Set("reason", "win")))
				plan = append(plan, targeted(member, wire.New(wire.RoomLeft, member, roomID).Set("name", member)))
			}
		} else {
			for _, member := range room.Members {
				if snap, ok := room.Game.SnapshotFor(member); ok {
					plan = append(plan, targeted(member, buildGameStateMsg(roomID, snap)))
				}
			}
		}
	})

	if !found {
		return Plan{reply(errorMsg("room not found"))}
	}
	if handleErr != nil {
		return Plan{reply(errorMsg(handleErr.Error()))}
	}

	if ended {
		for _, member := range members {
			rt.players.ClearRoom(member)
		}
		rt.rooms.Destroy(roomID)
	}

	return plan
}

func (rt *Router) handlePickupPile(sender string) Plan {
	roomID := rt.players.GetRoom(sender)
	if roomID == "" {
		return Plan{reply(errorMsg("not in a room"))}
	}

	var plan Plan
	var handleErr error

	found := rt.rooms.WithRoom(roomID, func(room *rooms.Room) {
		if room.Game == nil || room.Game.Phase != gameengine.Active {
			handleErr = errGameNotActive
			return
		}

		if _, err := room.Game.PickupPile(sender); err != nil {
			handleErr = err
			return
		}

		plan = append(plan, reply(wire.New(wire.TurnResult, sender, roomID).Set("status", "pickup")))
		for _, member := range room.Members {
			if snap, ok := room.Game.SnapshotFor(member); ok {
				plan = append(plan, targeted(member, buildGameStateMsg(roomID, snap)))
			}
		}
	})

	if !found {
		return Plan{reply(errorMsg("room not found"))}
	}
	if handleErr != nil {
		return Plan{reply(errorMsg(handleErr.Error()))}
	}
	return plan
}

func roomJoinedMsg(player string, res rooms.JoinResult) *wire.Message {
	return wire.New(wire.RoomJoined, player, res.RoomID).
		Set("name", player).
		Set("room_full", boolStr(res.RoomFull)).
		Set("player_count", strconv.Itoa(len(res.Members))).
		Set("members", strings.Join(res.Members, ","))
}

func buildGameStateMsg(roomID string, snap gameengine.Snapshot) *wire.Message {
	msg := wire.New(wire.GameState, "", roomID).
		Set("hand", snap.HandCSV()).
		Set("reserves", strconv.Itoa(snap.ReserveCount)).
		Set("top_card", snap.TopCard).
		Set("current_player", snap.CurrentPlayer).
		Set("your_turn", boolStr(snap.YourTurn)).
		Set("must_play_low", boolStr(snap.MustPlayLow)).
		Set("deck_size", strconv.Itoa(snap.DeckSize)).
		Set("discard_pile_size", strconv.Itoa(snap.DiscardPileSize))

	if len(snap.Opponents) > 0 {
		primary := snap.Opponents[0]
		msg.Set("opponent_name", primary.Name).
			Set("opponent_hand_size", strconv.Itoa(primary.HandSize)).
			Set("opponent_reserve_size", strconv.Itoa(primary.ReserveSize))
	}

	return msg
}

func statusFor(kind string) string {
	switch kind {
	case "pickup", "reserve_pickup":
		return "pickup"
	default:
		return "play_success"
	}
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
