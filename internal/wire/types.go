package wire

// MessageType is the numeric type code carried on the wire (spec.md §4.1,
// §6). Codes 0–99 are client→server requests, 100+ are server→client
// replies/broadcasts.
type MessageType int

const (
	Connect    MessageType = 0
	JoinRoom   MessageType = 2
	LeaveRoom  MessageType = 3
	Ping       MessageType = 4
	StartGame  MessageType = 5
	Reconnect  MessageType = 6
	PlayCards  MessageType = 7
	PickupPile MessageType = 8

	Connected           MessageType = 100
	RoomJoined          MessageType = 101
	RoomLeft            MessageType = 102
	Error               MessageType = 103
	Pong                MessageType = 104
	GameStarted         MessageType = 105
	GameState           MessageType = 106
	PlayerDisconnected  MessageType = 107
	PlayerReconnected   MessageType = 109
	TurnResult          MessageType = 111
	GameOver            MessageType = 112
)

// MaxFrameBytes bounds a single buffered, unterminated frame before the
// connection manager forces a disconnect (spec.md §4.1).
const MaxFrameBytes = 8 * 1024

// knownRequestTypes is the set the router accepts from clients; anything
// else (including valid-looking server-only codes replayed by a client) is
// rejected as an unknown message type per spec.md §4.2 step 2.
var knownRequestTypes = map[MessageType]bool{
	Connect:    true,
	JoinRoom:   true,
	LeaveRoom:  true,
	Ping:       true,
	StartGame:  true,
	Reconnect:  true,
	PlayCards:  true,
	PickupPile: true,
}

// IsKnownRequest reports whether t is a type the router dispatches.
func IsKnownRequest(t MessageType) bool {
	return knownRequestTypes[t]
}
