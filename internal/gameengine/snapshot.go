package gameengine

import "strings"

// EmptyPileTopCard is the placeholder top_card value sent when the discard
// pile is empty; the client treats it as "any card is valid" (spec.md §4.4).
const EmptyPileTopCard = "1S"

// OpponentView is one other room member's visible-from-outside state.
type OpponentView struct {
	Name         string
	HandSize     int
	ReserveSize  int
}

// Snapshot is the per-viewer GAME_STATE payload of spec.md §4.4.
type Snapshot struct {
	Hand            []string
	ReserveCount    int
	TopCard         string
	CurrentPlayer   string
	YourTurn        bool
	MustPlayLow     bool
	DeckSize        int
	DiscardPileSize int
	Opponents       []OpponentView
}

// HandCSV renders Hand as the comma-joined wire form.
func (s Snapshot) HandCSV() string { return strings.Join(s.Hand, ",") }

// SnapshotFor builds the GAME_STATE view of the state as seen by viewer.
// Returns ok=false if viewer isn't a player in this game.
func (s *State) SnapshotFor(viewer string) (Snapshot, bool) {
	idx := s.playerIndex(viewer)
	if idx < 0 {
		return Snapshot{}, false
	}
	me := s.Players[idx]

	hand := make([]string, len(me.Hand))
	for i, c := range me.Hand {
		hand[i] = c.String()
	}

	topCard := EmptyPileTopCard
	if top := s.TopCard(); top != nil {
		topCard = top.String()
	}

	var opponents []OpponentView
	for i, p := range s.Players {
		if i == idx {
			continue
		}
		opponents = append(opponents, OpponentView{
			Name:        p.Name,
			HandSize:    len(p.Hand),
			ReserveSize: len(p.Reserves),
		})
	}

	return Snapshot{
		Hand:            hand,
		ReserveCount:    len(me.Reserves),
		TopCard:         topCard,
		CurrentPlayer:   s.CurrentPlayer(),
		YourTurn:        s.CurrentPlayer() == viewer,
		MustPlayLow:     s.MustPlayLow,
		DeckSize:        len(s.Deck),
		DiscardPileSize: len(s.Discard),
		Opponents:       opponents,
	}, true
}
