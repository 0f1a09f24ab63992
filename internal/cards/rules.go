package cards

import "errors"

var (
	// ErrMixedRanks is returned when a multi-card play's cards don't share
	// a rank (spec.md §4.4 rule 3).
	ErrMixedRanks = errors.New("cards: multi-card play must share a rank")
	// ErrNotPlayable is returned when a card isn't valid against the
	// current top-of-discard under the current constraints.
	ErrNotPlayable = errors.New("cards: card is not playable on the current pile")
)

// ValidatePlay checks rules 3 and 4 of spec.md §4.4 for a candidate play:
// same-rank grouping (when more than one card is played) and per-card
// validity against the discard pile's top card and the must-play-low
// constraint. Rules 1 (turn order) and 2 (hand containment) are enforced
// by the caller, which has access to turn/hand state this package does
// not.
//
// Decision (see DESIGN.md): a 2 (wild) is always playable, and any card is
// playable on a 2, regardless of must_play_low. Once neither side is wild,
// must_play_low is checked before the burn-card shortcut, so a 10 is
// rejected while must_play_low is active unless a 2 is involved.
func ValidatePlay(played []Card, top *Card, mustPlayLow bool) error {
	if len(played) > 1 {
		rank := played[0].Rank
		for _, c := range played[1:] {
			if c.Rank != rank {
				return ErrMixedRanks
			}
		}
	}

	for _, c := range played {
		if !cardPlayable(c, top, mustPlayLow) {
			return ErrNotPlayable
		}
	}

	return nil
}

func cardPlayable(c Card, top *Card, mustPlayLow bool) bool {
	if c.Rank == 2 {
		return true
	}
	if top != nil && top.Rank == 2 {
		return true
	}
	if mustPlayLow {
		return c.Value() <= 7
	}
	if c.Rank == 10 {
		return true
	}
	if top == nil {
		return true
	}
	return c.Value() >= top.Value()
}
