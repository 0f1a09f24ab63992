// Package cards implements the card model, deck, and play-validity rules
// of spec.md §3 and §4.4: suits, ranks, deck construction/shuffle/deal, and
// the special-card (2/7/10) predicate and per-card validity check.
package cards

import (
	"errors"
	"fmt"
)

// Suit is one of the four standard suits, keyed by its wire letter.
type Suit byte

const (
	Hearts   Suit = 'H'
	Diamonds Suit = 'D'
	Clubs    Suit = 'C'
	Spades   Suit = 'S'
)

var allSuits = [4]Suit{Hearts, Diamonds, Clubs, Spades}

// Rank is the card's numeric rank, A=1 .. K=13.
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

var rankTokens = map[Rank]string{
	Ace: "A", 2: "2", 3: "3", 4: "4", 5: "5", 6: "6", 7: "7", 8: "8", 9: "9", 10: "10",
	Jack: "J", Queen: "Q", King: "K",
}

var tokenRanks = reverseRanks(rankTokens)

func reverseRanks(m map[Rank]string) map[string]Rank {
	r := make(map[string]Rank, len(m))
	for k, v := range m {
		r[v] = k
	}
	return r
}

// Card is a (suit, rank) pair.
type Card struct {
	Suit Suit
	Rank Rank
}

// String renders the card in wire/display form, e.g. "5H", "10S", "KC".
func (c Card) String() string {
	return fmt.Sprintf("%s%c", rankTokens[c.Rank], c.Suit)
}

// Value is the card's numeric comparison value (its rank).
func (c Card) Value() int { return int(c.Rank) }

// IsSpecial reports whether the card's rank triggers a special effect
// (spec.md §3: 2, 7, or 10).
func (c Card) IsSpecial() bool {
	return c.Rank == 2 || c.Rank == 7 || c.Rank == 10
}

// ErrBadCardToken is returned by Parse for a string that isn't a valid
// rank+suit token.
var ErrBadCardToken = errors.New("cards: malformed card token")

// Parse reconstructs a Card from its textual form ("5H", "10S", "AC", ...).
func Parse(token string) (Card, error) {
	if len(token) < 2 {
		return Card{}, ErrBadCardToken
	}
	suitByte := token[len(token)-1]
	rankStr := token[:len(token)-1]

	var suit Suit
	switch suitByte {
	case byte(Hearts), byte(Diamonds), byte(Clubs), byte(Spades):
		suit = Suit(suitByte)
	default:
		return Card{}, ErrBadCardToken
	}

	rank, ok := tokenRanks[rankStr]
	if !ok {
		return Card{}, ErrBadCardToken
	}

	return Card{Suit: suit, Rank: rank}, nil
}
