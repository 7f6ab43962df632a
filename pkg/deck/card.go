package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"callbreak-server/internal/rng"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits contains the four suits in a fixed order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// Card is an individual playing card
type Card struct {
	Rank int
	Suit Suit
}

func (c *Card) String() string {
	var rank string
	switch c.Rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	return fmt.Sprintf("%s%s", rank, c.Suit)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

var cardRx = regexp.MustCompile(`^(10|[2-9]|[AJQK])([♠♥♦♣])\z`)

// CardFromString returns a Card from a string like "A♠" or "10♥".
// A string that does not match the rank/suit notation returns nil.
func CardFromString(s string) *Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		return nil
	}

	var rank int
	switch match[1] {
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		// the regexp guarantees a parseable number
		rank, _ = strconv.Atoi(match[1])
	}

	return &Card{
		Rank: rank,
		Suit: Suit(match[2]),
	}
}

// MarshalJSON encodes the card in its wire notation
func (c *Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card from its wire notation
func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	card := CardFromString(s)
	if card == nil {
		return fmt.Errorf("could not parse card: %s", s)
	}

	*c = *card
	return nil
}

// RandomSuit picks one of the four suits uniformly at random
func RandomSuit(r rng.Generator) Suit {
	return Suits[r.Intn(len(Suits))]
}
