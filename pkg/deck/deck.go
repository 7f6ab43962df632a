package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"

	"callbreak-server/internal/rng"
)

// Deck represents a playing deck
type Deck struct {
	Cards []*Card
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	cards := make([]*Card, 0, 52)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return &Deck{Cards: cards}
}

// Shuffle will shuffle the deck of cards
func (d *Deck) Shuffle(r rng.Generator) {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := r.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Deal splits the deck into numHands contiguous, equal-size hands.
// Any remainder cards are dropped. Dealing to zero hands returns nil.
func (d *Deck) Deal(numHands int) [][]*Card {
	if numHands <= 0 {
		return nil
	}

	perHand := len(d.Cards) / numHands
	hands := make([][]*Card, numHands)
	for i := range hands {
		hands[i] = d.Cards[i*perHand : (i+1)*perHand]
	}

	return hands
}

// CardsLeft returns the number of cards in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}
