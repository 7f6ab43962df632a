package game

import (
	"encoding/json"

	"callbreak-server/pkg/deck"
)

// Plays records one trick's submissions in arrival order.
// A duplicate submission by the same connection overwrites the previous card
// but keeps its original position.
type Plays struct {
	order []string
	cards map[string]string
}

// NewPlays returns an empty set of plays
func NewPlays() *Plays {
	return &Plays{
		cards: make(map[string]string),
	}
}

// Record stores a submission. Last write wins.
func (p *Plays) Record(connectionID, card string) {
	if _, ok := p.cards[connectionID]; !ok {
		p.order = append(p.order, connectionID)
	}

	p.cards[connectionID] = card
}

// Len returns the number of connections that have submitted
func (p *Plays) Len() int {
	return len(p.order)
}

// Cards returns a copy of the submissions keyed by connection id
func (p *Plays) Cards() map[string]string {
	cards := make(map[string]string, len(p.cards))
	for id, card := range p.cards {
		cards[id] = card
	}

	return cards
}

// MarshalJSON encodes the plays as a connection id to card mapping
func (p *Plays) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.cards)
}

// ResolveTrick determines the winning connection for one trick.
// The lead suit is the suit of the first well-formed submission. A card takes
// the lead if it is trump over a non-trump, or if it shares the current best
// card's suit with a higher rank while being the lead or trump suit. Malformed
// cards are skipped. An empty or entirely malformed trick has no winner.
func ResolveTrick(plays *Plays, trumpSuit deck.Suit) string {
	var winner string
	var best *deck.Card
	var leadSuit deck.Suit

	for _, id := range plays.order {
		card := deck.CardFromString(plays.cards[id])
		if card == nil {
			continue
		}

		if leadSuit == "" {
			leadSuit = card.Suit
		}

		if best == nil {
			best, winner = card, id
		} else if card.Suit == trumpSuit && best.Suit != trumpSuit {
			best, winner = card, id
		} else if card.Suit == best.Suit && card.Rank > best.Rank && (card.Suit == leadSuit || card.Suit == trumpSuit) {
			best, winner = card, id
		}
	}

	return winner
}
