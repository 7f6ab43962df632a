package deck

import (
	"encoding/json"
	"testing"

	"callbreak-server/internal/rng"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("2♥", (&Card{Rank: 2, Suit: Hearts}).String())
	a.Equal("10♦", (&Card{Rank: 10, Suit: Diamonds}).String())
	a.Equal("J♣", (&Card{Rank: Jack, Suit: Clubs}).String())
	a.Equal("Q♦", (&Card{Rank: Queen, Suit: Diamonds}).String())
	a.Equal("K♠", (&Card{Rank: King, Suit: Spades}).String())
	a.Equal("A♠", (&Card{Rank: Ace, Suit: Spades}).String())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	a.Equal(&Card{Rank: Ace, Suit: Spades}, CardFromString("A♠"))
	a.Equal(&Card{Rank: 10, Suit: Hearts}, CardFromString("10♥"))
	a.Equal(&Card{Rank: 2, Suit: Clubs}, CardFromString("2♣"))
	a.Equal(&Card{Rank: Queen, Suit: Diamonds}, CardFromString("Q♦"))

	a.True(CardFromString("A♠").Equal(&Card{Rank: Ace, Suit: Spades}))
	a.False(CardFromString("A♠").Equal(&Card{Rank: Ace, Suit: Hearts}))
	a.False(CardFromString("A♠").Equal(&Card{Rank: King, Suit: Spades}))

	// malformed input must not panic
	a.Nil(CardFromString(""))
	a.Nil(CardFromString("A"))
	a.Nil(CardFromString("1♠"))
	a.Nil(CardFromString("11♠"))
	a.Nil(CardFromString("B♠"))
	a.Nil(CardFromString("A♠x"))
	a.Nil(CardFromString("as"))
}

func TestCard_JSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(&Card{Rank: Ace, Suit: Spades})
	a.NoError(err)
	a.Equal(`"A♠"`, string(b))

	var card Card
	a.NoError(json.Unmarshal([]byte(`"10♥"`), &card))
	a.Equal(Card{Rank: 10, Suit: Hearts}, card)

	a.Error(json.Unmarshal([]byte(`"xx"`), &card))
}

func TestRandomSuit(t *testing.T) {
	a := assert.New(t)

	found := make(map[Suit]bool)
	for i := 0; i < 1000; i++ {
		found[RandomSuit(rng.Crypto{})] = true
	}

	a.Len(found, 4)
}
