package game

import "callbreak-server/pkg/deck"

// event names sent to clients
const (
	EventUserJoined       = "userJoined"
	EventUserList         = "userList"
	EventPlayerList       = "playerList"
	EventGameStatus       = "gameStatus"
	EventCardsDistributed = "cardsDistributed"
	EventCardsDealt       = "cardsDealt"
	EventCardPlayed       = "cardPlayed"
	EventRoundResult      = "roundResult"
	EventGameResults      = "gameResults"
	EventChatMessage      = "chatMessage"
)

// GameStatus is the room snapshot sent when a connection joins
type GameStatus struct {
	Round     int       `json:"round"`
	TrumpSuit deck.Suit `json:"trumpSuit,omitempty"`
}

// CardsDealt announces that a new round has started
type CardsDealt struct {
	Round       int       `json:"round"`
	TotalRounds int       `json:"totalRounds"`
	TrumpSuit   deck.Suit `json:"trumpSuit,omitempty"`
}

// CardPlayed announces a single submission
type CardPlayed struct {
	User  string `json:"user"`
	Card  string `json:"card"`
	Round int    `json:"round"`
}

// RoundResult announces a resolved trick
type RoundResult struct {
	Round     int               `json:"round"`
	Played    map[string]string `json:"played"`
	Winner    string            `json:"winner"`
	RoundsWon map[string]int    `json:"roundsWon"`
}

// GameResults announces the end of the game
type GameResults struct {
	Results   map[string][]string `json:"results"`
	RoundsWon map[string]int      `json:"roundsWon"`
}

// ChatMessage is a relayed chat line
type ChatMessage struct {
	User   string `json:"user"`
	Text   string `json:"text"`
	UserID string `json:"userId"`
}
