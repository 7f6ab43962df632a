package game

import (
	"fmt"

	"callbreak-server/pkg/deck"
)

// Phase is the explicit state of a room's game
type Phase int

// phase constants
const (
	// PhaseIdle means the room exists but no deal has happened
	PhaseIdle Phase = iota

	// PhaseDealt means hands are out and rounds are being played
	PhaseDealt

	// PhaseComplete means the game finished; a new deal request starts over
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDealt:
		return "dealt"
	case PhaseComplete:
		return "complete"
	}

	return fmt.Sprintf("unknown (%d)", int(p))
}

// Player is a roster entry
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Room is the authoritative record for one game session.
// All mutation goes through the session engine, which serializes access.
type Room struct {
	// ID is the player-supplied room identifier
	ID string

	Phase       Phase
	Round       int
	TotalRounds int
	TrumpSuit   deck.Suit

	// Players is the roster snapshot taken at deal time. It does not change
	// mid-game even as connections come and go.
	Players []Player

	// NameMap grows as any connection joins, independent of Players
	NameMap map[string]string

	// Played holds each round's submissions
	Played map[int]*Plays

	// RoundsWon tallies trick wins; reset only on a fresh deal
	RoundsWon map[string]int

	// Results is populated once at game completion
	Results map[string][]string

	// conns is the live connection set in join order
	conns []string
}

func newRoom(id string) *Room {
	return &Room{
		ID:        id,
		Phase:     PhaseIdle,
		NameMap:   make(map[string]string),
		Played:    make(map[int]*Plays),
		RoundsWon: make(map[string]int),
	}
}

func (r *Room) addConn(connectionID string) {
	for _, id := range r.conns {
		if id == connectionID {
			return
		}
	}

	r.conns = append(r.conns, connectionID)
}

func (r *Room) removeConn(connectionID string) {
	for i, id := range r.conns {
		if id == connectionID {
			r.conns = append(r.conns[:i], r.conns[i+1:]...)
			return
		}
	}
}

// Connections returns a copy of the live connection set in join order
func (r *Room) Connections() []string {
	conns := make([]string, len(r.conns))
	copy(conns, r.conns)
	return conns
}

// DisplayName resolves a connection's display name
func (r *Room) DisplayName(connectionID string) string {
	if name, ok := r.NameMap[connectionID]; ok && name != "" {
		return name
	}

	return fmt.Sprintf("User %s", connectionID)
}

// UserList returns the live connection set with resolved names
func (r *Room) UserList() []Player {
	users := make([]Player, len(r.conns))
	for i, id := range r.conns {
		users[i] = Player{ID: id, Name: r.DisplayName(id)}
	}

	return users
}

// IsPlayer returns true if the connection is in the dealt roster
func (r *Room) IsPlayer(connectionID string) bool {
	for _, p := range r.Players {
		if p.ID == connectionID {
			return true
		}
	}

	return false
}
