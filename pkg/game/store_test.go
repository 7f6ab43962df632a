package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	a := assert.New(t)

	s := NewStore()
	a.Nil(s.Get("ABCD"))
	a.Equal(0, s.Len())

	room := s.GetOrCreate("ABCD")
	a.NotNil(room)
	a.Equal("ABCD", room.ID)
	a.Equal(PhaseIdle, room.Phase)
	a.Equal(0, room.Round)

	// same record on subsequent lookups
	a.Equal(room, s.GetOrCreate("ABCD"))
	a.Equal(room, s.Get("ABCD"))
	a.Equal(1, s.Len())

	s.Delete("ABCD")
	a.Nil(s.Get("ABCD"))
	a.Equal(0, s.Len())
}

func TestRoom_Connections(t *testing.T) {
	a := assert.New(t)

	room := newRoom("ABCD")
	room.addConn("a")
	room.addConn("b")
	room.addConn("a") // no duplicates
	a.Equal([]string{"a", "b"}, room.Connections())

	room.removeConn("a")
	a.Equal([]string{"b"}, room.Connections())

	room.removeConn("missing")
	a.Equal([]string{"b"}, room.Connections())
}

func TestRoom_DisplayName(t *testing.T) {
	a := assert.New(t)

	room := newRoom("ABCD")
	room.NameMap["a"] = "alice"

	a.Equal("alice", room.DisplayName("a"))
	a.Equal("User b", room.DisplayName("b"))
}

func TestPhase_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("idle", PhaseIdle.String())
	a.Equal("dealt", PhaseDealt.String())
	a.Equal("complete", PhaseComplete.String())
	a.Equal("unknown (9)", Phase(9).String())
}
