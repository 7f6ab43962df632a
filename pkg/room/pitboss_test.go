package room

import (
	"testing"
	"time"

	"callbreak-server/internal/rng"
	"callbreak-server/pkg/game"
	"callbreak-server/pkg/pubsub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPitBoss(t *testing.T) (*PitBoss, *game.Engine) {
	t.Helper()

	bus := pubsub.NewMemory()
	engine := game.NewEngine(game.NewStore(), bus, rng.NewSeeded(1), 0)

	p := NewPitBoss(engine, bus)
	require.NoError(t, p.StartShift())
	t.Cleanup(p.EndShift)
	t.Cleanup(engine.Close)

	return p, engine
}

// nextEvent reads from the client until the named event arrives
func nextEvent(t *testing.T, c *Client, name string) *Message {
	t.Helper()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			m := msg.(*Message)
			if m.Event == name {
				return m
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", name)
			return nil
		}
	}
}

func TestPitBoss_EndToEnd(t *testing.T) {
	a := assert.New(t)
	p, engine := newTestPitBoss(t)

	c1 := NewClient(nil, "ABCD", "alice")
	p.ClientConnected(c1)
	nextEvent(t, c1, game.EventUserJoined)
	nextEvent(t, c1, game.EventGameStatus)
	nextEvent(t, c1, game.EventUserList)

	c2 := NewClient(nil, "ABCD", "bob")
	p.ClientConnected(c2)

	users := nextEvent(t, c2, game.EventUserList).Data.([]game.Player)
	a.Len(users, 2)

	// deal via a client intent
	c1.ReceivedMessage(&Intent{Action: "distributeCards"})

	hand1 := nextEvent(t, c1, game.EventCardsDistributed).Data.([]string)
	hand2 := nextEvent(t, c2, game.EventCardsDistributed).Data.([]string)
	a.Len(hand1, 26)
	a.Len(hand2, 26)
	a.NotEqual(hand1, hand2)

	dealt := nextEvent(t, c1, game.EventCardsDealt).Data.(game.CardsDealt)
	a.Equal(1, dealt.Round)
	a.Equal(26, dealt.TotalRounds)

	// play a full trick
	c1.ReceivedMessage(&Intent{Action: "playCard", Card: "2♠"})
	c2.ReceivedMessage(&Intent{Action: "playCard", Card: "A♠"})

	result := nextEvent(t, c1, game.EventRoundResult).Data.(game.RoundResult)
	a.Equal(c2.ID, result.Winner)

	// chat relays with the resolved display name
	c2.ReceivedMessage(&Intent{Action: "chatMessage", Chat: "good trick"})
	msg := nextEvent(t, c1, game.EventChatMessage).Data.(game.ChatMessage)
	a.Equal("bob", msg.User)
	a.Equal("good trick", msg.Text)
	a.Equal(c2.ID, msg.UserID)

	// departures: roster shrinks, then the room is torn down
	p.ClientDisconnected(c2)
	users = nextEvent(t, c1, game.EventUserList).Data.([]game.Player)
	a.Equal([]game.Player{{ID: c1.ID, Name: "alice"}}, users)

	p.ClientDisconnected(c1)
	a.Eventually(func() bool {
		return engine.RoomCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPitBoss_PrivateDelivery(t *testing.T) {
	a := assert.New(t)
	p, _ := newTestPitBoss(t)

	c1 := NewClient(nil, "ROOM", "alice")
	c2 := NewClient(nil, "ROOM", "bob")
	p.ClientConnected(c1)
	p.ClientConnected(c2)
	nextEvent(t, c2, game.EventUserList)

	c1.ReceivedMessage(&Intent{Action: "distributeCards"})
	nextEvent(t, c1, game.EventCardsDistributed)
	nextEvent(t, c1, game.EventCardsDealt)

	// no second private hand arrives for c1
	for done := false; !done; {
		select {
		case msg := <-c1.SendChan():
			a.NotEqual(game.EventCardsDistributed, msg.(*Message).Event)
		default:
			done = true
		}
	}
}

func TestPitBoss_RoomsAreIndependent(t *testing.T) {
	a := assert.New(t)
	p, _ := newTestPitBoss(t)

	c1 := NewClient(nil, "ROOM1", "alice")
	c2 := NewClient(nil, "ROOM2", "bob")
	p.ClientConnected(c1)
	p.ClientConnected(c2)

	// playerList is the final event of a join
	nextEvent(t, c1, game.EventPlayerList)
	nextEvent(t, c2, game.EventPlayerList)

	c1.ReceivedMessage(&Intent{Action: "chatMessage", Chat: "only room 1"})
	nextEvent(t, c1, game.EventChatMessage)

	// nothing for room 2
	select {
	case msg := <-c2.SendChan():
		t.Errorf("expected no message, got %v", msg)
	case <-time.After(50 * time.Millisecond):
	}

	a.NotEqual(c1.RoomID, c2.RoomID)
}
