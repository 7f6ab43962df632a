// Package game implements the Call Break session engine: room state, dealing,
// trick resolution, and the events that fan out to connected clients.
package game

import (
	"context"
	"sync"
	"time"

	"callbreak-server/internal/rng"
	"callbreak-server/pkg/deck"
	"callbreak-server/pkg/pubsub"

	"github.com/sirupsen/logrus"
)

// Engine drives every room through Idle -> Dealt -> Complete. It is the
// single owner of room mutation: every intent runs under one lock, so two
// submissions for the same round can never both observe an unfinished trick.
// Resulting events are published to the bus before the lock is released,
// keeping delivery order consistent with mutation order.
type Engine struct {
	mu    sync.Mutex
	store *Store
	bus   pubsub.Bus
	rng   rng.Generator

	// settleDelay is how long a departure waits before the room is evaluated
	// for teardown or re-deal
	settleDelay time.Duration
	afterFunc   func(time.Duration, func()) *time.Timer

	timersMu sync.Mutex
	timerSeq int
	timers   map[int]*time.Timer
}

// NewEngine returns a new session engine
func NewEngine(store *Store, bus pubsub.Bus, r rng.Generator, settleDelay time.Duration) *Engine {
	return &Engine{
		store:       store,
		bus:         bus,
		rng:         r,
		settleDelay: settleDelay,
		afterFunc:   time.AfterFunc,
		timers:      make(map[int]*time.Timer),
	}
}

// Join registers a connection in the room, creating the room if needed.
// Until the first deal, everyone present is a prospective player.
func (e *Engine) Join(roomID, connectionID, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room := e.store.GetOrCreate(roomID)
	room.addConn(connectionID)
	room.NameMap[connectionID] = name

	logrus.WithFields(logrus.Fields{
		"room": roomID,
		"conn": connectionID,
		"name": name,
	}).Debug("connection joined room")

	events := []pubsub.Event{
		{Room: roomID, Name: EventUserJoined, Data: connectionID},
		{Room: roomID, Name: EventGameStatus, Data: GameStatus{Round: room.Round, TrumpSuit: room.TrumpSuit}},
		{Room: roomID, Name: EventUserList, Data: room.UserList()},
	}

	// late joiners before the first deal become players
	if room.Phase == PhaseIdle {
		room.Players = room.UserList()
	}

	events = append(events, pubsub.Event{Room: roomID, Name: EventPlayerList, Data: room.Players})
	e.emit(events)
}

// RequestDeal shuffles a fresh deck and deals it to the room's current
// connections. Any connection may request it at any time; it always fully
// resets the game.
func (e *Engine) RequestDeal(roomID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room := e.store.Get(roomID)
	if room == nil {
		return
	}

	e.emit(e.deal(room))
}

// deal resets the room for a new game and returns the events to publish.
// Dealing to an empty room is a no-op. Must be called with the lock held.
func (e *Engine) deal(room *Room) []pubsub.Event {
	conns := room.Connections()
	if len(conns) == 0 {
		return nil
	}

	d := deck.New()
	d.Shuffle(e.rng)
	trumpSuit := deck.RandomSuit(e.rng)
	hands := d.Deal(len(conns))
	cardsPerPlayer := len(hands[0])

	room.Phase = PhaseDealt
	room.Round = 1
	room.TotalRounds = cardsPerPlayer
	room.TrumpSuit = trumpSuit
	room.Played = map[int]*Plays{1: NewPlays()}
	room.RoundsWon = make(map[string]int)
	room.Results = nil
	room.Players = room.UserList()

	logrus.WithFields(logrus.Fields{
		"room":           room.ID,
		"players":        len(conns),
		"cardsPerPlayer": cardsPerPlayer,
		"trumpSuit":      trumpSuit,
	}).Info("dealt cards")

	events := make([]pubsub.Event, 0, len(conns)+2)
	for i, connectionID := range conns {
		hand := make([]string, len(hands[i]))
		for j, card := range hands[i] {
			hand[j] = card.String()
		}

		events = append(events, pubsub.Event{Room: room.ID, Name: EventCardsDistributed, To: connectionID, Data: hand})
	}

	events = append(events,
		pubsub.Event{Room: room.ID, Name: EventCardsDealt, Data: CardsDealt{Round: 1, TotalRounds: cardsPerPlayer, TrumpSuit: trumpSuit}},
		pubsub.Event{Room: room.ID, Name: EventPlayerList, Data: room.Players},
	)

	return events
}

// SubmitCard records a card for the current round. A duplicate submission by
// the same connection overwrites the previous one. Submitting to a room that
// is not mid-game is a harmless no-op.
func (e *Engine) SubmitCard(roomID, connectionID, card string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room := e.store.Get(roomID)
	if room == nil || room.Phase != PhaseDealt {
		return
	}

	round := room.Round
	plays, ok := room.Played[round]
	if !ok {
		plays = NewPlays()
		room.Played[round] = plays
	}

	plays.Record(connectionID, card)

	events := []pubsub.Event{
		{Room: roomID, Name: EventCardPlayed, Data: CardPlayed{User: connectionID, Card: card, Round: round}},
	}

	if plays.Len() >= len(room.Players) {
		events = append(events, e.resolveRound(room, round, plays)...)
	}

	e.emit(events)
}

// resolveRound settles a full trick and either advances the round or
// completes the game. Must be called with the lock held; the phase change in
// the same critical section keeps resolution from ever running twice for one
// round.
func (e *Engine) resolveRound(room *Room, round int, plays *Plays) []pubsub.Event {
	winner := ResolveTrick(plays, room.TrumpSuit)
	if winner != "" {
		room.RoundsWon[winner]++
	}

	logrus.WithFields(logrus.Fields{
		"room":   room.ID,
		"round":  round,
		"winner": winner,
	}).Debug("trick resolved")

	events := []pubsub.Event{
		{Room: room.ID, Name: EventRoundResult, Data: RoundResult{
			Round:     round,
			Played:    plays.Cards(),
			Winner:    winner,
			RoundsWon: room.RoundsWon,
		}},
	}

	// the round == 2 short-circuit mirrors the long-standing production
	// behavior; see DESIGN.md
	if round >= room.TotalRounds || round == 2 {
		room.Phase = PhaseComplete

		results := make(map[string][]string)
		for r := 1; r <= round; r++ {
			p, ok := room.Played[r]
			if !ok {
				continue
			}

			for _, id := range p.order {
				results[id] = append(results[id], p.cards[id])
			}
		}
		room.Results = results

		events = append(events, pubsub.Event{Room: room.ID, Name: EventGameResults, Data: GameResults{
			Results:   results,
			RoundsWon: room.RoundsWon,
		}})

		return events
	}

	room.Round = round + 1
	room.Played[room.Round] = NewPlays()

	return append(events, pubsub.Event{Room: room.ID, Name: EventCardsDealt, Data: CardsDealt{
		Round:       room.Round,
		TotalRounds: room.TotalRounds,
	}})
}

// Chat relays a chat line to the room, resolving the sender's display name
func (e *Engine) Chat(roomID, connectionID, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	name := "User " + connectionID
	if room := e.store.Get(roomID); room != nil {
		name = room.DisplayName(connectionID)
	}

	e.emit([]pubsub.Event{
		{Room: roomID, Name: EventChatMessage, Data: ChatMessage{User: name, Text: text, UserID: connectionID}},
	})
}

// Leave removes a connection from the room. The room's fate is decided after
// a short settle delay so transport-level membership can catch up: an empty
// room is deleted, and if a dealt-in player left mid-game the remaining
// connections get a fresh deal.
func (e *Engine) Leave(roomID, connectionID string) {
	e.mu.Lock()

	room := e.store.Get(roomID)
	if room == nil {
		e.mu.Unlock()
		return
	}

	room.removeConn(connectionID)
	delete(room.NameMap, connectionID)
	e.mu.Unlock()

	e.timersMu.Lock()
	id := e.timerSeq
	e.timerSeq++
	e.timers[id] = nil
	e.timersMu.Unlock()

	timer := e.afterFunc(e.settleDelay, func() {
		e.settleDeparture(roomID, connectionID)

		e.timersMu.Lock()
		delete(e.timers, id)
		e.timersMu.Unlock()
	})

	e.timersMu.Lock()
	if _, pending := e.timers[id]; pending {
		e.timers[id] = timer
	}
	e.timersMu.Unlock()
}

func (e *Engine) settleDeparture(roomID, connectionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room := e.store.Get(roomID)
	if room == nil {
		return
	}

	if len(room.conns) == 0 {
		logrus.WithField("room", roomID).Info("room empty, clearing state")
		e.store.Delete(roomID)
		return
	}

	events := []pubsub.Event{
		{Room: roomID, Name: EventUserList, Data: room.UserList()},
	}

	// losing a dealt-in player restarts the deal for whoever remains
	if room.IsPlayer(connectionID) {
		logrus.WithFields(logrus.Fields{
			"room": roomID,
			"conn": connectionID,
		}).Info("player left mid-game, re-dealing")

		events = append(events, e.deal(room)...)
	}

	e.emit(events)
}

// RoomCount returns the number of active rooms
func (e *Engine) RoomCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Len()
}

// Close stops any outstanding departure timers
func (e *Engine) Close() {
	e.timersMu.Lock()
	defer e.timersMu.Unlock()

	for _, timer := range e.timers {
		if timer != nil {
			timer.Stop()
		}
	}

	e.timers = make(map[int]*time.Timer)
}

// emit publishes events in order. Publishing is fire-and-forget: a failed
// publish is logged, never surfaced to the client.
func (e *Engine) emit(events []pubsub.Event) {
	for _, event := range events {
		if err := e.bus.Publish(context.Background(), event); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"room":  event.Room,
				"event": event.Name,
			}).Error("could not publish event")
		}
	}
}
