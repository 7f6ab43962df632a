package room

import (
	"sync"

	"callbreak-server/pkg/game"
	"callbreak-server/pkg/pubsub"

	"github.com/sirupsen/logrus"
)

// Dealer delivers one room's events to the clients connected to this process
// and forwards client intents to the session engine. State lives in the
// engine; the dealer is only the local end of the fabric.
type Dealer struct {
	pitBoss *PitBoss
	roomID  string
	engine  *game.Engine
	clients map[*Client]bool
	lock    sync.RWMutex

	deliver       chan pubsub.Event
	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, roomID string, engine *game.Engine) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		roomID:        roomID,
		engine:        engine,
		clients:       make(map[*Client]bool),
		deliver:       make(chan pubsub.Event, 256),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithField("room", d.roomID)
	log.Debug("creating dealer run loop")

	for {
		select {
		case event := <-d.deliver:
			d.sendToClients(event)
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// sendToClients fans one event out to the local clients it is addressed to.
// NOTE: must only be called from the run loop
func (d *Dealer) sendToClients(event pubsub.Event) {
	for _, client := range d.Clients() {
		if event.To != "" && event.To != client.ID {
			continue
		}

		if !client.Send(&Message{Event: event.Name, Data: event.Data}) {
			logrus.WithField("client", client.String()).Warn("dropping message for slow client")
		}
	}
}

// Deliver hands a fabric event to the run loop
// This method must return quickly
func (d *Dealer) Deliver(event pubsub.Event) {
	select {
	case d.deliver <- event:
	default:
		logrus.WithField("room", d.roomID).Warn("dealer delivery buffer full, dropping event")
	}
}

// AddClient adds a client and registers its presence with the engine
// This method must return quickly. The engine call happens inline, symmetric
// with RemoveClient, so arrivals and departures reach the engine in the order
// the pit boss observed them.
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.engine.Join(d.roomID, client.ID, client.Name)
}

func (d *Dealer) hasClient(client *Client) bool {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.clients[client]
}

// RemoveClient removes a client
// This method must return quickly. The engine call happens inline so the
// departure is recorded even when this was the last client and the run loop
// is about to terminate.
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	d.engine.Leave(d.roomID, client.ID)

	return nClients == 0
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *Intent) {
	switch msg.Action {
	case "joinRoom":
		d.execInRunLoop <- func() {
			if msg.Name != "" {
				c.Name = msg.Name
			}

			// the client may have disconnected while this intent was queued
			if d.hasClient(c) {
				d.engine.Join(d.roomID, c.ID, c.Name)
			}
		}
	case "distributeCards":
		d.execInRunLoop <- func() {
			d.engine.RequestDeal(d.roomID)
		}
	case "playCard":
		card := msg.Card
		d.execInRunLoop <- func() {
			d.engine.SubmitCard(d.roomID, c.ID, card)
		}
	case "chatMessage":
		text := msg.Chat
		d.execInRunLoop <- func() {
			d.engine.Chat(d.roomID, c.ID, text)
		}
	default:
		logrus.WithField("msg", msg).Warn("unknown message")
	}
}
