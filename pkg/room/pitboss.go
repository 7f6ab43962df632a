// Package room holds the transport side of a game session: websocket clients,
// per-room dealers, and the pit boss that routes between them and the fabric.
package room

import (
	"context"

	"callbreak-server/pkg/game"
	"callbreak-server/pkg/pubsub"

	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching clients to rooms and routing fabric
// events to the dealer that holds each room's local connections
type PitBoss struct {
	engine     *game.Engine
	bus        pubsub.Bus
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client

	events      <-chan pubsub.Event
	unsubscribe func()
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(engine *game.Engine, bus pubsub.Bus) *PitBoss {
	return &PitBoss{
		engine:     engine,
		bus:        bus,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift subscribes to the fabric and starts the run loop
func (p *PitBoss) StartShift() error {
	events, unsubscribe, err := p.bus.Subscribe(context.Background())
	if err != nil {
		return err
	}

	p.events = events
	p.unsubscribe = unsubscribe

	go p.runLoop()
	return nil
}

// EndShift cancels the fabric subscription, stopping the run loop
func (p *PitBoss) EndShift() {
	p.unsubscribe()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.RoomID]
			if !found {
				dealer = NewDealer(p, client.RoomID, p.engine)
				dealer.StartShift()
				p.dealers[client.RoomID] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.RoomID]
			if !found {
				logrus.WithField("room", client.RoomID).WithField("type", "exception").Error("room not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.RoomID)
			}
		case event, ok := <-p.events:
			if !ok {
				return
			}

			if dealer, found := p.dealers[event.Room]; found {
				dealer.Deliver(event)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
