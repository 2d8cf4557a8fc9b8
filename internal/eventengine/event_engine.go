package eventengine

import (
	"fmt"
	"log"
	"sync"

	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine/event"
)

type Publisher interface {
	Publish(event *event.Event) error
}

type Subscriber interface {
	Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error
}

type RegisterPublisher interface {
	Publisher
	RegisterEvents(eventNames ...event.EventName)
}

type SubscribeRegisterPublisher interface {
	Subscriber
	RegisterPublisher
}

type subscribers struct {
	names      []*event.SubscriberName
	addressChs []chan<- any
}

type EventEngineConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
}

// eventEngine is the in-process pub/sub bus. Services register the events
// they emit, event handlers subscribe with a channel, and Publish fans an
// event out to every subscriber of its name.
type eventEngine struct {
	*EventEngineConfig
	eventEngineCh chan *event.Event
	events        map[event.EventName]*subscribers
}

func NewEventEngine(cfg *EventEngineConfig) SubscribeRegisterPublisher {
	if cfg == nil {
		log.Fatalln("'eventEngineConfig' can not be nil")
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil {
		log.Fatalln("either DoneCh or InternalSrvWG is nil")
	}

	e := &eventEngine{
		EventEngineConfig: cfg,
		events:            make(map[event.EventName]*subscribers, 20),
		eventEngineCh:     make(chan *event.Event, 20),
	}

	e.InternalSrvWG.Add(1)
	go e.listen()

	return e
}

func (e *eventEngine) listen() {
	defer e.InternalSrvWG.Done()

	log.Println("event engine is listening...")

	for { // read until the e.DoneCh is signalled.
		select {
		case <-e.DoneCh:
			close(e.eventEngineCh)
			log.Println("event engine is shutting down, draining pending events")

			for pending := range e.eventEngineCh {
				e.broadcast(pending)
			}

			e.shutdownSubscribersAddressCh()
			return

		case newEvent, isOpened := <-e.eventEngineCh:
			if !isOpened {
				log.Println("eventEngineCh is closed")
				return
			}

			e.broadcast(newEvent)
		}
	}
}

func (e *eventEngine) broadcast(newEvent *event.Event) {
	subscribers, exists := e.events[newEvent.Name]
	if !exists {
		log.Printf(
			"event %v not found. check your event handler\n",
			newEvent.Name,
		)
		return
	}

	for i, addressCh := range subscribers.addressChs {
		if addressCh == nil {
			log.Printf(
				"subscriber '%v's' addressCh is nil. check this event handler to make sure it has been initialized\n",
				subscribers.names[i],
			)
			continue
		}

		addressCh <- newEvent.Payload
	}
}

// RegisterEvents adds all events a publisher can publish to, to the
// [eventEngine].
//
// IMPORTANT: Register an event before you try to publish or subscribe to it.
func (e *eventEngine) RegisterEvents(eventNames ...event.EventName) {
	for _, eventName := range eventNames {
		if _, exists := e.events[eventName]; exists {
			log.Println("event already exists:", eventName)
			continue
		}

		e.events[eventName] = &subscribers{}
	}

	log.Println("registering events:", eventNames)
}

func (e *eventEngine) Subscribe(toEventName event.EventName, newSubscriber *event.Subscriber) error {
	if _, ok := e.events[toEventName]; !ok {
		return fmt.Errorf(
			"event '%v' not found. make sure the emitting service called 'RegisterEvents' before '%v' subscribed",
			toEventName,
			newSubscriber.Name,
		)
	}

	e.events[toEventName] = &subscribers{
		names:      append(e.events[toEventName].names, &newSubscriber.Name),
		addressChs: append(e.events[toEventName].addressChs, newSubscriber.AddressCh),
	}

	return nil
}

func (e *eventEngine) Publish(newEvent *event.Event) error {
	if _, exists := e.events[newEvent.Name]; !exists {
		return fmt.Errorf(
			"event %v not found. check the service which is to publish the event to make sure they called 'RegisterEvents'",
			newEvent.Name,
		)
	}

	e.eventEngineCh <- newEvent

	return nil
}

func (e *eventEngine) shutdownSubscribersAddressCh() {
	seen := make(map[chan<- any]bool)

	for _, subscribers := range e.events {
		for _, addressCh := range subscribers.addressChs {
			if addressCh == nil || seen[addressCh] {
				continue
			}

			seen[addressCh] = true
			close(addressCh)
		}
	}

	log.Println("subscriber addressChs shut down")
}
