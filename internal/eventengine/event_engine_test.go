package eventengine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine/event"
)

func Test_eventEngine_FanOut(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := &eventEngine{
		EventEngineConfig: &EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
		events:        make(map[event.EventName]*subscribers, 20),
		eventEngineCh: make(chan *event.Event, 1),
	}

	internalSrvWG.Add(1)
	go engine.listen()

	testEventName := event.EventName("test.event.engine.event.name")
	engine.RegisterEvents(testEventName)

	const numEvents = 5

	var mu sync.Mutex
	received := map[event.SubscriberName]int{}

	for _, name := range []event.SubscriberName{"test_subscriber.1", "test_subscriber.2"} {
		name := name
		addressCh := make(chan any, numEvents)

		err := engine.Subscribe(
			testEventName,
			&event.Subscriber{
				Name:      name,
				AddressCh: addressCh,
			},
		)
		if err != nil {
			t.Fatal(err)
		}

		internalSrvWG.Add(1)
		go func() {
			defer internalSrvWG.Done()
			for range addressCh {
				mu.Lock()
				received[name]++
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < numEvents; i++ {
		err := engine.Publish(
			&event.Event{
				Name:    testEventName,
				Payload: fmt.Sprintf("test payload: %d", i+1),
			},
		)
		if err != nil {
			t.Fatal(err)
		}
	}

	close(doneCh)
	internalSrvWG.Wait()

	for name, count := range received {
		if count != numEvents {
			t.Errorf(
				"subscriber %s received %d events, expected %d",
				name,
				count,
				numEvents,
			)
		}
	}
	if len(received) != 2 {
		t.Errorf("expected 2 subscribers to receive events, got %d", len(received))
	}
}

func Test_eventEngine_SubscribeToUnregisteredEvent(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := NewEventEngine(
		&EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
	)

	addressCh := make(chan any, 1)
	err := engine.Subscribe(
		"never.registered",
		&event.Subscriber{
			Name:      "test_subscriber",
			AddressCh: addressCh,
		},
	)
	if err == nil {
		t.Error("expected an error subscribing to an unregistered event")
	}

	if err := engine.Publish(&event.Event{Name: "never.registered"}); err == nil {
		t.Error("expected an error publishing an unregistered event")
	}

	close(doneCh)
	internalSrvWG.Wait()
}
