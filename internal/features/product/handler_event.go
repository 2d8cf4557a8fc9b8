package product

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine"
	"github.com/sampledev-eng/freshcart-express-backend/internal/eventengine/event"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.product"

type servicerEvent interface {
	logLowStock(ctx context.Context, productIDs []uuid.UUID) error
}

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Service       servicerEvent
	AddressChSize uint16
}

type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(cfg *HandlerEventsConfig) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Service == nil {
		log.Fatalf(
			"either 'DoneCh', 'EventEngine', 'InternalSrvWG' or 'Service' is nil in '%s'",
			subscriberName,
		)
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	h.addSubscriptions()

	log.Printf("%s is listening...\n", subscriberName)

	// a for-select is not used here because the event engine closes the
	// addressCh on shutdown
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.OrderPlacedEvent:
			h.orderPlacedEventHandler(ne)

		default:
			log.Printf(
				"received unknown event type: %T\n",
				ne,
			)
		}
	}

	log.Printf("shutting down %s\n", subscriberName)
}

func (h *handlerEvents) orderPlacedEventHandler(newEvent *event.OrderPlacedEvent) {
	ctx := context.Background()

	productIDs := make([]uuid.UUID, len(newEvent.Items))
	for i, item := range newEvent.Items {
		productIDs[i] = item.ProductID
	}

	if err := h.Service.logLowStock(ctx, productIDs); err != nil {
		log.Println("failed to run low stock check:", err)
	}
}

// addSubscriptions iterates over subscribeToEventNames and subscribes to
// each event with addressCh.
func (h *handlerEvents) addSubscriptions() {
	subscribeToEventNames := [1]event.EventName{
		event.OrderPlacedEventName,
	}

	for _, v := range subscribeToEventNames {
		err := h.EventEngine.Subscribe(
			v,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			log.Fatalf(
				"error in Subscriber: '%s' \nerror subscribing to events: %v\n",
				subscriberName,
				err,
			)
		}
	}
}
