package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/minerepair/repairhub/internal/shared/goroutine"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

var (
	ErrDispatcherStopped = errors.New("event dispatcher is not running")
	ErrBufferFull        = errors.New("event buffer is full")
)

const defaultHandlerTimeout = 15 * time.Second

// InMemoryEventDispatcher queues events on a buffered channel and runs the
// subscribed handlers on a single worker goroutine. Publish never blocks:
// when the buffer is full the event is dropped. Handler errors and panics
// are logged and never reach the publisher.
type InMemoryEventDispatcher struct {
	handlers       map[string][]EventHandler
	mu             sync.RWMutex
	running        atomic.Bool
	stopCh         chan struct{}
	eventCh        chan DomainEvent
	wg             sync.WaitGroup
	handlerTimeout time.Duration
	logger         logger.Interface
}

// NewInMemoryEventDispatcher creates a new in-memory event dispatcher
func NewInMemoryEventDispatcher(bufferSize int, log logger.Interface) *InMemoryEventDispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}

	return &InMemoryEventDispatcher{
		handlers:       make(map[string][]EventHandler),
		stopCh:         make(chan struct{}),
		eventCh:        make(chan DomainEvent, bufferSize),
		handlerTimeout: defaultHandlerTimeout,
		logger:         log.Named("event_dispatcher"),
	}
}

// SetHandlerTimeout bounds each handler call.
func (d *InMemoryEventDispatcher) SetHandlerTimeout(timeout time.Duration) {
	if timeout > 0 {
		d.handlerTimeout = timeout
	}
}

// Publish enqueues a single event without blocking.
func (d *InMemoryEventDispatcher) Publish(event DomainEvent) error {
	if !d.running.Load() {
		return ErrDispatcherStopped
	}

	select {
	case d.eventCh <- event:
		return nil
	default:
		return fmt.Errorf("drop %s for aggregate %d: %w", event.GetEventType(), event.GetAggregateID(), ErrBufferFull)
	}
}

// PublishAll publishes every event, continuing past drops.
func (d *InMemoryEventDispatcher) PublishAll(events []DomainEvent) error {
	var errs []error
	for _, event := range events {
		if err := d.Publish(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers a handler for specific event types
func (d *InMemoryEventDispatcher) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	return nil
}

// Start starts the event dispatcher
func (d *InMemoryEventDispatcher) Start() error {
	if !d.running.CompareAndSwap(false, true) {
		return fmt.Errorf("event dispatcher is already running")
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.processEvents()
	}()

	return nil
}

// Stop rejects new events, delivers what is already queued and returns.
func (d *InMemoryEventDispatcher) Stop() error {
	if !d.running.CompareAndSwap(true, false) {
		return ErrDispatcherStopped
	}

	close(d.stopCh)
	d.wg.Wait()
	return nil
}

func (d *InMemoryEventDispatcher) processEvents() {
	for {
		select {
		case <-d.stopCh:
			for {
				select {
				case event := <-d.eventCh:
					d.handleEvent(event)
				default:
					return
				}
			}
		case event := <-d.eventCh:
			d.handleEvent(event)
		}
	}
}

func (d *InMemoryEventDispatcher) handleEvent(event DomainEvent) {
	d.mu.RLock()
	handlers := d.handlers[event.GetEventType()]
	d.mu.RUnlock()

	for _, handler := range handlers {
		goroutine.Run(d.logger, event.GetEventType(), func() {
			ctx, cancel := context.WithTimeout(context.Background(), d.handlerTimeout)
			defer cancel()

			if err := handler.Handle(ctx, event); err != nil {
				d.logger.Warnw("event handler failed",
					"event_type", event.GetEventType(),
					"aggregate_id", event.GetAggregateID(),
					"error", err,
				)
			}
		})
	}
}
