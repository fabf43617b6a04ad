package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	publishTimeout = 5 * time.Second
)

// Dispatcher fans catalog events out to a fixed set of workers, sharded by
// movie id so events for one movie are published in the order they happened.
type Dispatcher struct {
	workers   []chan domain.CatalogEvent
	publisher ports.CatalogPublisher
	log       zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers shards.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher ports.CatalogPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.CatalogEvent, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.CatalogEvent, channelBuffer)
	}
	return d
}

// Start launches the workers. They exit when ctx is cancelled or after
// Close has drained their queues.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Notify queues ev without blocking. Events are dropped when the shard is
// full or the dispatcher is closed.
func (d *Dispatcher) Notify(ev domain.CatalogEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(ev, "dispatcher closed")
		return
	}

	idx := d.shardIndex(ev.MovieID)
	select {
	case d.workers[idx] <- ev:
		metrics.CatalogEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(ev, "queue full")
	}
}

// Close stops accepting events and waits for queued ones to be published.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a movie id deterministically to a worker index.
func (d *Dispatcher) shardIndex(movieID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(movieID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) drop(ev domain.CatalogEvent, reason string) {
	metrics.CatalogEventsTotal.WithLabelValues("dropped").Inc()
	d.log.Warn().
		Str("event_id", ev.ID).
		Str("movie_id", ev.MovieID).
		Str("type", string(ev.Type)).
		Str("reason", reason).
		Msg("catalog event dropped")
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.CatalogEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			metrics.CatalogEventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.publish(ctx, id, ev)
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, worker int, ev domain.CatalogEvent) {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := d.publisher.Publish(pubCtx, ev); err != nil {
		metrics.CatalogEventsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("event_id", ev.ID).
			Str("movie_id", ev.MovieID).
			Int("worker_id", worker).
			Msg("catalog event publish failed")
		return
	}
	metrics.CatalogEventsTotal.WithLabelValues("published").Inc()
}
