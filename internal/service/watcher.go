package service

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"

	"github.com/segmentio/kafka-go"

	"reservepro/internal/domain"
	"reservepro/internal/pipeline"
)

// MessageReader is the consumer side of the change stream. *kafka.Reader
// satisfies it.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Subscription is a live view of one restaurant's reservations. Every
// delivery on Snapshots fully replaces the previous list, already normalized
// and sorted. Errs carries at most one terminal error; after it fires the
// subscription has degraded to an empty list and stopped. Callers must Close
// the subscription on scope change or teardown.
type Subscription struct {
	Snapshots <-chan []domain.Reservation
	Errs      <-chan error

	cancel context.CancelFunc
}

func (s *Subscription) Close() {
	s.cancel()
}

// Watcher turns change events plus snapshot re-queries into live
// subscriptions. Each subscription gets its own reader from the factory so
// tearing one down never disturbs another.
type Watcher struct {
	repo      ReservationRepository
	newReader func() MessageReader
}

func NewWatcher(repo ReservationRepository, newReader func() MessageReader) *Watcher {
	return &Watcher{repo: repo, newReader: newReader}
}

// Subscribe delivers an initial snapshot, then a fresh one after every change
// event for the given scope. A blank scope yields a single empty snapshot and
// no queries.
func (w *Watcher) Subscribe(ctx context.Context, restaurantName string) *Subscription {
	snapshots := make(chan []domain.Reservation, 1)
	errs := make(chan error, 1)
	ctx, cancel := context.WithCancel(ctx)

	sub := &Subscription{Snapshots: snapshots, Errs: errs, cancel: cancel}
	scope := strings.TrimSpace(restaurantName)

	go func() {
		defer close(snapshots)

		if scope == "" {
			deliver(snapshots, []domain.Reservation{})
			return
		}

		if !w.deliverSnapshot(snapshots, errs, scope) {
			return
		}

		reader := w.newReader()
		if closer, ok := reader.(io.Closer); ok {
			defer closer.Close()
		}

		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("subscription for %q: reading change stream: %v", scope, err)
				deliver(snapshots, []domain.Reservation{})
				signal(errs, err)
				return
			}

			var event domain.ChangeEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("subscription for %q: bad change event: %v", scope, err)
				continue
			}
			if event.RestaurantName != scope {
				continue
			}
			if !w.deliverSnapshot(snapshots, errs, scope) {
				return
			}
		}
	}()

	return sub
}

// deliverSnapshot queries, normalizes and sorts the scoped snapshot. A query
// error degrades to an empty list plus a terminal error signal.
func (w *Watcher) deliverSnapshot(snapshots chan []domain.Reservation, errs chan error, scope string) bool {
	list, err := w.repo.ListByRestaurant(scope)
	if err != nil {
		log.Printf("subscription for %q: querying snapshot: %v", scope, err)
		deliver(snapshots, []domain.Reservation{})
		signal(errs, err)
		return false
	}

	list = pipeline.Normalize(list, pipeline.Today())
	pipeline.SortSchedule(list)
	deliver(snapshots, list)
	return true
}

// deliver keeps only the latest snapshot when the consumer lags: a stale
// pending delivery is replaced, never queued behind.
func deliver(snapshots chan []domain.Reservation, list []domain.Reservation) {
	for {
		select {
		case snapshots <- list:
			return
		default:
			select {
			case <-snapshots:
			default:
			}
		}
	}
}

func signal(errs chan error, err error) {
	select {
	case errs <- err:
	default:
	}
}
