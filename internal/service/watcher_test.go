package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"reservepro/internal/domain"
	"reservepro/internal/mocks"
)

// scriptedReader hands out the queued messages, then blocks until cancel or
// fails with err once drained.
type scriptedReader struct {
	msgs chan kafka.Message
	err  error
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg, ok := <-r.msgs:
		if !ok {
			if r.err != nil {
				return kafka.Message{}, r.err
			}
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		}
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func eventMessage(t *testing.T, scope string) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(domain.ChangeEvent{
		Type:           domain.ChangeCreated,
		RestaurantName: scope,
		ReservationID:  7,
		Timestamp:      time.Now(),
	})
	assert.NoError(t, err)
	return kafka.Message{Key: []byte(scope), Value: payload}
}

func receiveSnapshot(t *testing.T, sub *Subscription) []domain.Reservation {
	t.Helper()
	select {
	case snapshot := <-sub.Snapshots:
		return snapshot
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a snapshot")
		return nil
	}
}

func TestWatcher_InitialSnapshotThenEventDrivenRequery(t *testing.T) {
	repo := mocks.NewReservationRepository(t)
	repo.On("ListByRestaurant", "Trattoria").Return([]domain.Reservation{
		{ID: 1, Date: "2024-03-15", Time: "19:30"},
	}, nil).Once()
	repo.On("ListByRestaurant", "Trattoria").Return([]domain.Reservation{
		{ID: 1, Date: "2024-03-15", Time: "19:30"},
		{ID: 7, Date: "2024-03-15", Time: "18:00"},
	}, nil).Once()

	reader := &scriptedReader{msgs: make(chan kafka.Message, 1)}
	watcher := NewWatcher(repo, func() MessageReader { return reader })

	sub := watcher.Subscribe(context.Background(), "Trattoria")
	defer sub.Close()

	first := receiveSnapshot(t, sub)
	assert.Len(t, first, 1)

	reader.msgs <- eventMessage(t, "Trattoria")

	second := receiveSnapshot(t, sub)
	assert.Len(t, second, 2)
	// Re-queried snapshots arrive sorted.
	assert.Equal(t, 7, second[0].ID)
}

func TestWatcher_IgnoresOtherScopes(t *testing.T) {
	repo := mocks.NewReservationRepository(t)
	repo.On("ListByRestaurant", "Trattoria").Return([]domain.Reservation{{ID: 1, Date: "2024-03-15", Time: "19:30"}}, nil).Once()

	reader := &scriptedReader{msgs: make(chan kafka.Message, 1)}
	watcher := NewWatcher(repo, func() MessageReader { return reader })

	sub := watcher.Subscribe(context.Background(), "Trattoria")
	defer sub.Close()

	receiveSnapshot(t, sub)
	reader.msgs <- eventMessage(t, "Bistro")

	select {
	case <-sub.Snapshots:
		t.Fatal("an event for another scope must not trigger a re-query")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatcher_ReadErrorDegradesToEmptyList(t *testing.T) {
	repo := mocks.NewReservationRepository(t)
	repo.On("ListByRestaurant", "Trattoria").Return([]domain.Reservation{{ID: 1, Date: "2024-03-15", Time: "19:30"}}, nil).Once()

	reader := &scriptedReader{msgs: make(chan kafka.Message), err: errors.New("broker unreachable")}
	close(reader.msgs)
	watcher := NewWatcher(repo, func() MessageReader { return reader })

	sub := watcher.Subscribe(context.Background(), "Trattoria")
	defer sub.Close()

	// The read failure replaces the initial snapshot with an empty one and
	// surfaces a terminal error.
	assert.Eventually(t, func() bool {
		select {
		case snapshot := <-sub.Snapshots:
			return len(snapshot) == 0
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	select {
	case err := <-sub.Errs:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("expected a terminal error")
	}
}

func TestWatcher_QueryErrorSignalsAndStops(t *testing.T) {
	repo := mocks.NewReservationRepository(t)
	repo.On("ListByRestaurant", "Trattoria").Return(nil, errors.New("db down")).Once()

	watcher := NewWatcher(repo, func() MessageReader { return &scriptedReader{msgs: make(chan kafka.Message)} })

	sub := watcher.Subscribe(context.Background(), "Trattoria")
	defer sub.Close()

	snapshot := receiveSnapshot(t, sub)
	assert.Empty(t, snapshot)

	select {
	case err := <-sub.Errs:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("expected a terminal error")
	}
}
