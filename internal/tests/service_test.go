package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reservepro/internal/domain"
	"reservepro/internal/mocks"
	"reservepro/internal/service"
)

func validForm() domain.ReservationForm {
	return domain.ReservationForm{
		ClientName:  "Maria",
		ClientPhone: "+359 89 917 5548",
		Date:        "2024-03-15",
		Time:        "19:30",
		PartySize:   4,
		TableNumber: "12",
	}
}

func TestReservationService_Submit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		form          domain.ReservationForm
		selected      *domain.Client
		prepareMocks  func(*mocks.ReservationRepository, *mocks.ClientRepository, *mocks.ChangePublisher)
		expectedError error
	}{
		{
			name: "success_new_client",
			form: validForm(),
			prepareMocks: func(reservations *mocks.ReservationRepository, clients *mocks.ClientRepository, publisher *mocks.ChangePublisher) {
				reservations.On("Insert", mock.Anything).Run(func(args mock.Arguments) {
					args.Get(0).(*domain.Reservation).ID = 7
				}).Return(nil).Once()
				publisher.On("PublishChange", ctx, mock.Anything).Return(nil).Once()
				clients.On("Insert", mock.MatchedBy(func(c *domain.Client) bool {
					return c.TotalVisits == 1 && c.City == domain.DefaultCity && c.FavoriteTable == "12"
				})).Return(nil).Once()
			},
		},
		{
			name:     "success_existing_client_increments_visits",
			form:     validForm(),
			selected: &domain.Client{ID: 3, Name: "Maria", TotalVisits: 12},
			prepareMocks: func(reservations *mocks.ReservationRepository, clients *mocks.ClientRepository, publisher *mocks.ChangePublisher) {
				reservations.On("Insert", mock.Anything).Return(nil).Once()
				publisher.On("PublishChange", ctx, mock.Anything).Return(nil).Once()
				clients.On("UpdateVisits", 3, 13, mock.AnythingOfType("time.Time")).Return(nil).Once()
			},
		},
		{
			name: "error_missing_fields",
			form: domain.ReservationForm{ClientName: "Maria"},
			prepareMocks: func(*mocks.ReservationRepository, *mocks.ClientRepository, *mocks.ChangePublisher) {
			},
			expectedError: service.ErrMissingFields,
		},
		{
			name: "error_phone_too_short",
			form: func() domain.ReservationForm {
				f := validForm()
				f.ClientPhone = "+359 8"
				return f
			}(),
			prepareMocks: func(*mocks.ReservationRepository, *mocks.ClientRepository, *mocks.ChangePublisher) {
			},
			expectedError: service.ErrPhoneTooShort,
		},
		{
			name: "error_client_upsert_keeps_reservation",
			form: validForm(),
			prepareMocks: func(reservations *mocks.ReservationRepository, clients *mocks.ClientRepository, publisher *mocks.ChangePublisher) {
				reservations.On("Insert", mock.Anything).Return(nil).Once()
				publisher.On("PublishChange", ctx, mock.Anything).Return(nil).Once()
				clients.On("Insert", mock.Anything).Return(errors.New("db connection failed")).Once()
			},
			expectedError: service.ErrClientUpsert,
		},
		{
			name: "publish_failure_is_not_an_error",
			form: validForm(),
			prepareMocks: func(reservations *mocks.ReservationRepository, clients *mocks.ClientRepository, publisher *mocks.ChangePublisher) {
				reservations.On("Insert", mock.Anything).Return(nil).Once()
				publisher.On("PublishChange", ctx, mock.Anything).Return(errors.New("broker down")).Once()
				clients.On("Insert", mock.Anything).Return(nil).Once()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			reservations := mocks.NewReservationRepository(t)
			clients := mocks.NewClientRepository(t)
			publisher := mocks.NewChangePublisher(t)
			testCase.prepareMocks(reservations, clients, publisher)

			svc := service.NewReservationService(reservations, clients, publisher)
			reservation, err := svc.Submit(ctx, testCase.form, "Trattoria", testCase.selected)

			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, reservation)
			}
			if errors.Is(err, service.ErrClientUpsert) {
				// Partial failure still returns the persisted reservation.
				assert.NotNil(t, reservation)
			}
		})
	}
}

func TestReservationService_Submit_RequiresScope(t *testing.T) {
	svc := service.NewReservationService(mocks.NewReservationRepository(t), mocks.NewClientRepository(t), mocks.NewChangePublisher(t))

	_, err := svc.Submit(context.Background(), validForm(), "   ", nil)
	assert.ErrorIs(t, err, service.ErrScopeRequired)
}

func TestReservationService_Submit_AppliesDefaults(t *testing.T) {
	reservations := mocks.NewReservationRepository(t)
	clients := mocks.NewClientRepository(t)
	publisher := mocks.NewChangePublisher(t)

	form := validForm()
	form.PartySize = 0
	form.Description = strings.Repeat("x", 300)

	reservations.On("Insert", mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.PartySize == domain.DefaultPartySize &&
			len(r.Description) == domain.MaxDescriptionLen &&
			r.Status == domain.StatusPending
	})).Return(nil).Once()
	publisher.On("PublishChange", mock.Anything, mock.Anything).Return(nil).Once()
	clients.On("Insert", mock.Anything).Return(nil).Once()

	svc := service.NewReservationService(reservations, clients, publisher)
	_, err := svc.Submit(context.Background(), form, "Trattoria", nil)
	assert.NoError(t, err)
}

func TestReservationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid_status", func(t *testing.T) {
		svc := service.NewReservationService(mocks.NewReservationRepository(t), mocks.NewClientRepository(t), mocks.NewChangePublisher(t))
		_, err := svc.UpdateStatus(ctx, 7, "eaten")
		assert.ErrorIs(t, err, service.ErrInvalidStatus)
	})

	t.Run("success_publishes_change", func(t *testing.T) {
		reservations := mocks.NewReservationRepository(t)
		publisher := mocks.NewChangePublisher(t)

		reservations.On("Get", 7).Return(&domain.Reservation{
			ID: 7, RestaurantName: "Trattoria", Status: domain.StatusPending,
		}, nil).Once()
		reservations.On("UpdateStatus", 7, domain.StatusConfirmed).Return(nil).Once()
		publisher.On("PublishChange", ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool {
			return e.Type == domain.ChangeStatusUpdated && e.RestaurantName == "Trattoria" && e.ReservationID == 7
		})).Return(nil).Once()

		svc := service.NewReservationService(reservations, mocks.NewClientRepository(t), publisher)
		updated, err := svc.UpdateStatus(ctx, 7, domain.StatusConfirmed)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, updated.Status)
	})
}

func TestReservationService_Delete(t *testing.T) {
	ctx := context.Background()
	reservations := mocks.NewReservationRepository(t)
	publisher := mocks.NewChangePublisher(t)

	reservations.On("Get", 7).Return(&domain.Reservation{ID: 7, RestaurantName: "Trattoria"}, nil).Once()
	reservations.On("Delete", 7).Return(nil).Once()
	publisher.On("PublishChange", ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool {
		return e.Type == domain.ChangeDeleted && e.ReservationID == 7
	})).Return(nil).Once()

	svc := service.NewReservationService(reservations, mocks.NewClientRepository(t), publisher)
	assert.NoError(t, svc.Delete(ctx, 7))
}

func TestClientService_LookupByPhone(t *testing.T) {
	t.Run("blank_phone_rejected", func(t *testing.T) {
		svc := service.NewClientService(mocks.NewClientRepository(t))
		_, err := svc.LookupByPhone("   ")
		assert.ErrorIs(t, err, service.ErrPhoneRequired)
	})

	t.Run("delegates_to_repository", func(t *testing.T) {
		clients := mocks.NewClientRepository(t)
		expected := &domain.Client{ID: 3, Name: "Maria", TotalVisits: 12}
		clients.On("FindByPhone", "+359899175548").Return(expected, nil).Once()

		svc := service.NewClientService(clients)
		client, err := svc.LookupByPhone("+359899175548")

		assert.NoError(t, err)
		assert.Equal(t, expected, client)
		assert.True(t, client.VIP())
	})

	t.Run("unknown_phone_is_nil_without_error", func(t *testing.T) {
		clients := mocks.NewClientRepository(t)
		clients.On("FindByPhone", "+359000000000").Return(nil, nil).Once()

		svc := service.NewClientService(clients)
		client, err := svc.LookupByPhone("+359000000000")

		assert.NoError(t, err)
		assert.Nil(t, client)
	})
}

func TestWatcher_BlankScopeDeliversEmptySnapshot(t *testing.T) {
	watcher := service.NewWatcher(mocks.NewReservationRepository(t), nil)

	sub := watcher.Subscribe(context.Background(), "   ")
	defer sub.Close()

	select {
	case snapshot := <-sub.Snapshots:
		assert.Empty(t, snapshot)
	case <-time.After(time.Second):
		t.Fatal("expected an immediate empty snapshot")
	}
}
