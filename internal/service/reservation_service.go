package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"reservepro/internal/domain"
)

// Validation errors shown to the manager as-is. They are checked before any
// store call is made.
var (
	ErrMissingFields = errors.New("fill in all fields")
	ErrPhoneTooShort = errors.New("phone number looks too short")
	ErrScopeRequired = errors.New("restaurant name is required")
	ErrInvalidStatus = errors.New("unknown reservation status")
)

// ErrClientUpsert marks the partial-failure case: the reservation write
// succeeded but the follow-up client write did not. The reservation is kept.
var ErrClientUpsert = errors.New("reservation saved but client record update failed")

const minPhoneChars = 6

type ReservationService struct {
	reservations ReservationRepository
	clients      ClientRepository
	publisher    ChangePublisher
}

func NewReservationService(reservations ReservationRepository, clients ClientRepository, publisher ChangePublisher) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		clients:      clients,
		publisher:    publisher,
	}
}

// Submit persists a reservation and then creates or updates the client record
// for its phone number. The two writes are independent: a client write
// failure surfaces an error but never rolls the reservation back.
//
// selected is the client resolved by a prior phone lookup, nil for a new one.
func (s *ReservationService) Submit(ctx context.Context, form domain.ReservationForm, restaurantName string, selected *domain.Client) (*domain.Reservation, error) {
	if form.ClientName == "" || form.ClientPhone == "" || form.Date == "" ||
		form.Time == "" || form.TableNumber == "" {
		return nil, ErrMissingFields
	}
	if len(stripWhitespace(form.ClientPhone)) < minPhoneChars {
		return nil, ErrPhoneTooShort
	}

	restaurantName = strings.TrimSpace(restaurantName)
	if restaurantName == "" {
		return nil, ErrScopeRequired
	}

	partySize := form.PartySize
	if partySize < 1 {
		partySize = domain.DefaultPartySize
	}
	description := form.Description
	if len(description) > domain.MaxDescriptionLen {
		description = description[:domain.MaxDescriptionLen]
	}

	reservation := &domain.Reservation{
		RestaurantName: restaurantName,
		ClientName:     form.ClientName,
		ClientPhone:    form.ClientPhone,
		Date:           form.Date,
		Time:           form.Time,
		PartySize:      partySize,
		TableNumber:    form.TableNumber,
		Description:    description,
		Status:         domain.StatusPending,
	}
	if err := s.reservations.Insert(reservation); err != nil {
		return nil, fmt.Errorf("failed to insert reservation: %w", err)
	}

	s.publish(ctx, domain.ChangeCreated, reservation)

	if err := s.upsertClient(form, selected); err != nil {
		return reservation, fmt.Errorf("%w: %v", ErrClientUpsert, err)
	}
	return reservation, nil
}

// upsertClient increments the visit counter of a previously resolved client
// or creates a fresh record with the field defaults.
func (s *ReservationService) upsertClient(form domain.ReservationForm, selected *domain.Client) error {
	if selected != nil {
		return s.clients.UpdateVisits(selected.ID, selected.TotalVisits+1, time.Now())
	}
	return s.clients.Insert(&domain.Client{
		Name:          form.ClientName,
		Phone:         form.ClientPhone,
		City:          domain.DefaultCity,
		TotalVisits:   1,
		FavoriteTable: form.TableNumber,
		SpecialNotes:  "",
	})
}

func (s *ReservationService) UpdateStatus(ctx context.Context, id int, status string) (*domain.Reservation, error) {
	switch status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusNoShow, domain.StatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	reservation, err := s.reservations.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.reservations.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	reservation.Status = status

	s.publish(ctx, domain.ChangeStatusUpdated, reservation)
	return reservation, nil
}

func (s *ReservationService) Delete(ctx context.Context, id int) error {
	reservation, err := s.reservations.Get(id)
	if err != nil {
		return err
	}
	if err := s.reservations.Delete(id); err != nil {
		return err
	}

	s.publish(ctx, domain.ChangeDeleted, reservation)
	return nil
}

func (s *ReservationService) Get(id int) (*domain.Reservation, error) {
	return s.reservations.Get(id)
}

// publish notifies live subscribers. The write already succeeded, so a
// publish failure is logged rather than returned; subscribers catch up on
// the next event.
func (s *ReservationService) publish(ctx context.Context, changeType string, reservation *domain.Reservation) {
	if s.publisher == nil {
		return
	}
	event := domain.ChangeEvent{
		Type:           changeType,
		RestaurantName: reservation.RestaurantName,
		ReservationID:  reservation.ID,
		Timestamp:      time.Now(),
	}
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		log.Printf("failed to publish %s event for reservation %d: %v", changeType, reservation.ID, err)
	}
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
