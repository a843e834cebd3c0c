package service

import (
	"context"
	"time"

	"reservepro/internal/domain"
	"reservepro/internal/storage"
)

type ReservationServiceInterface interface {
	Submit(ctx context.Context, form domain.ReservationForm, restaurantName string, selected *domain.Client) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Reservation, error)
	Delete(ctx context.Context, id int) error
	Get(id int) (*domain.Reservation, error)
}

type ClientServiceInterface interface {
	LookupByPhone(phone string) (*domain.Client, error)
}

type ReservationRepository interface {
	Insert(res *domain.Reservation) error
	Get(id int) (*domain.Reservation, error)
	ListByRestaurant(restaurantName string) ([]domain.Reservation, error)
	UpdateStatus(id int, status string) error
	Delete(id int) error
}

type ClientRepository interface {
	FindByPhone(phone string) (*domain.Client, error)
	Insert(c *domain.Client) error
	UpdateVisits(id, totalVisits int, lastVisit time.Time) error
}

type ChangePublisher interface {
	PublishChange(ctx context.Context, event domain.ChangeEvent) error
}

var (
	_ ReservationServiceInterface = (*ReservationService)(nil)
	_ ClientServiceInterface      = (*ClientService)(nil)
	_ ReservationRepository       = (*storage.ReservationRepository)(nil)
	_ ClientRepository            = (*storage.ClientRepository)(nil)
	_ ChangePublisher             = (*storage.ChangePublisher)(nil)
)
