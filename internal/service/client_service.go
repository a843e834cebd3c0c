package service

import (
	"errors"
	"strings"

	"reservepro/internal/domain"
)

var ErrPhoneRequired = errors.New("phone number required")

type ClientService struct {
	clients ClientRepository
}

func NewClientService(clients ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// LookupByPhone returns the first client with this exact phone number, or
// nil when the phone is unknown. A blank phone is rejected before any query.
func (s *ClientService) LookupByPhone(phone string) (*domain.Client, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, ErrPhoneRequired
	}
	return s.clients.FindByPhone(phone)
}
