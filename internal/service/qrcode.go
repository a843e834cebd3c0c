package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"reservepro/internal/domain"
)

type QRGenerator interface {
	Generate(res *domain.Reservation) ([]byte, error)
}

// DefaultQRGenerator renders a reservation confirmation card as a QR PNG,
// handed to the guest on confirmation.
type DefaultQRGenerator struct{}

func (g DefaultQRGenerator) Generate(res *domain.Reservation) ([]byte, error) {
	qrData := fmt.Sprintf("%s | %s %s | %s, party of %d | table %s",
		res.RestaurantName, res.Date, res.Time, res.ClientName, res.PartySize, res.TableNumber)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
