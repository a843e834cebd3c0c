package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_VIP(t *testing.T) {
	assert.False(t, (&Client{TotalVisits: 9}).VIP())
	assert.True(t, (&Client{TotalVisits: 10}).VIP())
	assert.False(t, (*Client)(nil).VIP())
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]Reservation{
		{Status: StatusConfirmed},
		{Status: StatusConfirmed},
		{Status: StatusPending},
		{Status: StatusNoShow},
		{Status: StatusCancelled},
	})

	assert.Equal(t, Summary{Total: 5, Confirmed: 2, Pending: 1, NoShow: 1}, summary)
}

func TestNewReservationForm(t *testing.T) {
	form := NewReservationForm("2024-03-15")

	assert.Equal(t, "2024-03-15", form.Date)
	assert.Equal(t, DefaultReservationTime, form.Time)
	assert.Equal(t, DefaultPartySize, form.PartySize)
	assert.Empty(t, form.ClientName)
}
