package domain

import "time"

// Reservation statuses as stored. The store assigns StatusPending when a
// reservation is created without one.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusNoShow    = "no-show"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	ID             int       `json:"id"`
	RestaurantName string    `json:"restaurant_name"`
	ClientName     string    `json:"client_name"`
	ClientPhone    string    `json:"client_phone"`
	Date           string    `json:"date"` // canonical YYYY-MM-DD
	Time           string    `json:"time"` // HH:MM, 24h
	PartySize      int       `json:"party_size"`
	TableNumber    string    `json:"table_number"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type Client struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	City          string    `json:"city"`
	TotalVisits   int       `json:"total_visits"`
	FavoriteTable string    `json:"favorite_table"`
	SpecialNotes  string    `json:"special_notes"`
	CreatedAt     time.Time `json:"created_at"`
	LastVisitDate time.Time `json:"last_visit_date"`
}

// VIP is display-only and carries no stored state.
func (c *Client) VIP() bool {
	return c != nil && c.TotalVisits >= VIPVisitThreshold
}

type Manager struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// ChangeEvent is published after every successful reservation write so that
// live subscribers re-query their snapshot.
type ChangeEvent struct {
	Type           string    `json:"type"`
	RestaurantName string    `json:"restaurant_name"`
	ReservationID  int       `json:"reservation_id"`
	Timestamp      time.Time `json:"timestamp"`
}

const (
	ChangeCreated       = "reservation_created"
	ChangeStatusUpdated = "reservation_status_updated"
	ChangeDeleted       = "reservation_deleted"
)

// Summary holds the dashboard status counts for the current snapshot.
type Summary struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
	NoShow    int `json:"no_show"`
}

func Summarize(reservations []Reservation) Summary {
	s := Summary{Total: len(reservations)}
	for _, r := range reservations {
		switch r.Status {
		case StatusConfirmed:
			s.Confirmed++
		case StatusPending:
			s.Pending++
		case StatusNoShow:
			s.NoShow++
		}
	}
	return s
}
