package domain

// Form and record defaults. These were scattered through the screens at one
// point; keep every magic value here.
const (
	DefaultReservationTime = "19:30"
	DefaultPartySize       = 4
	DefaultCity            = "unknown"
	VIPVisitThreshold      = 10
	MaxDescriptionLen      = 200
)

// ReservationForm is the add-reservation screen state.
type ReservationForm struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	PartySize   int    `json:"party_size"`
	TableNumber string `json:"table_number"`
	Description string `json:"description"`
}

// NewReservationForm returns the form in its default state: today's date,
// default time and party size, everything else empty.
func NewReservationForm(today string) ReservationForm {
	return ReservationForm{
		Date:      today,
		Time:      DefaultReservationTime,
		PartySize: DefaultPartySize,
	}
}
