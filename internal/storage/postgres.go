package storage

import (
	"database/sql"
	"time"

	"reservepro/internal/domain"
)

// Date and time are stored as text in their canonical forms. Older rows may
// still carry a full timestamp in the date column; the pipeline normalizes
// whatever comes back.

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) Insert(res *domain.Reservation) error {
	if res.Status == "" {
		res.Status = domain.StatusPending
	}
	return r.DB.QueryRow(`
		INSERT INTO reservations (restaurant_name, client_name, client_phone, date, time, party_size, table_number, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, res.RestaurantName, res.ClientName, res.ClientPhone, res.Date, res.Time,
		res.PartySize, res.TableNumber, res.Description, res.Status).
		Scan(&res.ID, &res.CreatedAt)
}

func (r *ReservationRepository) Get(id int) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.DB.QueryRow(`
		SELECT id, restaurant_name, client_name, client_phone, date, time, party_size, table_number, description, status, created_at
		FROM reservations
		WHERE id = $1
	`, id).Scan(&res.ID, &res.RestaurantName, &res.ClientName, &res.ClientPhone,
		&res.Date, &res.Time, &res.PartySize, &res.TableNumber, &res.Description,
		&res.Status, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByRestaurant returns the equality-filtered snapshot for one restaurant
// scope. Ordering is left to the pipeline.
func (r *ReservationRepository) ListByRestaurant(restaurantName string) ([]domain.Reservation, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_name, client_name, client_phone, date, time, party_size, table_number, description, status, created_at
		FROM reservations
		WHERE restaurant_name = $1
	`, restaurantName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.RestaurantName, &res.ClientName, &res.ClientPhone,
			&res.Date, &res.Time, &res.PartySize, &res.TableNumber, &res.Description,
			&res.Status, &res.CreatedAt); err != nil {
			continue
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *ReservationRepository) UpdateStatus(id int, status string) error {
	_, err := r.DB.Exec(`
		UPDATE reservations
		SET status = $1
		WHERE id = $2
	`, status, id)
	return err
}

func (r *ReservationRepository) Delete(id int) error {
	_, err := r.DB.Exec(`
		DELETE FROM reservations
		WHERE id = $1
	`, id)
	return err
}

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

// FindByPhone returns the first client with an exact phone match, or nil when
// none exists. Duplicate phones are possible; first match wins.
func (r *ClientRepository) FindByPhone(phone string) (*domain.Client, error) {
	var c domain.Client
	var lastVisit sql.NullTime
	err := r.DB.QueryRow(`
		SELECT id, name, phone, city, total_visits, favorite_table, special_notes, created_at, last_visit_date
		FROM clients
		WHERE phone = $1
		ORDER BY id
		LIMIT 1
	`, phone).Scan(&c.ID, &c.Name, &c.Phone, &c.City, &c.TotalVisits,
		&c.FavoriteTable, &c.SpecialNotes, &c.CreatedAt, &lastVisit)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastVisit.Valid {
		c.LastVisitDate = lastVisit.Time
	}
	return &c, nil
}

func (r *ClientRepository) Insert(c *domain.Client) error {
	return r.DB.QueryRow(`
		INSERT INTO clients (name, phone, city, total_visits, favorite_table, special_notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, c.Name, c.Phone, c.City, c.TotalVisits, c.FavoriteTable, c.SpecialNotes).
		Scan(&c.ID, &c.CreatedAt)
}

// UpdateVisits stamps the new visit count and last visit date. This is the
// only write that ever touches last_visit_date.
func (r *ClientRepository) UpdateVisits(id, totalVisits int, lastVisit time.Time) error {
	_, err := r.DB.Exec(`
		UPDATE clients
		SET total_visits = $1, last_visit_date = $2
		WHERE id = $3
	`, totalVisits, lastVisit, id)
	return err
}
