package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reservepro/internal/domain"
	"reservepro/internal/identity"
	"reservepro/internal/metrics"
	"reservepro/internal/service"
	"reservepro/internal/session"
)

// Handler exposes the session controller to the single-page UI as JSON
// endpoints. There is one controller per process, mirroring one signed-in
// manager per app instance.
type Handler struct {
	Session      *session.Controller
	Verifier     TokenVerifier
	Reservations service.ReservationServiceInterface
	QR           service.QRGenerator
	Metrics      *metrics.Metrics
}

// TokenVerifier checks bearer tokens on manager routes.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Manager, error)
}

func NewHandler(sess *session.Controller, verifier TokenVerifier,
	reservations service.ReservationServiceInterface, qr service.QRGenerator, m *metrics.Metrics) *Handler {
	return &Handler{
		Session:      sess,
		Verifier:     verifier,
		Reservations: reservations,
		QR:           qr,
		Metrics:      m,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(h.observe)

	r.HandleFunc("/api/state", h.getState).Methods("GET")

	r.HandleFunc("/api/auth/signup", h.signUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", h.signIn).Methods("POST")
	r.HandleFunc("/api/auth/tab", h.setAuthTab).Methods("POST")

	protected := r.NewRoute().Subrouter()
	protected.Use(h.requireAuth)
	protected.HandleFunc("/api/auth/signout", h.signOut).Methods("POST")
	protected.HandleFunc("/api/navigate", h.navigate).Methods("POST")
	protected.HandleFunc("/api/shortcut", h.shortcut).Methods("POST")
	protected.HandleFunc("/api/scope", h.setScope).Methods("PUT")
	protected.HandleFunc("/api/reservations", h.listReservations).Methods("GET")
	protected.HandleFunc("/api/reservations", h.submitReservation).Methods("POST")
	protected.HandleFunc("/api/reservations/{id}/status", h.changeStatus).Methods("PATCH")
	protected.HandleFunc("/api/reservations/{id}", h.deleteReservation).Methods("DELETE")
	protected.HandleFunc("/api/reservations/{id}/qrcode", h.getReservationQR).Methods("GET")
	protected.HandleFunc("/api/clients/lookup", h.lookupClient).Methods("POST")
	protected.HandleFunc("/api/phone/country", h.setPhoneCountry).Methods("PUT")
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
		RestaurantName  string `json:"restaurant_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := h.Session.SignUp(payload.Email, payload.Password, payload.ConfirmPassword, payload.RestaurantName); err != nil {
		h.countError()
		writeError(w, signUpStatus(err), authMessage(err))
		return
	}
	if h.Metrics != nil {
		h.Metrics.SignUps.Inc()
	}
	writeJSON(w, http.StatusCreated, h.Session.State())
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email          string `json:"email"`
		Password       string `json:"password"`
		RestaurantName string `json:"restaurant_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := h.Session.SignIn(payload.Email, payload.Password, payload.RestaurantName); err != nil {
		h.countError()
		writeError(w, signInStatus(err), authMessage(err))
		return
	}
	if h.Metrics != nil {
		h.Metrics.SignIns.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": h.Session.Token(),
		"state": h.Session.State(),
	})
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.SignOut(); err != nil {
		h.countError()
		writeError(w, http.StatusInternalServerError, "sign out failed")
		return
	}
	writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *Handler) setAuthTab(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Tab string `json:"tab"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	h.Session.SetAuthTab(session.AuthTab(payload.Tab))
	writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *Handler) navigate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Screen string `json:"screen"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	var err error
	switch session.Screen(payload.Screen) {
	case session.ScreenDashboard:
		err = h.Session.Dashboard()
	case session.ScreenAddReservation:
		err = h.Session.NewReservation()
	case session.ScreenClientLookup:
		err = h.Session.FindClient()
	default:
		writeError(w, http.StatusBadRequest, "unknown screen")
		return
	}
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *Handler) shortcut(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Chord string `json:"chord"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Session.Shortcut(payload.Chord); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *Handler) setScope(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RestaurantName string `json:"restaurant_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Session.SetScope(payload.RestaurantName); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *Handler) listReservations(w http.ResponseWriter, r *http.Request) {
	if term := r.URL.Query().Get("q"); term != "" || r.URL.Query().Has("q") {
		h.Session.SetSearchTerm(term)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": h.Session.Reservations(),
		"summary":      h.Session.Summary(),
	})
}

func (h *Handler) submitReservation(w http.ResponseWriter, r *http.Request) {
	var form domain.ReservationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	h.Session.UpdateForm(form)
	reservation, err := h.Session.SubmitReservation()
	if err != nil {
		h.countError()
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrPhoneTooShort),
			errors.Is(err, service.ErrScopeRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClientUpsert):
			// The reservation itself is persisted.
			writeError(w, http.StatusInternalServerError, service.ErrClientUpsert.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to save reservation")
		}
		return
	}

	if h.Metrics != nil {
		h.Metrics.ReservationsCreated.Inc()
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := h.Session.ChangeStatus(id, payload.Status); err != nil {
		h.countError()
		if errors.Is(err, service.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	if h.Metrics != nil {
		h.Metrics.StatusUpdates.Inc()
	}
	writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *Handler) deleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	if err := h.Session.DeleteReservation(id); err != nil {
		h.countError()
		writeError(w, http.StatusInternalServerError, "failed to delete reservation")
		return
	}
	if h.Metrics != nil {
		h.Metrics.ReservationsDeleted.Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getReservationQR(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	reservation, err := h.Reservations.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "reservation not found")
		return
	}
	png, err := h.QR.Generate(reservation)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) lookupClient(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	client, err := h.Session.LookupClient(payload.Phone)
	if err != nil {
		h.countError()
		if errors.Is(err, service.ErrPhoneRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if h.Metrics != nil {
		h.Metrics.ClientLookups.Inc()
	}

	if client == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"found": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"found":  true,
		"client": client,
		"vip":    client.VIP(),
	})
}

func (h *Handler) setPhoneCountry(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !h.Session.SetPhoneCountry(payload.Code) {
		writeError(w, http.StatusBadRequest, "unknown country code")
		return
	}
	writeJSON(w, http.StatusOK, h.Session.State())
}

func (h *Handler) countError() {
	if h.Metrics != nil {
		h.Metrics.ErrorsTotal.Inc()
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func signUpStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrPasswordMismatch),
		errors.Is(err, session.ErrPasswordTooShort),
		errors.Is(err, identity.ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, identity.ErrDuplicateEmail):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func signInStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrScopeRequired),
		errors.Is(err, identity.ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, identity.ErrUserNotFound),
		errors.Is(err, identity.ErrWrongPassword):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// authMessage mirrors the toast text for API clients: local validation
// errors verbatim, provider codes through the taxonomy.
func authMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrPasswordMismatch),
		errors.Is(err, session.ErrPasswordTooShort),
		errors.Is(err, service.ErrScopeRequired):
		return err.Error()
	}
	return identity.Message(err)
}
