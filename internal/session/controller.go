// Package session owns all screen and session state for one signed-in
// manager: which screen is visible, the restaurant scope, the live
// reservation list, the add-reservation form, and the transient toast. It is
// an explicit state object with an explicit lifetime, so every transition is
// testable without a UI.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"reservepro/internal/domain"
	"reservepro/internal/identity"
	"reservepro/internal/phone"
	"reservepro/internal/pipeline"
	"reservepro/internal/service"
)

type Screen string

const (
	ScreenLoading        Screen = "loading"
	ScreenAuth           Screen = "auth"
	ScreenDashboard      Screen = "dashboard"
	ScreenAddReservation Screen = "add-reservation"
	ScreenClientLookup   Screen = "client-lookup"
)

type AuthTab string

const (
	TabSignIn AuthTab = "signin"
	TabSignUp AuthTab = "signup"
)

// Shortcut chords active on every screen except auth.
const (
	ShortcutNewReservation = "ctrl+n"
	ShortcutFindClient     = "ctrl+k"
)

// Local validation errors; none of these reach the network.
var (
	ErrNotSignedIn      = errors.New("sign in first")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

const minPasswordLen = 6

// AuthProvider is the slice of the identity provider the controller needs.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) (*domain.Manager, error)
	SignIn(ctx context.Context, email, password string) (*domain.Manager, string, error)
	SignOut(ctx context.Context) error
	Token() string
	AuthStateChanges() <-chan *domain.Manager
	Restore(ctx context.Context)
}

// Subscriber opens live reservation subscriptions.
type Subscriber interface {
	Subscribe(ctx context.Context, restaurantName string) *service.Subscription
}

// ScopeStore persists the restaurant scope across restarts.
type ScopeStore interface {
	Save(ctx context.Context, restaurantName string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

const toastTTL = 4 * time.Second

// Toast is the transient notification banner. It auto-dismisses after four
// seconds; readers past that see nothing.
type Toast struct {
	Message string `json:"message"`
	Kind    string `json:"kind"` // success, error, info

	expiresAt time.Time
}

type Controller struct {
	auth         AuthProvider
	watcher      Subscriber
	scopes       ScopeStore
	reservations service.ReservationServiceInterface
	clients      service.ClientServiceInterface

	mu             sync.Mutex
	ctx            context.Context
	cancel         context.CancelFunc
	screen         Screen
	authTab        AuthTab
	manager        *domain.Manager
	scope          string
	list           []domain.Reservation
	listLoading    bool
	searchTerm     string
	form           domain.ReservationForm
	phone          *phone.Input
	selectedClient *domain.Client
	toast          *Toast
	sub            *service.Subscription

	wg sync.WaitGroup
}

func NewController(auth AuthProvider, watcher Subscriber, scopes ScopeStore,
	reservations service.ReservationServiceInterface, clients service.ClientServiceInterface) *Controller {
	return &Controller{
		auth:         auth,
		watcher:      watcher,
		scopes:       scopes,
		reservations: reservations,
		clients:      clients,
		screen:       ScreenLoading,
		authTab:      TabSignIn,
		form:         domain.NewReservationForm(pipeline.Today()),
		phone:        phone.NewInput(),
	}
}

// Start installs the auth-state listener and replays any persisted session.
// The screen stays on loading until the first auth event arrives.
func (c *Controller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.ctx = ctx
	c.cancel = cancel
	c.mu.Unlock()

	events := c.auth.AuthStateChanges()
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case manager, ok := <-events:
				if !ok {
					return
				}
				c.onAuthChange(manager)
			}
		}
	}()

	c.auth.Restore(ctx)
}

// Close tears down the auth listener and any live subscription.
func (c *Controller) Close() {
	c.mu.Lock()
	cancel := c.cancel
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}

// onAuthChange drives the loading→{auth,dashboard} and any→auth transitions.
// Signing out clears every session-scoped field.
func (c *Controller) onAuthChange(manager *domain.Manager) {
	if manager == nil {
		c.mu.Lock()
		c.manager = nil
		c.screen = ScreenAuth
		c.scope = ""
		c.list = nil
		c.listLoading = false
		c.searchTerm = ""
		c.resetFormLocked()
		sub := c.sub
		c.sub = nil
		c.mu.Unlock()
		if sub != nil {
			sub.Close()
		}
		return
	}

	c.mu.Lock()
	c.manager = manager
	c.screen = ScreenDashboard
	scope := c.scope
	ctx := c.ctx
	c.mu.Unlock()

	if scope == "" {
		saved, err := c.scopes.Load(ctx)
		if err != nil {
			log.Printf("session: loading persisted scope: %v", err)
		} else if saved != "" {
			scope = saved
			c.mu.Lock()
			c.scope = saved
			c.mu.Unlock()
		}
	}
	c.resubscribe(scope)
}

// resubscribe tears down the previous live subscription before opening one
// for the given scope.
func (c *Controller) resubscribe(scope string) {
	c.mu.Lock()
	old := c.sub
	ctx := c.ctx
	c.listLoading = true
	c.mu.Unlock()

	if old != nil {
		old.Close()
	}

	sub := c.watcher.Subscribe(ctx, scope)
	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case list, ok := <-sub.Snapshots:
				if !ok {
					return
				}
				c.mu.Lock()
				if c.sub == sub {
					c.list = list
					c.listLoading = false
				}
				c.mu.Unlock()
			case err := <-sub.Errs:
				log.Printf("session: subscription error: %v", err)
			}
		}
	}()
}

// SignUp validates locally, then delegates account creation. On success the
// auth form flips to the sign-in tab; the manager is not auto-authenticated.
func (c *Controller) SignUp(email, password, confirmPassword, restaurantName string) error {
	if password != confirmPassword {
		c.showToast(ErrPasswordMismatch.Error(), "error")
		return ErrPasswordMismatch
	}
	if len(password) < minPasswordLen {
		c.showToast(ErrPasswordTooShort.Error(), "error")
		return ErrPasswordTooShort
	}

	ctx := c.context()
	if _, err := c.auth.SignUp(ctx, email, password); err != nil {
		c.showToast(identity.Message(err), "error")
		return err
	}

	if scope := strings.TrimSpace(restaurantName); scope != "" {
		if err := c.scopes.Save(ctx, scope); err != nil {
			log.Printf("session: persisting scope after sign-up: %v", err)
		}
	}

	c.mu.Lock()
	c.authTab = TabSignIn
	c.mu.Unlock()
	c.showToast("account created, you can sign in now", "success")
	return nil
}

// SignIn requires a restaurant scope, then delegates the credential check.
// Screen transitions happen via the auth-state event the provider emits.
func (c *Controller) SignIn(email, password, restaurantName string) error {
	scope := strings.TrimSpace(restaurantName)
	if scope == "" {
		c.showToast(service.ErrScopeRequired.Error(), "error")
		return service.ErrScopeRequired
	}

	// Scope must be in place before the auth event lands.
	c.mu.Lock()
	c.scope = scope
	c.mu.Unlock()

	ctx := c.context()
	if _, _, err := c.auth.SignIn(ctx, email, password); err != nil {
		c.mu.Lock()
		c.scope = ""
		c.mu.Unlock()
		c.showToast(identity.Message(err), "error")
		return err
	}

	if err := c.scopes.Save(ctx, scope); err != nil {
		log.Printf("session: persisting scope after sign-in: %v", err)
	}
	c.showToast("signed in", "success")
	return nil
}

// SignOut revokes the provider session and clears the persisted scope. State
// reset happens in the signed-out auth event.
func (c *Controller) SignOut() error {
	ctx := c.context()
	if err := c.auth.SignOut(ctx); err != nil {
		c.showToast("sign out failed", "error")
		return err
	}
	if err := c.scopes.Clear(ctx); err != nil {
		log.Printf("session: clearing persisted scope: %v", err)
	}
	c.showToast("signed out", "info")
	return nil
}

// SetAuthTab switches between the sign-in and sign-up forms.
func (c *Controller) SetAuthTab(tab AuthTab) {
	if tab != TabSignIn && tab != TabSignUp {
		return
	}
	c.mu.Lock()
	c.authTab = tab
	c.mu.Unlock()
}

// NewReservation resets the form and opens the add-reservation screen.
func (c *Controller) NewReservation() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.manager == nil {
		return ErrNotSignedIn
	}
	c.resetFormLocked()
	c.screen = ScreenAddReservation
	return nil
}

// FindClient opens the client-lookup screen.
func (c *Controller) FindClient() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.manager == nil {
		return ErrNotSignedIn
	}
	c.screen = ScreenClientLookup
	return nil
}

// Dashboard returns to the dashboard screen.
func (c *Controller) Dashboard() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.manager == nil {
		return ErrNotSignedIn
	}
	c.screen = ScreenDashboard
	return nil
}

// Shortcut dispatches a keyboard chord. Chords are inert on the auth screen
// and unknown chords are ignored.
func (c *Controller) Shortcut(chord string) error {
	c.mu.Lock()
	signedIn := c.manager != nil
	c.mu.Unlock()
	if !signedIn {
		return nil
	}

	switch chord {
	case ShortcutNewReservation:
		return c.NewReservation()
	case ShortcutFindClient:
		return c.FindClient()
	}
	return nil
}

// SetScope switches the restaurant scope, persisting it and re-subscribing.
func (c *Controller) SetScope(restaurantName string) error {
	c.mu.Lock()
	if c.manager == nil {
		c.mu.Unlock()
		return ErrNotSignedIn
	}
	scope := strings.TrimSpace(restaurantName)
	c.scope = scope
	c.mu.Unlock()

	if err := c.scopes.Save(c.context(), scope); err != nil {
		log.Printf("session: persisting scope: %v", err)
	}
	c.resubscribe(scope)
	return nil
}

func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	c.searchTerm = term
	c.mu.Unlock()
}

// Reservations returns the current filtered view. Filtering never re-sorts;
// order comes from the snapshot.
func (c *Controller) Reservations() []domain.Reservation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pipeline.Filter(c.list, c.searchTerm)
}

func (c *Controller) Summary() domain.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Summarize(c.list)
}

// UpdateForm replaces the add-reservation form. The phone value goes through
// the input normalizer, so stray characters are stripped on the way in.
func (c *Controller) UpdateForm(form domain.ReservationForm) domain.ReservationForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phone.Type(form.ClientPhone)
	form.ClientPhone = c.phone.Value()
	c.form = form
	return form
}

// SetPhoneCountry switches the phone input country, reporting whether the
// code was known.
func (c *Controller) SetPhoneCountry(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok := c.phone.SetCountry(code)
	if ok {
		c.form.ClientPhone = c.phone.Value()
	}
	return ok
}

// LookupClient resolves a client by phone and remembers the result for the
// upsert decision on submit.
func (c *Controller) LookupClient(phoneNumber string) (*domain.Client, error) {
	client, err := c.clients.LookupByPhone(phoneNumber)
	if err != nil {
		c.showToast(userMessage(err), "error")
		return nil, err
	}

	c.mu.Lock()
	c.selectedClient = client
	if client != nil {
		c.form.ClientName = client.Name
		c.phone.Type(client.Phone)
		c.form.ClientPhone = c.phone.Value()
	}
	c.mu.Unlock()

	if client == nil {
		c.showToast("new client", "info")
	} else {
		badge := ""
		if client.VIP() {
			badge = " VIP"
		}
		c.showToast(fmt.Sprintf("%s from %s, %d visits%s", client.Name, client.City, client.TotalVisits, badge), "success")
	}
	return client, nil
}

// SubmitReservation runs the submission workflow. On success the form resets
// to its defaults and the screen returns to the dashboard; on any failure the
// form is kept so the manager can correct it.
func (c *Controller) SubmitReservation() (*domain.Reservation, error) {
	c.mu.Lock()
	if c.manager == nil {
		c.mu.Unlock()
		return nil, ErrNotSignedIn
	}
	form := c.form
	scope := c.scope
	selected := c.selectedClient
	c.mu.Unlock()

	reservation, err := c.reservations.Submit(c.context(), form, scope, selected)
	if err != nil {
		c.showToast(userMessage(err), "error")
		return reservation, err
	}

	c.mu.Lock()
	c.resetFormLocked()
	c.screen = ScreenDashboard
	c.mu.Unlock()
	c.showToast(fmt.Sprintf("reservation for %s at %s", form.ClientName, form.Time), "success")
	return reservation, nil
}

// ChangeStatus updates one reservation's status from the dashboard.
func (c *Controller) ChangeStatus(id int, status string) error {
	c.mu.Lock()
	signedIn := c.manager != nil
	c.mu.Unlock()
	if !signedIn {
		return ErrNotSignedIn
	}

	if _, err := c.reservations.UpdateStatus(c.context(), id, status); err != nil {
		c.showToast(userMessage(err), "error")
		return err
	}
	c.showToast("status updated", "success")
	return nil
}

// DeleteReservation removes a reservation. Confirmation is the caller's job.
func (c *Controller) DeleteReservation(id int) error {
	c.mu.Lock()
	signedIn := c.manager != nil
	c.mu.Unlock()
	if !signedIn {
		return ErrNotSignedIn
	}

	if err := c.reservations.Delete(c.context(), id); err != nil {
		c.showToast(userMessage(err), "error")
		return err
	}
	c.showToast("reservation deleted", "success")
	return nil
}

// State is a point-in-time snapshot of everything a screen needs to render.
type State struct {
	Screen         Screen                 `json:"screen"`
	AuthTab        AuthTab                `json:"auth_tab"`
	Manager        *domain.Manager        `json:"manager,omitempty"`
	RestaurantName string                 `json:"restaurant_name"`
	SearchTerm     string                 `json:"search_term"`
	ListLoading    bool                   `json:"list_loading"`
	Reservations   []domain.Reservation   `json:"reservations"`
	Summary        domain.Summary         `json:"summary"`
	Form           domain.ReservationForm `json:"form"`
	PhoneCountry   string                 `json:"phone_country"`
	PhoneValid     bool                   `json:"phone_valid"`
	SelectedClient *domain.Client         `json:"selected_client,omitempty"`
	Toast          *Toast                 `json:"toast,omitempty"`
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Screen:         c.screen,
		AuthTab:        c.authTab,
		Manager:        c.manager,
		RestaurantName: c.scope,
		SearchTerm:     c.searchTerm,
		ListLoading:    c.listLoading,
		Reservations:   pipeline.Filter(c.list, c.searchTerm),
		Summary:        domain.Summarize(c.list),
		Form:           c.form,
		PhoneCountry:   c.phone.Country().Code,
		PhoneValid:     c.phone.Valid(),
		SelectedClient: c.selectedClient,
		Toast:          c.toastLocked(),
	}
}

func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Token exposes the provider's current session token for API clients.
func (c *Controller) Token() string {
	return c.auth.Token()
}

func (c *Controller) Scope() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope
}

func (c *Controller) SelectedClient() *domain.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedClient
}

// Toast returns the active toast, or nil once it has expired.
func (c *Controller) Toast() *Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toastLocked()
}

func (c *Controller) toastLocked() *Toast {
	if c.toast == nil || time.Now().After(c.toast.expiresAt) {
		c.toast = nil
		return nil
	}
	return c.toast
}

func (c *Controller) showToast(message, kind string) {
	c.mu.Lock()
	c.toast = &Toast{Message: message, Kind: kind, expiresAt: time.Now().Add(toastTTL)}
	c.mu.Unlock()
}

func (c *Controller) resetFormLocked() {
	c.form = domain.NewReservationForm(pipeline.Today())
	c.phone = phone.NewInput()
	c.selectedClient = nil
}

func (c *Controller) context() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx != nil {
		return c.ctx
	}
	return context.Background()
}

// userMessage keeps validation messages verbatim and hides everything else
// behind the generic one.
func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrPhoneTooShort),
		errors.Is(err, service.ErrPhoneRequired),
		errors.Is(err, service.ErrScopeRequired),
		errors.Is(err, service.ErrInvalidStatus):
		return err.Error()
	case errors.Is(err, service.ErrClientUpsert):
		return service.ErrClientUpsert.Error()
	}
	return "something went wrong: " + err.Error()
}
