// Package identity is the authentication boundary: manager accounts with
// bcrypt password hashes, revocable JWT session tokens, and a stream of
// auth-state changes that the session controller reacts to.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"reservepro/internal/domain"
)

// Provider error codes. Screens never show these raw; they go through
// Message.
var (
	ErrDuplicateEmail = errors.New("duplicate-email")
	ErrInvalidEmail   = errors.New("invalid-email")
	ErrUserNotFound   = errors.New("user-not-found")
	ErrWrongPassword  = errors.New("wrong-password")
	ErrInvalidToken   = errors.New("invalid-token")
)

var messages = []struct {
	code error
	text string
}{
	{ErrDuplicateEmail, "email already registered"},
	{ErrInvalidEmail, "invalid email"},
	{ErrUserNotFound, "user not found"},
	{ErrWrongPassword, "wrong password"},
}

// Message maps a provider error to its fixed user-facing text. Unknown errors
// get the generic message with the detail appended.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.code) {
			return m.text
		}
	}
	return "something went wrong: " + err.Error()
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// TokenStore tracks issued tokens for revocation and startup restore.
type TokenStore interface {
	Issue(ctx context.Context, token string) error
	Valid(ctx context.Context, token string) (bool, error)
	Current(ctx context.Context) (string, error)
	Revoke(ctx context.Context, token string) error
}

type Provider struct {
	DB       *sql.DB
	Tokens   TokenStore
	Secret   []byte
	TokenTTL time.Duration

	mu           sync.Mutex
	currentToken string
	listeners    []chan *domain.Manager
	closed       bool
}

func NewProvider(db *sql.DB, tokens TokenStore, secret string, ttl time.Duration) *Provider {
	return &Provider{DB: db, Tokens: tokens, Secret: []byte(secret), TokenTTL: ttl}
}

// SignUp creates a manager account. It does not authenticate; the caller
// stays signed out until an explicit sign-in.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*domain.Manager, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	var exists bool
	err := p.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM managers WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	manager := &domain.Manager{Email: email}
	err = p.DB.QueryRowContext(ctx, `
		INSERT INTO managers (email, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, email, string(hash)).Scan(&manager.ID)
	if err != nil {
		return nil, err
	}
	return manager, nil
}

// SignIn checks credentials, issues a session token and emits an auth-state
// event carrying the identity.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*domain.Manager, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}

	var (
		manager domain.Manager
		hash    string
	)
	err := p.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash FROM managers WHERE email = $1
	`, email).Scan(&manager.ID, &manager.Email, &hash)
	if err == sql.ErrNoRows {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, "", ErrWrongPassword
	}

	token, err := p.signToken(manager)
	if err != nil {
		return nil, "", err
	}
	if err := p.Tokens.Issue(ctx, token); err != nil {
		return nil, "", err
	}

	p.mu.Lock()
	p.currentToken = token
	p.mu.Unlock()
	p.emit(&manager)
	return &manager, token, nil
}

// SignOut revokes the active session token and emits a signed-out event.
func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	token := p.currentToken
	p.currentToken = ""
	p.mu.Unlock()

	if token != "" {
		if err := p.Tokens.Revoke(ctx, token); err != nil {
			return err
		}
	}
	p.emit(nil)
	return nil
}

// Token returns the active session token, empty when signed out.
func (p *Provider) Token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentToken
}

// Restore replays the persisted session at startup and emits the resulting
// auth state, identity or none. Every start emits exactly one event so the
// controller can leave the loading screen.
func (p *Provider) Restore(ctx context.Context) {
	token, err := p.Tokens.Current(ctx)
	if err != nil || token == "" {
		if err != nil {
			log.Printf("identity: restoring session: %v", err)
		}
		p.emit(nil)
		return
	}

	manager, err := p.Verify(ctx, token)
	if err != nil {
		p.emit(nil)
		return
	}

	p.mu.Lock()
	p.currentToken = token
	p.mu.Unlock()
	p.emit(manager)
}

// Verify parses and checks a session token, returning the identity it names.
func (p *Provider) Verify(ctx context.Context, token string) (*domain.Manager, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	ok, err := p.Tokens.Valid(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.Atoi(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	return &domain.Manager{ID: id, Email: email}, nil
}

// AuthStateChanges registers a listener for identity events: a manager on
// sign-in or restore, nil on sign-out.
func (p *Provider) AuthStateChanges() <-chan *domain.Manager {
	ch := make(chan *domain.Manager, 16)
	p.mu.Lock()
	p.listeners = append(p.listeners, ch)
	p.mu.Unlock()
	return ch
}

// Close tears down every listener channel.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for _, ch := range p.listeners {
		close(ch)
	}
	p.listeners = nil
}

func (p *Provider) emit(manager *domain.Manager) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	for _, ch := range p.listeners {
		select {
		case ch <- manager:
		default:
			log.Printf("identity: listener full, dropping auth event")
		}
	}
}

func (p *Provider) signToken(manager domain.Manager) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.Itoa(manager.ID),
		"email": manager.Email,
		"exp":   time.Now().Add(p.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.Secret)
}
