package blogcrm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// Principal is the authenticated user behind a session.
type Principal struct {
	Email string
}

// Session is acquired at login and invalidated at sign-out. Handlers receive
// it from the auth gate via SessionFrom rather than reading global state.
type Session struct {
	Principal Principal
	IssuedAt  time.Time
}

// Authenticator verifies login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (Principal, error)
}

// StaticAuthenticator accepts a single configured admin account.
type StaticAuthenticator struct {
	email string
	hash  []byte
}

// NewStaticAuthenticator builds an authenticator for email. passwordHash is a
// bcrypt hash; when it is empty, password is hashed instead.
func NewStaticAuthenticator(email, passwordHash, password string) (*StaticAuthenticator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("admin email is required")
	}
	hash := []byte(passwordHash)
	if len(hash) == 0 {
		if password == "" {
			return nil, errors.New("admin password or password hash is required")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	return &StaticAuthenticator{email: email, hash: hash}, nil
}

// Authenticate implements Authenticator.
func (a *StaticAuthenticator) Authenticate(_ context.Context, email, password string) (Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	// Always run the bcrypt comparison so a wrong email costs the same as a
	// wrong password.
	pwErr := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if email != a.email || pwErr != nil {
		return Principal{}, ErrInvalidCredentials
	}
	return Principal{Email: a.email}, nil
}

const (
	sessionName       = "admin_session"
	sessionContextKey = "blogcrm.session"
)

// SessionFrom returns the session the auth gate attached to c.
func SessionFrom(c echo.Context) (Session, bool) {
	s, ok := c.Get(sessionContextKey).(Session)
	return s, ok
}

// loadSession reads the session cookie. ok is false when there is no
// authenticated principal.
func loadSession(c echo.Context) (Session, bool) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return Session{}, false
	}
	email, ok := sess.Values["email"].(string)
	if !ok || email == "" {
		return Session{}, false
	}
	issued, _ := sess.Values["issued_at"].(int64)
	return Session{Principal: Principal{Email: email}, IssuedAt: time.Unix(0, issued)}, true
}

func startSession(c echo.Context, p Principal) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["email"] = p.Email
	sess.Values["issued_at"] = time.Now().UnixNano()
	return sess.Save(c.Request(), c.Response())
}

func endSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	delete(sess.Values, "email")
	delete(sess.Values, "issued_at")
	return sess.Save(c.Request(), c.Response())
}

// signouts records when each principal last signed out. Cookie sessions
// issued before that instant are rejected, so a copy of the cookie taken
// before sign-out stops working.
type signouts struct {
	mu   sync.RWMutex
	last map[string]time.Time
}

func newSignouts() *signouts {
	return &signouts{last: make(map[string]time.Time)}
}

func (s *signouts) record(p Principal, at time.Time) {
	s.mu.Lock()
	s.last[p.Email] = at
	s.mu.Unlock()
}

// valid reports whether sess was issued after its principal's last sign-out.
func (s *signouts) valid(sess Session) bool {
	s.mu.RLock()
	cutoff, ok := s.last[sess.Principal.Email]
	s.mu.RUnlock()
	return !ok || sess.IssuedAt.After(cutoff)
}

// currentSession returns the cookie session when it is authenticated and
// has not been signed out.
func (a *App) currentSession(c echo.Context) (Session, bool) {
	sess, ok := loadSession(c)
	if !ok || !a.signouts.valid(sess) {
		return Session{}, false
	}
	return sess, true
}

// addFlash queues a notification for the next rendered page.
func addFlash(c echo.Context, f Flash) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(f)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Errorf("save flash: %v", err)
	}
}

// takeFlashes pops queued notifications.
func takeFlashes(c echo.Context) []Flash {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	out := make([]Flash, 0, len(raw))
	for _, r := range raw {
		if f, ok := r.(Flash); ok {
			out = append(out, f)
		}
	}
	_ = sess.Save(c.Request(), c.Response())
	return out
}

// TokenIssuer signs and verifies API bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewTokenIssuer creates an HS256 issuer.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for p and its expiry.
func (t *TokenIssuer) Issue(p Principal) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	claims := tokenClaims{
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify parses a token and returns the session it represents.
func (t *TokenIssuer) Verify(raw string) (Session, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Session{}, err
	}
	if !token.Valid || claims.Email == "" {
		return Session{}, errors.New("invalid token")
	}
	var issued time.Time
	if claims.IssuedAt != nil {
		issued = claims.IssuedAt.Time
	}
	return Session{Principal: Principal{Email: claims.Email}, IssuedAt: issued}, nil
}
