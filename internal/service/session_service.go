package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sessions expire a fixed 24 hours after creation, not sliding.
const sessionTTL = 24 * time.Hour

// session is the server-side record behind a cookie token.
type session struct {
	userID    int
	expiresAt time.Time
}

// SessionService is the process-wide session store. The cookie carries
// an HS256-signed token whose only claim is the session id; validity
// (user, expiry, logout) is decided here, never from the token alone.
type SessionService struct {
	mu         sync.Mutex
	sessions   map[string]session
	signingKey []byte
	now        func() time.Time
}

func NewSessionService(signingKey string) *SessionService {
	return &SessionService{
		sessions:   make(map[string]session),
		signingKey: []byte(signingKey),
		now:        time.Now,
	}
}

// sessionClaims ties the cookie token to a server-side session record.
type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// Create opens a new session for userID and returns the cookie token.
func (s *SessionService) Create(userID int) (string, error) {
	sid := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	s.sessions[sid] = session{userID: userID, expiresAt: now.Add(sessionTTL)}
	s.mu.Unlock()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sid,
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Resolve maps a cookie token to the user id of its live session.
// Tampered tokens, unknown sessions, and expired sessions all yield
// (0, false); an expired session is removed on the spot.
func (s *SessionService) Resolve(token string) (int, bool) {
	sid, err := s.parseToken(token)
	if err != nil {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sid]
	if !ok {
		return 0, false
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, sid)
		return 0, false
	}
	return sess.userID, true
}

// Destroy ends the session behind the token. Invalid tokens are ignored.
func (s *SessionService) Destroy(token string) {
	sid, err := s.parseToken(token)
	if err != nil {
		return
	}

	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
}

// Run reaps expired sessions on every tick until ctx is cancelled.
// Expired sessions are also rejected at Resolve, so this is hygiene for
// abandoned sessions, not a correctness requirement.
func (s *SessionService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep()
		}
	}
}

func (s *SessionService) sweep() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for sid, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, sid)
		}
	}
}

// parseToken verifies the signature and returns the session id claim.
func (s *SessionService) parseToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.SessionID, nil
}
