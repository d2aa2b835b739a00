// Package session provides Valkey-backed HTTP session management. The
// session is a single named slot holding the serialized current user,
// identified by a secure cookie. There is no automatic expiry: a session
// lives until explicit logout or the slot is cleared externally.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"pressroom/internal/models"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "pr_session"

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Store manages the session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// secure marks session cookies HTTPS-only.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, secure: secure}
}

// Create stores the user in a new session slot and sets the session cookie.
// Returns the session ID. The slot has no TTL; only Destroy removes it.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, user *models.User) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, 0).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return id, nil
}

// Get returns the user stored in the session slot referenced by the request
// cookie. A missing cookie, a missing slot, or a corrupt slot all mean
// "logged out": the return is (nil, nil), never an error the caller must
// distinguish.
func (s *Store) Get(ctx context.Context, r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		// Corrupt slot: treat as logged out rather than failing the request.
		return nil, nil
	}
	if user.ID <= 0 {
		return nil, nil
	}

	return &user, nil
}

// Destroy removes the session slot and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	s.client.Del(ctx, keyPrefix+cookie.Value)

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
