package auth

import (
	"sync"
	"time"
)

// Token is an access token issued by the client-credentials exchange.
type Token struct {
	AccessToken     string    `json:"access_token"`
	TokenType       string    `json:"token_type,omitempty"`
	ExpiresIn       int       `json:"expires_in,omitempty"`
	Scope           string    `json:"scope,omitempty"`
	RestInstanceURL string    `json:"rest_instance_url,omitempty"`
	SoapInstanceURL string    `json:"soap_instance_url,omitempty"`
	ExpiresAt       time.Time `json:"-"`
}

// ValidAt reports whether the token is usable at now. A token without an
// expiry is never valid.
func (t *Token) ValidAt(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	return now.Before(t.ExpiresAt)
}

// Valid reports whether the token is usable right now.
func (t *Token) Valid() bool {
	return t.ValidAt(time.Now())
}

// TokenStore holds the current token. Callers always receive copies.
type TokenStore struct {
	mutex sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns a copy of the current token, or nil.
func (s *TokenStore) Get() *Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.token == nil {
		return nil
	}

	token := *s.token

	return &token
}

// Set replaces the current token with a copy of token.
func (s *TokenStore) Set(token *Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if token == nil {
		s.token = nil

		return
	}

	stored := *token
	s.token = &stored
}

// Clear removes the current token.
func (s *TokenStore) Clear() {
	s.Set(nil)
}
