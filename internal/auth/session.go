package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	ErrInvalidSessionToken = errors.New("session token is invalid")
	ErrExpiredSessionToken = errors.New("session token is expired")
)

// Short lived tokens bridging the gap between password login and the
// two-factor verification step.
const defaultSessionTokenDuration = 5 * time.Minute

type SessionManagerInterface interface {
	GenerateSessionToken(userID string, duration time.Duration) (string, error)
	VerifySessionToken(sessionToken string) (string, error)
	DeleteSessionToken(sessionToken string)
	StartSessionTokenCleanup(interval time.Duration)
}

type sessionToken struct {
	userID    string
	expiresAt time.Time
}

type SessionManager struct {
	mu     sync.RWMutex
	tokens map[string]sessionToken
}

func NewSessionManager() SessionManagerInterface {
	return &SessionManager{
		tokens: make(map[string]sessionToken),
	}
}

func (sm *SessionManager) GenerateSessionToken(userID string, duration time.Duration) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", ErrInternalError
	}
	token := hex.EncodeToString(tokenBytes)

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.tokens[token] = sessionToken{
		userID:    userID,
		expiresAt: time.Now().Add(duration),
	}
	return token, nil
}

func (sm *SessionManager) VerifySessionToken(token string) (string, error) {
	sm.mu.RLock()
	session, exists := sm.tokens[token]
	sm.mu.RUnlock()

	if !exists {
		return "", ErrInvalidSessionToken
	}
	if time.Now().After(session.expiresAt) {
		return "", ErrExpiredSessionToken
	}

	return session.userID, nil
}

func (sm *SessionManager) DeleteSessionToken(token string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.tokens, token)
}

func (sm *SessionManager) StartSessionTokenCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			sm.mu.Lock()
			for token, session := range sm.tokens {
				if time.Now().After(session.expiresAt) {
					delete(sm.tokens, token)
				}
			}
			sm.mu.Unlock()
		}
	}()
}
