package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type PinState string

const (
	PinChallenged PinState = "CHALLENGED"
	PinVerified   PinState = "VERIFIED"
	PinLocked     PinState = "LOCKED"
)

// pinSession is the ephemeral state of one PIN challenge. It lives only
// for the duration of a single checkout attempt; a new checkout always
// starts a fresh session with zero attempts.
type pinSession struct {
	accountID string
	pinHash   string
	staged    *StagedOrder
	state     PinState
	attempts  int
	expiresAt time.Time
}

// PinSessionManager gates balance/credit settlement behind a short
// numeric secret with bounded retry. Lockout emits exactly one security
// alert for the affected account.
type PinSessionManager struct {
	mu          sync.Mutex
	sessions    map[string]*pinSession
	maxAttempts int
	ttl         time.Duration
	notifier    AlertNotifier
}

func NewPinSessionManager(maxAttempts int, ttl time.Duration, notifier AlertNotifier) *PinSessionManager {
	return &PinSessionManager{
		sessions:    make(map[string]*pinSession),
		maxAttempts: maxAttempts,
		ttl:         ttl,
		notifier:    notifier,
	}
}

// Challenge opens a new session for the account and stages the order it
// protects. Returns the challenge id the caller must present on verify.
func (m *PinSessionManager) Challenge(accountID string, pinHash string, staged *StagedOrder) string {
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &pinSession{
		accountID: accountID,
		pinHash:   pinHash,
		staged:    staged,
		state:     PinChallenged,
		expiresAt: time.Now().Add(m.ttl),
	}
	return id
}

// Verify compares the submitted PIN against the account's stored digest.
// On a match the session becomes terminal-verified and the staged order
// is returned for commit. A locked session rejects without re-checking
// the PIN; the third consecutive mismatch locks the session and emits
// the security alert.
func (m *PinSessionManager) Verify(ctx context.Context, sessionID string, pin string) (*StagedOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.state == PinLocked {
		return nil, &AccountLockedError{AccountID: sess.accountID}
	}
	if time.Now().After(sess.expiresAt) {
		delete(m.sessions, sessionID)
		return nil, ErrSessionExpired
	}

	// bcrypt comparison is constant-time on the digest.
	if err := bcrypt.CompareHashAndPassword([]byte(sess.pinHash), []byte(pin)); err != nil {
		sess.attempts++
		if sess.attempts >= m.maxAttempts {
			sess.state = PinLocked
			m.notifier.EmitSecurityAlert(ctx, sess.accountID, "pin retry limit reached")
			return nil, &AccountLockedError{AccountID: sess.accountID}
		}
		return nil, &PinMismatchError{AttemptsLeft: m.maxAttempts - sess.attempts}
	}

	sess.state = PinVerified
	staged := sess.staged
	delete(m.sessions, sessionID)
	return staged, nil
}

// Sweep drops expired sessions. Called opportunistically; correctness
// does not depend on it since Verify re-checks expiry.
func (m *PinSessionManager) Sweep() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		if now.After(sess.expiresAt) {
			delete(m.sessions, id)
		}
	}
}

// HashPin produces the stored digest for a PIN.
func HashPin(pin string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}
