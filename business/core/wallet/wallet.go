// Package wallet provides the business access to connecting a wallet to the
// dashboard: issuing sign-in challenges, verifying the signed response and
// managing the resulting sessions.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell/dashboard/foundation/signature"
	"go.uber.org/zap"
)

// Set of error variables for wallet authentication.
var (
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrChallengeExpired   = errors.New("challenge expired")
	ErrWalletMismatch     = errors.New("signature was not produced by the wallet")
	ErrMissingPermissions = errors.New("missing required permissions")
	ErrUnauthenticated    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// Config contains the settings for wallet authentication.
type Config struct {
	Log          *zap.SugaredLogger
	Domain       string
	ChallengeTTL time.Duration
	SessionTTL   time.Duration
	Required     []Permission
	Now          func() time.Time
}

// Core manages the set of APIs for wallet authentication.
type Core struct {
	log          *zap.SugaredLogger
	domain       string
	challengeTTL time.Duration
	sessionTTL   time.Duration
	required     []Permission
	now          func() time.Time

	mu         sync.Mutex
	challenges map[string]Challenge
	sessions   map[string]Session
}

// NewCore constructs a core for wallet authentication.
func NewCore(cfg Config) *Core {
	if cfg.ChallengeTTL == 0 {
		cfg.ChallengeTTL = 5 * time.Minute
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.Required == nil {
		cfg.Required = RequiredPermissions
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Core{
		log:          cfg.Log,
		domain:       cfg.Domain,
		challengeTTL: cfg.ChallengeTTL,
		sessionTTL:   cfg.SessionTTL,
		required:     cfg.Required,
		now:          cfg.Now,
		challenges:   make(map[string]Challenge),
		sessions:     make(map[string]Session),
	}
}

// Challenge issues a new message for the wallet to sign.
func (c *Core) Challenge(ctx context.Context, wallet string) Challenge {
	now := c.now()

	ch := Challenge{
		Domain:   c.domain,
		Wallet:   wallet,
		Nonce:    uuid.NewString(),
		IssuedAt: now.Unix(),
		Expires:  now.Add(c.challengeTTL).Unix(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.purge(now)
	c.challenges[ch.Nonce] = ch

	return ch
}

// Login verifies the signed challenge and the granted permissions and
// opens a session for the wallet. A challenge can only be used once.
func (c *Core) Login(ctx context.Context, l Login) (Session, error) {
	now := c.now()

	c.mu.Lock()
	ch, exists := c.challenges[l.Nonce]
	delete(c.challenges, l.Nonce)
	c.mu.Unlock()

	if !exists {
		return Session{}, ErrChallengeNotFound
	}

	if now.Unix() > ch.Expires {
		return Session{}, ErrChallengeExpired
	}

	if !strings.EqualFold(ch.Wallet, l.Wallet) {
		return Session{}, ErrWalletMismatch
	}

	signer, err := signature.Recover(ch, l.Signature)
	if err != nil {
		return Session{}, fmt.Errorf("recover signer: %w", err)
	}

	if !strings.EqualFold(signer, l.Wallet) {
		return Session{}, ErrWalletMismatch
	}

	if missing := Missing(c.required, l.Permissions); len(missing) > 0 {
		return Session{}, fmt.Errorf("%w: %s", ErrMissingPermissions, joinPermissions(missing))
	}

	s := Session{
		Token:       uuid.NewString(),
		Wallet:      signer,
		Permissions: slices.Clone(l.Permissions),
		IssuedAt:    now,
		ExpiresAt:   now.Add(c.sessionTTL),
	}

	c.mu.Lock()
	c.sessions[s.Token] = s
	c.mu.Unlock()

	c.log.Infow("wallet login", "wallet", s.Wallet, "expires", s.ExpiresAt)

	return s, nil
}

// Authenticate returns the session for the token.
func (c *Core) Authenticate(ctx context.Context, token string) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, exists := c.sessions[token]
	if !exists {
		return Session{}, ErrUnauthenticated
	}

	if c.now().After(s.ExpiresAt) {
		delete(c.sessions, token)
		return Session{}, ErrSessionExpired
	}

	return s, nil
}

// Logout closes the session for the token.
func (c *Core) Logout(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, exists := c.sessions[token]
	if !exists {
		return ErrUnauthenticated
	}
	delete(c.sessions, token)

	c.log.Infow("wallet logout", "wallet", s.Wallet)

	return nil
}

// Missing returns the required permissions that were not granted.
func Missing(required []Permission, granted []Permission) []Permission {
	var missing []Permission
	for _, p := range required {
		if !slices.Contains(granted, p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// purge drops expired challenges and sessions. The caller must hold the
// lock.
func (c *Core) purge(now time.Time) {
	for nonce, ch := range c.challenges {
		if now.Unix() > ch.Expires {
			delete(c.challenges, nonce)
		}
	}

	for token, s := range c.sessions {
		if now.After(s.ExpiresAt) {
			delete(c.sessions, token)
		}
	}
}

func joinPermissions(perms []Permission) string {
	s := make([]string, len(perms))
	for i, p := range perms {
		s[i] = string(p)
	}
	return strings.Join(s, ", ")
}
