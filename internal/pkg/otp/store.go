package otp

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/helpers"
)

// Store is an in-memory one-time-code store keyed by email, injected into
// the auth service so tests can isolate instances. Codes are bcrypt-hashed
// and expire after the configured TTL; a bounded attempt counter burns the
// challenge on abuse.
type Store struct {
	mu          sync.Mutex
	challenges  map[string]*challenge
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
}

type challenge struct {
	codeHash  []byte
	expiresAt time.Time
	attempts  int
}

// Option configures a Store
type Option func(*Store)

// WithTTL overrides the default 10 minute code lifetime
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty OTP store
func NewStore(opts ...Option) *Store {
	s := &Store{
		challenges:  make(map[string]*challenge),
		ttl:         10 * time.Minute,
		maxAttempts: 5,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue generates a 6-digit code for email, replacing any outstanding
// challenge. The plaintext code is returned once for delivery and only its
// hash is retained.
func (s *Store) Issue(email string) (string, error) {
	code, err := helpers.NewNumericCode(6)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[email] = &challenge{
		codeHash:  hash,
		expiresAt: s.now().Add(s.ttl),
	}
	return code, nil
}

// Verify checks a code and consumes the challenge on success. Expired and
// over-tried challenges are removed.
func (s *Store) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[email]
	if !ok {
		return apperrors.ErrOTPInvalid
	}
	if s.now().After(ch.expiresAt) {
		delete(s.challenges, email)
		return apperrors.ErrOTPExpired
	}
	if ch.attempts >= s.maxAttempts {
		delete(s.challenges, email)
		return apperrors.ErrOTPMaxAttempts
	}
	if bcrypt.CompareHashAndPassword(ch.codeHash, []byte(code)) != nil {
		ch.attempts++
		return apperrors.ErrOTPInvalid
	}

	delete(s.challenges, email)
	return nil
}
