// Package captcha issues arithmetic challenges and checks their answers
// exactly once. Answers live in a Store, normally redis.
package captcha

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/warden/pkg/idx"
)

const DefaultTTL = 5 * time.Minute

// Store keeps answers until they are taken or expire.
type Store interface {
	Put(ctx context.Context, id, answer string, ttl time.Duration) error

	// Take returns and deletes the answer. ok is false when it is missing
	// or expired.
	Take(ctx context.Context, id string) (answer string, ok bool, err error)
}

// Challenge is what a client shows the user. The reply is sent back as
// a token "<id>:<answer>".
type Challenge struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	Store Store
	TTL   time.Duration
	Now   func() time.Time
}

func New(store Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{Store: store, TTL: ttl}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Issue stores a fresh challenge.
func (s *Service) Issue(ctx context.Context) (Challenge, error) {
	a, err := randInt(1, 20)
	if err != nil {
		return Challenge{}, err
	}
	b, err := randInt(1, 20)
	if err != nil {
		return Challenge{}, err
	}

	question := fmt.Sprintf("%d + %d", a, b)
	answer := a + b
	if a > b {
		question, answer = fmt.Sprintf("%d - %d", a, b), a-b
	}

	now := s.now()
	c := Challenge{ID: idx.NewAt(now).String(), Question: question, ExpiresAt: now.Add(s.TTL)}
	if err := s.Store.Put(ctx, c.ID, strconv.Itoa(answer), s.TTL); err != nil {
		return Challenge{}, fmt.Errorf("captcha: store: %w", err)
	}
	return c, nil
}

// Validate consumes the challenge named in token whatever the answer, so
// every challenge allows one guess.
func (s *Service) Validate(ctx context.Context, token string) (bool, error) {
	id, given, ok := strings.Cut(strings.TrimSpace(token), ":")
	if !ok || id == "" || given == "" {
		return false, nil
	}

	want, found, err := s.Store.Take(ctx, id)
	if err != nil {
		return false, fmt.Errorf("captcha: take: %w", err)
	}
	if !found {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(given)), []byte(want)) == 1, nil
}

// randInt is uniform in [lo, hi].
func randInt(lo, hi int) (int, error) {
	if hi < lo {
		return 0, errors.New("captcha: empty range")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	if err != nil {
		return 0, err
	}
	return lo + int(n.Int64()), nil
}
