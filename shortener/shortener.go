package shortener

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrTokenNotFound  = errors.New("shortener: token not found")
	ErrTokenCollision = errors.New("shortener: unable to allocate a unique token")
	ErrEmptyValue     = errors.New("shortener: empty value")
)

const (
	TokenLength = 8
	maxAttempts = 5
)

type Shortener interface {
	Shorten(ctx context.Context, long string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
}

func NewToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:TokenLength]
}

type memoryShortener struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewMemoryShortener() Shortener {
	return &memoryShortener{
		tokens: make(map[string]string),
	}
}

func (s *memoryShortener) Shorten(ctx context.Context, long string) (string, error) {
	if long == "" {
		return "", ErrEmptyValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < maxAttempts; i++ {
		token := NewToken()
		if _, exist := s.tokens[token]; exist {
			continue
		}
		s.tokens[token] = long
		return token, nil
	}
	return "", ErrTokenCollision
}

func (s *memoryShortener) Resolve(ctx context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	long, exist := s.tokens[token]
	if !exist {
		return "", ErrTokenNotFound
	}
	return long, nil
}
