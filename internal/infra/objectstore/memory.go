package objectstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yanqian/stylecast/internal/domain/analysis"
)

var (
	// ErrBlobNotFound is returned when a key holds no blob.
	ErrBlobNotFound = errors.New("blob not found")
	// ErrInvalidToken is returned for missing, expired or mismatched blob tokens.
	ErrInvalidToken = errors.New("invalid blob token")
)

// MemoryStorage keeps blobs in process and serves them through signed
// links on this service. Useful for tests and local dev.
type MemoryStorage struct {
	baseURL string
	secret  []byte
	now     func() time.Time

	mu    sync.RWMutex
	blobs map[string]storedBlob
}

type storedBlob struct {
	data        []byte
	contentType string
}

// NewMemoryStorage constructs storage. Links point at {publicBaseURL}/api/blobs.
// An empty secret gets a random per-process key.
func NewMemoryStorage(publicBaseURL, secret string) *MemoryStorage {
	if strings.TrimSpace(secret) == "" {
		secret = uuid.NewString()
	}
	return &MemoryStorage{
		baseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		secret:  []byte(secret),
		now:     time.Now,
		blobs:   make(map[string]storedBlob),
	}
}

// Put stores the blob and returns metadata.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, contentType string) (analysis.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := append([]byte(nil), data...)
	s.blobs[key] = storedBlob{data: buf, contentType: contentType}
	return analysis.StoredObject{
		Key:         key,
		Size:        int64(len(buf)),
		ContentType: contentType,
	}, nil
}

// SignedURL returns a link carrying an HS256 token scoped to key.
func (s *MemoryStorage) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   key,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign blob token: %w", err)
	}
	return fmt.Sprintf("%s/api/blobs/%s?token=%s", s.baseURL, escapeKey(key), url.QueryEscape(signed)), nil
}

// Open verifies token against key and returns the blob.
func (s *MemoryStorage) Open(_ context.Context, key, token string) ([]byte, string, error) {
	key = strings.TrimPrefix(key, "/")
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject != key {
		return nil, "", ErrInvalidToken
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, "", ErrBlobNotFound
	}
	return blob.data, blob.contentType, nil
}

// Delete removes the blob.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// Len reports the number of stored blobs.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

var _ analysis.ObjectStorage = (*MemoryStorage)(nil)
