package server

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/ical"
)

const ticketIssuer = "overwhelmed-tools"

var errInvalidTicket = errors.New("invalid or expired download ticket")

// downloadClaims identify one calendar export. The document itself stays on
// the server under the token id.
type downloadClaims struct {
	jwt.RegisteredClaims
	Kind string `json:"kind"`
}

type exportedFile struct {
	file      ical.File
	expiresAt time.Time
}

// exportStore keeps rendered documents until their ticket expires.
type exportStore struct {
	mu    sync.Mutex
	items map[string]exportedFile
}

func newExportStore() *exportStore {
	return &exportStore{items: make(map[string]exportedFile)}
}

func (s *exportStore) put(id string, f ical.File, expiresAt, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(now)
	s.items[id] = exportedFile{file: f, expiresAt: expiresAt}
}

func (s *exportStore) get(id string, now time.Time) (ical.File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(now)
	v, ok := s.items[id]
	if !ok {
		return ical.File{}, false
	}
	return v.file, true
}

func (s *exportStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

// downloadTickets signs short-lived HS256 download links for stored exports.
type downloadTickets struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	store  *exportStore
}

func newDownloadTickets(secret []byte, ttl time.Duration, now func() time.Time) (downloadTickets, error) {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return downloadTickets{}, fmt.Errorf("generate download secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return downloadTickets{secret: secret, ttl: ttl, now: now, store: newExportStore()}, nil
}

func (d downloadTickets) issue(kind domain.CalendarKind, f ical.File) (string, time.Time, error) {
	issued := d.now()
	expires := issued.Add(d.ttl)
	id := uuid.NewString()
	claims := downloadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    ticketIssuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Kind: string(kind),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(d.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	d.store.put(id, f, expires, issued)
	return token, expires, nil
}

// open returns the document exported under token.
func (d downloadTickets) open(token string) (ical.File, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ticketIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(d.now),
	)
	claims := &downloadClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return d.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ical.File{}, errInvalidTicket
	}
	if !domain.CalendarKind(claims.Kind).Valid() {
		return ical.File{}, errInvalidTicket
	}
	f, ok := d.store.get(claims.ID, d.now())
	if !ok {
		return ical.File{}, errInvalidTicket
	}
	return f, nil
}
