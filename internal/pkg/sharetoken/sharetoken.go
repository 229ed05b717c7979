package sharetoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Share tokens are bearer credentials for the public document endpoints.
// Wire format: base64url(payload JSON) + "." + base64url(HMAC-SHA256(payload JSON)).
// The payload is canonical JSON with fixed field order.

var (
	ErrMalformed       = errors.New("malformed token")
	ErrBadSignature    = errors.New("bad token signature")
	ErrExpired         = errors.New("token expired")
	ErrBookingMismatch = errors.New("token bound to different booking")
	ErrStale           = errors.New("token predates booking")
)

// Policy selects how the expiry of an issued token is computed.
type Policy string

const (
	PolicyFixedTTL         Policy = "fixed_ttl"
	PolicyDeparturePlus120 Policy = "departure_plus_120d"
)

const departureGraceDays = 120

type payload struct {
	BookingID int64 `json:"booking_id"`
	IssuedAt  int64 `json:"issued_at"`
	ExpiresAt int64 `json:"expires_at"`
}

type Service struct {
	secret []byte
	ttl    time.Duration
	policy Policy
}

func NewService(secret string, ttlDays int, policy Policy) *Service {
	if ttlDays <= 0 {
		ttlDays = 30
	}
	if policy != PolicyDeparturePlus120 {
		policy = PolicyFixedTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    time.Duration(ttlDays) * 24 * time.Hour,
		policy: policy,
	}
}

// Issue creates a token for bookingID expiring per the service policy.
// departure may be nil; the policy then falls back to the fixed TTL.
func (s *Service) Issue(bookingID int64, now time.Time, departure *time.Time) (string, error) {
	return s.IssueWithTTL(bookingID, now, s.expiryFor(now, departure).Sub(now))
}

// IssueWithTTL creates a token with an explicit lifetime, bypassing policy.
func (s *Service) IssueWithTTL(bookingID int64, now time.Time, ttl time.Duration) (string, error) {
	p := payload{
		BookingID: bookingID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	sig := s.sign(raw)
	return base64.RawURLEncoding.EncodeToString(raw) + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify checks the token's signature, expiry, and booking binding.
// The signature is always checked before any payload field is trusted.
func (s *Service) Verify(token string, bookingID int64, now time.Time) error {
	p, err := s.parse(token)
	if err != nil {
		return err
	}

	if now.Unix() >= p.ExpiresAt {
		return ErrExpired
	}
	if p.BookingID != bookingID {
		return ErrBookingMismatch
	}
	return nil
}

// BookingID extracts the booking identity from a token after verifying the
// signature. The public controller uses it to resolve the booking before a
// full Verify against the loaded row.
func (s *Service) BookingID(token string) (int64, error) {
	p, err := s.parse(token)
	if err != nil {
		return 0, err
	}
	return p.BookingID, nil
}

// IssuedAt returns the verified issuance time. Callers comparing it against
// a booking's created_at can reject tokens minted for a recreated booking.
func (s *Service) IssuedAt(token string) (time.Time, error) {
	p, err := s.parse(token)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(p.IssuedAt, 0).UTC(), nil
}

// ExpiresAt returns the verified expiry time.
func (s *Service) ExpiresAt(token string) (time.Time, error) {
	p, err := s.parse(token)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(p.ExpiresAt, 0).UTC(), nil
}

func (s *Service) parse(token string) (payload, error) {
	dot := strings.LastIndexByte(token, '.')
	if dot <= 0 || dot == len(token)-1 {
		return payload{}, ErrMalformed
	}

	raw, err := base64.RawURLEncoding.DecodeString(token[:dot])
	if err != nil {
		return payload{}, ErrMalformed
	}
	sig, err := base64.RawURLEncoding.DecodeString(token[dot+1:])
	if err != nil {
		return payload{}, ErrMalformed
	}

	if !hmac.Equal(sig, s.sign(raw)) {
		return payload{}, ErrBadSignature
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return payload{}, ErrMalformed
	}
	return p, nil
}

func (s *Service) sign(raw []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(raw)
	return mac.Sum(nil)
}

func (s *Service) expiryFor(now time.Time, departure *time.Time) time.Time {
	if s.policy == PolicyDeparturePlus120 && departure != nil {
		return departure.AddDate(0, 0, departureGraceDays)
	}
	return now.Add(s.ttl)
}

// Prefix returns the first n characters of the token for use in download
// filenames. Short tokens are returned whole.
func Prefix(token string, n int) string {
	if len(token) <= n {
		return token
	}
	return token[:n]
}
