//go:build unit

package sharetoken_test

import (
	"testing"
	"time"

	"tourdesk/internal/pkg/sharetoken"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-0123456789abcdef"

var issuedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestIssueAndVerify(t *testing.T) {
	svc := sharetoken.NewService(secret, 30, sharetoken.PolicyFixedTTL)

	token, err := svc.Issue(42, issuedAt, nil)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("round trip", func(t *testing.T) {
		id, err := svc.BookingID(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)

		require.NoError(t, svc.Verify(token, 42, issuedAt.Add(time.Hour)))

		at, err := svc.IssuedAt(token)
		require.NoError(t, err)
		assert.Equal(t, issuedAt.Unix(), at.Unix())
	})

	t.Run("valid until the 30 day boundary", func(t *testing.T) {
		almostExpired := issuedAt.Add(30*24*time.Hour - time.Second)
		require.NoError(t, svc.Verify(token, 42, almostExpired))

		expired := issuedAt.Add(30 * 24 * time.Hour)
		assert.ErrorIs(t, svc.Verify(token, 42, expired), sharetoken.ErrExpired)
	})

	t.Run("booking mismatch", func(t *testing.T) {
		assert.ErrorIs(t, svc.Verify(token, 43, issuedAt.Add(time.Hour)), sharetoken.ErrBookingMismatch)
	})

	t.Run("different secret rejects", func(t *testing.T) {
		other := sharetoken.NewService("another-secret", 30, sharetoken.PolicyFixedTTL)
		assert.ErrorIs(t, other.Verify(token, 42, issuedAt.Add(time.Hour)), sharetoken.ErrBadSignature)
	})
}

func TestTampering(t *testing.T) {
	svc := sharetoken.NewService(secret, 30, sharetoken.PolicyFixedTTL)
	token, err := svc.Issue(42, issuedAt, nil)
	require.NoError(t, err)

	t.Run("single byte flip in payload", func(t *testing.T) {
		raw := []byte(token)
		if raw[0] == 'A' {
			raw[0] = 'B'
		} else {
			raw[0] = 'A'
		}
		err := svc.Verify(string(raw), 42, issuedAt.Add(time.Hour))
		assert.Error(t, err)
	})

	t.Run("single byte flip in signature", func(t *testing.T) {
		raw := []byte(token)
		last := len(raw) - 1
		if raw[last] == 'A' {
			raw[last] = 'B'
		} else {
			raw[last] = 'A'
		}
		assert.Error(t, svc.Verify(string(raw), 42, issuedAt.Add(time.Hour)))
	})

	t.Run("malformed inputs", func(t *testing.T) {
		for _, tok := range []string{"", ".", "abc", "abc.", ".abc", "not base64 !!.sig"} {
			assert.Error(t, svc.Verify(tok, 42, issuedAt), "token %q", tok)
		}
	})
}

func TestDeparturePolicy(t *testing.T) {
	svc := sharetoken.NewService(secret, 30, sharetoken.PolicyDeparturePlus120)
	departure := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("expiry follows departure plus grace", func(t *testing.T) {
		token, err := svc.Issue(7, issuedAt, &departure)
		require.NoError(t, err)

		beforeGraceEnd := departure.AddDate(0, 0, 119)
		require.NoError(t, svc.Verify(token, 7, beforeGraceEnd))

		afterGraceEnd := departure.AddDate(0, 0, 121)
		assert.ErrorIs(t, svc.Verify(token, 7, afterGraceEnd), sharetoken.ErrExpired)
	})

	t.Run("nil departure falls back to fixed ttl", func(t *testing.T) {
		token, err := svc.Issue(7, issuedAt, nil)
		require.NoError(t, err)

		require.NoError(t, svc.Verify(token, 7, issuedAt.Add(29*24*time.Hour)))
		assert.ErrorIs(t, svc.Verify(token, 7, issuedAt.Add(31*24*time.Hour)), sharetoken.ErrExpired)
	})
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "abcd", sharetoken.Prefix("abcdef", 4))
	assert.Equal(t, "ab", sharetoken.Prefix("ab", 4))
}
