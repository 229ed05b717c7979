// Package cache is the content-addressed artifact store for rendered
// documents. Keys derive from booking identity plus the booking's
// mutation timestamp, so editing a booking invalidates its artifacts
// without any explicit bookkeeping.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"tourdesk/internal/pkg/errs"
)

const (
	// hot-layer settings, in front of disk for repeated public fetches
	hotTTL             = 5 * time.Minute
	hotCleanupInterval = 15 * time.Minute
)

// Key identifies one cached artifact.
type Key struct {
	BookingID     int64
	MutationStamp time.Time
	Kind          string
	Scale         int
	Page          int
}

// Hash is the content address. Any field change, in particular the
// mutation stamp, produces a different address.
func (k Key) Hash() string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d|%d|%s|%d|%d",
		k.BookingID, k.MutationStamp.UTC().Unix(), k.Kind, k.Scale, k.Page))
	return hex.EncodeToString(sum[:])
}

// Store is a filesystem cache with an in-process hot layer. Disk writes
// are atomic (temp file + rename), so readers observe either a complete
// artifact or a miss, never a torn file.
type Store struct {
	dir    string
	hot    *gocache.Cache
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "creating cache directory")
	}
	return &Store{
		dir:    dir,
		hot:    gocache.New(hotTTL, hotCleanupInterval),
		logger: logger,
	}, nil
}

// Get returns the cached bytes, or ok=false on a miss. Misses are never
// errors; the caller re-renders and re-populates.
func (s *Store) Get(k Key) ([]byte, bool) {
	hash := k.Hash()
	if v, found := s.hot.Get(hash); found {
		if b, ok := v.([]byte); ok {
			return b, true
		}
	}

	b, err := os.ReadFile(s.path(k.BookingID, hash))
	if err != nil {
		return nil, false
	}
	s.hot.Set(hash, b, gocache.DefaultExpiration)
	return b, true
}

// Put writes the artifact atomically.
func (s *Store) Put(k Key, data []byte) error {
	hash := k.Hash()
	dir := s.bookingDir(k.BookingID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(err, "creating booking cache directory")
	}

	tmp, err := os.CreateTemp(dir, "."+hash+".tmp-*")
	if err != nil {
		return errs.Wrap(err, "creating temp cache file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errs.Wrap(err, "writing cache file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errs.Wrap(err, "closing cache file")
	}
	if err := os.Rename(tmpName, s.path(k.BookingID, hash)); err != nil {
		os.Remove(tmpName)
		return errs.Wrap(err, "publishing cache file")
	}

	s.hot.Set(hash, data, gocache.DefaultExpiration)
	return nil
}

// Invalidate drops every artifact for a booking. Used on transitions that
// need a clean slate (cancel, voucher regeneration).
func (s *Store) Invalidate(bookingID int64) error {
	s.hot.Flush()
	if err := os.RemoveAll(s.bookingDir(bookingID)); err != nil {
		return errs.Wrap(err, "removing booking cache directory")
	}
	return nil
}

// Cleanup removes artifacts older than maxAge and returns how many files
// went away. Safe to run repeatedly and concurrently with readers.
func (s *Store) Cleanup(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0

	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // entry vanished mid-walk
		}
		if info.IsDir() || !info.ModTime().Before(cutoff) {
			return nil
		}
		if rmErr := os.Remove(path); rmErr == nil {
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, errs.Wrap(err, "walking cache directory")
	}

	if removed > 0 && s.logger != nil {
		s.logger.Info("cache cleanup", "removed", removed, "max_age", maxAge)
	}
	return removed, nil
}

func (s *Store) bookingDir(bookingID int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(bookingID, 10))
}

func (s *Store) path(bookingID int64, hash string) string {
	return filepath.Join(s.bookingDir(bookingID), hash+".bin")
}
