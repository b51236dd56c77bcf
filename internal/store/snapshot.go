package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"shortlist/internal/domain/candidate"
)

var (
	ErrDuplicateEmail = errors.New("duplicate candidate email")
	ErrMissingEmail   = errors.New("candidate without email")
)

// Snapshot is the immutable candidate set. It is built once and only read
// afterwards, so it is safe for concurrent use without locking.
type Snapshot struct {
	candidates  []candidate.Candidate
	byEmail     map[string]int
	source      string
	fingerprint string
	loadedAt    time.Time
}

// NewSnapshot indexes items by email. Records without an email or with an
// email already seen are skipped and reported in rejected.
func NewSnapshot(source string, items []candidate.Candidate) (*Snapshot, []error) {
	s := &Snapshot{
		candidates: make([]candidate.Candidate, 0, len(items)),
		byEmail:    make(map[string]int, len(items)),
		source:     source,
		loadedAt:   time.Now().UTC(),
	}

	var rejected []error
	for i, c := range items {
		email := strings.TrimSpace(c.Email)
		if email == "" {
			rejected = append(rejected, fmt.Errorf("record %d: %w", i, ErrMissingEmail))
			continue
		}
		if _, ok := s.byEmail[email]; ok {
			rejected = append(rejected, fmt.Errorf("record %d (%s): %w", i, email, ErrDuplicateEmail))
			continue
		}
		s.byEmail[email] = len(s.candidates)
		s.candidates = append(s.candidates, c)
	}

	s.fingerprint = fingerprint(s.candidates)
	return s, rejected
}

// Empty is the snapshot used when loading failed and the process degrades.
func Empty(source string) *Snapshot {
	s, _ := NewSnapshot(source, nil)
	return s
}

// All returns the candidates in load order. The slice is a fresh copy.
func (s *Snapshot) All() []candidate.Candidate {
	if s == nil {
		return nil
	}
	out := make([]candidate.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

func (s *Snapshot) Get(email string) (candidate.Candidate, bool) {
	if s == nil {
		return candidate.Candidate{}, false
	}
	idx, ok := s.byEmail[email]
	if !ok {
		return candidate.Candidate{}, false
	}
	return s.candidates[idx], true
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.candidates)
}

func (s *Snapshot) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// Fingerprint changes whenever the loaded data changes. Cache keys embed it.
func (s *Snapshot) Fingerprint() string {
	if s == nil {
		return ""
	}
	return s.fingerprint
}

func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

func fingerprint(items []candidate.Candidate) string {
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}

func logRejected(logger *zap.Logger, source string, rejected []error) {
	if logger == nil {
		return
	}
	for _, err := range rejected {
		logger.Warn("candidate skipped", zap.String("source", source), zap.Error(err))
	}
}
