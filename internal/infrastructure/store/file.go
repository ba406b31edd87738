package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shelfcheck/backend/internal/domain"
)

// fileFormat is the on-disk envelope, matching the portal's expectations.
type fileFormat struct {
	Submissions []*domain.StoredSubmission `json:"submissions"`
}

// FileStore persists submissions to a single JSON file. All submissions
// are held in memory behind an RWMutex; every mutation rewrites the file.
// The volumes here are head-office review queues, not transaction logs.
type FileStore struct {
	path  string
	mu    sync.RWMutex
	items map[string]*domain.StoredSubmission
}

// NewFileStore opens (or initialises) a submission store at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:  path,
		items: make(map[string]*domain.StoredSubmission),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading submission store %s: %w", path, err)
	}

	var contents fileFormat
	if err := json.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("parsing submission store %s: %w", path, err)
	}
	for _, sub := range contents.Submissions {
		s.items[sub.ID] = sub
	}
	return s, nil
}

// Create assigns an ID and timestamp, sets the initial workflow status
// (flagged submissions wait for review, clean ones are approved straight
// away), and persists the submission.
func (s *FileStore) Create(ctx context.Context, sub *domain.StoredSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = uuid.NewString()
	sub.Timestamp = time.Now().UTC()
	if sub.Flagged {
		sub.Status = domain.SubmissionPending
	} else {
		sub.Status = domain.SubmissionApproved
	}

	s.items[sub.ID] = sub
	return s.persistLocked()
}

// List returns pending submissions and decided (approved or denied) ones,
// each newest first. Callers wanting risk ordering sort the pending slice
// themselves.
func (s *FileStore) List(ctx context.Context) (pending, decided []*domain.StoredSubmission, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.items {
		if sub.Status == domain.SubmissionPending {
			pending = append(pending, sub)
		} else {
			decided = append(decided, sub)
		}
	}
	sortNewestFirst(pending)
	sortNewestFirst(decided)
	return pending, decided, nil
}

// Approve marks a pending submission as approved.
func (s *FileStore) Approve(ctx context.Context, id string) error {
	return s.decide(ctx, id, domain.SubmissionApproved, "")
}

// Deny marks a pending submission as denied, recording the reason if any.
func (s *FileStore) Deny(ctx context.Context, id, reason string) error {
	return s.decide(ctx, id, domain.SubmissionDenied, reason)
}

func (s *FileStore) decide(ctx context.Context, id, status, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.items[id]
	if !ok {
		return domain.ErrSubmissionNotFound
	}

	sub.Status = status
	if reason != "" {
		sub.DenialReason = reason
	}
	return s.persistLocked()
}

// persistLocked writes the whole store to disk. Caller holds the lock.
// Written via a temp file and rename so a crash never leaves a truncated
// store behind.
func (s *FileStore) persistLocked() error {
	subs := make([]*domain.StoredSubmission, 0, len(s.items))
	for _, sub := range s.items {
		subs = append(subs, sub)
	}
	sortNewestFirst(subs)

	data, err := json.MarshalIndent(fileFormat{Submissions: subs}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding submission store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing submission store: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func sortNewestFirst(subs []*domain.StoredSubmission) {
	sort.SliceStable(subs, func(a, b int) bool {
		return subs[a].Timestamp.After(subs[b].Timestamp)
	})
}
