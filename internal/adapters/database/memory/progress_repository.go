package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
)

type ProgressRepository struct {
	store *Store
}

var _ portsrepo.ProgressRepositoryFacade = (*ProgressRepository)(nil)

func copyProgress(p domain.ProgressRecord) domain.ProgressRecord {
	entries := make([]domain.ProgressEntry, len(p.Entries))
	copy(entries, p.Entries)
	p.Entries = entries
	return p
}

func (r *ProgressRepository) CreateProgress(_ context.Context, record domain.ProgressRecord) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.progress[record.UserName]; ok {
		return fmt.Errorf("progress record for %s already exists: %w", record.UserName, apperrors.ErrDuplicate)
	}
	s.progress[record.UserName] = copyProgress(record)
	return nil
}

func (r *ProgressRepository) FindProgressByUserName(_ context.Context, userName string) (*domain.ProgressRecord, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.progress[userName]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := copyProgress(p)
	return &out, nil
}

func (r *ProgressRepository) SaveProgress(_ context.Context, record domain.ProgressRecord) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.progress[record.UserName]; !ok {
		return fmt.Errorf("progress record not found: %w", apperrors.ErrNotFound)
	}
	s.progress[record.UserName] = copyProgress(record)
	return nil
}

func (r *ProgressRepository) ListProgress(_ context.Context) ([]domain.ProgressRecord, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ProgressRecord, 0, len(s.progress))
	for _, p := range s.progress {
		out = append(out, copyProgress(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].UserName < out[j].UserName
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ProgressRepository) DeleteProgressByUserName(_ context.Context, userName string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.progress, userName)
	return nil
}
