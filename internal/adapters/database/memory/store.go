// Package memory provides an in-process implementation of the repository
// ports. It backs development runs with STORE_DRIVER=memory and the service
// and handler tests.
package memory

import (
	"sync"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
)

// Store holds every collection behind a single lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	progress map[string]domain.ProgressRecord
	views    *domain.SiteViews
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		progress: make(map[string]domain.ProgressRecord),
	}
}

// NewRepositoryProvider returns repositories sharing one fresh store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		UserRepo:     &UserRepository{store: s},
		ProgressRepo: &ProgressRepository{store: s},
		ViewRepo:     &ViewRepository{store: s},
	}
}
