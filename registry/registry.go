// Package registry owns the durable list of user records and assigns their
// ids.
//
// Ids are dense and sequential: a new record gets one plus the number of
// records already stored. The sequence is loaded from the Store on every
// append and written back whole, so the Store is the only source of truth.
// Appends through one Registry are serialized, which keeps concurrent callers
// from computing the same id and overwriting each other's record.
package registry

import (
	"context"
	"sync"
	"time"

	"github.com/lvillar/policymcp"
	"github.com/lvillar/policymcp/internal/logger"
)

// User is one persisted user record.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// NewUser carries the caller-supplied fields of a record. No format checks are
// applied; empty strings are stored as given.
type NewUser struct {
	Name    string
	Email   string
	Address string
	Phone   string
}

// Registry appends users to a Store.
type Registry struct {
	store   Store
	log     *logger.Logger
	onCount func(int)
	mu      sync.Mutex
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for store operations.
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

// WithCountObserver registers fn to receive the record count after every
// successful append. It runs while the append still holds the registry lock,
// so observed counts never go backwards.
func WithCountObserver(fn func(int)) Option {
	return func(r *Registry) {
		r.onCount = fn
	}
}

// New returns a Registry backed by store.
func New(store Store, opts ...Option) *Registry {
	r := &Registry{store: store, log: logger.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Append stores a new record built from u and returns its id. Any failure to
// read or write the store is reported as a policymcp.ErrStorage error, and
// the store keeps its previous content.
func (r *Registry) Append(ctx context.Context, u NewUser) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	users, err := r.store.Load(ctx)
	r.log.LogStoreOperation("load", time.Since(start), len(users), err)
	if err != nil {
		return 0, policymcp.StorageError("registry.Append", err)
	}

	id := len(users) + 1
	users = append(users, User{
		ID:      id,
		Name:    u.Name,
		Email:   u.Email,
		Address: u.Address,
		Phone:   u.Phone,
	})

	start = time.Now()
	err = r.store.Save(ctx, users)
	r.log.LogStoreOperation("save", time.Since(start), len(users), err)
	if err != nil {
		return 0, policymcp.StorageError("registry.Append", err)
	}
	if r.onCount != nil {
		r.onCount(len(users))
	}
	return id, nil
}

// Records returns the stored sequence as it is in the Store right now.
func (r *Registry) Records(ctx context.Context) ([]User, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, policymcp.StorageError("registry.Records", err)
	}
	return users, nil
}
