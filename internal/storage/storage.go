// Package storage provides the in-memory storage layer for Cachium.
// The store is the sole source of truth for provisioned groups. There is
// no durability: a process restart loses all state.
package storage

import (
	"errors"
	"log"
	"sync"

	"evalgo.org/cachium/internal/config"
	"evalgo.org/cachium/models"
)

// ErrNotFound is returned for operations on an unknown group identifier.
var ErrNotFound = errors.New("group not found")

// Store is a mutex-guarded mapping from group identifier to group record.
// It is constructed explicitly and injected into the API server and the
// provisioner, so tests get a fresh store per case.
//
// All mutations are serialized behind a single write lock. CreateGroup
// runs address selection and the insert under one critical section, so
// two concurrent creates can never be handed the same address.
type Store struct {
	mu     sync.RWMutex
	groups map[string]*models.Group
	config *config.Config
}

// debugLog logs a message only if debug mode is enabled in config.
func (s *Store) debugLog(format string, args ...interface{}) {
	if s.config.Server.Debug {
		log.Printf(format, args...)
	}
}

// New creates an empty Store.
func New(cfg *config.Config) *Store {
	return &Store{
		groups: make(map[string]*models.Group),
		config: cfg,
	}
}

// GetGroup returns the group with the given identifier.
func (s *Store) GetGroup(id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(group), nil
}

// ListGroups returns all stored groups keyed by identifier.
func (s *Store) ListGroups() map[string]*models.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make(map[string]*models.Group, len(s.groups))
	for id, group := range s.groups {
		groups[id] = clone(group)
	}
	return groups
}

// CreateGroup builds and inserts a new group. The build callback receives
// the set of every address currently recorded on any instance and must
// return a fully populated group; selection and insert happen under the
// store's write lock so the chosen addresses cannot be reallocated by a
// concurrent create.
func (s *Store) CreateGroup(build func(used map[string]struct{}) (*models.Group, error)) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := build(s.allocatedLocked())
	if err != nil {
		return nil, err
	}

	s.groups[group.ID] = clone(group)
	s.debugLog("storage: created group %s (%d total)", group.ID, len(s.groups))
	return group, nil
}

// UpdateGroup applies a mutation to the stored group under the write
// lock. The existence check and the mutation are one critical section, so
// an update cannot interleave with a concurrent delete.
func (s *Store) UpdateGroup(id string, apply func(*models.Group)) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[id]
	if !ok {
		return nil, ErrNotFound
	}

	apply(group)
	return clone(group), nil
}

// DeleteGroup removes the group with the given identifier.
func (s *Store) DeleteGroup(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[id]; !ok {
		return ErrNotFound
	}

	delete(s.groups, id)
	s.debugLog("storage: deleted group %s (%d total)", id, len(s.groups))
	return nil
}

// Count returns the number of stored groups.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.groups)
}

// AllocatedAddrs returns the set of every address currently recorded on
// any instance in the store.
func (s *Store) AllocatedAddrs() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allocatedLocked()
}

func (s *Store) allocatedLocked() map[string]struct{} {
	used := make(map[string]struct{}, len(s.groups)*models.InstancesPerGroup)
	for _, group := range s.groups {
		for _, inst := range group.Instances {
			used[inst.Addr] = struct{}{}
		}
	}
	return used
}

// clone copies a group so callers never share instance slices with the
// record held under the store's lock.
func clone(g *models.Group) *models.Group {
	c := *g
	c.Instances = append([]models.Instance(nil), g.Instances...)
	return &c
}
