// Package provision builds new cache groups: it generates identifiers,
// allocates instance addresses and commits the assembled record to the
// store. Nothing is deployed; the addresses are bookkeeping values.
package provision

import (
	"fmt"
	"strconv"

	"evalgo.org/cachium/internal/config"
	"evalgo.org/cachium/internal/ipalloc"
	"evalgo.org/cachium/internal/storage"
	"evalgo.org/cachium/models"
)

// Provisioner creates groups against a single store and allocator.
type Provisioner struct {
	store *storage.Store
	alloc *ipalloc.Allocator
}

// New creates a Provisioner with an allocator for the configured subnet.
func New(cfg *config.Config, store *storage.Store) (*Provisioner, error) {
	alloc, err := ipalloc.New(cfg.Allocator.Subnet)
	if err != nil {
		return nil, fmt.Errorf("failed to create allocator: %w", err)
	}

	return &Provisioner{
		store: store,
		alloc: alloc,
	}, nil
}

// CreateGroup builds a new group with two allocated instances and inserts
// it into the store. Address selection and the insert are committed
// atomically through the store's create path.
func (p *Provisioner) CreateGroup(name string, memsize float64) (*models.Group, error) {
	return p.store.CreateGroup(func(used map[string]struct{}) (*models.Group, error) {
		return p.buildGroup(name, memsize, used)
	})
}

// buildGroup assembles a fully populated group record. Every allocation
// after the first excludes the addresses already picked for this group,
// so the pair is always distinct.
func (p *Provisioner) buildGroup(name string, memsize float64, used map[string]struct{}) (*models.Group, error) {
	id := models.GenerateGroupID()

	picked := make(map[string]struct{}, models.InstancesPerGroup)
	instances := make([]models.Instance, 0, models.InstancesPerGroup)

	for seq := 1; seq <= models.InstancesPerGroup; seq++ {
		addr, err := p.alloc.Allocate(used, picked)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate address for instance %d: %w", seq, err)
		}
		picked[addr] = struct{}{}

		instances = append(instances, models.Instance{
			ID:   models.InstanceID(id, seq),
			Name: strconv.Itoa(seq),
			Addr: addr,
			Host: models.InstanceHost,
		})
	}

	return &models.Group{
		ID:        id,
		Name:      name,
		Memsize:   memsize,
		Type:      models.GroupType,
		State:     models.StateOK,
		Instances: instances,
	}, nil
}

// Seed inserts the two example groups created at process start.
func (p *Provisioner) Seed() error {
	seeds := []struct {
		name    string
		memsize float64
	}{
		{"memcached for Bob", 0.5},
		{"memcached for Alice", 1.2},
	}

	for _, seed := range seeds {
		if _, err := p.CreateGroup(seed.name, seed.memsize); err != nil {
			return fmt.Errorf("failed to seed group %q: %w", seed.name, err)
		}
	}
	return nil
}
