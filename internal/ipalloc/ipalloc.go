// Package ipalloc allocates instance addresses from a fixed private subnet.
//
// Allocation is a linear scan in ascending numeric order that returns the
// first address not already in use. The subnet's network address is
// reserved and never handed out. The scan is acceptable at this scale; a
// real IPAM would keep a free list.
package ipalloc

import (
	"errors"
	"fmt"
	"net/netip"
)

// ErrExhausted is returned when every address of the subnet is in use.
var ErrExhausted = errors.New("ipalloc: subnet exhausted")

// Allocator hands out addresses from a single IPv4 subnet. It holds no
// allocation state of its own: callers pass in the set of addresses that
// are already in use, and are responsible for committing the returned
// address before the next allocation.
type Allocator struct {
	subnet netip.Prefix
}

// New creates an Allocator for the given subnet in CIDR notation.
func New(cidr string) (*Allocator, error) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return nil, fmt.Errorf("invalid allocation subnet %q: %w", cidr, err)
	}
	if !prefix.Addr().Is4() {
		return nil, fmt.Errorf("allocation subnet %q is not IPv4", cidr)
	}
	return &Allocator{subnet: prefix.Masked()}, nil
}

// Subnet returns the allocation subnet.
func (a *Allocator) Subnet() netip.Prefix {
	return a.subnet
}

// Allocate returns the lowest address of the subnet that appears in none
// of the given unavailable sets. The network address is always treated as
// unavailable. Multiple sets let a caller exclude addresses it has handed
// out within the current request but not yet committed.
func (a *Allocator) Allocate(unavailable ...map[string]struct{}) (string, error) {
	network := a.subnet.Addr()

	for addr := network.Next(); a.subnet.Contains(addr); addr = addr.Next() {
		s := addr.String()
		if inAny(s, unavailable) {
			continue
		}
		return s, nil
	}
	return "", ErrExhausted
}

func inAny(addr string, sets []map[string]struct{}) bool {
	for _, set := range sets {
		if _, ok := set[addr]; ok {
			return true
		}
	}
	return false
}
