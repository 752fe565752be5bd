package models

// GroupType is the only cluster flavor this service provisions.
const GroupType = "memcached"

// DefaultMemsize is applied when a create request omits the memsize field.
const DefaultMemsize = 0.5

// InstancesPerGroup is the fixed number of endpoints allocated per group.
const InstancesPerGroup = 2

// InstanceHost is the placeholder hostname recorded on every instance.
// No real host assignment happens in this service.
const InstanceHost = "localhost"

// Group represents a provisioned cache cluster.
//
// A group is created with exactly two instances whose addresses are drawn
// from the allocation subnet. Only Name and Memsize are mutable after
// creation; the identifier, type, health state and instances are fixed.
//
// Example JSON representation:
//
//	{
//	  "id": "0b1f8c6e6d3a4f0f9a6f2f4f8f1e2d3c",
//	  "name": "memcached for Bob",
//	  "memsize": 0.5,
//	  "type": "memcached",
//	  "state": {"id": "1", "name": "OK", "type": "passing"},
//	  "instances": [
//	    {"id": "0b1f...d3c_1", "name": "1", "addr": "172.20.0.1", "host": "localhost"},
//	    {"id": "0b1f...d3c_2", "name": "2", "addr": "172.20.0.2", "host": "localhost"}
//	  ]
//	}
type Group struct {
	// ID is the unique group identifier, assigned at creation, immutable.
	ID string `json:"id"`

	// Name is the human-readable label (required on create, mutable).
	Name string `json:"name"`

	// Memsize is the cache size parameter in gigabytes.
	Memsize float64 `json:"memsize"`

	// Type is the cluster flavor, always "memcached".
	Type string `json:"type"`

	// State is the health-state descriptor, fixed to OK at creation.
	State HealthState `json:"state"`

	// Instances are the allocated endpoints, fixed at creation.
	Instances []Instance `json:"instances"`
}

// Instance represents one allocated cache endpoint within a group.
type Instance struct {
	// ID is "{group_id}_{sequence}" where sequence is "1" or "2".
	ID string `json:"id"`

	// Name is the sequence number as a string.
	Name string `json:"name"`

	// Addr is the IPv4 address allocated from the subnet. The address is
	// a bookkeeping value only; nothing listens on it.
	Addr string `json:"addr"`

	// Host is the fixed placeholder hostname.
	Host string `json:"host"`
}

// Addrs returns the addresses of all instances in the group.
func (g *Group) Addrs() []string {
	addrs := make([]string, 0, len(g.Instances))
	for _, inst := range g.Instances {
		addrs = append(addrs, inst.Addr)
	}
	return addrs
}
