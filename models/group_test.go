package models

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGroupID(t *testing.T) {
	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := GenerateGroupID()
		assert.Regexp(t, hex32, id)

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestInstanceID(t *testing.T) {
	assert.Equal(t, "abc_1", InstanceID("abc", 1))
	assert.Equal(t, "abc_2", InstanceID("abc", 2))
}

func TestHealthStates(t *testing.T) {
	states := HealthStates()
	require.Len(t, states, 3)

	assert.Equal(t, StateOK, states["1"])
	assert.Equal(t, StateDegraded, states["2"])
	assert.Equal(t, StateDown, states["3"])

	assert.Equal(t, "passing", StateOK.Type)
	assert.Equal(t, "warning", StateDegraded.Type)
	assert.Equal(t, "critical", StateDown.Type)
}

func TestGroupAddrs(t *testing.T) {
	group := &Group{
		Instances: []Instance{
			{Addr: "172.20.0.1"},
			{Addr: "172.20.0.2"},
		},
	}
	assert.Equal(t, []string{"172.20.0.1", "172.20.0.2"}, group.Addrs())
}
