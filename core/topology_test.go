package core

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testRegistry(t require.TestingT) *Registry {
	reg, err := DefaultRegistry()
	require.NoError(t, err)
	return reg
}

func TestResolveTopologyExactFit(t *testing.T) {
	reg := testRegistry(t)
	topology, err := ResolveTopology(reg.Lookup("chinook"), 48, "t1standard")
	require.NoError(t, err)
	assert.Equal(t, Topology{Queue: "t1standard", Cores: 48, Ppn: 24, Nodes: 2}, topology)
}

func TestResolveTopologyRoundsUp(t *testing.T) {
	reg := testRegistry(t)
	topology, err := ResolveTopology(reg.Lookup("chinook"), 50, "t1standard")
	require.NoError(t, err)
	assert.Equal(t, 3, topology.Nodes)
	assert.Equal(t, 22, topology.Wasted)
	assert.Equal(t,
		"# Warning! Running 50 tasks on 3 24-processor nodes, wasting 22 processors!",
		topology.Warning())
}

func TestResolveTopologyDebugIgnoresQueue(t *testing.T) {
	reg := testRegistry(t)
	for _, queue := range []string{"", "long", "bogus"} {
		topology, err := ResolveTopology(reg.Lookup(DebugSystem), 8, queue)
		require.NoError(t, err)
		assert.Equal(t, 8, topology.Ppn)
		assert.Equal(t, 1, topology.Nodes)
		assert.Zero(t, topology.Wasted)
	}
}

func TestResolveTopologyUnknownQueue(t *testing.T) {
	reg := testRegistry(t)
	_, err := ResolveTopology(reg.Lookup("pleiades"), 10, "bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownQueue))

	var queueErr *UnknownQueueError
	require.True(t, errors.As(err, &queueErr))
	assert.Equal(t, "bogus", queueErr.Queue)
	assert.Equal(t, "pleiades", queueErr.System)
	assert.Equal(t, []string{"long", "normal"}, queueErr.Valid)
	assert.Equal(t, "there is no queue bogus on pleiades, pick one of [long normal]", err.Error())
}

func TestResolveTopologyRejectsNonPositiveCores(t *testing.T) {
	reg := testRegistry(t)
	for _, name := range reg.Names() {
		for _, cores := range []int{0, -1, -100} {
			_, err := ResolveTopology(reg.Lookup(name), cores, "long")
			assert.True(t, errors.Is(err, ErrInvalidInput), "%s with %d cores", name, cores)
		}
	}
}

func TestResolveTopologyProperties(t *testing.T) {
	reg := testRegistry(t)
	var systems []string
	for _, name := range reg.Names() {
		if name != DebugSystem {
			systems = append(systems, name)
		}
	}
	rapid.Check(t, func(t *rapid.T) {
		system := reg.Lookup(rapid.SampledFrom(systems).Draw(t, "system"))
		queue := rapid.SampledFrom(system.Queues.Names()).Draw(t, "queue")
		cores := rapid.OneOf(
			rapid.IntRange(1, 100000),
			rapid.IntRange(math.MaxInt-100000, math.MaxInt),
		).Draw(t, "cores")
		ppn := system.Queues[queue]

		topology, err := ResolveTopology(system, cores, queue)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if topology.Ppn != ppn {
			t.Fatalf("ppn = %d, want %d", topology.Ppn, ppn)
		}
		// nodes*ppn can exceed MaxInt but always fits in uint64
		capacity := uint64(topology.Nodes) * uint64(ppn)
		if topology.Nodes <= 0 || capacity < uint64(cores) {
			t.Fatalf("%d nodes of %d cannot hold %d cores", topology.Nodes, ppn, cores)
		}
		if capacity-uint64(ppn) >= uint64(cores) {
			t.Fatalf("%d nodes of %d is more than needed for %d cores", topology.Nodes, ppn, cores)
		}
		if uint64(topology.Wasted) != capacity-uint64(cores) {
			t.Fatalf("wasted = %d for %d nodes of %d and %d cores", topology.Wasted, topology.Nodes, ppn, cores)
		}
	})
}

func TestResolveTopologyLargeCoreCount(t *testing.T) {
	reg := testRegistry(t)
	topology, err := ResolveTopology(reg.Lookup("chinook"), math.MaxInt, "t1standard")
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt/24+1, topology.Nodes)
	assert.Equal(t, 24-math.MaxInt%24, topology.Wasted)
	assert.Positive(t, topology.Nodes)
}

func TestResolveTopologyDebugProperty(t *testing.T) {
	reg := testRegistry(t)
	rapid.Check(t, func(t *rapid.T) {
		cores := rapid.IntRange(1, 100000).Draw(t, "cores")
		queue := rapid.String().Draw(t, "queue")
		topology, err := ResolveTopology(reg.Lookup(DebugSystem), cores, queue)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if topology.Nodes != 1 || topology.Ppn != cores {
			t.Fatalf("debug topology = %+v", topology)
		}
	})
}
