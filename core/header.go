package core

import (
	"fmt"
	"io"
	"os"

	"github.com/pism/batchscript/logger"
)

// Generator renders batch headers from a registry
type Generator struct {
	Registry   *Registry
	Provenance Provenance
	// Waste warnings are written here as shell comments
	Warnings io.Writer
	// Reject unknown systems instead of using the debug profile
	Strict bool
}

func NewGenerator(registry *Registry) *Generator {
	return &Generator{
		Registry:   registry,
		Provenance: CurrentProvenance(),
		Warnings:   os.Stdout,
	}
}

// Header renders the batch header for running cores tasks of system on
// queue. It returns the header and a copy of the profile with the MPI
// launch command and header filled in.
func (g *Generator) Header(systemName string, cores int, walltime, queue string) (string, *SystemProfile, error) {
	var system *SystemProfile
	if g.Strict {
		s, err := g.Registry.LookupStrict(systemName)
		if err != nil {
			return "", nil, err
		}
		system = s
	} else {
		system = g.Registry.Lookup(systemName)
	}

	topology, err := ResolveTopology(system, cores, queue)
	if err != nil {
		return "", nil, err
	}
	if topology.Wasted > 0 {
		logger.WarningPrintf("%s: %d cores on queue %s waste %d processors",
			system.Name, cores, queue, topology.Wasted)
		if g.Warnings != nil {
			fmt.Fprintln(g.Warnings, topology.Warning())
		}
	}

	mpido, err := Format(system.Mpido, map[string]interface{}{KeyCores: cores})
	if err != nil {
		return "", nil, fmt.Errorf("%s: mpido: %w", system.Name, err)
	}
	header, err := Format(system.Header, topology.values(walltime))
	if err != nil {
		return "", nil, fmt.Errorf("%s: header: %w", system.Name, err)
	}

	system.Mpido = mpido
	system.Header = header + g.Provenance.Banner()
	system.Topology = &topology
	logger.DebugObj("system", system)
	return system.Header, system, nil
}

// PostHeader returns the header for a post-processing job on system.
func (g *Generator) PostHeader(system string) string {
	post := g.Registry.PostTemplate(system)
	logger.DebugPrintf("post-processing header for %s: %s", system, post.Kind)
	return post.Template + g.Provenance.Banner()
}
