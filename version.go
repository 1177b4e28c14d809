package main

import (
	"fmt"

	batch "github.com/pism/batchscript/core"
	logger "github.com/pism/batchscript/logger"
)

type VersionCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

func (x *VersionCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	provenance := batch.CurrentProvenance()
	logger.DebugObj("provenance", provenance)
	fmt.Fprint(stdout, provenance.Banner())
	return nil
}

func init() {
	addCommand("version",
		"Print version",
		"Print the script path, command line and version stamped into generated headers",
		func() interface{} { return &VersionCommand{} })
}
